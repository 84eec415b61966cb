package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/certquest/internal/packfetch"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [pack-id...]",
	Short: "Download community certification packs",
	Long:  "Fetch lists the community pack index, or downloads the named packs into the content root.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		indexURL, _ := cmd.Flags().GetString("index")
		fetcher := packfetch.New(indexURL)

		entries, err := fetcher.Index(ctx)
		if err != nil {
			return err
		}

		if len(args) == 0 {
			if len(entries) == 0 {
				fmt.Println("No community packs published.")
				return nil
			}
			for _, e := range entries {
				fmt.Printf("  %-16s %s\n", e.ID, e.Name)
				if e.Description != "" {
					fmt.Printf("  %-16s %s\n", "", e.Description)
				}
			}
			fmt.Println("\nRun: certquest fetch <pack-id> to install.")
			return nil
		}

		byID := make(map[string]packfetch.Entry, len(entries))
		for _, e := range entries {
			byID[e.ID] = e
		}

		root := resolveContentRoot(cmd)
		for _, id := range args {
			entry, ok := byID[id]
			if !ok {
				return fmt.Errorf("pack %q not in the community index", id)
			}
			err := fetcher.Fetch(ctx, entry, root)
			switch {
			case errors.Is(err, packfetch.ErrExists):
				fmt.Printf("  %s: already installed, skipping\n", id)
			case err != nil:
				return err
			default:
				fmt.Printf("  %s: installed under %s\n", id, root)
			}
		}
		return nil
	},
}

func init() {
	fetchCmd.Flags().String("index", "", "Community pack index URL")
}
