package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/certquest/internal/pack"
)

var packsCmd = &cobra.Command{
	Use:   "packs",
	Short: "List installed certification packs",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo := pack.NewRepository(resolveContentRoot(cmd))
		packs, reports, err := repo.LoadAll()
		if err != nil {
			return fmt.Errorf("scan content root: %w", err)
		}

		ids, err := repo.Discover()
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			fmt.Printf("No packs found under %s.\n", repo.Root())
			return nil
		}

		for _, id := range ids {
			report := reports[id]
			p, ok := packs[id]
			if !ok {
				fmt.Printf("  %-16s INVALID (%d errors)\n", id, len(report.Errors()))
				continue
			}
			status := ""
			if warnings := report.Warnings(); len(warnings) > 0 {
				status = fmt.Sprintf(" (%d warnings)", len(warnings))
			}
			fmt.Printf("  %-16s %s — %d domains, %d themes%s\n",
				p.ID, p.Name, len(p.Domains), p.Themes.Len(), status)
			if p.FullName != "" {
				fmt.Printf("  %-16s %s\n", "", p.FullName)
			}
		}
		return nil
	},
}
