package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/certquest/internal/app"
	"github.com/abhisek/certquest/internal/pack"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start an interactive training session",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo := pack.NewRepository(resolveContentRoot(cmd))
		packs, reports, err := repo.LoadAll()
		if err != nil {
			return fmt.Errorf("scan content root: %w", err)
		}

		// One bad pack never blocks the rest; report it and move on.
		for _, report := range reports {
			if len(report.Diagnostics) > 0 {
				fmt.Fprintln(os.Stderr, report)
			}
		}

		if len(packs) == 0 {
			fmt.Fprintf(os.Stderr, "No valid certification packs found under %s.\n", repo.Root())
			fmt.Fprintln(os.Stderr, "Add packs to the content root or run: certquest fetch")
			return fmt.Errorf("no packs available")
		}

		return app.Run(packs)
	},
}
