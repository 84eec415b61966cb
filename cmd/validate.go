package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/certquest/internal/pack"
)

var validateCmd = &cobra.Command{
	Use:   "validate [pack-id...]",
	Short: "Validate installed packs and print diagnostics",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo := pack.NewRepository(resolveContentRoot(cmd))

		ids := args
		if len(ids) == 0 {
			var err error
			ids, err = repo.Discover()
			if err != nil {
				return err
			}
		}
		if len(ids) == 0 {
			fmt.Printf("No packs found under %s.\n", repo.Root())
			return nil
		}

		failed := 0
		for _, id := range ids {
			_, report := repo.Load(id)
			fmt.Println(report)
			if report.HasErrors() {
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d packs failed validation", failed, len(ids))
		}
		return nil
	},
}
