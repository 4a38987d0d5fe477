package cmd

import (
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/vocabloom/vocabloom/internal/entity"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show collection statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		items, err := a.store.List(cmd.Context())
		if err != nil {
			return err
		}
		due, err := a.store.DueItems(cmd.Context(), time.Now())
		if err != nil {
			return err
		}

		byProficiency := lo.CountValuesBy(items, func(item entity.VocabItem) entity.Proficiency {
			return item.Proficiency
		})
		practices := lo.SumBy(items, func(item entity.VocabItem) int {
			return item.PracticeCount
		})

		fmt.Printf("Tracked words:   %d\n", len(items))
		fmt.Printf("Due now:         %d\n", len(due))
		fmt.Printf("Practice events: %d\n", practices)
		fmt.Println("By proficiency:")
		for _, p := range []entity.Proficiency{
			entity.ProficiencyNew,
			entity.ProficiencyLearning,
			entity.ProficiencyFamiliar,
			entity.ProficiencyMastered,
		} {
			fmt.Printf("  %-9s %d\n", p, byProficiency[p])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
