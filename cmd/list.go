package cmd

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/vocabloom/vocabloom/internal/entity"
)

var listProficiency string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tracked words",
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
		if listProficiency != "" {
			want := entity.Proficiency(listProficiency)
			items = lo.Filter(items, func(item entity.VocabItem, _ int) bool {
				return item.Proficiency == want
			})
		}
		if len(items) == 0 {
			fmt.Println("No words tracked yet.")
			return nil
		}

		for _, item := range items {
			fmt.Printf("  %-20s %-20s %-9s reps:%d ease:%.2f next:%s\n",
				item.Word, item.Translation, item.Proficiency,
				item.Schedule.Repetitions, item.Schedule.EaseFactor,
				item.Schedule.NextReview.Format("2006-01-02"))
		}
		fmt.Printf("%d word(s) total\n", len(items))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listProficiency, "proficiency", "", "filter by proficiency (new|learning|familiar|mastered)")
}
