package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "List words due for review",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		due, err := a.store.DueItems(cmd.Context(), time.Now())
		if err != nil {
			return err
		}
		if len(due) == 0 {
			fmt.Println("Nothing due. Come back later.")
			return nil
		}

		fmt.Printf("%d word(s) due:\n", len(due))
		for _, item := range due {
			fmt.Printf("  %-20s %-20s due %s  [%s]\n",
				item.Word, item.Translation,
				item.Schedule.NextReview.Format("2006-01-02"), item.Proficiency)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dueCmd)
}
