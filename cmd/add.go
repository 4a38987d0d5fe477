package cmd

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vocabloom/vocabloom/internal/entity"
)

var (
	addContext      string
	addPartOfSpeech string
)

var addCmd = &cobra.Command{
	Use:   "add <word> <translation...>",
	Short: "Track a word, or reinforce it if already tracked",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		word := args[0]
		translation := strings.Join(args[1:], " ")

		existing, err := a.store.FindByWord(cmd.Context(), word)
		if err != nil {
			return err
		}

		item, err := a.store.AddOrReinforce(cmd.Context(), entity.Candidate{
			Word:         word,
			Translation:  translation,
			Context:      addContext,
			PartOfSpeech: addPartOfSpeech,
		})
		if err != nil {
			return err
		}

		if existing != nil {
			fmt.Printf("Reinforced %q (seen %d times)\n", item.Word, item.PracticeCount)
		} else {
			fmt.Printf("Tracking %q — first review %s\n", item.Word, item.Schedule.NextReview.Format("2006-01-02"))
		}
		a.logger.WithFields(logrus.Fields{
			"word": item.Word,
			"id":   item.ID,
		}).Debug("word added or reinforced")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVar(&addContext, "context", "", "example sentence the word was encountered in")
	addCmd.Flags().StringVar(&addPartOfSpeech, "pos", "", "part of speech tag")
}
