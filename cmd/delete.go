package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vocabloom/vocabloom/internal/entity"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <word>",
	Short: "Stop tracking a word",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		word := strings.Join(args, " ")
		item, err := a.store.FindByWord(cmd.Context(), word)
		if err != nil {
			return err
		}
		if item == nil {
			fmt.Printf("%q is not tracked.\n", word)
			return nil
		}

		if err := a.store.Delete(cmd.Context(), item.ID); err != nil {
			// Deleted elsewhere between lookup and delete; treat as done.
			if errors.Is(err, entity.ErrWordNotFound) {
				fmt.Printf("%q is not tracked.\n", word)
				return nil
			}
			return err
		}
		fmt.Printf("Deleted %q.\n", item.Word)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
