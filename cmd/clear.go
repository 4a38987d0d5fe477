package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every tracked word",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !clearYes {
			return fmt.Errorf("refusing to clear without --yes")
		}

		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.store.Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("All tracked words deleted.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	clearCmd.Flags().BoolVar(&clearYes, "yes", false, "confirm deleting the whole collection")
}
