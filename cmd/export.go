package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vocabloom/vocabloom/internal/usecase/backup"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the collection as a JSON backup",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		var w io.Writer = os.Stdout
		if exportOutput != "" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return fmt.Errorf("create %s: %w", exportOutput, err)
			}
			defer f.Close()
			w = f
		}

		count, err := backup.NewService(a.repo).Export(cmd.Context(), w)
		if err != nil {
			return err
		}
		if exportOutput != "" {
			fmt.Printf("Exported %d word(s) to %s\n", count, exportOutput)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
}
