package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vocabloom/vocabloom/internal/adapter/extraction"
	"github.com/vocabloom/vocabloom/internal/usecase/backup"
)

var (
	importFile    string
	importFormat  string
	importSep     string
	importReplace bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import words from a file",
	Long: `Import words from a file.

Formats:
  lines   one word per line: word<sep>translation[<sep>context[<sep>pos]]
  backup  a JSON envelope previously produced by export`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		switch importFormat {
		case "lines":
			raw, err := os.ReadFile(importFile)
			if err != nil {
				return fmt.Errorf("read %s: %w", importFile, err)
			}
			candidates, err := extraction.NewDelimited(importSep).Extract(cmd.Context(), string(raw))
			if err != nil {
				return err
			}
			for _, cand := range candidates {
				if _, err := a.store.AddOrReinforce(cmd.Context(), cand); err != nil {
					return fmt.Errorf("import %q: %w", cand.Word, err)
				}
			}
			fmt.Printf("Imported %d word(s) from %s\n", len(candidates), importFile)
			return nil

		case "backup":
			f, err := os.Open(importFile)
			if err != nil {
				return fmt.Errorf("open %s: %w", importFile, err)
			}
			defer f.Close()

			applied, err := backup.NewService(a.repo).Import(cmd.Context(), f, importReplace)
			if err != nil {
				return err
			}
			fmt.Printf("Applied %d word(s) from %s\n", applied, importFile)
			return nil

		default:
			return fmt.Errorf("unknown format %q (want lines or backup)", importFormat)
		}
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "file to import (required)")
	importCmd.Flags().StringVar(&importFormat, "format", "lines", "input format: lines or backup")
	importCmd.Flags().StringVar(&importSep, "sep", "\t", "field separator for the lines format")
	importCmd.Flags().BoolVar(&importReplace, "replace", false, "backup format: replace the collection instead of merging")
	cobra.CheckErr(importCmd.MarkFlagRequired("file"))
}
