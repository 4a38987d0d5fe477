package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/vocabloom/vocabloom/internal/entity"
	"github.com/vocabloom/vocabloom/internal/usecase"
)

var (
	reviewLimit int
	reviewAll   bool
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Start an interactive review session",
	Long: `Start a review session over the words currently due.
With --all the session falls back to every non-mastered word when
nothing is due yet.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		items, err := a.store.DueItems(cmd.Context(), time.Now())
		if err != nil {
			return err
		}
		if len(items) == 0 && reviewAll {
			all, err := a.store.List(cmd.Context())
			if err != nil {
				return err
			}
			items = lo.Filter(all, func(item entity.VocabItem, _ int) bool {
				return item.Proficiency != entity.ProficiencyMastered
			})
		}
		if len(items) == 0 {
			fmt.Println("Nothing to review. Come back later or add more words.")
			return nil
		}

		limit := reviewLimit
		if limit == 0 {
			limit = a.cfg.Review.Limit
		}
		if limit > 0 && len(items) > limit {
			items = items[:limit]
		}

		session, err := usecase.NewSession(a.store, items)
		if err != nil {
			return err
		}

		fmt.Printf("Reviewing %d word(s). Press Enter to reveal, then grade.\n\n", session.Size())
		reader := bufio.NewReader(os.Stdin)

		for !session.IsComplete() {
			current, _ := session.Current()
			fmt.Printf("[%d left] %s\n", session.Remaining(), current.Word)
			if current.Context != "" {
				fmt.Printf("  context: %s\n", current.Context)
			}
			fmt.Print("  ... ")
			if _, err := reader.ReadString('\n'); err != nil {
				return err
			}
			fmt.Printf("  -> %s\n", current.Translation)

			outcome, quit, err := promptOutcome(reader)
			if err != nil {
				return err
			}
			if quit {
				break
			}
			if outcome == nil {
				if err := session.Skip(); err != nil {
					return err
				}
				continue
			}

			if _, err := session.Review(cmd.Context(), *outcome); err != nil {
				a.logger.Warnf("review not recorded: %v", err)
				fmt.Println("  could not record the review; it will be offered again (s to skip).")
			}
			fmt.Println()
		}

		printSummary(session.Summary())
		return nil
	},
}

// promptOutcome reads one grading action. Returns nil outcome for skip
// and quit=true when the learner ends the session early.
func promptOutcome(reader *bufio.Reader) (*entity.Outcome, bool, error) {
	shortcuts := map[string]string{
		"f": "fail", "h": "hard", "g": "good", "e": "easy", "m": "mastered",
		"": "good",
	}
	for {
		fmt.Print("  [f]ail [h]ard [g]ood [e]asy [m]astered [s]kip [q]uit: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, false, err
		}
		token := strings.ToLower(strings.TrimSpace(line))
		switch token {
		case "s", "skip":
			return nil, false, nil
		case "q", "quit":
			return nil, true, nil
		}
		if full, ok := shortcuts[token]; ok {
			token = full
		}
		outcome, err := entity.ParseOutcome(token)
		if err != nil {
			fmt.Println("  unrecognized, try again")
			continue
		}
		return &outcome, false, nil
	}
}

func printSummary(stats entity.SessionStats) {
	fmt.Println("\nSession summary")
	fmt.Printf("  graded:  %d\n", stats.TotalGraded)
	fmt.Printf("  skipped: %d\n", stats.Skipped)
	for _, outcome := range entity.Outcomes() {
		if n := stats.PerOutcome[outcome]; n > 0 {
			fmt.Printf("    %-8s %d\n", outcome.String()+":", n)
		}
	}
	if stats.TotalGraded > 0 {
		fmt.Printf("  accuracy: %.0f%%\n", stats.Accuracy*100)
	}
	fmt.Printf("  elapsed: %s\n", stats.Elapsed.Round(time.Second))
}

func init() {
	rootCmd.AddCommand(reviewCmd)

	reviewCmd.Flags().IntVar(&reviewLimit, "limit", 0, "max words per session (0 uses the configured default)")
	reviewCmd.Flags().BoolVar(&reviewAll, "all", false, "fall back to all non-mastered words when nothing is due")
	bindFlagToViper("review.limit", reviewCmd.Flags().Lookup("limit"))
}
