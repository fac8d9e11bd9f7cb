package cmd

import (
	"fmt"
	"strconv"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/abhisek/multiplier/internal/store"
	"github.com/abhisek/multiplier/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show recent sessions and the hardest pairs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		last, _ := cmd.Flags().GetInt("last")
		top, _ := cmd.Flags().GetInt("top")

		st, err := openHistory(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		repo := st.SessionRepo()

		sessions, err := repo.ListSessions(ctx, last)
		if err != nil {
			return err
		}
		pairs, err := repo.HardestPairs(ctx, top)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(sessions) == 0 {
			lipgloss.Fprintln(out, theme.Hint.Render("No sessions recorded yet."))
			return nil
		}

		succeeded := lo.CountBy(sessions, func(s store.SessionRecord) bool { return s.Succeeded })
		lipgloss.Fprintln(out, theme.Title.Render(fmt.Sprintf("Last %d session(s), %d succeeded", len(sessions), succeeded)))
		lipgloss.Fprintln(out, sessionTable(sessions))

		if len(pairs) > 0 {
			lipgloss.Fprintln(out, theme.Title.Render("Hardest pairs"))
			lipgloss.Fprintln(out, pairTable(pairs))
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("last", 10, "Number of recent sessions to show")
	statsCmd.Flags().Int("top", 10, "Number of hardest pairs to show")
}

// openHistory opens the history store named by --db or the config file.
func openHistory(cmd *cobra.Command) (*store.Store, error) {
	f, _, err := loadConfig(cmd, nil)
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cmd, f.History.DB)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

func sessionTable(sessions []store.SessionRecord) string {
	rows := lo.Map(sessions, func(s store.SessionRecord, _ int) []string {
		result := "ended early"
		switch {
		case s.Succeeded:
			result = "succeeded"
		case s.EndedAt.IsZero():
			result = "unfinished"
		}
		return []string{
			s.StartedAt.Local().Format("2006-01-02 15:04"),
			fmt.Sprintf("%dx%d", s.DigitsOperand1, s.DigitsOperand2),
			fmt.Sprintf("%g", s.AnswersPerMinute),
			fmt.Sprintf("%s %d", s.TerminationPolicy, s.RequiredSuccesses),
			strconv.Itoa(s.Questions),
			strconv.Itoa(s.Incorrect),
			strconv.Itoa(s.Slow),
			(time.Duration(s.DurationMs) * time.Millisecond).Round(time.Second).String(),
			result,
		}
	})
	return newTable("Started", "Digits", "A/min", "Goal", "Questions", "Wrong", "Slow", "Time", "Result").
		Rows(rows...).
		String()
}

func pairTable(pairs []store.PairStats) string {
	rows := lo.Map(pairs, func(p store.PairStats, _ int) []string {
		return []string{
			fmt.Sprintf("%d×%d", p.A, p.B),
			strconv.Itoa(p.Attempts),
			strconv.Itoa(p.Incorrect),
			strconv.Itoa(p.Slow),
		}
	})
	return newTable("Pair", "Attempts", "Wrong", "Slow").
		Rows(rows...).
		String()
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(theme.TableBorder).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return theme.TableHeader
			}
			return theme.TableCell
		}).
		Headers(headers...)
}
