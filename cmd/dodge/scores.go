package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/plus3/dodge/internal/storage"
)

var (
	flagLimit  int
	flagRecent bool
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show recorded sessions",
	Long: `List the longest recorded sessions from the sessions database.

Examples:
  dodge scores
  dodge scores --limit 20
  dodge scores --recent
  dodge scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of sessions to show")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Order by most recent instead of longest")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded session")
}

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	bestStyle   = cellStyle.Foreground(lipgloss.Color("11"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func runScores(cmd *cobra.Command, args []string) error {
	logger, cfg, err := setup()
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearSessions(); err != nil {
			return err
		}
		logger.Info("sessions cleared", "path", cfg.Storage.Path)
		return nil
	}

	var records []storage.SessionRecord
	if flagRecent {
		records, err = store.RecentSessions(flagLimit)
	} else {
		records, err = store.TopSessions(flagLimit)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderScores(records, !flagRecent))
	return nil
}

// renderScores formats records as a table. With ranked set the first row is
// highlighted as the best session.
func renderScores(records []storage.SessionRecord, ranked bool) string {
	if len(records) == 0 {
		return "No sessions recorded yet."
	}

	rows := make([][]string, 0, len(records))
	for i, r := range records {
		date := "-"
		if !r.CreatedAt.IsZero() {
			date = r.CreatedAt.Local().Format("2006-01-02 15:04")
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			fmt.Sprintf("%.1fs", r.Duration),
			strconv.Itoa(r.Spawned),
			strconv.Itoa(r.PeakAlive),
			strconv.Itoa(r.Contacts),
			r.Mode,
			strconv.FormatInt(r.Seed, 10),
			date,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers("#", "Time", "Spawned", "Peak", "Contacts", "Mode", "Seed", "Date").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case ranked && row == 0:
				return bestStyle
			default:
				return cellStyle
			}
		})

	return t.String()
}
