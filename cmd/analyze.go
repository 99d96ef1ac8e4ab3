package cmd

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/doddemo/analyzer/internal/analysis"
	"github.com/doddemo/analyzer/internal/container"
	"github.com/doddemo/analyzer/internal/event"
	"github.com/doddemo/analyzer/internal/report"
	"github.com/doddemo/analyzer/internal/storage"
)

// analyze command flags.
var (
	// analyzeMatchType is a free-text label stored alongside the demo (e.g. "scrim", "league").
	analyzeMatchType string
	// analyzeMaxNormalDuration bounds how long the clan-match detector waits
	// in WaitingForNormal before giving up and resetting.
	analyzeMaxNormalDuration time.Duration
)

// analyzeCmd is the cobra command for analyzing a DoD demo file and storing its metrics.
var analyzeCmd = &cobra.Command{
	Use:   "analyze <demo.dem>",
	Short: "Analyze a Day of Defeat demo file and store its metrics",
	Long: `Analyze a Day of Defeat .dem file: read its container, fold the
event stream into round, scoreboard, kill-streak, and clan-match state, and
store the result in the database.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeMatchType, "type", "", "match type label (e.g. scrim, league, pub)")
	analyzeCmd.Flags().DurationVar(&analyzeMaxNormalDuration, "max-normal-duration", analysis.DefaultMaxNormalDuration,
		"how long the clan-match detector waits after a round reset for play to resume before giving up")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	demoPath := args[0]

	data, err := os.ReadFile(demoPath)
	if err != nil {
		return fmt.Errorf("read demo: %w", err)
	}
	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	if id, mapName, found, err := db.GetDemoByPrefix(hash); err != nil {
		return fmt.Errorf("check demo: %w", err)
	} else if found {
		fmt.Fprintf(os.Stdout, "Demo %s already stored — showing cached results.\n\n", hash[:12])
		return printStoredResult(db, id, mapName)
	}

	demo, err := container.Read(data)
	if err != nil {
		return fmt.Errorf("read container: %w", err)
	}

	events := event.Stream(demo.Frames)
	state, err := analysis.Run(events, analyzeMaxNormalDuration)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	meta := storage.DemoMeta{
		Path:              demoPath,
		Hash:              hash,
		MatchType:         analyzeMatchType,
		Header:            demo.Header,
		MaxNormalDuration: analyzeMaxNormalDuration,
	}
	if _, err := storage.SaveAnalysis(db, meta, state); err != nil {
		return fmt.Errorf("save analysis: %w", err)
	}

	result := report.BuildResult(demo.Header.MapName, state)
	printFullReport(os.Stdout, result)
	return nil
}

// printStoredResult reloads and prints a previously analyzed demo, used when
// analyze is re-run on a demo file it has already stored.
func printStoredResult(db *storage.DB, id int64, mapName string) error {
	result, err := storage.LoadResult(db, id, mapName)
	if err != nil {
		return fmt.Errorf("load result: %w", err)
	}
	printFullReport(os.Stdout, result)
	return nil
}

// printFullReport renders every table for one demo, in the order a reader
// would want them: summary, roster, scoreboard, rounds, weapons, timeline.
func printFullReport(w *os.File, r report.Result) {
	report.PrintDemoSummary(w, r)
	report.PrintRosterTable(w, r)
	report.PrintScoreboardTableTo(w, r)
	report.PrintRoundLogTable(w, r)
	report.PrintWeaponBreakdownTable(w, r)
	report.PrintTeamScoreTimelineTable(w, r)
}
