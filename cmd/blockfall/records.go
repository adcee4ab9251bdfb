package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blockfall/internal/games/sprint"
	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var (
	flagRecent      bool
	flagLimit       int
	flagRecordsUser string
	flagPlain       bool
	flagClear       bool
	flagRunID       string
)

var recordsCmd = &cobra.Command{
	Use:   "records [game]",
	Short: "Show stored runs",
	Long: `Display the fastest runs for a game (sprint by default).

On a terminal this opens an interactive table with Best and Recent tabs.
With --plain, or when output is piped, a text table is printed instead.

Examples:
  blockfall records
  blockfall records --recent --limit 20
  blockfall records --player alice --plain
  blockfall records --clear
  blockfall records --id 0192f0c4-7d1e-7b3a-9f10-2c5e8a1d4b6f`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRecords,
}

func init() {
	recordsCmd.Flags().BoolVar(&flagRecent, "recent", false, "List most recent runs instead of fastest (plain output)")
	recordsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to list (plain output)")
	recordsCmd.Flags().StringVar(&flagRecordsUser, "player", "", "Only list this player's runs (plain output)")
	recordsCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a text table even on a terminal")
	recordsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all stored runs for the game")
	recordsCmd.Flags().StringVar(&flagRunID, "id", "", "Show one run by its ID (as logged when the run was saved)")
}

func runRecords(_ *cobra.Command, args []string) error {
	gameID := "sprint"
	if len(args) == 1 {
		gameID = args[0]
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("%w (run 'blockfall list' to see available games)", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open records database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared all runs for %s.\n", game.Title())
		return nil
	}

	if flagRunID != "" {
		run, err := store.RunByID(flagRunID)
		if err != nil {
			return err
		}
		if run == nil || run.GameID != gameID {
			return fmt.Errorf("no %s run with id %q", gameID, flagRunID)
		}
		fmt.Print(tui.RunDetail(*run))
		return nil
	}

	interactive := !flagPlain && !flagRecent && flagRecordsUser == "" &&
		term.IsTerminal(int(os.Stdout.Fd()))
	if interactive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunRecords(store, gameID, game.Title(), width, height)
	}

	var runs []storage.Run
	switch {
	case flagRecordsUser != "":
		runs, err = store.PlayerRuns(gameID, flagRecordsUser, flagLimit)
	case flagRecent:
		runs, err = store.RecentRuns(gameID, flagLimit)
	default:
		runs, err = store.BestRuns(gameID, flagLimit)
	}
	if err != nil {
		return err
	}

	heading := "Best runs"
	if flagRecent {
		heading = "Recent runs"
	}
	fmt.Printf("%s - %s\n\n", heading, game.Title())

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'blockfall play' to set the first time!")
		return nil
	}

	fmt.Printf("  %-4s  %-9s  %-5s  %-5s  %-6s  %-5s  %-12s  %s\n",
		"Rank", "Time", "PPS", "KPP", "Pieces", "Holds", "Player", "Date")
	fmt.Printf("  %-4s  %-9s  %-5s  %-5s  %-6s  %-5s  %-12s  %s\n",
		"----", "----", "---", "---", "------", "-----", "------", "----")
	for _, row := range tui.RecordRows(runs) {
		fmt.Printf("  %-4s  %-9s  %-5s  %-5s  %-6s  %-5s  %-12s  %s\n",
			row[0], row[1], row[2], row[3], row[4], row[5], row[6], row[7])
	}

	fmt.Println()
	if best, ok, err := store.PersonalBest(gameID); err == nil && ok {
		fmt.Printf("Personal best: %s (%.2f PPS)\n", sprint.FormatTime(best.ElapsedMs), best.PPS())
	}
	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Println(tui.StatsLine(stats))
	}
	return nil
}
