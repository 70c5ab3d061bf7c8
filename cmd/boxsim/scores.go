package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/boxsim/internal/registry"
	"github.com/vovakirdan/boxsim/internal/storage"
)

var flagScoresClear bool

var scoresCmd = &cobra.Command{
	Use:   "scores [scene]",
	Short: "Show high scores",
	Long: `Display the top 10 scores for the specified scene, or a summary of
every scene when none is given.

Examples:
  boxsim scores
  boxsim scores pong
  boxsim scores pong --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the scene's scores")
}

func runScores(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening records database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		printScoreSummary(store)
		return
	}

	sceneID := args[0]
	requireScene(sceneID)
	title := registry.Title(sceneID)

	if flagScoresClear {
		if err := store.ClearScores(sceneID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Printf("Cleared scores for %s\n", title)
		return
	}

	scores, err := store.TopScores(sceneID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'boxsim play %s' to set the first high score!\n", sceneID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetScoreStats(sceneID); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Plays: %d  Average: %.1f\n", stats.HighScore, stats.Plays, stats.AvgScore)
	}
}

func printScoreSummary(store *storage.Store) {
	all, err := store.GetAllScoreStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	t := newTable("Scene", "Plays", "Best", "Average", "Last played")
	for _, s := range registry.List() {
		stats, ok := all[s.ID]
		if !ok {
			t.Row(s.Title, "0", "-", "-", "-")
			continue
		}
		t.Row(
			s.Title,
			fmt.Sprintf("%d", stats.Plays),
			fmt.Sprintf("%d", stats.HighScore),
			fmt.Sprintf("%.1f", stats.AvgScore),
			stats.LastPlayed.Format("2006-01-02 15:04"),
		)
	}
	fmt.Println(t)
}
