package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/metalingusman/immich-deduper/internal/config"
	"github.com/metalingusman/immich-deduper/internal/database/postgres"
	"github.com/metalingusman/immich-deduper/internal/dedupe"
	"github.com/metalingusman/immich-deduper/internal/immich"
)

var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Score duplicate clusters and select the best asset per cluster",
	Long: `Fetch duplicate clusters from Immich, score each cluster's members
against the configured weighted criteria and select the best asset per
cluster.

With DATABASE_URL set, stored settings override the embedded defaults.

Examples:
  # Dry run: report what would be selected
  immich-deduper select

  # Move everything that was NOT selected to the Immich trash
  immich-deduper select --trash-others

  # JSON output for scripting
  immich-deduper select --json`,
	RunE: runSelect,
}

func init() {
	rootCmd.AddCommand(selectCmd)

	selectCmd.Flags().Bool("trash-others", false, "Trash every cluster member that was not selected")
	selectCmd.Flags().Bool("json", false, "Output as JSON instead of progress bar")
}

// SelectResult represents the result of a batch selection run
type SelectResult struct {
	Success       bool     `json:"success"`
	Clusters      int      `json:"clusters"`
	Candidates    int      `json:"candidates"`
	Selected      int      `json:"selected"`
	Skipped       int      `json:"skipped"`
	Tied          int      `json:"tied"`
	LivePhoto     int      `json:"live_photo"`
	Trashed       int      `json:"trashed"`
	TrashedIDs    []string `json:"trashed_ids,omitempty"`
	DurationMs    int64    `json:"duration_ms"`
	DurationHuman string   `json:"duration_human,omitempty"`
}

func runSelect(cmd *cobra.Command, args []string) error {
	trashOthers := mustGetBool(cmd, "trash-others")
	jsonOutput := mustGetBool(cmd, "json")

	cfg := config.Load()
	startTime := time.Now()

	if cfg.Immich.URL == "" {
		return errors.New("IMMICH_URL environment variable is required")
	}
	client, err := immich.NewImmich(cfg.Immich.URL, cfg.Immich.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create Immich client: %w", err)
	}

	scoring, exclude, err := loadSelectSettings(cfg)
	if err != nil {
		return err
	}

	if !jsonOutput {
		fmt.Println("Fetching duplicate clusters from Immich...")
	}
	groups, err := client.GetDuplicates()
	if err != nil {
		return fmt.Errorf("failed to fetch duplicates: %w", err)
	}

	candidates := immich.Candidates(groups)
	if scoring.InAlbum != 0 {
		client.EnrichAlbums(candidates)
	}

	assets := dedupe.FilterExcluded(candidates, exclude)
	clusters := dedupe.GroupAssets(assets)
	if len(clusters) == 0 {
		result := SelectResult{Success: true, DurationMs: time.Since(startTime).Milliseconds()}
		if jsonOutput {
			return outputJSON(result)
		}
		fmt.Println("No duplicate clusters found.")
		return nil
	}

	if !jsonOutput {
		fmt.Printf("Found %d clusters (%d candidates)\n\n", len(clusters), len(assets))
	}

	var bar *progressbar.ProgressBar
	if !jsonOutput {
		bar = progressbar.NewOptions(len(clusters),
			progressbar.OptionSetDescription("Scoring clusters"),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("clusters"),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionSetPredictTime(true),
			progressbar.OptionFullWidth(),
		)
	}

	result := SelectResult{Success: true, Clusters: len(clusters), Candidates: len(assets)}
	selected, decided := scoreClusters(clusters, scoring, &result, func() {
		if bar != nil {
			bar.Add(1)
		}
	})
	if bar != nil {
		fmt.Println()
	}

	if trashOthers {
		ids := trashCandidates(assets, selected, decided)
		if len(ids) > 0 {
			if !jsonOutput {
				fmt.Printf("\nTrashing %d unselected assets...\n", len(ids))
			}
			if err := client.TrashAssets(ids, false); err != nil {
				return fmt.Errorf("failed to trash assets: %w", err)
			}
			result.Trashed = len(ids)
			result.TrashedIDs = ids
		}
	}

	duration := time.Since(startTime)
	result.DurationMs = duration.Milliseconds()
	result.DurationHuman = formatDuration(duration)

	if jsonOutput {
		result.DurationHuman = ""
		return outputJSON(result)
	}

	fmt.Println("\nSelection complete!")
	fmt.Printf("  Clusters:    %d\n", result.Clusters)
	fmt.Printf("  Selected:    %d\n", result.Selected)
	if result.LivePhoto > 0 {
		fmt.Printf("  Live photo:  %d\n", result.LivePhoto)
	}
	if result.Skipped > 0 {
		fmt.Printf("  Skipped:     %d (low similarity)\n", result.Skipped)
	}
	if result.Tied > 0 {
		fmt.Printf("  Tied:        %d (no winner)\n", result.Tied)
	}
	if trashOthers {
		fmt.Printf("  Trashed:     %d\n", result.Trashed)
	}
	fmt.Printf("  Duration:    %s\n", result.DurationHuman)

	return nil
}

// loadSelectSettings returns the scoring and exclusion settings, preferring
// stored settings over the embedded defaults when a database is configured.
func loadSelectSettings(cfg *config.Config) (dedupe.ScoringConfig, dedupe.ExcludeConfig, error) {
	scoring := cfg.Defaults.Weights
	exclude := cfg.Defaults.Exclude

	if cfg.Database.URL == "" {
		return scoring, exclude, nil
	}

	pool, err := postgres.Initialize(&cfg.Database)
	if err != nil {
		return scoring, exclude, fmt.Errorf("failed to initialize PostgreSQL: %w", err)
	}
	defer pool.Close()

	ctx := context.Background()
	repo := postgres.NewSettingsRepository(pool)
	if stored, err := repo.LoadScoring(ctx); err == nil && stored != nil {
		scoring = *stored
	}
	if stored, err := repo.LoadExclude(ctx); err == nil && stored != nil {
		exclude = *stored
	}
	return scoring, exclude, nil
}

// scoreClusters scores every cluster, tallies decision statuses into result
// and calls tick after each cluster. It returns the selected asset ids and
// the set of group ids the engine actually decided (a selection or a live
// photo override). Skipped and tied clusters are deliberately left out of
// the decided set.
func scoreClusters(clusters []dedupe.Cluster, cfg dedupe.ScoringConfig, result *SelectResult, tick func()) (map[int64]struct{}, map[int64]bool) {
	selected := make(map[int64]struct{})
	decided := make(map[int64]bool)
	for _, cluster := range clusters {
		d := dedupe.ScoreCluster(cluster, cfg)
		switch d.Status {
		case dedupe.StatusSelected:
			result.Selected++
			decided[d.GroupID] = true
		case dedupe.StatusLivePhoto:
			result.LivePhoto++
			decided[d.GroupID] = true
		case dedupe.StatusSkipped:
			result.Skipped++
		case dedupe.StatusNoWinner:
			result.Tied++
		}
		for _, id := range d.SelectedIDs {
			selected[id] = struct{}{}
		}
		if tick != nil {
			tick()
		}
	}
	return selected, decided
}

// trashCandidates returns the source asset ids of every unselected member of
// a decided cluster. Members of skipped and tied clusters are never returned:
// a pass that refused to pick a winner must not feed the trash. Ungrouped
// assets are never returned either.
func trashCandidates(assets []dedupe.Asset, selected map[int64]struct{}, decided map[int64]bool) []string {
	var ids []string
	for i := range assets {
		a := &assets[i]
		if a.GroupID == nil || !decided[*a.GroupID] {
			continue
		}
		if _, ok := selected[a.AutoID]; ok {
			continue
		}
		ids = append(ids, a.AssetID)
	}
	return ids
}

// outputJSON marshals data as indented JSON to stdout
func outputJSON(data any) error {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// formatDuration formats a duration as a human-readable string
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}
