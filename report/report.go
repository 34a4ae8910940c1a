// Package report assembles the aggregation outputs into the single JSON
// document the dashboard reads and writes it to disk.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"templatestats/logger"
	"templatestats/models"
)

// Repository identifies the GitHub repository the report covers.
type Repository struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
	URL   string `json:"url"`
}

// Summary holds the headline counts.
type Summary struct {
	TotalTemplates        int     `json:"total_templates"`
	TotalProviders        int     `json:"total_providers"`
	TotalMergedPRs        int     `json:"total_merged_prs"`
	TotalOpenPRs          int     `json:"total_open_prs"`
	TotalContributors     int     `json:"total_contributors"`
	AvgRecordsPerTemplate float64 `json:"avg_records_per_template"`
}

// ProviderBoards holds the two top-provider leaderboards.
type ProviderBoards struct {
	AllTime    []models.ProviderRank `json:"all_time"`
	Last30Days []models.ProviderRank `json:"last_30_days"`
}

// ReviewerBoards holds the two top-reviewer leaderboards.
type ReviewerBoards struct {
	AllTime    []models.ReviewerRank `json:"all_time"`
	Last30Days []models.ReviewerRank `json:"last_30_days"`
}

// FeatureUsage wraps the per-feature counts with the template total the
// dashboard uses as the percentage denominator.
type FeatureUsage struct {
	TotalTemplates int                   `json:"total_templates"`
	Features       []models.FeatureCount `json:"features"`
}

// Report is the complete statistics document.
type Report struct {
	GeneratedAt     string                   `json:"generated_at"`
	Repository      Repository               `json:"repository"`
	Summary         Summary                  `json:"summary"`
	TemplatesGrowth []models.MonthlyGrowth   `json:"templates_growth"`
	ProvidersGrowth []models.MonthlyGrowth   `json:"providers_growth"`
	PRActivity      []models.PRMonthly       `json:"pr_activity"`
	RecordTypes     []models.RecordTypeCount `json:"record_types"`
	TopProviders    ProviderBoards           `json:"top_providers"`
	FeatureUsage    FeatureUsage             `json:"feature_usage"`
	TopReviewers    ReviewerBoards           `json:"top_reviewers"`
	RecentPRs       []models.RecentPR        `json:"recent_prs"`
	Templates       []*models.Template       `json:"templates"`
	Contributors    []models.Contributor     `json:"contributors"`
}

// normalize replaces nil section slices with empty ones. The dashboard
// iterates every section, so the document must carry [] rather than null
// when a section is empty.
func (r *Report) normalize() {
	if r.TemplatesGrowth == nil {
		r.TemplatesGrowth = []models.MonthlyGrowth{}
	}
	if r.ProvidersGrowth == nil {
		r.ProvidersGrowth = []models.MonthlyGrowth{}
	}
	if r.PRActivity == nil {
		r.PRActivity = []models.PRMonthly{}
	}
	if r.RecordTypes == nil {
		r.RecordTypes = []models.RecordTypeCount{}
	}
	if r.TopProviders.AllTime == nil {
		r.TopProviders.AllTime = []models.ProviderRank{}
	}
	if r.TopProviders.Last30Days == nil {
		r.TopProviders.Last30Days = []models.ProviderRank{}
	}
	if r.FeatureUsage.Features == nil {
		r.FeatureUsage.Features = []models.FeatureCount{}
	}
	if r.TopReviewers.AllTime == nil {
		r.TopReviewers.AllTime = []models.ReviewerRank{}
	}
	if r.TopReviewers.Last30Days == nil {
		r.TopReviewers.Last30Days = []models.ReviewerRank{}
	}
	if r.RecentPRs == nil {
		r.RecentPRs = []models.RecentPR{}
	}
	if r.Templates == nil {
		r.Templates = []*models.Template{}
	}
	if r.Contributors == nil {
		r.Contributors = []models.Contributor{}
	}
}

// Write serializes the report with two-space indentation and writes it to
// path, creating parent directories as needed. Empty sections come out as
// empty arrays.
func Write(r *Report, path string) error {
	r.normalize()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	logger.Info("Statistics saved", zap.String("path", path))
	return nil
}
