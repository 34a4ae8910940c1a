package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"templatestats/logger"
	"templatestats/models"
)

func init() {
	// Initialize logger for tests
	_ = logger.Initialize("debug")
}

func TestWrite(t *testing.T) {
	// The parent directory does not exist yet; Write must create it.
	path := filepath.Join(t.TempDir(), "docs", "stats.json")

	r := &Report{
		GeneratedAt: "2024-04-01T12:00:00Z",
		Repository: Repository{
			Owner: "test-owner",
			Name:  "test-repo",
			URL:   "https://github.com/test-owner/test-repo",
		},
		Summary: Summary{TotalTemplates: 2, TotalProviders: 2, AvgRecordsPerTemplate: 2.5},
		TemplatesGrowth: []models.MonthlyGrowth{
			{Month: "2024-01", Added: 2, Cumulative: 2},
		},
		Templates: []*models.Template{
			{Filename: "acme.mail.json", ProviderID: "acme", RecordCount: 3},
		},
	}

	require.NoError(t, Write(r, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "2024-04-01T12:00:00Z", decoded["generated_at"])

	summary, ok := decoded["summary"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 2.5, summary["avg_records_per_template"])

	// Internal template fields must not leak into the document.
	assert.NotContains(t, string(data), "RecordTypes")
	assert.Contains(t, string(data), `"record_count": 3`)
}

func TestWriteEmptySectionsAsArrays(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")

	// A report with nothing filled in: every section must still serialize as
	// an empty array, never null.
	require.NoError(t, Write(&Report{}, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	for _, key := range []string{
		"templates_growth", "providers_growth", "pr_activity",
		"record_types", "recent_prs", "templates", "contributors",
	} {
		value, ok := decoded[key].([]any)
		require.True(t, ok, "%s must be an array", key)
		assert.Empty(t, value)
	}

	for section, boards := range map[string][]string{
		"top_providers": {"all_time", "last_30_days"},
		"top_reviewers": {"all_time", "last_30_days"},
		"feature_usage": {"features"},
	} {
		nested, ok := decoded[section].(map[string]any)
		require.True(t, ok, "%s must be an object", section)
		for _, key := range boards {
			_, ok := nested[key].([]any)
			assert.True(t, ok, "%s.%s must be an array", section, key)
		}
	}
}
