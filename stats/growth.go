// Package stats holds the pure aggregation functions turning raw repository
// data (templates, commits, pull requests, reviews) into the report series
// and leaderboards. Nothing here performs I/O.
package stats

import (
	"sort"

	"templatestats/models"
)

// firstSeen walks the history oldest-first and records the date each JSON
// file first appears. Commits arrive newest-first from git, hence the
// reversed iteration.
func firstSeen(commits []models.Commit) map[string]string {
	seen := make(map[string]string)
	for i := len(commits) - 1; i >= 0; i-- {
		for _, file := range commits[i].Files {
			if _, ok := seen[file]; !ok {
				seen[file] = commits[i].Date
			}
		}
	}
	return seen
}

// monthlySeries buckets first-seen dates by month (the YYYY-MM prefix of the
// ISO date) and produces the cumulative series in month order.
func monthlySeries(firstSeenDates map[string]string) []models.MonthlyGrowth {
	additions := make(map[string]int)
	for _, date := range firstSeenDates {
		if len(date) < 7 {
			continue
		}
		additions[date[:7]]++
	}

	months := make([]string, 0, len(additions))
	for month := range additions {
		months = append(months, month)
	}
	sort.Strings(months)

	var series []models.MonthlyGrowth
	cumulative := 0
	for _, month := range months {
		cumulative += additions[month]
		series = append(series, models.MonthlyGrowth{
			Month:      month,
			Added:      additions[month],
			Cumulative: cumulative,
		})
	}
	return series
}

// TemplateGrowth computes the monthly template growth series from git
// history. The returned total is the number of distinct template files ever
// seen, which equals the final cumulative value.
func TemplateGrowth(commits []models.Commit) ([]models.MonthlyGrowth, int) {
	series := monthlySeries(firstSeen(commits))
	total := 0
	if len(series) > 0 {
		total = series[len(series)-1].Cumulative
	}
	return series, total
}

// ProviderGrowth computes the monthly provider growth series by mapping each
// file's first-seen date through the providerId parsed from its content. A
// provider's first-seen date is the smallest date string across its files,
// which orders correctly because the dates are ISO YYYY-MM-DD.
func ProviderGrowth(commits []models.Commit, templates []*models.Template) []models.MonthlyGrowth {
	fileProvider := make(map[string]string)
	for _, t := range templates {
		if t.ProviderID != "" {
			fileProvider[t.Filename] = t.ProviderID
		}
	}

	providerFirstSeen := make(map[string]string)
	for file, date := range firstSeen(commits) {
		provider := fileProvider[file]
		if provider == "" {
			continue
		}
		if existing, ok := providerFirstSeen[provider]; !ok || date < existing {
			providerFirstSeen[provider] = date
		}
	}

	return monthlySeries(providerFirstSeen)
}
