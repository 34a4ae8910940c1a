package stats

import (
	"sort"

	"templatestats/github"
	"templatestats/models"
)

const monthLayout = "2006-01"

// PRActivity buckets pull requests by creation month and, when merged, by
// merge month, and returns the combined monthly series plus the total merged
// and currently-open counts.
func PRActivity(prs []github.PullRequest) (monthly []models.PRMonthly, totalMerged, totalOpen int) {
	created := make(map[string]int)
	merged := make(map[string]int)

	for _, pr := range prs {
		created[pr.CreatedAt.UTC().Format(monthLayout)]++

		if pr.MergedAt != nil {
			merged[pr.MergedAt.UTC().Format(monthLayout)]++
			totalMerged++
		}
		if pr.State == "open" {
			totalOpen++
		}
	}

	monthSet := make(map[string]bool)
	for month := range created {
		monthSet[month] = true
	}
	for month := range merged {
		monthSet[month] = true
	}

	months := make([]string, 0, len(monthSet))
	for month := range monthSet {
		months = append(months, month)
	}
	sort.Strings(months)

	for _, month := range months {
		monthly = append(monthly, models.PRMonthly{
			Month:   month,
			Created: created[month],
			Merged:  merged[month],
		})
	}
	return monthly, totalMerged, totalOpen
}
