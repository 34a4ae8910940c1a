package stats

import (
	"sort"

	"templatestats/models"
)

// RecordTypeDistribution counts, per DNS record type, the number of distinct
// templates containing at least one record of that type. A template with five
// A records contributes one to the A count. Sorted by count descending;
// ties keep first-encounter order.
func RecordTypeDistribution(templates []*models.Template) []models.RecordTypeCount {
	counts := make(map[string]int)
	var order []string

	for _, t := range templates {
		for _, recordType := range t.RecordTypes {
			if _, ok := counts[recordType]; !ok {
				order = append(order, recordType)
			}
			counts[recordType]++
		}
	}

	dist := make([]models.RecordTypeCount, 0, len(order))
	for _, recordType := range order {
		dist = append(dist, models.RecordTypeCount{
			Type:  recordType,
			Count: counts[recordType],
		})
	}
	sort.SliceStable(dist, func(i, j int) bool {
		return dist[i].Count > dist[j].Count
	})
	return dist
}
