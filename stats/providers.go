package stats

import (
	"sort"
	"time"

	"templatestats/models"
)

const topProviderLimit = 20

type providerMeta struct {
	name    string
	logoURL string
}

// providerIndex captures per-provider metadata and first-encounter order over
// the template list. Name and logo come from the first template seen for each
// provider; the template list is sorted by filename, so the choice is stable.
type providerIndex struct {
	meta  map[string]providerMeta
	order []string
}

func indexProviders(templates []*models.Template) *providerIndex {
	idx := &providerIndex{meta: make(map[string]providerMeta)}
	for _, t := range templates {
		if t.ProviderID == "" {
			continue
		}
		if _, ok := idx.meta[t.ProviderID]; !ok {
			name := t.ProviderName
			if name == "" {
				name = t.ProviderID
			}
			idx.meta[t.ProviderID] = providerMeta{name: name, logoURL: t.LogoURL}
			idx.order = append(idx.order, t.ProviderID)
		}
	}
	return idx
}

func (idx *providerIndex) rank(counts map[string]int, limit int) []models.ProviderRank {
	var ranks []models.ProviderRank
	for _, provider := range idx.order {
		count, ok := counts[provider]
		if !ok {
			continue
		}
		m := idx.meta[provider]
		ranks = append(ranks, models.ProviderRank{
			ProviderID:    provider,
			ProviderName:  m.name,
			LogoURL:       m.logoURL,
			TemplateCount: count,
		})
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].TemplateCount > ranks[j].TemplateCount
	})
	if len(ranks) > limit {
		ranks = ranks[:limit]
	}
	return ranks
}

// TopProviders ranks providers by all-time template count, top 20.
func TopProviders(templates []*models.Template) []models.ProviderRank {
	counts := make(map[string]int)
	for _, t := range templates {
		if t.ProviderID != "" {
			counts[t.ProviderID]++
		}
	}
	return indexProviders(templates).rank(counts, topProviderLimit)
}

// RecentProviders ranks providers by activity in the trailing 30 days: one
// point per template file occurrence in a commit inside the window. This is
// commit recency, not provider age, so a long-standing provider ranks here
// whenever any of its templates changed recently.
func RecentProviders(templates []*models.Template, commits []models.Commit, now time.Time) []models.ProviderRank {
	cutoff := now.AddDate(0, 0, -30).Format("2006-01-02")

	fileProvider := make(map[string]string)
	for _, t := range templates {
		if t.ProviderID != "" {
			fileProvider[t.Filename] = t.ProviderID
		}
	}

	counts := make(map[string]int)
	for _, commit := range commits {
		if commit.Date < cutoff {
			continue
		}
		for _, file := range commit.Files {
			if provider := fileProvider[file]; provider != "" {
				counts[provider]++
			}
		}
	}
	return indexProviders(templates).rank(counts, topProviderLimit)
}
