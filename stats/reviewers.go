package stats

import (
	"sort"
	"time"

	"templatestats/github"
	"templatestats/models"
)

const topReviewerLimit = 5

// TopReviewers builds the all-time and trailing-30-days reviewer
// leaderboards over merged pull requests. Within one PR a reviewer is
// credited once no matter how many review events they left, and the PR's own
// author is never credited. Both boards are capped to the top 5 by review
// count; ties keep first-encounter order.
func TopReviewers(prs []github.PullRequest, reviewsByPR map[int][]github.Review, now time.Time) (allTime, last30Days []models.ReviewerRank) {
	windowStart := now.AddDate(0, 0, -30)

	allCounts := make(map[string]int)
	recentCounts := make(map[string]int)
	users := make(map[string]github.User)
	var order []string

	for _, pr := range prs {
		if pr.MergedAt == nil {
			continue
		}
		inWindow := pr.MergedAt.After(windowStart)

		credited := make(map[string]bool)
		for _, review := range reviewsByPR[pr.Number] {
			login := review.User.Login
			if login == "" || login == pr.User.Login || credited[login] {
				continue
			}
			credited[login] = true

			if _, ok := users[login]; !ok {
				users[login] = review.User
				order = append(order, login)
			}
			allCounts[login]++
			if inWindow {
				recentCounts[login]++
			}
		}
	}

	return rankReviewers(order, users, allCounts), rankReviewers(order, users, recentCounts)
}

func rankReviewers(order []string, users map[string]github.User, counts map[string]int) []models.ReviewerRank {
	var ranks []models.ReviewerRank
	for _, login := range order {
		count := counts[login]
		if count == 0 {
			continue
		}
		user := users[login]
		ranks = append(ranks, models.ReviewerRank{
			Login:       login,
			AvatarURL:   user.AvatarURL,
			ProfileURL:  user.HTMLURL,
			ReviewCount: count,
		})
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].ReviewCount > ranks[j].ReviewCount
	})
	if len(ranks) > topReviewerLimit {
		ranks = ranks[:topReviewerLimit]
	}
	return ranks
}
