// Package cache persists pull request review lists between runs so each PR's
// reviews are fetched from the API at most once, ever.
package cache

import (
	"encoding/json"
	"os"
	"strconv"

	"go.uber.org/zap"

	"templatestats/github"
	"templatestats/logger"
)

// ReviewCache maps PR numbers to their fetched review lists. Entries are only
// ever added; a PR that gains reviews after first capture stays stale until
// the cache file is deleted. The dashboard reports cumulative historical
// counts, so that trade-off holds.
type ReviewCache struct {
	path    string
	reviews map[int][]github.Review
	dirty   bool
}

// Load reads the cache file at path. An absent file starts an empty cache; a
// corrupt one is warned about and treated the same. Persisted keys are
// strings (JSON object keys) and convert back to PR numbers here.
func Load(path string) *ReviewCache {
	c := &ReviewCache{
		path:    path,
		reviews: make(map[int][]github.Review),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Could not read review cache", zap.Error(err))
		}
		return c
	}

	var stored map[string][]github.Review
	if err := json.Unmarshal(data, &stored); err != nil {
		logger.Warn("Review cache corrupt, starting empty", zap.Error(err))
		return c
	}

	for key, reviews := range stored {
		number, err := strconv.Atoi(key)
		if err != nil {
			logger.Warn("Skipping bad review cache key", zap.String("key", key))
			continue
		}
		c.reviews[number] = reviews
	}

	logger.Info("Loaded review cache", zap.Int("entries", len(c.reviews)))
	return c
}

// Get returns the cached reviews for a PR and whether an entry exists.
func (c *ReviewCache) Get(number int) ([]github.Review, bool) {
	reviews, ok := c.reviews[number]
	return reviews, ok
}

// Put stores the reviews for a PR and marks the cache dirty.
func (c *ReviewCache) Put(number int, reviews []github.Review) {
	c.reviews[number] = reviews
	c.dirty = true
}

// Len returns the number of cached entries.
func (c *ReviewCache) Len() int {
	return len(c.reviews)
}

// Save writes the cache back to its file, replacing it wholesale, but only
// when this run added entries.
func (c *ReviewCache) Save() error {
	if !c.dirty {
		return nil
	}

	stored := make(map[string][]github.Review, len(c.reviews))
	for number, reviews := range c.reviews {
		stored[strconv.Itoa(number)] = reviews
	}

	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return err
	}

	logger.Info("Saved review cache",
		zap.String("path", c.path),
		zap.Int("entries", len(c.reviews)))
	return nil
}
