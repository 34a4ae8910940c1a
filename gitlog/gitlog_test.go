package gitlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"templatestats/logger"
)

func init() {
	// Initialize logger for tests
	_ = logger.Initialize("debug")
}

func TestParseLog(t *testing.T) {
	out := "2024-03-10|abc123|Alice|alice@example.com\n" +
		"acme.mail.json\n" +
		"docs/index.html\n" +
		"\n" +
		"2024-02-01|def456|Bob|bob@example.com\n" +
		"acme.mail.json\n" +
		"beta.web.json\n"

	commits := ParseLog(out)
	require.Len(t, commits, 2)

	assert.Equal(t, "2024-03-10", commits[0].Date)
	assert.Equal(t, "abc123", commits[0].Hash)
	assert.Equal(t, "Alice", commits[0].Author)
	assert.Equal(t, "alice@example.com", commits[0].Email)
	assert.Equal(t, []string{"acme.mail.json"}, commits[0].Files)

	assert.Equal(t, "def456", commits[1].Hash)
	assert.Equal(t, []string{"acme.mail.json", "beta.web.json"}, commits[1].Files)
}

func TestParseLogEdgeCases(t *testing.T) {
	t.Run("empty output", func(t *testing.T) {
		assert.Empty(t, ParseLog(""))
	})

	t.Run("commit with no files", func(t *testing.T) {
		commits := ParseLog("2024-03-10|abc|Alice|a@example.com\n\n2024-03-09|def|Bob|b@example.com\nacme.mail.json\n")
		require.Len(t, commits, 2)
		assert.Empty(t, commits[0].Files)
		assert.Equal(t, []string{"acme.mail.json"}, commits[1].Files)
	})

	t.Run("malformed header is skipped", func(t *testing.T) {
		commits := ParseLog("2024-03-10|abc|Alice\nacme.mail.json\n")
		assert.Empty(t, commits)
	})

	t.Run("non-json files dropped", func(t *testing.T) {
		commits := ParseLog("2024-03-10|abc|Alice|a@example.com\nREADME.md\nMakefile\n")
		require.Len(t, commits, 1)
		assert.Empty(t, commits[0].Files)
	})
}

func TestParseOwnerRepo(t *testing.T) {
	testCases := []struct {
		name      string
		remoteURL string
		owner     string
		repo      string
		expectErr bool
	}{
		{"https with .git", "https://github.com/Domain-Connect/Templates.git", "Domain-Connect", "Templates", false},
		{"https without .git", "https://github.com/Domain-Connect/Templates", "Domain-Connect", "Templates", false},
		{"ssh", "git@github.com:Domain-Connect/Templates.git", "Domain-Connect", "Templates", false},
		{"not github", "https://gitlab.com/some/repo.git", "", "", true},
		{"garbage", "not a url", "", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			owner, repo, err := ParseOwnerRepo(tc.remoteURL)
			if tc.expectErr {
				assert.Error(t, err)
				assert.ErrorIs(t, err, ErrBadRemoteURL)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.owner, owner)
			assert.Equal(t, tc.repo, repo)
		})
	}
}
