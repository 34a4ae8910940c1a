package templates

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"templatestats/logger"
)

func init() {
	// Initialize logger for tests
	_ = logger.Initialize("debug")
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestListFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "zeta.mail.json", `{}`)
	writeFile(t, dir, "alpha.web.json", `{}`)
	writeFile(t, dir, "package.json", `{}`)
	writeFile(t, dir, "package-lock.json", `{}`)
	writeFile(t, dir, "README.md", "not json")

	// Nested files must not be picked up.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	writeFile(t, filepath.Join(dir, "sub"), "nested.svc.json", `{}`)

	files, err := ListFiles(dir)
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}
	assert.Equal(t, []string{"alpha.web.json", "zeta.mail.json"}, names)
}

func TestParse(t *testing.T) {
	dir := t.TempDir()

	t.Run("full template", func(t *testing.T) {
		path := writeFile(t, dir, "acme.mail.json", `{
			"providerId": "acme",
			"serviceId": "mail",
			"providerName": "Acme Corp",
			"serviceName": "Acme Mail",
			"logoUrl": "https://acme.example/logo.png",
			"syncPubKeyDomain": "acme.example",
			"warnPhishing": true,
			"records": [
				{"type": "MX", "host": "@"},
				{"type": "TXT", "host": "@"},
				{"type": "MX", "host": "mail"}
			]
		}`)

		tmpl := Parse(path)
		require.NotNil(t, tmpl)
		assert.Equal(t, "acme.mail.json", tmpl.Filename)
		assert.Equal(t, "acme", tmpl.ProviderID)
		assert.Equal(t, "mail", tmpl.ServiceID)
		assert.Equal(t, "Acme Corp", tmpl.ProviderName)
		assert.Equal(t, "Acme Mail", tmpl.ServiceName)
		assert.Equal(t, "https://acme.example/logo.png", tmpl.LogoURL)
		assert.Equal(t, 3, tmpl.RecordCount)
		assert.Equal(t, []string{"MX", "TXT"}, tmpl.RecordTypes)
		assert.Equal(t, "acme.example", tmpl.SyncPubKeyDomain)
		assert.Equal(t, true, tmpl.WarnPhishing)
		assert.Nil(t, tmpl.HostRequired)
	})

	t.Run("invalid JSON yields nil", func(t *testing.T) {
		path := writeFile(t, dir, "broken.svc.json", `{"providerId": `)
		assert.Nil(t, Parse(path))
	})

	t.Run("missing file yields nil", func(t *testing.T) {
		assert.Nil(t, Parse(filepath.Join(dir, "nope.svc.json")))
	})

	t.Run("records without type", func(t *testing.T) {
		path := writeFile(t, dir, "bare.svc.json", `{
			"providerId": "bare",
			"records": [{"host": "@"}, {"type": "A"}]
		}`)

		tmpl := Parse(path)
		require.NotNil(t, tmpl)
		assert.Equal(t, 2, tmpl.RecordCount)
		assert.Equal(t, []string{"A"}, tmpl.RecordTypes)
	})
}

func TestLogoURL(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "acme.mail.json", `{"logoUrl": "https://acme.example/logo.png"}`)

	logo := LogoURL(path)
	require.NotNil(t, logo)
	assert.Equal(t, "https://acme.example/logo.png", *logo)

	assert.Nil(t, LogoURL(filepath.Join(dir, "absent.svc.json")))

	empty := writeFile(t, dir, "empty.svc.json", `{}`)
	assert.Nil(t, LogoURL(empty))
}

func TestSplitName(t *testing.T) {
	testCases := []struct {
		name       string
		filename   string
		providerID string
		serviceID  string
		ok         bool
	}{
		{"two segments", "cloudflare.email.json", "cloudflare", "email", true},
		{"dotted service", "acme.mail.pro.json", "acme", "mail.pro", true},
		{"single segment", "readme.json", "", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			provider, service, ok := SplitName(tc.filename)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.providerID, provider)
			assert.Equal(t, tc.serviceID, service)
		})
	}
}
