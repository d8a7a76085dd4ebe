package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"courtlinks/internal/dataset"
	"courtlinks/internal/index"
	"courtlinks/internal/store"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "courtlinks.json5"))
	require.NoError(t, err)
	require.Equal(t, defaultConfig(), cfg)

	opts := cfg.ClientOptions()
	require.Equal(t, "https://www.haestirettur.is", opts.BaseUrl)
	require.Equal(t, 3, opts.RetryCount)
	require.Equal(t, "30s", opts.Timeout.String())
}

func TestLoadConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "courtlinks.json5")
	require.NoError(t, os.WriteFile(path, []byte(`{
		// comments are fine
		timeout: "10s",
		retry_count: 5,
		dataset_path: "data/cases.csv",
	}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "courtlinks.local.json5"), []byte(`{
		retry_count: 1,
	}`), 0o644))
	t.Setenv("COURTLINKS_INDEX_PATH", "site/mapping.json")

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "10s", cfg.Timeout)
	require.Equal(t, 1, cfg.RetryCount)
	require.Equal(t, "data/cases.csv", cfg.DatasetPath)
	require.Equal(t, "site/mapping.json", cfg.IndexPath)
	require.Equal(t, "last_updated.txt", cfg.LastUpdatedPath)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(*Config)
		valid  bool
	}{
		{name: "defaults", modify: func(*Config) {}, valid: true},
		{name: "subdomain partner", modify: func(c *Config) { c.PartnerDomain = "www.landsrettur.is" }, valid: true},
		{name: "bare suffix partner", modify: func(c *Config) { c.PartnerDomain = "is" }, valid: false},
		{name: "relative base", modify: func(c *Config) { c.BaseUrl = "/domar/" }, valid: false},
		{name: "ftp base", modify: func(c *Config) { c.BaseUrl = "ftp://haestirettur.is" }, valid: false},
		{name: "bad timeout", modify: func(c *Config) { c.Timeout = "soon" }, valid: false},
		{name: "negative wait", modify: func(c *Config) { c.RetryWait = "-1s" }, valid: false},
		{name: "negative retries", modify: func(c *Config) { c.RetryCount = -1 }, valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.modify(&cfg)
			err := cfg.Validate()
			if tc.valid {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
		})
	}
}

func TestLookupIndex(t *testing.T) {
	idx := index.Build([]dataset.CaseRecord{
		{
			SupremeCaseNumber: "5/2025",
			SupremeCaseLink:   "https://www.haestirettur.is/domar/_domur/?id=1",
			AppealsCaseNumber: "12/2024",
			AppealsCaseLink:   "https://landsrettur.is/domar-og-urskurdir/domur-urskurdur/?id=a",
			SourceType:        dataset.SourceVerdict,
			VerdictDate:       "15. maí 2025",
		},
		{
			SupremeCaseNumber: "2025-106",
			SupremeCaseLink:   "https://www.haestirettur.is/akvardanir/2025-106",
			AppealsCaseNumber: "12/2024",
			SourceType:        dataset.SourceDecision,
			DecisionStatus:    dataset.StatusRejected,
		},
	})

	var out bytes.Buffer
	found := lookupIndex(&out, idx, []string{" 12/2024 ", "12/2025"})
	require.Equal(t, 1, found)

	text := out.String()
	require.Contains(t, text, "Landsréttarmál 12/2024 (https://landsrettur.is/domar-og-urskurdir/domur-urskurdur/?id=a)")
	require.Contains(t, text, "5/2025")
	require.Contains(t, text, "ákvörðun")
	require.Contains(t, text, "Hafnað")
	require.Contains(t, text, "Ekkert mál hjá Hæstarétti fannst fyrir 12/2025.")
	require.Contains(t, text, "Áttirðu við: 12/2024?")
}

// execute runs the root command with args and returns what it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		harvestMirror = false
		harvestDump = ""
		lookupSqlite = false
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeConfig(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, "courtlinks.json5")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLookupCommandMissingKeyExitStatus(t *testing.T) {
	dir := t.TempDir()
	indexPath := filepath.Join(dir, "mapping.json")
	require.NoError(t, index.Write(indexPath, index.Build([]dataset.CaseRecord{{
		SupremeCaseNumber: "5/2025",
		SupremeCaseLink:   "https://www.haestirettur.is/domar/_domur/?id=1",
		AppealsCaseNumber: "12/2024",
		SourceType:        dataset.SourceVerdict,
	}})))
	config := writeConfig(t, dir, fmt.Sprintf(`{index_path: %q}`, indexPath))

	out, err := execute(t, "--config", config, "lookup", "12/2024", "99/2099")
	require.Equal(t, exitStatus(1), err)
	require.Contains(t, out, "Landsréttarmál 12/2024")
	require.Contains(t, out, "Ekkert mál hjá Hæstarétti fannst fyrir 99/2099.")

	out, err = execute(t, "--config", config, "lookup", "12/2024")
	require.NoError(t, err)
	require.Contains(t, out, "5/2025")
}

func TestHarvestCommandReturnsErrors(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	dir := t.TempDir()
	notADir := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(notADir, []byte("x"), 0o644))
	sqlitePath := filepath.Join(dir, "courtlinks.db")
	config := writeConfig(t, dir, fmt.Sprintf(`{
		base_url: %q,
		dataset_path: %q,
		index_path: %q,
		last_updated_path: %q,
		sqlite_path: %q,
	}`,
		server.URL,
		filepath.Join(notADir, "cases.csv"),
		filepath.Join(dir, "mapping.json"),
		filepath.Join(dir, "last_updated.txt"),
		sqlitePath,
	))

	_, err := execute(t, "--config", config, "harvest", "--sqlite")
	require.Error(t, err)
	require.Contains(t, err.Error(), "harvest failed")
	var status exitStatus
	require.False(t, errors.As(err, &status))

	// the command returned instead of exiting, the mirror can be reopened
	require.FileExists(t, sqlitePath)
	db, err := store.Open(sqlitePath)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}
