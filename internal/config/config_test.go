package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		SimulatedLatencyRangeMs: []int{0, 50},
		ListLimit:               20,
		BriefingRRule:           "FREQ=DAILY;BYHOUR=9;BYMINUTE=0;BYSECOND=0",
		BriefingCount:           5,
		ReportSheetID:           "sheet123",
		NearbyRadiusKm:          25,
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_EmptyConfig(t *testing.T) {
	assert.NoError(t, Validate(Default()))
}

func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr string
	}{
		{"latency range needs two values", &Config{SimulatedLatencyRangeMs: []int{100}}, "validation failed"},
		{"negative latency", &Config{SimulatedLatencyRangeMs: []int{-1, 100}}, "validation failed"},
		{"inverted latency", &Config{SimulatedLatencyRangeMs: []int{600, 100}}, "exceeds max"},
		{"zero list limit is default but negative is not", &Config{ListLimit: -5}, "validation failed"},
		{"too many briefings", &Config{BriefingCount: 500}, "validation failed"},
		{"negative radius", &Config{NearbyRadiusKm: -1}, "validation failed"},
		{"bad rrule", &Config{BriefingRRule: "INVALID_RRULE_SYNTAX"}, "invalid rrule"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	lo, hi := cfg.LatencyRange()
	assert.Equal(t, 100*time.Millisecond, lo)
	assert.Equal(t, 600*time.Millisecond, hi)
	assert.Equal(t, DefaultListLimit, cfg.Limit())
	assert.Equal(t, DefaultNearbyRadiusKm, cfg.RadiusKm())

	cfg.SimulatedLatencyRangeMs = []int{0, 0}
	lo, hi = cfg.LatencyRange()
	assert.Zero(t, lo)
	assert.Zero(t, hi)
}

func TestBriefings(t *testing.T) {
	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	rule, count, err := Default().Briefings(day)
	require.NoError(t, err)
	assert.Equal(t, DefaultBriefingCount, count)

	next := rule.After(day.Add(9*time.Hour), false)
	assert.Equal(t, time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC), next)
}

func TestLoadFromPath_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test_config.yaml")

	validConfig := `
simulatedLatencyRangeMs: [10, 20]
listLimit: 50
seedFile: "catalog.yaml"
briefingRRule: "FREQ=WEEKLY;BYDAY=MO"
briefingCount: 2
reportSheetID: "sheet123"
nearbyRadiusKm: 75.5
`

	err := os.WriteFile(configPath, []byte(validConfig), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	assert.Equal(t, []int{10, 20}, cfg.SimulatedLatencyRangeMs)
	assert.Equal(t, 50, cfg.Limit())
	assert.Equal(t, filepath.Join(tmpDir, "catalog.yaml"), cfg.SeedFile)
	assert.Equal(t, "FREQ=WEEKLY;BYDAY=MO", cfg.BriefingRRule)
	assert.Equal(t, 2, cfg.BriefingCount)
	assert.Equal(t, "sheet123", cfg.ReportSheetID)
	assert.Equal(t, 75.5, cfg.RadiusKm())
}

func TestLoadFromPath_InvalidRRule(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test_config.yaml")

	err := os.WriteFile(configPath, []byte(`briefingRRule: "NOT_A_RULE"`), 0644)
	require.NoError(t, err)

	_, err = LoadFromPath(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rrule")
}

func TestLoadFromPath_MissingFile(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadWithEnv_FindsFileInWorkingDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	chdir(t, tmpDir)
	t.Setenv("HOME", tmpDir)

	_, err := LoadWithEnv("test")
	assert.ErrorIs(t, err, ErrConfigNotFound)

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "connect_care_config.test.yaml"), []byte("listLimit: 7\n"), 0644))

	cfg, err := LoadWithEnv("test")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Limit())
}

func validOAuthClient() *OAuthClientConfig {
	return &OAuthClientConfig{
		Installed: OAuthInstalled{
			ClientID:                "test-client-id.apps.googleusercontent.com",
			ProjectID:               "test-project",
			AuthURI:                 "https://accounts.google.com/o/oauth2/auth",
			TokenURI:                "https://oauth2.googleapis.com/token",
			AuthProviderX509CertURL: "https://www.googleapis.com/oauth2/v1/certs",
			ClientSecret:            "test-secret",
			RedirectURIs:            []string{"http://localhost"},
		},
	}
}

func TestValidateOAuthClient(t *testing.T) {
	assert.NoError(t, ValidateOAuthClient(validOAuthClient()))

	missingID := validOAuthClient()
	missingID.Installed.ClientID = ""
	err := ValidateOAuthClient(missingID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")

	badURL := validOAuthClient()
	badURL.Installed.AuthURI = "not-a-valid-url"
	assert.Error(t, ValidateOAuthClient(badURL))

	noRedirects := validOAuthClient()
	noRedirects.Installed.RedirectURIs = []string{}
	assert.Error(t, ValidateOAuthClient(noRedirects))
}

func TestLoadOAuthClientWithEnv(t *testing.T) {
	tmpDir := t.TempDir()
	chdir(t, tmpDir)
	t.Setenv("HOME", tmpDir)

	_, err := LoadOAuthClientWithEnv("prod")
	assert.ErrorIs(t, err, ErrOAuthClientNotFound)

	data, err := json.Marshal(validOAuthClient())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "oauthClient.prod.json"), data, 0600))

	cfg, err := LoadOAuthClientWithEnv("prod")
	require.NoError(t, err)
	assert.Equal(t, "test-project", cfg.Installed.ProjectID)
}

// chdir switches the working directory for the duration of the test
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
