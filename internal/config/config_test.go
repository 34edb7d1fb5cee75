package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 30*time.Second, cfg.HTTP.RequestTimeout)
	assert.Equal(t, SessionBackendMemory, cfg.Session.Backend)
	assert.Zero(t, cfg.Session.TTL)
	assert.Equal(t, SitesSourceStatic, cfg.Sites.Source)
	assert.Equal(t, 5, cfg.Route.MaxWaypoints)
	assert.Equal(t, 10*time.Second, cfg.Gemini.Timeout)
	assert.Equal(t, "id", cfg.Maps.Region)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 0.5, cfg.HTTP.ChatRate)
	assert.Equal(t, 5, cfg.HTTP.ChatBurst)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("NUSAVARTA_HTTP_ADDR", ":9090")
	t.Setenv("NUSAVARTA_SESSION_BACKEND", "redis")
	t.Setenv("NUSAVARTA_SESSION_TTL", "15m")
	t.Setenv("NUSAVARTA_ROUTE_MAX_WAYPOINTS", "3")
	t.Setenv("NUSAVARTA_CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, SessionBackendRedis, cfg.Session.Backend)
	assert.Equal(t, 15*time.Minute, cfg.Session.TTL)
	assert.Equal(t, 3, cfg.Route.MaxWaypoints)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_LegacyKeyAliases(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gem-key")
	t.Setenv("GOOGLE_MAPS_API_KEY", "maps-key")

	cfg, err := load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "gem-key", cfg.Gemini.APIKey)
	assert.Equal(t, "maps-key", cfg.Maps.APIKey)

	t.Setenv("NUSAVARTA_GEMINI_API_KEY", "prefixed")
	cfg, err = load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "prefixed", cfg.Gemini.APIKey)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		cfg, err := load(viper.New())
		require.NoError(t, err)
		cfg.Gemini.APIKey = "g"
		cfg.Maps.APIKey = "m"
		return cfg
	}

	require.NoError(t, valid().Validate())

	cfg := valid()
	cfg.Gemini.APIKey = ""
	assert.ErrorContains(t, cfg.Validate(), "gemini")

	cfg = valid()
	cfg.Session.Backend = "memcached"
	assert.ErrorContains(t, cfg.Validate(), "unknown session backend")

	cfg = valid()
	cfg.Sites.Source = SitesSourceFirestore
	assert.ErrorContains(t, cfg.Validate(), "firebase.project_id")

	cfg = valid()
	cfg.Auth.Enabled = true
	cfg.Firebase.ProjectID = "nusavarta"
	assert.NoError(t, cfg.Validate())
	assert.True(t, cfg.NeedsFirebase())

	cfg = valid()
	cfg.Session.Backend = SessionBackendRedis
	assert.NoError(t, cfg.Validate(), "default lock ttl outlives the request timeout")
}

func TestValidate_RedisLockTTL(t *testing.T) {
	tests := []struct {
		name    string
		lockTTL time.Duration
		wantErr bool
	}{
		{"no expiry", 0, true},
		{"shorter than request", 10 * time.Second, true},
		{"equal to request", 30 * time.Second, true},
		{"longer than request", 45 * time.Second, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := load(viper.New())
			require.NoError(t, err)
			cfg.Gemini.APIKey = "g"
			cfg.Maps.APIKey = "m"
			cfg.Session.Backend = SessionBackendRedis
			cfg.HTTP.RequestTimeout = 30 * time.Second
			cfg.Session.LockTTL = tt.lockTTL

			err = cfg.Validate()
			if tt.wantErr {
				assert.ErrorContains(t, err, "session.lock_ttl")
			} else {
				assert.NoError(t, err)
			}
		})
	}

	// The memory backend has no lock expiry to check.
	cfg, err := load(viper.New())
	require.NoError(t, err)
	cfg.Gemini.APIKey = "g"
	cfg.Maps.APIKey = "m"
	cfg.Session.LockTTL = 0
	assert.NoError(t, cfg.Validate())
}
