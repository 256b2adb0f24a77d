package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/akihabara-market/internal/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(t *testing.T, file, content string) *viper.Viper {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	if file != "" {
		path := filepath.Join(t.TempDir(), file)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		require.NoError(t, Configure(v, path))
	}
	return v
}

func clearKeyEnv(t *testing.T) {
	t.Helper()
	for _, env := range apiKeyEnv {
		t.Setenv(env, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("HOME", "/home/otaku")
	t.Setenv("XDG_DATA_HOME", "")

	s, err := Load(newViper(t, "", ""))
	require.NoError(t, err)

	assert.Equal(t, "sqlite3", s.Database.Driver)
	assert.Equal(t, "/home/otaku/.local/share/akiba/akiba.db", s.Database.Path)
	assert.Equal(t, "/home/otaku/.local/share/akiba/akiba.log", s.Logging.File)
	assert.True(t, s.Seed)
	assert.Equal(t, "openrouter", s.LLM.Provider)
	assert.Equal(t, defaultModels["openrouter"], s.LLM.Model)
	assert.Equal(t, 30*time.Second, s.LLM.Timeout)
	assert.Equal(t, 24*time.Hour, s.LLM.CacheTTL)
	assert.Equal(t, 60, s.LLM.RateLimit)
	assert.Equal(t, "Spanish", s.Assistant.Language)
	assert.False(t, s.LLM.Enabled())
}

func TestLoad_YAML(t *testing.T) {
	clearKeyEnv(t)

	v := newViper(t, "config.yaml", `
database:
  driver: sqlite
  path: /tmp/shop.db
seed:
  on_start: false
llm:
  provider: Gemini
  api_key: g-key
  rate_limit: 10
assistant:
  language: English
`)
	s, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", s.Database.Driver)
	assert.Equal(t, "/tmp/shop.db", s.Database.Path)
	assert.False(t, s.Seed)
	assert.Equal(t, "gemini", s.LLM.Provider)
	assert.Equal(t, "g-key", s.LLM.APIKey)
	assert.Equal(t, defaultModels["gemini"], s.LLM.Model)
	assert.Equal(t, 10, s.LLM.RateLimit)
	assert.Equal(t, "English", s.Assistant.Language)
	assert.True(t, s.LLM.Enabled())
}

func TestLoad_LegacyProperties(t *testing.T) {
	clearKeyEnv(t)

	v := newViper(t, "config.properties", `db.url=jdbc:sqlite:/var/lib/akiba/market.db
db.user=admin
db.password=secret
api.key=sk-or-legacy
model=mistralai/mistral-7b-instruct
`)
	s, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/akiba/market.db", s.Database.Path)
	assert.Equal(t, "sk-or-legacy", s.LLM.APIKey)
	assert.Equal(t, "mistralai/mistral-7b-instruct", s.LLM.Model)
}

func TestLoad_RejectsNonSQLiteURL(t *testing.T) {
	clearKeyEnv(t)

	v := newViper(t, "config.properties", "db.url=jdbc:mysql://localhost:3306/akihabara_db\n")
	_, err := Load(v)
	require.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestLoad_UnsupportedProvider(t *testing.T) {
	clearKeyEnv(t)

	v := newViper(t, "", "")
	v.Set("llm.provider", "claudecode")
	_, err := Load(v)
	require.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestLoad_APIKeyFromEnvironment(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "  sk-ant  ")

	v := newViper(t, "", "")
	v.Set("llm.provider", "anthropic")
	s, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "sk-ant", s.LLM.APIKey)
	assert.Equal(t, defaultModels["anthropic"], s.LLM.Model)
}

func TestConfigure_PrefixedEnvironment(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("AKIBA_DATABASE_PATH", "/srv/akiba.db")
	t.Setenv("AKIBA_LLM_API_KEY", "from-env")

	v := viper.New()
	SetDefaults(v)
	t.Setenv("HOME", t.TempDir())
	require.NoError(t, Configure(v, ""))
	s, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "/srv/akiba.db", s.Database.Path)
	assert.Equal(t, "from-env", s.LLM.APIKey)
}

func TestParseDatabaseURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{name: "jdbc sqlite", url: "jdbc:sqlite:shop.db", want: "shop.db"},
		{name: "plain path", url: "/data/shop.db", want: "/data/shop.db"},
		{name: "empty jdbc path", url: "jdbc:sqlite:", wantErr: true},
		{name: "postgres", url: "jdbc:postgresql://db/shop", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDatabaseURL(tt.url)
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/otaku")
	t.Setenv("SHOP_DIR", "/srv/shop")

	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, "/home/otaku", ExpandPath("~"))
	assert.Equal(t, "/home/otaku/akiba.db", ExpandPath("~/akiba.db"))
	assert.Equal(t, "/srv/shop/akiba.db", ExpandPath("$SHOP_DIR/akiba.db"))
	assert.Equal(t, "relative.db", ExpandPath("relative.db"))
}

func TestExpandPath_DataHome(t *testing.T) {
	t.Setenv("HOME", "/home/otaku")

	t.Setenv("XDG_DATA_HOME", "")
	assert.Equal(t, "/home/otaku/.local/share/akiba/akiba.db", ExpandPath(DefaultDatabasePath))

	t.Setenv("XDG_DATA_HOME", "/data")
	assert.Equal(t, "/data/akiba/akiba.db", ExpandPath(DefaultDatabasePath))
	assert.Equal(t, "/data/akiba/akiba.log", ExpandPath(DefaultLogFile))
	assert.Equal(t, "/home/otaku/shop.db", ExpandPath("~/shop.db"))
}
