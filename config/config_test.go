package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, DriverMySQL, cfg.DBDriver)
	assert.Equal(t, "3306", cfg.DBPort)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "root", cfg.DBUser)
	assert.Equal(t, "news_db", cfg.DBName)
	assert.Equal(t, 10, cfg.DBMaxConns)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiration)
	assert.True(t, cfg.FeatureAuthorJoin)
	assert.True(t, cfg.FeatureImages)
	assert.True(t, cfg.UsesDefaultJWTSecret())
	assert.Equal(t, "admin@news.com", cfg.AdminEmail)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DB_USER", "news")
	t.Setenv("DB_MAX_CONNS", "4")
	t.Setenv("FEATURE_IMAGES", "false")
	t.Setenv("JWT_EXPIRATION", "90m")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "news", cfg.DBUser)
	assert.Equal(t, 4, cfg.DBMaxConns)
	assert.False(t, cfg.FeatureImages)
	assert.Equal(t, 90*time.Minute, cfg.JWTExpiration)
	assert.False(t, cfg.UsesDefaultJWTSecret())
	assert.Equal(t, "host=localhost port=5432 user=news password= dbname=news_db sslmode=disable", cfg.DSN())
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.yaml")
	content := "port: \"9000\"\ndb_driver: sqlite\ndb_name: news.db\nfeature_author_join: false\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "news.db", cfg.DSN())
	assert.False(t, cfg.FeatureAuthorJoin)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string][2]string{
		"driver":     {"DB_DRIVER", "oracle"},
		"max conns":  {"DB_MAX_CONNS", "ten"},
		"zero conns": {"DB_MAX_CONNS", "0"},
		"flag":       {"FEATURE_IMAGES", "maybe"},
		"expiration": {"JWT_EXPIRATION", "tomorrow"},
		"image size": {"MAX_IMAGE_BYTES", "-1"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestMySQLDSN(t *testing.T) {
	cfg := defaults()
	cfg.DBPort = "3306"
	cfg.DBPassword = "pw"
	assert.Equal(t, "root:pw@tcp(localhost:3306)/news_db?charset=utf8mb4&parseTime=True&loc=Local", cfg.DSN())
}

func TestNewLogger(t *testing.T) {
	cfg := defaults()
	cfg.LogLevel = "debug"
	log := NewLogger(cfg)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)

	cfg.AppEnv = "production"
	cfg.LogLevel = "loud"
	log = NewLogger(cfg)
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)
}

func TestInitDBSQLite(t *testing.T) {
	cfg := defaults()
	cfg.DBDriver = DriverSQLite
	cfg.DBName = "file:config_test?mode=memory&cache=shared"

	db, err := InitDB(cfg, logrus.New())
	require.NoError(t, err)
	require.NoError(t, CloseDB(db))
}
