package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"servicedesk/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")

	c, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0:8080", c.ServerAddress)
	require.Equal(t, "servicedesk.db", c.DSN())
	require.Equal(t, "/metrics", c.MetricsPath)
	require.Equal(t, 15*time.Second, c.ReadTimeout)
	require.True(t, c.MigrateOnStart)
	require.Equal(t, logrus.InfoLevel, c.LogrusLogLevel())
}

func TestLoadFromEnvFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), ".env")
	content := "DB_DRIVER=postgres\nPOSTGRES_CONN=postgres://u:p@localhost:5432/project?sslmode=disable\nLOG_LEVEL=debug\nLOG_FORMAT=json\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))
	// godotenv не перетирает уже заданные переменные, поэтому чистим их через t.Setenv
	for _, k := range []string{"DB_DRIVER", "POSTGRES_CONN", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	c, err := config.Load(file)
	require.NoError(t, err)
	require.Equal(t, "postgres://u:p@localhost:5432/project?sslmode=disable", c.DSN())
	require.Equal(t, logrus.DebugLevel, c.Logger().GetLevel())
	_, isJSON := c.Logger().Formatter.(*logrus.JSONFormatter)
	require.True(t, isJSON)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  config.Config
		ok   bool
	}{
		{"postgres without dsn", config.Config{DBDriver: "postgres", LogFormat: "text"}, false},
		{"unknown driver", config.Config{DBDriver: "mysql", LogFormat: "text"}, false},
		{"bad log format", config.Config{DBDriver: "sqlite", SQLitePath: "x.db", LogFormat: "xml"}, false},
		{"sqlite", config.Config{DBDriver: "sqlite", SQLitePath: "x.db", LogFormat: "text"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}
