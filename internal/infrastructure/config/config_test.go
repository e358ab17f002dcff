package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile_DefaultsAndOverrides(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
database:
  driver: sqlite
  sqlite_path: /tmp/test.db
cache:
  book_ttl: 30s
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/tmp/test.db", cfg.Database.DSN())
	assert.Equal(t, 30*time.Second, cfg.Cache.BookTTL)
	assert.Equal(t, 2*time.Hour, cfg.JWT.AccessTokenExpire)
	assert.False(t, cfg.Security.RequireAuth)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, ":9090", cfg.Server.Addr())
}

func TestLoadFile_EnvOverride(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 8080\n")
	t.Setenv("BOOKCLUB_SECURITY_REQUIRE_AUTH", "true")
	t.Setenv("BOOKCLUB_DATABASE_PASSWORD", "s3cret")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.True(t, cfg.Security.RequireAuth)
	assert.Equal(t, "s3cret", cfg.Database.Password)
}

func TestDatabaseConfig_MySQLDSN(t *testing.T) {
	d := DatabaseConfig{
		Driver:    "mysql",
		Host:      "db",
		Port:      3306,
		User:      "root",
		Password:  "pw",
		DBName:    "bookclub",
		Charset:   "utf8mb4",
		ParseTime: true,
		Loc:       "Asia/Shanghai",
	}
	assert.Equal(t, "root:pw@tcp(db:3306)/bookclub?charset=utf8mb4&parseTime=true&loc=Asia%2FShanghai", d.DSN())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"非法端口", "server:\n  port: 70000\n"},
		{"未知驱动", "database:\n  driver: postgres\n"},
		{"生产环境默认密钥", "server:\n  mode: release\n"},
		{"非法指标路径", "metrics:\n  path: metrics\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}
