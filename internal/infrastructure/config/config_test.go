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
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
database:
  driver: postgres
  host: db
  port: 5432
  user: masses
  password: secret
  dbname: ledger
ledger:
  max_retries: 5
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, uint64(5), cfg.Ledger.MaxRetries)
	// 未配置的键取默认值
	assert.Equal(t, 20*time.Millisecond, cfg.Ledger.RetryInitialInterval)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t,
		"host=db user=masses password=secret dbname=ledger port=5432 sslmode=disable TimeZone=UTC",
		cfg.Database.BuildDSN())
}

func TestLoadFile_EnvOverride(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\n")
	t.Setenv("MASSES_SERVER_PORT", "7070")
	t.Setenv("MASSES_DATABASE_SQLITE_PATH", ":memory:")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "file::memory:?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", cfg.Database.BuildDSN())
}

func TestLoadFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"端口越界", "server:\n  port: 70000\n"},
		{"未知驱动", "database:\n  driver: oracle\n"},
		{"启用MQ但没有URL", "mq:\n  enabled: true\n  url: \"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestBuildDSN_MySQL(t *testing.T) {
	d := DatabaseConfig{
		Driver: DriverMySQL, User: "root", Password: "pw", Host: "localhost", Port: 3306,
		DBName: "masses", Charset: "utf8mb4", ParseTime: true, Loc: "Asia/Shanghai",
	}
	assert.Equal(t,
		"root:pw@tcp(localhost:3306)/masses?charset=utf8mb4&parseTime=true&loc=Asia%2FShanghai",
		d.BuildDSN())

	d.DSN = "custom"
	assert.Equal(t, "custom", d.BuildDSN())
}
