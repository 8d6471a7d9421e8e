package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 8090

[database]
driver = "memory"

[logs]
level = "debug"

[package_service]
url = "http://packages:8080"
timeout = 3

[client_service]
url = "http://clients:8080"

[availability]
range_horizon_days = 30

[lock]
enabled = true
redis_addr = "redis:6379"
ttl_ms = 1000
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("REDIS_PASSWORD", "secret")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 8090, cfg.Server.HTTPPort)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.Equal(t, 3, cfg.PackageService.Timeout)
	assert.Equal(t, 5, cfg.ClientService.Timeout)
	assert.Equal(t, 30, cfg.Availability.RangeHorizonDays)
	assert.Equal(t, 10, cfg.Availability.UpcomingDefaultLimit)
	assert.Equal(t, "secret", cfg.Lock.RedisPassword)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorIs(t, err, ErrReadConfig)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.PackageService.URL = "http://packages"
	cfg.ClientService.URL = "http://clients"
	cfg.Database.DBName = "planner"
	require.NoError(t, cfg.Validate())

	cfg.Availability.RangeHorizonDays = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg.Availability.RangeHorizonDays = 30
	cfg.Availability.UpcomingDefaultDays = 31
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = Default()
	cfg.PackageService.URL = "http://packages"
	cfg.ClientService.URL = "http://clients"
	cfg.Database.Driver = "mysql"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg.Database.Driver = DriverMemory
	cfg.Events.Enabled = true
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "planner", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=planner sslmode=disable", d.DSN())
}
