package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
api:
  environment: test
  port: "9090"
  jwt_signing_key: secret
  allowed_cors_domains:
    - http://fair.local
gin:
  mode: test
postgres:
  host: db
  port: 5433
  user: fair
  password: pw
  db: fair
assignment:
  bulk_batch_size: 25
  bulk_batch_pause: 250ms
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	conf, err := Load(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, "test", conf.API.Environment)
	assert.Equal(t, "9090", conf.API.Port)
	assert.Equal(t, []string{"http://fair.local"}, conf.API.AllowedCORSDomains)
	assert.Equal(t, 12*time.Hour, conf.API.JWTTTL)
	assert.Equal(t, "test", conf.Gin.Mode)
	assert.Equal(t, "db", conf.Postgres.Host)
	assert.Equal(t, 5433, conf.Postgres.Port)
	assert.Equal(t, "disable", conf.Postgres.SSLMode)
	assert.Equal(t, 25, conf.Assignment.BulkBatchSize)
	assert.Equal(t, 250*time.Millisecond, conf.Assignment.BulkBatchPause)
	assert.Equal(t, 30*time.Second, conf.Assignment.StatsCacheTTL)
	assert.Equal(t, "booth.assignments", conf.RabbitMQ.Queue)
	assert.False(t, conf.Redis.Enabled)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("JOBFAIR_POSTGRES_HOST", "pg.internal")
	t.Setenv("JOBFAIR_ASSIGNMENT_BULK_BATCH_SIZE", "5")

	conf, err := Load(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, "pg.internal", conf.Postgres.Host)
	assert.Equal(t, 5, conf.Assignment.BulkBatchSize)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	conf, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", conf.API.Port)
	assert.Equal(t, 10, conf.Assignment.BulkBatchSize)
	assert.Equal(t, 100*time.Millisecond, conf.Assignment.BulkBatchPause)
}

func TestLoad_InvalidBatchSize(t *testing.T) {
	_, err := Load(writeConfig(t, "assignment:\n  bulk_batch_size: 0\n"))
	assert.Error(t, err)
}

func TestPostgresConfig_DSN(t *testing.T) {
	conf := PostgresConfig{Host: "h", Port: 1, User: "u", Password: "p", DB: "d", SSLMode: "disable"}
	assert.Equal(t, "host=h port=1 user=u password=p dbname=d sslmode=disable TimeZone=UTC", conf.DSN())
}
