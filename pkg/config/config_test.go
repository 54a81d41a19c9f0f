package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 2*time.Second, cfg.Worker.PollInterval)
	assert.Equal(t, 5*time.Minute, cfg.Worker.JobTimeout)
	assert.Equal(t, "2024-02-15-preview", cfg.AzureOpenAI.APIVersion)
	assert.Equal(t, "job_events", cfg.RabbitMQ.Queue)
	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.Storage.Enabled)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SERVER_ENVIRONMENT", "production")
	t.Setenv("SERVER_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("WORKER_POLL_INTERVAL", "500ms")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("DB_URL", "postgres://u:p@db:5432/x")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 500*time.Millisecond, cfg.Worker.PollInterval)
	assert.Equal(t, "cache:6379", cfg.GetRedisAddr())
	assert.Equal(t, "postgres://u:p@db:5432/x", cfg.GetDatabaseDSN())
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Run("zero poll interval", func(t *testing.T) {
		t.Setenv("WORKER_POLL_INTERVAL", "0s")
		_, err := Load()
		assert.ErrorContains(t, err, "WORKER_POLL_INTERVAL")
	})

	t.Run("unparseable duration", func(t *testing.T) {
		t.Setenv("WORKER_JOB_TIMEOUT", "soon")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestGetDatabaseDSN_FromParts(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "db", Port: "5433", User: "app", Password: "secret", Name: "actions", SSLMode: "require",
	}}
	assert.Equal(t, "host=db port=5433 user=app password=secret dbname=actions sslmode=require", cfg.GetDatabaseDSN())
}

func TestValidateWorker(t *testing.T) {
	cfg := &Config{AzureOpenAI: AzureOpenAIConfig{Endpoint: "https://x", Deployment: "d", APIKey: "k"}}
	assert.NoError(t, cfg.ValidateWorker())

	cfg.AzureOpenAI.APIKey = ""
	assert.ErrorContains(t, cfg.ValidateWorker(), "AZURE_OPENAI_API_KEY")

	cfg.AzureOpenAI.Deployment = ""
	assert.ErrorContains(t, cfg.ValidateWorker(), "AZURE_OPENAI_DEPLOYMENT")

	cfg.AzureOpenAI.Endpoint = ""
	assert.ErrorContains(t, cfg.ValidateWorker(), "AZURE_OPENAI_ENDPOINT")
}
