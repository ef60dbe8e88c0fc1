package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velstore/product-intake/config"
)

const testConfigYAML = `server:
  port: ":9090"
  admin_username: "admin"
  admin_password: "secret"

sqlite:
  path: "/tmp/submissions.db"
  auto_create: true

minio:
  endpoint: "media.example.com"
  access_key: "ak"
  secret_key: "sk"
  bucket: "product-submissions"
  folder: "submissions"
  upload_timeout_seconds: 15

email:
  api_key: "mlsn-key"
  from_name: "Velstore"
  from_email: "no-reply@velstore.example"
  internal_to: "team@velstore.example"
`

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfigYAML), 0o644))

	cfg, err := config.InitConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, "admin", cfg.Server.AdminUsername)
	assert.Equal(t, "secret", cfg.Server.AdminPassword)
	assert.Equal(t, "/tmp/submissions.db", cfg.SQLite.Path)
	assert.True(t, cfg.SQLite.AutoCreate)
	assert.Equal(t, "media.example.com", cfg.Minio.Endpoint)
	assert.Equal(t, "ak", cfg.Minio.AccessKey)
	assert.Equal(t, "submissions", cfg.Minio.Folder)
	assert.Equal(t, 15, cfg.Minio.UploadTimeoutSeconds)
	assert.Equal(t, "team@velstore.example", cfg.Email.InternalTo)
	assert.True(t, cfg.Email.Configured())
}

func TestInitConfigMissingFile(t *testing.T) {
	_, err := config.InitConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestEmailConfigured(t *testing.T) {
	assert.False(t, config.Email{}.Configured())
	assert.False(t, config.Email{APIKey: "k"}.Configured())
	assert.False(t, config.Email{InternalTo: "team@velstore.example"}.Configured())
	assert.True(t, config.Email{APIKey: "k", InternalTo: "team@velstore.example"}.Configured())
}
