package aws

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thand-io/cloudcontrol-mcp/internal/models"
)

// isolateSharedConfig points the SDK at empty shared config files so tests
// never read the developer's ~/.aws.
func isolateSharedConfig(t *testing.T) {
	t.Helper()

	dir := t.TempDir()
	configFile := filepath.Join(dir, "config")
	credentialsFile := filepath.Join(dir, "credentials")

	require.NoError(t, os.WriteFile(configFile, nil, 0o600))
	require.NoError(t, os.WriteFile(credentialsFile, nil, 0o600))

	t.Setenv("AWS_CONFIG_FILE", configFile)
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", credentialsFile)
	t.Setenv("AWS_PROFILE", "")
	t.Setenv("AWS_ACCESS_KEY_ID", "")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "")
	t.Setenv("AWS_SESSION_TOKEN", "")
}

func TestNewClientsWithStaticCredentials(t *testing.T) {
	isolateSharedConfig(t)

	clients := NewClients(context.Background(), models.AwsConfig{
		Region:          "eu-west-1",
		AccessKeyID:     "AKIDEXAMPLE",
		SecretAccessKey: "secret",
		IMDSDisable:     true,
		ConnectTimeout:  15 * time.Second,
		ReadTimeout:     15 * time.Second,
		MaxAttempts:     3,
	})

	require.NotNil(t, clients)
	assert.Equal(t, "eu-west-1", clients.Region)
	assert.True(t, clients.CloudControl.IsAvailable())
	assert.True(t, clients.TypeRegistry.IsAvailable())

	client, err := clients.CloudControl.Client()
	assert.NoError(t, err)
	assert.NotNil(t, client)
}

func TestCreateAwsConfig(t *testing.T) {
	isolateSharedConfig(t)

	t.Run("static credentials win over profile", func(t *testing.T) {
		provider, err := CreateAwsConfig(context.Background(), models.AwsConfig{
			Profile:         "does-not-exist",
			AccessKeyID:     "AKIDEXAMPLE",
			SecretAccessKey: "secret",
			SessionToken:    "session",
		})
		require.NoError(t, err)

		creds, err := provider.Config.Credentials.Retrieve(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "AKIDEXAMPLE", creds.AccessKeyID)
		assert.Equal(t, "session", creds.SessionToken)
	})

	t.Run("region defaults to us-east-1", func(t *testing.T) {
		provider, err := CreateAwsConfig(context.Background(), models.AwsConfig{
			AccessKeyID:     "AKIDEXAMPLE",
			SecretAccessKey: "secret",
		})
		require.NoError(t, err)
		assert.Equal(t, "us-east-1", provider.Config.Region)
	})

	t.Run("attempts are at least one", func(t *testing.T) {
		provider, err := CreateAwsConfig(context.Background(), models.AwsConfig{
			AccessKeyID:     "AKIDEXAMPLE",
			SecretAccessKey: "secret",
			MaxAttempts:     0,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, provider.Config.RetryMaxAttempts)
	})
}

func TestNewClientsWithMissingProfile(t *testing.T) {
	isolateSharedConfig(t)

	var clients *Clients
	assert.NotPanics(t, func() {
		clients = NewClients(context.Background(), models.AwsConfig{
			Region:  "us-west-2",
			Profile: "does-not-exist",
		})
	})

	require.NotNil(t, clients)
	assert.Equal(t, "us-west-2", clients.Region)
	assert.False(t, clients.CloudControl.IsAvailable())
	assert.False(t, clients.TypeRegistry.IsAvailable())

	_, err := clients.TypeRegistry.Client()

	var notInitialized *NotInitializedError
	require.True(t, errors.As(err, &notInitialized))
	assert.Equal(t, "AWS CloudFormation client not initialized", err.Error())
	assert.Error(t, notInitialized.Cause, "the load failure is kept as the cause")
}
