package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseJson_OverlaysPresentFields(t *testing.T) {
	path := writeConfigFile(t, `{
		"endpoint_addr": ":7070",
		"secret_key": "file-secret",
		"access_token_validity_duration": "45m"
	}`)

	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"app", "-c", path}

	c := &Config{}
	c.LoadDefaults()
	dsnBefore := c.DatabaseDSN

	require.NoError(t, parseJson(c))

	assert.Equal(t, ":7070", c.EndpointAddr)
	assert.Equal(t, "file-secret", c.SecretKey)
	assert.Equal(t, 45*time.Minute, c.AccessTokenValidityDuration)
	assert.Equal(t, dsnBefore, c.DatabaseDSN, "absent fields keep defaults")
}

func TestParseJson_NoFileFlag(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"app"}

	c := &Config{}
	c.LoadDefaults()
	require.NoError(t, parseJson(c))
	assert.Equal(t, ":8080", c.EndpointAddr)
}

func TestParseJson_BadFile(t *testing.T) {
	path := writeConfigFile(t, `{not json`)

	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"app", "-config", path}

	c := &Config{}
	c.LoadDefaults()
	assert.Error(t, parseJson(c))
}
