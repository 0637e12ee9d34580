package cli

import (
	"bytes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"path/filepath"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestVersionCmd_Executes(t *testing.T) {
	originalVersion := version
	version = "test-version-1.0.0"
	defer func() { version = originalVersion }()

	out, err := run(t, "version")

	assert.NoError(t, err)
	assert.Contains(t, out, "catalogue version test-version-1.0.0")
}

func TestSeedCmd(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "catalogue.db")
	configFile := writeConfig(t, `
database:
  driver: sqlite
  url: "`+dbPath+`"
jwt:
  secret_key: test-secret
`)
	defer func() { seedForce = false }()

	out, err := run(t, "seed", "--config", configFile, "--env", "")
	require.NoError(t, err)
	assert.Contains(t, out, "added 8 sample courses")

	out, err = run(t, "seed", "--config", configFile, "--env", "")
	require.NoError(t, err)
	assert.Contains(t, out, "nothing added")

	out, err = run(t, "seed", "--config", configFile, "--env", "", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "added 8 sample courses")
}

func TestInvalidConfigurationFails(t *testing.T) {
	configFile := writeConfig(t, "database:\n  driver: oracle\njwt:\n  secret_key: s\n")

	_, err := run(t, "seed", "--config", configFile, "--env", "")

	assert.ErrorContains(t, err, `unknown database.driver "oracle"`)
}
