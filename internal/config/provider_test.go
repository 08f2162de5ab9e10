package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("from", "", "")
	cmd.Flags().String("private-key", "", "")
	cmd.Flags().String("data-dir", "", "")
	cmd.Flags().Bool("json", false, "")
	cmd.Flags().Bool("non-interactive", false, "")
	return cmd
}

func TestProvider(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		dir := t.TempDir()
		v := SetupViper(dir, newTestCmd())

		cfg, err := Provider(v)
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(dir, ".opsgov"), cfg.DataDir)
		assert.Equal(t, filepath.Join(dir, ".opsgov", "ledger.json"), cfg.StateFile)
		assert.Equal(t, filepath.Join(dir, ".opsgov", "events.db"), cfg.EventsFile)
		assert.Equal(t, time.Minute, cfg.Timeout)
		assert.False(t, cfg.HasSender())
		assert.Nil(t, cfg.File)
		assert.Empty(t, cfg.ConfigFile)
	})

	t.Run("flags", func(t *testing.T) {
		dir := t.TempDir()
		cmd := newTestCmd()
		require.NoError(t, cmd.Flags().Set("data-dir", filepath.Join(dir, "state")))
		require.NoError(t, cmd.Flags().Set("json", "true"))
		require.NoError(t, cmd.Flags().Set("non-interactive", "true"))
		require.NoError(t, cmd.Flags().Set("from", anvilAddress1))

		cfg, err := Provider(SetupViper(dir, cmd))
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(dir, "state"), cfg.DataDir)
		assert.True(t, cfg.JSON)
		assert.True(t, cfg.NonInteractive)
		assert.Equal(t, common.HexToAddress(anvilAddress1), cfg.Sender)
	})

	t.Run("environment and dotenv", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TEST_PROVIDER_OWNER_KEY="+anvilKey0+"\n"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "opsgov.toml"), []byte(`
[senders.owner]
private_key = "${TEST_PROVIDER_OWNER_KEY}"
`), 0644))
		t.Setenv("OPSGOV_FROM", "owner")
		t.Cleanup(func() { os.Unsetenv("TEST_PROVIDER_OWNER_KEY") })

		cfg, err := Provider(SetupViper(dir, newTestCmd()))
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(dir, "opsgov.toml"), cfg.ConfigFile)
		require.NotNil(t, cfg.File)
		assert.Equal(t, common.HexToAddress(anvilAddress0), cfg.Sender)
		assert.Equal(t, "owner", cfg.SenderName)
	})

	t.Run("unknown sender", func(t *testing.T) {
		dir := t.TempDir()
		cmd := newTestCmd()
		require.NoError(t, cmd.Flags().Set("from", "ghost"))

		_, err := Provider(SetupViper(dir, cmd))
		assert.ErrorIs(t, err, ErrUnknownSender)
	})
}
