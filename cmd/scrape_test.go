package cmd

import (
	"testing"
	"time"

	"github.com/brogergvhs/bascrape/internal/config"

	"github.com/stretchr/testify/require"
)

func TestScrapeFlagsReachConfig(t *testing.T) {
	t.Setenv("APPDATA", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	flags := scrapeCmd.PersistentFlags()
	t.Cleanup(func() {
		require.NoError(t, flags.Set("page-delay", "0s"))
		require.NoError(t, flags.Set("roster-delay", "0s"))
		require.NoError(t, flags.Set("skip-missing", "false"))
	})

	require.NoError(t, flags.Set("page-delay", "2s"))
	require.NoError(t, flags.Set("roster-delay", "10s"))
	require.NoError(t, flags.Set("skip-missing", "true"))

	opts := scrapeOptions()
	require.Equal(t, 2*time.Second, opts.PageDelay)
	require.Equal(t, 10*time.Second, opts.RosterDelay)

	cfg, _, err := config.LoadMerged(opts)
	require.NoError(t, err)
	require.Equal(t, 2*time.Second, cfg.PageDelay)
	require.Equal(t, 10*time.Second, cfg.RosterDelay)
	require.True(t, cfg.SkipMissingSlots)
}
