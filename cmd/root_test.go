package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/casier/internal/config"
)

func TestRootCommand_Metadata(t *testing.T) {
	require.Equal(t, "casier", rootCmd.Use)
	require.NotEmpty(t, rootCmd.Short)
	require.NotEmpty(t, rootCmd.Long)
}

func TestDemoCommand_Registered(t *testing.T) {
	found := false
	for _, c := range rootCmd.Commands() {
		if c.Use == "demo" {
			found = true
		}
	}
	require.True(t, found, "demo command should be registered")
}

func TestRunDemo(t *testing.T) {
	cfg = config.Defaults()

	var out bytes.Buffer
	demoCmd.SetOut(&out)
	defer demoCmd.SetOut(nil)

	require.NoError(t, runDemo(demoCmd, nil))

	text := out.String()
	require.Contains(t, text, "seeded registers")
	require.Contains(t, text, "quick brown fox")
	require.Contains(t, text, "after incrementing register n by 8")
	require.Contains(t, text, "restored register m, point is back at 4")
	require.Contains(t, text, `the file "/tmp/scratch-notes" at position 5.`)
	require.Contains(t, text, "verbose descriptions")
}

func TestSetVersion(t *testing.T) {
	defer SetVersion("dev")

	SetVersion("1.2.3 (commit: abc, built: today)")
	require.Equal(t, "1.2.3 (commit: abc, built: today)", rootCmd.Version)
}
