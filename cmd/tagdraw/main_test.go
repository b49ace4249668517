package main

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// The pre-run hook decides between the file-or-nop logger for the root
// command and the stderr logger for subcommands by walking the command
// tree, never by naming rootCmd itself.
func TestPreRunSelectsLoggerPerCommand(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	require.NoError(t, rootCmd.PersistentPreRunE(fetchCmd, nil))
	require.NotNil(t, logger)
	require.True(t, logger.Core().Enabled(zapcore.InfoLevel),
		"subcommands log to the terminal")

	require.NoError(t, rootCmd.PersistentPreRunE(rootCmd, nil))
	require.NotNil(t, logger)
	require.False(t, logger.Core().Enabled(zapcore.ErrorLevel),
		"the interactive command stays silent without a log file")
}
