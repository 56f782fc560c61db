package testutil

import (
	"testing"

	"github.com/lepinkainen/tablestore/internal/config"
	"github.com/spf13/viper"
)

// ConfigState holds the state of the config package variables.
type ConfigState struct {
	DBFile       string
	Notify       bool
	OutputFormat string
}

// SaveConfigState captures the current state of config package variables.
func SaveConfigState() ConfigState {
	return ConfigState{
		DBFile:       config.DBFile,
		Notify:       config.Notify,
		OutputFormat: config.OutputFormat,
	}
}

// RestoreConfigState restores the config package variables to a saved state.
func RestoreConfigState(state ConfigState) {
	config.DBFile = state.DBFile
	config.Notify = state.Notify
	config.OutputFormat = state.OutputFormat
}

// ResetConfig saves the current config state, resets viper, and schedules
// restoration of both when the test completes.
func ResetConfig(t *testing.T) {
	t.Helper()

	state := SaveConfigState()
	viper.Reset()

	t.Cleanup(func() {
		RestoreConfigState(state)
		viper.Reset()
	})
}

// SetViperValue sets a viper configuration value and schedules cleanup.
func SetViperValue(t *testing.T, key string, value any) {
	t.Helper()

	oldValue := viper.Get(key)
	hadValue := viper.IsSet(key)

	viper.Set(key, value)

	t.Cleanup(func() {
		if hadValue {
			viper.Set(key, oldValue)
		}
		// viper has no Unset, an unset key can't be restored
	})
}

// SetupTestDatabase points database.file at a fresh path inside env and
// returns it.
func SetupTestDatabase(t *testing.T, env *TestEnv) string {
	t.Helper()

	dbPath := env.DBPath("test")
	SetViperValue(t, "database.file", dbPath)
	config.DBFile = dbPath

	return dbPath
}
