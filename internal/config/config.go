package config

import (
	"github.com/spf13/viper"
)

const (
	// DefaultDBFile is used when neither a flag nor the config file names a database
	DefaultDBFile = "./tablestore.db"
	// DefaultOutputFormat is the row output format for list and random
	DefaultOutputFormat = "table"
)

// Global configuration variables
var (
	// DBFile is the path to the SQLite database file
	DBFile string
	// Notify controls whether create and drop print a confirmation message
	Notify bool
	// OutputFormat is one of table, json or yaml
	OutputFormat string
)

// SetDefaults registers the default values with viper
func SetDefaults() {
	viper.SetDefault("database.file", DefaultDBFile)
	viper.SetDefault("notify", true)
	viper.SetDefault("output.format", DefaultOutputFormat)
}

// InitConfig initializes the global configuration
func InitConfig() {
	SetDefaults()

	DBFile = viper.GetString("database.file")
	Notify = viper.GetBool("notify")
	OutputFormat = viper.GetString("output.format")
}

// SetDBFile sets the database path if one was given
func SetDBFile(path string) {
	if path != "" {
		DBFile = path
	}
}

// SetNotify sets the Notify flag
func SetNotify(notify bool) {
	Notify = notify
}
