package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/lepinkainen/tablestore/internal/config"
	"github.com/lepinkainen/tablestore/internal/tablestore"
	"github.com/spf13/viper"
)

var openStore = tablestore.New

// CLI represents the complete command structure for the tablestore application
type CLI struct {
	// Global flags
	DB     string `help:"Path to SQLite database file (default from config: database.file)" placeholder:"PATH"`
	Quiet  bool   `short:"q" help:"Don't print confirmation messages for create and drop"`
	Format string `help:"Output format for list and random: table, json, yaml, csv"`
	Debug  bool   `help:"Enable debug logging"`

	Create CreateCmd `cmd:"" help:"Create a table if it doesn't exist"`
	Drop   DropCmd   `cmd:"" help:"Drop a table if it exists"`
	Insert InsertCmd `cmd:"" help:"Insert a NAME/DESCRIPTION row"`
	Delete DeleteCmd `cmd:"" help:"Delete a row by its row id"`
	List   ListCmd   `cmd:"" help:"List all rows of a table"`
	Random RandomCmd `cmd:"" help:"Show one random row of a table"`
	Empty  EmptyCmd  `cmd:"" help:"Report whether a table has no rows"`
}

// appContext is bound into every command's Run method
type appContext struct {
	store *tablestore.Store
	out   io.Writer
}

func kongOptions() []kong.Option {
	return []kong.Option{
		kong.Name("tablestore"),
		kong.Description("Create, fill and query simple NAME/DESCRIPTION tables in a SQLite file."),
		kong.UsageOnError(),
	}
}

// Execute runs the Kong-based CLI
func Execute() {
	var cli CLI
	ctx := kong.Parse(&cli, kongOptions()...)

	initLogging(cli.Debug)

	if err := initConfig(); err != nil {
		slog.Error("Fatal error config file", "error", err)
		os.Exit(1)
	}
	updateGlobalConfig(&cli)

	if err := run(ctx, os.Stdout); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx *kong.Context, out io.Writer) error {
	store, err := openStore(config.DBFile, tablestore.WithOutput(out))
	if err != nil {
		return fmt.Errorf("failed to open database %s: %w", config.DBFile, err)
	}
	slog.Debug("Database opened", "path", store.Path())

	return ctx.Run(&appContext{store: store, out: out})
}

func initConfig() error {
	config.SetDefaults()

	viper.SetEnvPrefix("tablestore")
	viper.AutomaticEnv()
	if err := viper.BindEnv("database.file", "TABLESTORE_DB"); err != nil {
		return fmt.Errorf("failed to bind environment variable: %w", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
		slog.Debug("Config file not found, using defaults")
	}

	config.InitConfig()
	return nil
}

func updateGlobalConfig(cli *CLI) {
	config.SetDBFile(cli.DB)
	if cli.Quiet {
		config.SetNotify(false)
	}
	if cli.Format != "" {
		config.OutputFormat = cli.Format
	}
}

func initLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: level,
	})

	slog.SetDefault(slog.New(handler))
}
