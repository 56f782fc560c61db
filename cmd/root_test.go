package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/alecthomas/kong"
	"github.com/lepinkainen/tablestore/internal/config"
	"github.com/lepinkainen/tablestore/internal/errors"
	"github.com/lepinkainen/tablestore/internal/tablestore"
	"github.com/lepinkainen/tablestore/internal/testutil"
)

// setupCLIEnv gives each test a clean viper/config state and a sandboxed
// working directory with no config.yaml in it.
func setupCLIEnv(t *testing.T) *testutil.TestEnv {
	t.Helper()

	testutil.ResetConfig(t)
	env := testutil.NewTestEnv(t)
	env.Chdir()
	t.Setenv("TABLESTORE_DB", "")

	return env
}

func parseCLI(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()

	cli := &CLI{}
	opts := append(kongOptions(), kong.Exit(func(code int) {
		t.Fatalf("unexpected Kong exit %d", code)
	}))
	parser, err := kong.New(cli, opts...)
	assert.NoError(t, err)

	ctx, err := parser.Parse(args)
	assert.NoError(t, err)

	return cli, ctx
}

// runCLI runs one command the way Execute does and returns its output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	assert.NoError(t, initConfig())
	cli, ctx := parseCLI(t, args...)
	updateGlobalConfig(cli)

	var out bytes.Buffer
	err := run(ctx, &out)
	return out.String(), err
}

func TestUpdateGlobalConfig(t *testing.T) {
	setupCLIEnv(t)
	assert.NoError(t, initConfig())

	cli := &CLI{
		DB:     "/tmp/fruits.db",
		Quiet:  true,
		Format: "yaml",
	}
	updateGlobalConfig(cli)

	assert.Equal(t, "/tmp/fruits.db", config.DBFile)
	assert.False(t, config.Notify)
	assert.Equal(t, "yaml", config.OutputFormat)
}

func TestUpdateGlobalConfig_KeepsDefaults(t *testing.T) {
	setupCLIEnv(t)
	assert.NoError(t, initConfig())

	updateGlobalConfig(&CLI{})

	assert.Equal(t, config.DefaultDBFile, config.DBFile)
	assert.True(t, config.Notify)
	assert.Equal(t, config.DefaultOutputFormat, config.OutputFormat)
}

func TestInitConfig_ReadsConfigFile(t *testing.T) {
	env := setupCLIEnv(t)
	env.WriteFileString("config.yaml", "database:\n  file: from_config.db\nnotify: false\noutput:\n  format: json\n")

	assert.NoError(t, initConfig())

	assert.Equal(t, "from_config.db", config.DBFile)
	assert.False(t, config.Notify)
	assert.Equal(t, "json", config.OutputFormat)
}

func TestInitConfig_EnvOverridesDatabase(t *testing.T) {
	setupCLIEnv(t)
	t.Setenv("TABLESTORE_DB", "from_env.db")

	assert.NoError(t, initConfig())

	assert.Equal(t, "from_env.db", config.DBFile)
}

func TestParseCLI_InsertOptionalDescription(t *testing.T) {
	setupCLIEnv(t)

	cli, _ := parseCLI(t, "insert", "Fruits", "Apple")
	assert.Equal(t, "Fruits", cli.Insert.Table)
	assert.Equal(t, "Apple", cli.Insert.Name)
	assert.Equal(t, "", cli.Insert.Description)
}

func TestRun_FruitsWorkflow(t *testing.T) {
	env := setupCLIEnv(t)
	db := env.DBPath("fruits")

	out, err := runCLI(t, "--db", db, "create", "Fruits")
	assert.NoError(t, err)
	assert.Equal(t, "\"Fruits\" created successfully.\n", out)

	out, err = runCLI(t, "--db", db, "empty", "Fruits")
	assert.NoError(t, err)
	assert.Equal(t, "true\n", out)

	out, err = runCLI(t, "--db", db, "insert", "Fruits", "Apple", "red")
	assert.NoError(t, err)
	assert.Equal(t, "Record created successfully.\n", out)

	_, err = runCLI(t, "--db", db, "insert", "Fruits", "Banana", "yellow")
	assert.NoError(t, err)

	out, err = runCLI(t, "--db", db, "--format", "json", "list", "Fruits")
	assert.NoError(t, err)

	var rows []tablestore.Row
	assert.NoError(t, json.Unmarshal([]byte(out), &rows))
	assert.Equal(t, 2, len(rows))

	var appleID int64
	for _, r := range rows {
		if r.Name == "Apple" {
			appleID = r.ID
		}
	}
	assert.NotZero(t, appleID)

	_, err = runCLI(t, "--db", db, "delete", "Fruits", strconv.FormatInt(appleID, 10))
	assert.NoError(t, err)

	out, err = runCLI(t, "--db", db, "--format", "json", "random", "Fruits")
	assert.NoError(t, err)
	var row tablestore.Row
	assert.NoError(t, json.Unmarshal([]byte(out), &row))
	assert.Equal(t, "Banana", row.Name)
	assert.Equal(t, "yellow", row.Description)

	out, err = runCLI(t, "--db", db, "--quiet", "drop", "Fruits")
	assert.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestRun_DuplicateInsertFails(t *testing.T) {
	env := setupCLIEnv(t)
	db := env.DBPath("fruits")

	_, err := runCLI(t, "--db", db, "-q", "create", "Fruits")
	assert.NoError(t, err)
	_, err = runCLI(t, "--db", db, "insert", "Fruits", "Apple", "Fruit")
	assert.NoError(t, err)

	out, err := runCLI(t, "--db", db, "insert", "Fruits", "Apple", "Fruit")
	assert.Error(t, err)
	assert.True(t, errors.IsDuplicateRow(err))
	assert.Contains(t, out, "All name entries must be unique.")
}

func TestRun_InvalidTableName(t *testing.T) {
	env := setupCLIEnv(t)

	out, err := runCLI(t, "--db", env.DBPath("fruits"), "create", "bad-name")
	assert.Error(t, err)
	assert.True(t, errors.IsInvalidName(err))
	assert.Contains(t, out, "Table names may only contain alphanumeric characters or underscores.")
}

func TestRun_RandomOnEmptyTable(t *testing.T) {
	env := setupCLIEnv(t)
	db := env.DBPath("fruits")

	_, err := runCLI(t, "--db", db, "-q", "create", "Fruits")
	assert.NoError(t, err)

	out, err := runCLI(t, "--db", db, "random", "Fruits")
	assert.NoError(t, err)
	assert.Equal(t, "(0 rows)\n", out)
}

func TestRun_OpenStoreFailure(t *testing.T) {
	setupCLIEnv(t)

	orig := openStore
	openStore = func(string, ...tablestore.Option) (*tablestore.Store, error) {
		return nil, fmt.Errorf("disk full")
	}
	t.Cleanup(func() { openStore = orig })

	_, err := runCLI(t, "empty", "Fruits")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open database")
}
