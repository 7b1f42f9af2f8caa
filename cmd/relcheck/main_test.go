package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/syssam/relcheck"
)

const vehicles = "../../compiler/load/testdata/vehicles.yaml"

const orders = `dialect: sqlite
types:
  - name: Order
    table: Orders
    fields:
      - {name: Id, type: int}
      - {name: Status, type: string}
    primary_key: {fields: [Id]}
  - name: OrderDetails
    table: Orders
    fields:
      - {name: Id, type: int}
      - {name: Status, type: int}
    primary_key: {fields: [Id]}
    foreign_keys:
      - {fields: [Id], principal: Order}
`

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun(t *testing.T) {
	code, out, logs := runCLI(t, "--model", vehicles)
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "warning Bool With Default: relcheck: ")
	assert.Contains(t, out, "0 errors, 1 warning(s)")
	assert.Contains(t, logs, "pass=")

	code, out, _ = runCLI(t, "--model", vehicles, "--no-advisories")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "No issues found\n", out)
}

func TestRun_Fatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.yaml")
	require.NoError(t, os.WriteFile(path, []byte(orders), 0o644))

	code, out, _ := runCLI(t, "--model", path, "--all", "--log-format", "json")
	assert.Equal(t, exitFatal, code)
	assert.Contains(t, out, "error   Column Type Mismatch: relcheck: ")
	assert.Contains(t, out, "1 error(s), 0 warning(s)")
}

func TestRun_Usage(t *testing.T) {
	code, _, logs := runCLI(t, "--model", "testdata/missing.yaml")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, logs, "loading model failed")

	code, _, logs = runCLI(t)
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, logs, "--model is required")

	code, _, logs = runCLI(t, "--model", vehicles, "--dialect", "oracle")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, logs, "invalid dialect")

	code, _, _ = runCLI(t, "--model", vehicles, "--log-level", "loud")
	assert.Equal(t, exitUsage, code)
}

func TestRun_Snapshot(t *testing.T) {
	snapshot := filepath.Join(t.TempDir(), "vehicles.msgpack")
	code, _, _ := runCLI(t, "--model", vehicles, "--snapshot", snapshot)
	require.Equal(t, exitOK, code)
	require.FileExists(t, snapshot)

	code, out, _ := runCLI(t, "--model", snapshot)
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "0 errors, 1 warning(s)")
}

func TestRun_Drift(t *testing.T) {
	dsn := "file:" + filepath.Join(t.TempDir(), "vehicles.db")
	code, out, _ := runCLI(t, "--model", vehicles, "--db-driver", "sqlite3", "--dsn", dsn)
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, `warning Table Missing: relcheck: `)
	assert.Contains(t, out, "0 errors, 3 warning(s)")
}

func TestKindTitle(t *testing.T) {
	c := cases.Title(language.English)
	assert.Equal(t, "Column Type Mismatch", kindTitle(c, relcheck.KindColumnTypeMismatch))
	assert.Equal(t, "Discriminator Value Duplicate", kindTitle(c, relcheck.KindDiscriminatorValueDuplicate))
	assert.Equal(t, "Error", kindTitle(c, ""))
}

func TestModelChanged(t *testing.T) {
	model := filepath.Join(t.TempDir(), "model.yaml")
	assert.True(t, modelChanged(fsnotify.Event{Name: model, Op: fsnotify.Write}, model))
	assert.True(t, modelChanged(fsnotify.Event{Name: model, Op: fsnotify.Create}, model))
	assert.False(t, modelChanged(fsnotify.Event{Name: model, Op: fsnotify.Chmod}, model))
	assert.False(t, modelChanged(fsnotify.Event{Name: model + "~", Op: fsnotify.Write}, model))
}
