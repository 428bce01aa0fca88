package cmd

import (
	"bytes"
	"sync"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"db-inventory/internal/inventory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"go.yaml.in/yaml/v3"
)

const scenario = `# scenario
MSSQL m02dsm3 m02dsm3 BIRS_Confidential 1733 2017
ORACLE oraserver01.example.com ORCL XE 1521 19c
GARBAGE x y z 1 2
MSSQL too few
`

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "databases.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunConvert_Scenario(t *testing.T) {
	dir := t.TempDir()
	opts := convertOptions{
		Input:    writeInput(t, scenario),
		Output:   filepath.Join(dir, "inventory.yml"),
		Vault:    filepath.Join(dir, "vault.yml"),
		Username: inventory.DefaultUsername,
		Vars:     inventory.DefaultGlobalVars(),
	}

	core, logs := observer.New(zapcore.WarnLevel)
	var out bytes.Buffer
	require.NoError(t, runConvert(opts, zap.New(core), &out))

	assert.Contains(t, out.String(), "Total database hosts: 2")
	assert.Contains(t, out.String(), "MSSQL databases: 1")
	assert.Contains(t, out.String(), "Oracle databases: 1")
	assert.Contains(t, out.String(), "Sybase databases: 0")
	assert.Contains(t, out.String(), "Inventory written to: "+opts.Output)
	assert.Contains(t, out.String(), "Contains 2 password variables")

	assert.Equal(t, 1, logs.FilterMessage("skipping invalid line").Len())
	assert.Equal(t, 1, logs.FilterMessage("skipping unsupported platform").Len())

	data, err := os.ReadFile(opts.Output)
	require.NoError(t, err)

	var doc struct {
		All struct {
			Children map[string]struct {
				Hosts map[string]map[string]any `yaml:"hosts"`
			} `yaml:"children"`
			Vars map[string]any `yaml:"vars"`
		} `yaml:"all"`
	}
	require.NoError(t, yaml.Unmarshal(data, &doc))

	children := doc.All.Children
	require.Contains(t, children, "mssql_databases")
	assert.Len(t, children["mssql_databases"].Hosts, 1)
	assert.Equal(t, 1733, children["mssql_databases"].Hosts["m02dsm3_m02dsm3_1733"]["mssql_port"])
	assert.Len(t, children["oracle_databases"].Hosts, 1)
	assert.Equal(t, "XE", children["oracle_databases"].Hosts["oraserver01_example_com_ORCL_1521"]["oracle_service"])
	assert.Empty(t, children["sybase_databases"].Hosts)
	assert.Len(t, doc.All.Vars, 4)

	vault, err := os.ReadFile(opts.Vault)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(vault), inventory.PasswordPlaceholder))
}

func TestRunConvert_NoVault(t *testing.T) {
	dir := t.TempDir()
	opts := convertOptions{
		Input:  writeInput(t, scenario),
		Output: filepath.Join(dir, "inventory.yml"),
		Vars:   inventory.DefaultGlobalVars(),
	}

	var out bytes.Buffer
	require.NoError(t, runConvert(opts, zap.NewNop(), &out))
	assert.NotContains(t, out.String(), "Vault file written")
	assert.NoFileExists(t, filepath.Join(dir, "vault.yml"))
}

func TestRunConvert_MissingInput(t *testing.T) {
	dir := t.TempDir()
	opts := convertOptions{
		Input:  filepath.Join(dir, "missing.txt"),
		Output: filepath.Join(dir, "inventory.yml"),
	}

	err := runConvert(opts, zap.NewNop(), &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.NoFileExists(t, opts.Output)
}

func TestRunConvert_BadPortFailsRun(t *testing.T) {
	dir := t.TempDir()
	opts := convertOptions{
		Input:  writeInput(t, "MSSQL host db null port 2019\n"),
		Output: filepath.Join(dir, "inventory.yml"),
	}

	err := runConvert(opts, zap.NewNop(), &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error during conversion")
	assert.NoFileExists(t, opts.Output)
}

func TestRunDSN(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runDSN(writeInput(t, scenario), "scan", zap.NewNop(), &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "mssql_databases m02dsm3_m02dsm3_1733 sqlserver://scan@m02dsm3:1733/BIRS_Confidential?database=m02dsm3", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "oracle_databases oraserver01_example_com_ORCL_1521 oracle://"), lines[1])
}

func TestRunDSN_MissingInput(t *testing.T) {
	err := runDSN(filepath.Join(t.TempDir(), "missing.txt"), "scan", zap.NewNop(), &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSettings_GlobalVars(t *testing.T) {
	s := &Settings{Username: "u", Vars: VarsConfig{BaseResultsDir: "/srv/scans", DebugMode: true}}
	vars := s.GlobalVars()
	assert.Equal(t, "/srv/scans", vars.BaseResultsDir)
	assert.True(t, vars.DebugMode)
	assert.Equal(t, "local", vars.Connection)
	assert.Equal(t, "{{ ansible_playbook_python }}", vars.PythonInterpreter)

	s = &Settings{Username: "u"}
	assert.Equal(t, inventory.DefaultGlobalVars(), s.GlobalVars())
}

func TestLoadSettings_Defaults(t *testing.T) {
	s, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, inventory.DefaultUsername, s.Username)
	assert.Equal(t, "/tmp/compliance_scans", s.Vars.BaseResultsDir)
	assert.False(t, s.Vars.DebugMode)
}

// lockedBuffer is written from the progress bar's render goroutine.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func TestRunConvert_ProgressStaysOffStdout(t *testing.T) {
	dir := t.TempDir()
	opts := convertOptions{
		Input:       writeInput(t, scenario),
		Output:      filepath.Join(dir, "inventory.yml"),
		Vars:        inventory.DefaultGlobalVars(),
		Progress:    true,
		ProgressOut: &lockedBuffer{},
	}

	var out bytes.Buffer
	require.NoError(t, runConvert(opts, zap.NewNop(), &out))

	assert.NotContains(t, out.String(), "Reading:")
	assert.True(t, strings.HasSuffix(out.String(), "as encrypted extra vars\n"), out.String())
	assert.FileExists(t, opts.Output)
}

func TestRunConvert_ProgressStopsOnReadError(t *testing.T) {
	dir := t.TempDir()
	opts := convertOptions{
		Input:       dir,
		Output:      filepath.Join(dir, "inventory.yml"),
		Progress:    true,
		ProgressOut: &lockedBuffer{},
	}

	err := runConvert(opts, zap.NewNop(), &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error during conversion")
	assert.NoFileExists(t, opts.Output)
}

func TestLoadSettings_EnvOverrides(t *testing.T) {
	t.Setenv("DB_INVENTORY_VARS_DEBUG_MODE", "true")
	t.Setenv("DB_INVENTORY_VARS_BASE_RESULTS_DIR", "/srv/scans")
	t.Setenv("DB_INVENTORY_DEFAULTS_USERNAME", "envuser")

	s, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "envuser", s.Username)

	vars := s.GlobalVars()
	assert.Equal(t, "/srv/scans", vars.BaseResultsDir)
	assert.True(t, vars.DebugMode)
	assert.Equal(t, "local", vars.Connection)
}

func TestConvertCmd_MissingOutputIsUsageError(t *testing.T) {
	var buf bytes.Buffer
	RootCmd.SetOut(&buf)
	RootCmd.SetErr(&buf)
	RootCmd.SetArgs([]string{"convert", "-i", writeInput(t, scenario)})
	t.Cleanup(func() {
		RootCmd.SetOut(nil)
		RootCmd.SetErr(nil)
		RootCmd.SetArgs(nil)
	})

	err := RootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "output" not set`)
	assert.Contains(t, buf.String(), "Usage:")
}
