package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/riordanpawley/toastq/internal/cli"
	"github.com/riordanpawley/toastq/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := cli.NewRootCmdForTest()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func outputLines(out string) []string {
	return strings.Split(strings.TrimSpace(out), "\n")
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "toastq dev (none)\n", out)
}

func TestReplaySimulate(t *testing.T) {
	tmpDir := t.TempDir()
	scriptPath := writeFile(t, tmpDir, "demo.yaml", `
- message: Saved
- after: 1s
  message: Upload failed
  level: error
  duration: 500ms
- after: 100ms
  message: Disk almost full
  level: warn
  duration: 10s
`)

	out, err := execute(t, "replay", scriptPath, "--simulate", "--path", tmpDir)
	require.NoError(t, err)

	assert.Equal(t, []string{
		`+ #1 success "Saved"`,
		`+ #2 error "Upload failed"`,
		`+ #3 warning "Disk almost full"`,
		`- #2 expired`,
		`- #1 expired`,
		`- #3 expired`,
	}, outputLines(out))
}

func TestReplaySimulateUsesConfigDuration(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, config.YAMLFileName, "toast:\n  durationMs: 100\n")
	scriptPath := writeFile(t, tmpDir, "demo.json", `[
  {"message": "first"},
  {"after": "50ms", "message": "second", "duration": "1s"},
  {"after": "10ms", "message": "third"}
]`)

	out, err := execute(t, "replay", scriptPath, "--simulate", "--path", tmpDir)
	require.NoError(t, err)

	// first expires at 100ms, third at 160ms, second at 1.05s
	assert.Equal(t, []string{
		`+ #1 success "first"`,
		`+ #2 success "second"`,
		`+ #3 success "third"`,
		`- #1 expired`,
		`- #3 expired`,
		`- #2 expired`,
	}, outputLines(out))
}

func TestReplayHeadless(t *testing.T) {
	tmpDir := t.TempDir()
	scriptPath := writeFile(t, tmpDir, "quick.yaml", `
- message: short
  duration: 10ms
- message: longer
  level: error
  duration: 300ms
`)

	out, err := execute(t, "replay", scriptPath, "--path", tmpDir)
	require.NoError(t, err)

	assert.Equal(t, []string{
		`+ #1 success "short"`,
		`+ #2 error "longer"`,
		`- #1 expired`,
		`- #2 expired`,
	}, outputLines(out))
}

func TestReplayInvalidScript(t *testing.T) {
	tmpDir := t.TempDir()
	scriptPath := writeFile(t, tmpDir, "bad.yaml", `
- message: fine
- message: broken
  level: shout
`)

	_, err := execute(t, "replay", scriptPath, "--simulate", "--path", tmpDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 2")
}

func TestReplayMissingScript(t *testing.T) {
	_, err := execute(t, "replay", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read script")
}

func TestReplayRejectsTUIWithSimulate(t *testing.T) {
	tmpDir := t.TempDir()
	scriptPath := writeFile(t, tmpDir, "demo.yaml", "- message: hi\n")

	_, err := execute(t, "replay", scriptPath, "--tui", "--simulate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be combined")
}

func TestReplayRequiresScript(t *testing.T) {
	_, err := execute(t, "replay")
	assert.Error(t, err)
}

func TestReplayInvalidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, config.JSONFileName, `{"toast": {"durationMs": -10}}`)
	scriptPath := writeFile(t, tmpDir, "demo.yaml", "- message: hi\n")

	_, err := execute(t, "replay", scriptPath, "--simulate", "--path", tmpDir)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestReplayWritesLogFile(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, config.YAMLFileName, "log:\n  level: debug\n  file: logs/toastq.log\n")
	scriptPath := writeFile(t, tmpDir, "demo.yaml", "- message: hi\n- after: 1500ms\n  message: later\n")

	_, err := execute(t, "replay", scriptPath, "--simulate", "--path", tmpDir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(tmpDir, "logs", "toastq.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "toast enqueued")
	assert.Contains(t, string(data), "simulated replay finished")
	assert.Contains(t, string(data), "length=1.5s")
	assert.Contains(t, string(data), "session=")
}

func TestConfigShowDefaults(t *testing.T) {
	out, err := execute(t, "config", "show", "--path", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, `"durationMs": 3000`)
	assert.Contains(t, out, `"maxWidth": 40`)
}

func TestConfigShowDefaultsToWorkingDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, config.YAMLFileName, "toast:\n  durationMs: 2500\n")
	t.Chdir(tmpDir)

	out, err := execute(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, `"durationMs": 2500`)
}

func TestConfigShowMergesFile(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, config.YAMLFileName, "toast:\n  durationMs: 1500\n")

	out, err := execute(t, "config", "show", "--path", tmpDir)
	require.NoError(t, err)
	assert.Contains(t, out, `"durationMs": 1500`)
	assert.Contains(t, out, `"historySize": 8`)
}

func TestConfigInit(t *testing.T) {
	tmpDir := t.TempDir()

	out, err := execute(t, "config", "init", "--path", tmpDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Created .toastq.json")

	cfg, err := config.LoadConfig(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)

	data, err := os.ReadFile(filepath.Join(tmpDir, config.JSONFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version": 1`)
}

func TestConfigInitFailsIfExists(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, config.JSONFileName, "{}")

	_, err := execute(t, "config", "init", "--path", tmpDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestConfigInitForceOverwrites(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, config.JSONFileName, "{}")

	_, err := execute(t, "config", "init", "--force", "--path", tmpDir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(tmpDir, config.JSONFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "durationMs")
}
