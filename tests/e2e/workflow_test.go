package e2e

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// binaryPath locates a prebuilt microhabit binary. MICROHABIT_BIN_DIR
// overrides the default ../../bin relative to this directory.
func binaryPath(t *testing.T) string {
	t.Helper()
	binDir := os.Getenv("MICROHABIT_BIN_DIR")
	if binDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			t.Fatalf("Failed to get cwd: %v", err)
		}
		binDir = filepath.Join(cwd, "..", "..", "bin")
	}
	binDir, _ = filepath.Abs(binDir)

	cliPath := filepath.Join(binDir, "microhabit")
	if _, err := os.Stat(cliPath); os.IsNotExist(err) {
		t.Skipf("CLI binary not found at %s, build it first", cliPath)
	}
	return cliPath
}

// isolatedEnv points HOME at tempDir and drops any connection override
func isolatedEnv(tempDir string) []string {
	var env []string
	for _, e := range os.Environ() {
		if strings.HasPrefix(e, "HOME=") || strings.HasPrefix(e, "XDG_CONFIG_HOME=") || strings.HasPrefix(e, "MICROHABIT_DB_CONNECTION=") {
			continue
		}
		env = append(env, e)
	}
	return append(env,
		fmt.Sprintf("HOME=%s", tempDir),
		fmt.Sprintf("XDG_CONFIG_HOME=%s", filepath.Join(tempDir, ".config")),
	)
}

func TestEndToEndWorkflow(t *testing.T) {
	cliPath := binaryPath(t)
	tempDir := t.TempDir()
	env := isolatedEnv(tempDir)

	dbPath := filepath.Join(tempDir, "data", "microhabit.db")
	base := []string{
		"--config", filepath.Join(tempDir, "config.toml"),
		"--db", dbPath,
	}
	run := func(args ...string) string {
		return runCmd(t, cliPath, env, append(append([]string{}, base...), args...)...)
	}

	t.Log("Initializing storage...")
	run("init")
	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("database not created: %v", err)
	}

	t.Log("Onboarding...")
	out := run("onboard", "-t", "water", "-t", "read", "-t", "exercise")
	if !strings.Contains(out, "Drink Water") {
		t.Errorf("unexpected onboard output: %s", out)
	}

	t.Log("Rating habits...")
	run("rate", "1", "5")
	run("rate", "read", "5")
	out = run("rate", "exercise", "5")
	if !strings.Contains(out, "Perfect Day") {
		t.Errorf("expected perfect day badge: %s", out)
	}

	out = run("today")
	if !strings.Contains(out, "70/70 points") {
		t.Errorf("unexpected today output: %s", out)
	}

	out = run("profile")
	if !strings.Contains(out, "Total points:        70") {
		t.Errorf("unexpected profile output: %s", out)
	}

	t.Log("Backing up...")
	run("backup", "create")
	out = run("backup", "list")
	if !strings.Contains(out, "1 total") {
		t.Errorf("unexpected backup list: %s", out)
	}

	run("doctor")

	t.Log("Resetting...")
	run("reset", "--yes")
	cmd := exec.Command(cliPath, append(append([]string{}, base...), "today")...)
	cmd.Env = env
	if out, err := cmd.CombinedOutput(); err == nil {
		t.Errorf("expected today to fail after reset, got: %s", out)
	}
}

func runCmd(t *testing.T, path string, env []string, args ...string) string {
	t.Helper()
	cmd := exec.Command(path, args...)
	cmd.Env = env
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Command %s %v failed: %v\nOutput: %s", path, args, err, out)
	}
	return string(out)
}
