package root

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/Paintersrp/linkext/internal/config"
	"github.com/Paintersrp/linkext/internal/constants"
	"github.com/Paintersrp/linkext/internal/state"
	"github.com/Paintersrp/linkext/pkg/cmd/selection"
)

const noteA = `---
url: https://a.example
---
See [[b]] and [[c|Cee]] and [[missing#Part]].
`

func writeVault(t *testing.T) string {
	t.Helper()
	vaultDir := t.TempDir()
	notes := map[string]string{
		"a.md":        noteA,
		"b.md":        "---\nurl: https://b.example\nsource: https://b.src\n---\nB\n",
		"nested/c.md": "---\nurl: https://c.example\n---\nC\n",
	}
	for name, content := range notes {
		path := filepath.Join(vaultDir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return vaultDir
}

// newState returns a state whose active workspace uses vaultDir.
func newState(t *testing.T, vaultDir string) *state.State {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	s, err := state.NewState(t.TempDir())
	if err != nil {
		t.Fatalf("NewState returned error: %v", err)
	}
	if err := s.Config.Set(config.KeyVaultDir, vaultDir); err != nil {
		t.Fatalf("Set vault returned error: %v", err)
	}
	return s
}

func setupVault(t *testing.T) *state.State {
	t.Helper()
	return newState(t, writeVault(t))
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() { os.Chdir(prev) })
}

func devNull(t *testing.T) *os.File {
	t.Helper()
	f, err := os.Open(os.DevNull)
	if err != nil {
		t.Fatalf("open %s: %v", os.DevNull, err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

type result struct {
	stdout, stderr string
}

func run(t *testing.T, s *state.State, stdin any, args ...string) (result, error) {
	t.Helper()
	cmd, err := NewCmdRoot(s)
	if err != nil {
		t.Fatalf("NewCmdRoot returned error: %v", err)
	}

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	switch in := stdin.(type) {
	case string:
		cmd.SetIn(strings.NewReader(in))
	case *os.File:
		cmd.SetIn(in)
	}
	cmd.SetArgs(args)

	err = cmd.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String()}, err
}

func TestPageCommand(t *testing.T) {
	s := setupVault(t)

	res, err := run(t, s, devNull(t), "page", "a.md", "--stdout")
	if err != nil {
		t.Fatalf("page returned error: %v", err)
	}
	want := "See [b](https://b.example) and [Cee](https://c.example) and missing.\n"
	if res.stdout != want {
		t.Fatalf("unexpected page output:\n got %q\nwant %q", res.stdout, want)
	}
}

func TestPageKeepsFrontmatterWhenAsked(t *testing.T) {
	s := setupVault(t)

	res, err := run(t, s, devNull(t), "page", "a", "--stdout", "--frontmatter")
	if err != nil {
		t.Fatalf("page returned error: %v", err)
	}
	if !strings.HasPrefix(res.stdout, "---\nurl: https://a.example\n---\n") {
		t.Fatalf("expected front matter to be kept, got %q", res.stdout)
	}
}

func TestRootDispatchesToPage(t *testing.T) {
	s := setupVault(t)

	res, err := run(t, s, devNull(t), "a.md", "--stdout")
	if err != nil {
		t.Fatalf("root returned error: %v", err)
	}
	if !strings.HasPrefix(res.stdout, "See [b](https://b.example)") {
		t.Fatalf("expected page output, got %q", res.stdout)
	}
}

func TestRootDispatchesToSelection(t *testing.T) {
	s := setupVault(t)

	res, err := run(t, s, "only [[c]] here", "a.md", "--stdout")
	if err != nil {
		t.Fatalf("root returned error: %v", err)
	}
	if res.stdout != "only [c](https://c.example) here" {
		t.Fatalf("expected piped selection to be externalized, got %q", res.stdout)
	}
}

func TestRootEmptyStdinFallsBackToPage(t *testing.T) {
	s := setupVault(t)

	res, err := run(t, s, "", "a.md", "--stdout")
	if err != nil {
		t.Fatalf("root returned error: %v", err)
	}
	want := "See [b](https://b.example) and [Cee](https://c.example) and missing.\n"
	if res.stdout != want {
		t.Fatalf("expected page output for an empty pipe:\n got %q\nwant %q", res.stdout, want)
	}
}

func TestSelectionEmptyStdin(t *testing.T) {
	s := setupVault(t)

	_, err := run(t, s, "", "selection", "a.md", "--stdout")
	if !errors.Is(err, selection.ErrNoSelection) {
		t.Fatalf("expected ErrNoSelection for an empty pipe, got %v", err)
	}
}

func TestVaultOverride(t *testing.T) {
	want := "See [b](https://b.example) and [Cee](https://c.example) and missing.\n"
	tests := []struct {
		name  string
		setup func(t *testing.T, vault string) []string
	}{
		{
			name: "absolute flag",
			setup: func(t *testing.T, vault string) []string {
				return []string{"--vault", vault}
			},
		},
		{
			name: "relative flag",
			setup: func(t *testing.T, vault string) []string {
				chdir(t, filepath.Dir(vault))
				return []string{"--vault", "./" + filepath.Base(vault)}
			},
		},
		{
			name: "relative env",
			setup: func(t *testing.T, vault string) []string {
				chdir(t, filepath.Dir(vault))
				t.Setenv(constants.EnvPrefix+"_VAULTDIR", filepath.Base(vault))
				viper.SetEnvPrefix(constants.EnvPrefix)
				viper.AutomaticEnv()
				return nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vault := writeVault(t)
			// The saved workspace points at an empty vault.
			s := newState(t, t.TempDir())
			extra := tt.setup(t, vault)

			args := append([]string{"page", "a.md", "--stdout"}, extra...)
			res, err := run(t, s, devNull(t), args...)
			if err != nil {
				t.Fatalf("page returned error: %v", err)
			}
			if res.stdout != want {
				t.Fatalf("unexpected output:\n got %q\nwant %q\nstderr %q", res.stdout, want, res.stderr)
			}
			if s.Config.MustWorkspace().VaultDir == vault {
				t.Fatalf("expected the vault override not to be saved")
			}
		})
	}
}

func TestSelectionLinesAndText(t *testing.T) {
	s := setupVault(t)

	res, err := run(t, s, devNull(t), "selection", "a.md", "--lines", "4", "--stdout")
	if err != nil {
		t.Fatalf("selection --lines returned error: %v", err)
	}
	if res.stdout != "See [b](https://b.example) and [Cee](https://c.example) and missing.\n" {
		t.Fatalf("unexpected line selection output: %q", res.stdout)
	}

	res, err = run(t, s, devNull(t), "selection", "a.md", "--text", "[[b|Bee]] and [[a]]", "--stdout")
	if err != nil {
		t.Fatalf("selection --text returned error: %v", err)
	}
	if res.stdout != "[Bee](https://b.example) and a" {
		t.Fatalf("unexpected text selection output: %q", res.stdout)
	}
}

func TestSelectionWithoutSource(t *testing.T) {
	s := setupVault(t)

	if _, err := run(t, s, devNull(t), "selection", "a.md", "--stdout"); err == nil {
		t.Fatalf("expected missing selection to fail")
	}
}

func TestFieldOverrideAndNotices(t *testing.T) {
	s := setupVault(t)

	res, err := run(t, s, devNull(t), "page", "a.md", "--stdout", "--field", "source")
	if err != nil {
		t.Fatalf("page returned error: %v", err)
	}
	if res.stdout != "See [b](https://b.src) and Cee and missing.\n" {
		t.Fatalf("unexpected output with field override: %q", res.stdout)
	}

	res, err = run(t, s, devNull(t), "page", "a.md", "--stdout", "--field", "href")
	if err != nil {
		t.Fatalf("page returned error: %v", err)
	}
	if !strings.Contains(res.stderr, "No 'href' values found in linked frontmatter.") {
		t.Fatalf("expected missing field notice, got %q", res.stderr)
	}
	if s.Config.MustWorkspace().FieldName != "url" {
		t.Fatalf("expected field override not to be saved")
	}
}

func TestPageWithoutActiveFile(t *testing.T) {
	s := setupVault(t)

	res, err := run(t, s, devNull(t), "page", "--stdout")
	if err != nil {
		t.Fatalf("page returned error: %v", err)
	}
	if res.stdout != "" || !strings.Contains(res.stderr, "No active file.") {
		t.Fatalf("expected no active file notice, got stdout=%q stderr=%q", res.stdout, res.stderr)
	}
}

func TestPinThenPage(t *testing.T) {
	s := setupVault(t)

	if _, err := run(t, s, devNull(t), "pin", "a.md"); err != nil {
		t.Fatalf("pin returned error: %v", err)
	}
	res, err := run(t, s, devNull(t), "pin", "--check")
	if err != nil {
		t.Fatalf("pin --check returned error: %v", err)
	}
	if !strings.Contains(res.stdout, filepath.Join(s.Workspace.VaultDir, "a.md")) {
		t.Fatalf("expected pinned file in output, got %q", res.stdout)
	}

	res, err = run(t, s, devNull(t), "page", "--stdout")
	if err != nil {
		t.Fatalf("page returned error: %v", err)
	}
	if !strings.HasPrefix(res.stdout, "See [b](https://b.example)") {
		t.Fatalf("expected pinned note to be used, got %q", res.stdout)
	}
}
