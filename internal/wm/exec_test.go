package wm

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// installFakeClient writes an executable named name to a fresh directory
// placed first on PATH. The script logs its arguments to args.log.
func installFakeClient(t *testing.T, name, script string) string {
	t.Helper()
	dir := t.TempDir()
	body := "#!/bin/sh\necho \"$@\" >> \"" + filepath.Join(dir, "args.log") + "\"\n" + script
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0755); err != nil {
		t.Fatalf("write fake client: %v", err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
	return dir
}

func readArgs(t *testing.T, dir string) []string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "args.log"))
	if err != nil {
		t.Fatalf("read args: %v", err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestExecBackend_SwayTreeAndFocus(t *testing.T) {
	treePath := filepath.Join("testdata", "sway_tree.json")
	abs, err := filepath.Abs(treePath)
	if err != nil {
		t.Fatalf("abs: %v", err)
	}
	script := `case "$*" in
  *get_tree*) echo "noise" >&2; cat "` + abs + `" ;;
  *focus*) echo '[{"success":true}]' ;;
esac
`
	dir := installFakeClient(t, "swaymsg", script)

	b, err := NewExecBackend(FlavorSway, "", time.Second)
	if err != nil {
		t.Fatalf("NewExecBackend: %v", err)
	}
	data, err := b.Tree(context.Background())
	if err != nil {
		t.Fatalf("Tree: %v", err)
	}
	if strings.Contains(string(data), "noise") {
		t.Fatalf("stderr leaked into the tree")
	}
	if err := b.Focus(context.Background(), 13); err != nil {
		t.Fatalf("Focus: %v", err)
	}

	args := readArgs(t, dir)
	want := []string{"-r -t get_tree", "-r [con_id=13] focus"}
	if len(args) != len(want) || args[0] != want[0] || args[1] != want[1] {
		t.Fatalf("args = %q, want %q", args, want)
	}
}

func TestExecBackend_I3WithSocket(t *testing.T) {
	dir := installFakeClient(t, "i3-msg", `echo '[{"success":true}]'`+"\n")

	b, err := NewExecBackend(FlavorI3, "/run/i3.sock", time.Second)
	if err != nil {
		t.Fatalf("NewExecBackend: %v", err)
	}
	if b.Name() != "i3 (exec)" {
		t.Fatalf("Name() = %q", b.Name())
	}
	if err := b.Focus(context.Background(), 5); err != nil {
		t.Fatalf("Focus: %v", err)
	}
	if args := readArgs(t, dir); args[0] != "-s /run/i3.sock [con_id=5] focus" {
		t.Fatalf("args = %q", args)
	}
}

func TestExecBackend_FocusFailures(t *testing.T) {
	tests := []struct {
		name    string
		script  string
		wantMsg string
	}{
		{
			name:    "failure reply",
			script:  `echo '[{"success":false,"error":"No matching node."}]'; exit 2` + "\n",
			wantMsg: "No matching node.",
		},
		{
			name:    "exit status with stderr",
			script:  `echo "unable to connect" >&2; exit 1` + "\n",
			wantMsg: "unable to connect",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			installFakeClient(t, "swaymsg", tt.script)
			b, err := NewExecBackend(FlavorSway, "", time.Second)
			if err != nil {
				t.Fatalf("NewExecBackend: %v", err)
			}
			err = b.Focus(context.Background(), 1)
			if !errors.Is(err, ErrCommandFailed) {
				t.Fatalf("expected ErrCommandFailed, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Fatalf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestExecBackend_TreeFailure(t *testing.T) {
	installFakeClient(t, "swaymsg", "exit 1\n")
	b, err := NewExecBackend(FlavorSway, "", time.Second)
	if err != nil {
		t.Fatalf("NewExecBackend: %v", err)
	}
	if _, err := b.Tree(context.Background()); err == nil {
		t.Fatalf("expected error from failing client")
	}
}

func TestNewExecBackend_MissingBinary(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	if _, err := NewExecBackend(FlavorI3, "", time.Second); err == nil {
		t.Fatalf("expected lookup error")
	}
}
