package main

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/sraja/versedrop/internal/tuitest"
)

// TestComposeFlow drives the real binary through a failed lookup and a
// successful one, then quits from the input stage. The script never loses
// terminal focus, so nothing is armed for delivery and the host clipboard
// stays untouched.
func TestComposeFlow(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("pty harness does not run on windows")
	}
	requireClipboardTool(t)

	cmdDir := moduleDir(t)
	dataDir := filepath.Join(cmdDir, "testdata", "verses")
	if _, err := os.Stat(filepath.Join(dataDir, "2.json")); err != nil {
		t.Fatalf("fixture missing: %v", err)
	}

	binary := buildBinary(t, cmdDir)
	home := t.TempDir()

	rec, err := tuitest.Run(context.Background(), tuitest.Config{
		Command: []string{binary, "--no-alt-screen", "--data", dataDir},
		Dir:     cmdDir,
		Env: []string{
			"HOME=" + home,
			"XDG_CONFIG_HOME=" + filepath.Join(home, ".config"),
			"XDG_CACHE_HOME=" + filepath.Join(home, ".cache"),
		},
		Steps: []tuitest.Step{
			tuitest.Pause(750 * time.Millisecond),
			// The startup prefill may have filled the input from the
			// host clipboard; clear it before typing.
			tuitest.Press(tuitest.KeyCtrlU),
			tuitest.Type("9:9"),
			tuitest.Press(tuitest.KeyEnter),
			tuitest.Pause(500 * time.Millisecond),
			tuitest.Press(tuitest.KeyCtrlU),
			tuitest.Type("2:255"),
			tuitest.Pause(500 * time.Millisecond),
			tuitest.Press(tuitest.KeyEsc),
		},
		Timeout: 15 * time.Second,
	})
	if err != nil {
		t.Fatalf("run versedrop: %v", err)
	}

	plain := rec.Plain()
	if !strings.Contains(plain, "versedrop") {
		t.Fatalf("title missing from capture:\n%s", plain)
	}
	if !strings.Contains(plain, "Sample Scripture") {
		t.Fatalf("dataset label missing from capture:\n%s", plain)
	}
	if !strings.Contains(plain, "no data for chapter 9") {
		t.Fatalf("missing-chapter message absent:\n%s", plain)
	}

	frame, ok := rec.Final()
	if !ok {
		t.Fatalf("no frames captured")
	}
	if !strings.Contains(frame.Text, "2:255") {
		t.Fatalf("typed reference missing from final frame:\n%s", frame.Text)
	}
}

// requireClipboardTool skips on hosts where startup would fail for want of
// a clipboard utility. Mac and Windows always have one; headless Linux CI
// often does not.
func requireClipboardTool(t *testing.T) {
	t.Helper()
	if runtime.GOOS != "linux" {
		return
	}
	for _, tool := range []string{"xclip", "xsel", "wl-copy"} {
		if _, err := exec.LookPath(tool); err == nil {
			return
		}
	}
	t.Skip("no clipboard utility on PATH")
}

func moduleDir(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller unavailable")
	}
	return filepath.Dir(file)
}

func buildBinary(t *testing.T, cmdDir string) string {
	t.Helper()
	name := "versedrop-itest"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	binPath := filepath.Join(t.TempDir(), name)
	cmd := exec.Command("go", "build", "-o", binPath, ".")
	cmd.Dir = cmdDir
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build versedrop: %v\n%s", err, output)
	}
	return binPath
}
