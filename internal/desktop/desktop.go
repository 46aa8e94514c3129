// Package desktop shells out to the platform's windowing tools for the
// two things a terminal program cannot do itself: minimizing its own
// window and injecting the paste shortcut into whichever window holds
// focus afterwards.
package desktop

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// command is one candidate tool invocation. The first candidate whose
// binary resolves on PATH is the one that runs.
type command struct {
	name string
	args []string
}

func run(ctx context.Context, candidates []command) error {
	var missing []string
	for _, c := range candidates {
		path, err := exec.LookPath(c.name)
		if err != nil {
			missing = append(missing, c.name)
			continue
		}
		out, err := exec.CommandContext(ctx, path, c.args...).CombinedOutput()
		if err != nil {
			return fmt.Errorf("%s: %v: %s", c.name, err, bytes.TrimSpace(out))
		}
		return nil
	}
	return fmt.Errorf("no supported tool on PATH (tried %s)", strings.Join(missing, ", "))
}

func lookupAny(candidates []command) bool {
	for _, c := range candidates {
		if _, err := exec.LookPath(c.name); err == nil {
			return true
		}
	}
	return false
}

// Injector drives the platform paste shortcut.
type Injector struct{}

func NewInjector() *Injector { return &Injector{} }

// Paste sends the paste chord to the currently focused window.
func (*Injector) Paste(ctx context.Context) error {
	return run(ctx, pasteCommands())
}

// Available reports whether at least one paste tool is installed.
func (*Injector) Available() bool {
	return lookupAny(pasteCommands())
}

// HideWindow asks the window manager to minimize the active window.
// Callers treat failure as cosmetic: the focus-loss event that matters
// fires whether or not the minimize succeeded.
func HideWindow(ctx context.Context) error {
	return run(ctx, hideCommands())
}

func pasteCommands() []command {
	switch runtime.GOOS {
	case "darwin":
		return []command{
			{name: "osascript", args: []string{"-e", `tell application "System Events" to keystroke "v" using command down`}},
		}
	case "windows":
		return []command{
			{name: "powershell", args: []string{"-NoProfile", "-Command", `Add-Type -AssemblyName System.Windows.Forms; [System.Windows.Forms.SendKeys]::SendWait('^v')`}},
		}
	default:
		return []command{
			{name: "xdotool", args: []string{"key", "--clearmodifiers", "ctrl+v"}},
			{name: "wtype", args: []string{"-M", "ctrl", "-k", "v", "-m", "ctrl"}},
		}
	}
}

func hideCommands() []command {
	switch runtime.GOOS {
	case "darwin":
		return []command{
			{name: "osascript", args: []string{"-e", `tell application "System Events" to keystroke "m" using command down`}},
		}
	case "windows":
		return []command{
			{name: "powershell", args: []string{"-NoProfile", "-Command", `Add-Type -AssemblyName System.Windows.Forms; [System.Windows.Forms.SendKeys]::SendWait('% n')`}},
		}
	default:
		return []command{
			{name: "xdotool", args: []string{"getactivewindow", "windowminimize"}},
		}
	}
}
