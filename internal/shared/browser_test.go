package shared

import (
	"errors"
	"os/exec"
	"testing"
)

func TestOpenBrowser(t *testing.T) {
	origRuntime, origStart := getRuntime, startCommand
	t.Cleanup(func() {
		getRuntime = origRuntime
		startCommand = origStart
	})

	t.Run("Uses Platform Opener", func(t *testing.T) {
		var launched *exec.Cmd
		getRuntime = func() string { return "linux" }
		startCommand = func(cmd *exec.Cmd) error {
			launched = cmd
			return nil
		}

		if err := OpenBrowser("https://www.themoviedb.org/movie/1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if launched == nil || launched.Args[0] != "xdg-open" {
			t.Fatalf("expected xdg-open, got %#v", launched)
		}
	})

	t.Run("Unsupported Platform", func(t *testing.T) {
		getRuntime = func() string { return "plan9" }
		if err := OpenBrowser("https://example.com"); err == nil {
			t.Error("expected error for unsupported platform")
		}
	})

	t.Run("Empty URL", func(t *testing.T) {
		if err := OpenBrowser(""); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("Start Failure", func(t *testing.T) {
		getRuntime = func() string { return "darwin" }
		startCommand = func(*exec.Cmd) error { return errors.New("no opener") }
		if err := OpenBrowser("https://example.com"); err == nil {
			t.Error("expected start failure to propagate")
		}
	})
}
