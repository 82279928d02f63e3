package internal

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	progressStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
)

// ShowProgress runs fn while a spinner with message is drawn on stderr.
// Without a TTY the message is logged and fn runs directly.
func ShowProgress(ctx context.Context, message string, fn func() error) error {
	if !IsTerminal(os.Stderr) {
		LogDebug("%s", message)
		return fn()
	}

	if gumAvailable() {
		return showProgressWithGum(ctx, message, fn)
	}

	return showProgressSimple(ctx, os.Stderr, message, fn)
}

// showProgressWithGum uses gum spinner for progress
func showProgressWithGum(ctx context.Context, message string, fn func() error) error {
	done := make(chan error, 1)
	spinnerDone := make(chan struct{})

	cmd := exec.CommandContext(ctx, "gum", "spin", "--spinner", "dot", "--title", message, "--", "sh", "-c", "while true; do sleep 0.1; done")
	cmd.Stderr = os.Stderr
	cmd.Stdout = os.Stderr
	if err := cmd.Start(); err != nil {
		return showProgressSimple(ctx, os.Stderr, message, fn)
	}

	go func() {
		defer close(spinnerDone)
		_ = cmd.Wait()
	}()

	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		_ = cmd.Process.Kill()
		<-spinnerDone
		return finishProgress(os.Stderr, message, err)
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-spinnerDone
		return ctx.Err()
	}
}

// showProgressSimple draws a braille spinner on w
func showProgressSimple(ctx context.Context, w io.Writer, message string, fn func() error) error {
	done := make(chan error, 1)
	stop := make(chan struct{})
	spinnerDone := make(chan struct{})

	go func() {
		defer close(spinnerDone)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		i := 0
		for {
			select {
			case <-stop:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				fmt.Fprintf(w, "\r%s %s", progressStyle.Render(spinnerFrames[i%len(spinnerFrames)]), message)
				i++
			}
		}
	}()

	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		close(stop)
		<-spinnerDone
		return finishProgress(w, message, err)
	case <-ctx.Done():
		close(stop)
		<-spinnerDone
		return ctx.Err()
	}
}

func finishProgress(w io.Writer, message string, err error) error {
	if err != nil {
		fmt.Fprintf(w, "\r%s %s\n", errorStyle.Render("✗"), message)
		return err
	}
	// clear the spinner line
	fmt.Fprintf(w, "\r\033[K")
	return nil
}

// gumAvailable checks if gum is available
func gumAvailable() bool {
	_, err := exec.LookPath("gum")
	return err == nil
}

// IsTerminal checks if the writer is a terminal
func IsTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}

// PrintSuccess prints a success message
func PrintSuccess(w io.Writer, message string) {
	if IsTerminal(w) {
		fmt.Fprintf(w, "%s %s\n", successStyle.Render("✓"), message)
	} else {
		fmt.Fprintln(w, message)
	}
}

// PrintError prints an error message
func PrintError(w io.Writer, message string) {
	if IsTerminal(w) {
		fmt.Fprintf(w, "%s %s\n", errorStyle.Render("✗"), message)
	} else {
		fmt.Fprintf(w, "ERROR: %s\n", message)
	}
}

// PrintInfo prints an info message
func PrintInfo(w io.Writer, message string) {
	if IsTerminal(w) {
		fmt.Fprintf(w, "%s %s\n", progressStyle.Render("ℹ"), message)
	} else {
		fmt.Fprintln(w, message)
	}
}

// PrintWarning prints a warning message
func PrintWarning(w io.Writer, message string) {
	if IsTerminal(w) {
		fmt.Fprintf(w, "%s %s\n", warningStyle.Render("⚠"), message)
	} else {
		fmt.Fprintf(w, "WARNING: %s\n", message)
	}
}
