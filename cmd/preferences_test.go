package cmd

import (
	"strings"
	"testing"
)

func TestThemeCommand(t *testing.T) {
	env := newTestEnv(t)

	steps := []struct {
		args []string
		want string
	}{
		{args: []string{"theme"}, want: "dark"},
		{args: []string{"theme", "toggle"}, want: "light"},
		{args: []string{"theme"}, want: "light"},
		{args: []string{"theme", "toggle"}, want: "dark"},
		{args: []string{"theme", "toggle"}, want: "light"},
		{args: []string{"theme", "reset"}, want: "dark"},
		{args: []string{"theme"}, want: "dark"},
	}

	for _, step := range steps {
		out, _, err := env.run(t, "", step.args...)
		if err != nil {
			t.Fatalf("%v error = %v", step.args, err)
		}
		if !strings.Contains(out, step.want) {
			t.Errorf("%v output = %q, want %q", step.args, out, step.want)
		}
	}
}

func TestThemeCommand_InvalidArg(t *testing.T) {
	env := newTestEnv(t)
	if _, _, err := env.run(t, "", "theme", "purple"); err == nil {
		t.Error("unknown theme argument should fail")
	}
}

func TestModelsCommand(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := env.run(t, "", "models")
	if err != nil {
		t.Fatalf("models error = %v", err)
	}
	for _, id := range []string{"gpt-4", "gpt-3.5", "gemini-pro", "claude-2", "llama-2"} {
		if !strings.Contains(out, id) {
			t.Errorf("output should list %s", id)
		}
	}
	if !markedLine(out, "gpt-4") {
		t.Errorf("gpt-4 should be selected by default, got:\n%s", out)
	}

	if _, _, err := env.run(t, "", "models", "select", "claude-2"); err != nil {
		t.Fatalf("models select error = %v", err)
	}

	out, _, err = env.run(t, "", "models")
	if err != nil {
		t.Fatalf("models error = %v", err)
	}
	if !markedLine(out, "claude-2") || markedLine(out, "gpt-4 ") {
		t.Errorf("claude-2 should be selected, got:\n%s", out)
	}

	if _, _, err := env.run(t, "", "models", "select", "gpt-5"); err == nil {
		t.Error("selecting an unknown model should fail")
	}
}

// markedLine reports whether the table row holding id carries the selection marker
func markedLine(out, id string) bool {
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, id) && strings.Contains(line, "*") {
			return true
		}
	}
	return false
}

func TestProfileCommand(t *testing.T) {
	env := newTestEnv(t)
	env.backend.SetProfile(`{"name": "Ada Lovelace", "language": "en", "plan": "pro"}`)

	out, _, err := env.run(t, "", "profile")
	if err != nil {
		t.Fatalf("profile error = %v", err)
	}
	for _, want := range []string{"Ada Lovelace", "plan:", "pro"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got:\n%s", want, out)
		}
	}

	out, _, err = env.run(t, "", "profile", "--yaml")
	if err != nil {
		t.Fatalf("profile --yaml error = %v", err)
	}
	if !strings.Contains(out, "name: Ada Lovelace") || !strings.Contains(out, "plan: pro") {
		t.Errorf("yaml output = %q", out)
	}
}
