package cmd

import (
	"strings"
	"testing"

	"github.com/iksnae/mosje-chat/testutil"
)

func TestShowCommand(t *testing.T) {
	env := newTestEnv(t)
	env.backend.SetHistory(testutil.HistoryFixture)

	tests := []struct {
		name    string
		args    []string
		want    []string
		wantErr bool
	}{
		{
			name:    "show without session ID",
			args:    []string{"show"},
			wantErr: true,
		},
		{
			name:    "unknown session",
			args:    []string{"show", "nope"},
			wantErr: true,
		},
		{
			name: "history session",
			args: []string{"show", "hist-2"},
			want: []string{"Chat Session", "hist-2", "Who made it?", "Google.", "You", "Assistant"},
		},
		{
			name: "limit to last message",
			args: []string{"show", "hist-1", "--limit", "1"},
			want: []string{"A programming language."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := env.run(t, "", tt.args...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("show error = %v, wantErr %v", err, tt.wantErr)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output should contain %q, got:\n%s", want, out)
				}
			}
		})
	}
}

func TestShowCommand_LimitDropsEarlierMessages(t *testing.T) {
	env := newTestEnv(t)
	env.backend.SetHistory(testutil.HistoryFixture)

	out, _, err := env.run(t, "", "show", "hist-1", "--limit", "1")
	if err != nil {
		t.Fatalf("show error = %v", err)
	}
	if strings.Contains(out, "What is Go?") {
		t.Errorf("--limit 1 should hide the question, got:\n%s", out)
	}
}

func TestSessionsCommand(t *testing.T) {
	env := newTestEnv(t)
	env.backend.SetHistory(testutil.HistoryFixture)

	out, stderr, err := env.run(t, "", "sessions")
	if err != nil {
		t.Fatalf("sessions error = %v", err)
	}
	for _, want := range []string{"hist-1", "hist-2", "What is Go?", "Who made it?"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got:\n%s", want, out)
		}
	}
	if !strings.Contains(stderr, "2 session(s)") {
		t.Errorf("stderr should report the count, got %q", stderr)
	}
}

func TestSessionsCommand_EmptyHistory(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := env.run(t, "", "sessions")
	if err != nil {
		t.Fatalf("sessions error = %v", err)
	}
	if !strings.Contains(out, "New Chat") {
		t.Errorf("empty history should list the default session, got:\n%s", out)
	}
}

func TestSessionsCommand_HistoryFailure(t *testing.T) {
	env := newTestEnv(t)
	env.backend.FailHistory(500)

	out, _, err := env.run(t, "", "sessions")
	if err != nil {
		t.Fatalf("history failure must fall back to a default session, got error %v", err)
	}
	if !strings.Contains(out, "New Chat") {
		t.Errorf("output should list the default session, got:\n%s", out)
	}
}
