package internal

import (
	"errors"
	"strings"
	"testing"
)

func TestFindModel(t *testing.T) {
	if m, ok := FindModel("gemini-pro"); !ok || m.Name != "Gemini Pro" {
		t.Errorf("FindModel(gemini-pro) = %+v, %v", m, ok)
	}
	if _, ok := FindModel("gpt-5"); ok {
		t.Error("FindModel(gpt-5) should not be found")
	}
}

func TestSelectedModel(t *testing.T) {
	tests := []struct {
		name  string
		prefs Preferences
		want  string
	}{
		{name: "nil preferences", prefs: nil, want: "gpt-4"},
		{name: "nothing stored", prefs: newMemoryPrefs(), want: "gpt-4"},
		{name: "stored model", prefs: &memoryPrefs{values: map[string]string{ModelPreferenceKey: "claude-2"}}, want: "claude-2"},
		{name: "unknown stored model", prefs: &memoryPrefs{values: map[string]string{ModelPreferenceKey: "bogus"}}, want: "gpt-4"},
		{name: "read failure", prefs: &memoryPrefs{getErr: errors.New("locked")}, want: "gpt-4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SelectedModel(tt.prefs).ID; got != tt.want {
				t.Errorf("SelectedModel() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSelectModel(t *testing.T) {
	prefs := newMemoryPrefs()

	m, err := SelectModel(prefs, "llama-2")
	if err != nil {
		t.Fatalf("SelectModel() error = %v", err)
	}
	if m.ID != "llama-2" || prefs.values[ModelPreferenceKey] != "llama-2" {
		t.Errorf("SelectModel() = %+v, stored %q", m, prefs.values[ModelPreferenceKey])
	}

	_, err = SelectModel(prefs, "gpt-5")
	if err == nil || !strings.Contains(err.Error(), "gpt-3.5") {
		t.Errorf("SelectModel(unknown) error = %v, want list of available ids", err)
	}
	if prefs.values[ModelPreferenceKey] != "llama-2" {
		t.Error("unknown model must not overwrite the stored choice")
	}
}
