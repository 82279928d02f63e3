package internal

import (
	"strconv"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// ThemePreferenceKey stores the dark-mode flag
const ThemePreferenceKey = "isDarkMode"

// Palette is the set of colors the terminal UI draws with
type Palette struct {
	Primary        lipgloss.Color
	Secondary      lipgloss.Color
	Accent         lipgloss.Color
	Success        lipgloss.Color
	Warning        lipgloss.Color
	Error          lipgloss.Color
	Background     lipgloss.Color
	Surface        lipgloss.Color
	Text           lipgloss.Color
	TextSecondary  lipgloss.Color
	Border         lipgloss.Color
	Disabled       lipgloss.Color
	Divider        lipgloss.Color
	CardBackground lipgloss.Color
	Red            lipgloss.Color
	Green          lipgloss.Color
}

var (
	DarkPalette = Palette{
		Primary:        lipgloss.Color("#4285F4"),
		Secondary:      lipgloss.Color("#BB86FC"),
		Accent:         lipgloss.Color("#03DAC6"),
		Success:        lipgloss.Color("#4CAF50"),
		Warning:        lipgloss.Color("#FFC107"),
		Error:          lipgloss.Color("#F44336"),
		Background:     lipgloss.Color("#121212"),
		Surface:        lipgloss.Color("#1E1E1E"),
		Text:           lipgloss.Color("#FFFFFF"),
		TextSecondary:  lipgloss.Color("#B0B0B0"),
		Border:         lipgloss.Color("#2D2D2D"),
		Disabled:       lipgloss.Color("#5C5C5C"),
		Divider:        lipgloss.Color("#2D2D2D"),
		CardBackground: lipgloss.Color("#1E1E1E"),
		Red:            lipgloss.Color("#FF453A"),
		Green:          lipgloss.Color("#32D74B"),
	}

	LightPalette = Palette{
		Primary:        lipgloss.Color("#1A73E8"),
		Secondary:      lipgloss.Color("#6200EE"),
		Accent:         lipgloss.Color("#03DAC6"),
		Success:        lipgloss.Color("#4CAF50"),
		Warning:        lipgloss.Color("#FFC107"),
		Error:          lipgloss.Color("#F44336"),
		Background:     lipgloss.Color("#F5F5F5"),
		Surface:        lipgloss.Color("#FFFFFF"),
		Text:           lipgloss.Color("#121212"),
		TextSecondary:  lipgloss.Color("#666666"),
		Border:         lipgloss.Color("#E0E0E0"),
		Disabled:       lipgloss.Color("#9E9E9E"),
		Divider:        lipgloss.Color("#E0E0E0"),
		CardBackground: lipgloss.Color("#FFFFFF"),
		Red:            lipgloss.Color("#FF3B30"),
		Green:          lipgloss.Color("#34C759"),
	}
)

// Styles are the lipgloss styles derived from a palette
type Styles struct {
	Header      lipgloss.Style
	UserLabel   lipgloss.Style
	BotLabel    lipgloss.Style
	Content     lipgloss.Style
	Timestamp   lipgloss.Style
	Attachment  lipgloss.Style
	ErrorText   lipgloss.Style
	Muted       lipgloss.Style
	SessionItem lipgloss.Style
	Selected    lipgloss.Style
}

// StylesFor builds the UI styles for a palette
func StylesFor(p Palette) Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Text).
			Background(p.Surface).
			Padding(0, 1),
		UserLabel: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),
		BotLabel: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Secondary),
		Content: lipgloss.NewStyle().
			Foreground(p.Text).
			Padding(0, 2),
		Timestamp: lipgloss.NewStyle().
			Foreground(p.TextSecondary).
			Italic(true),
		Attachment: lipgloss.NewStyle().
			Foreground(p.Accent).
			Padding(0, 2),
		ErrorText: lipgloss.NewStyle().
			Foreground(p.Error).
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(p.TextSecondary),
		SessionItem: lipgloss.NewStyle().
			Foreground(p.Text),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),
	}
}

// ThemeManager tracks the dark-mode flag and persists it on toggle.
// Persistence failures are logged; the in-memory state still changes.
type ThemeManager struct {
	mu    sync.Mutex
	prefs Preferences
	dark  bool
}

// LoadTheme reads the stored flag. A missing value or read failure means dark mode.
func LoadTheme(prefs Preferences) *ThemeManager {
	tm := &ThemeManager{prefs: prefs, dark: true}
	if prefs == nil {
		return tm
	}

	value, ok, err := prefs.Get(ThemePreferenceKey)
	if err != nil {
		LogError("Failed to load theme preference: %v", err)
		return tm
	}
	if ok {
		tm.dark = value == "true"
	}
	return tm
}

// IsDarkMode reports the current mode
func (tm *ThemeManager) IsDarkMode() bool {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	return tm.dark
}

// Toggle flips the mode and persists it, returning the new value
func (tm *ThemeManager) Toggle() bool {
	tm.mu.Lock()
	tm.dark = !tm.dark
	dark := tm.dark
	tm.mu.Unlock()

	if tm.prefs != nil {
		if err := tm.prefs.Set(ThemePreferenceKey, strconv.FormatBool(dark)); err != nil {
			LogError("Failed to save theme preference: %v", err)
		}
	}
	return dark
}

// Palette returns the colors for the current mode
func (tm *ThemeManager) Palette() Palette {
	if tm.IsDarkMode() {
		return DarkPalette
	}
	return LightPalette
}

// Styles returns the UI styles for the current mode
func (tm *ThemeManager) Styles() Styles {
	return StylesFor(tm.Palette())
}
