package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/iksnae/mosje-chat/internal"
)

// newClient builds the backend client from the resolved config
func newClient() *internal.Client {
	return internal.NewClient(cfg.ServerURL, cfg.Timeout)
}

// newStore builds a session store talking to the configured backend
func newStore(opts ...internal.StoreOption) *internal.Store {
	base := []internal.StoreOption{
		internal.WithIdentity(cfg.Identity()),
		internal.WithLanguage(cfg.Language),
	}
	return internal.NewStore(newClient(), append(base, opts...)...)
}

// loadStore builds a store and loads the remote history behind a spinner
func loadStore(ctx context.Context, opts ...internal.StoreOption) (*internal.Store, error) {
	store := newStore(opts...)
	err := internal.ShowProgress(ctx, "Loading chat history", func() error {
		return store.Load(ctx)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// openPreferences opens the local preferences database; close releases it
func openPreferences() (*internal.PreferenceStore, func(), error) {
	db, err := internal.OpenDatabase(cfg.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open preferences: %w", err)
	}
	return internal.NewPreferenceStore(db), func() { _ = db.Close() }, nil
}

// loadTheme returns the stored theme, or the default when the database is unavailable
func loadTheme() *internal.ThemeManager {
	prefs, closePrefs, err := openPreferences()
	if err != nil {
		internal.LogWarn("%v", err)
		return internal.LoadTheme(nil)
	}
	defer closePrefs()
	return internal.LoadTheme(prefs)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

// renderMessage prints one transcript entry
func renderMessage(w io.Writer, styles internal.Styles, msg internal.Message) {
	label := styles.UserLabel.Render("You")
	if msg.Sender == internal.SenderBot {
		label = styles.BotLabel.Render("Assistant")
	}
	fmt.Fprintf(w, "%s %s\n", label, styles.Timestamp.Render(formatTime(msg.Time())))
	if msg.Content != "" {
		fmt.Fprintln(w, styles.Content.Render(msg.Content))
	}
	for _, a := range msg.Attachments {
		fmt.Fprintln(w, styles.Attachment.Render(fmt.Sprintf("📎 %s (%s)", a.Name, a.Kind())))
	}
	fmt.Fprintln(w)
}

// renderSession prints a session header followed by its transcript
func renderSession(w io.Writer, styles internal.Styles, session internal.ChatSession) {
	fmt.Fprintln(w, styles.Header.Render(session.Title))
	fmt.Fprintln(w, styles.Muted.Render(fmt.Sprintf("%s · %d message(s) · %s", session.ID, len(session.Messages), formatTime(session.Time()))))
	fmt.Fprintln(w)
	if len(session.Messages) == 0 {
		fmt.Fprintln(w, styles.Muted.Render("No messages yet."))
		return
	}
	for _, msg := range session.Messages {
		renderMessage(w, styles, msg)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
