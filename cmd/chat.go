package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/iksnae/mosje-chat/internal"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

const chatHelp = `Commands:
  /new            start a new session
  /sessions       list sessions
  /switch <id>    switch to a session
  /delete <id>    delete a session
  /clear          delete every session
  /attach <path>  attach a file to the next message
  /detach         drop pending attachments
  /theme          toggle dark mode
  /help           show this help
  /quit           leave`

// chatCmd is the interactive chat loop
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat",
	Long: `Load the chat history and start an interactive session.
Type a message and press enter to send it; lines starting with '/' are commands.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, err := loadStore(ctx)
		if err != nil {
			return err
		}

		var prefs internal.Preferences
		if prefStore, closePrefs, err := openPreferences(); err != nil {
			internal.LogWarn("%v", err)
		} else {
			defer closePrefs()
			prefs = prefStore
		}
		theme := internal.LoadTheme(prefs)

		repl := &chatREPL{
			store:  store,
			theme:  theme,
			out:    cmd.OutOrStdout(),
			errOut: cmd.ErrOrStderr(),
		}
		repl.greet(ctx, prefs)
		return repl.run(ctx, cmd.InOrStdin())
	},
}

type chatREPL struct {
	store   *internal.Store
	theme   *internal.ThemeManager
	out     io.Writer
	errOut  io.Writer
	pending []internal.Attachment
}

func (r *chatREPL) greet(ctx context.Context, prefs internal.Preferences) {
	styles := r.theme.Styles()
	name := cfg.Identity().UserID()
	if profile, err := newClient().Profile(ctx, name); err != nil {
		internal.LogDebug("Profile unavailable: %v", err)
	} else if profile.Name != "" {
		name = profile.Name
	}
	model := internal.SelectedModel(prefs)

	fmt.Fprintln(r.out, styles.Header.Render("mosje · "+name))
	fmt.Fprintln(r.out, styles.Muted.Render(fmt.Sprintf("model %s · %s · /help for commands", model.Name, cfg.ServerURL)))
	fmt.Fprintln(r.out)

	if current, ok := r.store.CurrentSession(); ok {
		renderSession(r.out, styles, current)
	}
}

func (r *chatREPL) run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	r.prompt()
	for scanner.Scan() {
		quit, err := r.handle(ctx, scanner.Text())
		if err != nil {
			internal.PrintError(r.errOut, err.Error())
		}
		if quit {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		r.prompt()
	}
	return scanner.Err()
}

func (r *chatREPL) prompt() {
	styles := r.theme.Styles()
	if len(r.pending) > 0 {
		fmt.Fprint(r.out, styles.Attachment.Render(fmt.Sprintf("[%d attached] ", len(r.pending))))
	}
	fmt.Fprint(r.out, styles.UserLabel.Render("> "))
}

// handle processes one input line; quit reports whether the loop should stop
func (r *chatREPL) handle(ctx context.Context, line string) (quit bool, err error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "/") {
		return false, r.send(ctx, line)
	}

	command, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	styles := r.theme.Styles()

	switch command {
	case "/quit", "/exit":
		return true, nil
	case "/help":
		fmt.Fprintln(r.out, styles.Muted.Render(chatHelp))
	case "/new":
		session, err := r.store.CreateNewSession()
		if err != nil {
			return false, err
		}
		fmt.Fprintln(r.out, styles.Muted.Render("Started "+session.ID))
	case "/sessions":
		r.listSessions()
	case "/switch":
		if arg == "" {
			return false, errors.New("usage: /switch <id>")
		}
		if !r.store.SelectSession(arg) {
			return false, fmt.Errorf("%w: %s", internal.ErrSessionNotFound, arg)
		}
		current, _ := r.store.CurrentSession()
		renderSession(r.out, styles, current)
	case "/delete":
		if arg == "" {
			return false, errors.New("usage: /delete <id>")
		}
		if _, ok := r.store.Session(arg); !ok {
			return false, fmt.Errorf("%w: %s", internal.ErrSessionNotFound, arg)
		}
		if err := r.store.DeleteSession(arg); err != nil {
			return false, err
		}
		current, _ := r.store.CurrentSession()
		fmt.Fprintln(r.out, styles.Muted.Render(fmt.Sprintf("Deleted %s, now in %s", arg, current.ID)))
	case "/clear":
		if err := r.store.ClearHistory(); err != nil {
			return false, err
		}
		fmt.Fprintln(r.out, styles.Muted.Render("History cleared"))
	case "/attach":
		if arg == "" {
			return false, errors.New("usage: /attach <path>")
		}
		picked, err := internal.PickAttachments([]string{arg})
		if err != nil {
			return false, err
		}
		r.pending = append(r.pending, picked...)
		fmt.Fprintln(r.out, styles.Attachment.Render(fmt.Sprintf("📎 %s (%s)", picked[0].Name, picked[0].Type)))
	case "/detach":
		r.pending = nil
	case "/theme":
		mode := "light"
		if r.theme.Toggle() {
			mode = "dark"
		}
		fmt.Fprintln(r.out, r.theme.Styles().Muted.Render("Theme: "+mode))
	default:
		return false, fmt.Errorf("unknown command %s (try /help)", command)
	}
	return false, nil
}

func (r *chatREPL) send(ctx context.Context, content string) error {
	var result *internal.SendResult
	err := internal.ShowProgress(ctx, "Waiting for reply", func() error {
		var sendErr error
		result, sendErr = r.store.SendMessage(ctx, content, r.pending)
		return sendErr
	})
	if errors.Is(err, internal.ErrEmptyMessage) {
		return nil
	}
	if err != nil {
		return err
	}
	r.pending = nil

	for _, upErr := range result.UploadErrors {
		internal.PrintWarning(r.errOut, upErr.Error())
	}
	styles := r.theme.Styles()
	if !result.Delivered {
		internal.LogDebug("Send failed: %v", result.Err)
	}
	renderMessage(r.out, styles, result.Reply)
	return nil
}

func (r *chatREPL) listSessions() {
	styles := r.theme.Styles()
	current, _ := r.store.CurrentSession()
	lo.ForEach(r.store.Sessions(), func(s internal.ChatSession, _ int) {
		line := fmt.Sprintf("%s  %s  %s", s.ID, s.Title, truncate(s.LastMessage, 40))
		if s.ID == current.ID {
			fmt.Fprintln(r.out, styles.Selected.Render("* "+line))
			return
		}
		fmt.Fprintln(r.out, styles.SessionItem.Render("  "+line))
	})
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
