package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/mosje-chat/internal"
	"github.com/spf13/cobra"
)

var (
	healthcheckVerbose bool
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check configuration, local preferences and backend reachability",
	Long: `Check the health of mosje by verifying:
  • Resolved configuration
  • Preferences database access
  • Backend history endpoint
  • Backend profile endpoint

This command is useful for debugging connection issues.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		ctx := cmd.Context()

		fmt.Fprintln(out, sectionStyle.Render("🔍 Mosje Health Check"))
		fmt.Fprintln(out)

		// Step 1: configuration
		fmt.Fprintln(out, infoStyle.Render("Step 1: Resolving configuration..."))
		fmt.Fprintln(out, successStyle.Render("✅ Configuration valid"))
		if healthcheckVerbose {
			fmt.Fprintf(out, "   Server: %s\n", cfg.ServerURL)
			fmt.Fprintf(out, "   User: %s\n", cfg.UserID)
			fmt.Fprintf(out, "   Language: %s\n", cfg.Language)
			fmt.Fprintf(out, "   Timeout: %s\n", cfg.Timeout)
			fmt.Fprintf(out, "   Database: %s\n", cfg.DatabasePath)
		}
		fmt.Fprintln(out)

		// Step 2: preferences
		fmt.Fprintln(out, infoStyle.Render("Step 2: Opening preferences database..."))
		prefsOK := checkPreferences(out)
		fmt.Fprintln(out)

		// Step 3: history
		fmt.Fprintln(out, infoStyle.Render("Step 3: Fetching chat history..."))
		client := newClient()
		if healthcheckVerbose {
			fmt.Fprintf(out, "   Endpoint: %s/chat/history\n", client.BaseURL())
		}
		historyOK := true
		chats, err := client.History(ctx, cfg.Identity().UserID())
		if err != nil {
			historyOK = false
			fmt.Fprintln(out, errorStyle.Render("❌ History request failed:"), err)
		} else {
			fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ Found %d recorded exchange(s)", len(chats))))
			if healthcheckVerbose {
				for i, chat := range chats {
					if i >= 5 {
						fmt.Fprintf(out, "   ... and %d more\n", len(chats)-5)
						break
					}
					fmt.Fprintf(out, "   [%d] %s (ID: %s)\n", i+1, truncate(chat.Question, 40), chat.MessageID)
				}
			}
		}
		fmt.Fprintln(out)

		// Step 4: profile
		fmt.Fprintln(out, infoStyle.Render("Step 4: Fetching user profile..."))
		profile, err := client.Profile(ctx, cfg.Identity().UserID())
		if err != nil {
			fmt.Fprintln(out, warningStyle.Render("⚠️  Profile request failed:"), err)
		} else {
			fmt.Fprintln(out, successStyle.Render("✅ Profile available"))
			if healthcheckVerbose {
				fmt.Fprintf(out, "   Name: %s\n", profile.Name)
			}
		}
		fmt.Fprintln(out)

		// Summary
		fmt.Fprintln(out, sectionStyle.Render("📊 Summary"))
		fmt.Fprintln(out)

		switch {
		case historyOK && prefsOK:
			fmt.Fprintln(out, successStyle.Render("✅ Health check passed!"))
			return nil
		case historyOK:
			fmt.Fprintln(out, warningStyle.Render("⚠️  Backend reachable but preferences are unavailable"))
			fmt.Fprintln(out, "   • Theme and model choices will not be saved")
			return nil
		default:
			fmt.Fprintln(out, errorStyle.Render("❌ Health check failed"))
			fmt.Fprintf(out, "   • Cannot reach %s\n", cfg.ServerURL)
			return fmt.Errorf("health check failed: backend unavailable")
		}
	},
}

func checkPreferences(out io.Writer) bool {
	prefs, closePrefs, err := openPreferences()
	if err != nil {
		fmt.Fprintln(out, warningStyle.Render("⚠️  Preferences unavailable:"), err)
		return false
	}
	defer closePrefs()

	pairs, err := prefs.All()
	if err != nil {
		fmt.Fprintln(out, warningStyle.Render("⚠️  Failed to read preferences:"), err)
		return false
	}
	fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ Preferences readable (%d stored)", len(pairs))))
	if healthcheckVerbose {
		for _, p := range pairs {
			fmt.Fprintf(out, "   %s = %s\n", p.Key, p.Value)
		}
		fmt.Fprintf(out, "   Model: %s\n", internal.SelectedModel(prefs).ID)
	}
	return true
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
	healthcheckCmd.Flags().BoolVar(&healthcheckVerbose, "details", false, "Show detailed diagnostic information")
}
