package cmd

import (
	"fmt"

	"github.com/iksnae/mosje-chat/internal"
	"github.com/spf13/cobra"
)

// themeCmd shows, toggles or resets the dark-mode preference
var themeCmd = &cobra.Command{
	Use:       "theme [toggle|reset]",
	Short:     "Show, toggle or reset the color theme",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"toggle", "reset"},
	RunE: func(cmd *cobra.Command, args []string) error {
		prefs, closePrefs, err := openPreferences()
		if err != nil {
			return err
		}
		defer closePrefs()

		// reset drops the stored flag so the default applies again
		if len(args) == 1 && args[0] == "reset" {
			if err := prefs.Delete(internal.ThemePreferenceKey); err != nil {
				return err
			}
		}

		tm := internal.LoadTheme(prefs)
		if len(args) == 1 && args[0] == "toggle" {
			tm.Toggle()
		}

		mode := "light"
		if tm.IsDarkMode() {
			mode = "dark"
		}
		styles := tm.Styles()
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", styles.Muted.Render("theme:"), styles.Selected.Render(mode))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
}
