package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var showLimit int

// showCmd prints one session's transcript
var showCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show a session transcript",
	Long: `Print the messages of one session from the backend history.
Use 'mosje sessions' to see available session IDs.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := loadStore(cmd.Context())
		if err != nil {
			return err
		}

		session, ok := store.Session(args[0])
		if !ok {
			return fmt.Errorf("session not found: %s (use 'mosje sessions' to see available sessions)", args[0])
		}

		if showLimit > 0 && len(session.Messages) > showLimit {
			session.Messages = session.Messages[len(session.Messages)-showLimit:]
		}

		renderSession(cmd.OutOrStdout(), loadTheme().Styles(), session)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().IntVar(&showLimit, "limit", 0, "Show only the last n messages (0 = all)")
}
