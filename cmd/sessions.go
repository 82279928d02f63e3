package cmd

import (
	"fmt"
	"strconv"

	"github.com/iksnae/mosje-chat/internal"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var sessionsLimit int

// sessionsCmd lists the sessions converted from the backend history
var sessionsCmd = &cobra.Command{
	Use:     "sessions",
	Aliases: []string{"list", "ls"},
	Short:   "List chat sessions",
	Long:    `Load the chat history from the backend and list the resulting sessions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := loadStore(cmd.Context())
		if err != nil {
			return err
		}

		sessions := store.Sessions()
		if sessionsLimit > 0 && len(sessions) > sessionsLimit {
			sessions = sessions[:sessionsLimit]
		}

		out := cmd.OutOrStdout()
		current, _ := store.CurrentSession()

		table := tablewriter.NewWriter(out)
		table.SetHeader([]string{"", "ID", "Title", "Last message", "Messages", "Updated"})
		table.SetBorder(false)
		table.SetAutoWrapText(false)
		for _, s := range sessions {
			marker := ""
			if s.ID == current.ID {
				marker = "*"
			}
			table.Append([]string{
				marker,
				s.ID,
				s.Title,
				truncate(s.LastMessage, 40),
				strconv.Itoa(len(s.Messages)),
				formatTime(s.Time()),
			})
		}
		table.Render()

		internal.PrintInfo(cmd.ErrOrStderr(), fmt.Sprintf("%d session(s)", len(store.Sessions())))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
	sessionsCmd.Flags().IntVarP(&sessionsLimit, "limit", "n", 0, "Show at most n sessions (0 = all)")
}
