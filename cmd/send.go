package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iksnae/mosje-chat/internal"
	"github.com/spf13/cobra"
)

var sendAttachments []string

// sendCmd sends one message in a fresh session and prints the reply
var sendCmd = &cobra.Command{
	Use:   "send [message]",
	Short: "Send a single message",
	Long: `Send one message, with optional attachments, in a new session and print the reply.

Attachments must be images, PDFs or text files.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		content := strings.Join(args, " ")
		if strings.TrimSpace(content) == "" && len(sendAttachments) == 0 {
			return fmt.Errorf("nothing to send: provide a message or --attach")
		}

		attachments, err := internal.PickAttachments(sendAttachments)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		store, err := loadStore(ctx)
		if err != nil {
			return err
		}
		if _, err := store.CreateNewSession(); err != nil {
			return err
		}

		var result *internal.SendResult
		err = internal.ShowProgress(ctx, "Waiting for reply", func() error {
			var sendErr error
			result, sendErr = store.SendMessage(ctx, content, attachments)
			return sendErr
		})
		if errors.Is(err, internal.ErrEmptyMessage) {
			return fmt.Errorf("nothing to send: %w", err)
		}
		if err != nil {
			return err
		}

		for _, upErr := range result.UploadErrors {
			internal.PrintWarning(cmd.ErrOrStderr(), upErr.Error())
		}

		renderMessage(cmd.OutOrStdout(), loadTheme().Styles(), result.Reply)
		if !result.Delivered {
			return fmt.Errorf("message not delivered: %w", result.Err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringArrayVarP(&sendAttachments, "attach", "a", nil, "Attach a file (repeatable)")
}
