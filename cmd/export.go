package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iksnae/mosje-chat/internal"
	"github.com/iksnae/mosje-chat/internal/export"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var (
	format    string
	outputDir string
	sessionID string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export sessions to file",
	Long: `Export chat sessions to various formats (jsonl, md, yaml, json).

You can export all sessions loaded from the backend history or a specific session by ID.
Use 'mosje sessions' to see available session IDs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		exporter, err := export.NewExporter(format)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		store, err := loadStore(ctx)
		if err != nil {
			return err
		}

		sessions := store.Sessions()
		if sessionID != "" {
			sessions = lo.Filter(sessions, func(s internal.ChatSession, _ int) bool {
				return s.ID == sessionID
			})
			if len(sessions) == 0 {
				return fmt.Errorf("session not found: %s (use 'mosje sessions' to see available sessions)", sessionID)
			}
		}

		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return &internal.ExportError{Format: format, Path: outputDir, Err: err}
		}

		var failed int
		err = internal.ShowProgress(ctx, fmt.Sprintf("Exporting %d session(s) to %s", len(sessions), outputDir), func() error {
			for i := range sessions {
				if err := exportSession(exporter, &sessions[i], outputDir); err != nil {
					internal.LogError("%v", err)
					failed++
				}
			}
			return nil
		})
		if err != nil {
			return err
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d session(s) failed to export", failed, len(sessions))
		}
		internal.PrintSuccess(cmd.ErrOrStderr(), fmt.Sprintf("Export complete: %d session(s) exported to %s", len(sessions), outputDir))
		return nil
	},
}

// exportSession writes one session to dir/session_<id>.<ext>
func exportSession(exporter export.Exporter, session *internal.ChatSession, dir string) error {
	path := filepath.Join(dir, fmt.Sprintf("session_%s.%s", session.ID, exporter.Extension()))

	file, err := os.Create(path)
	if err != nil {
		return &internal.ExportError{Format: exporter.Extension(), Path: path, Err: err}
	}

	if err := exporter.Export(session, file); err != nil {
		_ = file.Close()
		return &internal.ExportError{Format: exporter.Extension(), Path: path, Err: err}
	}

	if err := file.Close(); err != nil {
		return &internal.ExportError{Format: exporter.Extension(), Path: path, Err: err}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&format, "format", "f", "jsonl", "Export format (jsonl, md, yaml, json)")
	exportCmd.Flags().StringVarP(&outputDir, "out", "o", "./exports", "Output directory")
	exportCmd.Flags().StringVar(&sessionID, "session-id", "", "Export a specific session by ID")
}
