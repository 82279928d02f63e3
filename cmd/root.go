package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/mosje-chat/internal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	cfg     *internal.Config
	v       = viper.New()
	version string = "dev"
	commit  string = "unknown"
	date    string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mosje",
	Short: "Terminal client for the Mosje chat backend",
	Long: `A terminal client for the Mosje chat backend.

Conversations are loaded from the backend history on start and kept in
memory; only the theme and model preferences are stored locally.

Features:
  • Interactive chat with multiple sessions
  • File attachments (images, PDFs, text)
  • Session listing, transcripts and export (JSON, JSONL, YAML, Markdown)
  • Dark and light themes

Quick Start:
  mosje chat                        # Start chatting
  mosje send "hello" --attach a.png # One-shot message
  mosje sessions                    # List sessions from history
  mosje export --format md          # Export as Markdown`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := internal.LoadConfig(v, cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
		internal.SetVerbose(cfg.Verbose)
		internal.LogDebug("Using backend %s as %s", cfg.ServerURL, cfg.UserID)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (default ~/.mosje/config.yaml)")
	flags.String("server", internal.DefaultServerURL, "Chat backend base URL")
	flags.String("user", internal.DefaultUserID, "User id sent to the backend")
	flags.String("language", internal.DefaultLanguage, "Language sent with each message")
	flags.Duration("timeout", internal.DefaultTimeout, "Backend request timeout")
	flags.String("database", "", "Preferences database path (default ~/.mosje/preferences.db)")
	flags.BoolP("verbose", "v", false, "Enable verbose logging")

	for _, name := range []string{"server", "user", "language", "timeout", "database", "verbose"} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
