package cmd

import (
	"fmt"
	"sort"

	"github.com/iksnae/mosje-chat/internal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var profileYAML bool

// profileCmd prints the backend profile of the configured user
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the user profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		var profile *internal.Profile
		err := internal.ShowProgress(ctx, "Fetching profile", func() error {
			var err error
			profile, err = newClient().Profile(ctx, cfg.Identity().UserID())
			return err
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if profileYAML {
			doc := map[string]interface{}{"name": profile.Name, "language": profile.Language}
			for k, val := range profile.Extra {
				doc[k] = val
			}
			enc := yaml.NewEncoder(out)
			defer func() { _ = enc.Close() }()
			return enc.Encode(doc)
		}

		styles := loadTheme().Styles()
		fmt.Fprintln(out, styles.Header.Render(profile.Name))
		fmt.Fprintf(out, "%s %s\n", styles.Muted.Render("user:"), cfg.Identity().UserID())
		fmt.Fprintf(out, "%s %s\n", styles.Muted.Render("language:"), profile.Language)

		keys := make([]string, 0, len(profile.Extra))
		for k := range profile.Extra {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(out, "%s %v\n", styles.Muted.Render(k+":"), profile.Extra[k])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.Flags().BoolVar(&profileYAML, "yaml", false, "Print the profile as YAML")
}
