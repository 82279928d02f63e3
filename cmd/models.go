package cmd

import (
	"fmt"

	"github.com/iksnae/mosje-chat/internal"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// modelsCmd lists the selectable language models
var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List language models",
	Long: `List the selectable language models. The selection is stored locally
and marked with '*'.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		prefs, closePrefs, err := openPreferences()
		if err != nil {
			return err
		}
		defer closePrefs()

		selected := internal.SelectedModel(prefs)

		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.SetHeader([]string{"", "ID", "Name", "Description"})
		table.SetBorder(false)
		for _, m := range internal.ModelCatalog {
			marker := ""
			if m.ID == selected.ID {
				marker = "*"
			}
			table.Append([]string{marker, m.ID, m.Name, m.Description})
		}
		table.Render()
		return nil
	},
}

var modelsSelectCmd = &cobra.Command{
	Use:   "select <model-id>",
	Short: "Select a language model",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prefs, closePrefs, err := openPreferences()
		if err != nil {
			return err
		}
		defer closePrefs()

		m, err := internal.SelectModel(prefs, args[0])
		if err != nil {
			return err
		}
		internal.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Selected %s (%s)", m.Name, m.ID))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
	modelsCmd.AddCommand(modelsSelectCmd)
}
