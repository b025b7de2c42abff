package categories

import (
	"github.com/spf13/cobra"

	"github.com/crucial707/qa-forum/cmd/cli/config"
	"github.com/crucial707/qa-forum/cmd/cli/output"
)

// InitCategories registers the categories command.
func InitCategories(rootCmd *cobra.Command) {
	rootCmd.AddCommand(listCategoriesCmd())
}

func listCategoriesCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			list, err := cfg.Client().Categories(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return output.PrintJSON(cmd.OutOrStdout(), list)
			}

			rows := make([][]interface{}, 0, len(list))
			for _, c := range list {
				desc := ""
				if c.Description != nil {
					desc = *c.Description
				}
				rows = append(rows, []interface{}{c.ID, c.Name, desc})
			}
			output.RenderTable(cmd.OutOrStdout(), []string{"ID", "Name", "Description"}, rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
