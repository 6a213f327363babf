package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

func (a *app) newListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all templates including supported Minecraft versions",
		Args:    cobra.NoArgs,
		RunE:    a.runList,
	}
	cmd.Flags().StringP("name", "n", "", "name of template to search for")
	return cmd
}

func (a *app) runList(cmd *cobra.Command, _ []string) error {
	query := must(cmd.Flags().GetString("name"))
	c, err := a.loadCatalog(cmd.Context())
	if err != nil {
		return err
	}

	templates := c.Search(query)
	if len(templates) == 0 {
		return errors.New("no matching templates found")
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Template", "Minecraft Versions", "Description"})
	for _, name := range templates {
		versions, err := c.SortedVersions(name)
		if err != nil {
			return err
		}
		t.AppendRow(table.Row{name, strings.Join(versions, ", "), a.templates.Describe(name)})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, WidthMax: 60},
		{Number: 3, Align: text.AlignLeft, WidthMax: 50},
	})
	_, err = fmt.Fprintln(cmd.OutOrStdout(), t.Render())
	return err
}
