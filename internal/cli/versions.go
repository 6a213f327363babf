package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) newVersionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "versions <template>",
		Short: "List the Minecraft versions supported by a template",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runVersions,
	}
	cmd.Flags().BoolP("mixin", "m", false, "use mixin version of template")
	return cmd
}

func (a *app) runVersions(cmd *cobra.Command, args []string) error {
	name, err := a.templates.CatalogName(args[0], must(cmd.Flags().GetBool("mixin")))
	if err != nil {
		return err
	}
	c, err := a.loadCatalog(cmd.Context())
	if err != nil {
		return err
	}
	versions, err := c.SortedVersions(name)
	if err != nil {
		return withSuggestions(c, err)
	}
	out := cmd.OutOrStdout()
	for _, v := range versions {
		if v == "" {
			// the oldest assets were published without a version
			v = "(unversioned)"
		}
		if _, err := fmt.Fprintln(out, v); err != nil {
			return err
		}
	}
	return nil
}
