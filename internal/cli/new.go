package cli

import (
	"fmt"

	"github.com/architectury/architectury-cli/internal/project"
	"github.com/spf13/cobra"
)

func (a *app) newNewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new <directory>",
		Short: "Create a new project from a template",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runNew,
	}
	cmd.Flags().StringP("template", "t", "", "template name")
	cmd.Flags().StringP("version", "v", "", "Minecraft version")
	cmd.Flags().BoolP("mixin", "m", false, "use mixin version of template")
	cmd.Flags().SortFlags = false
	_ = cmd.MarkFlagRequired("template")
	_ = cmd.MarkFlagRequired("version")
	return cmd
}

func (a *app) runNew(cmd *cobra.Command, args []string) error {
	dir := args[0]
	template := must(cmd.Flags().GetString("template"))
	version := must(cmd.Flags().GetString("version"))
	mixin := must(cmd.Flags().GetBool("mixin"))

	if err := project.ValidateDirectory(dir); err != nil {
		return err
	}
	name, err := a.templates.CatalogName(template, mixin)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	c, err := a.loadCatalog(ctx)
	if err != nil {
		return err
	}
	supported, err := c.IsSupported(name, version)
	if err != nil {
		return withSuggestions(c, err)
	}
	if !supported {
		return fmt.Errorf("invalid Minecraft version provided: %s, see versions subcommand", version)
	}
	asset, err := c.Resolve(name, version)
	if err != nil {
		return err
	}

	a.log.Infof("downloading %s...", asset.Name)
	f, err := a.downloader.Download(ctx, asset)
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := f.Remove(); rmErr != nil {
			a.log.Errorf("could not remove downloaded template: %v", rmErr)
		}
	}()

	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "Successfully downloaded %s %s template, extracting...\n", version, name); err != nil {
		return err
	}
	if err := project.Extract(f.Path, dir); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "Project created at %s\n", dir)
	return err
}
