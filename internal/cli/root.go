package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/architectury/architectury-cli/internal/config"
	"github.com/architectury/architectury-cli/internal/download"
	"github.com/architectury/architectury-cli/pkg/catalog"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type ReleaseFetcher interface {
	LatestAssets(ctx context.Context) ([]catalog.Asset, error)
}

type AssetDownloader interface {
	Download(ctx context.Context, asset *catalog.Asset) (*download.File, error)
}

type app struct {
	log        *logrus.Logger
	fetcher    ReleaseFetcher
	downloader AssetDownloader
	templates  config.Templates
}

func NewRootCommand(log *logrus.Logger, fetcher ReleaseFetcher, downloader AssetDownloader, version string) *cobra.Command {
	a := &app{
		log:        log,
		fetcher:    fetcher,
		downloader: downloader,
		templates:  config.KnownTemplates,
	}
	cmd := &cobra.Command{
		Use:           "architectury",
		Short:         "Create Minecraft mod projects from the Architectury templates",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if must(cmd.Flags().GetBool("verbose")) {
				log.SetLevel(logrus.DebugLevel)
			}
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	cmd.PersistentFlags().Bool("verbose", false, "enable debug logging")

	cmd.AddCommand(
		a.newListCommand(),
		a.newVersionsCommand(),
		a.newNewCommand(),
	)
	return cmd
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func (a *app) loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	assets, err := a.fetcher.LatestAssets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest release: %w", err)
	}
	c, err := catalog.Build(assets)
	if err != nil {
		return nil, err
	}
	for _, asset := range c.Overwritten() {
		a.log.Warnf("asset %s is shadowed by another asset for the same template and version", asset.Name)
	}
	a.log.Debugf("found %d templates in %d assets", c.Len(), len(assets))
	return c, nil
}

// withSuggestions appends similarly named templates to unknown template errors.
func withSuggestions(c *catalog.Catalog, err error) error {
	var unknownErr *catalog.UnknownTemplateError
	if !errors.As(err, &unknownErr) {
		return err
	}
	candidates := c.Search(unknownErr.Template)
	if len(candidates) == 0 {
		for _, t := range c.SortedTemplates() {
			if strings.HasPrefix(unknownErr.Template, t) {
				candidates = append(candidates, t)
			}
		}
	}
	if len(candidates) == 0 {
		return fmt.Errorf("%w, see list subcommand", err)
	}
	return fmt.Errorf("%w, did you mean: %s", err, strings.Join(candidates, ", "))
}
