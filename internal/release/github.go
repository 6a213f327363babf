package release

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/architectury/architectury-cli/pkg/catalog"
	"github.com/google/go-github/v59/github"
	"github.com/sirupsen/logrus"
)

var ErrNoReleases = errors.New("no releases found")

type Release struct {
	TagName string
	// Version is the parsed tag, nil if the tag is not a semantic version.
	Version *semver.Version
	Assets  []catalog.Asset
}

type Fetcher struct {
	log      *logrus.Logger
	ghClient *github.Client
	owner    string
	repo     string
}

func getOwnerRepo(fullRepo string) (string, string) {
	owner, repo, found := strings.Cut(fullRepo, "/")
	if !found {
		return "", ""
	}

	return owner, repo
}

func NewFetcher(log *logrus.Logger, ghClient *github.Client, fullRepo string) (*Fetcher, error) {
	owner, repo := getOwnerRepo(fullRepo)
	if owner == "" || repo == "" || strings.Contains(repo, "/") {
		return nil, fmt.Errorf("invalid repository %q, expected owner/repo", fullRepo)
	}
	return &Fetcher{
		log:      log,
		ghClient: ghClient,
		owner:    owner,
		repo:     repo,
	}, nil
}

func toAssets(gha []*github.ReleaseAsset) []catalog.Asset {
	ret := make([]catalog.Asset, 0, len(gha))
	for _, asset := range gha {
		ret = append(ret, catalog.Asset{
			Name: asset.GetName(),
			ID:   asset.GetID(),
			URL:  asset.GetURL(),
		})
	}
	return ret
}

func displayVersion(tag string, version *semver.Version) string {
	if version == nil {
		return tag
	}
	return version.String()
}

// LatestRelease returns the most recently created release. Unlike GitHub's
// "latest release" endpoint, prereleases are considered.
func (f *Fetcher) LatestRelease(ctx context.Context) (*Release, error) {
	f.log.Debugf("fetching releases of %s/%s", f.owner, f.repo)
	opts := &github.ListOptions{Page: 1, PerPage: 10}
	for {
		releases, resp, err := f.ghClient.Repositories.ListReleases(ctx, f.owner, f.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to get releases: %w", err)
		}
		for _, release := range releases {
			// ignore drafts
			if release.GetDraft() {
				continue
			}
			version, err := semver.NewVersion(release.GetTagName())
			if err != nil {
				f.log.Debugf("release tag %s is not a semantic version", release.GetTagName())
				version = nil
			}
			f.log.Infof("using template release %s with %d assets", displayVersion(release.GetTagName(), version), len(release.Assets))
			return &Release{
				TagName: release.GetTagName(),
				Version: version,
				Assets:  toAssets(release.Assets),
			}, nil
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return nil, ErrNoReleases
}

// LatestAssets returns the assets of the most recent release.
func (f *Fetcher) LatestAssets(ctx context.Context) ([]catalog.Asset, error) {
	release, err := f.LatestRelease(ctx)
	if err != nil {
		return nil, err
	}
	return release.Assets, nil
}
