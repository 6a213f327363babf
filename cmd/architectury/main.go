package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/architectury/architectury-cli/internal/cli"
	"github.com/architectury/architectury-cli/internal/config"
	"github.com/architectury/architectury-cli/internal/download"
	"github.com/architectury/architectury-cli/internal/release"
	"github.com/sirupsen/logrus"
)

var version = "dev"

func setupLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return log
}

func run(log *logrus.Logger) error {
	cfg, err := config.NewConfigFromEnv()
	if err != nil {
		return err
	}
	fetcher, err := release.NewFetcher(log, cfg.CreateGitHubClient(), cfg.TemplatesRepo)
	if err != nil {
		return err
	}
	downloader := download.New(log, download.Options{
		UserAgent:   cfg.UserAgent,
		GitHubToken: cfg.GitHubToken,
		Timeout:     cfg.HTTPTimeout,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return cli.NewRootCommand(log, fetcher, downloader, version).ExecuteContext(ctx)
}

func main() {
	log := setupLogger()
	if err := run(log); err != nil {
		log.Errorf("ERROR: %v", err)
		os.Exit(1)
	}
}
