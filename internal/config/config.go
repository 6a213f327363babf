package config

import (
	"context"
	"net/http"
	"time"

	"github.com/google/go-github/v59/github"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/oauth2"
)

type Config struct {
	GitHubToken   string        `envconfig:"GITHUB_TOKEN"`
	TemplatesRepo string        `envconfig:"ARCHITECTURY_TEMPLATES_REPO" default:"architectury/architectury-templates"`
	UserAgent     string        `envconfig:"ARCHITECTURY_USER_AGENT" default:"Architectury-CLI"`
	HTTPTimeout   time.Duration `envconfig:"ARCHITECTURY_HTTP_TIMEOUT" default:"1m"`
}

func NewConfigFromEnv() (*Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) httpClient() *http.Client {
	if c.GitHubToken == "" {
		return &http.Client{Timeout: c.HTTPTimeout}
	}
	oauthClient := oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(&oauth2.Token{AccessToken: c.GitHubToken}))
	oauthClient.Timeout = c.HTTPTimeout
	return oauthClient
}

func (c *Config) CreateGitHubClient() *github.Client {
	ghClient := github.NewClient(c.httpClient())
	ghClient.UserAgent = c.UserAgent
	return ghClient
}
