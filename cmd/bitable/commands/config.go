package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/fivetwenty-io/bitable/internal/constants"
	"github.com/fivetwenty-io/bitable/internal/logging"
	"github.com/fivetwenty-io/bitable/pkg/bitable"
	"github.com/fivetwenty-io/bitable/pkg/larkclient"
)

// Settings is the effective CLI configuration after flags, environment and
// config file are layered.
type Settings struct {
	AppID       string `json:"app_id"                 yaml:"app_id"`
	AppSecret   string `json:"app_secret,omitempty"   yaml:"app_secret,omitempty"`
	AppToken    string `json:"app_token"              yaml:"app_token"`
	AccessToken string `json:"access_token,omitempty" yaml:"access_token,omitempty"`
	BaseURL     string `json:"base_url"               yaml:"base_url"`
	Output      string `json:"output"                 yaml:"output"`
	Verbose     bool   `json:"verbose"                yaml:"verbose"`
}

func loadSettings() *Settings {
	settings := &Settings{
		AppID:       viper.GetString(keyAppID),
		AppSecret:   viper.GetString(keyAppSecret),
		AppToken:    viper.GetString(keyAppToken),
		AccessToken: viper.GetString(keyAccessToken),
		BaseURL:     viper.GetString(keyBaseURL),
		Output:      viper.GetString(keyOutput),
		Verbose:     viper.GetBool(keyVerbose),
	}

	if settings.BaseURL == "" {
		settings.BaseURL = constants.DefaultBaseURL
		if viper.GetBool(keyFeishu) {
			settings.BaseURL = constants.FeishuBaseURL
		}
	}

	return settings
}

// masked returns a copy safe to display.
func (s *Settings) masked() *Settings {
	out := *s
	if out.AppSecret != "" {
		out.AppSecret = constants.MaskedSecret
	}

	if out.AccessToken != "" {
		out.AccessToken = constants.MaskedSecret
	}

	return &out
}

// CreateClient builds a Bitable client from the effective settings. A missing
// app secret is prompted for when stdin is a terminal.
func CreateClient(cmd *cobra.Command) (bitable.Client, error) {
	settings := loadSettings()

	if settings.AppToken == "" {
		return nil, constants.ErrNoAppToken
	}

	if settings.AccessToken == "" {
		if settings.AppSecret == "" && settings.AppID != "" && term.IsTerminal(int(os.Stdin.Fd())) {
			secret, err := promptForSecret(cmd.ErrOrStderr())
			if err != nil {
				return nil, err
			}

			settings.AppSecret = secret
		}

		if settings.AppID == "" || settings.AppSecret == "" {
			return nil, constants.ErrNoAppCredentials
		}
	}

	level := hclog.Warn
	if settings.Verbose {
		level = hclog.Debug
	}

	client, err := larkclient.New(context.Background(), &bitable.Config{
		AppID:       settings.AppID,
		AppSecret:   settings.AppSecret,
		AppToken:    settings.AppToken,
		AccessToken: settings.AccessToken,
		BaseURL:     settings.BaseURL,
		Debug:       settings.Verbose,
		Logger:      logging.NewHCLogger("bitable", level, cmd.ErrOrStderr()),
	})
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return client, nil
}

func promptForSecret(w io.Writer) (string, error) {
	_, err := io.WriteString(w, "App Secret: ")
	if err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	secretBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", fmt.Errorf("failed to read app secret: %w", err)
	}

	_, _ = io.WriteString(w, "\n")

	return string(secretBytes), nil
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect CLI configuration",
		Long:  "Display the configuration resolved from flags, BITABLE_* environment variables and the config file",
	}

	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Long:  "Display the effective configuration with secrets masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := loadSettings().masked()

			return render(cmd.OutOrStdout(), settings, func(w io.Writer) error {
				table := newTable(w)
				table.Header("Property", "Value")

				_ = table.Append("App ID", displayOrNA(settings.AppID))
				_ = table.Append("App Secret", displayOrNA(settings.AppSecret))
				_ = table.Append("App Token", displayOrNA(settings.AppToken))
				_ = table.Append("Access Token", displayOrNA(settings.AccessToken))
				_ = table.Append("Base URL", settings.BaseURL)
				_ = table.Append("Output", settings.Output)

				return table.Render()
			})
		},
	}
}
