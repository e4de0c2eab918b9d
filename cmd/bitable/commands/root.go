package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/bitable/internal/constants"
)

// Viper keys. Flags use dashes, the config file and environment use underscores.
const (
	keyAppID       = "app_id"
	keyAppSecret   = "app_secret"
	keyAppToken    = "app_token"
	keyAccessToken = "access_token"
	keyBaseURL     = "base_url"
	keyFeishu      = "feishu"
	keyOutput      = "output"
	keyVerbose     = "verbose"
)

// NewRootCommand creates the bitable command tree.
func NewRootCommand(version, commit, date string) *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "bitable",
		Short: "Lark Bitable CLI",
		Long: `A command-line interface for the Lark (Feishu) Bitable open API.

Inspect tables and fields, and create, update, list and delete records of
one Bitable app.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd, cfgFile)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.bitable/config.yml)")
	flags.String("app-id", "", "Lark app ID")
	flags.String("app-secret", "", "Lark app secret")
	flags.String("app-token", "", "Bitable app token")
	flags.String("access-token", "", "pre-issued tenant access token")
	flags.String("base-url", "", "open API root (default "+constants.DefaultBaseURL+")")
	flags.Bool("feishu", false, "use the Feishu open API root")
	flags.StringP("output", "o", OutputFormatTable, "output format (table, json, yaml)")
	flags.BoolP("verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag(keyAppID, flags.Lookup("app-id"))
	_ = viper.BindPFlag(keyAppSecret, flags.Lookup("app-secret"))
	_ = viper.BindPFlag(keyAppToken, flags.Lookup("app-token"))
	_ = viper.BindPFlag(keyAccessToken, flags.Lookup("access-token"))
	_ = viper.BindPFlag(keyBaseURL, flags.Lookup("base-url"))
	_ = viper.BindPFlag(keyFeishu, flags.Lookup("feishu"))
	_ = viper.BindPFlag(keyOutput, flags.Lookup("output"))
	_ = viper.BindPFlag(keyVerbose, flags.Lookup("verbose"))

	rootCmd.AddCommand(NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewTablesCommand())
	rootCmd.AddCommand(NewFieldsCommand())
	rootCmd.AddCommand(NewRecordsCommand())

	return rootCmd
}

// initConfig layers the config file and BITABLE_* environment variables
// under the flags. The config file is optional and never written.
func initConfig(cmd *cobra.Command, cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, constants.ConfigDirName))
		}

		viper.SetConfigType("yml")
		viper.SetConfigName(constants.ConfigFileName)
	}

	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		// An explicit --config must exist; the default location is optional.
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}

		return fmt.Errorf("reading config file: %w", err)
	}

	if viper.GetBool(keyVerbose) {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Using config file:", viper.ConfigFileUsed())
	}

	return nil
}
