// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the html2md CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/html2md/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the html2md CLI.
var rootCmd = &cobra.Command{
	Use:   "html2md",
	Short: "Convert HTML pages into Markdown notes",
	Long: `html2md converts HTML documents into Markdown with a YAML front-matter
block. It converts local files, clips web pages into a notes directory with a
searchable index, and serves conversions over HTTP.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./html2md.yaml or ~/.config/html2md/html2md.yaml)")
	rootCmd.PersistentFlags().StringSlice("frontmatter", nil, "front-matter keys in output order (default title,source)")
	viper.BindPFlag("frontmatter", rootCmd.PersistentFlags().Lookup("frontmatter"))
}

func setDefaults() {
	viper.SetDefault("frontmatter", []string{"title", "source"})
	viper.SetDefault("workers", 1)
	viper.SetDefault("vault_dir", "clips")
	viper.SetDefault("messages_dir", "messages")
	viper.SetDefault("index_db", filepath.Join("clips", "index", "clips.db"))
	viper.SetDefault("timeout", 60*time.Second)
	viper.SetDefault("user_agent", "html2md/"+version)
	viper.SetDefault("max_retries", 5)
	viper.SetDefault("timezone_offset", "+09:00")
	viper.SetDefault("fetch_delay", time.Second)
	viper.SetDefault("max_results", 20)
	viper.SetDefault("listen", ":8080")
	viper.SetDefault("max_body_bytes", 10<<20)
}

func initConfig() {
	setDefaults()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("html2md")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "html2md"))
		}
	}

	viper.SetEnvPrefix("HTML2MD")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the stage configs from viper. Flags bound with
// viper.BindPFlag take precedence over env, which beats the config file.
func loadConfig() types.AppConfig {
	httpCfg := types.HTTPConfig{
		Timeout:    viper.GetDuration("timeout"),
		UserAgent:  viper.GetString("user_agent"),
		MaxRetries: viper.GetInt("max_retries"),
	}
	return types.AppConfig{
		Convert: types.ConvertConfig{
			FrontMatter: viper.GetStringSlice("frontmatter"),
			OutDir:      viper.GetString("out_dir"),
			Workers:     viper.GetInt("workers"),
		},
		Clip: types.ClipConfig{
			HTTPConfig:     httpCfg,
			VaultDir:       viper.GetString("vault_dir"),
			MessagesDir:    viper.GetString("messages_dir"),
			IndexDB:        viper.GetString("index_db"),
			TimezoneOffset: viper.GetString("timezone_offset"),
			FetchDelay:     viper.GetDuration("fetch_delay"),
			MaxResults:     viper.GetInt("max_results"),
		},
		Server: types.ServerConfig{
			Listen:       viper.GetString("listen"),
			MaxBodyBytes: viper.GetInt64("max_body_bytes"),
		},
	}
}

// bindFlags binds each named flag of cmd to the viper key with dashes
// replaced by underscores. Commands call it from PreRunE so that only the
// running command's flags are bound when several share a key.
func bindFlags(cmd *cobra.Command, names ...string) error {
	for _, name := range names {
		key := strings.ReplaceAll(name, "-", "_")
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return fmt.Errorf("binding flag %s: %w", name, err)
		}
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
