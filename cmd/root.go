// Package cmd implements the command-line interface for newsradar.
// It provides the root command and subcommands for crawling, importing,
// and scheduling company news collection.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jonesrussell/newsradar/cmd/crawl"
	"github.com/jonesrussell/newsradar/cmd/importer"
	cmdscheduler "github.com/jonesrussell/newsradar/cmd/scheduler"
	"github.com/jonesrussell/newsradar/cmd/single"
	"github.com/jonesrussell/newsradar/internal/config"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// debug enables debug logging for all commands.
	debug bool

	rootCmd = &cobra.Command{
		Use:   "newsradar",
		Short: "A company news crawler and sentiment collector",
		Long:  `Collects Korean company news, analyzes per-company sentiment, and stores the results.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	// Load .env early so environment variables are available to viper.
	_ = godotenv.Load()

	// Parse flags early so --config is known before viper reads the file.
	_ = rootCmd.ParseFlags(os.Args[1:])

	if err := initConfig(); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("newsradar version %s\n", "1.0.0")
		},
	})

	rootCmd.AddCommand(crawl.Command())
	rootCmd.AddCommand(single.Command())
	rootCmd.AddCommand(importer.Command())
	rootCmd.AddCommand(cmdscheduler.Command())
}

// initConfig reads in the config file and environment variables if set.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	// Environment variables take precedence over file values and defaults.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	config.SetDefaults(viper.GetViper())

	// Config file is optional; defaults and env vars cover everything.
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: config file not found: %v (using defaults and environment variables)\n", err)
	}

	if err := bindEnvVars(); err != nil {
		return err
	}

	if debug || viper.GetBool("app.debug") {
		viper.Set("app.debug", true)
		viper.Set("logger.level", "debug")
	}
	if viper.GetString("app.environment") == "development" {
		viper.Set("logger.development", true)
		viper.Set("logger.encoding", "console")
	}

	return nil
}

// bindEnvVars maps well-known environment variable names to config keys.
func bindEnvVars() error {
	binds := map[string][]string{
		"app.environment":   {"APP_ENV"},
		"app.debug":         {"APP_DEBUG"},
		"logger.level":      {"LOG_LEVEL"},
		"logger.encoding":   {"LOG_FORMAT"},
		"analyzer.api_key":  {"OPENAI_API_KEY"},
		"database.host":     {"DB_HOST", "DATABASE_HOST"},
		"database.port":     {"DB_PORT", "DATABASE_PORT"},
		"database.user":     {"DB_USER", "DATABASE_USER"},
		"database.password": {"DB_PASSWORD", "DATABASE_PASSWORD"},
		"database.dbname":   {"DB_NAME", "DATABASE_NAME"},
	}

	for key, envs := range binds {
		args := append([]string{key}, envs...)
		if err := viper.BindEnv(args...); err != nil {
			return fmt.Errorf("failed to bind %s: %w", envs[0], err)
		}
	}
	return nil
}
