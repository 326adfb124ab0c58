package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/baristacx/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is the CLI version
const Version = "v0.3.0"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "baristacx",
	Short: "Barista CX - LEAST service recovery trainer",
	Long: `Barista CX trains cafe staff on guest complaints using the LEAST
model: Listen, Empathize, Apologize, Solutionize, Thank.

Pick a scenario, reply as you would at the counter, and get a transparent
score with the missteps to fix and a checklist for the next attempt.

Scoring is deterministic: the same replies always get the same score.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "baristacx %s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.baristacx/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("content-dir", "", "reference data directory (default: built-in content)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("output-dir", "", "directory for exported reports")

	// Bind flags to viper
	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("content.dir", rootCmd.PersistentFlags().Lookup("content-dir"))
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("output.dir", rootCmd.PersistentFlags().Lookup("output-dir"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	setDefaults(viper.GetViper(), model.DefaultConfig())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(filepath.Join(home, ".baristacx"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// BARISTACX_OUTPUT_DIR maps to output.dir
	viper.SetEnvPrefix("BARISTACX")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// setDefaults registers every config key so env variables can reach it
func setDefaults(v *viper.Viper, cfg *model.Config) {
	v.SetDefault("content.dir", cfg.Content.Dir)
	v.SetDefault("output.dir", cfg.Output.Dir)
	v.SetDefault("output.formats", cfg.Output.Formats)
	v.SetDefault("output.verbose", cfg.Output.Verbose)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("batch.workers", cfg.Batch.Workers)
	v.SetDefault("batch.writes_per_second", cfg.Batch.WritesPerSecond)
	v.SetDefault("batch.burst", cfg.Batch.Burst)
	v.SetDefault("coach.provider", cfg.Coach.Provider)
	v.SetDefault("coach.model", cfg.Coach.Model)
	v.SetDefault("coach.api_key", cfg.Coach.APIKey)
	v.SetDefault("coach.base_url", cfg.Coach.BaseURL)
	v.SetDefault("coach.timeout", cfg.Coach.Timeout)
	v.SetDefault("coach.max_tokens", cfg.Coach.MaxTokens)
	v.SetDefault("coach.http_proxy", cfg.Coach.HTTPProxy)
	v.SetDefault("coach.https_proxy", cfg.Coach.HTTPSProxy)
}

// loadConfig resolves flags, env, config file and defaults into a Config
func loadConfig(v *viper.Viper) (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Empty flag values must not wipe defaults
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = model.DefaultConfig().Output.Dir
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = model.DefaultConfig().Log.Level
	}

	if cfg.Coach.APIKey == "" && strings.EqualFold(cfg.Coach.Provider, "openai") {
		cfg.Coach.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.Coach.BaseURL == "" && strings.EqualFold(cfg.Coach.Provider, "ollama") {
		cfg.Coach.BaseURL = os.Getenv("OLLAMA_BASE_URL")
	}

	return cfg, nil
}
