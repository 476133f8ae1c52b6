// Package cli implements the claimlens command tree.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/claimlens/claimlens/internal/model"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "claimlens",
	Short: "Verify claims against fact-check databases, web search, and news coverage",
	Long: `claimlens gathers evidence about a claim from published fact-check
reviews, web search, and recent news, scores the sources, and produces
a verdict with a transparent score breakdown.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default ~/.claimlens/config.yaml)")
}

// Execute runs the command tree.
func Execute() error {
	return rootCmd.Execute()
}

// defaultConfigPath returns ~/.claimlens/config.yaml, or "" when the
// home directory cannot be resolved.
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".claimlens", "config.yaml")
}

// loadConfig layers built-in defaults, the YAML config file, and
// CLAIMLENS_* environment variables, in that order of precedence.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	path := cfgFile
	if path == "" {
		path = defaultConfigPath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case os.IsNotExist(err) && cfgFile == "":
			// The default location is optional.
		default:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

// applyEnv overrides credentials and connection settings from the
// environment so secrets never need to live in the config file.
func applyEnv(cfg *model.Config) {
	v := viper.New()
	v.SetEnvPrefix("CLAIMLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	set := func(target *string, key string) {
		if val := v.GetString(key); val != "" {
			*target = val
		}
	}

	set(&cfg.Sources.FactCheck.APIKey, "fact_check.api_key")
	set(&cfg.Sources.Search.APIKey, "search.api_key")
	set(&cfg.Sources.Search.EngineID, "search.engine_id")
	set(&cfg.Sources.News.APIKey, "news.api_key")
	set(&cfg.LLM.Provider, "llm.provider")
	set(&cfg.LLM.Model, "llm.model")
	set(&cfg.LLM.APIKey, "llm.api_key")
	set(&cfg.LLM.BaseURL, "llm.base_url")
	set(&cfg.Cache.RedisURL, "cache.redis_url")
	set(&cfg.Server.Addr, "server.addr")
	set(&cfg.Server.DatabasePath, "server.database_path")
}
