package cmd

import (
	"errors"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "career-matcher"
)

type Config struct {
	User    *UserConfig    `mapstructure:"user"`
	Search  *SearchConfig  `mapstructure:"search"`
	Catalog *CatalogConfig `mapstructure:"catalog"`
	Cache   *CacheConfig   `mapstructure:"cache"`
	Store   *StoreConfig   `mapstructure:"store"`
	Refresh *RefreshConfig `mapstructure:"refresh"`
}

type UserConfig struct {
	Name  string `mapstructure:"name"`
	Email string `mapstructure:"email"`
}

type SearchConfig struct {
	Skills     string `mapstructure:"skills"`
	Location   string `mapstructure:"location"`
	Industry   string `mapstructure:"industry"`
	Experience string `mapstructure:"experience"`
	MinMatch   int    `mapstructure:"min-match"`
	MaxResults int    `mapstructure:"max-results"`
}

type CatalogConfig struct {
	// Source is "synthetic" (default) or "file" for a static catalog.
	Source string `mapstructure:"source"`
	File   string `mapstructure:"file"`
	// Seed pins the catalog score jitter. Zero means time-based.
	Seed int64 `mapstructure:"seed"`
}

type CacheConfig struct {
	// Backend is "file" (default) or "redis".
	Backend           string `mapstructure:"backend"`
	File              string `mapstructure:"file"`
	RedisAddr         string `mapstructure:"redis-addr"`
	RedisPasswordFile string `mapstructure:"redis-password-file"`
}

type StoreConfig struct {
	// Backend is "file" (default) or "postgres".
	Backend         string `mapstructure:"backend"`
	Dir             string `mapstructure:"dir"`
	DatabaseURLFile string `mapstructure:"database-url-file"`
}

type RefreshConfig struct {
	Schedule string          `mapstructure:"schedule"`
	Searches []*SearchConfig `mapstructure:"searches"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "career-matcher is a simple cli for matching your skills against job postings and keeping the good ones",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("store.database-url-file", "CM_DATABASE_URL_FILE"); err != nil {
		log.Fatalf("binding CM_DATABASE_URL_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("catalog.file", "CM_CATALOG_FILE"); err != nil {
		log.Fatalf("binding CM_CATALOG_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is career-matcher.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// A missing default config is fine, flags cover it. An explicitly
	// requested or unparseable one is not.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, err
	}

	if config.Search == nil {
		config.Search = &SearchConfig{}
	}
	if config.Catalog == nil {
		config.Catalog = &CatalogConfig{}
	}
	if config.Cache == nil {
		config.Cache = &CacheConfig{}
	}
	if config.Store == nil {
		config.Store = &StoreConfig{}
	}

	return config, nil
}
