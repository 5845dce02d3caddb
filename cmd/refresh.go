package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/akorchagin/career-matcher/internal/catalog"
	"github.com/akorchagin/career-matcher/internal/logger"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Keep the search cache warm by re-running configured searches on a schedule",
	Run: func(cmd *cobra.Command, _ []string) {
		refresh(cmd)
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}

func refresh(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if config.Refresh == nil || config.Refresh.Schedule == "" {
		logger.Fatal("refresh schedule is required under the refresh section")
	}
	if len(config.Refresh.Searches) == 0 {
		logger.Fatal("at least one search is required under refresh.searches")
	}

	provider, closeProvider, err := buildProvider(ctx, cmd, config, logger)
	if err != nil {
		logger.Fatal("building the job provider", zap.Error(err))
	}
	defer closeProvider()

	warm := func() {
		for _, search := range config.Refresh.Searches {
			jobs, err := provider.GetJobs(ctx, search.Skills, search.Location, search.MaxResults)
			if err != nil {
				logger.Warn("warming search failed",
					zap.String("skills", search.Skills),
					zap.String("location", search.Location),
					zap.Error(err),
				)
				continue
			}
			logger.Info("warmed search",
				zap.String("key", catalog.CacheKey(search.Skills, search.Location)),
				zap.Int("count", jobs.Len()),
			)
		}
	}

	c := cron.New()
	if _, err := c.AddFunc(config.Refresh.Schedule, warm); err != nil {
		logger.Fatal("scheduling refresh", zap.String("schedule", config.Refresh.Schedule), zap.Error(err))
	}

	// Warm once right away so the cache is useful before the first tick.
	warm()

	c.Start()
	logger.Info("refresh scheduler started", zap.String("schedule", config.Refresh.Schedule))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	<-c.Stop().Done()
	logger.Info("refresh scheduler stopped")
}
