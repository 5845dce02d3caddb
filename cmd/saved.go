package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/akorchagin/career-matcher/internal/logger"
)

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "Manage jobs saved to your profile",
}

var savedListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved jobs",
	Run: func(_ *cobra.Command, _ []string) {
		savedList()
	},
}

var savedDeleteCmd = &cobra.Command{
	Use:   "delete <saved-job-id>",
	Short: "Delete a saved job",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		savedDelete(args[0])
	},
}

func init() {
	rootCmd.AddCommand(savedCmd)
	savedCmd.AddCommand(savedListCmd)
	savedCmd.AddCommand(savedDeleteCmd)
}

func savedList() {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	st, err := buildStore(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the store", zap.Error(err))
	}
	defer st.Close()

	user, err := ensureUser(ctx, st, config)
	if err != nil {
		logger.Fatal("resolving user", zap.Error(err))
	}

	saved, err := st.SavedJobs(ctx, user.ID)
	if err != nil {
		logger.Fatal("listing saved jobs", zap.Error(err))
	}

	if len(saved) == 0 {
		logger.Info("no saved jobs yet")
		return
	}

	for _, sj := range saved {
		fmt.Printf("%s  %3d%%  %s / %s (saved %s)\n",
			sj.ID, sj.MatchPercentage, sj.Job.Title, sj.Job.Company, sj.SavedAt.Format("2006-01-02"))
	}

	if viper.GetBool("debug") {
		pretty, _ := json.MarshalIndent(saved, "", "  ")
		logger.Debug(string(pretty))
	}
}

func savedDelete(savedJobID string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	st, err := buildStore(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the store", zap.Error(err))
	}
	defer st.Close()

	user, err := ensureUser(ctx, st, config)
	if err != nil {
		logger.Fatal("resolving user", zap.Error(err))
	}

	deleted, err := st.DeleteJob(ctx, user.ID, savedJobID)
	if err != nil {
		logger.Fatal("deleting saved job", zap.Error(err))
	}

	if !deleted {
		logger.Warn("no such saved job", zap.String("saved_job_id", savedJobID))
		return
	}

	logger.Info("deleted saved job", zap.String("saved_job_id", savedJobID))
}
