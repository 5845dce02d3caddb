package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/akorchagin/career-matcher/internal/catalog"
	"github.com/akorchagin/career-matcher/internal/filtering"
	"github.com/akorchagin/career-matcher/internal/job"
	"github.com/akorchagin/career-matcher/internal/logger"
	"github.com/akorchagin/career-matcher/internal/matching"
	"github.com/akorchagin/career-matcher/internal/secrets"
	"github.com/akorchagin/career-matcher/internal/store"
)

const (
	PromptSaveJob         = "Save a job to my profile"
	PromptReportByCompany = "Report by companies"
	PromptJobsToFile      = "Dump jobs to file"
	PromptBack            = "back"
	PromptExit            = "Exit"
)

var errExit = errors.New("exit requested")

var searchPrompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptSaveJob, PromptReportByCompany, PromptJobsToFile, PromptExit},
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search job postings matching your skills",
	Run: func(cmd *cobra.Command, _ []string) {
		search(cmd)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringP("skills", "s", "", "comma-separated skills to search for")
	searchCmd.Flags().StringP("location", "l", "", "location filter, empty includes remote jobs")
	searchCmd.Flags().String("industry", "", "industry filter, default is all industries")
	searchCmd.Flags().String("experience", "", "experience level filter: Entry Level, Mid Level or Senior Level")
	searchCmd.Flags().Int("min-match", 0, "drop jobs below this match percentage")
	searchCmd.Flags().Int("max-results", 10, "maximum number of jobs to return")
	searchCmd.Flags().Bool("no-cache", false, "skip the search result cache")
	searchCmd.Flags().BoolP("auto-approve", "y", false, "print results and exit without the interactive prompt")

	viper.BindPFlag("search.skills", searchCmd.Flags().Lookup("skills"))
	viper.BindPFlag("search.location", searchCmd.Flags().Lookup("location"))
	viper.BindPFlag("search.industry", searchCmd.Flags().Lookup("industry"))
	viper.BindPFlag("search.experience", searchCmd.Flags().Lookup("experience"))
	viper.BindPFlag("search.min-match", searchCmd.Flags().Lookup("min-match"))
	viper.BindPFlag("search.max-results", searchCmd.Flags().Lookup("max-results"))
}

// search is the main command for the cli.
func search(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the career-matcher", zap.String("version", version))

	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	reference := matching.Split(config.Search.Skills)
	if len(matching.Normalize(reference)) == 0 {
		logger.Info("exiting", zap.String("reason", "no skills provided, nothing to match against"))
		return
	}

	logger.Info("starting the search",
		zap.String("skills", config.Search.Skills),
		zap.String("location", config.Search.Location),
	)

	provider, closeProvider, err := buildProvider(ctx, cmd, config, logger)
	if err != nil {
		logger.Fatal("building the job provider", zap.Error(err))
	}
	defer closeProvider()

	jobs, err := provider.GetJobs(ctx, config.Search.Skills, config.Search.Location, config.Search.MaxResults)
	if err != nil {
		logger.Fatal("getting available jobs", zap.Error(err))
	}

	logger.Info("getting jobs", zap.Int("count", jobs.Len()))

	if jobs.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no jobs found"))
		return
	}

	filters := prepareFilters(config, reference)
	filtered, err := filtering.New(filters, logger).Run(jobs)
	if err != nil {
		logger.Fatal("filtering failed", zap.Error(err))
	}
	jobs = filtered

	if jobs.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no jobs left after filters"))
		return
	}

	printJobs(jobs)

	if cmd.Flag("auto-approve").Value.String() == "true" {
		return
	}

	for {
		logger.Info("current list of jobs", zap.Int("count", jobs.Len()))

		_, action, err := searchPrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(ctx, action, config, logger, jobs); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(ctx context.Context, action string, config *Config, logger *zap.Logger, jobs *job.Jobs) error {
	switch action {
	case PromptSaveJob:
		return saveJobPrompt(ctx, config, logger, jobs)
	case PromptReportByCompany:
		pretty, _ := json.MarshalIndent(jobs.ReportByCompany(), "", "  ")
		logger.Info(string(pretty), zap.Int("jobs count", jobs.Len()))
		return nil
	case PromptJobsToFile:
		filename, err := jobs.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// saveJobPrompt lets the user pick jobs from the result list and persists
// them to the configured store.
func saveJobPrompt(ctx context.Context, config *Config, logger *zap.Logger, jobs *job.Jobs) error {
	st, err := buildStore(ctx, config, logger)
	if err != nil {
		return fmt.Errorf("building the store: %w", err)
	}
	defer st.Close()

	user, err := ensureUser(ctx, st, config)
	if err != nil {
		return err
	}

	for {
		items := make([]string, 0, jobs.Len()+1)
		for _, j := range jobs.Items {
			items = append(items, fmt.Sprintf("%s %s / %s / %d%% match", j.ID, j.Title, j.Company, j.SkillsMatch))
		}

		jobPrompt := promptui.Select{
			Label: "Choose a job and press ENTER",
			Items: append(items, PromptBack),
		}

		_, selected, err := jobPrompt.Run()
		if err != nil {
			return err
		}

		if selected == PromptBack {
			return nil
		}

		jobID := strings.Split(selected, " ")[0]
		picked := jobs.FindByID(jobID)
		if picked == nil {
			return fmt.Errorf("there is no such job id %s", jobID)
		}

		savedID, err := st.SaveJob(ctx, user.ID, picked, picked.SkillsMatch)
		if err != nil {
			return fmt.Errorf("saving job: %w", err)
		}

		logger.Info("saved job to profile",
			zap.String("job_id", picked.ID),
			zap.String("job_title", picked.Title),
			zap.String("saved_job_id", savedID),
		)
	}
}

// ensureUser resolves the configured user, registering it on first use.
func ensureUser(ctx context.Context, st store.Store, config *Config) (*store.User, error) {
	if config.User == nil || strings.TrimSpace(config.User.Email) == "" {
		return nil, errors.New("user email is required under the user section to save jobs")
	}

	user, err := st.UserByEmail(ctx, config.User.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	id, err := st.CreateUser(ctx, config.User.Name, config.User.Email, matching.Split(config.Search.Skills))
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return st.UserByID(ctx, id)
}

func prepareFilters(config *Config, reference []string) []filtering.Filter {
	return []filtering.Filter{
		filtering.NewLocation(config.Search.Location),
		filtering.NewIndustry(config.Search.Industry),
		filtering.NewExperience(config.Search.Experience),
		filtering.NewSkillFit(filtering.SkillFitConfig{
			Reference: reference,
			MinMatch:  config.Search.MinMatch,
			Mode:      matching.Lenient,
			// Catalog listings arrive scored already, with jitter.
			Rescore: config.Catalog.Source != "file",
		}),
	}
}

// buildProvider assembles the configured job source with its cache.
func buildProvider(ctx context.Context, cmd *cobra.Command, config *Config, logger *zap.Logger) (catalog.Provider, func(), error) {
	if config.Catalog.Source == "file" {
		seed := config.Catalog.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		p := catalog.NewStaticProvider(config.Catalog.File, rand.NewSource(seed), logger)
		return p, func() {}, nil
	}

	cache, err := buildCache(ctx, cmd, config, logger)
	if err != nil {
		return nil, nil, err
	}

	closeCache := func() {
		if cache == nil {
			return
		}
		if err := cache.Close(); err != nil {
			logger.Warn("closing the job cache", zap.Error(err))
		}
	}

	return catalog.NewSyntheticProvider(catalog.NewGenerator(), cache, logger), closeCache, nil
}

func buildCache(ctx context.Context, cmd *cobra.Command, config *Config, logger *zap.Logger) (catalog.CacheStore, error) {
	if cmd != nil && cmd.Flag("no-cache") != nil && cmd.Flag("no-cache").Value.String() == "true" {
		return nil, nil
	}

	switch config.Cache.Backend {
	case "", "file":
		path := config.Cache.File
		if path == "" {
			path = "job_cache.json"
		}
		return catalog.OpenFileCache(path, logger), nil
	case "redis":
		password := ""
		if config.Cache.RedisPasswordFile != "" {
			var err error
			password, err = secrets.Load(secrets.Source{
				Name: "redis password",
				File: config.Cache.RedisPasswordFile,
			})
			if err != nil {
				return nil, err
			}
		}
		return catalog.OpenRedisCache(ctx, config.Cache.RedisAddr, password, logger)
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", config.Cache.Backend)
	}
}

func buildStore(ctx context.Context, config *Config, logger *zap.Logger) (store.Store, error) {
	cfg := store.Config{
		Backend: config.Store.Backend,
		Dir:     config.Store.Dir,
	}

	if cfg.Backend == "postgres" {
		url, err := secrets.Load(secrets.Source{
			Name: "database url",
			File: config.Store.DatabaseURLFile,
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set store.database-url-file or CM_DATABASE_URL_FILE)", err)
		}
		cfg.DatabaseURL = url
	}

	return store.New(ctx, cfg, logger)
}

func printJobs(jobs *job.Jobs) {
	for _, j := range jobs.Items {
		fmt.Printf("%3d%%  %-40s %-22s %-20s %s\n", j.SkillsMatch, j.Title, j.Company, j.Location, j.Salary)
	}
}
