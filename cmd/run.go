package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/talentcompass/sourcer/internal/ai/gemini"
	"github.com/talentcompass/sourcer/internal/logger"
	"github.com/talentcompass/sourcer/internal/pipeline"
	"github.com/talentcompass/sourcer/internal/recruitu"
	"github.com/talentcompass/sourcer/internal/secrets"
	"github.com/talentcompass/sourcer/internal/store"

	"github.com/google/uuid"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the sourcing pipeline for a job description",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("job-file", "f", "", "file containing the job description; when unset the stored one or a prompt is used")
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the sourcer", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config.Search == nil || config.Search.BaseURL == "" {
		logger.Fatal("candidate search API base url is required under search.base-url")
	}

	st := openStore(config, logger)
	defer st.Close()

	jobText, err := resolveJobText(cmd, st)
	if err != nil {
		logger.Fatal("resolving the job description", zap.Error(err))
	}

	deps, err := buildDeps(ctx, config, st, logger)
	if err != nil {
		logger.Fatal("building pipeline dependencies", zap.Error(err))
	}

	pl := pipeline.New(*deps, config.Pipeline)

	if err := pl.Run(ctx, jobText); err != nil {
		logger.Fatal("pipeline failed", zap.Error(err))
	}

	people, err := st.ReadPeople()
	if err != nil {
		logger.Fatal("reading candidate details", zap.Error(err))
	}

	logger.Info("pipeline finished", zap.Int("candidates", len(people)))

	printReport(os.Stdout, people, defaultReportLimit)
}

func buildDeps(ctx context.Context, config *Config, st store.Store, logger *zap.Logger) (*pipeline.Deps, error) {
	if config.AI == nil || config.AI.Gemini == nil {
		return nil, errors.New("gemini configuration is required under ai.gemini")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: config.AI.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	client, err := gemini.NewClient(ctx, apiKey)
	if err != nil {
		return nil, err
	}

	runLogger := logger.With(zap.String("run_id", uuid.NewString()))

	rps := float64(0)
	if config.Search != nil {
		rps = config.Search.RequestsPerSecond
	}

	return &pipeline.Deps{
		Extractor: gemini.NewExtractor(client, config.AI.Gemini.ProfileModel, runLogger),
		Scorer:    gemini.NewScorer(client, config.AI.Gemini.ScoringModel, runLogger),
		Analyst:   gemini.NewAnalyst(client, config.AI.Gemini.AnalysisModel, runLogger),
		Client:    recruitu.New(config.Search.BaseURL, rps, runLogger),
		Store:     st,
		Logger:    runLogger,
		Observer:  pipeline.NewZapObserver(runLogger),
	}, nil
}

func openStore(config *Config, logger *zap.Logger) store.Store {
	path := defaultStorePath
	if config.Store != nil && config.Store.Path != "" {
		path = config.Store.Path
	}

	st, err := store.OpenSQLite(path)
	if err != nil {
		logger.Fatal("opening the store", zap.String("path", path), zap.Error(err))
	}

	return st
}

// resolveJobText finds the job description to run against: the --job-file
// flag wins, then the stored one from a previous run, then an interactive
// prompt.
func resolveJobText(cmd *cobra.Command, st store.Store) (string, error) {
	if file := cmd.Flag("job-file").Value.String(); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading job description from %q: %w", file, err)
		}
		text := strings.TrimSpace(string(data))
		if text == "" {
			return "", fmt.Errorf("job description file %q is empty", file)
		}
		return text, nil
	}

	stored, err := st.JobDescription()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(stored) != "" {
		return stored, nil
	}

	prompt := promptui.Prompt{
		Label: "Job description",
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return errors.New("job description must not be empty")
			}
			return nil
		},
	}

	text, err := prompt.Run()
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(text), nil
}
