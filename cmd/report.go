package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/talentcompass/sourcer/internal/logger"
	"github.com/talentcompass/sourcer/internal/ranking"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const defaultReportLimit = 50

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the ranked candidates from the last pipeline run",
	Run: func(cmd *cobra.Command, _ []string) {
		report(cmd)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().IntP("limit", "n", defaultReportLimit, "how many top candidates to show")
	reportCmd.Flags().Bool("dump", false, "also dump the ranked candidates to a temp json file")
}

func report(cmd *cobra.Command) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	st := openStore(config, logger)
	defer st.Close()

	people, err := st.ReadPeople()
	if err != nil {
		logger.Fatal("reading candidate details", zap.Error(err))
	}

	if len(people) == 0 {
		logger.Info("exiting", zap.String("reason", "no stored candidates, run the pipeline first"))
		return
	}

	limit, _ := cmd.Flags().GetInt("limit")
	printReport(os.Stdout, people, limit)

	if dump, _ := cmd.Flags().GetBool("dump"); dump {
		filename, err := dumpToTmpFile(ranking.Top(people, limit))
		if err != nil {
			logger.Fatal("dumping candidates to file", zap.Error(err))
		}
		logger.Info("dumped ranked candidates", zap.String("filename", filename))
	}
}

func printReport(w io.Writer, people map[string]any, limit int) {
	top := ranking.Top(people, limit)

	fmt.Fprintf(w, "\nTop %d candidates (of %d stored)\n\n", len(top), len(people))

	for i, candidate := range top {
		score, _ := candidate.Score()

		name := candidate.Name()
		if name == "" {
			name = candidate.ID
		}

		headline := name
		if title := candidate.Title(); title != "" {
			headline += ", " + title
		}
		if company := candidate.Company(); company != "" {
			headline += " @ " + company
		}

		fmt.Fprintf(w, "%3d. [%5.1f] %s\n", i+1, score, headline)

		if url := candidate.LinkedInURL(); url != "" {
			fmt.Fprintf(w, "     %s\n", url)
		}
		for _, pro := range candidate.Pros() {
			fmt.Fprintf(w, "     + %s\n", pro)
		}
		for _, con := range candidate.Cons() {
			fmt.Fprintf(w, "     - %s\n", con)
		}
	}
}

type dumpedCandidate struct {
	ID     string   `json:"id"`
	Score  float64  `json:"compatibilityScore"`
	Name   string   `json:"name,omitempty"`
	Title  string   `json:"title,omitempty"`
	Pros   []string `json:"pros,omitempty"`
	Cons   []string `json:"cons,omitempty"`
	Record any      `json:"record"`
}

func dumpToTmpFile(candidates []ranking.Candidate) (string, error) {
	file, err := os.CreateTemp("", "candidates_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	dump := make([]dumpedCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		score, _ := candidate.Score()
		dump = append(dump, dumpedCandidate{
			ID:     candidate.ID,
			Score:  score,
			Name:   candidate.Name(),
			Title:  strings.TrimSpace(candidate.Title()),
			Pros:   candidate.Pros(),
			Cons:   candidate.Cons(),
			Record: candidate.Record,
		})
	}

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(dump); err != nil {
		return "", err
	}
	return file.Name(), nil
}
