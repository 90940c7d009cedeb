package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/progress-evaluator/internal/identifier"
	"github.com/spigell/progress-evaluator/internal/logger"
	"github.com/spigell/progress-evaluator/internal/prompt"
	"github.com/spigell/progress-evaluator/internal/store"
)

var sampleAnswers = []string{
	"I led the migration of our billing service to a new database with zero downtime, cutting query latency by 40%.",
	"I learned Kubernetes and Terraform and used them to automate our staging environments.",
	"I ask for concrete examples, write down action items and follow up after a couple of weeks.",
	"Our team of five shipped the reporting module two weeks early by splitting work into daily milestones.",
	"I want to grow into a staff engineer role and mentor at least two junior developers.",
	"I started a weekly knowledge sharing session that now has regular speakers from three teams.",
	"I read engineering blogs, attend two conferences a year and contribute to an open source project.",
}

var seedCmd = &cobra.Command{
	Use:   "seed <user-id>",
	Short: "Store sample career progress answers for a user (development only)",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		seed(args[0])
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func seed(userID string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync()

	if err := identifier.Validate(userID); err != nil {
		logger.Fatal("validating the user id", zap.String("user_id", userID), zap.Error(err))
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	mongoCfg, err := mongoConfig(config.Mongo)
	if err != nil {
		logger.Fatal("configuring the answer store", zap.Error(err))
	}

	catalog := prompt.DefaultCatalog()
	entries := make([]store.Entry, 0, len(sampleAnswers))
	for i, text := range sampleAnswers {
		entries = append(entries, store.Entry{Question: catalog.Question(i + 1), Answer: store.TextAnswer(text)})
	}

	if err := store.Seed(ctx, mongoCfg, userID, entries, logger); err != nil {
		logger.Fatal("seeding career progress", zap.Error(err))
	}

	logger.Info("seeded career progress", zap.String("user_id", userID), zap.Int("answers", len(entries)))
}
