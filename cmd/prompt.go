package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/progress-evaluator/internal/evaluation"
	"github.com/spigell/progress-evaluator/internal/logger"
	"github.com/spigell/progress-evaluator/internal/prompt"
)

var promptCmd = &cobra.Command{
	Use:   "prompt <user-id>",
	Short: "Print the evaluation prompt for a user without calling the scoring service",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		renderPrompt(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(promptCmd)
}

func renderPrompt(cmd *cobra.Command, userID string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	answers, err := newStore(config, logger)
	if err != nil {
		logger.Fatal("configuring the answer store", zap.Error(err))
	}

	text, err := evaluation.New(answers, prompt.Default(), nil, logger, config.Scoring.MaxLogLength).Render(ctx, userID)
	if err != nil {
		logger.Fatal(evaluation.Describe(err), zap.String("kind", evaluation.Kind(err)), zap.Error(err))
	}

	fmt.Fprintln(cmd.OutOrStdout(), text)
}
