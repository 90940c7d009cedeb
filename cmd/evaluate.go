package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/progress-evaluator/internal/evaluation"
	"github.com/spigell/progress-evaluator/internal/identifier"
	"github.com/spigell/progress-evaluator/internal/logger"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [user-id]",
	Short: "Score the career progress answers of a user",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		evaluate(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)
}

// evaluate is the main command for the cli.
func evaluate(cmd *cobra.Command, args []string) {
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

	logger.Info("starting the progress-evaluator", zap.String("version", version))

	userID, err := resolveUserID(args)
	if err != nil {
		logger.Fatal("reading the user id", zap.Error(err))
	}

	evaluator, err := newEvaluator(ctx, config, logger)
	if err != nil {
		logger.Fatal("preparing the evaluation", zap.Error(err))
	}

	scores, err := evaluator.Run(ctx, userID)
	if err != nil {
		logger.Fatal(evaluation.Describe(err),
			zap.String("kind", evaluation.Kind(err)),
			zap.Error(err),
		)
	}

	pretty, err := json.MarshalIndent(scores, "", "  ")
	if err != nil {
		logger.Fatal("encoding scores", zap.Error(err))
	}

	logger.Info("evaluation successful")
	fmt.Fprintln(cmd.OutOrStdout(), string(pretty))
}

// resolveUserID takes the user id from the arguments or asks for it.
func resolveUserID(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	userPrompt := promptui.Prompt{
		Label:    "User ID",
		Validate: identifier.Validate,
	}

	return userPrompt.Run()
}
