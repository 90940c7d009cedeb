package cmd

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/progress-evaluator/internal/scoring"
	"github.com/spigell/progress-evaluator/internal/scoring/gemini"
	"github.com/spigell/progress-evaluator/internal/scoring/groq"
	"github.com/spigell/progress-evaluator/internal/store"
)

const (
	app = "progress-evaluator"
)

type Config struct {
	Mongo   *MongoConfig   `mapstructure:"mongo"`
	Scoring *ScoringConfig `mapstructure:"scoring"`
	Server  *ServerConfig  `mapstructure:"server"`
}

type MongoConfig struct {
	URI            string        `mapstructure:"uri"`
	URIFile        string        `mapstructure:"uri-file"`
	Database       string        `mapstructure:"database"`
	Collection     string        `mapstructure:"collection"`
	ConnectTimeout time.Duration `mapstructure:"connect-timeout"`
}

type ScoringConfig struct {
	Provider     string        `mapstructure:"provider"`
	MaxLogLength int           `mapstructure:"max-log-length"`
	Groq         *GroqConfig   `mapstructure:"groq"`
	Gemini       *GeminiConfig `mapstructure:"gemini"`
}

type GroqConfig struct {
	APIKey     string `mapstructure:"api-key" json:"-"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
	BaseURL    string `mapstructure:"base-url"`
}

type GeminiConfig struct {
	APIKey     string `mapstructure:"api-key" json:"-"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "progress-evaluator scores career progress answers stored in MongoDB with an LLM",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	envBindings := map[string]string{
		"mongo.uri":                   "MONGO_URI",
		"mongo.uri-file":              "MONGO_URI_FILE",
		"scoring.provider":            "SCORING_PROVIDER",
		"scoring.groq.api-key":        "GROQ_API_KEY",
		"scoring.groq.api-key-file":   "GROQ_API_KEY_FILE",
		"scoring.gemini.api-key":      "GEMINI_API_KEY",
		"scoring.gemini.api-key-file": "GEMINI_API_KEY_FILE",
	}
	for key, env := range envBindings {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	viper.SetDefault("mongo.database", store.DefaultDatabase)
	viper.SetDefault("mongo.collection", store.DefaultCollection)
	viper.SetDefault("mongo.connect-timeout", 10*time.Second)
	viper.SetDefault("scoring.provider", scoring.ProviderGroq)
	viper.SetDefault("scoring.max-log-length", 200)
	viper.SetDefault("scoring.groq.model", groq.DefaultModel)
	viper.SetDefault("scoring.groq.base-url", groq.DefaultBaseURL)
	viper.SetDefault("scoring.gemini.model", gemini.DefaultModel)
	viper.SetDefault("server.addr", ":8080")

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is progress-evaluator.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Secrets usually come from a local .env file during development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("loading .env file: %v", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		// Environment variables are enough when no config file was requested explicitly.
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.Mongo == nil {
		config.Mongo = &MongoConfig{}
	}
	if config.Scoring == nil {
		config.Scoring = &ScoringConfig{}
	}
	if config.Scoring.Groq == nil {
		config.Scoring.Groq = &GroqConfig{}
	}
	if config.Scoring.Gemini == nil {
		config.Scoring.Gemini = &GeminiConfig{}
	}
	if config.Server == nil {
		config.Server = &ServerConfig{}
	}

	return config, nil
}
