package cmd

import (
	"errors"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const app = "hr-bot"

// Config is the application configuration, read from the config file and
// environment via viper.
type Config struct {
	// Token is the inline bot token. Prefer TokenFile or the BOT_TOKEN
	// environment variable outside local development.
	Token     string `mapstructure:"token"`
	TokenFile string `mapstructure:"token-file"`
	// DataFile is the candidate records CSV.
	DataFile string `mapstructure:"data-file"`
	// VacanciesFile is an optional YAML catalog of openings; built-in
	// openings are used when unset.
	VacanciesFile string `mapstructure:"vacancies-file"`
	// Listen is the liveness responder address.
	Listen string `mapstructure:"listen"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "hr-bot is a Telegram recruiting-intake bot: it walks candidates through openings and screening questions and records their progress",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("token", "BOT_TOKEN"); err != nil {
		log.Fatalf("binding BOT_TOKEN environment variable: %v", err)
	}
	if err := viper.BindEnv("token-file", "BOT_TOKEN_FILE"); err != nil {
		log.Fatalf("binding BOT_TOKEN_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("port", "PORT"); err != nil {
		log.Fatalf("binding PORT environment variable: %v", err)
	}

	viper.SetDefault("data-file", "data/analytics.csv")
	viper.SetDefault("listen", ":8000")

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is hr-bot.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// .env keeps local runs close to the PaaS deployment; absence is fine.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		// The bot runs fine on environment variables alone; only an
		// explicitly requested or malformed config file is fatal.
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if port := viper.GetString("port"); port != "" {
		config.Listen = ":" + port
	}

	return config, nil
}
