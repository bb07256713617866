package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "interview-scheduler"
)

// Config is the application configuration decoded from the viper sources.
type Config struct {
	Timezone        string            `mapstructure:"timezone"`
	Listen          string            `mapstructure:"listen"`
	Roster          []string          `mapstructure:"roster"`
	Selection       string            `mapstructure:"selection"`
	MinTimeMentions int               `mapstructure:"min-time-mentions"`
	StorePath       string            `mapstructure:"store-path"`
	Recognizer      *RecognizerConfig `mapstructure:"recognizer"`
	SMTP            *SMTPConfig       `mapstructure:"smtp"`
}

// RecognizerConfig selects and configures the entity recognition provider.
type RecognizerConfig struct {
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

// GeminiConfig configures the Gemini-backed entity tagger.
type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

// SMTPConfig configures the outbound email transport.
type SMTPConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	From         string `mapstructure:"from"`
	Username     string `mapstructure:"username"`
	PasswordFile string `mapstructure:"password-file"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "interview-scheduler extracts interview availability from candidate replies and routes the scheduling decision",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("recognizer.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	if err := viper.BindEnv("smtp.password-file", "SMTP_PASSWORD_FILE"); err != nil {
		log.Fatalf("binding SMTP_PASSWORD_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is interview-scheduler.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config is needed only for the serve and submit commands. Without it,
	// version and help can still run.
	if serveCmd.CalledAs() == "" && submitCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
