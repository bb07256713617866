package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ikodinhi/interview-scheduler/internal/extract"
	"github.com/ikodinhi/interview-scheduler/internal/logger"
	"github.com/ikodinhi/interview-scheduler/internal/notify"
	"github.com/ikodinhi/interview-scheduler/internal/pipeline"
	"github.com/ikodinhi/interview-scheduler/internal/recognizer"
	"github.com/ikodinhi/interview-scheduler/internal/recognizer/gemini"
	"github.com/ikodinhi/interview-scheduler/internal/schedule"
	"github.com/ikodinhi/interview-scheduler/internal/secrets"
	"github.com/ikodinhi/interview-scheduler/internal/server"
	"github.com/ikodinhi/interview-scheduler/internal/store"
	"github.com/ikodinhi/interview-scheduler/internal/timeparse"
)

const defaultListen = ":8080"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the candidate submission server",
	Run: func(cmd *cobra.Command, _ []string) {
		serve(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("listen", "l", "", "listen address, overrides the config file")

	viper.BindPFlag("listen", serveCmd.Flags().Lookup("listen"))
}

func serve(cmd *cobra.Command) {
	ctx := cmd.Context()

	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	zlog.Info("starting the interview-scheduler", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	zlog.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	sender, err := buildSMTPSender(config)
	if err != nil {
		zlog.Fatal("building smtp sender",
			zap.Error(err),
			zap.String("hint", "set SMTP_PASSWORD_FILE environment variable or the 'smtp.password-file' key in the configuration file"),
		)
	}

	p, loc, cleanup, err := buildPipeline(ctx, config, zlog, sender)
	if err != nil {
		zlog.Fatal("building the scheduling pipeline", zap.Error(err))
	}
	defer cleanup()

	listen := strings.TrimSpace(viper.GetString("listen"))
	if listen == "" {
		listen = config.Listen
	}
	if listen == "" {
		listen = defaultListen
	}

	srv := server.New(p, loc, zlog)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig

		zlog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zlog.Warn("shutdown", zap.Error(err))
		}
	}()

	if err := srv.Start(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

// buildPipeline assembles the full processing pipeline from configuration.
// The returned cleanup closes the response archive.
func buildPipeline(ctx context.Context, config *Config, zlog *zap.Logger, sender notify.Sender) (*pipeline.Pipeline, *time.Location, func(), error) {
	if config == nil {
		return nil, nil, nil, errors.New("config is required")
	}

	loc := time.Local
	if tz := strings.TrimSpace(config.Timezone); tz != "" {
		var err error
		if loc, err = time.LoadLocation(tz); err != nil {
			return nil, nil, nil, fmt.Errorf("loading timezone %q: %w", tz, err)
		}
	}

	rec, err := buildRecognizer(ctx, config.Recognizer, zlog)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("building recognizer: %w", err)
	}

	selector, err := schedule.NewSelector(config.Selection)
	if err != nil {
		return nil, nil, nil, err
	}

	cleanup := func() {}
	var archive store.Store
	if path := strings.TrimSpace(config.StorePath); path != "" {
		sqlite, err := store.OpenSQLite(path)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("opening response archive: %w", err)
		}
		archive = sqlite
		cleanup = func() {
			if err := sqlite.Close(); err != nil {
				zlog.Warn("closing response archive", zap.Error(err))
			}
		}
	}

	p, err := pipeline.New(pipeline.Deps{
		Extractor:  extract.New(rec, zlog),
		Resolver:   schedule.NewResolver(timeparse.NewParser(loc), config.MinTimeMentions, zlog),
		Selector:   selector,
		Roster:     schedule.Roster(config.Roster),
		Dispatcher: notify.NewDispatcher(sender, zlog),
		Archive:    archive,
		Logger: logger.WithFields(zlog, logger.StringFields(
			logger.StringField{Key: "selection_policy", Value: selector.Name()},
		)...),
	})
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}

	return p, loc, cleanup, nil
}

func buildRecognizer(ctx context.Context, cfg *RecognizerConfig, zlog *zap.Logger) (recognizer.Recognizer, error) {
	if cfg == nil || cfg.Gemini == nil {
		return nil, errors.New("recognizer.gemini configuration is required")
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported recognizer provider: %s", cfg.Provider)
	}

	keyFile := strings.TrimSpace(cfg.Gemini.APIKeyFile)
	if keyFile == "" {
		keyFile = strings.TrimSpace(viper.GetString("recognizer.gemini.api-key-file"))
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: keyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set recognizer.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model)
	if err != nil {
		return nil, err
	}

	taggerLogger := logger.WithFields(zlog, logger.StringFields(
		logger.StringField{Key: "recognizer_provider", Value: "gemini"},
		logger.StringField{Key: "recognizer_model", Value: generator.Model()},
	)...)

	return gemini.NewTagger(generator, taggerLogger, cfg.Gemini.MaxLogLength), nil
}

func buildSMTPSender(config *Config) (notify.Sender, error) {
	if config == nil || config.SMTP == nil {
		return nil, errors.New("smtp configuration is required")
	}

	passwordFile := strings.TrimSpace(config.SMTP.PasswordFile)
	if passwordFile == "" {
		passwordFile = strings.TrimSpace(viper.GetString("smtp.password-file"))
	}

	password, err := secrets.Load(secrets.Source{
		Name: "smtp password",
		File: passwordFile,
	})
	if err != nil {
		return nil, err
	}

	return notify.NewSMTPSender(notify.SMTPConfig{
		Host:     config.SMTP.Host,
		Port:     config.SMTP.Port,
		From:     config.SMTP.From,
		Username: config.SMTP.Username,
		Password: password,
	})
}
