package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ikodinhi/interview-scheduler/internal/logger"
	"github.com/ikodinhi/interview-scheduler/internal/notify"
	"github.com/ikodinhi/interview-scheduler/internal/pipeline"
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Process a single candidate response from the terminal",
	Run: func(cmd *cobra.Command, _ []string) {
		submit(cmd)
	},
}

func init() {
	rootCmd.AddCommand(submitCmd)

	submitCmd.Flags().StringP("email", "e", "", "candidate contact email")
	submitCmd.Flags().StringP("text", "t", "", "candidate response text")
	submitCmd.Flags().BoolP("dry-run", "n", false, "print notifications instead of sending them")
}

func submit(cmd *cobra.Command) {
	ctx := cmd.Context()

	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	email, err := flagOrPrompt(cmd, "email", "Candidate email")
	if err != nil {
		zlog.Fatal("reading candidate email", zap.Error(err))
	}

	text, err := flagOrPrompt(cmd, "text", "Candidate response")
	if err != nil {
		zlog.Fatal("reading candidate response", zap.Error(err))
	}

	var sender notify.Sender
	if cmd.Flag("dry-run").Value.String() == "true" {
		sender = &consoleSender{}
	} else {
		if sender, err = buildSMTPSender(config); err != nil {
			zlog.Fatal("building smtp sender", zap.Error(err))
		}
	}

	p, loc, cleanup, err := buildPipeline(ctx, config, zlog, sender)
	if err != nil {
		zlog.Fatal("building the scheduling pipeline", zap.Error(err))
	}
	defer cleanup()

	result, err := p.Process(ctx, pipeline.Submission{
		ID:             uuid.NewString(),
		CandidateEmail: email,
		Text:           text,
		Now:            time.Now().In(loc),
	})
	if err != nil {
		zlog.Fatal("processing submission", zap.Error(err))
	}

	fmt.Println(result.Message)

	for _, delivery := range result.Deliveries {
		status := "delivered"
		if delivery.Failed() {
			status = fmt.Sprintf("failed: %s", delivery.Err)
		}
		fmt.Printf("  %s (%s): %s\n", delivery.Recipient, delivery.Subject, status)
	}
}

func flagOrPrompt(cmd *cobra.Command, flag, label string) (string, error) {
	if value := strings.TrimSpace(cmd.Flag(flag).Value.String()); value != "" {
		return value, nil
	}

	prompt := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return fmt.Errorf("%s must not be empty", strings.ToLower(label))
			}
			return nil
		},
	}

	return prompt.Run()
}

// consoleSender prints messages instead of delivering them. Used by the
// dry-run mode of the submit command.
type consoleSender struct{}

func (*consoleSender) Deliver(_ context.Context, to, subject, body string) error {
	fmt.Printf("--- to: %s\nsubject: %s\n%s\n", to, subject, body)
	return nil
}
