package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/responder/core/internal/adapters/repository"
	"github.com/responder/core/internal/application/services"
	"github.com/responder/core/internal/domain/entities"
	"github.com/responder/core/internal/infrastructure/logger"
)

// NewQuestionsCommand creates the questions command for working with the store offline
func NewQuestionsCommand() *cobra.Command {
	questionsCmd := &cobra.Command{
		Use:   "questions",
		Short: "Question store commands",
		Long:  "Inspect and seed the configured question store without starting the server",
	}

	questionsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print all stored questions as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withQuestionService(cmd, func(svc *services.QuestionService) error {
				questions, err := svc.ListQuestions(cmd.Context())
				if err != nil {
					return err
				}

				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(questions)
			})
		},
	})

	questionsCmd.AddCommand(&cobra.Command{
		Use:   "import <file>",
		Short: "Add every question from a JSON array file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			var questions []entities.Question
			if err := json.Unmarshal(data, &questions); err != nil {
				return fmt.Errorf("failed to parse %s: %w", args[0], err)
			}

			return withQuestionService(cmd, func(svc *services.QuestionService) error {
				result, err := svc.ImportQuestions(cmd.Context(), questions)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Imported: %d\n", result.Imported)
				fmt.Fprintf(out, "Skipped: %d\n", result.Skipped)
				for _, skip := range result.Skips {
					fmt.Fprintf(out, "  %s\n", skip)
				}
				return nil
			})
		},
	})

	return questionsCmd
}

func withQuestionService(cmd *cobra.Command, fn func(*services.QuestionService) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer appLogger.Close()

	store, _, cleanup, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	repo := repository.NewQuestionRepository(store)
	return fn(services.NewQuestionService(repo, store, appLogger, nil))
}
