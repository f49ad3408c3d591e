package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/responder/core/cmd/api/commands"
)

// @title Responder API
// @version 1.0
// @description Questions and their answers, stored as a single JSON document

// @host localhost:3000
// @BasePath /

func main() {
	rootCmd := &cobra.Command{
		Use:           "responder",
		Short:         "Responder API Server",
		Long:          `Responder serves questions and their nested answers over a small REST API, backed by a single JSON document.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Path to a config file (yaml, json or toml)")

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewQuestionsCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
