package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dealdesk/dealdesk/pkg/clients"
	"github.com/dealdesk/dealdesk/pkg/config"
	"github.com/dealdesk/dealdesk/pkg/research"
	"github.com/dealdesk/dealdesk/pkg/search"
)

var query string

func main() {
	// Setup structured logging
	handler := slog.NewTextHandler(os.Stdout, nil)
	slog.SetDefault(slog.New(handler))

	// Load .env file
	if err := godotenv.Load(); err != nil {
		// It's okay if .env doesn't exist, as long as env vars are set
	}

	cfg := config.Load()

	rootCmd := &cobra.Command{
		Use:   "dealdesk",
		Short: "A terminal-based deal research agent",
		Long:  `DealDesk researches a company or market question by iterating through a plan, search, analyze, refine loop and prints a sourced report.`,
		Run: func(cmd *cobra.Command, args []string) {

			queryFlagChanged := cmd.Flags().Changed("query")

			if !queryFlagChanged {
				// Interactive Mode
				reader := bufio.NewReader(os.Stdin)

				fmt.Print("Enter research query: ")
				input, _ := reader.ReadString('\n')
				query = strings.TrimSpace(input)
			}
			if query == "" {
				slog.Error("Query cannot be empty")
				os.Exit(1)
			}

			slog.Info("Starting research", "query", query)

			searchClient, err := search.FromConfig(cfg)
			if err != nil {
				slog.Error("Failed to init search client", "error", err)
				os.Exit(1)
			}

			model, err := clients.GoogleAI(context.Background(), cfg.GoogleApiKey, cfg.ReasoningModel)
			if err != nil {
				slog.Error("Failed to init LLM client", "error", err)
				os.Exit(1)
			}
			llm := clients.NewChatModel(model, slog.Default())

			o := research.New(searchClient, llm, research.Options{
				MaxIterations:       cfg.MaxIterations,
				MaxSources:          cfg.MaxSources,
				ConfidenceThreshold: cfg.ConfidenceThreshold,
				EnableRefinement:    cfg.EnableRefinement,
				SearchTimeRange:     cfg.SearchTimeRange,
			})
			o.OnStep = func(ev research.StepEvent) {
				if ev.Status != research.StepComplete {
					return
				}
				fmt.Printf("[%s] %s\n", ev.Type, ev.Title)
			}

			state, err := o.Run(context.Background(), query)
			if err != nil {
				slog.Error("Error running research", "error", err)
				os.Exit(1)
			}

			report := research.Report(*state)
			fmt.Println()
			fmt.Println(report)

			// Save a copy next to the terminal output
			filename := fmt.Sprintf("report_%s.md", time.Now().Format("20060102_150405"))
			if err := os.WriteFile(filename, []byte(report), 0644); err != nil {
				slog.Warn("Failed to write report file", "error", err)
			} else {
				slog.Info("Report saved", "file", filename)
			}
		},
	}

	rootCmd.Flags().StringVarP(&query, "query", "q", "", "The research query")

	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command execution failed", "error", err)
		os.Exit(1)
	}
}
