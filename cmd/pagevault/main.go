// Copyright 2026 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/pagevault"
	"github.com/poiesic/pagevault/ai"
	"github.com/poiesic/pagevault/core"
	"github.com/poiesic/pagevault/ingestion"
	"github.com/poiesic/pagevault/reembed"
	"github.com/poiesic/pagevault/storage"
	"github.com/urfave/cli/v2"
)

func main() {
	dbFlag := &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Usage:    "Path to BadgerDB database directory",
		Required: true,
	}
	userFlag := &cli.StringFlag{
		Name:     "user",
		Aliases:  []string{"u"},
		Usage:    "User ID owning the workspace connection",
		Required: true,
	}
	embeddingHostFlag := &cli.StringFlag{
		Name:  "embedding-host",
		Usage: "Embedding service host URL",
		Value: "http://localhost:11434/v1",
	}
	embeddingModelFlag := &cli.StringFlag{
		Name:  "embedding-model",
		Usage: "Embedding model name",
		Value: "embeddinggemma",
	}

	app := &cli.App{
		Name:  "pagevault",
		Usage: "Workspace page importer with semantic search",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "connect",
				Usage:  "Store a workspace access token for a user",
				Action: connectCommand,
				Flags: []cli.Flag{
					dbFlag,
					userFlag,
					&cli.StringFlag{
						Name:     "token",
						Usage:    "Workspace integration access token",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "workspace",
						Usage: "Workspace identifier",
					},
				},
			},
			{
				Name:   "disconnect",
				Usage:  "Remove a user's workspace connection",
				Action: disconnectCommand,
				Flags:  []cli.Flag{dbFlag, userFlag},
			},
			{
				Name:   "status",
				Usage:  "Show a user's connection and imported page count",
				Action: statusCommand,
				Flags:  []cli.Flag{dbFlag, userFlag},
			},
			{
				Name:   "import",
				Usage:  "Import all reachable workspace pages for a user",
				Action: importCommand,
				Flags: []cli.Flag{
					dbFlag,
					userFlag,
					embeddingHostFlag,
					embeddingModelFlag,
					&cli.IntFlag{
						Name:  "max-embed-chars",
						Usage: "Character budget applied before embedding",
						Value: ai.DefaultMaxEmbedChars,
					},
				},
			},
			{
				Name:   "runs",
				Usage:  "List a user's past import runs",
				Action: runsCommand,
				Flags:  []cli.Flag{dbFlag, userFlag},
			},
			{
				Name:      "search",
				Usage:     "Search a user's imported pages",
				ArgsUsage: "QUERY",
				Action:    searchCommand,
				Flags: []cli.Flag{
					dbFlag,
					userFlag,
					embeddingHostFlag,
					embeddingModelFlag,
					&cli.IntFlag{
						Name:  "max-hits",
						Usage: "Maximum number of results",
						Value: 10,
					},
				},
			},
			{
				Name:   "reembed",
				Usage:  "Reembed a user's pages with new embeddings",
				Action: reembedCommand,
				Flags: []cli.Flag{
					dbFlag,
					userFlag,
					embeddingHostFlag,
					embeddingModelFlag,
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of pages to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N pages",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openVault(c *cli.Context) (*pagevault.Vault, error) {
	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	return pagevault.NewVault(c.String("db"), pagevault.WithAIConfig(aiConfig))
}

func connectCommand(c *cli.Context) error {
	vault, err := openVault(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer vault.Close()

	credential := &core.Credential{
		AccessToken: c.String("token"),
		WorkspaceID: c.String("workspace"),
		CreatedAt:   time.Now().UTC(),
	}
	if err := core.ValidateCredential(credential); err != nil {
		return err
	}

	if err := vault.CredentialRepository().PutCredential(c.Context, c.String("user"), credential); err != nil {
		return fmt.Errorf("failed to store credential: %w", err)
	}

	fmt.Printf("Workspace connected for user %s\n", c.String("user"))
	return nil
}

func disconnectCommand(c *cli.Context) error {
	vault, err := openVault(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer vault.Close()

	err = vault.CredentialRepository().DeleteCredential(c.Context, c.String("user"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no workspace connected for user %s", c.String("user"))
		}
		return err
	}

	fmt.Printf("Workspace disconnected for user %s\n", c.String("user"))
	return nil
}

func statusCommand(c *cli.Context) error {
	vault, err := openVault(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer vault.Close()

	userID := c.String("user")

	credential, err := vault.CredentialRepository().GetCredential(c.Context, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			fmt.Printf("User %s has no workspace connected\n", userID)
			return nil
		}
		return err
	}

	count, err := vault.PageRepository().CountPageRecordsByUser(c.Context, userID)
	if err != nil {
		return err
	}

	fmt.Printf("User: %s\n", userID)
	if credential.WorkspaceID != "" {
		fmt.Printf("Workspace: %s\n", credential.WorkspaceID)
	}
	fmt.Printf("Connected since: %s\n", credential.CreatedAt.Format(time.RFC3339))
	fmt.Printf("Imported pages: %d\n", count)
	return nil
}

func importCommand(c *cli.Context) error {
	vault, err := openVault(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer vault.Close()

	coordinator, err := vault.NewCoordinator(ingestion.WithMaxEmbedChars(c.Int("max-embed-chars")))
	if err != nil {
		return err
	}
	defer coordinator.Release()

	runID, err := coordinator.StartImport(c.Context, c.String("user"), nil)
	if err != nil {
		if errors.Is(err, ingestion.ErrNoCredential) {
			return fmt.Errorf("no workspace connected for user %s (run 'pagevault connect' first)", c.String("user"))
		}
		return err
	}

	fmt.Printf("Import run %s started\n", runID)

	summary, err := waitForRun(c.Context, coordinator, runID)
	if err != nil {
		return err
	}

	printSummary(summary)
	if summary.State == core.RunStateFailed {
		return fmt.Errorf("import run %s failed", runID)
	}
	return nil
}

// waitForRun polls the coordinator until the run reaches a terminal state.
func waitForRun(ctx context.Context, coordinator *ingestion.Coordinator, runID string) (*core.RunSummary, error) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		summary, err := coordinator.ImportStatus(ctx, runID)
		if err != nil {
			return nil, err
		}
		if summary.State != core.RunStateRunning {
			return summary, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func printSummary(summary *core.RunSummary) {
	fmt.Printf("Run %s: %s\n", summary.RunID, stateName(summary.State))
	fmt.Printf("  Pages seen:  %d\n", summary.Total)
	fmt.Printf("  Succeeded:   %d\n", summary.Succeeded)
	fmt.Printf("  Failed:      %d\n", summary.Failed)
	for _, failure := range summary.Failures {
		fmt.Printf("  - %s: %s\n", failure.PageID, failure.Reason)
	}
}

func stateName(state core.RunState) string {
	switch state {
	case core.RunStateRunning:
		return "running"
	case core.RunStateCompleted:
		return "completed"
	case core.RunStateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

func runsCommand(c *cli.Context) error {
	vault, err := openVault(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer vault.Close()

	summaries, err := vault.RunRepository().GetRunsByUser(c.Context, c.String("user"))
	if err != nil {
		return err
	}

	if len(summaries) == 0 {
		fmt.Printf("No import runs recorded for user %s\n", c.String("user"))
		return nil
	}

	for _, summary := range summaries {
		fmt.Printf("%s  %s  %-9s  %d/%d succeeded\n",
			summary.StartedAt.Format(time.RFC3339),
			summary.RunID,
			stateName(summary.State),
			summary.Succeeded,
			summary.Total)
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query is required")
	}

	vault, err := openVault(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer vault.Close()

	searcher, err := vault.NewSearcher()
	if err != nil {
		return err
	}

	results, err := searcher.FindSimilar(c.Context, c.String("user"), query, c.Int("max-hits"))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("No matching pages")
		return nil
	}

	for i, result := range results {
		fmt.Printf("%2d. [%.3f] %s (%s)\n", i+1, result.Score, result.Record.Title, result.Record.SourcePageID)
	}
	return nil
}

func reembedCommand(c *cli.Context) error {
	vault, err := openVault(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer vault.Close()

	config := &reembed.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}

	if config.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if config.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if config.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	reembedder := vault.NewReembedder(config, os.Stderr)

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", c.String("embedding-host"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(os.Stderr)

	if err := reembedder.Run(c.Context, c.String("user")); err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}

	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
