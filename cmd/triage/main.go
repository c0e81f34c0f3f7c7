package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/triage/internal/cli"
	"github.com/alexanderramin/triage/internal/config"
	"github.com/alexanderramin/triage/internal/db"
	"github.com/alexanderramin/triage/internal/intelligence"
	"github.com/alexanderramin/triage/internal/llm"
	"github.com/alexanderramin/triage/internal/logging"
	"github.com/alexanderramin/triage/internal/repository"
	"github.com/alexanderramin/triage/internal/service"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A local .env may carry TRIAGE_* settings.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	// Global flags are read before cobra runs so the config layer sees them.
	flags := cli.GlobalFlags()
	flags.ParseErrorsWhitelist.UnknownFlags = true
	flags.Usage = func() {}
	_ = flags.Parse(os.Args[1:])
	configPath, _ := flags.GetString("config")

	cfg, err := config.Load(configPath, flags)
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	weights, err := cfg.ScoringWeights()
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	statusRepo := repository.NewSQLiteProjectStatusRepo(database)
	projectRepo := repository.NewSQLiteProjectRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	reportRepo := repository.NewSQLiteClientReportRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(logging.WithComponent(logger, "service")))
	}

	// The report writer falls back to the deterministic narrative when no
	// client is configured.
	var client llm.LLMClient
	if cfg.LLM.Enabled {
		llmLogger := logging.WithComponent(logger, "llm")
		var observer llm.Observer = llm.NoopObserver{}
		if cfg.LLM.LogCalls {
			observer = llm.NewZapObserver(llmLogger)
		}
		client = llm.NewOllamaClient(cfg.LLMClientConfig(), observer, llmLogger)
	}

	board := service.NewBoardService(statusRepo, projectRepo, taskRepo, weights, observers...)
	app := &cli.App{
		Statuses: service.NewProjectStatusService(statusRepo, uow, observers...),
		Projects: service.NewProjectService(projectRepo, statusRepo),
		Tasks:    service.NewTaskService(taskRepo, projectRepo),
		Board:    board,
		Import:   service.NewImportService(statusRepo, projectRepo, uow, observers...),
		Reports:  service.NewReportService(board, projectRepo, reportRepo, intelligence.NewReportWriter(client), observers...),
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	logger.Debug("starting",
		zap.String("db", cfg.DBPath),
		zap.String("config", cfg.File),
		zap.Bool("llm", cfg.LLM.Enabled),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
