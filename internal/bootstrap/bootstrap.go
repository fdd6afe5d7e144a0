// Package bootstrap wires configuration, infrastructure, and use cases into
// a runnable application. Both binaries share this composition root.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vmalikov/docflow/internal/config"
	"github.com/vmalikov/docflow/internal/core/domain"
	"github.com/vmalikov/docflow/internal/core/ports"
	"github.com/vmalikov/docflow/internal/core/usecase"
	"github.com/vmalikov/docflow/internal/infrastructure/classify"
	"github.com/vmalikov/docflow/internal/infrastructure/extractor"
	"github.com/vmalikov/docflow/internal/infrastructure/extractor/excel"
	"github.com/vmalikov/docflow/internal/infrastructure/extractor/pdf"
	"github.com/vmalikov/docflow/internal/infrastructure/extractor/plaintext"
	"github.com/vmalikov/docflow/internal/infrastructure/llm/ollama"
	"github.com/vmalikov/docflow/internal/infrastructure/notify/email"
	"github.com/vmalikov/docflow/internal/infrastructure/notify/webhook"
	"github.com/vmalikov/docflow/internal/infrastructure/queue/nats"
	"github.com/vmalikov/docflow/internal/infrastructure/repository/postgres"
	"github.com/vmalikov/docflow/internal/infrastructure/resilience"
	"github.com/vmalikov/docflow/internal/infrastructure/routing"
	"github.com/vmalikov/docflow/internal/infrastructure/storage/localfs"
	"github.com/vmalikov/docflow/internal/infrastructure/summarize"
	"github.com/vmalikov/docflow/internal/observability/logging"
)

type App struct {
	Config config.Config
	Logger *slog.Logger

	Queue ports.MessageQueue
	Repo  ports.DocumentRepository

	IngestUC  ports.DocumentIngestor
	QueryUC   ports.DocumentReader
	ProcessUC *usecase.ProcessDocumentUseCase

	closeFn func()
}

func New(ctx context.Context, cfg config.Config, service string) (*App, error) {
	logger := logging.NewJSONLogger(service, cfg.LogLevel)
	slog.SetDefault(logger)

	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewDocumentRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	auditLog := postgres.NewProcessingLogRepository(db)

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	executor := resilience.NewExecutor(resilience.DefaultConfig())

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	rules, err := config.LoadRules(cfg.RulesPath)
	if err != nil {
		return nil, fmt.Errorf("load routing rules: %w", err)
	}

	var llmClient *ollama.Client
	if cfg.LLMURL != "" {
		llmClient = ollama.New(ollama.Config{
			BaseURL:        cfg.LLMURL,
			Model:          cfg.LLMModel,
			Timeout:        time.Duration(cfg.LLMTimeoutSeconds) * time.Second,
			RequestsPerMin: cfg.LLMRequestsPerMin,
		}, executor)
	}

	classifier, err := buildClassifier(cfg, rules, llmClient, logger)
	if err != nil {
		return nil, err
	}

	var generator ports.TextGenerator
	if llmClient != nil {
		generator = llmClient
	}
	summarizer := summarize.NewEngine(logger, cfg.SummarySentences, generator)

	router := routing.NewEngine(logger, routingTables(rules), notificationChannels(cfg, executor, logger)...)

	docExtractor := extractor.NewDispatcher().
		Register(plaintext.NewExtractor(storage), ".txt", ".md", ".csv").
		Register(pdf.NewExtractor(storage), ".pdf").
		Register(excel.NewExtractor(storage), ".xlsx", ".xlsm")

	ingestUC := usecase.NewIngestDocumentUseCase(repo, storage, queue)
	queryUC := usecase.NewQueryDocumentUseCase(repo, auditLog)
	processUC := usecase.NewProcessDocumentUseCase(repo, auditLog, docExtractor, classifier, summarizer, router, logger)

	return &App{
		Config: cfg,
		Logger: logger,

		Queue: queue,
		Repo:  repo,

		IngestUC:  ingestUC,
		QueryUC:   queryUC,
		ProcessUC: processUC,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}

// buildClassifier assembles the strategy chain in priority order: trained
// model, LLM endpoint, demo mock, keyword rules. The rule strategy always
// terminates the chain.
func buildClassifier(cfg config.Config, rules config.Rules, llmClient *ollama.Client, logger *slog.Logger) (ports.Classifier, error) {
	var strategies []classify.Strategy

	if cfg.ModelPath != "" {
		model, err := classify.LoadBayesModel(cfg.ModelPath)
		if err != nil {
			return nil, fmt.Errorf("load classification model: %w", err)
		}
		strategies = append(strategies, classify.NewModelStrategy(model))
	}
	if llmClient != nil {
		strategies = append(strategies, classify.NewLLMStrategy(llmClient, rules.CategoryNames()))
	}
	if cfg.LLMMockEnabled {
		strategies = append(strategies, classify.NewMockStrategy())
	}
	strategies = append(strategies, classify.NewRuleStrategy(categoryRules(rules)))

	return classify.NewEngine(logger, strategies...), nil
}

func categoryRules(rules config.Rules) []classify.CategoryRule {
	out := make([]classify.CategoryRule, 0, len(rules.Categories))
	for _, rule := range rules.Categories {
		out = append(out, classify.CategoryRule{
			Name:       rule.Name,
			Keywords:   rule.Keywords,
			Weight:     rule.Weight,
			Confidence: rule.Confidence,
		})
	}
	return out
}

func routingTables(rules config.Rules) routing.Tables {
	departments := make([]routing.Department, 0, len(rules.Departments))
	for _, dept := range rules.Departments {
		departments = append(departments, routing.Department{
			ID:         dept.ID,
			Name:       dept.Name,
			Email:      dept.Email,
			Categories: dept.Categories,
		})
	}

	priorities := make(map[string]domain.Priority, len(rules.Priorities))
	for category, name := range rules.Priorities {
		if priority, ok := parsePriority(name); ok {
			priorities[category] = priority
		}
	}

	return routing.Tables{
		ConfidenceThreshold: rules.ConfidenceThreshold,
		FallbackDepartment:  rules.FallbackDepartment,
		Departments:         departments,
		Priorities:          priorities,
		UrgentKeywords:      rules.UrgentKeywords,
		SensitiveKeywords:   rules.SensitiveKeywords,
	}
}

func parsePriority(name string) (domain.Priority, bool) {
	switch name {
	case "urgent":
		return domain.PriorityUrgent, true
	case "high":
		return domain.PriorityHigh, true
	case "medium":
		return domain.PriorityMedium, true
	case "low":
		return domain.PriorityLow, true
	default:
		return "", false
	}
}

func notificationChannels(cfg config.Config, executor *resilience.Executor, logger *slog.Logger) []ports.NotificationChannel {
	var channels []ports.NotificationChannel

	if cfg.SMTPHost != "" && cfg.SMTPFrom != "" {
		channel, err := email.New(email.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		})
		if err != nil {
			logger.Warn("email channel disabled", "error", err)
		} else {
			channels = append(channels, channel)
		}
	}

	if cfg.WebhookURL != "" {
		channels = append(channels, webhook.New(
			cfg.WebhookURL,
			time.Duration(cfg.WebhookTimeoutSeconds)*time.Second,
			executor,
		))
	}

	return channels
}
