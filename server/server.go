// Package server assembles the HR assistant: configuration, storage,
// the answer-resolution engine, and the HTTP API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/orgai/hr-assistant/internal/profile"
	"github.com/orgai/hr-assistant/plugin/filter"
	"github.com/orgai/hr-assistant/plugin/textextract"
	"github.com/orgai/hr-assistant/server/ai"
	"github.com/orgai/hr-assistant/server/docrequest"
	"github.com/orgai/hr-assistant/server/finops"
	"github.com/orgai/hr-assistant/server/qa"
	apiv1 "github.com/orgai/hr-assistant/server/router/api/v1"
	"github.com/orgai/hr-assistant/server/runner/embedding"
	"github.com/orgai/hr-assistant/server/service/auth"
	"github.com/orgai/hr-assistant/server/service/employee"
	"github.com/orgai/hr-assistant/server/service/summary"
	"github.com/orgai/hr-assistant/server/stats"
	"github.com/orgai/hr-assistant/store"
)

// Data directory file names.
const (
	qaDatasetFile = "qa_dataset.json"
	employeesFile = "employees.json"
	badWordsFile  = "bad_words.json"
)

// Server is the assembled HR assistant.
type Server struct {
	Profile *profile.Profile
	Store   *store.Store

	echoServer  *echo.Echo
	authService *auth.Service
	statsCol    *stats.Collector
}

// NewServer wires every component. Degraded AI configuration is not
// fatal: the resolver falls back to keyword matching and canned
// replies.
func NewServer(ctx context.Context, p *profile.Profile, st *store.Store) (*Server, error) {
	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.HidePort = true
	echoServer.Use(echomw.Recover())

	costMonitor := finops.NewCostMonitor()

	var provider *ai.Provider
	if p.IsAIEnabled() {
		var err error
		provider, err = ai.NewProvider(&ai.Config{
			BaseURL:        p.AIBaseURL,
			APIKey:         p.AIAPIKey,
			EmbeddingModel: p.AIEmbeddingModel,
			ChatModel:      p.AIChatModel,
		})
		if err != nil {
			slog.Warn("ai provider unavailable, running degraded", slog.String("error", err.Error()))
			provider = nil
		} else {
			provider.SetUsageRecorder(costMonitor)
		}
	} else {
		slog.Info("ai disabled, running with keyword matching only")
	}

	resolver, corpus, pairs := buildResolver(ctx, p, st, provider)
	if provider != nil && !corpus.Snapshot().Indexed() && len(pairs) > 0 {
		go embedding.NewRunner(corpus, qa.NewIndexer(provider, st), pairs).Run(ctx)
	}

	employeeService := employee.NewService(st)
	if loaded, skipped, err := employeeService.SeedFromFile(ctx, filepath.Join(p.Data, employeesFile)); err != nil {
		slog.Warn("failed to seed employees", slog.String("error", err.Error()))
	} else if loaded > 0 {
		slog.Info("employee directory seeded", slog.Int("loaded", loaded), slog.Int("skipped", skipped))
	}

	badWords, err := filter.NewFromFile(filepath.Join(p.Data, badWordsFile))
	if err != nil {
		return nil, errors.Wrap(err, "failed to load bad language filter")
	}

	var otpSender auth.Sender
	if smtpSender := auth.NewSMTPSender(p); smtpSender != nil {
		otpSender = smtpSender
	}
	authService := auth.NewService(st, otpSender, p.Secret, p.OrgName)

	var summaryGenerator summary.Generator
	if provider != nil {
		summaryGenerator = provider
	}

	statsCollector := stats.NewCollector(st)
	statsCollector.Start(ctx)

	apiService := &apiv1.APIV1Service{
		Profile:   p,
		Store:     st,
		Resolver:  resolver,
		Auth:      authService,
		Documents: docrequest.NewService(st, docrequest.NewTextRenderer(p.OrgName)),
		Employees: employeeService,
		Summaries: summary.NewService(summaryGenerator),
		Filter:    badWords,
		Stats:     statsCollector,
		Costs:     costMonitor,
		Extractor: textextract.NewClient(textextract.ConfigFromEnv()),
	}
	apiService.Register(echoServer)

	return &Server{
		Profile:     p,
		Store:       st,
		echoServer:  echoServer,
		authService: authService,
		statsCol:    statsCollector,
	}, nil
}

// buildResolver loads the QA dataset, indexes it, and wires the
// resolution pipeline.
func buildResolver(ctx context.Context, p *profile.Profile, st *store.Store, provider *ai.Provider) (*qa.Resolver, *qa.Corpus, []qa.QAPair) {
	pairs, skipped, err := qa.LoadPairs(filepath.Join(p.Data, qaDatasetFile))
	if err != nil {
		slog.Warn("failed to load qa dataset, resolver starts empty", slog.String("error", err.Error()))
		pairs = nil
	} else if skipped > 0 {
		slog.Warn("qa dataset contained malformed entries", slog.Int("skipped", skipped))
	}

	corpus := qa.NewCorpus()
	var ranker *qa.Ranker
	var generator qa.Generator

	if provider != nil {
		indexer := qa.NewIndexer(provider, st)
		corpus.Swap(indexer.BuildSnapshot(ctx, pairs))
		ranker = qa.NewRanker(provider, qa.DefaultWeights)
		generator = provider
	} else {
		corpus.Swap(qa.NewSnapshot(pairs, nil))
	}

	return qa.NewResolver(corpus, ranker, nil, generator, docrequest.Catalog{}, p.OrgName), corpus, pairs
}

// Start begins serving. It blocks until the listener fails or the
// server is shut down.
func (s *Server) Start() error {
	address := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	slog.Info("server started", slog.String("address", address), slog.String("mode", s.Profile.Mode))
	if err := s.echoServer.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and releases resources.
func (s *Server) Shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.echoServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shut down http server", slog.String("error", err.Error()))
	}
	s.authService.Close()
	s.statsCol.Stop()
	if err := s.Store.Close(); err != nil {
		slog.Error("failed to close store", slog.String("error", err.Error()))
	}
	slog.Info("server shut down")
}
