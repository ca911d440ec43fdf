// Command aeoaudit audits a single page or an entire domain for AI/LLM
// answer-engine readiness from argv. Uses a plain os.Args argument loop
// rather than a flag-parsing library; a handful of positional sub-commands
// and options is simpler hand-rolled than reached for.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"

	"aeoaudit/audit"
	"aeoaudit/config"
	"aeoaudit/domainaudit"
	"aeoaudit/fetch"
	"aeoaudit/jobstore"
	"aeoaudit/llmclient"
	"aeoaudit/logging"
	"aeoaudit/model"
	"aeoaudit/score"
)

func main() {
	if len(os.Args) < 3 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.Init(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	score.LoadContentTypeWeights(cfg.ContentType.Weights)

	ctx, cancel := context.WithCancel(context.Background())
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		log.Info("shutdown signal received")
		cancel()
	}()
	defer cancel()

	switch os.Args[1] {
	case "page":
		runPage(ctx, cfg, log, os.Args[2])
	case "domain":
		runDomain(ctx, cfg, log, os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`aeoaudit - AI answer-engine readiness auditor

Usage:
  aeoaudit page <url>
  aeoaudit domain <url> [--max-pages N] [--concurrency N]`)
}

func buildFetcher(cfg *config.Config, log *zap.Logger) *fetch.Fetcher {
	opts := fetch.DefaultOptions()
	opts.Mode = fetch.Mode(cfg.Fetcher.Mode)
	opts.UserAgent = cfg.Fetcher.UserAgent
	opts.HTTPTimeout = time.Duration(cfg.Fetcher.HTTPTimeoutSeconds) * time.Second
	opts.RenderTimeout = time.Duration(cfg.Fetcher.RenderTimeoutSeconds) * time.Second
	opts.ChromePath = cfg.Fetcher.ChromePath
	opts.MaxRenderRetries = cfg.Fetcher.MaxRenderRetries
	if len(cfg.Fetcher.RenderRequiredHosts) > 0 {
		opts.RenderRequiredHosts = cfg.Fetcher.RenderRequiredHosts
	}
	return fetch.New(opts, log)
}

func buildLLMClient(cfg *config.Config) *llmclient.Client {
	providers := make([]llmclient.Provider, 0, len(cfg.LLM.Clients))
	for name, pc := range cfg.LLM.Clients {
		providers = append(providers, llmclient.NewHTTPProvider(name, pc.Endpoint, pc.Credential))
	}
	return llmclient.NewClient(providers...)
}

func buildCalculator(cfg *config.Config, llm *llmclient.Client) *score.Calculator {
	return score.NewCalculator(
		score.Answerability(),
		score.StructuredData(),
		score.Authority(cfg.Authority.Hosts),
		score.ContentQuality(),
		score.Citationability(),
		score.Technical(),
		score.AICitation(llm),
	)
}

func runPage(ctx context.Context, cfg *config.Config, log *zap.Logger, target string) {
	fetcher := buildFetcher(cfg, log)
	calc := buildCalculator(cfg, buildLLMClient(cfg))
	pipeline := audit.New(fetcher, calc, log)

	result, err := pipeline.Page(ctx, target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "audit failed: %v\n", err)
		os.Exit(1)
	}

	printBreakdown(result.Audit)
	emit(result.Audit)
}

// printBreakdown prints the category scores in the deterministic display
// order (answerability first) ahead of the full JSON dump, so a human
// skimming terminal output sees the most load-bearing categories first.
func printBreakdown(pa model.PageAudit) {
	fmt.Printf("%s  %.1f (%s)\n", pa.URL, pa.OverallScore, pa.Grade)
	for _, name := range score.SortCategoriesForDisplay(pa.Breakdown) {
		cs := pa.Breakdown[name]
		fmt.Printf("  %-18s %.1f/%.0f\n", name, cs.Raw, cs.Max)
	}
}

func runDomain(ctx context.Context, cfg *config.Config, log *zap.Logger, args []string) {
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	target := args[0]
	opts := domainaudit.Options{
		MaxPages:          cfg.Domain.MaxPages,
		Concurrency:       cfg.Domain.Concurrency,
		IncludeSubdomains: cfg.Domain.IncludeSubdomains,
		UserAgent:         cfg.Fetcher.UserAgent,
	}
	for i := 1; i < len(args); i++ {
		switch args[i] {
		case "--max-pages":
			if i+1 < len(args) {
				if n, err := strconv.Atoi(args[i+1]); err == nil {
					opts.MaxPages = n
				}
				i++
			}
		case "--concurrency":
			if i+1 < len(args) {
				if n, err := strconv.Atoi(args[i+1]); err == nil {
					opts.Concurrency = n
				}
				i++
			}
		}
	}

	fetcher := buildFetcher(cfg, log)
	calc := buildCalculator(cfg, buildLLMClient(cfg))
	pipeline := audit.New(fetcher, calc, log)
	discoverer := domainaudit.NewDiscoverer(cfg.Fetcher.UserAgent, opts.IncludeSubdomains, log)
	store := jobstore.New(time.Duration(cfg.Job.TTLSeconds) * time.Second)
	orchestrator := domainaudit.NewOrchestrator(pipeline, discoverer, store, log)

	jobID := orchestrator.Start(ctx, target, opts)
	fmt.Printf("job %s started for %s\n", jobID, target)

	events, unsubscribe := store.Subscribe(jobID)
	defer unsubscribe()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				printFinalState(store, jobID)
				return
			}
			fmt.Printf("[%s] %.0f%% (%d/%d pages)\n", ev.Status, ev.Percentage, ev.PagesAudited, ev.TotalURLs)
			if ev.Status == model.JobCompleted || ev.Status == model.JobFailed {
				printFinalState(store, jobID)
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func printFinalState(store *jobstore.Store, jobID string) {
	st, ok := store.Get(jobID)
	if !ok {
		return
	}
	if st.Status == model.JobFailed {
		fmt.Fprintf(os.Stderr, "job failed: %s\n", st.FailureReason)
		os.Exit(1)
	}
	if st.Result != nil {
		emit(*st.Result)
	}
}

func emit(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal error: %v\n", err)
		return
	}
	fmt.Println(string(out))
}
