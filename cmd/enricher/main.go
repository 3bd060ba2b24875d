package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fatih/color"

	"github.com/Mighty2Skiddie/Startups-email-scrapper/internal/config"
	"github.com/Mighty2Skiddie/Startups-email-scrapper/internal/crawl"
	"github.com/Mighty2Skiddie/Startups-email-scrapper/internal/discover"
	"github.com/Mighty2Skiddie/Startups-email-scrapper/internal/domain"
	"github.com/Mighty2Skiddie/Startups-email-scrapper/internal/enrich/apollo"
	"github.com/Mighty2Skiddie/Startups-email-scrapper/internal/enrich/hunter"
	"github.com/Mighty2Skiddie/Startups-email-scrapper/internal/enrich/serpapi"
	"github.com/Mighty2Skiddie/Startups-email-scrapper/internal/logging"
	"github.com/Mighty2Skiddie/Startups-email-scrapper/internal/pipeline"
	"github.com/Mighty2Skiddie/Startups-email-scrapper/internal/secrets"
	"github.com/Mighty2Skiddie/Startups-email-scrapper/internal/store"
	"github.com/Mighty2Skiddie/Startups-email-scrapper/internal/tableio"
	"github.com/Mighty2Skiddie/Startups-email-scrapper/internal/webutil"
)

func main() {
	var (
		cfgPath     = flag.String("config", "config.yml", "YAML config path (optional)")
		input       = flag.String("input", "", "input CSV path")
		output      = flag.String("output", "", "output CSV path")
		outputJSON  = flag.String("json", "", "output JSON path")
		concurrency = flag.Int("concurrency", 0, "concurrent companies (0 = config default)")
		userAgent   = flag.String("user-agent", "", "crawler User-Agent")
		useHunter   = flag.Bool("use-hunter", false, "enable Hunter domain search + verification")
		useApollo   = flag.Bool("use-apollo", false, "enable Apollo people search")
		useSerpAPI  = flag.Bool("use-serpapi", false, "enable SerpAPI domain discovery fallback")
		setKey      = flag.String("set-key", "", "store a provider API key in the OS keyring (provider=key) and exit")
		deleteKey   = flag.String("delete-key", "", "remove a provider API key from the OS keyring and exit")
	)
	flag.Parse()

	if *setKey != "" || *deleteKey != "" {
		if err := manageKeys(*setKey, *deleteKey); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed (%s): %v\n", *cfgPath, err)
		os.Exit(1)
	}

	// Flags override file and environment.
	if *input != "" {
		cfg.Paths.InputCSV = *input
	}
	if *output != "" {
		cfg.Paths.OutputCSV = *output
	}
	if *outputJSON != "" {
		cfg.Paths.OutputJSON = *outputJSON
	}
	if *concurrency > 0 {
		cfg.Run.Concurrency = *concurrency
	}
	if *userAgent != "" {
		cfg.Crawl.UserAgent = *userAgent
	}
	if *useHunter {
		cfg.Sources.UseHunter = true
	}
	if *useApollo {
		cfg.Sources.UseApollo = true
	}
	if *useSerpAPI {
		cfg.Sources.UseSerpAPI = true
	}

	cfg, validation := config.NormalizeAndValidate(cfg)
	log := logging.New(cfg.Run.LogLevel, cfg.Paths.LogFile)
	defer func() { _ = log.Sync() }()

	for _, w := range validation.Warnings {
		log.Warn("config", "warning", w)
	}
	if !validation.OK() {
		for _, e := range validation.Errors {
			log.Error("config", "error", e)
		}
		os.Exit(1)
	}

	if err := run(cfg, log); err != nil {
		log.Error("run failed", "err", err)
		os.Exit(1)
	}
}

// manageKeys handles the keyring maintenance flags. Providers are the
// source names used at lookup time: hunter, apollo, serpapi.
func manageKeys(setSpec, deleteProvider string) error {
	if setSpec != "" {
		provider, key, ok := strings.Cut(setSpec, "=")
		if !ok {
			return fmt.Errorf("-set-key wants provider=key, got %q", setSpec)
		}
		if err := secrets.SetAPIKey(provider, key); err != nil {
			return fmt.Errorf("set key for %s: %w", provider, err)
		}
		fmt.Printf("stored key for %s\n", provider)
	}
	if deleteProvider != "" {
		if err := secrets.DeleteAPIKey(deleteProvider); err != nil {
			return fmt.Errorf("delete key for %s: %w", deleteProvider, err)
		}
		fmt.Printf("deleted key for %s\n", deleteProvider)
	}
	return nil
}

func run(cfg config.Config, log *logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	lock, err := tableio.AcquireRunLock(cfg.Paths.CheckpointCSV)
	if err != nil {
		return err
	}
	defer func() { _ = lock.Unlock() }()

	companies, warnings, err := tableio.ReadCompanies(cfg.Paths.InputCSV)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		log.Warn("input", "warning", w)
	}

	done := tableio.LoadCheckpoint(cfg.Paths.CheckpointCSV)
	pending := tableio.MergeCheckpoint(companies, done)
	log.Info("start",
		"input", cfg.Paths.InputCSV,
		"companies", len(companies),
		"already_done", len(companies)-len(pending),
		"concurrency", cfg.Run.Concurrency,
	)

	if err := os.MkdirAll(cfg.Paths.DataDir, 0o755); err != nil {
		return err
	}
	db, err := store.Open(filepath.Join(cfg.Paths.DataDir, "domains.db"))
	if err != nil {
		// The cache is an optimization; run without it rather than fail.
		log.Warn("domain cache unavailable", "err", err)
		db = nil
	}
	if db != nil {
		defer db.Close()
	}

	client := webutil.NewClient(cfg.Crawl.UserAgent, cfg.ConnectTimeoutDur(), cfg.RequestTimeoutDur())

	var serp *serpapi.Client
	if cfg.Sources.UseSerpAPI {
		serp = serpapi.New(serpapi.Config{
			APIKey:  secrets.APIKey("SERPAPI_KEY", "serpapi"),
			HTTP:    client,
			Limiter: webutil.NewMinuteLimiter(cfg.Budgets.SerpAPIPerMinute),
		})
	}
	var hunterClient *hunter.Client
	if cfg.Sources.UseHunter {
		hunterClient = hunter.New(hunter.Config{
			APIKey:  secrets.APIKey("HUNTER_API_KEY", "hunter"),
			HTTP:    client,
			Limiter: webutil.NewMinuteLimiter(cfg.Budgets.HunterPerMinute),
		})
	}
	var apolloClient *apollo.Client
	if cfg.Sources.UseApollo {
		apolloClient = apollo.New(apollo.Config{
			APIKey:  secrets.APIKey("APOLLO_API_KEY", "apollo"),
			HTTP:    client,
			Limiter: webutil.NewMinuteLimiter(cfg.Budgets.ApolloPerMinute),
		})
	}

	deps := &pipeline.Deps{
		Log:      log,
		Resolver: &discover.Resolver{Client: client, Cache: db, Search: serp},
		Crawler: &crawl.Crawler{
			Client:   client,
			Hosts:    webutil.NewHostLimiter(1.0, 2),
			MaxPages: cfg.Crawl.MaxPagesPerSite,
			MaxDepth: cfg.Crawl.MaxDepth,
		},
		Hunter: hunterClient,
		Apollo: apolloClient,
	}

	results := pipeline.Run(ctx, pending, deps, pipeline.RunOptions{
		Concurrency:    cfg.Run.Concurrency,
		SaveEvery:      cfg.Run.SaveEvery,
		CheckpointPath: cfg.Paths.CheckpointCSV,
	})

	if err := tableio.WriteResults(results, cfg.Paths.OutputCSV, cfg.Paths.OutputJSON); err != nil {
		return err
	}

	printSummary(results)
	log.Info("done", "companies", len(results), "output", cfg.Paths.OutputCSV)
	return nil
}

func printSummary(results []domain.Result) {
	emailsTotal := 0
	verified := 0
	apolloHits := 0
	robotsSkips := 0
	for _, r := range results {
		emailsTotal += len(r.FoundEmails)
		for _, raw := range r.Verification {
			var v struct {
				Result string `json:"result"`
			}
			if json.Unmarshal(raw, &v) == nil && v.Result == "valid" {
				verified++
			}
		}
		if len(r.People) > 0 {
			apolloHits++
		}
		for _, n := range r.Notes {
			if strings.HasPrefix(n, "robots_disallow") {
				robotsSkips++
				break
			}
		}
	}

	color.Cyan("companies processed: %d", len(results))
	color.Green("emails found:        %d", emailsTotal)
	color.Green("hunter verified:     %d", verified)
	color.Yellow("apollo matches:      %d", apolloHits)
	color.Yellow("robots skips:        %d", robotsSkips)
}
