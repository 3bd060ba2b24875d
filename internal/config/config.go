package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Paths struct {
		InputCSV      string `yaml:"input_csv"`
		OutputCSV     string `yaml:"output_csv"`
		OutputJSON    string `yaml:"output_json"`
		CheckpointCSV string `yaml:"checkpoint_csv"`
		DataDir       string `yaml:"data_dir"`
		LogFile       string `yaml:"log_file"`
	} `yaml:"paths"`

	Run struct {
		Concurrency int    `yaml:"concurrency"`
		SaveEvery   int    `yaml:"save_every"`
		LogLevel    string `yaml:"log_level"`
	} `yaml:"run"`

	Crawl struct {
		UserAgent       string  `yaml:"user_agent"`
		MaxPagesPerSite int     `yaml:"max_pages_per_site"`
		MaxDepth        int     `yaml:"max_depth"`
		ConnectTimeout  float64 `yaml:"connect_timeout"` // seconds
		RequestTimeout  float64 `yaml:"request_timeout"` // seconds
	} `yaml:"crawl"`

	Budgets struct {
		HunterPerMinute  int `yaml:"hunter_per_minute"`
		ApolloPerMinute  int `yaml:"apollo_per_minute"`
		SerpAPIPerMinute int `yaml:"serpapi_per_minute"`
	} `yaml:"budgets"`

	Sources struct {
		UseHunter  bool `yaml:"use_hunter"`
		UseApollo  bool `yaml:"use_apollo"`
		UseSerpAPI bool `yaml:"use_serpapi"`
	} `yaml:"sources"`
}

func Default() Config {
	var cfg Config
	cfg.Paths.InputCSV = "companies.csv"
	cfg.Paths.OutputCSV = "emails_enriched.csv"
	cfg.Paths.OutputJSON = "emails_enriched.json"
	cfg.Paths.CheckpointCSV = "checkpoint.csv"
	cfg.Paths.DataDir = "."
	cfg.Paths.LogFile = "enricher.log"
	cfg.Run.Concurrency = 8
	cfg.Run.SaveEvery = 10
	cfg.Run.LogLevel = "info"
	cfg.Crawl.UserAgent = "Mozilla/5.0 (compatible; EmailEnricher/1.0; +https://example.com/bot)"
	cfg.Crawl.MaxPagesPerSite = 15
	cfg.Crawl.MaxDepth = 2
	cfg.Crawl.ConnectTimeout = 10
	cfg.Crawl.RequestTimeout = 15
	cfg.Budgets.HunterPerMinute = 25
	cfg.Budgets.ApolloPerMinute = 50
	cfg.Budgets.SerpAPIPerMinute = 30
	return cfg
}

// Load reads a YAML config over defaults, then applies environment
// overrides. A missing file is fine; env alone can configure a run.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return cfg, err
			}
		} else if !os.IsNotExist(err) {
			return cfg, err
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	envStr(&c.Paths.InputCSV, "INPUT_CSV")
	envStr(&c.Paths.OutputCSV, "OUTPUT_CSV")
	envStr(&c.Paths.OutputJSON, "OUTPUT_JSON")
	envStr(&c.Paths.CheckpointCSV, "CHECKPOINT_CSV")
	envStr(&c.Paths.DataDir, "DATA_DIR")
	envStr(&c.Paths.LogFile, "LOG_FILE")
	envStr(&c.Crawl.UserAgent, "USER_AGENT")
	envInt(&c.Run.Concurrency, "CONCURRENCY")
	envInt(&c.Run.SaveEvery, "SAVE_EVERY")
	envInt(&c.Crawl.MaxPagesPerSite, "MAX_PAGES_PER_SITE")
	envInt(&c.Crawl.MaxDepth, "MAX_DEPTH")
	envSeconds(&c.Crawl.ConnectTimeout, "CONNECT_TIMEOUT")
	envSeconds(&c.Crawl.RequestTimeout, "REQUEST_TIMEOUT")
	envBool(&c.Sources.UseHunter, "USE_HUNTER")
	envBool(&c.Sources.UseApollo, "USE_APOLLO")
	envBool(&c.Sources.UseSerpAPI, "USE_SERPAPI")
}

func envStr(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func envInt(dst *int, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func envSeconds(dst *float64, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			*dst = f
		}
	}
}

// ConnectTimeoutDur and RequestTimeoutDur convert the float-second config
// values to durations for the HTTP transport.
func (c Config) ConnectTimeoutDur() time.Duration {
	return time.Duration(c.Crawl.ConnectTimeout * float64(time.Second))
}

func (c Config) RequestTimeoutDur() time.Duration {
	return time.Duration(c.Crawl.RequestTimeout * float64(time.Second))
}

func envBool(dst *bool, key string) {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes":
		*dst = true
	case "0", "false", "no":
		*dst = false
	}
}
