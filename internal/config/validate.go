package config

import "fmt"

type Validation struct {
	Errors   []string
	Warnings []string
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate clamps nonsense values and reports anything a run
// could not start with.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	if out.Paths.InputCSV == "" {
		res.addErr("paths.input_csv is required")
	}
	if out.Paths.OutputCSV == "" {
		res.addErr("paths.output_csv is required")
	}

	if out.Run.Concurrency <= 0 {
		res.addWarn("run.concurrency %d invalid; using 1", out.Run.Concurrency)
		out.Run.Concurrency = 1
	}
	if out.Run.SaveEvery <= 0 {
		out.Run.SaveEvery = 10
	}
	if out.Crawl.MaxPagesPerSite <= 0 {
		res.addWarn("crawl.max_pages_per_site %d invalid; using 1", out.Crawl.MaxPagesPerSite)
		out.Crawl.MaxPagesPerSite = 1
	}
	if out.Crawl.MaxDepth < 0 {
		out.Crawl.MaxDepth = 0
	}
	if out.Budgets.HunterPerMinute <= 0 {
		out.Budgets.HunterPerMinute = 1
	}
	if out.Budgets.ApolloPerMinute <= 0 {
		out.Budgets.ApolloPerMinute = 1
	}
	if out.Budgets.SerpAPIPerMinute <= 0 {
		out.Budgets.SerpAPIPerMinute = 1
	}

	return out, res
}
