// Package crawl walks a small, keyword-guided slice of one company's site
// looking for contact emails.
package crawl

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Mighty2Skiddie/Startups-email-scrapper/internal/extract"
	"github.com/Mighty2Skiddie/Startups-email-scrapper/internal/webutil"
)

// Paths worth guessing and links worth following.
var keywords = []string{
	"contact", "about", "team", "people", "career", "careers", "join", "recruit", "jobs",
}

type Crawler struct {
	Client   *webutil.Client
	Hosts    *webutil.HostLimiter
	MaxPages int
	MaxDepth int
}

type queueItem struct {
	url   string
	depth int
}

// Site crawls the domain breadth-first within the page and depth budgets,
// honoring robots.txt for the client's user-agent. Individual fetch failures
// are recorded as notes and skipped; only a root robots disallow aborts the
// crawl. Returns the sorted deduplicated email set plus diagnostic notes.
func (c *Crawler) Site(ctx context.Context, domain string) ([]string, []string) {
	return c.site(ctx, domain, "https://"+domain+"/")
}

func (c *Crawler) site(ctx context.Context, domain, base string) ([]string, []string) {
	var notes []string

	robots := c.fetchRobots(ctx, base)
	if !robots.allows("/") {
		notes = append(notes, "robots_disallow:root")
		return nil, notes
	}

	seen := make(map[string]bool)
	emails := make(map[string]string) // lower -> display
	var queue []queueItem

	enqueue := func(links []string, depth int) {
		for _, u := range links {
			if seen[u] {
				continue
			}
			if !webutil.SameDomain(domain, u) {
				continue
			}
			if !wantPath(u) {
				continue
			}
			queue = append(queue, queueItem{url: u, depth: depth})
			seen[u] = true
		}
	}

	// Seed with the root plus one guessed path per keyword. Guessing beats
	// waiting for the root page to link everywhere.
	seeds := []string{base}
	for _, k := range keywords {
		seeds = append(seeds, base+k)
	}
	enqueue(seeds, 0)

	fetched := 0
	for len(queue) > 0 && fetched < c.MaxPages {
		item := queue[0]
		queue = queue[1:]

		if item.depth > c.MaxDepth {
			continue
		}
		if path := urlPath(item.url); !robots.allows(path) {
			notes = append(notes, "robots_disallow:"+item.url)
			continue
		}

		if c.Hosts != nil {
			if err := c.Hosts.WaitURL(ctx, item.url); err != nil {
				notes = append(notes, fmt.Sprintf("fetch_error:%s:%v", item.url, err))
				break
			}
		}

		fetched++
		html, err := c.Client.FetchText(ctx, item.url)
		if errors.Is(err, webutil.ErrNotFound) {
			// A guessed keyword path that doesn't exist; not worth a note.
			continue
		}
		if err != nil {
			notes = append(notes, fmt.Sprintf("fetch_error:%s:%v", item.url, err))
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				break
			}
			continue
		}

		for _, e := range extract.Emails(html, domain) {
			k := strings.ToLower(e)
			if _, ok := emails[k]; !ok {
				emails[k] = e
			}
		}

		links, perr := pageLinks(item.url, html)
		if perr != nil {
			notes = append(notes, fmt.Sprintf("parse_links_error:%s:%v", item.url, perr))
			continue
		}
		enqueue(links, item.depth+1)
		// Everything encountered counts as seen so other pages linking the
		// same URLs don't re-offer them.
		for _, l := range links {
			seen[l] = true
		}
	}

	out := make([]string, 0, len(emails))
	for _, e := range emails {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out, notes
}

// fetchRobots tolerates a missing or unreachable robots.txt as "no
// restrictions"; only a parseable file constrains the crawl.
func (c *Crawler) fetchRobots(ctx context.Context, base string) *robotsPolicy {
	txt, err := c.Client.FetchText(ctx, base+"robots.txt")
	if err != nil {
		return nil
	}
	return parseRobots(txt, c.Client.UserAgent)
}

func pageLinks(pageURL, html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, err
	}

	var links []string
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(strings.ToLower(href), "mailto:") {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		links = append(links, base.ResolveReference(ref).String())
	})
	return links, nil
}

func wantPath(rawURL string) bool {
	path := strings.ToLower(urlPath(rawURL))
	if path == "/" || path == "" {
		return true
	}
	for _, k := range keywords {
		if strings.Contains(path, k) {
			return true
		}
	}
	return false
}

func urlPath(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "/"
	}
	return u.Path
}
