package crawl

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Mighty2Skiddie/Startups-email-scrapper/internal/webutil"
)

// testSite serves a handful of pages and counts page fetches (robots.txt
// excluded).
type testSite struct {
	mu      sync.Mutex
	fetches int
	paths   []string
	pages   map[string]string
	robots  string
}

func (s *testSite) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/robots.txt" {
		if s.robots == "" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, s.robots)
		return
	}
	s.mu.Lock()
	s.fetches++
	s.paths = append(s.paths, r.URL.Path)
	s.mu.Unlock()

	body, ok := s.pages[r.URL.Path]
	if !ok {
		http.NotFound(w, r)
		return
	}
	fmt.Fprint(w, body)
}

func (s *testSite) pageFetches() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetches
}

func (s *testSite) fetchedPath(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.paths {
		if p == path {
			return true
		}
	}
	return false
}

func newTestCrawler(maxPages, maxDepth int) *Crawler {
	return &Crawler{
		Client:   webutil.NewClient("testbot/1.0", 2*time.Second, 5*time.Second),
		MaxPages: maxPages,
		MaxDepth: maxDepth,
	}
}

func siteDomain(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatalf("parse server URL: %v", err)
	}
	return u.Hostname()
}

func TestSiteCollectsEmails(t *testing.T) {
	site := &testSite{pages: map[string]string{
		"/":        `<a href="/contact">contact us</a>`,
		"/contact": `<p>jane.doe@127.0.0.1 or hello@acme.io</p>`,
	}}
	srv := httptest.NewServer(site)
	defer srv.Close()

	c := newTestCrawler(10, 2)
	emails, notes := c.site(context.Background(), siteDomain(t, srv), srv.URL+"/")

	want := []string{"hello@acme.io", "jane.doe@127.0.0.1"}
	if !reflect.DeepEqual(emails, want) {
		t.Fatalf("emails = %v, want %v (notes %v)", emails, want, notes)
	}
}

func TestSiteRootRobotsDisallowAborts(t *testing.T) {
	site := &testSite{
		robots: "User-agent: *\nDisallow: /\n",
		pages:  map[string]string{"/": `<p>jane@acme.io</p>`},
	}
	srv := httptest.NewServer(site)
	defer srv.Close()

	c := newTestCrawler(10, 2)
	emails, notes := c.site(context.Background(), siteDomain(t, srv), srv.URL+"/")

	if len(emails) != 0 {
		t.Fatalf("disallowed site must yield no emails, got %v", emails)
	}
	if len(notes) != 1 || notes[0] != "robots_disallow:root" {
		t.Fatalf("notes = %v, want [robots_disallow:root]", notes)
	}
	if n := site.pageFetches(); n != 0 {
		t.Fatalf("%d pages fetched despite root disallow", n)
	}
}

func TestSitePartialRobotsDisallowSkipsPath(t *testing.T) {
	site := &testSite{
		robots: "User-agent: *\nDisallow: /team\n",
		pages: map[string]string{
			"/":        `<a href="/team">team</a><a href="/contact">contact</a>`,
			"/team":    `<p>secret@acme.io</p>`,
			"/contact": `<p>open@acme.io</p>`,
		},
	}
	srv := httptest.NewServer(site)
	defer srv.Close()

	c := newTestCrawler(20, 2)
	emails, notes := c.site(context.Background(), siteDomain(t, srv), srv.URL+"/")

	for _, e := range emails {
		if e == "secret@acme.io" {
			t.Fatalf("crawled a disallowed path: %v", emails)
		}
	}
	found := false
	for _, n := range notes {
		if strings.HasPrefix(n, "robots_disallow:") && strings.Contains(n, "/team") {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing robots_disallow note for /team, notes = %v", notes)
	}
	containsEmail := false
	for _, e := range emails {
		if e == "open@acme.io" {
			containsEmail = true
		}
	}
	if !containsEmail {
		t.Fatalf("allowed page not crawled, emails = %v", emails)
	}
}

func TestSiteRespectsPageBudget(t *testing.T) {
	pages := map[string]string{"/": `<a href="/about1">1</a><a href="/about2">2</a><a href="/about3">3</a>`}
	for i := 1; i <= 3; i++ {
		pages[fmt.Sprintf("/about%d", i)] = "<p>nothing here</p>"
	}
	site := &testSite{pages: pages}
	srv := httptest.NewServer(site)
	defer srv.Close()

	c := newTestCrawler(2, 3)
	c.site(context.Background(), siteDomain(t, srv), srv.URL+"/")

	if n := site.pageFetches(); n > 2 {
		t.Fatalf("fetched %d pages, budget is 2", n)
	}
}

func TestSiteSkipsOffDomainAndUninterestingLinks(t *testing.T) {
	site := &testSite{pages: map[string]string{
		"/": `<a href="https://elsewhere.example/contact">off</a>
			<a href="/pricing">pricing</a>
			<a href="/contact">on</a>
			<a href="#top">anchor</a>
			<a href="mailto:x@y.z">mail</a>`,
		"/contact": `<p>jane@acme.io</p>`,
	}}
	srv := httptest.NewServer(site)
	defer srv.Close()

	c := newTestCrawler(20, 2)
	emails, _ := c.site(context.Background(), siteDomain(t, srv), srv.URL+"/")

	if !reflect.DeepEqual(emails, []string{"jane@acme.io"}) {
		t.Fatalf("emails = %v", emails)
	}
	// /pricing never matches a keyword so it must not be fetched.
	if site.fetchedPath("/pricing") {
		t.Fatalf("fetched a non-keyword path: %v", site.paths)
	}
}

func TestSiteMissingGuessedPathsLeaveNoNotes(t *testing.T) {
	site := &testSite{pages: map[string]string{"/": `<p>jane@acme.io</p>`}}
	srv := httptest.NewServer(site)
	defer srv.Close()

	c := newTestCrawler(20, 2)
	emails, notes := c.site(context.Background(), siteDomain(t, srv), srv.URL+"/")

	if !reflect.DeepEqual(emails, []string{"jane@acme.io"}) {
		t.Fatalf("emails = %v", emails)
	}
	// Every keyword guess 404s; an expected miss is not an error.
	for _, n := range notes {
		if strings.HasPrefix(n, "fetch_error:") {
			t.Fatalf("404 on a guessed path produced a note: %v", notes)
		}
	}
}

func TestSiteFetchFailureIsNoted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/robots.txt":
			http.NotFound(w, r)
		case "/":
			fmt.Fprint(w, `<a href="/contact">contact</a>`)
		case "/contact":
			http.Error(w, "boom", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := newTestCrawler(20, 2)
	_, notes := c.site(context.Background(), siteDomain(t, srv), srv.URL+"/")

	found := false
	for _, n := range notes {
		if strings.HasPrefix(n, "fetch_error:") && strings.Contains(n, "/contact") {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing fetch_error note for the failing page, notes = %v", notes)
	}
}

func TestWantPath(t *testing.T) {
	cases := []struct {
		url  string
		want bool
	}{
		{"https://acme.io/", true},
		{"https://acme.io/contact", true},
		{"https://acme.io/about-us", true},
		{"https://acme.io/Careers/open", true},
		{"https://acme.io/pricing", false},
		{"https://acme.io/blog/post-1", false},
	}
	for _, c := range cases {
		if got := wantPath(c.url); got != c.want {
			t.Errorf("wantPath(%q) = %v, want %v", c.url, got, c.want)
		}
	}
}
