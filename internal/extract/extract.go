// Package extract pulls email-shaped tokens out of raw page text.
package extract

import (
	"regexp"
	"sort"
	"strings"
)

// Pragmatic RFC 5322-ish pattern. HTML, JSON and inline scripts are scanned
// as-is; no DOM parsing needed to find addresses.
var emailRe = regexp.MustCompile(`(?i)[a-z0-9!#$%&'*+/=?^_` + "`" + `{|}~-]+(?:\.[a-z0-9!#$%&'*+/=?^_` + "`" + `{|}~-]+)*@[a-z0-9](?:[a-z0-9-]*[a-z0-9])?(?:\.[a-z0-9](?:[a-z0-9-]*[a-z0-9])?)+`)

// Asset filenames like logo@2x.png match the pattern but are not emails.
var imageExts = []string{".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp", ".bmp"}

// Emails returns the deduplicated, sorted addresses found in text. When
// biasDomain is non-empty, addresses on that domain sort before the rest;
// off-domain addresses are kept, just ordered later.
func Emails(text, biasDomain string) []string {
	seen := make(map[string]string) // lower -> first-seen spelling
	for _, m := range emailRe.FindAllString(text, -1) {
		e := strings.Trim(m, ".,;:")
		e = strings.TrimPrefix(e, "mailto:")
		if e == "" || isImageName(e) {
			continue
		}
		k := strings.ToLower(e)
		if _, ok := seen[k]; !ok {
			seen[k] = e
		}
	}

	if biasDomain == "" {
		out := make([]string, 0, len(seen))
		for _, e := range seen {
			out = append(out, e)
		}
		sort.Strings(out)
		return out
	}

	suffix := "@" + strings.ToLower(biasDomain)
	var on, off []string
	for k, e := range seen {
		if strings.HasSuffix(k, suffix) {
			on = append(on, e)
		} else {
			off = append(off, e)
		}
	}
	sort.Strings(on)
	sort.Strings(off)
	return append(on, off...)
}

func isImageName(e string) bool {
	le := strings.ToLower(e)
	for _, ext := range imageExts {
		if strings.HasSuffix(le, ext) {
			return true
		}
	}
	return false
}
