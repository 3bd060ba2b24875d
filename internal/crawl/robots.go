package crawl

import (
	"github.com/temoto/robotstxt"
)

// robotsPolicy answers "may this path be fetched" for one site and one
// user-agent. A nil policy (robots.txt missing or unreadable) allows
// everything.
type robotsPolicy struct {
	group *robotstxt.Group
}

func parseRobots(txt, userAgent string) *robotsPolicy {
	data, err := robotstxt.FromString(txt)
	if err != nil {
		return nil
	}
	return &robotsPolicy{group: data.FindGroup(userAgent)}
}

func (p *robotsPolicy) allows(path string) bool {
	if p == nil || p.group == nil {
		return true
	}
	if path == "" {
		path = "/"
	}
	return p.group.Test(path)
}
