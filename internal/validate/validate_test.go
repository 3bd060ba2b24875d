package validate

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/Mighty2Skiddie/Startups-email-scrapper/internal/domain"
)

func TestFilterEmails(t *testing.T) {
	in := []string{
		"jane@acme.io",
		"not-an-email",
		"@acme.io",
		"trailing@",
		"throw@mailinator.com",
		"throw@YOPMAIL.com",
		"  bob@acme.io  ",
	}
	got := FilterEmails(in)
	want := []string{"jane@acme.io", "bob@acme.io"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FilterEmails = %v, want %v", got, want)
	}
}

func TestDedupeKeepOrder(t *testing.T) {
	got := DedupeKeepOrder([]string{"Jane@acme.io", "bob@acme.io", "jane@ACME.io"})
	want := []string{"Jane@acme.io", "bob@acme.io"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("DedupeKeepOrder = %v, want %v", got, want)
	}
}

func verificationFor(email, result string) map[string]json.RawMessage {
	raw, _ := json.Marshal(map[string]string{"result": result})
	return map[string]json.RawMessage{email: raw}
}

func TestAssessConfidence(t *testing.T) {
	pageSet := func(emails ...string) *domain.EmailSet {
		s := domain.NewEmailSet()
		for _, e := range emails {
			s.Add(e, domain.SourcePage)
		}
		return s
	}

	t.Run("verified valid is high", func(t *testing.T) {
		emails := []string{"info@acme.io"}
		conf, method := AssessConfidence(emails, verificationFor("info@acme.io", "valid"), pageSet(emails...))
		if conf != domain.ConfidenceHigh || method != domain.SourcePage {
			t.Fatalf("got (%v, %v), want (high, page)", conf, method)
		}
	})

	t.Run("verified risky does not lift", func(t *testing.T) {
		emails := []string{"info@acme.io"}
		conf, _ := AssessConfidence(emails, verificationFor("info@acme.io", "risky"), pageSet(emails...))
		if conf != domain.ConfidenceLow {
			t.Fatalf("got %v, want low", conf)
		}
	})

	t.Run("apollo provenance is high", func(t *testing.T) {
		s := domain.NewEmailSet()
		s.Add("founder@acme.io", domain.SourceApollo)
		conf, method := AssessConfidence([]string{"founder@acme.io"}, nil, s)
		if conf != domain.ConfidenceHigh || method != domain.SourceApollo {
			t.Fatalf("got (%v, %v), want (high, apollo)", conf, method)
		}
	})

	t.Run("dotted page address is medium", func(t *testing.T) {
		emails := []string{"jane.doe@acme.io"}
		conf, method := AssessConfidence(emails, nil, pageSet(emails...))
		if conf != domain.ConfidenceMedium || method != domain.SourcePage {
			t.Fatalf("got (%v, %v), want (medium, page)", conf, method)
		}
	})

	t.Run("non-generic page prefix is medium", func(t *testing.T) {
		emails := []string{"jdoe@acme.io"}
		conf, _ := AssessConfidence(emails, nil, pageSet(emails...))
		if conf != domain.ConfidenceMedium {
			t.Fatalf("got %v, want medium", conf)
		}
	})

	t.Run("generic page prefix alone is low", func(t *testing.T) {
		emails := []string{"info@acme.io"}
		conf, method := AssessConfidence(emails, nil, pageSet(emails...))
		if conf != domain.ConfidenceLow || method != domain.SourcePage {
			t.Fatalf("got (%v, %v), want (low, page)", conf, method)
		}
	})

	t.Run("hunter-only address is low with hunter method", func(t *testing.T) {
		s := domain.NewEmailSet()
		s.Add("contact@acme.io", domain.SourceHunter)
		conf, method := AssessConfidence([]string{"contact@acme.io"}, nil, s)
		if conf != domain.ConfidenceLow || method != domain.SourceHunter {
			t.Fatalf("got (%v, %v), want (low, hunter)", conf, method)
		}
	})

	t.Run("no emails at all is low", func(t *testing.T) {
		conf, method := AssessConfidence(nil, nil, domain.NewEmailSet())
		if conf != domain.ConfidenceLow || method != domain.SourceSerp {
			t.Fatalf("got (%v, %v), want (low, serp)", conf, method)
		}
	})
}

func TestDottedName(t *testing.T) {
	cases := []struct {
		local string
		want  bool
	}{
		{"jane.doe", true},
		{"j.d.smith", true},
		{"jane", false},
		{".doe", false},
		{"jane.", false},
		{"jane..doe", false},
	}
	for _, c := range cases {
		if got := dottedName(c.local); got != c.want {
			t.Errorf("dottedName(%q) = %v, want %v", c.local, got, c.want)
		}
	}
}
