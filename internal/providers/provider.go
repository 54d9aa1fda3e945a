package providers

import (
	"context"

	"github.com/PuerkitoBio/goquery"
)

// Panel is one story episode scraped from a listing page.
type Panel struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Students []string `json:"students"`
	Href     string   `json:"href,omitempty"`
}

// Student is an entry of the playable roster.
type Student struct {
	ID     string `json:"id" yaml:"id"`
	Ja     string `json:"ja" yaml:"ja"`
	En     string `json:"en" yaml:"en"`
	School string `json:"school" yaml:"school"`
}

func (s Student) Key() string  { return s.ID }
func (s Student) Kana() string { return s.Ja }

// NPC is a non-playable character. Club is nil when the card lists none.
type NPC struct {
	Student `yaml:",inline"`
	Club    *string `json:"club" yaml:"club"`
}

// DocumentFetcher loads and parses a page.
type DocumentFetcher interface {
	Document(ctx context.Context, url string) (*goquery.Document, error)
}

// Logger is the subset of ui.Logger the providers write to.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}

// OrNop returns l, or a logger that drops everything when l is nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return nopLogger{}
	}
	return l
}
