package wikiru

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/brogergvhs/bascrape/internal/providers"
	"github.com/brogergvhs/bascrape/internal/util"

	"github.com/PuerkitoBio/goquery"
)

var ErrNoBody = errors.New("#body is not found")

// MissingSlotPolicy decides what happens when a counted heading cannot be
// located on the page.
type MissingSlotPolicy int

const (
	FailOnMissing MissingSlotPolicy = iota
	SkipMissing
)

// Progress receives the running totals after every page.
type Progress interface {
	Page(pages, records int, more bool)
}

type Options struct {
	// BaseURL resolves relative "next" links.
	BaseURL    string
	DeletedURL string
	// Delay is waited before each page after the first.
	Delay    time.Duration
	Policy   MissingSlotPolicy
	Logger   providers.Logger
	Progress Progress
	// Sleep defaults to util.Sleep.
	Sleep func(ctx context.Context, d time.Duration) error
}

type Paginator struct {
	fetcher providers.DocumentFetcher
	base    *url.URL
	opts    Options
	log     providers.Logger
}

func NewPaginator(fetcher providers.DocumentFetcher, opts Options) (*Paginator, error) {
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("base url: %w", err)
	}
	if opts.Sleep == nil {
		opts.Sleep = util.Sleep
	}

	return &Paginator{
		fetcher: fetcher,
		base:    base,
		opts:    opts,
		log:     providers.OrNop(opts.Logger),
	}, nil
}

// Page is the result of reading one listing page.
type Page struct {
	Panels []providers.Panel
	// NextURL is empty on the last page.
	NextURL string
}

// FetchAll follows "next" links from startURL and returns every panel in
// page order. The walk stops at the first page without a next link.
func (p *Paginator) FetchAll(ctx context.Context, startURL string) ([]providers.Panel, error) {
	p.log.Infof("Access to %s", startURL)

	result := []providers.Panel{}
	pages := 0
	next := startURL

	for next != "" {
		if pages > 0 {
			if err := p.opts.Sleep(ctx, p.opts.Delay); err != nil {
				return nil, err
			}
		}

		page, err := p.FetchPage(ctx, next)
		if err != nil {
			return nil, err
		}

		pages++
		result = append(result, page.Panels...)
		next = page.NextURL

		if p.opts.Progress != nil {
			p.opts.Progress.Page(pages, len(result), next != "")
		}
	}

	p.log.Infof("Panels count: %d", len(result))

	return result, nil
}

func (p *Paginator) FetchPage(ctx context.Context, pageURL string) (Page, error) {
	doc, err := p.fetcher.Document(ctx, pageURL)
	if err != nil {
		return Page{}, err
	}

	body := doc.Find("#body").First()
	if body.Length() == 0 {
		return Page{}, fmt.Errorf("%w: %s", ErrNoBody, pageURL)
	}

	variant := VariantFor(pageURL, p.opts.DeletedURL)
	count := body.Find("h2").Length()
	p.log.Debugf("%s: %d slots (%s)", pageURL, count, variant)

	panels := make([]providers.Panel, 0, count)
	for i := range count {
		panel, err := ExtractPanel(body, variant, i)
		if errors.Is(err, ErrSlotMissing) && p.opts.Policy == SkipMissing {
			p.log.Warnf("skipping slot %d on %s: %v", i, pageURL, err)
			continue
		}
		if err != nil {
			return Page{}, fmt.Errorf("%s: %w", pageURL, err)
		}
		panels = append(panels, panel)
	}

	nextURL, err := p.nextURL(body)
	if err != nil {
		return Page{}, err
	}

	return Page{Panels: panels, NextURL: nextURL}, nil
}

func (p *Paginator) nextURL(body *goquery.Selection) (string, error) {
	anchor := body.Find("li.navi_right > a").First()
	if anchor.Length() == 0 {
		return "", nil
	}

	ref, err := url.Parse(anchor.AttrOr("href", ""))
	if err != nil {
		return "", fmt.Errorf("next link: %w", err)
	}

	return p.base.ResolveReference(ref).String(), nil
}
