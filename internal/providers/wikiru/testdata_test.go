package wikiru

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

type testSlot struct {
	heading  string
	students []string
	href     string
}

// listingPage renders a wikiru-style listing. regionOffset is 1 on normal
// pages and 0 on the page with the deleted slot.
func listingPage(slots []testSlot, regionOffset int, next string) string {
	var b strings.Builder
	b.WriteString(`<html><body><div id="body">`)
	for i, s := range slots {
		fmt.Fprintf(&b, `<h2 id="content_1_%d">%s</h2>`, i, s.heading)

		n := i + regionOffset
		fmt.Fprintf(&b, `<div id="rgn_description%d"><p>`, n)
		for _, name := range s.students {
			fmt.Fprintf(&b, `<a href="/?%s">%s</a>、`, name, name)
		}
		b.WriteString(`</p></div>`)

		fmt.Fprintf(&b, `<div id="rgn_content%d">`, n)
		if s.href != "" {
			fmt.Fprintf(&b, `<blockquote><a href="%s">link</a></blockquote>`, s.href)
		}
		b.WriteString(`</div>`)
	}
	if next != "" {
		fmt.Fprintf(&b, `<ul class="navi"><li class="navi_left"><a href="/?prev">prev</a></li><li class="navi_right"><a href="%s">next</a></li></ul>`, next)
	}
	b.WriteString(`</div></body></html>`)
	return b.String()
}

func mustDoc(html string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		panic(err)
	}
	return doc
}

// pageFetcher serves documents from memory and records the request order.
type pageFetcher struct {
	mu        sync.Mutex
	pages     map[string]string
	requested []string
}

func (f *pageFetcher) Document(_ context.Context, url string) (*goquery.Document, error) {
	f.mu.Lock()
	f.requested = append(f.requested, url)
	f.mu.Unlock()

	html, ok := f.pages[url]
	if !ok {
		return nil, fmt.Errorf("unexpected fetch of %s", url)
	}
	return mustDoc(html), nil
}
