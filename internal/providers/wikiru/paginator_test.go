package wikiru

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/brogergvhs/bascrape/internal/fetch"
	"github.com/brogergvhs/bascrape/internal/providers"
	"github.com/brogergvhs/bascrape/internal/util"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const testBase = "https://bluearchive.wikiru.jp/"

type recordingSleep struct {
	calls []time.Duration
}

func (r *recordingSleep) Sleep(_ context.Context, d time.Duration) error {
	r.calls = append(r.calls, d)
	return nil
}

type recordingProgress struct {
	pages []int
	more  []bool
}

func (r *recordingProgress) Page(pages, _ int, more bool) {
	r.pages = append(r.pages, pages)
	r.more = append(r.more, more)
}

func TestFetchAllTwoPages(t *testing.T) {
	page1 := testBase + "?Twitter/001"
	page2 := testBase + "?Twitter/011"
	fetcher := &pageFetcher{pages: map[string]string{
		page1: listingPage([]testSlot{
			{heading: "†1 授業", students: []string{"アロナ"}},
			{heading: "†2 部活", students: []string{"ホシノ"}},
		}, 1, "/?Twitter/011"),
		page2: listingPage([]testSlot{
			{heading: "†11 休日", students: []string{"ユウカ"}},
		}, 1, ""),
	}}

	sleeper := &recordingSleep{}
	progress := &recordingProgress{}
	p, err := NewPaginator(fetcher, Options{
		BaseURL:  testBase,
		Delay:    time.Second,
		Sleep:    sleeper.Sleep,
		Progress: progress,
	})
	require.NoError(t, err)

	panels, err := p.FetchAll(context.Background(), page1)
	require.NoError(t, err)

	expected := []providers.Panel{
		{ID: "1", Title: "授業", Students: []string{"アロナ"}},
		{ID: "2", Title: "部活", Students: []string{"ホシノ"}},
		{ID: "11", Title: "休日", Students: []string{"ユウカ"}},
	}
	if diff := cmp.Diff(expected, panels); diff != "" {
		t.Fatal(diff)
	}
	require.Equal(t, []string{page1, page2}, fetcher.requested)
	require.Equal(t, []time.Duration{time.Second}, sleeper.calls)
	require.Equal(t, []int{1, 2}, progress.pages)
	require.Equal(t, []bool{true, false}, progress.more)
}

func TestFetchAllEmptyListing(t *testing.T) {
	start := testBase + "?empty"
	fetcher := &pageFetcher{pages: map[string]string{start: listingPage(nil, 1, "")}}

	p, err := NewPaginator(fetcher, Options{BaseURL: testBase})
	require.NoError(t, err)

	panels, err := p.FetchAll(context.Background(), start)
	require.NoError(t, err)
	require.NotNil(t, panels)
	require.Empty(t, panels)
}

func TestFetchAllNoBody(t *testing.T) {
	start := testBase + "?broken"
	fetcher := &pageFetcher{pages: map[string]string{start: `<html><body><h2>x</h2></body></html>`}}

	p, err := NewPaginator(fetcher, Options{BaseURL: testBase})
	require.NoError(t, err)

	_, err = p.FetchAll(context.Background(), start)
	require.True(t, errors.Is(err, ErrNoBody))
}

const missingSlotPage = `<div id="body">
<h2 id="content_1_0">†1 授業</h2><div id="rgn_description1"><p><a>アロナ</a></p></div>
<h2 id="other">コメント</h2>
</div>`

func TestFetchAllMissingSlotFails(t *testing.T) {
	start := testBase + "?missing"
	fetcher := &pageFetcher{pages: map[string]string{start: missingSlotPage}}

	p, err := NewPaginator(fetcher, Options{BaseURL: testBase})
	require.NoError(t, err)

	_, err = p.FetchAll(context.Background(), start)
	require.True(t, errors.Is(err, ErrSlotMissing))
}

func TestFetchAllMissingSlotSkipped(t *testing.T) {
	start := testBase + "?missing"
	fetcher := &pageFetcher{pages: map[string]string{start: missingSlotPage}}

	p, err := NewPaginator(fetcher, Options{BaseURL: testBase, Policy: SkipMissing})
	require.NoError(t, err)

	panels, err := p.FetchAll(context.Background(), start)
	require.NoError(t, err)
	require.Equal(t, []providers.Panel{{ID: "1", Title: "授業", Students: []string{"アロナ"}}}, panels)
}

func TestFetchAllDeletedPage(t *testing.T) {
	deleted := testBase + "?Twitter/041"
	fetcher := &pageFetcher{pages: map[string]string{
		deleted: listingPage([]testSlot{
			{heading: "†41"},
			{heading: "†42 ハッキング", students: []string{"ヒマリ"}},
		}, 0, ""),
	}}

	p, err := NewPaginator(fetcher, Options{BaseURL: testBase, DeletedURL: deleted})
	require.NoError(t, err)

	panels, err := p.FetchAll(context.Background(), deleted)
	require.NoError(t, err)
	require.Len(t, panels, 2)
	require.Equal(t, "41", panels[0].ID)
	require.Equal(t, "折衷案", panels[0].Title)
	require.Equal(t, []string{"ヒマリ"}, panels[1].Students)
}

func TestFetchAllOverHTTP(t *testing.T) {
	var hits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/English/1", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(listingPage([]testSlot{
			{heading: "†1: Class Begins", students: []string{"Arona"}},
			{heading: "†2: Club", students: []string{"Hoshino"}, href: "https://x.com/1"},
		}, 1, "/English/2")))
	})
	mux.HandleFunc("/English/2", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(listingPage([]testSlot{
			{heading: "†3: Holiday", students: []string{"Yuuka"}},
		}, 1, "")))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.NotFound(w, r)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := util.NewHTTPClient(util.HTTPClientOptions{Transport: http.DefaultTransport})
	p, err := NewPaginator(fetch.New(client), Options{BaseURL: srv.URL + "/"})
	require.NoError(t, err)

	panels, err := p.FetchAll(context.Background(), srv.URL+"/English/1")
	require.NoError(t, err)

	expected := []providers.Panel{
		{ID: "1", Title: "Class Begins", Students: []string{"Arona"}},
		{ID: "2", Title: "Club", Students: []string{"Hoshino"}, Href: "https://x.com/1"},
		{ID: "3", Title: "Holiday", Students: []string{"Yuuka"}},
	}
	if diff := cmp.Diff(expected, panels); diff != "" {
		t.Fatal(diff)
	}
	require.Equal(t, int32(2), hits.Load())
}
