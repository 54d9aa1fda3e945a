package bawiki

import (
	"errors"
	"strings"
	"testing"

	"github.com/brogergvhs/bascrape/internal/providers"
	"github.com/brogergvhs/bascrape/internal/roster"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const table = `<table class="charactertable"><tbody>
<tr><th>Icon</th><th>Name</th><th>Rarity</th><th>School</th></tr>
<tr><td><img></td><td><a>Hoshino</a></td><td>3</td><td>Abydos</td></tr>
<tr><td><img></td><td><a>Hoshino (Swimsuit)</a></td><td>3</td><td>Abydos</td></tr>
<tr><td><img></td><td><a>Shun (Kid)</a></td><td>3</td><td>Shanhaijing</td></tr>
<tr><td><img></td><td><a>Hatsune Miku</a></td><td>3</td><td>Others</td></tr>
<tr><td><img></td><td><a>Yuuka</a></td><td>3</td><td>Millennium Science School</td></tr>
</tbody></table>`

func doc(t *testing.T, html string) *goquery.Document {
	d, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return d
}

func TestParseCharacters(t *testing.T) {
	students, err := ParseCharacters(doc(t, table), roster.Default())
	require.NoError(t, err)

	expected := []providers.Student{
		{ID: "hoshino", Ja: "ホシノ", En: "Hoshino", School: "abydos"},
		{ID: "hoshino", Ja: "ホシノ", En: "Hoshino", School: "abydos"},
		{ID: "shun_kid", Ja: "シュン（幼女）", En: "Shun (Kid)", School: "shanhaijing"},
		{ID: "hatsune_miku", Ja: "初音ミク", En: "Hatsune Miku", School: "others"},
		{ID: "yuuka", Ja: "ユウカ", En: "Yuuka", School: "millennium_science_school"},
	}
	if diff := cmp.Diff(expected, students); diff != "" {
		t.Fatal(diff)
	}

	byID, byKana := roster.BuildMapping(students)
	require.Len(t, byID, 4)
	require.Len(t, byKana, 4)
	require.Equal(t, byID["shun_kid"], byKana["シュン（幼女）"])
}

func TestParseRowsNoTable(t *testing.T) {
	_, err := ParseRows(doc(t, `<p>nothing</p>`))
	require.True(t, errors.Is(err, ErrNoTable))
}

func TestParseRowsShortRow(t *testing.T) {
	_, err := ParseRows(doc(t, `<table><tbody><tr><th>h</th></tr><tr><td>x</td></tr></tbody></table>`))
	require.True(t, errors.Is(err, ErrNoTable))
}
