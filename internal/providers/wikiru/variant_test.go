package wikiru

import (
	"errors"
	"testing"

	"github.com/brogergvhs/bascrape/internal/providers"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestVariantFor(t *testing.T) {
	deleted := "https://bluearchive.wikiru.jp/?deleted"

	require.Equal(t, VariantDeleted, VariantFor(deleted, deleted))
	require.Equal(t, VariantEn, VariantFor("https://bluearchive.wikiru.jp/?Twitter/English/001", deleted))
	require.Equal(t, VariantJa, VariantFor("https://bluearchive.wikiru.jp/?Twitter/001", deleted))
	require.Equal(t, VariantJa, VariantFor("https://bluearchive.wikiru.jp/?Twitter/001", ""))
}

func TestExtractPanelJa(t *testing.T) {
	doc := mustDoc(listingPage([]testSlot{
		{heading: "†1 授業", students: []string{"アロナ"}, href: "https://bluearchive.jp/comics/1/1"},
		{heading: "†2 部活", students: []string{"ホシノ", "シロコ"}},
	}, 1, ""))
	body := doc.Find("#body")

	first, err := ExtractPanel(body, VariantJa, 0)
	require.NoError(t, err)
	expected := providers.Panel{ID: "1", Title: "授業", Students: []string{"アロナ"}, Href: "https://bluearchive.jp/comics/1/1"}
	if diff := cmp.Diff(expected, first); diff != "" {
		t.Fatal(diff)
	}

	second, err := ExtractPanel(body, VariantJa, 1)
	require.NoError(t, err)
	require.Equal(t, []string{"ホシノ", "シロコ"}, second.Students)
	require.Empty(t, second.Href)
}

func TestExtractPanelEnAnniversary(t *testing.T) {
	doc := mustDoc(listingPage([]testSlot{
		{heading: "†1st Anniversary Special Episode", students: []string{"Shiroko"}, href: "https://example.com/x"},
	}, 1, ""))

	panel, err := ExtractPanel(doc.Find("#body"), VariantEn, 0)
	require.NoError(t, err)
	if diff := cmp.Diff(anniversaryPanel(), panel); diff != "" {
		t.Fatal(diff)
	}
}

func TestExtractPanelDeleted(t *testing.T) {
	// the deleted page keeps its headings but lost region 1
	doc := mustDoc(listingPage([]testSlot{
		{heading: "†41 (removed)"},
		{heading: "†42 ハッキング", students: []string{"ヒマリ"}, href: "https://bluearchive.jp/comics/42/1"},
	}, 0, ""))
	body := doc.Find("#body")

	first, err := ExtractPanel(body, VariantDeleted, 0)
	require.NoError(t, err)
	require.Equal(t, deletedPanel(), first)

	second, err := ExtractPanel(body, VariantDeleted, 1)
	require.NoError(t, err)
	require.Equal(t, providers.Panel{
		ID: "42", Title: "ハッキング", Students: []string{"ヒマリ"}, Href: "https://bluearchive.jp/comics/42/1",
	}, second)
}

func TestExtractPanelMissingHeading(t *testing.T) {
	doc := mustDoc(`<div id="body"><h2>unrelated</h2></div>`)

	_, err := ExtractPanel(doc.Find("#body"), VariantJa, 0)
	require.True(t, errors.Is(err, ErrSlotMissing))
}

func TestLiteralsAreFreshCopies(t *testing.T) {
	p := deletedPanel()
	p.Students[0] = "changed"
	require.Equal(t, "エイミ", deletedPanel().Students[0])
}

func TestParseCharacterNames(t *testing.T) {
	doc := mustDoc(`<table id="sortabletable1"><thead><tr><th>a</th></tr></thead><tbody>
<tr><td>1</td><td>img</td><td>アル</td></tr>
<tr><td>2</td><td>img</td><td> </td></tr>
<tr><td>3</td><td>img</td><td>アル（正月）</td></tr>
</tbody></table>`)

	require.Equal(t, []string{"アル", "アル（正月）"}, ParseCharacterNames(doc))
}
