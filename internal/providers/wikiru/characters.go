package wikiru

import (
	"context"
	"strings"

	"github.com/brogergvhs/bascrape/internal/providers"

	"github.com/PuerkitoBio/goquery"
)

// ParseCharacterNames returns the Japanese display names from the third
// column of the character list table.
func ParseCharacterNames(doc *goquery.Document) []string {
	names := []string{}
	doc.Find("#sortabletable1 > tbody > tr > td:nth-child(3)").Each(func(_ int, td *goquery.Selection) {
		if name := strings.TrimSpace(td.Text()); name != "" {
			names = append(names, name)
		}
	})
	return names
}

func FetchCharacterNames(ctx context.Context, fetcher providers.DocumentFetcher, pageURL string) ([]string, error) {
	doc, err := fetcher.Document(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return ParseCharacterNames(doc), nil
}
