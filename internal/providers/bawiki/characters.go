// Package bawiki reads the character table of bluearchive.wiki.
package bawiki

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/brogergvhs/bascrape/internal/providers"
	"github.com/brogergvhs/bascrape/internal/roster"

	"github.com/PuerkitoBio/goquery"
)

var ErrNoTable = errors.New("character table not found")

// Row is one line of the character table as displayed.
type Row struct {
	Name   string
	School string
}

// ParseRows reads the name (column 2) and school (column 4) of every row
// after the header row of the first table body.
func ParseRows(doc *goquery.Document) ([]Row, error) {
	tbody := doc.Find("tbody").First()
	if tbody.Length() == 0 {
		return nil, ErrNoTable
	}

	rows := tbody.ChildrenFiltered("tr")
	out := make([]Row, 0, max(rows.Length()-1, 0))
	for i := 1; i < rows.Length(); i++ {
		tr := rows.Eq(i)
		name := tr.Find("td:nth-child(2)")
		school := tr.Find("td:nth-child(4)")
		if name.Length() == 0 || school.Length() == 0 {
			return nil, fmt.Errorf("%w: row %d has no name or school cell", ErrNoTable, i+1)
		}
		out = append(out, Row{
			Name:   strings.TrimSpace(name.First().Text()),
			School: strings.TrimSpace(school.First().Text()),
		})
	}

	return out, nil
}

// ToStudent normalizes a row into a roster entry.
func ToStudent(row Row, tables *roster.Tables) providers.Student {
	return providers.Student{
		ID:     tables.StudentID(row.Name),
		Ja:     tables.Kana(row.Name),
		En:     tables.DisplayName(row.Name),
		School: roster.ToID(row.School),
	}
}

func ParseCharacters(doc *goquery.Document, tables *roster.Tables) ([]providers.Student, error) {
	rows, err := ParseRows(doc)
	if err != nil {
		return nil, err
	}

	students := make([]providers.Student, len(rows))
	for i, row := range rows {
		students[i] = ToStudent(row, tables)
	}
	return students, nil
}

func FetchCharacters(ctx context.Context, fetcher providers.DocumentFetcher, pageURL string, tables *roster.Tables) ([]providers.Student, error) {
	doc, err := fetcher.Document(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return ParseCharacters(doc, tables)
}
