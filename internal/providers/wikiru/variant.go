package wikiru

import (
	"strings"

	"github.com/brogergvhs/bascrape/internal/providers"

	"github.com/PuerkitoBio/goquery"
)

type Variant int

const (
	VariantJa Variant = iota
	VariantEn
	// VariantDeleted is the Japanese page whose first episode was removed
	// from the wiki. Its regions are numbered from 0 instead of 1.
	VariantDeleted
)

func (v Variant) String() string {
	switch v {
	case VariantEn:
		return "en"
	case VariantDeleted:
		return "ja (deleted slot)"
	default:
		return "ja"
	}
}

// VariantFor picks the page family from its URL.
func VariantFor(pageURL, deletedURL string) Variant {
	switch {
	case deletedURL != "" && pageURL == deletedURL:
		return VariantDeleted
	case strings.Contains(pageURL, "English"):
		return VariantEn
	default:
		return VariantJa
	}
}

const anniversaryHeading = "1st Anniversary Special Episode"

func anniversaryPanel() providers.Panel {
	return providers.Panel{
		ID:    "10001",
		Title: anniversaryHeading,
		Students: []string{
			"ホシノ", "ノノミ", "シロコ", "セリカ", "アヤネ",
			"モモイ", "ミドリ", "アリス", "ユズ",
			"ヒフミ", "ハナコ", "アズサ", "コハル",
			"アロナ",
		},
		Href: "https://twitter.com/en_bluearchive/status/1590179580379566084",
	}
}

// deletedPanel restores episode 41, which is no longer on the wiki.
func deletedPanel() providers.Panel {
	return providers.Panel{
		ID:       "41",
		Title:    "折衷案",
		Students: []string{"エイミ", "ヒマリ"},
		Href:     "https://bluearchive.jp/comics/41/1",
	}
}

// ExtractPanel builds the panel for the zero-based slot index on a page.
func ExtractPanel(body *goquery.Selection, variant Variant, index int) (providers.Panel, error) {
	region := index + 1
	if variant == VariantDeleted {
		if index == 0 {
			return deletedPanel(), nil
		}
		region = index
	}

	raw, err := LocateSlot(body, index, region)
	if err != nil {
		return providers.Panel{}, err
	}

	var title Title
	if variant == VariantEn {
		if stripMark(raw.Heading) == anniversaryHeading {
			return anniversaryPanel(), nil
		}
		title = ParseEnTitle(raw.Heading)
	} else {
		title = ParseJaTitle(raw.Heading)
	}

	return providers.Panel{
		ID:       title.ID,
		Title:    title.Title,
		Students: raw.Students,
		Href:     raw.Href,
	}, nil
}
