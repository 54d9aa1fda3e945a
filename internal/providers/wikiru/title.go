package wikiru

import (
	"regexp"
	"strings"
)

const (
	// mark is the glyph wikiru prefixes episode headings with.
	mark = "†"

	previewMarker = "予告"
	jaUntitled    = "無題"
	enUntitled    = "No Title"
)

var (
	nonDigits    = regexp.MustCompile(`[^0-9]`)
	enTitleSplit = regexp.MustCompile(`:\s+`)
)

type Title struct {
	ID    string
	Title string
}

func stripMark(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, mark, ""))
}

// ParseJaTitle parses headings like "†1 授業". Preview pages get id "0".
func ParseJaTitle(heading string) Title {
	if strings.Contains(heading, previewMarker) {
		return Title{ID: "0", Title: previewMarker}
	}

	fields := strings.Fields(stripMark(heading))
	if len(fields) == 0 {
		return Title{ID: "", Title: jaUntitled}
	}

	title := strings.Join(fields[1:], " ")
	if title == "" {
		title = jaUntitled
	}

	return Title{
		ID:    nonDigits.ReplaceAllString(fields[0], ""),
		Title: title,
	}
}

// ParseEnTitle parses headings like "†10: The Gentle Twilight".
func ParseEnTitle(heading string) Title {
	text := stripMark(heading)
	if text == anniversaryHeading {
		p := anniversaryPanel()
		return Title{ID: p.ID, Title: p.Title}
	}

	parts := enTitleSplit.Split(text, 2)
	title := ""
	if len(parts) == 2 {
		title = strings.TrimSpace(parts[1])
	}
	if title == "" {
		title = enUntitled
	}

	return Title{
		ID:    nonDigits.ReplaceAllString(parts[0], ""),
		Title: title,
	}
}
