package wikiru

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var ErrSlotMissing = errors.New("slot heading not found")

// RawSlot is the unparsed content of one listing slot.
type RawSlot struct {
	Heading  string
	Students []string
	Href     string
}

// LocateSlot reads the heading with the given index and the description and
// content regions numbered region.
func LocateSlot(body *goquery.Selection, heading, region int) (RawSlot, error) {
	h2 := body.Find(fmt.Sprintf("h2#content_1_%d", heading))
	if h2.Length() == 0 {
		return RawSlot{}, fmt.Errorf("%w: content_1_%d", ErrSlotMissing, heading)
	}

	students := []string{}
	body.Find(fmt.Sprintf("#rgn_description%d > p > a", region)).Each(func(_ int, a *goquery.Selection) {
		students = append(students, strings.TrimSpace(a.Text()))
	})

	href, _ := body.Find(fmt.Sprintf("#rgn_content%d > blockquote > a", region)).First().Attr("href")

	return RawSlot{
		Heading:  h2.First().Text(),
		Students: students,
		Href:     href,
	}, nil
}
