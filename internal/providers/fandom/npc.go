// Package fandom reads the NPC category page of bluearchive.fandom.com.
package fandom

import (
	"context"
	"slices"
	"strings"

	"github.com/brogergvhs/bascrape/internal/providers"
	"github.com/brogergvhs/bascrape/internal/roster"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// cardStyle is the inline style every character card ends with.
const cardStyle = "border:2px solid 02D3FB !important; border-radius:5px; border: 2px solid #02D3FB; " +
	"display:inline-block; position:relative; height:100px; width:115px; overflow:hidden; " +
	"vertical-align:middle; margin-top:2px; margin-bottom:2px; transform: skewX(-10deg); " +
	"margin-left: 8px; margin-right: -7px;"

// NPCSelector matches the school headings and the character cards of the
// category page, in document order.
const NPCSelector = "#mw-content-text > div.mw-parser-output > h2, div[style$='" + cardStyle + "']"

type School struct {
	ID string
	En string
}

// fold is the accumulator threaded through the node walk.
type fold struct {
	school School
	npcs   []providers.NPC
}

func (f fold) step(node *goquery.Selection, tables *roster.Tables) fold {
	if isHeading(node) {
		f.school = schoolFromHeading(node)
		return f
	}

	if npc, ok := npcFromCard(node, f.school, tables); ok {
		f.npcs = append(f.npcs, npc)
	}
	return f
}

func isHeading(node *goquery.Selection) bool {
	n := node.Get(0)
	return n.Type == html.ElementNode && n.DataAtom == atom.H2
}

func schoolFromHeading(node *goquery.Selection) School {
	en := strings.TrimSpace(node.Contents().First().Text())
	return School{ID: roster.ToID(en), En: en}
}

// cardTexts returns the non-blank texts of the card's child nodes, last
// child first. Cards list the name below the club.
func cardTexts(node *goquery.Selection) []string {
	var texts []string
	node.Contents().Each(func(_ int, c *goquery.Selection) {
		if t := strings.TrimSpace(c.Text()); t != "" {
			texts = append(texts, t)
		}
	})
	slices.Reverse(texts)
	return texts
}

func npcFromCard(node *goquery.Selection, school School, tables *roster.Tables) (providers.NPC, bool) {
	texts := cardTexts(node)
	if len(texts) == 0 {
		return providers.NPC{}, false
	}

	en := texts[0]
	if npc, ok := tables.Literal(en); ok {
		return npc, true
	}

	var club *string
	if len(texts) > 1 {
		club = &texts[1]
	}

	return providers.NPC{
		Student: providers.Student{
			ID:     roster.ToID(en),
			Ja:     tables.Kana(en),
			En:     en,
			School: school.ID,
		},
		Club: club,
	}, true
}

// ParseNPCs walks headings and cards and drops rejected records.
func ParseNPCs(doc *goquery.Document, tables *roster.Tables) []providers.NPC {
	nodes := doc.Find(NPCSelector)

	state := fold{}
	for i := range nodes.Length() {
		state = state.step(nodes.Eq(i), tables)
	}

	out := make([]providers.NPC, 0, len(state.npcs))
	for _, npc := range state.npcs {
		if !tables.Rejected(npc) {
			out = append(out, npc)
		}
	}
	return out
}

func FetchNPCs(ctx context.Context, fetcher providers.DocumentFetcher, pageURL string, tables *roster.Tables) ([]providers.NPC, error) {
	doc, err := fetcher.Document(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return ParseNPCs(doc, tables), nil
}
