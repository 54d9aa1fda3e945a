// Package audit compares the student names used in panels with the names
// the rosters know about.
package audit

import (
	"maps"
	"slices"

	"github.com/brogergvhs/bascrape/internal/providers"

	"github.com/antzucaro/matchr"
)

// MinSimilarity is the Jaro-Winkler score below which no suggestion is made.
const MinSimilarity = 0.7

type Finding struct {
	Name string
	// PanelIDs lists the panels the name appears in, in panel order.
	PanelIDs   []string
	Suggestion string
	Similarity float64
}

// Students returns the distinct student names of panels in first-seen order.
func Students(panels []providers.Panel) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, p := range panels {
		for _, s := range p.Students {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

// UnknownStudents reports every panel student missing from known, with the
// closest known name when one is similar enough.
func UnknownStudents(panels []providers.Panel, known map[string]struct{}) []Finding {
	candidates := slices.Sorted(maps.Keys(known))

	byName := map[string]*Finding{}
	var order []string
	for _, p := range panels {
		for _, s := range p.Students {
			if _, ok := known[s]; ok {
				continue
			}
			f, ok := byName[s]
			if !ok {
				f = &Finding{Name: s}
				f.Suggestion, f.Similarity = closest(s, candidates)
				byName[s] = f
				order = append(order, s)
			}
			if !slices.Contains(f.PanelIDs, p.ID) {
				f.PanelIDs = append(f.PanelIDs, p.ID)
			}
		}
	}

	out := make([]Finding, len(order))
	for i, name := range order {
		out[i] = *byName[name]
	}
	return out
}

func closest(name string, candidates []string) (string, float64) {
	best := ""
	var similarity float64
	for _, c := range candidates {
		sim := matchr.JaroWinkler(name, c, false)
		if sim > similarity {
			best = c
			similarity = sim
		}
	}
	if similarity < MinSimilarity {
		return "", similarity
	}
	return best, similarity
}

// KnownNames merges the kana keys of the given mappings and plain name lists.
func KnownNames[T any](mappings []map[string]T, lists ...[]string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, m := range mappings {
		for k := range m {
			out[k] = struct{}{}
		}
	}
	for _, l := range lists {
		for _, name := range l {
			out[name] = struct{}{}
		}
	}
	return out
}
