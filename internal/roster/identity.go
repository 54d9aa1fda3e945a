// Package roster normalizes character names into ids and kana and folds
// scraped records into id- and kana-keyed mappings.
package roster

import (
	"strings"

	"github.com/brogergvhs/bascrape/internal/kana"
)

// Identity is the pair of keys a character is looked up by.
type Identity struct {
	ID string
	Ja string
}

// BaseName drops a parenthetical variant such as " (Kid)".
func BaseName(displayName string) string {
	name, _, _ := strings.Cut(displayName, " (")
	return name
}

// ToID lowercases name and replaces spaces with underscores.
func ToID(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", "_"))
}

// Kana resolves the Japanese name: alternate costumes first, then the
// exceptions for the base name, then transliteration.
func (t *Tables) Kana(displayName string) string {
	if ja, ok := t.alternateCostumes[displayName]; ok {
		return ja
	}

	base := BaseName(displayName)
	if ja, ok := t.kanaExceptions[base]; ok {
		return ja
	}

	return kana.FromRomaji(base)
}

func (t *Tables) StudentID(displayName string) string {
	if id, ok := t.idExceptions[displayName]; ok {
		return id
	}
	return ToID(BaseName(displayName))
}

// DisplayName keeps the variant suffix only for alternate costumes.
func (t *Tables) DisplayName(displayName string) string {
	if _, ok := t.alternateCostumes[displayName]; ok {
		return displayName
	}
	return BaseName(displayName)
}

func (t *Tables) Resolve(displayName string) Identity {
	return Identity{
		ID: t.StudentID(displayName),
		Ja: t.Kana(displayName),
	}
}
