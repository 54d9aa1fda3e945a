package roster

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/brogergvhs/bascrape/internal/providers"

	"gopkg.in/yaml.v3"
)

//go:embed tables.yaml
var tablesYAML []byte

type tablesFile struct {
	AlternateCostumes map[string]string `yaml:"alternate_costumes"`
	KanaExceptions    map[string]string `yaml:"kana_exceptions"`
	IDExceptions      map[string]string `yaml:"id_exceptions"`
	NPC               struct {
		ExcludedClubs []string                 `yaml:"excluded_clubs"`
		Reject        map[string]string        `yaml:"reject"`
		Literals      map[string]providers.NPC `yaml:"literals"`
	} `yaml:"npc"`
}

// Tables holds the override data used to normalize names. A Tables value is
// never modified after ParseTables returns.
type Tables struct {
	alternateCostumes map[string]string
	kanaExceptions    map[string]string
	idExceptions      map[string]string
	excludedClubs     map[string]struct{}
	rejected          map[string]string
	literals          map[string]providers.NPC
}

func ParseTables(data []byte) (*Tables, error) {
	var f tablesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse tables: %w", err)
	}

	t := &Tables{
		alternateCostumes: nonNil(f.AlternateCostumes),
		kanaExceptions:    nonNil(f.KanaExceptions),
		idExceptions:      nonNil(f.IDExceptions),
		excludedClubs:     make(map[string]struct{}, len(f.NPC.ExcludedClubs)),
		rejected:          nonNil(f.NPC.Reject),
		literals:          make(map[string]providers.NPC, len(f.NPC.Literals)),
	}
	for _, club := range f.NPC.ExcludedClubs {
		t.excludedClubs[club] = struct{}{}
	}
	for name, npc := range f.NPC.Literals {
		if npc.ID == "" {
			return nil, fmt.Errorf("parse tables: literal %q has no id", name)
		}
		t.literals[name] = npc
	}

	return t, nil
}

func nonNil(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}

var loadDefault = sync.OnceValue(func() *Tables {
	t, err := ParseTables(tablesYAML)
	if err != nil {
		panic(err)
	}
	return t
})

// Default returns the tables compiled into the binary.
func Default() *Tables {
	return loadDefault()
}

// Literal returns the fixed record for a card whose displayed name does not
// identify the character.
func (t *Tables) Literal(displayName string) (providers.NPC, bool) {
	npc, ok := t.literals[displayName]
	if !ok {
		return providers.NPC{}, false
	}
	if npc.Club != nil {
		club := *npc.Club
		npc.Club = &club
	}
	return npc, true
}

// Rejected reports whether an NPC record must be left out of the output.
func (t *Tables) Rejected(npc providers.NPC) bool {
	if npc.Club != nil {
		if _, ok := t.excludedClubs[*npc.Club]; ok {
			return true
		}
	}
	_, ok := t.rejected[npc.En]
	return ok
}
