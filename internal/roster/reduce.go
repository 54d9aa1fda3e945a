package roster

import (
	"maps"
	"slices"
)

// Record is anything that can be keyed by id and by kana.
type Record interface {
	Key() string
	Kana() string
}

// BuildMapping folds records by id and then re-keys the result by kana.
// A later record replaces an earlier one with the same key in either
// keyspace.
func BuildMapping[T Record](records []T) (byID, byKana map[string]T) {
	byID = make(map[string]T, len(records))
	for _, r := range records {
		byID[r.Key()] = r
	}

	return byID, RekeyByKana(byID)
}

// RekeyByKana walks byID in id order so that kana collisions resolve the
// same way on every run.
func RekeyByKana[T Record](byID map[string]T) map[string]T {
	out := make(map[string]T, len(byID))
	for _, id := range slices.Sorted(maps.Keys(byID)) {
		r := byID[id]
		out[r.Kana()] = r
	}
	return out
}

const (
	KeyspaceID   = "id"
	KeyspaceKana = "kana"
)

type Collision struct {
	Keyspace string
	Key      string
	Count    int
}

// Collisions lists the keys BuildMapping overwrites. It is reporting only.
func Collisions[T Record](records []T) []Collision {
	var out []Collision

	ids := map[string]int{}
	for _, r := range records {
		ids[r.Key()]++
	}
	out = appendCollisions(out, KeyspaceID, ids)

	byID, _ := BuildMapping(records)
	kanas := map[string]int{}
	for _, r := range byID {
		kanas[r.Kana()]++
	}
	out = appendCollisions(out, KeyspaceKana, kanas)

	return out
}

func appendCollisions(out []Collision, keyspace string, counts map[string]int) []Collision {
	for _, key := range slices.Sorted(maps.Keys(counts)) {
		if counts[key] > 1 {
			out = append(out, Collision{Keyspace: keyspace, Key: key, Count: counts[key]})
		}
	}
	return out
}
