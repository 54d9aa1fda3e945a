package roster

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveAlternateCostume(t *testing.T) {
	tables := Default()

	for range 3 {
		id := tables.Resolve("Shun (Kid)")
		require.Equal(t, Identity{ID: "shun_kid", Ja: "シュン（幼女）"}, id)
	}
}

func TestKana(t *testing.T) {
	tables := Default()

	testCases := []struct {
		name     string
		expected string
	}{
		{name: "Hatsune Miku", expected: "初音ミク"},
		{name: "GSC President", expected: "連邦生徒会長"},
		{name: "Mari", expected: "マリー"},
		{name: "Mari (Track)", expected: "マリー"},
		{name: "Hoshino", expected: "ホシノ"},
		{name: "Hoshino (Swimsuit)", expected: "ホシノ"},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, tables.Kana(test.name), test.name)
	}
}

func TestToID(t *testing.T) {
	require.Equal(t, "gsc_president", ToID("GSC President"))
	require.Equal(t, ToID("GSC President"), ToID("GSC President"))
	require.Equal(t, "gsc_president", ToID(ToID("GSC President")))
	require.Equal(t, ToID("gsc president"), ToID("GSC PRESIDENT"))
}

func TestStudentID(t *testing.T) {
	tables := Default()

	require.Equal(t, "hatsune_miku", tables.StudentID("Hatsune Miku"))
	require.Equal(t, "shun_kid", tables.StudentID("Shun (Kid)"))
	require.Equal(t, "shun", tables.StudentID("Shun"))
	require.Equal(t, "hoshino", tables.StudentID("Hoshino (Swimsuit)"))
}

func TestDisplayName(t *testing.T) {
	tables := Default()

	require.Equal(t, "Shun (Kid)", tables.DisplayName("Shun (Kid)"))
	require.Equal(t, "Hoshino", tables.DisplayName("Hoshino (Swimsuit)"))
	require.Equal(t, "Hoshino", tables.DisplayName("Hoshino"))
}

func TestBaseName(t *testing.T) {
	require.Equal(t, "Shun", BaseName("Shun (Kid)"))
	require.Equal(t, "Yuuka", BaseName("Yuuka"))
	require.Equal(t, "A(B)", BaseName("A(B)"))
}
