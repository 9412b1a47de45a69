package incidents

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"stpaul-crime/core/store"
)

func testIncident() store.Incident {
	return store.Incident{
		CaseNumber:         "23100001",
		DateTime:           "2023-06-15T14:30:00",
		Code:               600,
		Incident:           "Theft",
		PoliceGrid:         87,
		NeighborhoodNumber: 11,
		Block:              "5XX UNIVERSITY AV W",
	}
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	day, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return day
}

func TestMatchesOpenSpec(t *testing.T) {
	require.True(t, QuerySpec{}.Matches(testIncident()))
}

func TestMatchesDateBounds(t *testing.T) {
	inc := testIncident()

	in := QuerySpec{Start: mustDate(t, "2023-06-01"), End: mustDate(t, "2023-06-30")}
	require.True(t, in.Matches(inc))

	before := QuerySpec{Start: mustDate(t, "2023-07-01")}
	require.False(t, before.Matches(inc))

	after := QuerySpec{End: mustDate(t, "2023-06-01")}
	require.False(t, after.Matches(inc))

	// Bounds are inclusive.
	exact, err := time.Parse(DateTimeLayout, inc.DateTime)
	require.NoError(t, err)
	require.True(t, QuerySpec{Start: exact, End: exact}.Matches(inc))
}

func TestMatchesSets(t *testing.T) {
	inc := testIncident()

	require.True(t, QuerySpec{Codes: KeySet("600,700")}.Matches(inc))
	require.False(t, QuerySpec{Codes: KeySet("110")}.Matches(inc))

	require.True(t, QuerySpec{Grids: KeySet("87")}.Matches(inc))
	require.False(t, QuerySpec{Grids: KeySet("88")}.Matches(inc))

	require.True(t, QuerySpec{Neighborhoods: KeySet("11")}.Matches(inc))
	require.False(t, QuerySpec{Neighborhoods: KeySet("12")}.Matches(inc))

	// All dimensions must agree.
	both := QuerySpec{Codes: KeySet("600"), Grids: KeySet("99")}
	require.False(t, both.Matches(inc))
}

func TestMatchesNormalizesWhitespace(t *testing.T) {
	inc := testIncident()
	require.True(t, QuerySpec{Codes: KeySet(" 600 , 700 ")}.Matches(inc))
}

func TestMatchesMalformedTimestamp(t *testing.T) {
	inc := testIncident()
	inc.DateTime = "not-a-timestamp"

	// An open range still matches; any bounded range cannot.
	require.True(t, QuerySpec{}.Matches(inc))
	require.False(t, QuerySpec{Start: mustDate(t, "2000-01-01")}.Matches(inc))
}

func TestKeySet(t *testing.T) {
	require.Nil(t, KeySet(""))
	require.Nil(t, KeySet("  ,, "))
	require.Equal(t, map[string]struct{}{"110": {}, "120": {}}, KeySet("110,120"))
}
