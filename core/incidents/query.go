package incidents

import (
	"strconv"
	"strings"
	"time"

	"stpaul-crime/core/store"
)

// DateTimeLayout is the stored combined timestamp form. It is lexically
// sortable, so string order equals chronological order.
const DateTimeLayout = "2006-01-02T15:04:05"

// QuerySpec is the parsed, validated representation of a listing request.
// Zero Start/End mean an open bound; empty sets mean no constraint on that
// dimension.
type QuerySpec struct {
	Start         time.Time
	End           time.Time
	Codes         map[string]struct{}
	Grids         map[string]struct{}
	Neighborhoods map[string]struct{}
	Limit         int
}

// KeySet builds a membership set from comma-separated values, dropping
// blanks. Returns nil when nothing remains so the dimension stays
// unconstrained.
func KeySet(csv string) map[string]struct{} {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	set := map[string]struct{}{}
	for _, part := range strings.Split(csv, ",") {
		if v := strings.TrimSpace(part); v != "" {
			set[v] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}

// Matches reports whether the incident satisfies every constraint of the
// spec: instant within [Start, End] and each non-empty set containing the
// corresponding field. Set membership compares string-normalized values so
// numeric fields and numerals-as-text cannot produce false negatives.
func (q QuerySpec) Matches(inc store.Incident) bool {
	if !q.instantInRange(inc.DateTime) {
		return false
	}
	if !inSet(q.Codes, strconv.FormatInt(inc.Code, 10)) {
		return false
	}
	if !inSet(q.Grids, strconv.FormatInt(inc.PoliceGrid, 10)) {
		return false
	}
	if !inSet(q.Neighborhoods, strconv.FormatInt(inc.NeighborhoodNumber, 10)) {
		return false
	}
	return true
}

func (q QuerySpec) instantInRange(raw string) bool {
	if q.Start.IsZero() && q.End.IsZero() {
		return true
	}
	at, err := time.Parse(DateTimeLayout, strings.TrimSpace(raw))
	if err != nil {
		// A row with a malformed timestamp cannot be placed inside a
		// bounded range.
		return false
	}
	if !q.Start.IsZero() && at.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && at.After(q.End) {
		return false
	}
	return true
}

func inSet(set map[string]struct{}, value string) bool {
	if len(set) == 0 {
		return true
	}
	_, ok := set[strings.TrimSpace(value)]
	return ok
}
