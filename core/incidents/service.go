package incidents

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"stpaul-crime/core/store"
	"stpaul-crime/core/utils"
)

// ShapedIncident is the public view of a stored incident with the combined
// timestamp split back into calendar date and time of day.
type ShapedIncident struct {
	CaseNumber         string `json:"case_number"`
	Date               string `json:"date"`
	Time               string `json:"time"`
	Code               int64  `json:"code"`
	Incident           string `json:"incident"`
	PoliceGrid         int64  `json:"police_grid"`
	NeighborhoodNumber int64  `json:"neighborhood_number"`
	Block              string `json:"block"`
}

// CreateIncident carries the fields of a create command. Numeric fields are
// pointers so a missing field can be told apart from a zero.
type CreateIncident struct {
	CaseNumber         string
	Date               string
	Time               string
	Code               *int64
	Incident           string
	PoliceGrid         *int64
	NeighborhoodNumber *int64
	Block              string
}

// Service implements the query pipeline and the guarded mutations over the
// incidents store.
type Service struct {
	store        store.IncidentsStore
	defaultLimit int
	logger       *utils.Logger
}

func NewService(is store.IncidentsStore, defaultLimit int, logger *utils.Logger) *Service {
	if defaultLimit <= 0 {
		defaultLimit = 1000
	}
	return &Service{store: is, defaultLimit: defaultLimit, logger: logger}
}

// List runs fetch-all, sort, filter, limit, reshape — in that order. The
// limit is applied after filtering and sorting so the result is always the
// most recent matches. Returns ErrNotFound when nothing matched.
//
// Filtering happens in memory over the full table; at the current dataset
// size that is cheaper than teaching the store about every filter dimension.
func (s *Service) List(ctx context.Context, spec QuerySpec) ([]ShapedIncident, error) {
	all, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list incidents: %w", err)
	}
	// DateTimeLayout strings compare lexically in chronological order; the
	// stable sort keeps fetch order among equal timestamps.
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].DateTime > all[j].DateTime
	})
	matched := all[:0:0]
	for _, inc := range all {
		if spec.Matches(inc) {
			matched = append(matched, inc)
		}
	}
	if len(matched) == 0 {
		return nil, fmt.Errorf("%w: no incidents match the requested filters", ErrNotFound)
	}
	limit := spec.Limit
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if len(matched) > limit {
		matched = matched[:limit]
	}
	shaped := make([]ShapedIncident, 0, len(matched))
	for _, inc := range matched {
		shaped = append(shaped, shape(inc))
	}
	return shaped, nil
}

// Create validates the command, enforces case-number uniqueness before the
// write, and persists the combined record. The store re-checks uniqueness
// inside its transaction, closing the remaining check-then-act window.
func (s *Service) Create(ctx context.Context, req CreateIncident) error {
	if missing := missingFields(req); len(missing) > 0 {
		return fmt.Errorf("%w: missing fields: %s", ErrInvalidInput, strings.Join(missing, ", "))
	}
	combined := strings.TrimSpace(req.Date) + "T" + strings.TrimSpace(req.Time)
	if _, err := time.Parse(DateTimeLayout, combined); err != nil {
		return fmt.Errorf("%w: bad date/time %q", ErrInvalidInput, combined)
	}
	caseNumber := strings.TrimSpace(req.CaseNumber)
	existing, err := s.store.GetByCaseNumber(ctx, caseNumber)
	if err != nil {
		return fmt.Errorf("check case number: %w", err)
	}
	if existing != nil {
		return fmt.Errorf("%w: case number %s already exists", ErrConflict, caseNumber)
	}
	inc := &store.Incident{
		CaseNumber:         caseNumber,
		DateTime:           combined,
		Code:               *req.Code,
		Incident:           strings.TrimSpace(req.Incident),
		PoliceGrid:         *req.PoliceGrid,
		NeighborhoodNumber: *req.NeighborhoodNumber,
		Block:              strings.TrimSpace(req.Block),
	}
	if err := s.store.Insert(ctx, inc); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return fmt.Errorf("%w: case number %s already exists", ErrConflict, caseNumber)
		}
		return fmt.Errorf("insert incident: %w", err)
	}
	s.logger.Infof("incident %s created", caseNumber)
	return nil
}

// Delete removes the identified incident and returns the pre-deletion
// snapshot. A delete of an unknown case number is an error, never a silent
// no-op.
func (s *Service) Delete(ctx context.Context, caseNumber string) (*store.Incident, error) {
	caseNumber = strings.TrimSpace(caseNumber)
	if caseNumber == "" {
		return nil, fmt.Errorf("%w: case_number is required", ErrInvalidInput)
	}
	snapshot, err := s.store.Delete(ctx, caseNumber)
	if err != nil {
		if errors.Is(err, store.ErrMissing) {
			return nil, fmt.Errorf("%w: no incident with case number %s", ErrNotFound, caseNumber)
		}
		return nil, fmt.Errorf("delete incident: %w", err)
	}
	s.logger.Infof("incident %s deleted", caseNumber)
	return snapshot, nil
}

func missingFields(req CreateIncident) []string {
	var missing []string
	if strings.TrimSpace(req.CaseNumber) == "" {
		missing = append(missing, "case_number")
	}
	if strings.TrimSpace(req.Date) == "" {
		missing = append(missing, "date")
	}
	if strings.TrimSpace(req.Time) == "" {
		missing = append(missing, "time")
	}
	if req.Code == nil {
		missing = append(missing, "code")
	}
	if strings.TrimSpace(req.Incident) == "" {
		missing = append(missing, "incident")
	}
	if req.PoliceGrid == nil {
		missing = append(missing, "police_grid")
	}
	if req.NeighborhoodNumber == nil {
		missing = append(missing, "neighborhood_number")
	}
	if strings.TrimSpace(req.Block) == "" {
		missing = append(missing, "block")
	}
	return missing
}

func shape(inc store.Incident) ShapedIncident {
	date, tod := splitDateTime(inc.DateTime)
	return ShapedIncident{
		CaseNumber:         inc.CaseNumber,
		Date:               date,
		Time:               tod,
		Code:               inc.Code,
		Incident:           inc.Incident,
		PoliceGrid:         inc.PoliceGrid,
		NeighborhoodNumber: inc.NeighborhoodNumber,
		Block:              inc.Block,
	}
}

func splitDateTime(raw string) (string, string) {
	if i := strings.IndexByte(raw, 'T'); i >= 0 {
		return raw[:i], raw[i+1:]
	}
	return raw, ""
}
