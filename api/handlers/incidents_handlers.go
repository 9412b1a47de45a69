package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"stpaul-crime/core/incidents"
	"stpaul-crime/core/utils"
)

type IncidentsHandler struct {
	svc          *incidents.Service
	defaultLimit int
	logger       *utils.Logger
}

func NewIncidentsHandler(svc *incidents.Service, defaultLimit int, logger *utils.Logger) *IncidentsHandler {
	return &IncidentsHandler{svc: svc, defaultLimit: defaultLimit, logger: logger}
}

const dateLayout = "2006-01-02"

// List handles GET /incidents. Query parameters are parsed into a QuerySpec
// before any core logic runs; malformed dates or limits are rejected here.
func (h *IncidentsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	spec := incidents.QuerySpec{
		Codes:         incidents.KeySet(q.Get("code")),
		Grids:         incidents.KeySet(q.Get("grid")),
		Neighborhoods: incidents.KeySet(q.Get("neighborhood")),
		Limit:         h.defaultLimit,
	}
	if raw := strings.TrimSpace(q.Get("start_date")); raw != "" {
		day, err := time.Parse(dateLayout, raw)
		if err != nil {
			writeText(w, http.StatusBadRequest, fmt.Sprintf("bad start_date %q: expected YYYY-MM-DD", raw))
			return
		}
		spec.Start = day
	}
	if raw := strings.TrimSpace(q.Get("end_date")); raw != "" {
		day, err := time.Parse(dateLayout, raw)
		if err != nil {
			writeText(w, http.StatusBadRequest, fmt.Sprintf("bad end_date %q: expected YYYY-MM-DD", raw))
			return
		}
		// end_date is inclusive through the last second of the day.
		spec.End = day.Add(24*time.Hour - time.Second)
	}
	if raw := strings.TrimSpace(q.Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeText(w, http.StatusBadRequest, fmt.Sprintf("bad limit %q: expected a positive integer", raw))
			return
		}
		spec.Limit = n
	}
	items, err := h.svc.List(r.Context(), spec)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

type newIncidentRequest struct {
	CaseNumber         looseString `json:"case_number"`
	Date               looseString `json:"date"`
	Time               looseString `json:"time"`
	Code               *looseInt   `json:"code"`
	Incident           looseString `json:"incident"`
	PoliceGrid         *looseInt   `json:"police_grid"`
	NeighborhoodNumber *looseInt   `json:"neighborhood_number"`
	Block              looseString `json:"block"`
}

// Create handles PUT /new-incident.
func (h *IncidentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req newIncidentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeText(w, http.StatusBadRequest, "bad request body: "+err.Error())
		return
	}
	cmd := incidents.CreateIncident{
		CaseNumber:         string(req.CaseNumber),
		Date:               string(req.Date),
		Time:               string(req.Time),
		Code:               req.Code.value(),
		Incident:           string(req.Incident),
		PoliceGrid:         req.PoliceGrid.value(),
		NeighborhoodNumber: req.NeighborhoodNumber.value(),
		Block:              string(req.Block),
	}
	if err := h.svc.Create(r.Context(), cmd); err != nil {
		writeServiceError(w, err)
		return
	}
	writeText(w, http.StatusOK, "OK")
}

// Delete handles DELETE /remove-incident. The identifier is read from the
// query string, falling back to a JSON body for clients of the original API.
func (h *IncidentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caseNumber := strings.TrimSpace(r.URL.Query().Get("case_number"))
	if caseNumber == "" && r.Body != nil {
		var body struct {
			CaseNumber looseString `json:"case_number"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			caseNumber = strings.TrimSpace(string(body.CaseNumber))
		}
	}
	snapshot, err := h.svc.Delete(r.Context(), caseNumber)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}
