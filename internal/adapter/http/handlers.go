package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/couchcryptid/indyradio-service/internal/catalog"
	"github.com/couchcryptid/indyradio-service/internal/domain"
	"github.com/couchcryptid/indyradio-service/internal/questionnaire"
	"github.com/couchcryptid/indyradio-service/internal/validation"
	"github.com/go-chi/chi/v5"
)

type handler struct {
	catalog      *catalog.Catalog
	recommender  domain.Recommender
	sessions     *questionnaire.Store
	logger       *slog.Logger
	defaultLimit int
}

type stationsResponse struct {
	Filter   catalog.StationFilter `json:"filter"`
	Count    int                   `json:"count"`
	Stations []domain.Station      `json:"stations"`
}

// GET /api/v1/stations?filter=
func (h *handler) listStations(w http.ResponseWriter, r *http.Request) {
	f, err := catalog.ParseFilter(r.URL.Query().Get("filter"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, err.Error(), map[string]any{
			"allowed": []catalog.StationFilter{
				catalog.FilterAll, catalog.FilterCritical, catalog.FilterHigh,
				catalog.FilterModerate, catalog.FilterDefunding,
			},
		})
		return
	}
	stations := h.catalog.Filter(f)
	writeJSON(w, http.StatusOK, stationsResponse{Filter: f, Count: len(stations), Stations: stations})
}

// GET /api/v1/stations/summary
func (h *handler) stationSummary(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.Summary())
}

// GET /api/v1/stations/{id}
func (h *handler) getStation(w http.ResponseWriter, r *http.Request) {
	s, err := h.catalog.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

type impactPreview struct {
	Amount int    `json:"amount"`
	Impact string `json:"impact"`
}

type impactResponse struct {
	StationID string          `json:"station_id"`
	Previews  []impactPreview `json:"previews"`
}

// GET /api/v1/stations/{id}/impact?amount=
// Without an amount the preset donation buttons are previewed.
func (h *handler) stationImpact(w http.ResponseWriter, r *http.Request) {
	s, err := h.catalog.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	amounts := domain.SuggestedAmounts
	if raw := r.URL.Query().Get("amount"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidation, "amount must be a whole number of dollars", nil)
			return
		}
		amounts = []int{n}
	}

	resp := impactResponse{StationID: s.ID, Previews: make([]impactPreview, 0, len(amounts))}
	for _, amount := range amounts {
		text, err := domain.ImpactPreview(amount, s)
		if err != nil {
			writeDomainError(w, h.logger, err)
			return
		}
		resp.Previews = append(resp.Previews, impactPreview{Amount: amount, Impact: text})
	}
	writeJSON(w, http.StatusOK, resp)
}

type questionsResponse struct {
	Questions []questionnaire.Question `json:"questions"`
}

// GET /api/v1/questions
func (h *handler) listQuestions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, questionsResponse{Questions: questionnaire.Questions()})
}

type recommendRequest struct {
	Preferences domain.UserPreferences `json:"preferences"`
	Limit       *int                   `json:"limit,omitempty" validate:"omitempty,gte=0,lte=100"`
}

type recommendResponse struct {
	SessionID       string                  `json:"session_id,omitempty"`
	Limit           int                     `json:"limit"`
	Recommendations []domain.Recommendation `json:"recommendations"`
}

// POST /api/v1/recommendations
func (h *handler) recommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if !decodeBody(w, r, &req) {
		return
	}

	// Missing answers are a 409 and take precedence over field validation.
	if err := req.Preferences.Check(); errors.Is(err, domain.ErrIncompletePreferences) {
		writeDomainError(w, h.logger, err)
		return
	}
	if err := validation.Struct(req); err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	limit := h.defaultLimit
	if req.Limit != nil {
		limit = *req.Limit
	}
	h.serveRecommendations(w, r, req.Preferences, limit, "")
}

func (h *handler) serveRecommendations(w http.ResponseWriter, r *http.Request, prefs domain.UserPreferences, limit int, sessionID string) {
	ctx := r.Context()
	if sessionID != "" {
		ctx = domain.WithSessionID(ctx, sessionID)
	}
	recs, err := h.recommender.Recommend(ctx, prefs, limit)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, recommendResponse{SessionID: sessionID, Limit: limit, Recommendations: recs})
}

// POST /api/v1/sessions
func (h *handler) createSession(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusCreated, h.sessions.Create())
}

// GET /api/v1/sessions/{id}
func (h *handler) getSession(w http.ResponseWriter, r *http.Request) {
	v, err := h.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// DELETE /api/v1/sessions/{id}
func (h *handler) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Delete(chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type answerRequest struct {
	Value string `json:"value" validate:"required"`
}

// PUT /api/v1/sessions/{id}/answers/{field}
func (h *handler) answerSession(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validation.Struct(req); err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	v, err := h.sessions.Answer(chi.URLParam(r, "id"), domain.Field(chi.URLParam(r, "field")), req.Value)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// POST /api/v1/sessions/{id}/recommendations
func (h *handler) recommendSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	prefs, err := h.sessions.Preferences(id)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	h.serveRecommendations(w, r, prefs, h.defaultLimit, id)
}
