package adapthttp

import (
	"net/http"

	"dashboard/internal/app"
	"dashboard/internal/domain"
)

type createMeasurementRequest struct {
	Weight number `json:"weight" validate:"gt=0"`
	Unit   string `json:"unit" validate:"omitempty,oneof=kg lb"`
	Height number `json:"height" validate:"gt=0"`
	Date   string `json:"date" validate:"notblank"`
	Notes  string `json:"notes" validate:"max=500"`
}

func (s *Server) handleMeasurements(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		items, err := s.measurements.List(ctx)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		resp := map[string]any{"items": limitItems(items, intQuery(r, "limit", 0)), "latest": nil}
		if len(items) > 0 {
			resp["latest"] = items[0]
			resp["status"] = domain.ClassifyBMI(items[0].BMI)
		}
		writeJSON(w, http.StatusOK, resp)

	case http.MethodPost:
		var body createMeasurementRequest
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if err := s.validateRequest(body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		m, err := s.measurements.Record(ctx, app.NewMeasurement{
			Weight: float64(body.Weight),
			Unit:   body.Unit,
			Height: float64(body.Height),
			Date:   body.Date,
			Notes:  body.Notes,
		})
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, m)

	case http.MethodDelete:
		if err := s.measurements.Delete(ctx, r.URL.Query().Get("id")); err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleChartsGrowth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	unit := r.URL.Query().Get("unit")
	if unit == "" {
		unit = domain.UnitKg
	}
	points, err := s.growth.Series(r.Context(), unit)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"unit": unit, "points": points})
}
