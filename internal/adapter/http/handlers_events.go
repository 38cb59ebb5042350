package adapthttp

import (
	"net/http"

	"dashboard/internal/app"
)

type createEventRequest struct {
	Title       string `json:"title" validate:"notblank,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Date        string `json:"date" validate:"notblank"`
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		items, err := s.events.List(ctx)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": limitItems(items, intQuery(r, "limit", 0))})

	case http.MethodPost:
		var body createEventRequest
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if err := s.validateRequest(body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		e, err := s.events.Create(ctx, app.NewEvent{
			Title:       body.Title,
			Description: body.Description,
			Date:        body.Date,
		})
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, e)

	case http.MethodDelete:
		if err := s.events.Delete(ctx, r.URL.Query().Get("id")); err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
