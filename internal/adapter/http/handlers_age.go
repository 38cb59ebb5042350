package adapthttp

import (
	"net/http"
	"strings"
	"time"

	"dashboard/internal/domain"
)

func (s *Server) handleAge(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var ref time.Time
	if at := strings.TrimSpace(r.URL.Query().Get("at")); at != "" {
		t, err := domain.ParseEventTime(at)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		ref = t
	}

	summary, err := s.age.Summary(ref)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
