package http

import (
	"net/http"

	"github.com/elarafragrance/elara-backend/internal/dto"
	"github.com/go-chi/render"
)

// dashboardResponse is the summary payload wrapped in a success flag. On
// failure the client gets {"success":false,"error":...} with no partial data.
type dashboardResponse struct {
	Success bool `json:"success"`
	*dto.DashboardSummary
}

type dashboardError struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	period := dto.Period(r.URL.Query().Get("period"))
	if period == "" {
		period = dto.PeriodWeek
	}
	if !dto.ValidPeriods[period] {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, dashboardError{Error: "invalid period"})
		return
	}

	summary, err := s.analytics.GetDashboardSummary(ctx, period)
	if err != nil {
		// details are already logged inside the service; the client gets an
		// opaque failure
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, dashboardError{Error: "failed to load dashboard data"})
		return
	}

	render.JSON(w, r, dashboardResponse{
		Success:          true,
		DashboardSummary: summary,
	})
}
