package handlers

import (
	"net/http"

	"github.com/anstrom/portsim/internal/scheduler"
)

// ScheduleLister lists recurring scan jobs.
type ScheduleLister interface {
	Jobs() []scheduler.JobInfo
}

// ScheduleHandler handles the schedule endpoints.
type ScheduleHandler struct {
	lister ScheduleLister
}

// NewScheduleHandler creates a new schedule handler.
func NewScheduleHandler(lister ScheduleLister) *ScheduleHandler {
	return &ScheduleHandler{lister: lister}
}

// SchedulesResponse lists all configured recurring scans.
type SchedulesResponse struct {
	Schedules []scheduler.JobInfo `json:"schedules"`
	Total     int                 `json:"total"`
}

// ListSchedules handles GET /api/v1/schedules.
//
//	@Summary	List recurring scans
//	@Tags		schedules
//	@Produce	json
//	@Success	200	{object}	SchedulesResponse
//	@Router		/schedules [get]
func (h *ScheduleHandler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	jobs := h.lister.Jobs()
	writeJSON(w, r, http.StatusOK, SchedulesResponse{Schedules: jobs, Total: len(jobs)})
}
