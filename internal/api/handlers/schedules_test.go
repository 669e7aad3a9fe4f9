package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anstrom/portsim/internal/scanning"
	"github.com/anstrom/portsim/internal/scheduler"
)

type staticSchedules []scheduler.JobInfo

func (s staticSchedules) Jobs() []scheduler.JobInfo { return s }

func TestListSchedules(t *testing.T) {
	jobs := staticSchedules{{
		ID:       uuid.MustParse("8a6e0804-2bd0-4672-b79d-d97027f9071a"),
		Name:     "nightly",
		Schedule: "0 2 * * *",
		Target:   "10.0.0.1",
		Range:    scanning.PortRange{Start: 1, End: 1024},
		ScanType: scanning.ScanTypeTCP,
		Runs:     3,
	}}
	handler := NewScheduleHandler(jobs)

	rec := httptest.NewRecorder()
	handler.ListSchedules(rec, httptest.NewRequest(http.MethodGet, "/api/v1/schedules", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp SchedulesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
	require.Len(t, resp.Schedules, 1)
	assert.Equal(t, "nightly", resp.Schedules[0].Name)
	assert.Equal(t, 3, resp.Schedules[0].Runs)
	assert.Nil(t, resp.Schedules[0].NextRun)
}

func TestListSchedules_Empty(t *testing.T) {
	rec := httptest.NewRecorder()
	NewScheduleHandler(staticSchedules{}).ListSchedules(rec, httptest.NewRequest(http.MethodGet, "/api/v1/schedules", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"schedules":[],"total":0}`, rec.Body.String())
}
