// Package handlers provides HTTP request handlers for the portsim API.
// This file implements scan control, results and export endpoints.
package handlers

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/anstrom/portsim/internal/errors"
	"github.com/anstrom/portsim/internal/export"
	"github.com/anstrom/portsim/internal/results"
	"github.com/anstrom/portsim/internal/scanning"
)

//go:generate mockgen -source=scan.go -destination=mocks/mock_scan.go -package=mocks

// ScanController is the engine surface the scan endpoints drive.
type ScanController interface {
	Start(cfg scanning.Config) error
	Pause()
	Resume()
	Cancel()
	Snapshot() scanning.Snapshot
	Summary() (scanning.Summary, bool)
	ExportFindings() ([]byte, error)
	CopyFindings() (string, error)
}

// ScanHandler handles scan-related API endpoints.
type ScanHandler struct {
	controller ScanController
	logger     *slog.Logger
	validator  *validator.Validate
	maxBody    int64
	now        func() time.Time
}

// NewScanHandler creates a new scan handler. Request bodies larger than
// maxRequestSize bytes are rejected; zero or less uses the default limit.
func NewScanHandler(controller ScanController, logger *slog.Logger, maxRequestSize int64) *ScanHandler {
	if maxRequestSize <= 0 {
		maxRequestSize = defaultMaxRequestSize
	}
	return &ScanHandler{
		controller: controller,
		logger:     logger.With("handler", "scan"),
		validator:  validator.New(),
		maxBody:    maxRequestSize,
		now:        time.Now,
	}
}

// StartScanRequest represents a scan start request.
type StartScanRequest struct {
	Target    string `json:"target" validate:"required" example:"192.168.1.1"`
	ScanType  string `json:"scan_type,omitempty" validate:"omitempty,oneof=tcp syn udp comprehensive" example:"tcp"`
	StartPort int    `json:"start_port" validate:"min=1,max=65535" example:"1"`
	EndPort   int    `json:"end_port" validate:"min=1,max=65535,gtefield=StartPort" example:"1024"`
}

// ResultsResponse is a filtered and sorted view of the current findings.
type ResultsResponse struct {
	ScanID  string              `json:"scan_id,omitempty"`
	Status  scanning.Status     `json:"status"`
	Options results.ViewOptions `json:"options"`
	Counts  results.Counts      `json:"counts"`
	Results []scanning.Finding  `json:"results"`
}

// SummaryResponse wraps a completed run summary with its display line.
type SummaryResponse struct {
	scanning.Summary
	Text string `json:"text"`
}

// StartScan handles POST /api/v1/scan/start.
//
//	@Summary	Start a scan
//	@Tags		scan
//	@Accept		json
//	@Produce	json
//	@Param		request	body		StartScanRequest	true	"Scan configuration"
//	@Success	202		{object}	scanning.Snapshot
//	@Failure	400		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Router		/scan/start [post]
func (h *ScanHandler) StartScan(w http.ResponseWriter, r *http.Request) {
	requestID := getRequestIDFromContext(r.Context())

	var req StartScanRequest
	if err := parseJSON(r, &req, h.maxBody); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	if err := h.validateStartRequest(&req); err != nil {
		writeError(w, r, statusForError(err), err)
		return
	}

	cfg := scanning.Config{
		Target:   req.Target,
		Range:    scanning.PortRange{Start: req.StartPort, End: req.EndPort},
		ScanType: scanning.ScanType(req.ScanType),
	}
	if err := h.controller.Start(cfg); err != nil {
		h.logger.Info("Scan start rejected", "request_id", requestID, "error", err)
		writeError(w, r, statusForError(err), err)
		return
	}

	snap := h.controller.Snapshot()
	h.logger.Info("Scan started via API", "request_id", requestID, "scan_id", snap.ID, "target", snap.Target)
	writeJSON(w, r, http.StatusAccepted, snap)
}

// validateStartRequest runs struct validation and translates the first
// failing rule into the matching domain validation error.
func (h *ScanHandler) validateStartRequest(req *StartScanRequest) error {
	err := h.validator.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errors.NewValidationError(errors.CodeValidation, err.Error(), "", nil)
	}

	fe := fieldErrs[0]
	switch fe.StructField() {
	case "Target":
		return errors.ErrTargetRequired()
	case "ScanType":
		return errors.ErrInvalidOption("scan_type", req.ScanType)
	case "StartPort":
		return errors.ErrPortOutOfRange("start_port", req.StartPort)
	case "EndPort":
		if fe.Tag() == "gtefield" {
			return errors.ErrPortOrder(req.StartPort, req.EndPort)
		}
		return errors.ErrPortOutOfRange("end_port", req.EndPort)
	default:
		return errors.NewValidationError(errors.CodeValidation,
			fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()), fe.Field(), fe.Value())
	}
}

// PauseScan handles POST /api/v1/scan/pause.
//
//	@Summary	Pause the running scan
//	@Tags		scan
//	@Produce	json
//	@Success	200	{object}	scanning.Snapshot
//	@Router		/scan/pause [post]
func (h *ScanHandler) PauseScan(w http.ResponseWriter, r *http.Request) {
	h.controller.Pause()
	writeJSON(w, r, http.StatusOK, h.controller.Snapshot())
}

// ResumeScan handles POST /api/v1/scan/resume.
//
//	@Summary	Resume a paused scan
//	@Tags		scan
//	@Produce	json
//	@Success	200	{object}	scanning.Snapshot
//	@Router		/scan/resume [post]
func (h *ScanHandler) ResumeScan(w http.ResponseWriter, r *http.Request) {
	h.controller.Resume()
	writeJSON(w, r, http.StatusOK, h.controller.Snapshot())
}

// CancelScan handles POST /api/v1/scan/cancel.
//
//	@Summary	Cancel the current scan
//	@Tags		scan
//	@Produce	json
//	@Success	200	{object}	scanning.Snapshot
//	@Router		/scan/cancel [post]
func (h *ScanHandler) CancelScan(w http.ResponseWriter, r *http.Request) {
	h.controller.Cancel()
	writeJSON(w, r, http.StatusOK, h.controller.Snapshot())
}

// GetScan handles GET /api/v1/scan.
//
//	@Summary	Current scan state
//	@Tags		scan
//	@Produce	json
//	@Success	200	{object}	scanning.Snapshot
//	@Router		/scan [get]
func (h *ScanHandler) GetScan(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.controller.Snapshot())
}

// GetResults handles GET /api/v1/scan/results.
//
//	@Summary	Filtered and sorted findings
//	@Tags		scan
//	@Produce	json
//	@Param		status	query		string	false	"all, open or closed"
//	@Param		sort	query		string	false	"port, status or service"
//	@Param		order	query		string	false	"asc or desc"
//	@Success	200		{object}	ResultsResponse
//	@Failure	400		{object}	ErrorResponse
//	@Router		/scan/results [get]
func (h *ScanHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	opts, err := results.ParseViewOptions(query.Get("status"), query.Get("sort"), query.Get("order"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	snap := h.controller.Snapshot()
	writeJSON(w, r, http.StatusOK, ResultsResponse{
		ScanID:  snap.ID,
		Status:  snap.Status,
		Options: opts,
		Counts:  results.Count(snap.Findings),
		Results: results.View(snap.Findings, opts),
	})
}

// GetSummary handles GET /api/v1/scan/summary.
//
//	@Summary	Summary of the last completed scan
//	@Tags		scan
//	@Produce	json
//	@Success	200	{object}	SummaryResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/scan/summary [get]
func (h *ScanHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, ok := h.controller.Summary()
	if !ok {
		writeError(w, r, http.StatusNotFound, fmt.Errorf("no completed scan"))
		return
	}
	writeJSON(w, r, http.StatusOK, SummaryResponse{Summary: summary, Text: summary.String()})
}

// ExportResults handles GET /api/v1/scan/export.
//
//	@Summary	Download findings as a JSON file
//	@Tags		scan
//	@Produce	json
//	@Success	200	{array}		scanning.Finding
//	@Failure	500	{object}	ErrorResponse
//	@Router		/scan/export [get]
func (h *ScanHandler) ExportResults(w http.ResponseWriter, r *http.Request) {
	data, err := h.controller.ExportFindings()
	if err != nil {
		h.logger.Error("Export failed", "request_id", getRequestIDFromContext(r.Context()), "error", err)
		writeError(w, r, http.StatusInternalServerError, errors.WrapExportError("failed to export findings", "download", err))
		return
	}

	filename := export.Filename(h.controller.Snapshot().Target, h.now())
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Debug("Export download interrupted", "request_id", getRequestIDFromContext(r.Context()), "error", err)
	}
}

// CopyResults handles GET /api/v1/scan/copy.
//
//	@Summary	Findings as clipboard text
//	@Tags		scan
//	@Produce	plain
//	@Success	200	{string}	string
//	@Failure	500	{object}	ErrorResponse
//	@Router		/scan/copy [get]
func (h *ScanHandler) CopyResults(w http.ResponseWriter, r *http.Request) {
	text, err := h.controller.CopyFindings()
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, errors.WrapExportError("failed to copy findings", "clipboard", err))
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}
