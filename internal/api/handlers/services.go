package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/anstrom/portsim/internal/errors"
	"github.com/anstrom/portsim/internal/services"
)

// ServicesResponse lists the well-known service catalog.
type ServicesResponse struct {
	Services []services.Entry `json:"services"`
	Total    int              `json:"total"`
}

// ListServices handles GET /api/v1/services.
//
//	@Summary	Service catalog
//	@Tags		services
//	@Produce	json
//	@Success	200	{object}	ServicesResponse
//	@Router		/services [get]
func ListServices(w http.ResponseWriter, r *http.Request) {
	entries := services.All()
	writeJSON(w, r, http.StatusOK, ServicesResponse{Services: entries, Total: len(entries)})
}

// GetService handles GET /api/v1/services/{port}. Ports missing from the
// catalog resolve to Unknown.
//
//	@Summary	Service name for a port
//	@Tags		services
//	@Produce	json
//	@Param		port	path		int	true	"Port number"
//	@Success	200		{object}	services.Entry
//	@Failure	400		{object}	ErrorResponse
//	@Router		/services/{port} [get]
func GetService(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["port"]
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		writeError(w, r, http.StatusBadRequest, errors.ErrPortOutOfRange("port", port))
		return
	}
	writeJSON(w, r, http.StatusOK, services.Entry{Port: port, Service: services.Lookup(port)})
}
