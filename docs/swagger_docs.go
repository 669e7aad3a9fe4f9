// Package docs holds the general API annotations for the portsim service.
// Run `go generate ./docs` to regenerate the OpenAPI files under ./swagger.
//
//go:generate swag init -g swagger_docs.go -d ./,../internal/api/handlers -o ./swagger --parseDependency --parseInternal
package docs

// @title portsim API
// @version 1.0
// @description Simulated port scanner. One scan runs at a time; its findings are
// @description generated by a deterministic engine and streamed over WebSocket at /ws/scan.
// @description Prometheus metrics are served at /metrics.
//
// @contact.name portsim maintainers
// @contact.url https://github.com/anstrom/portsim
//
// @license.name MIT
//
// @host localhost:8080
// @BasePath /api/v1
//
// @tag.name scan
// @tag.description Scan lifecycle, results and export
// @tag.name schedules
// @tag.description Recurring scans started on a cron schedule
// @tag.name services
// @tag.description Well-known service catalog
// @tag.name system
// @tag.description Health, status and version
