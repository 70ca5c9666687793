// Package api provides the HTTP surface of the Loglumen collection server
//
// @title Loglumen Collection Server API
// @version 1.0
// @description Central collection point of the Loglumen security-event monitoring service.
// @description
// @description Agents submit batches of standardized security events which are validated,
// @description stored in memory with bounded per-host retention, and folded into live
// @description per-host and per-category aggregates served to the dashboard.
// @description
// @description ## Authentication
// @description This API currently does not require authentication. Consider adding authentication for production deployments.
//
// @contact.name API Support
// @contact.url https://github.com/loglumen/loglumen-server/issues
//
// @license.name MIT
// @license.url https://github.com/loglumen/loglumen-server/blob/main/LICENSE
//
// @host localhost:8080
// @BasePath /
//
// @tag.name health
// @tag.description Health check endpoints
//
// @tag.name events
// @tag.description Event ingestion and retrieval endpoints
//
// @tag.name stats
// @tag.description Aggregate statistics endpoints
package api
