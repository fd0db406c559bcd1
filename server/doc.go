// Package server exposes a Catalog over HTTP with gin.
//
// Routes:
//
//	GET  /health                health check
//	GET  /api/v1/items          every item, oldest first
//	GET  /api/v1/items/:id      a single item
//	POST /api/v1/items/filter   structured AND/OR filter
//	POST /api/v1/items/search   natural-language search
//
// Request bodies are validated with go-playground/validator before they
// reach the catalog. Malformed input is answered with 400, unknown items
// with 404 and storage failures with 500.
package server
