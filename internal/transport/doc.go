// Package transport implements ee.Transport over the service's HTTP API.
//
// The function catalog is read from GET /v1/projects/{project}/algorithms.
// Graphs in the cloud encoding are posted to
// /v1/projects/{project}/value:compute; graphs in the legacy encoding are
// posted as a JSON string to /api/value.
package transport
