// Package api is the HTTP surface: request decoding, the taxonomy
// error body, rate-limit headers, and the middleware chain (request
// ID, observability, CORS, identity resolution) around the service
// operations.
package api
