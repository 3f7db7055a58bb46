// Package apierr defines the closed error taxonomy shared by the HTTP
// surface, the orchestration layer, and the client SDK.
//
// Every failure crossing the service boundary is one of a fixed set of
// codes, each with a stable HTTP status and retry semantics. Raw upstream
// error bodies are never passed through.
package apierr
