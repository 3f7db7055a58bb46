package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/saurabh-xd/kana-dojo/apierr"
	"github.com/saurabh-xd/kana-dojo/service"
)

func (a *API) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req service.TranslateRequest
	if err := a.decode(w, r, &req); err != nil {
		a.writeError(w, err)
		return
	}

	resp, err := a.svc.Translate(r.Context(), req)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeResult(w, resp)
}

func (a *API) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req service.AnalyzeRequest
	if err := a.decode(w, r, &req); err != nil {
		a.writeError(w, err)
		return
	}

	resp, err := a.svc.Analyze(r.Context(), req)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeResult(w, resp)
}

// decode reads a JSON body under the size cap into dst.
func (a *API) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, a.cfg.MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apierr.Newf(apierr.CodeInvalidInput,
				"request body exceeds %d bytes", maxErr.Limit)
		}
		return apierr.Wrap(apierr.CodeInvalidInput, "malformed JSON body", err)
	}
	return nil
}

// writeResult sends a 200 with the shared-cacheability header.
func (a *API) writeResult(w http.ResponseWriter, v any) {
	w.Header().Set("Cache-Control",
		fmt.Sprintf("public, max-age=%d", int(a.cfg.CacheMaxAge.Seconds())))
	writeJSON(w, http.StatusOK, v)
}

// writeError maps any failure onto the taxonomy body. Denials
// additionally carry the retry and rate-limit headers.
func (a *API) writeError(w http.ResponseWriter, err error) {
	var denial *service.DenialError
	if errors.As(err, &denial) {
		d := denial.Decision
		w.Header().Set("Retry-After", strconv.Itoa(d.RetryAfterSeconds()))
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(d.ResetAt.Unix(), 10))
	}

	e := apierr.FromError(err)
	writeJSON(w, e.Status, e)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
