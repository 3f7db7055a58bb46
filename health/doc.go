// Package health reports component health over HTTP probe endpoints.
//
// Components register a Checker with an Aggregator; the HTTP handlers
// expose liveness (/healthz), readiness (/readyz) and a detailed JSON
// view (/health, /health/{component}) over the aggregate. Degraded
// components keep readiness green. Only an unhealthy component turns
// a probe 503, so load shedding and cold lazy initializers do not get
// an instance pulled from rotation.
package health
