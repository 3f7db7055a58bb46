package client

import "errors"

// ErrNoBaseURL is returned by New when no service URL is configured.
var ErrNoBaseURL = errors.New("client: no base URL configured")
