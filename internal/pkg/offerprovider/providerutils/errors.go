package providerutils

import (
	"net/http"

	"github.com/MSMikl/aviata-test/internal/pkg/exception"
)

// ErrUpstreamFetch covers transport errors and non-success responses from
// a provider. Fatal for that provider's contribution only.
var ErrUpstreamFetch = exception.ApplicationError{
	StatusCode: http.StatusBadGateway,
	Message:    "provider fetch failed",
}

// ErrDocumentParse means the root document could not be parsed at all.
// Fatal for that provider's contribution only.
var ErrDocumentParse = exception.ApplicationError{
	StatusCode: http.StatusInternalServerError,
	Message:    "provider document unparseable",
}

// ErrRateLimitExceeded means the outbound limiter rejected the call.
var ErrRateLimitExceeded = exception.ApplicationError{
	StatusCode: http.StatusTooManyRequests,
	Message:    "provider rate limit exceeded",
}
