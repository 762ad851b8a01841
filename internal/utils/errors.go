package utils

import (
	"errors"
	"net/http"

	"github.com/GTDGit/addresskit/pkg/addresskit"
)

// Common gateway errors; the string is the API error code.
var (
	ErrNotFound        = errors.New("NOT_FOUND")
	ErrUpstream        = errors.New("UPSTREAM_ERROR")
	ErrUpstreamTimeout = errors.New("UPSTREAM_TIMEOUT")
	ErrRateLimited     = errors.New("RATE_LIMITED")
	ErrInternal        = errors.New("INTERNAL_ERROR")
)

// ClassifyUpstream maps an AddressKit error to a gateway status and error code.
func ClassifyUpstream(err error) (int, error) {
	if addresskit.IsTimeout(err) {
		return http.StatusGatewayTimeout, ErrUpstreamTimeout
	}
	if status, ok := addresskit.StatusCode(err); ok {
		if status == http.StatusNotFound {
			return http.StatusNotFound, ErrNotFound
		}
		return http.StatusBadGateway, ErrUpstream
	}
	if errors.Is(err, addresskit.ErrTransport) {
		return http.StatusBadGateway, ErrUpstream
	}
	return http.StatusInternalServerError, ErrInternal
}
