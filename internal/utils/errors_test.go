package utils

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GTDGit/addresskit/pkg/addresskit"
)

func TestClassifyUpstream(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   error
	}{
		{name: "timeout", err: &addresskit.Error{Kind: addresskit.KindTimeout, Message: "request timeout"}, status: http.StatusGatewayTimeout, code: ErrUpstreamTimeout},
		{name: "upstream 404", err: &addresskit.Error{Kind: addresskit.KindHTTPStatus, Status: http.StatusNotFound}, status: http.StatusNotFound, code: ErrNotFound},
		{name: "upstream 503", err: &addresskit.Error{Kind: addresskit.KindHTTPStatus, Status: http.StatusServiceUnavailable}, status: http.StatusBadGateway, code: ErrUpstream},
		{name: "transport", err: &addresskit.Error{Kind: addresskit.KindTransport, Message: "request failed", Err: errors.New("connection refused")}, status: http.StatusBadGateway, code: ErrUpstream},
		{name: "wrapped transport", err: fmt.Errorf("lookup: %w", &addresskit.Error{Kind: addresskit.KindTransport}), status: http.StatusBadGateway, code: ErrUpstream},
		{name: "unknown error", err: context.Canceled, status: http.StatusInternalServerError, code: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code := ClassifyUpstream(tt.err)
			assert.Equal(t, tt.status, status)
			assert.ErrorIs(t, code, tt.code)
		})
	}
}
