package request

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBodyLimit(t *testing.T) {
	tests := []struct {
		name       string
		size       int
		limit      int64
		chunked    bool
		wantStatus int
		wantRead   bool
		wantErr    bool
	}{
		{"under limit", 100, 1024, false, http.StatusOK, true, false},
		{"exactly at limit", 100, 100, false, http.StatusOK, true, false},
		{"declared length over limit", 101, 100, false, http.StatusRequestEntityTooLarge, false, false},
		{"chunked body over limit", 101, 100, true, http.StatusOK, true, true},
		{"empty body", 0, 10, false, http.StatusOK, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				readErr error
				read    bool
			)
			handler := BodyLimit(tt.limit)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				read = true
				_, readErr = io.ReadAll(r.Body)
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodPost, "/api/contacts", strings.NewReader(strings.Repeat("x", tt.size)))
			if tt.chunked {
				req.ContentLength = -1
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantRead, read)
			if tt.wantErr {
				var maxErr *http.MaxBytesError
				assert.ErrorAs(t, readErr, &maxErr)
			} else {
				assert.NoError(t, readErr)
			}
			if tt.wantStatus == http.StatusRequestEntityTooLarge {
				assert.Contains(t, rec.Body.String(), "payload_too_large")
			}
		})
	}
}
