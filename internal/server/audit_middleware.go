package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"bikerental/internal/audit"
)

func (s *Server) auditMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		entry := audit.Entry{
			ID:        uuid.New(),
			Timestamp: time.Now().UTC(),
			Method:    r.Method,
			Path:      r.URL.Path,
			Handler:   handlerName(r.URL.Path, r.Method),
		}

		if r.Body != nil {
			requestBody, _ := io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewBuffer(requestBody))
			entry.Request = string(requestBody)

			var emailRequest struct {
				Email string `json:"email"`
			}
			if err := json.Unmarshal(requestBody, &emailRequest); err == nil {
				entry.Email = emailRequest.Email
			}
		}

		entry.StatusCode = http.StatusOK
		rec := &auditRecorder{ResponseWriter: w, entry: &entry}

		next.ServeHTTP(rec, r)

		entry.Response = rec.body.String()

		s.AuditManager.Log(r.Context(), entry)
	})
}

// auditRecorder passes writes through to the client while recording the
// status code into the audit entry and keeping a copy of the body.
type auditRecorder struct {
	http.ResponseWriter
	entry *audit.Entry
	body  bytes.Buffer
}

func (rec *auditRecorder) WriteHeader(statusCode int) {
	rec.entry.StatusCode = statusCode
	rec.ResponseWriter.WriteHeader(statusCode)
}

func (rec *auditRecorder) Write(b []byte) (int, error) {
	rec.body.Write(b)
	return rec.ResponseWriter.Write(b)
}

func handlerName(path string, method string) string {
	switch {
	case path == "/bikes" && method == http.MethodPost:
		return "handleAddBike"
	case path == "/bikes":
		return "handleListBikes"
	case path == "/clients":
		return "handleAddClient"
	case path == "/rentals":
		return "handleAddRental"
	case path == "/settlements":
		return "handleSettle"
	}
	return "unknown"
}
