package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/onepass/internal/common"
)

const (
	errTooManyRequests = "TooManyRequests"
	errBadRequest      = "BadRequest"
	errInternal        = "InternalError"
)

const maxBodySize = 1 << 20

type envelope struct {
	Error  *string `json:"error"`
	Result any     `json:"result"`
}

type keyResult struct {
	Key string `json:"key"`
}

var errorStatus = []struct {
	err    error
	status int
}{
	{common.ErrUsernameInvalid, http.StatusBadRequest},
	{common.ErrUsernameTaken, http.StatusBadRequest},
	{common.ErrUserNotFound, http.StatusNotFound},
	{common.ErrEntryNotFound, http.StatusNotFound},
	{common.ErrAccessUnauthorized, http.StatusUnauthorized},
	{common.ErrTokenInvalid, http.StatusUnauthorized},
	{common.ErrTokenExpired, http.StatusUnauthorized},
	{common.ErrIntegrity, http.StatusInternalServerError},
}

func writeJSON(w http.ResponseWriter, status int, result any) {
	if result == nil {
		result = struct{}{}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Result: result})
}

func writeError(w http.ResponseWriter, status int, name string, result any) {
	if result == nil {
		result = struct{}{}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Error: &name, Result: result})
}

// fail writes the envelope for a service error. Unknown errors are logged
// and reported as InternalError.
func (s *HTTPServer) fail(w http.ResponseWriter, r *http.Request, err error) {
	var mf *common.MissingFieldError
	if errors.As(err, &mf) {
		writeError(w, http.StatusBadRequest, common.ErrMissingField.Error(), keyResult{Key: mf.Field})
		return
	}
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			writeError(w, e.status, e.err.Error(), nil)
			return
		}
	}
	s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err.Error())
	writeError(w, http.StatusInternalServerError, errInternal, nil)
}

// decode reads a JSON body into v. An empty body leaves v untouched.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// sessionToken takes the token from the Authorization header, falling back
// to the api_key parameter.
func sessionToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	return r.URL.Query().Get("api_key")
}
