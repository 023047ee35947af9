package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/foosball/league/internal/domain"
)

// maxBodyBytes caps request bodies accepted by DecodeJSON.
const maxBodyBytes = 1 << 20

const msgRequired = "This field is required."

// RespondJSON writes a JSON response with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// RespondError writes a JSON error response, detecting domain.AppError for status codes.
func RespondError(w http.ResponseWriter, err error) {
	var appErr *domain.AppError
	if errors.As(err, &appErr) && appErr.Status != http.StatusInternalServerError {
		RespondJSON(w, appErr.Status, appErr)
		return
	}
	RespondJSON(w, http.StatusInternalServerError, map[string]string{
		"code":    "INTERNAL_ERROR",
		"message": "internal server error",
	})
}

// DecodeJSON reads and decodes a JSON request body of at most 1 MiB into dst.
func DecodeJSON(r *http.Request, dst interface{}) error {
	return json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(dst)
}

// decodeBody decodes the request body onto dst, which may already hold
// defaults or the current state of the resource. An empty body leaves dst
// untouched. Decode failures become validation errors.
func decodeBody(r *http.Request, dst interface{}) error {
	body, err := readBody(r)
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return nil
	}
	return unmarshalBody(body, dst)
}

// decodeReplace decodes a full update onto dst, the current state of the
// resource. Every key in required must appear in the body; other fields
// left out keep their stored values.
func decodeReplace(r *http.Request, dst interface{}, required ...string) error {
	body, err := readBody(r)
	if err != nil {
		return err
	}
	var keys map[string]json.RawMessage
	if len(body) > 0 {
		if err := json.Unmarshal(body, &keys); err != nil {
			return domain.ErrValidation("malformed JSON body")
		}
	}
	f := domain.FieldErrors{}
	for _, name := range required {
		if _, ok := keys[name]; !ok {
			f.Add(name, msgRequired)
		}
	}
	if err := f.Err(); err != nil {
		return err
	}
	if len(body) == 0 {
		return nil
	}
	return unmarshalBody(body, dst)
}

// readBody returns the request body, or nil when it is blank.
func readBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return nil, domain.ErrValidation("could not read request body")
	}
	if len(body) > maxBodyBytes {
		return nil, domain.ErrValidation("request body too large")
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, nil
	}
	return body, nil
}

func unmarshalBody(body []byte, dst interface{}) error {
	err := json.Unmarshal(body, dst)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		f := domain.FieldErrors{}
		f.Add(typeErr.Field, fmt.Sprintf("Expected %s, got %s.", jsonKind(typeErr.Type.Kind().String()), typeErr.Value))
		return f.Err()
	}
	return domain.ErrValidation("malformed JSON body")
}

// jsonKind names a Go kind the way a JSON client would know it.
func jsonKind(kind string) string {
	switch {
	case strings.HasPrefix(kind, "int"), strings.HasPrefix(kind, "uint"):
		return "integer"
	case strings.HasPrefix(kind, "float"):
		return "number"
	case kind == "bool":
		return "boolean"
	case kind == "struct", kind == "map":
		return "object"
	case kind == "slice", kind == "array":
		return "array"
	}
	return kind
}
