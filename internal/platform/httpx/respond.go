package httpx

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/garage-admin/garage/internal/shared"
)

// maxBodyBytes bounds request bodies read by DecodeJSON.
const maxBodyBytes = 1 << 20

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// NoContent writes an empty 204 response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// DecodeJSON decodes the request body into target. An empty body leaves target
// untouched so that required-field validation reports the missing fields.
// Struct targets are decoded one member at a time so every failure is reported
// against its json name, in declaration order.
func DecodeJSON(r *http.Request, target any) error {
	if r.Body == nil {
		return nil
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return Invalid(NonFieldErrors, "parse_error", "JSON parse error - "+err.Error())
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil
	}

	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		if err := json.Unmarshal(body, target); err != nil {
			return Invalid(NonFieldErrors, "parse_error", "JSON parse error - "+err.Error())
		}
		return nil
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal(body, &members); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return Invalid(NonFieldErrors, "invalid", "Invalid data. Expected a dictionary, but got "+jsonKind(body)+".")
		}
		return Invalid(NonFieldErrors, "parse_error", "JSON parse error - "+err.Error())
	}

	var errs FieldErrors
	elem := rv.Elem()
	for i := 0; i < elem.NumField(); i++ {
		fld := elem.Type().Field(i)
		if !fld.IsExported() {
			continue
		}
		name := jsonName(fld)
		if name == "" {
			continue
		}
		raw, ok := members[name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, elem.Field(i).Addr().Interface()); err != nil {
			code, detail := memberError(fld.Type, err)
			errs.Add(name, code, detail)
		}
	}
	return errs.Err()
}

// jsonName returns the wire name of fld, or "" when it is not serialized.
func jsonName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	}
	return name
}

func jsonKind(body []byte) string {
	switch body[0] {
	case '[':
		return "list"
	case '"':
		return "str"
	case 't', 'f':
		return "bool"
	case 'n':
		return "NoneType"
	default:
		return "number"
	}
}

var timeType = reflect.TypeOf(time.Time{})

func memberError(t reflect.Type, err error) (string, string) {
	var formatErr *shared.FormatError
	if errors.As(err, &formatErr) {
		return "invalid", formatErr.Detail
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == timeType {
		return "invalid", "Datetime has wrong format. Use one of these formats instead: YYYY-MM-DDThh:mm[:ss[.uuuuuu]][+HH:MM|-HH:MM|Z]."
	}
	return typeMismatch(t)
}

func typeMismatch(t reflect.Type) (string, string) {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "invalid", "Invalid value."
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "invalid", "A valid integer is required."
	case reflect.Float32, reflect.Float64:
		return "invalid", "A valid number is required."
	case reflect.Bool:
		return "invalid", "Must be a valid boolean."
	case reflect.String:
		return "invalid", "Not a valid string."
	default:
		return "invalid", "Invalid value."
	}
}
