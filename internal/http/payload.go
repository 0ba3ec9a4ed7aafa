package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// readOnlyFields are never taken from a request body.
var readOnlyFields = map[string]bool{
	"IsDeleted":     true,
	"CreatedOn":     true,
	"UpdatedOn":     true,
	"SearchKeys":    true,
	"id":            true,
	"inserted_date": true,
	"created_at":    true,
}

// payload holds the fields of a create or update request. The admin panel
// posts JSON; forms carrying files post multipart.
type payload struct {
	fields map[string]any
	files  map[string]*multipart.FileHeader
}

// maxTextBody bounds the text fields of one request, long article content
// included.
const maxTextBody = 8 << 20

// limitBody stops reading the request body after limit bytes. Reads past it
// fail with *http.MaxBytesError.
func limitBody(c *gin.Context, limit int64) {
	if c.Request.Body != nil {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
	}
}

// bodyTooLarge reports whether err came from a body cut off by limitBody.
func bodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr) || strings.Contains(fmt.Sprint(err), "request body too large")
}

// respondPayloadError answers a body that could not be read.
func respondPayloadError(c *gin.Context, err error) {
	if bodyTooLarge(err) {
		respondError(c, http.StatusRequestEntityTooLarge, "body_too_large", "request body too large")
		return
	}
	respondBadRequest(c, "invalid request body")
}

// readPayload parses the body, reading at most limit bytes.
func readPayload(c *gin.Context, limit int64) (*payload, error) {
	limitBody(c, limit)
	p := &payload{
		fields: make(map[string]any),
		files:  make(map[string]*multipart.FileHeader),
	}

	switch c.ContentType() {
	case gin.MIMEMultipartPOSTForm:
		form, err := c.MultipartForm()
		if err != nil {
			return nil, fmt.Errorf("parse multipart form: %w", err)
		}
		for key, values := range form.Value {
			if len(values) > 0 {
				p.fields[key] = values[0]
			}
		}
		for key, headers := range form.File {
			if len(headers) > 0 {
				p.files[key] = headers[0]
			}
		}
	case gin.MIMEPOSTForm:
		if err := c.Request.ParseForm(); err != nil {
			return nil, fmt.Errorf("parse form: %w", err)
		}
		for key, values := range c.Request.PostForm {
			if len(values) > 0 {
				p.fields[key] = values[0]
			}
		}
	default:
		if c.Request.Body == nil {
			return p, nil
		}
		dec := json.NewDecoder(c.Request.Body)
		dec.UseNumber()
		if err := dec.Decode(&p.fields); err != nil {
			if errors.Is(err, io.EOF) {
				return p, nil
			}
			return nil, fmt.Errorf("decode json: %w", err)
		}
		if p.fields == nil {
			p.fields = make(map[string]any)
		}
	}

	return p, nil
}

// empty reports whether the request carried no fields and no files.
func (p *payload) empty() bool {
	return len(p.fields) == 0 && len(p.files) == 0
}

// applyTo overlays the request fields onto dst, a pointer to an entity.
// Fields absent from the request keep their current value. Keys are the
// entity's JSON names; unknown and read-only keys are ignored, as is the
// primary key named by idField. Form values arrive as strings and are
// converted to the type of the field they replace.
func (p *payload) applyTo(dst any, idField string) error {
	current, err := toFieldMap(dst)
	if err != nil {
		return err
	}

	for key, value := range p.fields {
		existing, known := current[key]
		if !known || readOnlyFields[key] || key == idField {
			continue
		}
		converted, err := coerce(value, existing)
		if err != nil {
			return &fieldError{Field: key, Err: err}
		}
		current[key] = converted
	}

	merged, err := json.Marshal(current)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(merged, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return &fieldError{Field: typeErr.Field, Err: err}
		}
		return err
	}
	return nil
}

// fieldError reports a request value that does not fit its column.
type fieldError struct {
	Field string
	Err   error
}

func (e *fieldError) Error() string {
	return "invalid value for " + e.Field
}

func (e *fieldError) Unwrap() error {
	return e.Err
}

// missingFields returns the required fields of row that are absent, empty
// or zero.
func missingFields(row any, required []string) []string {
	fields, err := toFieldMap(row)
	if err != nil {
		return required
	}

	var missing []string
	for _, name := range required {
		if isBlank(fields[name]) {
			missing = append(missing, name)
		}
	}
	return missing
}

func isBlank(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case json.Number:
		f, err := v.Float64()
		return err != nil || f == 0
	case bool:
		return !v
	default:
		return false
	}
}

func toFieldMap(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	fields := make(map[string]any)
	if err := dec.Decode(&fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// coerce converts value to the JSON kind of existing.
func coerce(value, existing any) (any, error) {
	switch existing.(type) {
	case json.Number:
		switch v := value.(type) {
		case nil:
			return json.Number("0"), nil
		case json.Number:
			return v, nil
		case bool:
			if v {
				return json.Number("1"), nil
			}
			return json.Number("0"), nil
		case string:
			s := strings.TrimSpace(v)
			if s == "" {
				return json.Number("0"), nil
			}
			if _, err := strconv.ParseFloat(s, 64); err != nil {
				return nil, errors.New("not a number")
			}
			return json.Number(s), nil
		}
		return nil, errors.New("not a number")
	case bool:
		switch v := value.(type) {
		case nil:
			return false, nil
		case bool:
			return v, nil
		case json.Number:
			return v.String() != "0", nil
		case string:
			s := strings.TrimSpace(v)
			if s == "" {
				return false, nil
			}
			b, err := strconv.ParseBool(s)
			if err != nil {
				return nil, errors.New("not a boolean")
			}
			return b, nil
		}
		return nil, errors.New("not a boolean")
	case string:
		switch v := value.(type) {
		case nil:
			return "", nil
		case string:
			return v, nil
		case json.Number:
			return v.String(), nil
		case bool:
			return strconv.FormatBool(v), nil
		}
		return nil, errors.New("not a string")
	default:
		return value, nil
	}
}
