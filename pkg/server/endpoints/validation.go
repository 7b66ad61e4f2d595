package endpoints

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	maxBodyBytes = 1 << 20
	notAnObject  = "Input should be a valid dictionary or object to extract fields from"
)

// ValidationError describes one invalid request field
type ValidationError struct {
	Loc  []interface{} `json:"loc"`
	Msg  string        `json:"msg"`
	Type string        `json:"type"`
}

// ValidationResponse is the 422 body
type ValidationResponse struct {
	Detail []ValidationError `json:"detail"`
}

func respondWithValidation(w http.ResponseWriter, errs []ValidationError) {
	respondWithJSON(w, http.StatusUnprocessableEntity, ValidationResponse{Detail: errs})
}

// bodyFields reads a JSON object body into its raw fields
type bodyFields struct {
	raw  map[string]json.RawMessage
	errs []ValidationError
}

func readBody(r *http.Request) *bodyFields {
	b := &bodyFields{}
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		b.fail([]interface{}{"body"}, "Unable to read request body", "body_read")
		return b
	}

	if len(bytes.TrimSpace(data)) == 0 {
		b.fail([]interface{}{"body"}, "Field required", "missing")
		return b
	}
	if err := json.Unmarshal(data, &b.raw); err != nil {
		b.raw = nil
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			b.fail([]interface{}{"body"}, notAnObject, "model_attributes_type")
			return b
		}
		b.fail([]interface{}{"body", 0}, "JSON decode error", "json_invalid")
		return b
	}
	if b.raw == nil {
		b.fail([]interface{}{"body"}, notAnObject, "model_attributes_type")
	}
	return b
}

func (b *bodyFields) fail(loc []interface{}, msg, typ string) {
	b.errs = append(b.errs, ValidationError{Loc: loc, Msg: msg, Type: typ})
}

// ok reports whether the body is an object; field errors are collected separately
func (b *bodyFields) ok() bool {
	return b.raw != nil
}

func (b *bodyFields) lookup(name string) (json.RawMessage, bool) {
	v, present := b.raw[name]
	return v, present
}

// String reads a required string field
func (b *bodyFields) String(name string) string {
	v, present := b.lookup(name)
	if !present {
		b.fail([]interface{}{"body", name}, "Field required", "missing")
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil || string(v) == "null" {
		b.fail([]interface{}{"body", name}, "Input should be a valid string", "string_type")
		return ""
	}
	return s
}

// OptionalString reads a string field that may be absent or null
func (b *bodyFields) OptionalString(name string) *string {
	v, present := b.lookup(name)
	if !present || string(v) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		b.fail([]interface{}{"body", name}, "Input should be a valid string", "string_type")
		return nil
	}
	return &s
}

// Int reads a required integer field. Integral numbers such as 4.0 and
// numeric strings such as "4" are accepted. Integers too large for int
// saturate to math.MaxInt or math.MinInt so range checks still reject them.
func (b *bodyFields) Int(name string) int {
	loc := []interface{}{"body", name}
	v, present := b.lookup(name)
	if !present {
		b.fail(loc, "Field required", "missing")
		return 0
	}

	dec := json.NewDecoder(bytes.NewReader(v))
	dec.UseNumber()
	var decoded interface{}
	if err := dec.Decode(&decoded); err != nil {
		b.fail(loc, "Input should be a valid integer", "int_type")
		return 0
	}

	switch val := decoded.(type) {
	case json.Number:
		n, err := strconv.ParseInt(val.String(), 10, 64)
		if err == nil {
			return saturate(n)
		}
		if errors.Is(err, strconv.ErrRange) {
			return saturateSign(val.String())
		}
		f, err := val.Float64()
		if err != nil || math.IsInf(f, 0) {
			b.fail(loc, "Input should be a finite number", "finite_number")
			return 0
		}
		if f != math.Trunc(f) {
			b.fail(loc, "Input should be a valid integer, got a number with a fractional part", "int_from_float")
			return 0
		}
		if f >= math.MaxInt64 || f <= math.MinInt64 {
			return saturateSign(val.String())
		}
		return saturate(int64(f))
	case string:
		digits := strings.TrimSpace(val)
		if dot := strings.IndexByte(digits, '.'); dot >= 0 && strings.Trim(digits[dot+1:], "0") == "" {
			digits = digits[:dot]
		}
		n, err := strconv.ParseInt(digits, 10, 64)
		if err == nil {
			return saturate(n)
		}
		if errors.Is(err, strconv.ErrRange) {
			return saturateSign(digits)
		}
		b.fail(loc, "Input should be a valid integer, unable to parse string as an integer", "int_parsing")
		return 0
	default:
		b.fail(loc, "Input should be a valid integer", "int_type")
		return 0
	}
}

func saturate(n int64) int {
	if n > math.MaxInt {
		return math.MaxInt
	}
	if n < math.MinInt {
		return math.MinInt
	}
	return int(n)
}

func saturateSign(number string) int {
	if strings.HasPrefix(number, "-") {
		return math.MinInt
	}
	return math.MaxInt
}

// Errors returns the collected validation errors
func (b *bodyFields) Errors() []ValidationError {
	return b.errs
}

// queryInt parses an optional non-negative integer query parameter
func queryInt(q url.Values, name string, errs *[]ValidationError) int {
	raw := q.Get(name)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		*errs = append(*errs, ValidationError{
			Loc:  []interface{}{"query", name},
			Msg:  "Input should be a valid integer, unable to parse string as an integer",
			Type: "int_parsing",
		})
		return 0
	}
	if n < 0 {
		*errs = append(*errs, ValidationError{
			Loc:  []interface{}{"query", name},
			Msg:  "Input should be greater than or equal to 0",
			Type: "greater_than_equal",
		})
		return 0
	}
	return n
}
