package handlers

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"

	"freshsilver-api/pkg/lambda"
)

// Headers carried by every response
var defaultHeaders = map[string]string{
	"Content-Type":                "application/json",
	"Access-Control-Allow-Origin": "*",
}

// numeric matches decimal wrapper types such as json.Number and
// dynamodbattribute.Number
type numeric interface {
	Int64() (int64, error)
	Float64() (float64, error)
	String() string
}

// Sanitize returns a copy of value with numeric wrappers replaced by native
// int64 or float64, recursing through maps and slices. Integral floats
// become int64.
func Sanitize(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, item := range v {
			out[key] = Sanitize(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = Sanitize(item)
		}
		return out
	case numeric:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if f, err := v.Float64(); err == nil {
			return nativeFloat(f)
		}
		return v.String()
	case float64:
		return nativeFloat(v)
	case float32:
		return nativeFloat(float64(v))
	default:
		return value
	}
}

func nativeFloat(f float64) interface{} {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return f
	}
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return int64(f)
	}
	return f
}

// JSONResponse wraps body into a response envelope. The body is reduced to a
// generic tree and sanitized before it is serialized.
func JSONResponse(statusCode int, body interface{}) *lambda.Response {
	payload, err := encodeBody(body)
	if err != nil {
		statusCode = http.StatusInternalServerError
		payload, _ = json.Marshal(ErrorResponse{Error: err.Error()})
	}

	headers := make(map[string]string, len(defaultHeaders))
	for key, value := range defaultHeaders {
		headers[key] = value
	}

	return &lambda.Response{
		StatusCode: statusCode,
		Headers:    headers,
		Body:       payload,
	}
}

// ErrorJSON builds an {"error": message} response
func ErrorJSON(statusCode int, message string) *lambda.Response {
	return JSONResponse(statusCode, ErrorResponse{Error: message})
}

func encodeBody(body interface{}) ([]byte, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	var tree interface{}
	if err := decoder.Decode(&tree); err != nil {
		return nil, err
	}

	return json.Marshal(Sanitize(tree))
}
