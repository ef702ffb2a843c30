package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"freshsilver-api/pkg/lambda"
)

// requestIDKey matches the key set by the request id middleware
const requestIDKey = "request_id"

// GinHandler adapts the dispatcher to gin so the local server runs the same
// routing as the Lambda entrypoint
func GinHandler(d *Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := FromGinContext(c)
		if err != nil {
			writeResponse(c, ErrorJSON(http.StatusBadRequest, err.Error()))
			return
		}
		writeResponse(c, d.Handle(c.Request.Context(), req))
	}
}

// FromGinContext builds a lambda.Request from an incoming gin request
func FromGinContext(c *gin.Context) (*lambda.Request, error) {
	var body []byte
	if c.Request.Body != nil {
		var err error
		body, err = io.ReadAll(c.Request.Body)
		if err != nil {
			return nil, err
		}
	}

	headers := make(map[string]string, len(c.Request.Header))
	for name, values := range c.Request.Header {
		if len(values) > 0 {
			headers[name] = values[0]
		}
	}

	query := make(map[string]string)
	for name, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			query[name] = values[0]
		}
	}

	return &lambda.Request{
		Method:      c.Request.Method,
		Path:        c.Request.URL.EscapedPath(),
		Headers:     headers,
		QueryParams: query,
		Body:        body,
		RequestID:   c.GetString(requestIDKey),
	}, nil
}

func writeResponse(c *gin.Context, resp *lambda.Response) {
	for name, value := range resp.Headers {
		c.Header(name, value)
	}
	c.Data(resp.StatusCode, resp.Headers["Content-Type"], resp.Body)
}
