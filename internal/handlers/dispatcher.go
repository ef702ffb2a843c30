package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"freshsilver-api/internal/metrics"
	"freshsilver-api/internal/services"
	"freshsilver-api/pkg/lambda"
)

// VisitorHeader carries the client generated visitor id
const VisitorHeader = "x-visitor-id"

var errInvalidBody = errors.New("request body is not valid JSON")

// routeParams holds what the dispatcher extracted from a request
type routeParams struct {
	eventID   string
	visitorID string
	body      []byte
}

type routeFunc func(ctx context.Context, params routeParams) (int, interface{}, error)

// DispatcherConfig configures routing
type DispatcherConfig struct {
	// Stage is the deployment stage segment accepted in front of every route
	Stage string
}

// Dispatcher routes framework-agnostic requests to the message and RSVP
// handlers and formats every outcome as a JSON response
type Dispatcher struct {
	messages *MessageHandler
	rsvps    *RsvpHandler
	stage    string
	logger   *logrus.Logger
}

// NewDispatcher creates a new dispatcher
func NewDispatcher(messageService services.MessageService, rsvpService services.RsvpService, config *DispatcherConfig, logger *logrus.Logger) *Dispatcher {
	if logger == nil {
		logger = logrus.New()
	}
	stage := ""
	if config != nil {
		stage = strings.Trim(config.Stage, "/")
	}

	return &Dispatcher{
		messages: NewMessageHandler(messageService),
		rsvps:    NewRsvpHandler(rsvpService),
		stage:    stage,
		logger:   logger,
	}
}

// Handle serves one request. It never fails: every error becomes a response.
func (d *Dispatcher) Handle(ctx context.Context, req *lambda.Request) *lambda.Response {
	start := time.Now()
	if req == nil {
		req = &lambda.Request{}
	}

	route, resp, err := d.dispatch(ctx, req)
	latency := time.Since(start)
	metrics.ObserveRequest(route, resp.StatusCode, latency)
	d.logRequest(req, route, resp.StatusCode, latency, err)
	return resp
}

// HandlerFunc exposes the dispatcher as a lambda.HandlerFunc
func (d *Dispatcher) HandlerFunc() lambda.HandlerFunc {
	return d.Handle
}

func (d *Dispatcher) dispatch(ctx context.Context, req *lambda.Request) (string, *lambda.Response, error) {
	// The body is checked before routing so a malformed body never reaches a store
	if len(req.Body) > 0 && !json.Valid(req.Body) {
		return "invalid_body", ErrorJSON(http.StatusBadRequest, MsgInvalidJSON), errInvalidBody
	}

	route, handle, params := d.match(strings.ToUpper(req.Method), d.stripStage(req.Path))
	if handle == nil {
		return "not_found", ErrorJSON(http.StatusNotFound, services.MsgNotFound), nil
	}
	params.body = req.Body
	if route == "create_rsvp" {
		params.visitorID = req.Header(VisitorHeader)
	}

	status, body, err := handle(ctx, params)
	if err != nil {
		return route, ErrorJSON(statusForKind(services.KindOf(err)), err.Error()), err
	}
	return route, JSONResponse(status, body), nil
}

// match resolves method and path to a route
func (d *Dispatcher) match(method, path string) (string, routeFunc, routeParams) {
	if path == "/messages" {
		switch method {
		case http.MethodGet:
			return "list_messages", d.messages.HandleList, routeParams{}
		case http.MethodPost:
			return "create_message", d.messages.HandleCreate, routeParams{}
		}
		return "", nil, routeParams{}
	}

	if !strings.HasPrefix(path, "/rsvp/") {
		return "", nil, routeParams{}
	}

	segments := strings.Split(strings.TrimPrefix(path, "/rsvp/"), "/")
	if segments[0] == "" {
		return "", nil, routeParams{}
	}
	params := routeParams{eventID: segments[0]}

	switch {
	case len(segments) == 1 && method == http.MethodGet:
		return "list_rsvps", d.rsvps.HandleList, params
	case len(segments) == 1 && method == http.MethodPost:
		return "create_rsvp", d.rsvps.HandleCreate, params
	case len(segments) == 2 && segments[1] != "" && method == http.MethodDelete:
		params.visitorID = segments[1]
		return "delete_rsvp", d.rsvps.HandleDelete, params
	}
	return "", nil, routeParams{}
}

// stripStage removes a leading "/{stage}" segment
func (d *Dispatcher) stripStage(path string) string {
	if d.stage == "" {
		return path
	}
	prefix := "/" + d.stage
	if path == prefix {
		return "/"
	}
	if strings.HasPrefix(path, prefix+"/") {
		return strings.TrimPrefix(path, prefix)
	}
	return path
}

func (d *Dispatcher) logRequest(req *lambda.Request, route string, status int, latency time.Duration, err error) {
	entry := d.logger.WithFields(logrus.Fields{
		"request_id":  req.RequestID,
		"method":      req.Method,
		"path":        req.Path,
		"route":       route,
		"status_code": status,
		"latency_ms":  float64(latency.Nanoseconds()) / 1000000,
	})
	if err != nil {
		entry = entry.WithError(err)
	}

	switch {
	case status >= 500:
		entry.Error("Request failed")
	case status >= 400:
		entry.Warn("Request rejected")
	default:
		entry.Info("Request completed")
	}
}

// decodeBody decodes an optional JSON object body into dst. A body that is
// not an object, or a field of the wrong type, is reported as invalid JSON.
func decodeBody(body []byte, dst interface{}) error {
	if len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return &services.Error{Kind: services.KindBadRequest, Message: MsgInvalidJSON, Err: err}
	}
	return nil
}
