package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestGinHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	d, store := newTestDispatcher(t)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(requestIDKey, "req-42")
		c.Next()
	})
	router.NoRoute(GinHandler(d))

	w := httptest.NewRecorder()
	httpReq := httptest.NewRequest(http.MethodPost, "/prod/rsvp/hike", strings.NewReader(`{"name":"Ana"}`))
	httpReq.Header.Set("X-Visitor-Id", "v7")
	router.ServeHTTP(w, httpReq)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	var body map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "hike-v7", body["rsvp"]["id"])
	require.Equal(t, 1, store.RsvpCount("hike"))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/unknown", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
	require.JSONEq(t, `{"error":"Not found"}`, w.Body.String())
}

func TestFromGinContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/rsvp/hike?limit=5", nil)
	c.Request.Header.Set("X-Visitor-Id", "v1")
	c.Set(requestIDKey, "abc")

	req, err := FromGinContext(c)
	require.NoError(t, err)
	require.Equal(t, "GET", req.Method)
	require.Equal(t, "/rsvp/hike", req.Path)
	require.Equal(t, "5", req.QueryParams["limit"])
	require.Equal(t, "v1", req.Header("x-visitor-id"))
	require.Equal(t, "abc", req.RequestID)
	require.Empty(t, req.Body)
}
