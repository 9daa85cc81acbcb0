package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeedProxyHandlerForwardsQueryAndHeaders(t *testing.T) {
	var gotQuery, gotUserAgent string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/xml")
		w.Write([]byte(`<?xml version="1.0"?><vehicles></vehicles>`))
	}))
	defer upstream.Close()

	p := Proxy{UpstreamURL: upstream.URL}
	req := httptest.NewRequest("GET", "/api/feed-proxy?client_code=abc123&engine=gestionaleauto", nil)
	w := httptest.NewRecorder()
	p.FeedProxyHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "client_code=abc123&engine=gestionaleauto", gotQuery)
	assert.Equal(t, proxyUserAgent, gotUserAgent)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "public, max-age=300", w.Header().Get("Cache-Control"))
	assert.Equal(t, "application/xml; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "<vehicles>")
}

func TestFeedProxyHandlerOptionsPreflight(t *testing.T) {
	p := Proxy{UpstreamURL: "http://feed.invalid"}
	req := httptest.NewRequest("OPTIONS", "/api/feed-proxy", nil)
	w := httptest.NewRecorder()
	p.FeedProxyHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Empty(t, w.Body.String())
}

func TestFeedProxyHandlerUpstreamErrorStatus(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer upstream.Close()

	p := Proxy{UpstreamURL: upstream.URL}
	req := httptest.NewRequest("GET", "/api/feed-proxy", nil)
	w := httptest.NewRecorder()
	p.FeedProxyHandler(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body proxyError
	err := json.Unmarshal(w.Body.Bytes(), &body)
	assert.NoError(t, err)
	assert.Equal(t, "feed proxy failed", body.Error)
	assert.NotEmpty(t, body.Timestamp)
}

func TestFeedProxyHandlerEmptyUpstreamBody(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer upstream.Close()

	p := Proxy{UpstreamURL: upstream.URL}
	req := httptest.NewRequest("GET", "/api/feed-proxy", nil)
	w := httptest.NewRecorder()
	p.FeedProxyHandler(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "empty body")
}

func TestFeedProxyHandlerUnreachableUpstream(t *testing.T) {
	p := Proxy{UpstreamURL: "http://127.0.0.1:1"}
	req := httptest.NewRequest("GET", "/api/feed-proxy", nil)
	w := httptest.NewRecorder()
	p.FeedProxyHandler(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "unreachable")
}
