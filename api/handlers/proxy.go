package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// proxyUserAgent identifies the site backend to the feed provider; the
// provider rejects requests carrying browser user agents from unknown origins.
const proxyUserAgent = "RDGroupCatalog/1.0 (+https://www.rdgroupautomobili.it)"

// Proxy forwards browser requests to the third-party feed, which does not
// serve CORS headers itself.
type Proxy struct {
	UpstreamURL string
	Client      *http.Client
}

type proxyError struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// FeedProxyHandler relays the incoming query string to the feed endpoint
// verbatim and returns the XML payload with permissive CORS headers.
func (p Proxy) FeedProxyHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	upstream := p.UpstreamURL
	if r.URL.RawQuery != "" {
		upstream += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, upstream, nil)
	if err != nil {
		p.fail(w, "failed to build upstream request", err)
		return
	}
	req.Header.Set("User-Agent", proxyUserAgent)
	req.Header.Set("Accept", "application/xml, text/xml, */*")

	resp, err := p.client().Do(req)
	if err != nil {
		p.fail(w, "feed upstream unreachable", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		p.fail(w, "feed upstream returned an error status", nil)
		return
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		p.fail(w, "failed to read feed upstream body", err)
		return
	}
	if len(body) == 0 {
		p.fail(w, "feed upstream returned an empty body", nil)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func (p Proxy) fail(w http.ResponseWriter, message string, err error) {
	zap.S().With(err).Error(message)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(proxyError{
		Error:     "feed proxy failed",
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (p Proxy) client() *http.Client {
	if p.Client != nil {
		return p.Client
	}
	return &http.Client{Timeout: 30 * time.Second}
}
