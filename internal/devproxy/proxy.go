// Package devproxy forwards /api/* to the API server with the prefix removed.
// It stands in for the frontend dev server proxy during local development.
package devproxy

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"gymstudio/internal/pkg/response"
	"gymstudio/pkg/envelope"
)

const Prefix = "/api"

// New returns a handler proxying /api and /api/... to target.
func New(target string) (http.Handler, error) {
	u, err := url.Parse(strings.TrimSpace(target))
	if err != nil {
		return nil, fmt.Errorf("parse proxy target: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("proxy target must be an absolute http(s) URL, got %q", target)
	}

	proxy := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.Out.URL.Path = StripPrefix(pr.In.URL.Path)
			pr.Out.URL.RawPath = ""
			pr.SetURL(u)
			pr.SetXForwarded()
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			log.Error().Err(err).Str("path", r.URL.Path).Str("target", u.String()).Msg("devproxy upstream failed")
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusBadGateway)
			_ = json.NewEncoder(w).Encode(envelope.Failure("BAD_GATEWAY", "API server unreachable", envelope.ShowNotification))
		},
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.NoRoute(func(c *gin.Context) {
		if !matches(c.Request.URL.Path) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Only "+Prefix+" paths are proxied")
			return
		}
		proxy.ServeHTTP(c.Writer, c.Request)
	})
	return r, nil
}

func matches(path string) bool {
	return path == Prefix || strings.HasPrefix(path, Prefix+"/")
}

// StripPrefix maps /api/foo to /foo and /api to /.
func StripPrefix(path string) string {
	rest := strings.TrimPrefix(path, Prefix)
	if rest == "" {
		return "/"
	}
	return rest
}
