package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics())
	r.Get("/venues/{slug}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	ts := httptest.NewServer(r)
	defer ts.Close()

	before := testutil.ToFloat64(requestsTotal.WithLabelValues("GET", "/venues/{slug}", "200"))

	for _, slug := range []string{"cafe-ceylon", "sunset-deck"} {
		resp, err := http.Get(ts.URL + "/venues/" + slug)
		require.NoError(t, err)
		resp.Body.Close()
	}

	after := testutil.ToFloat64(requestsTotal.WithLabelValues("GET", "/venues/{slug}", "200"))
	assert.Equal(t, float64(2), after-before, "both slugs land on the one pattern series")

	perSlug := testutil.ToFloat64(requestsTotal.WithLabelValues("GET", "/venues/cafe-ceylon", "200"))
	assert.Zero(t, perSlug, "raw paths never become label values")
}
