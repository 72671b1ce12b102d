package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

func TestMetrics_RecordsRenderedStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	e := echo.New()
	e.Use(Metrics(reg))
	e.Use(RenderErrors())
	e.GET("/posts/:id", func(c echo.Context) error {
		if c.Param("id") == "missing" {
			return echo.NewHTTPError(http.StatusNotFound, "post not found")
		}
		return c.NoContent(http.StatusOK)
	})

	for _, path := range []string{"/posts/1", "/posts/2", "/posts/missing"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	counts := map[string]float64{}
	for _, mf := range families {
		if mf.GetName() != "sachcu_devapi_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			var code, url string
			for _, l := range m.GetLabel() {
				switch l.GetName() {
				case "code":
					code = l.GetValue()
				case "url":
					url = l.GetValue()
				}
			}
			if url != "/posts/:id" {
				t.Fatalf("expected route label, got %q", url)
			}
			counts[code] += m.GetCounter().GetValue()
		}
	}
	if counts["200"] != 2 || counts["404"] != 1 {
		t.Fatalf("unexpected counts %v", counts)
	}
}

func TestRenderErrors(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	h := RenderErrors()(func(echo.Context) error {
		return echo.NewHTTPError(http.StatusConflict, "taken")
	})
	if err := h(c); err != nil {
		t.Fatalf("error should be rendered, got %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}
