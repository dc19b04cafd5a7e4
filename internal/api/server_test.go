package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"report-service-go/internal/domain/report"
	"report-service-go/internal/pkg/pdfgen"
	"report-service-go/internal/pkg/retry"
	"report-service-go/internal/pkg/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, st store.Store) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gen := pdfgen.NewGenerator(pdfgen.Config{}, nil, nil).
		WithClock(func() time.Time { return time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC) })
	svc := report.NewService(gen, st, retry.WithMaxAttempts(1))

	h := NewHandlers(svc, nil, nil)
	if st != nil {
		h = NewHandlers(svc, nil, st)
	}
	s := NewServer(h, DefaultConfig())
	s.SetupRoutes()
	return s
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestGenerateReport_PDF(t *testing.T) {
	s := newTestServer(t, store.NewMemory(nil))

	w := do(t, s, http.MethodPost, "/api/v1/reports",
		`{"childName":"Ana","reportType":"chaea","evaluationDate":"2024-02-01"}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="chaea_Ana_2024-03-05.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "4", w.Header().Get("X-Page-Count"))
	assert.NotEmpty(t, w.Header().Get("X-Total-Processing-Time"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestGenerateReport_NonASCIIFileName(t *testing.T) {
	s := newTestServer(t, nil)

	w := do(t, s, http.MethodPost, "/api/v1/reports", `{"childName":"María","reportType":"tam"}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t,
		`attachment; filename="tam_Mar_a_2024-03-05.pdf"; filename*=UTF-8''tam_Mar%C3%ADa_2024-03-05.pdf`,
		w.Header().Get("Content-Disposition"))
}

func TestGenerateReport_Errors(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name    string
		body    string
		status  int
		message string
	}{
		{name: "empty body", body: "", status: http.StatusBadRequest, message: "empty request body"},
		{name: "malformed json", body: "{nope", status: http.StatusBadRequest, message: "invalid JSON format"},
		{name: "bad date", body: `{"childName":"Ana","reportType":"tam","evaluationDate":"yesterday"}`, status: http.StatusBadRequest, message: "invalid request format"},
		{name: "unknown type", body: `{"childName":"Ana","reportType":"astrologia"}`, status: http.StatusBadRequest, message: "unknown report type"},
		{name: "missing child", body: `{"reportType":"tam"}`, status: http.StatusBadRequest, message: "childName is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, http.MethodPost, "/api/v1/reports", tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, decode(t, w)["error"], tt.message)
		})
	}
}

func TestGenerateReport_BodyTooLarge(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := DefaultConfig()
	cfg.MaxBodyBytes = 1 << 10
	s := NewServer(NewHandlers(report.NewService(pdfgen.NewGenerator(pdfgen.Config{}, nil, nil), nil), nil, nil), cfg)
	s.SetupRoutes()

	body := `{"childName":"` + strings.Repeat("a", 4<<10) + `","reportType":"tam"}`
	w := do(t, s, http.MethodPost, "/api/v1/reports", body)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, decode(t, w)["error"], "exceeds 1024 bytes")

	w = do(t, s, http.MethodPut, "/api/v1/settings", `{"header_text":"`+strings.Repeat("b", 4<<10)+`"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestReportTypes(t *testing.T) {
	s := newTestServer(t, nil)

	w := do(t, s, http.MethodGet, "/api/v1/report-types", "")
	require.Equal(t, http.StatusOK, w.Code)

	types := decode(t, w)["report_types"].([]any)
	require.Len(t, types, 6)
	assert.Equal(t, "motricidad", types[0].(map[string]any)["id"])
}

func TestEffectiveSettings(t *testing.T) {
	s := newTestServer(t, nil)

	w := do(t, s, http.MethodGet, "/api/v1/report-types/chaea/settings", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Reporte de Estilos de Aprendizaje CHAEA", body["header_text"])
	assert.Equal(t, "minimal", body["template"])

	w = do(t, s, http.MethodGet, "/api/v1/report-types/astrologia/settings", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestContentTemplates(t *testing.T) {
	s := newTestServer(t, nil)

	w := do(t, s, http.MethodGet, "/api/v1/content-templates", "")
	require.Equal(t, http.StatusOK, w.Code)

	list := decode(t, w)["content_templates"].([]any)
	require.Len(t, list, 3)
	first := list[0].(map[string]any)
	assert.Equal(t, "formal", first["id"])
	assert.Contains(t, first["prefill"], "content_introduction_text")

	w = do(t, s, http.MethodGet, "/api/v1/content-templates/technical", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "technical", decode(t, w)["id"])

	w = do(t, s, http.MethodGet, "/api/v1/content-templates/poetic", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSettings_RoundTrip(t *testing.T) {
	s := newTestServer(t, store.NewMemory(nil))

	w := do(t, s, http.MethodGet, "/api/v1/settings", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"dynamic_content": map[string]any{}}, decode(t, w))

	w = do(t, s, http.MethodPut, "/api/v1/settings",
		`{"primary_color":"#112233","dynamic_content":{"header_text":"Informe Anual"}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, s, http.MethodGet, "/api/v1/settings", "")
	body := decode(t, w)
	assert.Equal(t, "#112233", body["primary_color"])
	assert.Equal(t, "Informe Anual", body["dynamic_content"].(map[string]any)["header_text"])

	w = do(t, s, http.MethodGet, "/api/v1/report-types/tam/settings", "")
	body = decode(t, w)
	assert.Equal(t, "Informe Anual", body["header_text"])
	assert.Equal(t, "#112233", body["primary_color"])
}

func TestSettings_Rejected(t *testing.T) {
	s := newTestServer(t, store.NewMemory(nil))

	w := do(t, s, http.MethodPut, "/api/v1/settings", `{"primary_color":"teal"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodPut, "/api/v1/settings", `{"template":"baroque"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSettings_NoStore(t *testing.T) {
	s := newTestServer(t, nil)

	w := do(t, s, http.MethodGet, "/api/v1/settings", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, s, http.MethodPut, "/api/v1/settings", `{"header_text":"X"}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHealth(t *testing.T) {
	w := do(t, newTestServer(t, store.NewMemory(nil)), http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "up", body["details"].(map[string]any)["settings_store"])

	w = do(t, newTestServer(t, nil), http.MethodGet, "/health", "")
	body = decode(t, w)
	assert.Equal(t, "not_configured", body["details"].(map[string]any)["settings_store"])
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, nil)
	do(t, s, http.MethodGet, "/api/v1/report-types", "")

	w := do(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}
