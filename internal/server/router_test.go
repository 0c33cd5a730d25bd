package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"grcwalk/internal/config"
	"grcwalk/internal/models"
	"grcwalk/internal/repository/memory"
	"grcwalk/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
	svc    *service.Service
}

func newTestServer(t *testing.T, authEnabled bool) *testServer {
	t.Helper()
	cfg := &config.Config{SessionSecret: "test-secret", AuthEnabled: authEnabled}
	svc := service.New(memory.New(), service.WithBcryptCost(bcrypt.MinCost))
	return &testServer{t: t, router: NewRouter(cfg, svc, prometheus.NewRegistry()), svc: svc}
}

func (s *testServer) do(method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	s.t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

const riskBody = `{"name":"Data Breach","description":"Customer data leak","category":"Cyber","likelihood":4,"impact":5}`

func TestHealth(t *testing.T) {
	s := newTestServer(t, false)
	for _, path := range []string{"/health", "/api/health"} {
		w := s.do(http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"OK","message":"GRCWalk API is running"}`, w.Body.String())
	}
}

func TestRiskLifecycle(t *testing.T) {
	s := newTestServer(t, false)

	w := s.do(http.MethodPost, "/api/risks", riskBody)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	risk := decode[models.Risk](t, w)
	assert.NotEmpty(t, risk.ID)
	assert.Equal(t, models.LevelCritical, risk.Level)
	assert.Equal(t, []string{}, risk.ControlIDs)

	w = s.do(http.MethodGet, "/api/risks?search=BREACH&level=Critical", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Risk](t, w), 1)

	w = s.do(http.MethodGet, "/api/risks?category=Finance", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	// level из тела игнорируется и пересчитывается
	w = s.do(http.MethodPut, "/api/risks/"+risk.ID, `{"likelihood":1,"level":"Critical"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.LevelMedium, decode[models.Risk](t, w).Level)

	w = s.do(http.MethodGet, "/api/risks/categories", "")
	assert.JSONEq(t, `["Cyber"]`, w.Body.String())

	w = s.do(http.MethodGet, "/api/risks/recent?limit=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Risk](t, w), 1)

	w = s.do(http.MethodDelete, "/api/risks/"+risk.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Risk deleted successfully"}`, w.Body.String())

	w = s.do(http.MethodGet, "/api/risks/"+risk.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Risk not found"}`, w.Body.String())
}

func TestBadRequests(t *testing.T) {
	s := newTestServer(t, false)

	w := s.do(http.MethodPost, "/api/risks", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/risks", `{"name":"A","description":"B","category":"C","likelihood":7,"impact":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"likelihood must be at most 5"}`, w.Body.String())

	w = s.do(http.MethodPost, "/api/controls", `{"name":"MFA","type":"Preventive","status":"Implemented","effectiveness":3,"riskIds":["nope"]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown id")

	w = s.do(http.MethodGet, "/api/risks/recent?limit=x", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestControlLinksAreSymmetricOverHTTP(t *testing.T) {
	s := newTestServer(t, false)
	risk := decode[models.Risk](t, s.do(http.MethodPost, "/api/risks", riskBody))

	w := s.do(http.MethodPost, "/api/controls",
		`{"name":"MFA","type":"Preventive","status":"Implemented","effectiveness":3,"riskIds":["`+risk.ID+`"]}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	ctl := decode[models.Control](t, w)

	got := decode[models.Risk](t, s.do(http.MethodGet, "/api/risks/"+risk.ID, ""))
	assert.Equal(t, []string{ctl.ID}, got.ControlIDs)

	require.Equal(t, http.StatusOK, s.do(http.MethodDelete, "/api/controls/"+ctl.ID, "").Code)
	got = decode[models.Risk](t, s.do(http.MethodGet, "/api/risks/"+risk.ID, ""))
	assert.Empty(t, got.ControlIDs)
}

func TestBowTieRoutes(t *testing.T) {
	s := newTestServer(t, false)
	risk := decode[models.Risk](t, s.do(http.MethodPost, "/api/risks", riskBody))

	w := s.do(http.MethodPost, "/api/bowtie/factors", `{"name":"Phishing","riskIds":["`+risk.ID+`"]}`)
	require.Equal(t, http.StatusCreated, w.Code)
	factor := decode[models.RiskFactor](t, w)

	body := `{"riskId":"` + risk.ID + `","factorIds":["` + factor.ID + `"],"consequenceIds":[]}`
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/bowtie/relationships", body).Code)

	w = s.do(http.MethodPost, "/api/bowtie/relationships", body)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"Bow-tie relationship already exists"}`, w.Body.String())

	w = s.do(http.MethodGet, "/api/bowtie/risks/"+risk.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	d := decode[models.BowTieDiagram](t, w)
	require.NotNil(t, d.Relationship)
	require.Len(t, d.Factors, 1)
	assert.Equal(t, "Phishing", d.Factors[0].Name)
	assert.Empty(t, d.Consequences)

	w = s.do(http.MethodGet, "/api/bowtie/factors?riskId="+risk.ID, "")
	assert.Len(t, decode[[]models.RiskFactor](t, w), 1)
}

func TestPlanSubresources(t *testing.T) {
	s := newTestServer(t, false)

	w := s.do(http.MethodPost, "/api/action-plans",
		`{"title":"Patch","status":"Not Started","priority":"High","tasks":[{"title":"Inventory"}]}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	plan := decode[models.ActionPlan](t, w)
	require.Len(t, plan.Tasks, 1)

	w = s.do(http.MethodPost, "/api/action-plans/"+plan.ID+"/comments", `{"content":"Started","author":"ann"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, decode[models.ActionPlan](t, w).Comments, 1)

	w = s.do(http.MethodPut, "/api/action-plans/"+plan.ID+"/tasks/"+plan.Tasks[0].ID, `{"completed":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[models.ActionPlan](t, w).Tasks[0].Completed)

	w = s.do(http.MethodPut, "/api/action-plans/"+plan.ID+"/tasks/missing", `{"completed":true}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodPost, "/api/audit-plans", `{"title":"Annual","status":"Planned"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	audit := decode[models.AuditPlan](t, w)

	w = s.do(http.MethodPost, "/api/audit-plans/"+audit.ID+"/findings", `{"title":"Stale accounts","severity":"High"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	got := decode[models.AuditPlan](t, w)
	require.Len(t, got.Findings, 1)
	assert.Equal(t, models.ActionNotStarted, got.Findings[0].Status)
}

func TestExportImport(t *testing.T) {
	src := newTestServer(t, false)
	require.Equal(t, http.StatusCreated, src.do(http.MethodPost, "/api/risks", riskBody).Code)

	w := src.do(http.MethodGet, "/api/risks/export", "")
	require.Equal(t, http.StatusOK, w.Code)
	disposition := w.Header().Get("Content-Disposition")
	assert.Contains(t, disposition, `filename="risks-`)
	assert.Contains(t, disposition, `.json"`)
	exported := w.Body.String()

	dst := newTestServer(t, false)
	w = dst.do(http.MethodPost, "/api/risks/import", exported)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"message":"Imported 1 risks","count":1}`, w.Body.String())

	w = dst.do(http.MethodPost, "/api/risks/import", `[{"name":"A","likelihood":1,"impact":1}]`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "element 0")

	w = dst.do(http.MethodPost, "/api/risks/import", `{"name":"A"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Len(t, decode[[]models.Risk](t, dst.do(http.MethodGet, "/api/risks", "")), 1)
}

func TestDashboardAndHeatmap(t *testing.T) {
	s := newTestServer(t, false)
	_, err := s.svc.Seed(context.Background())
	require.NoError(t, err)

	w := s.do(http.MethodGet, "/api/dashboard", "")
	require.Equal(t, http.StatusOK, w.Code)
	var d map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &d))
	assert.EqualValues(t, 5, d["totalRisks"])
	assert.EqualValues(t, 75, d["implementedPercentage"])

	w = s.do(http.MethodGet, "/api/heatmap", "")
	require.Equal(t, http.StatusOK, w.Code)
	var cells []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cells))
	assert.Len(t, cells, 25)

	w = s.do(http.MethodGet, "/api/compliance/frameworks", "")
	assert.JSONEq(t, `["ISO 27001"]`, w.Body.String())
}

func TestAuthEnabled(t *testing.T) {
	s := newTestServer(t, true)
	ctx := context.Background()
	require.NoError(t, s.svc.EnsureAdmin(ctx, "admin", "admin-pass"))
	_, err := s.svc.CreateUser(ctx, models.UserInput{Username: "viewer", Password: "viewer-pass"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/risks", "").Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/health", "").Code)

	w := s.do(http.MethodPost, "/api/auth/login", `{"username":"admin","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/auth/login", `{"username":"viewer","password":"viewer-pass"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
	viewer := w.Result().Cookies()

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/risks", "", viewer...).Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodPost, "/api/risks", riskBody, viewer...).Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/api/users", "", viewer...).Code)

	w = s.do(http.MethodGet, "/api/auth/me", "", viewer...)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "viewer", decode[models.User](t, w).Username)

	w = s.do(http.MethodPost, "/api/auth/login", `{"username":"admin","password":"admin-pass"}`)
	require.Equal(t, http.StatusOK, w.Code)
	admin := w.Result().Cookies()

	assert.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/risks", riskBody, admin...).Code)

	w = s.do(http.MethodPost, "/api/users", `{"username":"ann","password":"secret1","role":"analyst"}`, admin...)
	assert.Equal(t, http.StatusCreated, w.Code)
	w = s.do(http.MethodPost, "/api/users", `{"username":"ann","password":"secret1"}`, admin...)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodPost, "/api/auth/logout", "", admin...)
	require.Equal(t, http.StatusOK, w.Code)
	loggedOut := w.Result().Cookies()
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/risks", "", loggedOut...).Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, false)
	s.do(http.MethodGet, "/api/health", "")

	w := s.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `grcwalk_http_requests_total{method="GET",route="/api/health",status="200"} 1`)
	assert.Contains(t, w.Body.String(), "grcwalk_http_request_duration_seconds")
}
