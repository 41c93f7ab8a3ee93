package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"warehouseManagement/internal/access"
	"warehouseManagement/internal/forecast"
	"warehouseManagement/internal/httpapi"
	"warehouseManagement/internal/inventory"
	"warehouseManagement/internal/session"
	"warehouseManagement/internal/testutil"
	"warehouseManagement/models"
	"warehouseManagement/repository"
)

// Make sure Gin does not spam the console during the tests.
func init() {
	gin.SetMode(gin.TestMode)
}

const testSecret = "test-secret"

func newTestRouter(t *testing.T, name string) (*gin.Engine, *access.Service) {
	t.Helper()
	d := testutil.OpenInMemoryDB(t, name)
	users := repository.NewUserRepository(d)
	items := repository.NewInventoryRepository(d)

	acc := access.NewService(users)
	if err := acc.EnsureAdmin(context.Background(), ""); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	h := httpapi.NewHandler(acc, inventory.NewService(items), forecast.NewService(items),
		session.NewRegistry(), testSecret, time.Hour)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return httpapi.NewRouter(log, "dev", h, testSecret, d.Ping), acc
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		testutil.SetBearer(req, token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func login(t *testing.T, r *gin.Engine, username, password string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/login", "", gin.H{"username": username, "password": password})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: status %d body %s", username, w.Code, w.Body.String())
	}
	tok, _ := decode(t, w)["token"].(string)
	if tok == "" {
		t.Fatalf("login %s: empty token", username)
	}
	return tok
}

func errCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	env, _ := decode(t, w)["error"].(map[string]any)
	code, _ := env["code"].(string)
	return code
}

func TestLogin(t *testing.T) {
	r, _ := newTestRouter(t, "httplogin")

	// Wrong password and unknown username fail identically.
	for _, creds := range []gin.H{
		{"username": "admin", "password": "wrong"},
		{"username": "ghost", "password": "wrong"},
	} {
		w := doJSON(t, r, http.MethodPost, "/api/login", "", creds)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", w.Code)
		}
		if errCode(t, w) != "invalid_credentials" {
			t.Fatalf("code = %q, want invalid_credentials", errCode(t, w))
		}
	}

	w := doJSON(t, r, http.MethodPost, "/api/login", "", gin.H{"username": "admin", "password": access.DefaultAdminPassword})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body %s", w.Code, w.Body.String())
	}
	resp := decode(t, w)
	user, _ := resp["user"].(map[string]any)
	if user["role"] != "admin" {
		t.Fatalf("unexpected user payload: %+v", resp)
	}
	sess, _ := resp["session"].(map[string]any)
	if sess["active_view"] != "inventory" {
		t.Fatalf("login must land on inventory view: %+v", sess)
	}
}

func TestAuthRequired(t *testing.T) {
	r, _ := newTestRouter(t, "httpauthreq")

	w := doJSON(t, r, http.MethodGet, "/api/inventory", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/inventory", "garbage-token", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 for bad token", w.Code)
	}
}

func TestInventoryFlow(t *testing.T) {
	r, _ := newTestRouter(t, "httpinv")
	tok := login(t, r, "admin", access.DefaultAdminPassword)

	// Save, then overwrite the same item.
	w := doJSON(t, r, http.MethodPost, "/api/inventory", tok, gin.H{"item": "Widget", "category": "Hardware", "stock": 5, "reorder_level": 10})
	if w.Code != http.StatusOK {
		t.Fatalf("save: status %d body %s", w.Code, w.Body.String())
	}
	w = doJSON(t, r, http.MethodPost, "/api/inventory", tok, gin.H{"item": "Widget", "category": "Tools", "stock": 42, "reorder_level": 7})
	if w.Code != http.StatusOK {
		t.Fatalf("save again: status %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/inventory", tok, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: status %d", w.Code)
	}
	items, _ := decode(t, w)["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("expected one row after two saves, got %d", len(items))
	}
	row, _ := items[0].(map[string]any)
	if row["category"] != "Tools" || row["stock"] != float64(42) {
		t.Fatalf("second save did not replace the row: %+v", row)
	}

	// Negative quantities are rejected at the boundary.
	w = doJSON(t, r, http.MethodPost, "/api/inventory", tok, gin.H{"item": "Bad", "stock": -1, "reorder_level": 0})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("negative stock: status %d, want 400", w.Code)
	}
	if errCode(t, w) != "invalid_request" {
		t.Fatalf("code = %q, want invalid_request", errCode(t, w))
	}
}

func TestAnalysisAndForecast(t *testing.T) {
	r, _ := newTestRouter(t, "httpanalysis")
	tok := login(t, r, "admin", access.DefaultAdminPassword)

	for _, it := range []gin.H{
		{"item": "Bolt", "category": "Hardware", "stock": 3, "reorder_level": 10},
		{"item": "Nut", "category": "Hardware", "stock": 10, "reorder_level": 10},
		{"item": "Screw", "category": "Hardware", "stock": 11, "reorder_level": 10},
	} {
		if w := doJSON(t, r, http.MethodPost, "/api/inventory", tok, it); w.Code != http.StatusOK {
			t.Fatalf("seed: status %d body %s", w.Code, w.Body.String())
		}
	}

	w := doJSON(t, r, http.MethodGet, "/api/inventory/low-stock", tok, nil)
	low, _ := decode(t, w)["items"].([]any)
	if len(low) != 2 {
		t.Fatalf("low stock len = %d, want 2 (boundary included)", len(low))
	}

	w = doJSON(t, r, http.MethodGet, "/api/inventory/summary", tok, nil)
	sum := decode(t, w)
	if sum["total_items"] != float64(3) || sum["low_stock_items"] != float64(2) {
		t.Fatalf("unexpected summary: %+v", sum)
	}

	w = doJSON(t, r, http.MethodGet, "/api/forecast", tok, nil)
	fc, _ := decode(t, w)["forecast"].([]any)
	if len(fc) != 3 {
		t.Fatalf("forecast len = %d, want 3", len(fc))
	}
	first, _ := fc[0].(map[string]any)
	if first["item"] != "Bolt" || first["projected_stock"] != float64(13) {
		t.Fatalf("unexpected projection: %+v", first)
	}
}

func TestAdminGate(t *testing.T) {
	r, acc := newTestRouter(t, "httpadmin")

	if err := acc.CreateUser(context.Background(), "carol", "pw", models.RoleUser); err != nil {
		t.Fatalf("create user: %v", err)
	}

	userTok := login(t, r, "carol", "pw")
	adminTok := login(t, r, "admin", access.DefaultAdminPassword)

	// Regular users can still navigate to the admin view...
	w := doJSON(t, r, http.MethodPost, "/api/session/view", userTok, gin.H{"view": "admin"})
	if w.Code != http.StatusOK {
		t.Fatalf("navigate to admin view: status %d", w.Code)
	}

	// ...but the admin data operations are refused and return nothing.
	w = doJSON(t, r, http.MethodGet, "/api/admin/users", userTok, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
	if errCode(t, w) != "admin_only" {
		t.Fatalf("code = %q, want admin_only", errCode(t, w))
	}
	if _, hasUsers := decode(t, w)["users"]; hasUsers {
		t.Fatalf("gated response leaked user data: %s", w.Body.String())
	}

	// Admin can create and list accounts; duplicate creation is a no-op.
	w = doJSON(t, r, http.MethodPost, "/api/admin/users", adminTok, gin.H{"username": "dave", "password": "pw", "role": "user"})
	if w.Code != http.StatusOK {
		t.Fatalf("create: status %d body %s", w.Code, w.Body.String())
	}
	w = doJSON(t, r, http.MethodPost, "/api/admin/users", adminTok, gin.H{"username": "dave", "password": "other", "role": "admin"})
	if w.Code != http.StatusOK {
		t.Fatalf("duplicate create should still succeed: status %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/admin/users", adminTok, nil)
	users, _ := decode(t, w)["users"].([]any)
	if len(users) != 3 {
		t.Fatalf("users len = %d, want 3", len(users))
	}
	// Role must not be a reserved word outside the enum.
	w = doJSON(t, r, http.MethodPost, "/api/admin/users", adminTok, gin.H{"username": "eve", "password": "pw", "role": "owner"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid role: status %d, want 400", w.Code)
	}
}

func TestSessionLifecycle(t *testing.T) {
	r, _ := newTestRouter(t, "httpsession")
	tok := login(t, r, "admin", access.DefaultAdminPassword)

	w := doJSON(t, r, http.MethodGet, "/api/session", tok, nil)
	if decode(t, w)["active_view"] != "inventory" {
		t.Fatalf("unexpected session: %s", w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/session/view", tok, gin.H{"view": "predict"})
	if w.Code != http.StatusOK || decode(t, w)["active_view"] != "predict" {
		t.Fatalf("select view: status %d body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/session/view", tok, gin.H{"view": "bogus"})
	if w.Code != http.StatusBadRequest || errCode(t, w) != "invalid_view" {
		t.Fatalf("bogus view: status %d code %q", w.Code, errCode(t, w))
	}

	w = doJSON(t, r, http.MethodPost, "/api/logout", tok, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("logout: status %d", w.Code)
	}

	// The token is still valid, but the session state is cleared: navigation
	// is rejected until the next login.
	w = doJSON(t, r, http.MethodPost, "/api/session/view", tok, gin.H{"view": "analysis"})
	if w.Code != http.StatusUnauthorized || errCode(t, w) != "not_logged_in" {
		t.Fatalf("post-logout navigation: status %d code %q", w.Code, errCode(t, w))
	}
	w = doJSON(t, r, http.MethodGet, "/api/session", tok, nil)
	if decode(t, w)["logged_in"] != false {
		t.Fatalf("session not cleared: %s", w.Body.String())
	}
}

func TestHealthz(t *testing.T) {
	r, _ := newTestRouter(t, "httphealth")
	w := doJSON(t, r, http.MethodGet, "/healthz", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("healthz: status %d", w.Code)
	}
}
