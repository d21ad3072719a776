package v1

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authwindow/auth-service/internal/core/repository"
	logicv1 "github.com/authwindow/auth-service/internal/logic/v1"
	"github.com/authwindow/auth-service/internal/security/password"
	"github.com/authwindow/auth-service/middleware"
)

var testSecret = []byte("test-secret")

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	users := repository.NewMemoryUserRepository()
	auth := logicv1.NewAuthService(users,
		password.Params{Memory: 8 * 1024, Time: 1, Parallelism: 1, SaltLen: 16, KeyLen: 32},
		logicv1.TokenConfig{Secret: testSecret, TTL: time.Hour},
	)
	handler := NewHandler(auth)

	r := gin.New()
	public := r.Group("/")
	protected := r.Group("/", middleware.RequireAuth(testSecret))
	handler.RegisterRoutes(public, protected)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, header map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func registerBody() map[string]string {
	return map[string]string{
		"username":         "alice",
		"email":            "alice@x.com",
		"password":         "secretpw",
		"confirm_password": "secretpw",
	}
}

func TestRegisterEndpoint(t *testing.T) {
	t.Parallel()

	r := newTestRouter()

	w, resp := doJSON(t, r, http.MethodPost, "/register", registerBody(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "User alice registered", resp["message"])
	assert.NotEmpty(t, resp["user_id"])
	assert.NotEmpty(t, resp["token"])
	// The hash stays inside the core.
	assert.NotContains(t, resp, "password_hash")

	// Re-registering the same email is a 400, generic message.
	w, resp = doJSON(t, r, http.MethodPost, "/register", registerBody(), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email already registered", resp["error"])
}

func TestRegisterEndpointPasswordMismatch(t *testing.T) {
	t.Parallel()

	r := newTestRouter()

	body := registerBody()
	body["confirm_password"] = "other"

	w, resp := doJSON(t, r, http.MethodPost, "/register", body, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Passwords do not match", resp["error"])
}

func TestRegisterEndpointMalformedJSON(t *testing.T) {
	t.Parallel()

	r := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginEndpoint(t *testing.T) {
	t.Parallel()

	r := newTestRouter()

	_, registered := doJSON(t, r, http.MethodPost, "/register", registerBody(), nil)

	w, resp := doJSON(t, r, http.MethodPost, "/login",
		map[string]string{"email": "alice@x.com", "password": "secretpw"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "User alice logged in", resp["message"])
	assert.Equal(t, registered["user_id"], resp["user_id"])
	assert.NotEmpty(t, resp["token"])
}

func TestLoginEndpointUniformError(t *testing.T) {
	t.Parallel()

	r := newTestRouter()
	doJSON(t, r, http.MethodPost, "/register", registerBody(), nil)

	// Wrong password and unknown email produce the same status and
	// the same body.
	wrongPw, respWrongPw := doJSON(t, r, http.MethodPost, "/login",
		map[string]string{"email": "alice@x.com", "password": "wrongpw"}, nil)
	unknown, respUnknown := doJSON(t, r, http.MethodPost, "/login",
		map[string]string{"email": "nobody@x.com", "password": "secretpw"}, nil)

	assert.Equal(t, http.StatusUnauthorized, wrongPw.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, "Invalid email or password", respWrongPw["error"])
	assert.Equal(t, respWrongPw, respUnknown)
}

func TestProfileEndpoint(t *testing.T) {
	t.Parallel()

	r := newTestRouter()

	_, registered := doJSON(t, r, http.MethodPost, "/register", registerBody(), nil)
	tok, _ := registered["token"].(string)
	require.NotEmpty(t, tok)

	w, resp := doJSON(t, r, http.MethodGet, "/profile", nil,
		map[string]string{"Authorization": "Bearer " + tok})
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "Protected route", resp["message"])
	assert.Equal(t, registered["user_id"], resp["user_id"])
	assert.Equal(t, "alice", resp["username"])
	assert.Equal(t, "alice@x.com", resp["email"])
}

func TestProfileEndpointUnauthenticated(t *testing.T) {
	t.Parallel()

	r := newTestRouter()

	w, resp := doJSON(t, r, http.MethodGet, "/profile", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Missing Authorization header", resp["error"])

	w, resp = doJSON(t, r, http.MethodGet, "/profile", nil,
		map[string]string{"Authorization": "Bearer garbage"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token", resp["error"])
}
