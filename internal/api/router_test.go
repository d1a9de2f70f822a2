package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cortexai/cortex-api/internal/config"
	"github.com/cortexai/cortex-api/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var permissive = config.CORS{
	AllowedOrigins:   []string{"*"},
	AllowedMethods:   []string{"*"},
	AllowedHeaders:   []string{"*"},
	AllowCredentials: true,
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, dialect, err := database.New("sqlite:///" + filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db, dialect))

	cfg := &config.Config{
		JWTSecret:                "test-secret",
		AccessTokenExpireMinutes: 60,
		BcryptCost:               bcrypt.MinCost,
	}
	srv := httptest.NewServer(NewRouter(permissive, NewServices(db, cfg)))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, buf.Bytes()
}

func postJSON(t *testing.T, srv *httptest.Server, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, srv.URL+path, bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return do(t, req)
}

func get(t *testing.T, srv *httptest.Server, path, token string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, srv.URL+path, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return do(t, req)
}

func login(t *testing.T, srv *httptest.Server, email, password string) (*http.Response, []byte) {
	t.Helper()
	form := url.Values{"username": {email}, "password": {password}, "grant_type": {"password"}}
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/auth/login", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return do(t, req)
}

func registerAndLogin(t *testing.T, srv *httptest.Server, email, password string) string {
	t.Helper()
	resp, body := postJSON(t, srv, "/auth/register", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, body = login(t, srv, email, password)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var tok struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(body, &tok))
	require.Equal(t, "bearer", tok.TokenType)
	require.NotEmpty(t, tok.AccessToken)
	return tok.AccessToken
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv, "/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))

	// a bogus token does not matter to the probe
	resp, body = get(t, srv, "/health", "garbage")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
}

func TestRegister_Duplicate(t *testing.T) {
	srv := newTestServer(t)
	creds := map[string]string{"email": "test@example.com", "password": "secret123"}

	resp, body := postJSON(t, srv, "/auth/register", "", creds)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var user map[string]any
	require.NoError(t, json.Unmarshal(body, &user))
	assert.Equal(t, "test@example.com", user["email"])
	assert.NotZero(t, user["id"])
	assert.NotContains(t, user, "password_hash")
	assert.NotContains(t, user, "PasswordHash")

	resp, body = postJSON(t, srv, "/auth/register", "", creds)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"detail":"Email already registered"}`, string(body))
}

func TestRegister_InvalidInput(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := postJSON(t, srv, "/auth/register", "", map[string]string{"email": "nope", "password": "secret123"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/auth/register", strings.NewReader("{"))
	require.NoError(t, err)
	resp, _ = do(t, req)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestLogin_TokenResolvesToRegisteredEmail(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv, "me@example.com", "secret123")

	resp, body := get(t, srv, "/users/me", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me map[string]any
	require.NoError(t, json.Unmarshal(body, &me))
	assert.Equal(t, "me@example.com", me["email"])
}

func TestLogin_WrongPassword(t *testing.T) {
	srv := newTestServer(t)
	registerAndLogin(t, srv, "user@example.com", "secret123")

	resp, body := login(t, srv, "user@example.com", "not-the-password")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"))
	assert.JSONEq(t, `{"detail":"Incorrect email or password"}`, string(body))

	resp, _ = login(t, srv, "ghost@example.com", "secret123")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogin_FormValidation(t *testing.T) {
	srv := newTestServer(t)

	form := url.Values{"username": {"a@example.com"}, "password": {"x"}, "grant_type": {"client_credentials"}}
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/auth/login", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, _ := do(t, req)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, _ = login(t, srv, "", "")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/users/me", "/users/", "/sessions/"} {
		resp, _ := get(t, srv, path, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)

		resp, _ = get(t, srv, path, "not-a-token")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}

	resp, _ := postJSON(t, srv, "/sessions/", "", map[string]any{"duration_seconds": 5})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestListUsers(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv, "one@example.com", "secret123")
	registerAndLogin(t, srv, "two@example.com", "secret123")

	for _, path := range []string{"/users/", "/users"} {
		resp, body := get(t, srv, path, token)
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
		var users []map[string]any
		require.NoError(t, json.Unmarshal(body, &users))
		require.Len(t, users, 2)
		assert.Equal(t, "one@example.com", users[0]["email"])
		assert.Equal(t, "two@example.com", users[1]["email"])
	}
}

func TestSessions_CreateAndList(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv, "user@example.com", "secret123")
	otherToken := registerAndLogin(t, srv, "other@example.com", "secret123")

	resp, body := postJSON(t, srv, "/sessions/", token, map[string]any{"mood": "sadness", "duration_seconds": 600})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var created map[string]any
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, "sadness", created["mood"])
	assert.EqualValues(t, 600, created["duration_seconds"])
	assert.NotZero(t, created["id"])
	assert.NotEmpty(t, created["started_at"])
	assert.NotZero(t, created["user_id"])

	// duration defaults to 0 and mood may be omitted
	resp, body = postJSON(t, srv, "/sessions/", token, map[string]any{})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var bare map[string]any
	require.NoError(t, json.Unmarshal(body, &bare))
	assert.EqualValues(t, 0, bare["duration_seconds"])
	assert.Nil(t, bare["mood"])

	resp, _ = postJSON(t, srv, "/sessions/", otherToken, map[string]any{"mood": "joy", "duration_seconds": 60})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = get(t, srv, "/sessions/", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sessions []map[string]any
	require.NoError(t, json.Unmarshal(body, &sessions))
	require.Len(t, sessions, 2)
	for _, s := range sessions {
		assert.Equal(t, created["user_id"], s["user_id"])
	}
}

func TestSessions_Validation(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv, "user@example.com", "secret123")

	resp, _ := postJSON(t, srv, "/sessions/", token, map[string]any{"duration_seconds": -5})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, _ = postJSON(t, srv, "/sessions/", token, map[string]any{"duration_seconds": "ten"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestSessions_EmptyListIsArray(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv, "user@example.com", "secret123")

	resp, body := get(t, srv, "/sessions", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(body))
}

func TestOnboarding_UpsertIsIdempotent(t *testing.T) {
	srv := newTestServer(t)

	resp, body := postJSON(t, srv, "/onboarding/", "", map[string]any{"client_user_id": "abc123456", "display_name": "Alice", "age": 22})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var first map[string]any
	require.NoError(t, json.Unmarshal(body, &first))
	assert.Equal(t, "abc123456", first["client_user_id"])
	assert.Equal(t, "Alice", first["display_name"])
	assert.EqualValues(t, 22, first["age"])

	resp, body = postJSON(t, srv, "/onboarding/", "", map[string]any{"client_user_id": "abc123456", "display_name": "Alice B", "age": 23})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var second map[string]any
	require.NoError(t, json.Unmarshal(body, &second))
	assert.Equal(t, first["id"], second["id"])
	assert.Equal(t, "Alice B", second["display_name"])
	assert.EqualValues(t, 23, second["age"])

	resp, body = get(t, srv, "/onboarding/abc123456", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched map[string]any
	require.NoError(t, json.Unmarshal(body, &fetched))
	assert.Equal(t, "Alice B", fetched["display_name"])
	assert.EqualValues(t, 23, fetched["age"])
}

func TestOnboarding_UnknownIDIsNotFound(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv, "/onboarding/never-upserted", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"detail":"Onboarding profile not found"}`, string(body))
}

func TestOnboarding_Validation(t *testing.T) {
	srv := newTestServer(t)

	bodies := []map[string]any{
		{"client_user_id": "short", "display_name": "A", "age": 20},
		{"client_user_id": "abc123456", "display_name": "", "age": 20},
		{"client_user_id": "abc123456", "display_name": "A", "age": 130},
		{"client_user_id": "abc123456", "display_name": "A"},
	}
	for _, b := range bodies {
		resp, _ := postJSON(t, srv, "/onboarding/", "", b)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, b)
	}
}

func TestCORS_Preflight(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/sessions/", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")

	resp, _ := do(t, req)
	assert.Less(t, resp.StatusCode, 300)
	assert.Equal(t, "https://app.example", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestCORS_SimpleRequestEchoesOrigin(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://app.example")

	resp, _ := do(t, req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "https://app.example", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
}

func TestHealth_IgnoresDatabaseState(t *testing.T) {
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "closed.db"))
	require.NoError(t, err)
	require.NoError(t, db.Close())

	cfg := &config.Config{
		JWTSecret:                "test-secret",
		AccessTokenExpireMinutes: 60,
		BcryptCost:               bcrypt.MinCost,
	}
	srv := httptest.NewServer(NewRouter(permissive, NewServices(db, cfg)))
	t.Cleanup(srv.Close)

	resp, body := get(t, srv, "/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))

	// the same closed handle does fail a store-backed route
	resp, _ = get(t, srv, "/onboarding/abcdefgh", "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
