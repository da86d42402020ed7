package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkhristov/userhub/internal/client/client"
	"github.com/dkhristov/userhub/internal/client/config"
)

// newTestApp builds an App whose API client talks to the given handler and
// whose prompts read from the scripted input.
func newTestApp(t *testing.T, handler http.HandlerFunc, input string) (*App, *bytes.Buffer) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{ServerBaseURL: srv.URL, RequestTimeout: 2 * time.Second}
	var out bytes.Buffer
	app := &App{
		config: cfg,
		api:    client.NewAPIClient(srv.URL, cfg.RequestTimeout),
		reader: bufio.NewReader(strings.NewReader(input)),
		out:    &out,
	}
	return app, &out
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	old := readPassword
	t.Cleanup(func() { readPassword = old })
	readPassword = func(int) ([]byte, error) { return []byte(pw), nil }
}

func TestAppRegister(t *testing.T) {
	stubPassword(t, "s3cret")

	app, out := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/register", r.URL.Path)
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice", req["username"])
		assert.Equal(t, "alice@example.com", req["email"])
		assert.Equal(t, "s3cret", req["password"])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(client.User{ID: 1, Username: "alice", Email: "alice@example.com"})
	}, "alice\nalice@example.com\n")

	require.NoError(t, app.Register(context.Background()))
	assert.Contains(t, out.String(), "Registered user alice (id 1)")
}

func TestAppLoginAndWhoami(t *testing.T) {
	stubPassword(t, "s3cret")

	app, out := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/login":
			json.NewEncoder(w).Encode(map[string]string{"access_token": "tok"})
		case "/api/protected":
			require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			json.NewEncoder(w).Encode(map[string]string{"message": "Hello, alice!"})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}, "alice\n")

	require.False(t, app.isLoggedIn())
	require.NoError(t, app.Login(context.Background()))
	require.True(t, app.isLoggedIn())
	assert.Equal(t, "(alice)", app.getStatus())

	require.NoError(t, app.Whoami(context.Background()))
	assert.Contains(t, out.String(), "Hello, alice!")

	require.NoError(t, app.Logout(context.Background()))
	assert.False(t, app.isLoggedIn())
	assert.Equal(t, "", app.getStatus())
}

func TestAppLogin_BadCredentials(t *testing.T) {
	stubPassword(t, "wrong")

	app, out := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized", "message": "invalid username or password"})
	}, "alice\n")

	err := app.Login(context.Background())
	require.Error(t, err)
	assert.False(t, app.isLoggedIn())
	assert.Contains(t, out.String(), "Invalid user name or password")
}

func TestAppList(t *testing.T) {
	app, out := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/users", r.URL.Path)
		json.NewEncoder(w).Encode([]client.User{
			{ID: 1, Username: "alice", Email: "a@example.com"},
			{ID: 2, Username: "bob", Email: "b@example.com"},
		})
	}, "")

	require.NoError(t, app.List(context.Background()))
	assert.Contains(t, out.String(), "alice")
	assert.Contains(t, out.String(), "bob")
}

func TestAppGet_InvalidID(t *testing.T) {
	app, out := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}, "")

	require.NoError(t, app.Get(context.Background(), "abc"))
	assert.Contains(t, out.String(), "Invalid id: abc")
}

func TestAppUpdate_EmailOnly(t *testing.T) {
	app, out := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/users/7", r.URL.Path)

		var raw map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		assert.Equal(t, map[string]any{"email": "new@example.com"}, raw)

		json.NewEncoder(w).Encode(client.User{ID: 7, Username: "bob", Email: "new@example.com"})
	}, "\nnew@example.com\nn\n")

	require.NoError(t, app.Update(context.Background(), "7"))
	assert.Contains(t, out.String(), "Updated:")
}

func TestAppDelete_Cancelled(t *testing.T) {
	app, out := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}, "n\n")

	require.NoError(t, app.Delete(context.Background(), "3"))
	assert.Contains(t, out.String(), "Cancelled")
}

func TestAppDelete_Confirmed(t *testing.T) {
	app, out := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/users/3", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"message": "user deleted"})
	}, "y\n")

	require.NoError(t, app.Delete(context.Background(), "3"))
	assert.Contains(t, out.String(), "User deleted")
}
