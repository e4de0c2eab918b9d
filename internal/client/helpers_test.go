package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/bitable/internal/auth"
	"github.com/fivetwenty-io/bitable/internal/constants"
	"github.com/fivetwenty-io/bitable/pkg/bitable"
)

const (
	testAppToken = "bascnTest"
	testTableID  = "tblTest"
	testToken    = "t-test"
)

// fakeLark serves the tenant token endpoint and hands everything else to api.
type fakeLark struct {
	*httptest.Server

	authCalls atomic.Int32
	apiCalls  atomic.Int32
	expire    int
	api       http.HandlerFunc
}

func newFakeLark(t *testing.T, api http.HandlerFunc) *fakeLark {
	t.Helper()

	fake := &fakeLark{expire: 7200, api: api}
	fake.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == constants.TenantAccessTokenPath {
			fake.authCalls.Add(1)

			assert.Equal(t, http.MethodPost, r.Method)

			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"code":                0,
				"msg":                 "ok",
				"tenant_access_token": testToken,
				"expire":              fake.expire,
			})

			return
		}

		fake.apiCalls.Add(1)

		assert.Equal(t, "Bearer "+testToken, r.Header.Get("Authorization"))

		fake.api(w, r)
	}))
	t.Cleanup(fake.Close)

	return fake
}

// newTestClient builds a client against fake whose token cache runs on clock.
func newTestClient(t *testing.T, fake *fakeLark, clock clockwork.Clock) *Client {
	t.Helper()

	tokenManager := auth.NewTenantTokenManager(&auth.TenantConfig{
		TokenURL:  fake.URL + constants.TenantAccessTokenPath,
		AppID:     "cli_test",
		AppSecret: "secret",
		Clock:     clock,
	})

	client, err := NewWithTokenManager(&bitable.Config{
		AppToken: testAppToken,
		BaseURL:  fake.URL,
	}, tokenManager)
	require.NoError(t, err)

	return client
}

func writeData(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"code": 0,
		"msg":  "success",
		"data": data,
	})
}

func writeCode(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"code": code,
		"msg":  msg,
	})
}

func decodeBody(t *testing.T, r *http.Request) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}

	require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

	return body
}
