package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/bitable/internal/auth"
	"github.com/fivetwenty-io/bitable/pkg/bitable"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires config", func(t *testing.T) {
		t.Parallel()

		_, err := New(nil)
		require.ErrorIs(t, err, bitable.ErrConfigRequired)
	})

	t.Run("requires app token", func(t *testing.T) {
		t.Parallel()

		_, err := New(&bitable.Config{AppID: "cli_test", AppSecret: "secret"})
		require.ErrorIs(t, err, bitable.ErrAppTokenRequired)
	})

	t.Run("uses static access token", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer pre-issued", r.Header.Get("Authorization"))
			writeData(w, map[string]interface{}{"items": []interface{}{}, "has_more": false})
		}))
		defer server.Close()

		client, err := New(&bitable.Config{
			AppToken:    testAppToken,
			AccessToken: "pre-issued",
			BaseURL:     server.URL,
		})
		require.NoError(t, err)
		assert.IsType(t, &auth.StaticTokenManager{}, client.GetTokenManager())

		_, err = client.Tables().List(context.Background(), nil)
		require.NoError(t, err)
	})

	t.Run("exchanges app credentials", func(t *testing.T) {
		t.Parallel()

		fake := newFakeLark(t, func(w http.ResponseWriter, r *http.Request) {
			writeData(w, map[string]interface{}{"items": []interface{}{}, "has_more": false})
		})

		client, err := New(&bitable.Config{
			AppID:     "cli_test",
			AppSecret: "secret",
			AppToken:  testAppToken,
			BaseURL:   fake.URL,
		})
		require.NoError(t, err)
		assert.IsType(t, &auth.TenantTokenManager{}, client.GetTokenManager())

		token, err := client.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, testToken, token)
		assert.Equal(t, int32(1), fake.authCalls.Load())
	})
}

func TestClient_TokenCaching(t *testing.T) {
	t.Parallel()

	fake := newFakeLark(t, func(w http.ResponseWriter, r *http.Request) {
		writeData(w, map[string]interface{}{"items": []interface{}{}, "has_more": false})
	})

	clock := clockwork.NewFakeClock()
	client := newTestClient(t, fake, clock)
	ctx := context.Background()

	_, err := client.Tables().List(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int32(1), fake.authCalls.Load())

	_, err = client.Fields().List(ctx, testTableID, nil)
	require.NoError(t, err)
	assert.Equal(t, int32(1), fake.authCalls.Load())

	// more than five minutes left
	clock.Advance(2*time.Hour - 6*time.Minute)

	_, err = client.Records().List(ctx, testTableID, nil)
	require.NoError(t, err)
	assert.Equal(t, int32(1), fake.authCalls.Load())

	// inside the refresh margin
	clock.Advance(2 * time.Minute)

	_, err = client.Records().List(ctx, testTableID, nil)
	require.NoError(t, err)
	assert.Equal(t, int32(2), fake.authCalls.Load())
	assert.Equal(t, int32(4), fake.apiCalls.Load())
}

func TestClient_GetToken_NoTokenManager(t *testing.T) {
	t.Parallel()

	client := &Client{}

	_, err := client.GetToken(context.Background())
	require.ErrorIs(t, err, ErrNoTokenManagerConfigured)
}

func TestListQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		opts     *bitable.ListOptions
		def      int
		expected string
	}{
		{name: "nil options", opts: nil, def: 0, expected: ""},
		{name: "nil options with default", opts: nil, def: 100, expected: "page_size=100"},
		{name: "page size overrides default", opts: &bitable.ListOptions{PageSize: 20}, def: 100, expected: "page_size=20"},
		{name: "empty token omitted", opts: &bitable.ListOptions{PageSize: 500}, def: 0, expected: "page_size=500"},
		{name: "token only", opts: &bitable.ListOptions{PageToken: "abc"}, def: 0, expected: "page_token=abc"},
		{name: "both", opts: &bitable.ListOptions{PageSize: 500, PageToken: "abc"}, def: 100, expected: "page_size=500&page_token=abc"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, listQuery(tt.opts, tt.def).Encode())
		})
	}
}

func TestPaths(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/bitable/v1/apps/bascn/tables", appPath("bascn"))
	assert.Equal(t, "/bitable/v1/apps/bascn/tables/tbl1", tablePath("bascn", "tbl1"))
	assert.Equal(t, "/bitable/v1/apps/a%2Fb/tables", appPath("a/b"))
}
