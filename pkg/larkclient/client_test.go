package larkclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/bitable/internal/constants"
	"github.com/fivetwenty-io/bitable/pkg/bitable"
)

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		config  *bitable.Config
		wantErr error
	}{
		{name: "nil config", config: nil, wantErr: bitable.ErrConfigRequired},
		{name: "missing app token", config: &bitable.Config{AppID: "cli", AppSecret: "s"}, wantErr: bitable.ErrAppTokenRequired},
		{name: "missing app id", config: &bitable.Config{AppSecret: "s", AppToken: "bascn"}, wantErr: bitable.ErrAppIDRequired},
		{name: "missing app secret", config: &bitable.Config{AppID: "cli", AppToken: "bascn"}, wantErr: bitable.ErrAppSecretRequired},
		{name: "credentials", config: &bitable.Config{AppID: "cli", AppSecret: "s", AppToken: "bascn"}},
		{name: "access token only", config: &bitable.Config{AccessToken: "t-1", AppToken: "bascn"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client, err := New(context.Background(), tt.config)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, client)

				return
			}

			require.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}

func TestNormalizeBaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{in: "", want: constants.DefaultBaseURL},
		{in: "https://open.feishu.cn/open-apis/", want: "https://open.feishu.cn/open-apis"},
		{in: "open.feishu.cn/open-apis", want: "https://open.feishu.cn/open-apis"},
		{in: "http://127.0.0.1:8080//", want: "http://127.0.0.1:8080"},
	}

	for _, tt := range tests {
		tt := tt
		assert.Equal(t, tt.want, normalizeBaseURL(tt.in), tt.in)
	}
}

func TestNew_DoesNotMutateConfig(t *testing.T) {
	t.Parallel()

	config := &bitable.Config{AppID: "cli", AppSecret: "s", AppToken: "bascn", BaseURL: "open.feishu.cn/open-apis/"}

	_, err := New(context.Background(), config)
	require.NoError(t, err)
	assert.Equal(t, "open.feishu.cn/open-apis/", config.BaseURL)
}

func TestNewWithConstructors(t *testing.T) {
	t.Parallel()

	client, err := NewWithCredentials(context.Background(), "cli", "secret", "bascn")
	require.NoError(t, err)
	assert.NotNil(t, client)

	client, err = NewWithToken(context.Background(), "t-1", "bascn")
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNew_EndToEnd(t *testing.T) {
	t.Parallel()

	var authCalls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/open-apis" + constants.TenantAccessTokenPath:
			authCalls.Add(1)

			var body map[string]string

			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, map[string]string{"app_id": "cli", "app_secret": "secret"}, body)

			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"code": 0, "msg": "ok", "tenant_access_token": "t-live", "expire": 7200,
			})
		case "/open-apis/bitable/v1/apps/bascn/tables":
			assert.Equal(t, "Bearer t-live", r.Header.Get("Authorization"))

			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"code": 0,
				"msg":  "success",
				"data": map[string]interface{}{
					"items":    []map[string]interface{}{{"table_id": "tbl1", "name": "Tasks"}},
					"has_more": false,
				},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client, err := New(context.Background(), &bitable.Config{
		AppID:     "cli",
		AppSecret: "secret",
		AppToken:  "bascn",
		BaseURL:   server.URL + "/open-apis/",
	})
	require.NoError(t, err)

	id, found, err := client.Tables().GetIDByName(context.Background(), "Tasks")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "tbl1", id)

	tables, err := client.Tables().ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, tables, 1)
	assert.Equal(t, int32(1), authCalls.Load())
}

func TestNew_AuthFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"code": 10003, "msg": "invalid param"})
	}))
	defer server.Close()

	client, err := New(context.Background(), &bitable.Config{
		AppID: "cli", AppSecret: "bad", AppToken: "bascn", BaseURL: server.URL,
	})
	require.NoError(t, err)

	_, err = client.Records().Create(context.Background(), "tbl1", bitable.Fields{"Name": "x"})
	require.Error(t, err)

	var authErr *bitable.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, 10003, authErr.Code)
	assert.Equal(t, "invalid param", authErr.Msg)
}
