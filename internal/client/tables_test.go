package client

import (
	"context"
	"net/http"
	"strconv"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/bitable/pkg/bitable"
)

const tablesPath = "/bitable/v1/apps/" + testAppToken + "/tables"

func TestTablesClient_List(t *testing.T) {
	t.Parallel()

	fake := newFakeLark(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, tablesPath, r.URL.Path)
		assert.Equal(t, "20", r.URL.Query().Get("page_size"))
		assert.Equal(t, "next", r.URL.Query().Get("page_token"))

		writeData(w, map[string]interface{}{
			"items": []map[string]interface{}{
				{"table_id": "tbl1", "revision": 3, "name": "Tasks"},
				{"table_id": "tbl2", "revision": 1, "name": "People"},
			},
			"has_more":   true,
			"page_token": "after",
			"total":      5,
		})
	})

	client := newTestClient(t, fake, clockwork.NewFakeClock())

	list, err := client.Tables().List(context.Background(), &bitable.ListOptions{PageSize: 20, PageToken: "next"})
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, bitable.Table{TableID: "tbl1", Revision: 3, Name: "Tasks"}, list.Items[0])
	assert.True(t, list.HasMore)
	assert.Equal(t, "after", list.PageToken)
	assert.Equal(t, 5, list.Total)
}

func TestTablesClient_List_OmitsEmptyOptions(t *testing.T) {
	t.Parallel()

	fake := newFakeLark(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)

		writeData(w, map[string]interface{}{"items": []interface{}{}, "has_more": false})
	})

	client := newTestClient(t, fake, clockwork.NewFakeClock())

	list, err := client.Tables().List(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestTablesClient_ListAll(t *testing.T) {
	t.Parallel()

	var tokens []string

	fake := newFakeLark(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "500", r.URL.Query().Get("page_size"))

		token := r.URL.Query().Get("page_token")
		tokens = append(tokens, token)

		switch token {
		case "":
			writeData(w, map[string]interface{}{
				"items":      []map[string]interface{}{{"table_id": "tbl1", "name": "A"}},
				"has_more":   true,
				"page_token": "p2",
			})
		case "p2":
			writeData(w, map[string]interface{}{
				"items":    []map[string]interface{}{{"table_id": "tbl2", "name": "B"}},
				"has_more": false,
			})
		default:
			t.Errorf("unexpected page token %q", token)
		}
	})

	client := newTestClient(t, fake, clockwork.NewFakeClock())

	tables, err := client.Tables().ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, "tbl1", tables[0].TableID)
	assert.Equal(t, "tbl2", tables[1].TableID)
	assert.Equal(t, []string{"", "p2"}, tokens)
}

func TestTablesClient_Create(t *testing.T) {
	t.Parallel()

	fake := newFakeLark(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, tablesPath, r.URL.Path)
		assert.Equal(t, map[string]interface{}{
			"table": map[string]interface{}{"name": "Tasks"},
		}, decodeBody(t, r))

		writeData(w, map[string]interface{}{"table_id": "tblNew", "default_view_id": "vew1"})
	})

	client := newTestClient(t, fake, clockwork.NewFakeClock())

	id, err := client.Tables().Create(context.Background(), "Tasks")
	require.NoError(t, err)
	assert.Equal(t, "tblNew", id)
}

func TestTablesClient_Create_Error(t *testing.T) {
	t.Parallel()

	fake := newFakeLark(t, func(w http.ResponseWriter, r *http.Request) {
		writeCode(w, 1254001, "WrongRequestBody")
	})

	client := newTestClient(t, fake, clockwork.NewFakeClock())

	id, err := client.Tables().Create(context.Background(), "Tasks")
	require.Error(t, err)
	assert.Empty(t, id)

	code, ok := bitable.ErrorCode(err)
	require.True(t, ok)
	assert.Equal(t, 1254001, code)
	assert.Contains(t, err.Error(), "WrongRequestBody")
}

func TestTablesClient_Get(t *testing.T) {
	t.Parallel()

	fake := newFakeLark(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, tablesPath+"/tbl1", r.URL.Path)

		writeData(w, map[string]interface{}{"table": map[string]interface{}{"table_id": "tbl1", "name": "A"}})
	})

	client := newTestClient(t, fake, clockwork.NewFakeClock())

	info, err := client.Tables().Get(context.Background(), "tbl1")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"table": map[string]any{"table_id": "tbl1", "name": "A"}}, info)

	_, err = client.Tables().Get(context.Background(), "")
	require.ErrorIs(t, err, bitable.ErrTableIDRequired)
}

func TestTablesClient_Get_EmptyData(t *testing.T) {
	t.Parallel()

	fake := newFakeLark(t, func(w http.ResponseWriter, r *http.Request) {
		writeCode(w, 0, "success")
	})

	client := newTestClient(t, fake, clockwork.NewFakeClock())

	info, err := client.Tables().Get(context.Background(), "tbl1")
	require.NoError(t, err)
	assert.Empty(t, info)
}

func TestTablesClient_GetIDByName(t *testing.T) {
	t.Parallel()

	fake := newFakeLark(t, func(w http.ResponseWriter, r *http.Request) {
		items := make([]map[string]interface{}, 0, 3)
		for i := 1; i <= 3; i++ {
			items = append(items, map[string]interface{}{"table_id": "tbl" + strconv.Itoa(i), "name": "T" + strconv.Itoa(i)})
		}

		writeData(w, map[string]interface{}{"items": items, "has_more": false})
	})

	client := newTestClient(t, fake, clockwork.NewFakeClock())

	id, found, err := client.Tables().GetIDByName(context.Background(), "T2")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "tbl2", id)

	id, found, err = client.Tables().GetIDByName(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, id)
}
