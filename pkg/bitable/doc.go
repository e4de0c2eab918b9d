// Package bitable provides types, interfaces, and helpers for working with the
// Lark (Feishu) Bitable open API.
//
// # Overview
//
// The bitable package defines the domain types (Table, Field, Record) and the
// interfaces for resource clients (TablesClient, FieldsClient, RecordsClient).
// A concrete implementation is provided by the larkclient package, which wires
// configuration, transport and the tenant access token cache.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/bitable/pkg/bitable"
//	  "github.com/fivetwenty-io/bitable/pkg/larkclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := larkclient.New(ctx, &bitable.Config{
//	    AppID:     "cli_xxx",
//	    AppSecret: "secret",
//	    AppToken:  "bascnXXXX",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  id, err := cli.Records().Create(ctx, tableID, bitable.Fields{"Name": "value"})
//	  if err != nil { log.Fatal(err) }
//	  _ = id
//	}
//
// # Pagination
//
// List calls return a single page. ListAll follows page tokens with pages of
// MaxPageSize items and returns the full sequence. FetchAllPages does the
// same for any PageFunc.
//
// # Errors
//
// A response whose envelope code is not zero surfaces as *APIError, or as
// *AuthError for the token call. Both carry the server code and message:
//
//	var apiErr *bitable.APIError
//	if errors.As(err, &apiErr) { log.Println(apiErr.Code, apiErr.Msg) }
//
// Nothing is retried.
package bitable
