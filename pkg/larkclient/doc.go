// Package larkclient constructs clients that implement bitable.Client.
//
// It validates and normalizes a bitable.Config, builds the HTTP transport and
// the tenant access token cache, and returns a client whose Tables(), Fields()
// and Records() accessors all share that cache.
//
// Quick start
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
//
//	  cli, err := larkclient.NewWithCredentials(ctx, "cli_xxx", "secret", "bascnXXXX")
//	  if err != nil { log.Fatal(err) }
//
//	  // Feishu tenants use a different root:
//	  cli, err = larkclient.New(ctx, &bitable.Config{
//	    AppID:     "cli_xxx",
//	    AppSecret: "secret",
//	    AppToken:  "bascnXXXX",
//	    BaseURL:   "open.feishu.cn/open-apis", // https:// is added
//	  })
//
//	  tableID, found, err := cli.Tables().GetIDByName(ctx, "Tasks")
//	  if err != nil || !found { log.Fatal("no Tasks table") }
//
//	  records, err := cli.Records().ListAll(ctx, tableID)
//	  if err != nil { log.Fatal(err) }
//	  log.Printf("%d records", len(records))
//	}
//
// A client never persists its token. Two clients built from the same
// credentials fetch their own tokens.
package larkclient
