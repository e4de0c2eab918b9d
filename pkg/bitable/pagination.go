package bitable

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/bitable/internal/constants"
)

// MaxPageSize is the largest page the list endpoints accept.
const MaxPageSize = constants.MaxPageSize

// PageFunc fetches a single page.
type PageFunc[T any] func(ctx context.Context, opts *ListOptions) (*ListResponse[T], error)

// FetchAllPages follows page tokens until the server reports no further
// pages and returns every item in server order. A pageSize of zero or less
// uses MaxPageSize.
func FetchAllPages[T any](ctx context.Context, fetch PageFunc[T], pageSize int) ([]T, error) {
	if pageSize <= 0 {
		pageSize = MaxPageSize
	}

	var (
		all       []T
		pageToken string
	)

	for page := 1; ; page++ {
		resp, err := fetch(ctx, &ListOptions{PageSize: pageSize, PageToken: pageToken})
		if err != nil {
			return nil, fmt.Errorf("fetching page %d: %w", page, err)
		}

		all = append(all, resp.Items...)

		if !resp.HasMore {
			break
		}

		if resp.PageToken == "" {
			return nil, fmt.Errorf("fetching page %d: %w", page+1, ErrEmptyPageToken)
		}

		pageToken = resp.PageToken
	}

	if all == nil {
		all = []T{}
	}

	return all, nil
}
