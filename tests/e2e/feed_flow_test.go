//go:build integration

package e2e

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pagedCatalog serves 60 products, 24 per page, honoring the category param.
func pagedCatalog(t *testing.T) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products/" {
			fmt.Fprint(w, `{"count": 0, "results": []}`)
			return
		}

		total := 60
		if r.URL.Query().Get("category") != "" {
			total = 10
		}

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
		start := (page - 1) * pageSize
		if start >= total {
			http.Error(w, `{"detail": "Invalid page."}`, http.StatusNotFound)
			return
		}

		end := start + pageSize
		if end > total {
			end = total
		}

		results := ""
		for i := start; i < end; i++ {
			if results != "" {
				results += ","
			}
			results += fmt.Sprintf(`{"id": %d, "name": "product-%d", "price": 1.0}`, i+1, i+1)
		}

		next := "null"
		if end < total {
			next = fmt.Sprintf(`"?page=%d"`, page+1)
		}
		fmt.Fprintf(w, `{"count": %d, "next": %s, "results": [%s]}`, total, next, results)
	}))
}

type feedView struct {
	Items []struct {
		ID int64 `json:"id"`
	} `json:"items"`
	TotalCount int64 `json:"total_count"`
	Page       int   `json:"page"`
	HasMore    bool  `json:"has_more"`
	Error      string `json:"error"`
}

func TestFeedFlow(t *testing.T) {
	catalog := pagedCatalog(t)
	defer catalog.Close()
	payments := httptest.NewServer(http.NotFoundHandler())
	defer payments.Close()

	sf := SetupStorefront(t, catalog.URL, payments.URL)
	base := sf.Server.URL

	// First view triggers the initial load.
	var view feedView
	resp, err := sf.Client.Get(base + "/api/feed")
	require.NoError(t, err)
	decodeBody(t, resp, &view)

	assert.Len(t, view.Items, 24)
	assert.Equal(t, int64(60), view.TotalCount)
	assert.True(t, view.HasMore)

	// Two sentinel crossings walk to the end of the list.
	for _, wantLen := range []int{48, 60} {
		resp = postJSON(t, sf.Client, base+"/api/feed/advance", nil)
		var adv struct {
			Triggered bool     `json:"triggered"`
			View      feedView `json:"view"`
		}
		decodeBody(t, resp, &adv)
		assert.True(t, adv.Triggered)
		assert.Len(t, adv.View.Items, wantLen)
	}

	// Past the last page the sentinel is inert.
	resp = postJSON(t, sf.Client, base+"/api/feed/advance", nil)
	var adv struct {
		Triggered bool     `json:"triggered"`
		View      feedView `json:"view"`
	}
	decodeBody(t, resp, &adv)
	assert.False(t, adv.Triggered)
	assert.False(t, adv.View.HasMore)

	// A filter change resets to page one of the narrowed set.
	resp = postJSON(t, sf.Client, base+"/api/feed/filters", map[string]interface{}{"category": 7})
	decodeBody(t, resp, &view)
	assert.Len(t, view.Items, 10)
	assert.Equal(t, int64(10), view.TotalCount)
	assert.Equal(t, 1, view.Page)
	assert.False(t, view.HasMore)
}
