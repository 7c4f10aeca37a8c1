package upstream

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachNextPage(t *testing.T) {
	cases := []struct {
		name       string
		page       int
		totalPages int
		wantNext   *int
	}{
		{"first of many", 0, 5, intPtr(1)},
		{"middle", 2, 5, intPtr(3)},
		{"second to last", 3, 5, intPtr(4)},
		{"last page", 4, 5, nil},
		{"single page", 0, 1, nil},
		{"empty result", 0, 0, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &Page{Page: tc.page, TotalPages: tc.totalPages}
			p.AttachNextPage()
			if tc.wantNext == nil {
				assert.Nil(t, p.NextPage)
			} else {
				require.NotNil(t, p.NextPage)
				assert.Equal(t, *tc.wantNext, *p.NextPage)
			}
		})
	}
}

func TestNextPageOmittedFromJSON(t *testing.T) {
	p := &Page{Page: 0, TotalPages: 1, Content: json.RawMessage(`[]`)}
	p.AttachNextPage()

	raw, err := json.Marshal(p)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "nextPage")
}

func TestDecodePageAttachesCursor(t *testing.T) {
	data := json.RawMessage(`{"page":1,"size":20,"totalPages":4,"totalElements":70,"content":[{"id":1}]}`)
	p, err := decodePage(data)
	require.NoError(t, err)
	require.NotNil(t, p.NextPage)
	assert.Equal(t, 2, *p.NextPage)
	assert.Equal(t, 70, p.TotalElements)
}

func intPtr(n int) *int { return &n }
