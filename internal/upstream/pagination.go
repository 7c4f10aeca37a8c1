package upstream

import "encoding/json"

// Page is the backend's paginated envelope plus the gateway-computed
// continuation cursor. Content stays raw: list payloads pass through
// untouched, only the cursor is added.
type Page struct {
	Page          int             `json:"page"`
	Size          int             `json:"size"`
	TotalPages    int             `json:"totalPages"`
	TotalElements int             `json:"totalElements"`
	Content       json.RawMessage `json:"content"`
	NextPage      *int            `json:"nextPage,omitempty"`
}

// AttachNextPage computes the continuation cursor: page+1 when another page
// exists, absent otherwise. Every list endpoint runs its response through
// this before answering the browser.
func (p *Page) AttachNextPage() {
	if p.Page+1 < p.TotalPages {
		next := p.Page + 1
		p.NextPage = &next
	} else {
		p.NextPage = nil
	}
}

// decodePage unwraps a backend data payload into a Page and attaches the
// cursor.
func decodePage(data json.RawMessage) (*Page, error) {
	var p Page
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	p.AttachNextPage()
	return &p, nil
}
