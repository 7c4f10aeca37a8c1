package upstream

import "encoding/json"

// Envelope is the Mixit backend's response wrapper. Every JSON endpoint
// answers {"status": {"code", "message"}, "data": ...}; the gateway is the
// only layer that unwraps it.
type Envelope struct {
	Status struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"status"`
	Data json.RawMessage `json:"data"`
}

// AuthResult is the normalized outcome of credential or Kakao login.
type AuthResult struct {
	UserID       string `json:"userId"`
	LoginID      string `json:"loginId"`
	Nickname     string `json:"nickname"`
	Email        string `json:"email"`
	ProfileImage string `json:"profileImage"`
	Token        string `json:"token"`
	ExpiresIn    int    `json:"expiresIn"`
}

// ImageResult is the backend-assigned id and URL of an uploaded image.
type ImageResult struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// DuplicateResult reports whether a signup field value is already taken.
// Field echoes exactly the field the caller submitted so the form can
// target the right input.
type DuplicateResult struct {
	Available bool   `json:"available"`
	Field     string `json:"field"`
	Message   string `json:"message,omitempty"`
}

// Notification mirrors the backend's notification record. Read state is
// mutated optimistically on the client and reconciled on failure.
type Notification struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt"`
	Read      bool   `json:"read"`
	Type      string `json:"type"`
	EntityID  string `json:"entityId"`
}

// Valid post categories
const (
	CategoryCafe        = "CAFE"
	CategoryRestaurant  = "RESTAURANT"
	CategoryConvenience = "CONVENIENCE"
	CategoryOther       = "OTHER"
)

// ValidCategory reports whether c is one of the four post categories.
func ValidCategory(c string) bool {
	switch c {
	case CategoryCafe, CategoryRestaurant, CategoryConvenience, CategoryOther:
		return true
	}
	return false
}
