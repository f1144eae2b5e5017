package dto

// RefreshInput is the body fallback for clients that do not use the
// refresh-token cookie.
type RefreshInput struct {
	RefreshToken string `json:"refresh_token"`
}
