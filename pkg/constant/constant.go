package constant

const (
	// RefreshTokenByteLength is the entropy of a raw refresh token before
	// encoding. 48 bytes keeps the encoded form comfortably inside a cookie.
	RefreshTokenByteLength = 48

	RefreshTokenCookieName = "refresh_token"
	RefreshTokenCookiePath = "/api/v1"

	AuthorizationHeader = "Authorization"
	BearerScheme        = "Bearer"
)
