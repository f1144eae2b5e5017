package errors

import (
	"errors"
)

var (
	ErrEmailAlreadyInUse  = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidRefreshToken is the only refresh failure callers outside the
	// auth service ever see; the sub-reasons below stay internal.
	ErrInvalidRefreshToken  = errors.New("invalid refresh token")
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	ErrRefreshTokenRevoked  = errors.New("refresh token revoked")
	ErrRefreshTokenExpired  = errors.New("refresh token expired")

	ErrAccessTokenExpired = errors.New("access token expired")
	ErrInvalidAccessToken = errors.New("invalid access token")

	ErrArticleNotFound = errors.New("article not found")
	ErrForbidden       = errors.New("forbidden")
)
