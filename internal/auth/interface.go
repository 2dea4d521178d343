package auth

import "memoir/internal/domain/models"

// JWTVerifier validates access tokens issued by Supabase Auth.
type JWTVerifier interface {
	// VerifyToken returns the claims of a valid token, or domain.ErrUnauthorized
	VerifyToken(tokenString string) (*models.SupabaseClaims, error)

	// Close releases any resources held by the verifier
	Close() error
}
