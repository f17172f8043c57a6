package auth

import (
	"context"
)

// AuthType records how a request authenticated
type AuthType string

const (
	AuthTypeJWT    AuthType = "jwt"
	AuthTypeAPIKey AuthType = "api_key"
)

// AdminContext holds authenticated admin information
type AdminContext struct {
	Email    string   `json:"email"`
	AuthType AuthType `json:"authType"`
}

type contextKey string

const adminContextKey contextKey = "adminContext"

// WithAdminContext adds admin context to the context
func WithAdminContext(ctx context.Context, admin *AdminContext) context.Context {
	return context.WithValue(ctx, adminContextKey, admin)
}

// FromContext extracts admin context from the context
func FromContext(ctx context.Context) (*AdminContext, bool) {
	admin, ok := ctx.Value(adminContextKey).(*AdminContext)
	return admin, ok
}
