package jwttoken

import (
	"context"

	"rubrica/pkg/platform/middleware/auth"
)

// ToMiddlewareClaims converts verified session claims for the auth middleware.
func ToMiddlewareClaims(claims *Claims) *auth.Claims {
	return &auth.Claims{
		UserID:   claims.UserID,
		Username: claims.Username,
		RoleID:   claims.RoleID,
	}
}

// ServiceAdapter exposes Service as an auth.TokenVerifier.
type ServiceAdapter struct {
	service *Service
}

func NewServiceAdapter(service *Service) *ServiceAdapter {
	return &ServiceAdapter{service: service}
}

func (a *ServiceAdapter) VerifyToken(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := a.service.Verify(ctx, token)
	if err != nil {
		return nil, err
	}
	return ToMiddlewareClaims(claims), nil
}
