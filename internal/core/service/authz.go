package service

import "github.com/assettracker/admin-console/internal/core/domain"

// Gate is the authorization decision point. It is an explicit call at the
// top of every administrative operation rather than behaviour inherited
// from the transport, and it keeps "nobody is logged in" distinguishable
// from "this account may not do that".
type Gate struct{}

func NewGate() *Gate { return &Gate{} }

// Authorize returns nil when principal holds permission,
// domain.ErrUnauthenticated when principal is nil, and domain.ErrForbidden
// otherwise.
func (g *Gate) Authorize(principal *domain.Principal, permission string) error {
	if principal == nil {
		return domain.ErrUnauthenticated
	}
	if !principal.HasPermission(permission) {
		return domain.ErrForbidden
	}
	return nil
}
