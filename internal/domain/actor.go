package domain

import (
	"context"
)

// Role is an access level claimed by the external identity module. The core
// trusts role claims it is handed but enforces its own transition rules on
// top of them.
type Role string

const (
	// RoleAdmin has full access, including the audited override paths
	RoleAdmin Role = "admin"

	// RoleOperator is office/cashier staff: drawer and credit operations
	RoleOperator Role = "operator"

	// RoleDelivery is a delivery agent: creates vouchers and confirms deliveries
	RoleDelivery Role = "delivery"

	// RoleClient is a frequent customer paying their own vouchers
	RoleClient Role = "client"
)

var validRoles = map[Role]bool{
	RoleAdmin:    true,
	RoleOperator: true,
	RoleDelivery: true,
	RoleClient:   true,
}

// IsValid checks if the role is known.
func (r Role) IsValid() bool {
	return validRoles[r]
}

// Actor identifies who is performing a mutating operation.
type Actor struct {
	ID   string
	Role Role
}

type actorContextKey struct{}

// WithActor returns a context carrying the authenticated actor.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// ActorFromContext extracts the authenticated actor, if any.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(Actor)
	return actor, ok
}
