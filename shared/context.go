package shared

import (
	"context"

	"github.com/ymjo140/rendezvous-merchant-sub000/shared/constant"
)

// StoreID returns the store the authenticated staff member belongs to.
func StoreID(ctx context.Context) string {
	storeID, _ := ctx.Value(constant.ContextKeyStoreID).(string)

	return storeID
}

// UserID returns the authenticated user, or ContextGuest for public routes.
func UserID(ctx context.Context) string {
	if userID, ok := ctx.Value(constant.ContextKeyUserID).(string); ok && userID != "" {
		return userID
	}

	return constant.ContextGuest
}

// WithIdentity stores the authenticated staff identity on ctx.
func WithIdentity(ctx context.Context, userID, storeID, email, role string) context.Context {
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, userID)
	ctx = context.WithValue(ctx, constant.ContextKeyStoreID, storeID)
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, email)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}
