package echoportal

import (
	"github.com/labstack/echo/v4"

	"github.com/trezcool/lideo/core/identity"
)

var (
	contextStoreKey    = "sessionStore"
	contextIdentityKey = "identity"
)

// sessionMiddleware binds a session store to the request, backed by the
// identity cookie. An unreadable cookie degrades to an anonymous session.
func sessionMiddleware(deps ServerDeps) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			store := identity.NewStore(deps.Auth, newCookieKeeper(ctx, deps.Conf))
			if err := store.Init(); err != nil {
				deps.Logger.Warn("discarding unreadable session cookie", err)
			}
			ctx.Set(contextStoreKey, store)
			if id, _ := store.Current(); id != nil {
				ctx.Set(contextIdentityKey, id)
			}
			return next(ctx)
		}
	}
}

func contextStore(ctx echo.Context) *identity.Store {
	store, _ := ctx.Get(contextStoreKey).(*identity.Store)
	return store
}

func contextIdentity(ctx echo.Context) *identity.Identity {
	id, _ := ctx.Get(contextIdentityKey).(*identity.Identity)
	return id
}

// roleMiddleware gates a route group to authenticated sessions holding one of
// the given roles.
func roleMiddleware(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			id := contextIdentity(ctx)
			if id == nil {
				return errUnauthorized
			}
			for _, role := range roles {
				if id.Role == role {
					return next(ctx)
				}
			}
			return errHttpForbidden
		}
	}
}
