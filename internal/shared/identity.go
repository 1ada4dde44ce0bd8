package shared

import (
	"context"
	"net/http"
	"strconv"

	"github.com/measurebook/measurebook/internal/platform/httpx"
)

const (
	sessionKeyCompanyID = "company_id"
)

// Identity is the authenticated caller: a user acting for a company. All
// project queries are scoped to Identity.CompanyID.
type Identity struct {
	UserID    int64
	CompanyID int64
}

type identityContextKey struct{}

// ContextWithIdentity stores the caller identity in context.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// IdentityFromContext extracts the caller identity, if present.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityContextKey{}).(Identity)
	return id, ok
}

// BindIdentity records the authenticated user and company on the session.
func BindIdentity(sess *Session, userID, companyID int64) {
	sess.SetUser(strconv.FormatInt(userID, 10))
	sess.Set(sessionKeyCompanyID, strconv.FormatInt(companyID, 10))
}

// identityFromSession resolves the identity stored on a session.
func identityFromSession(sess *Session) (Identity, bool) {
	if sess == nil || sess.User() == "" {
		return Identity{}, false
	}
	userID, err := strconv.ParseInt(sess.User(), 10, 64)
	if err != nil || userID <= 0 {
		return Identity{}, false
	}
	companyID, err := strconv.ParseInt(sess.Get(sessionKeyCompanyID), 10, 64)
	if err != nil || companyID <= 0 {
		return Identity{}, false
	}
	return Identity{UserID: userID, CompanyID: companyID}, true
}

// RequireAuth rejects requests without an authenticated session and puts
// the caller identity into the request context for downstream handlers.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFromContext(r.Context())
		id, ok := identityFromSession(sess)
		if !ok {
			httpx.RespondError(w, httpx.ErrUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithIdentity(r.Context(), id)))
	})
}
