package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type ctxKey string

const (
	CtxSubject  ctxKey = "sub"
	CtxUserRole ctxKey = "role"
)

// RoleAdmin is the role allowed on /admin routes.
const RoleAdmin = "admin"

// Claims is the token payload: a subject plus a role.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTAuth validates an HS256 bearer token and puts its subject and role in
// the request context.
func JWTAuth(secret string) func(http.Handler) http.Handler {
	secretBytes := []byte(secret)
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "missing or invalid Authorization header"})
				return
			}

			var claims Claims
			token, err := parser.ParseWithClaims(strings.TrimPrefix(authHeader, "Bearer "), &claims, func(*jwt.Token) (any, error) {
				return secretBytes, nil
			})
			if err != nil || !token.Valid {
				writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "invalid token"})
				return
			}

			ctx := context.WithValue(r.Context(), CtxSubject, claims.Subject)
			ctx = context.WithValue(ctx, CtxUserRole, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnly only lets role == "admin" through.
func AdminOnly() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, _ := r.Context().Value(CtxUserRole).(string)
			if role != RoleAdmin {
				writeJSON(w, http.StatusForbidden, ErrorResponse{Error: "admin only"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SubjectFromContext returns the authenticated subject, or "".
func SubjectFromContext(ctx context.Context) string {
	sub, _ := ctx.Value(CtxSubject).(string)
	return sub
}
