package middleware

import (
	"context"
	"crypto/rsa"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/DylanGreen12/TenantTrack-sub000/internal/models"
	"github.com/DylanGreen12/TenantTrack-sub000/internal/utils"
)

type contextKey string

const ContextKeyActor = contextKey("actor")

// ActorFromContext returns the authenticated actor, or nil when the
// request never went through AuthMiddleware.
func ActorFromContext(ctx context.Context) *models.Actor {
	actor, _ := ctx.Value(ContextKeyActor).(*models.Actor)
	return actor
}

// AuthMiddleware verifies the Bearer token against the identity
// gateway's RSA public key and stores the resolved Actor in the
// request context. Missing or invalid tokens are rejected with 401;
// there is no unauthenticated fallback.
func AuthMiddleware(pub *rsa.PublicKey) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, err := extractAccessToken(r)
			if err != nil {
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, err.Error(), nil,
				)
				return
			}

			actor, vErr := actorFromToken(tokenStr, pub)
			if vErr != nil {
				if errors.Is(vErr, jwt.ErrTokenExpired) {
					utils.RespondErrorWithCode(
						w, http.StatusUnauthorized, utils.ErrCodeTokenExpired, "Token expired", nil, vErr,
					)
					return
				}
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid token", nil, vErr,
				)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyActor, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractAccessToken(r *http.Request) (string, error) {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", errors.New("missing Authorization header")
	}
	return strings.TrimPrefix(h, "Bearer "), nil
}

// actorFromToken validates the token and maps its claims to the
// closed actor enum. A token whose roles cannot be mapped fails
// validation rather than degrading to some default actor kind.
func actorFromToken(tokenString string, publicKey *rsa.PublicKey) (*models.Actor, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return publicKey, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("missing subject claim")
	}
	email, _ := claims["email"].(string)
	username, _ := claims["username"].(string)

	kind, err := kindFromRoles(claims["roles"])
	if err != nil {
		return nil, err
	}

	return &models.Actor{
		ID:       sub,
		Email:    strings.ToLower(email),
		Username: strings.ToLower(username),
		Kind:     kind,
	}, nil
}

// kindFromRoles picks the most privileged recognized role. Multi-role
// accounts exist (a landlord who is also a tenant elsewhere), so
// precedence is admin > landlord > staff > tenant.
func kindFromRoles(rolesClaim any) (models.ActorKind, error) {
	raw, ok := rolesClaim.([]any)
	if !ok {
		return -1, errors.New("missing roles claim")
	}

	best := models.ActorKind(-1)
	for _, r := range raw {
		s, ok := r.(string)
		if !ok {
			continue
		}
		kind, err := models.ParseActorKind(s)
		if err != nil {
			continue
		}
		if best == -1 || kind < best {
			best = kind
		}
	}
	if best == -1 {
		return -1, errors.New("no recognized role in token")
	}
	return best, nil
}
