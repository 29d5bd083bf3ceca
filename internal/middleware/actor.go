package middleware

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"tripfront/internal/config"
	"tripfront/internal/utils"
)

const actorCookieName = "tripfront_actor"

// ActorClaims represents the claims in the signed visitor cookie
type ActorClaims struct {
	ActorID string `json:"actor_id"`
	jwt.RegisteredClaims
}

// GenerateActorToken signs a token carrying the given actor ID
func GenerateActorToken(actorID string, cfg *config.SessionConfig) (string, error) {
	claims := ActorClaims{
		ActorID: actorID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(cfg.ActorTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.SecretKey))
}

// ValidateActorToken validates a visitor token and returns the claims
func ValidateActorToken(tokenString string, cfg *config.SessionConfig) (*ActorClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ActorClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.SecretKey), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*ActorClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrTokenMalformed
}

// Actor assigns every request an opaque visitor identity. A valid signed
// cookie keeps its actor ID; a missing, expired, or tampered cookie is
// replaced with a freshly minted one. Handlers and services receive the
// actor ID through the request context, never the transport address.
func Actor(cfg *config.SessionConfig, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actorID := ""
		if cookie, err := r.Cookie(actorCookieName); err == nil {
			if claims, err := ValidateActorToken(cookie.Value, cfg); err == nil {
				actorID = claims.ActorID
			}
		}

		if actorID == "" {
			actorID = uuid.New().String()
			if token, err := GenerateActorToken(actorID, cfg); err == nil {
				http.SetCookie(w, &http.Cookie{
					Name:     actorCookieName,
					Value:    token,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
		}

		next.ServeHTTP(w, r.WithContext(utils.WithActor(r.Context(), actorID)))
	})
}
