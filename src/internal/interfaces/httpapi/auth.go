package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/LeoTiTo/DuduApp-sub000/src/internal/application/ledger"
	"github.com/LeoTiTo/DuduApp-sub000/src/internal/domain/achievement"
	"github.com/golang-jwt/jwt/v4"
)

type contextKey string

const (
	sessionKey   contextKey = "session"
	bearerSchema            = "Bearer "
)

var errUnexpectedSigningMethod = errors.New("unexpected signing method")

// Claims JWT 內容：sub 為使用者 ID
type Claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Authenticator 驗證 HS256 token，將呼叫者身分放進 request context
type Authenticator struct {
	secret []byte
}

// NewAuthenticator 建構函數
func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

// GenerateToken 簽發 token（管理工具與測試使用）
func (a *Authenticator) GenerateToken(session ledger.Session, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: session.Email,
		Role:  session.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// OptionalAuth 沒有 token 時以匿名身分繼續；token 無效時返回 401
func (a *Authenticator) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := extractToken(r)
		if tokenString == "" {
			next.ServeHTTP(w, r.WithContext(withSession(r.Context(), ledger.AnonymousSession())))
			return
		}

		session, err := a.parse(tokenString)
		if err != nil {
			writeError(w, achievement.ErrUnauthenticated)
			return
		}
		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), session)))
	})
}

// RequireAuth 必須帶有效 token
func (a *Authenticator) RequireAuth(next http.Handler) http.Handler {
	return a.OptionalAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if SessionFromContext(r.Context()).IsAnonymous() {
			writeError(w, achievement.ErrUnauthenticated)
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// RequireAdmin 必須是管理員
func (a *Authenticator) RequireAdmin(next http.Handler) http.Handler {
	return a.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !SessionFromContext(r.Context()).IsAdmin() {
			writeJSON(w, http.StatusForbidden, errorResponse{Error: errorBody{
				Code:    "FORBIDDEN",
				Message: "admin role required",
			}})
			return
		}
		next.ServeHTTP(w, r)
	}))
}

func (a *Authenticator) parse(tokenString string) (ledger.Session, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errUnexpectedSigningMethod
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return ledger.Session{}, achievement.ErrUnauthenticated
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || strings.TrimSpace(claims.Subject) == "" {
		return ledger.Session{}, achievement.ErrUnauthenticated
	}
	return ledger.Session{
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}

func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, bearerSchema) {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, bearerSchema))
	}
	return ""
}

func withSession(ctx context.Context, session ledger.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// SessionFromContext 取出呼叫者；沒有時視為匿名
func SessionFromContext(ctx context.Context) ledger.Session {
	session, ok := ctx.Value(sessionKey).(ledger.Session)
	if !ok {
		return ledger.AnonymousSession()
	}
	return session
}
