package api

import (
	"crypto/rsa"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/gofrs/uuid/v5"

	"github.com/longkeutn/cong-thong-tin-sht/internal/entity"
	"github.com/longkeutn/cong-thong-tin-sht/pkg/logger"
)

// identityHeader is set by the SSO reverse proxy in front of the portal.
const identityHeader = "X-Auth-Request-Email"

type Middleware struct {
	jwtPublicKey     *rsa.PublicKey
	devFallbackEmail string
}

func NewMiddleware(jwtPublicKey *rsa.PublicKey, devFallbackEmail string) *Middleware {
	return &Middleware{
		jwtPublicKey:     jwtPublicKey,
		devFallbackEmail: devFallbackEmail,
	}
}

func (m *Middleware) Cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}

		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Origin, Accept, User-Agent, Cache-Control")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) Log(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ctx := logger.SetRequestID(r.Context(), uuid.Must(uuid.NewV4()).String())
		ctx = logger.SetMethod(ctx, r.Method)
		ctx = logger.SetURL(ctx, r.URL.Path)
		ctx = logger.SetIP(ctx, clientIP(r))
		ctx = logger.SetUserEmail(ctx, entity.EmailFromCtx(ctx))

		slog.InfoContext(ctx, "incoming request")

		next.ServeHTTP(w, r.WithContext(ctx))

		duration := time.Since(start)
		slog.InfoContext(ctx, "request completed", "duration_ms", duration.Milliseconds())
	})
}

func (m *Middleware) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			err := recover()
			if err != nil {
				slog.ErrorContext(r.Context(), "panic", "error", err, "stack", string(debug.Stack()))
				w.WriteHeader(http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// WithIdentity resolves the requesting email and stores it in the context.
// Resolution order: Bearer JWT email claim (when a verification key is
// configured), then the SSO proxy header, then the dev fallback. An
// unresolved identity stays empty and becomes the guest profile
// downstream; it is never an error.
func (m *Middleware) WithIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email := m.resolveEmail(r)

		ctx := entity.WithEmail(r.Context(), email)
		ctx = logger.SetUserEmail(ctx, email)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Middleware) resolveEmail(r *http.Request) string {
	if m.jwtPublicKey != nil {
		if email := m.emailFromBearer(r); email != "" {
			return email
		}
	}

	if email := strings.TrimSpace(r.Header.Get(identityHeader)); email != "" {
		return email
	}

	return m.devFallbackEmail
}

func (m *Middleware) emailFromBearer(r *http.Request) string {
	auth := r.Header.Get("Authorization")

	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}

	claims := jwt.MapClaims{}

	_, err := jwt.ParseWithClaims(
		strings.TrimPrefix(auth, prefix), claims,
		func(*jwt.Token) (any, error) { return m.jwtPublicKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
	)
	if err != nil {
		slog.WarnContext(r.Context(), "invalid bearer token", "error", err.Error())
		return ""
	}

	email, _ := claims["email"].(string)

	return strings.TrimSpace(email)
}

func clientIP(r *http.Request) string {
	ip := removePort(r.RemoteAddr)

	if xForwardedFor := r.Header.Get("X-Forwarded-For"); xForwardedFor != "" {
		for _, part := range strings.Split(xForwardedFor, ",") {
			part = removePort(strings.TrimSpace(part))
			if net.ParseIP(part) != nil {
				ip = part
				break
			}
		}
	}

	if xRealIP := removePort(r.Header.Get("X-Real-IP")); xRealIP != "" && net.ParseIP(xRealIP) != nil {
		ip = xRealIP
	}

	return ip
}

func removePort(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}

	return host
}
