package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	SessionName = "zen_session"

	visitorKey     = "visitor_id"
	lastBookingKey = "last_booking"
	visitorCtxKey  = contextKey("visitor_id")
)

// VisitorSession assigns every browser a stable anonymous visitor id
type VisitorSession struct {
	store  sessions.Store
	logger *slog.Logger
}

// NewCookieStore builds the signed cookie store used for visitor sessions
func NewCookieStore(secret string, maxAge int, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

func NewVisitorSession(store sessions.Store, logger *slog.Logger) *VisitorSession {
	if logger == nil {
		logger = slog.Default()
	}
	return &VisitorSession{store: store, logger: logger}
}

// Middleware loads or creates the visitor id and puts it in the request context.
// A cookie that fails to decode is replaced with a fresh session.
func (v *VisitorSession) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := v.store.Get(r, SessionName)
		if err != nil {
			v.logger.Debug("discarding unreadable session", "error", err)
		}

		visitorID, _ := session.Values[visitorKey].(string)
		if _, parseErr := uuid.Parse(visitorID); parseErr != nil {
			visitorID = uuid.NewString()
			session.Values[visitorKey] = visitorID
			if err := session.Save(r, w); err != nil {
				v.logger.Warn("failed to save visitor session", "error", err)
			}
		}

		ctx := context.WithValue(r.Context(), visitorCtxKey, visitorID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SetLastBooking remembers the booking ids of the latest checkout for the success view
func (v *VisitorSession) SetLastBooking(w http.ResponseWriter, r *http.Request, bookingIDs []string) error {
	session, _ := v.store.Get(r, SessionName)
	session.Values[lastBookingKey] = strings.Join(bookingIDs, ",")
	return session.Save(r, w)
}

// LastBooking returns the booking ids stored by SetLastBooking
func (v *VisitorSession) LastBooking(r *http.Request) []string {
	session, err := v.store.Get(r, SessionName)
	if err != nil {
		return nil
	}
	joined, _ := session.Values[lastBookingKey].(string)
	if joined == "" {
		return nil
	}
	return strings.Split(joined, ",")
}

// VisitorID returns the visitor id set by the session middleware, or ""
func VisitorID(ctx context.Context) string {
	id, _ := ctx.Value(visitorCtxKey).(string)
	return id
}

// WithVisitorID stores a visitor id in ctx
func WithVisitorID(ctx context.Context, visitorID string) context.Context {
	return context.WithValue(ctx, visitorCtxKey, visitorID)
}
