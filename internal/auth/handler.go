package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/widyatama/shift-management/internal"
	"github.com/widyatama/shift-management/internal/transport"
	"github.com/widyatama/shift-management/pkg/logger"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "session_token"

// CookieConfig controls how the session cookie is issued.
type CookieConfig struct {
	Secure bool
	TTL    time.Duration
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	Cookies CookieConfig
}

func NewHandler(svc ServiceAPI, cookies CookieConfig) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
		Cookies:     cookies,
	}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.Service.Register(r.Context(), dto)
	if err != nil {
		h.Logger.Warn("registration failed", "username", dto.Username, "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("registration successful", "user_id", user.ID, "username", user.Username)
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.Service.Login(r.Context(), dto)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			h.Logger.Warn("login failed", "username", dto.Username)
			h.WriteError(w, http.StatusBadRequest, "Invalid username or password")
			return
		}
		h.HandleServiceError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.Cookies.Secure,
		MaxAge:   int(h.Cookies.TTL.Seconds()),
		SameSite: http.SameSiteLaxMode,
	})

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := h.sessionToken(r)
	if err := h.Service.Logout(r.Context(), token); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	// expire the cookie client-side as well
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.Cookies.Secure,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// AuthMiddleware resolves the session cookie into a user and injects it
// into the request context. Requests without a valid session get a 401.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.sessionToken(r)

		user, err := h.Service.ResolveSession(r.Context(), token)
		if err != nil {
			if errors.Is(err, ErrNoSession) {
				h.HandleServiceError(w, internal.NewUnauthorizedError("Authentication required", internal.ErrCodeNoSession))
				return
			}
			h.HandleServiceError(w, err)
			return
		}

		ctx := ContextWithUser(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) sessionToken(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
