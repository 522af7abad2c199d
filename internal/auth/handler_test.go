package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/widyatama/shift-management/internal/auth"
)

// fake service with canned responses per method
type fakeAuthService struct {
	registerUser *auth.User
	registerErr  error

	loginUser  *auth.User
	loginToken string
	loginErr   error

	loggedOutTokens []string

	sessionUser *auth.User
	sessionErr  error
}

func (f *fakeAuthService) Register(_ context.Context, _ auth.RegisterDTO) (*auth.User, error) {
	return f.registerUser, f.registerErr
}

func (f *fakeAuthService) Login(_ context.Context, _ auth.LoginDTO) (*auth.User, string, error) {
	return f.loginUser, f.loginToken, f.loginErr
}

func (f *fakeAuthService) Logout(_ context.Context, token string) error {
	f.loggedOutTokens = append(f.loggedOutTokens, token)
	return nil
}

func (f *fakeAuthService) ResolveSession(_ context.Context, _ string) (*auth.User, error) {
	return f.sessionUser, f.sessionErr
}

var _ = Describe("Auth Handler", func() {
	var (
		svc     *fakeAuthService
		handler *auth.Handler
	)

	BeforeEach(func() {
		svc = &fakeAuthService{}
		handler = auth.NewHandler(svc, auth.CookieConfig{
			Secure: false,
			TTL:    7 * 24 * time.Hour,
		})
	})

	sessionCookie := func(w *httptest.ResponseRecorder) *http.Cookie {
		for _, c := range w.Result().Cookies() {
			if c.Name == auth.SessionCookieName {
				return c
			}
		}
		return nil
	}

	Describe("Login", func() {
		It("should set an HTTP-only session cookie on success", func() {
			svc.loginUser = &auth.User{ID: 1, Username: "alice"}
			svc.loginToken = "opaque-token-value"

			req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"alice","password":"secret"}`))
			w := httptest.NewRecorder()
			handler.Login(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			cookie := sessionCookie(w)
			Expect(cookie).NotTo(BeNil())
			Expect(cookie.Value).To(Equal("opaque-token-value"))
			Expect(cookie.HttpOnly).To(BeTrue())
			Expect(cookie.Path).To(Equal("/"))
			Expect(cookie.MaxAge).To(Equal(int((7 * 24 * time.Hour).Seconds())))

			var body map[string]json.RawMessage
			Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
			Expect(body).To(HaveKey("user"))
			Expect(string(body["user"])).To(ContainSubstring(`"username":"alice"`))
		})

		It("should answer 400 without a cookie on bad credentials", func() {
			svc.loginErr = auth.ErrInvalidCredentials

			req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"alice","password":"wrong"}`))
			w := httptest.NewRecorder()
			handler.Login(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(sessionCookie(w)).To(BeNil())
			Expect(w.Body.String()).To(ContainSubstring("Invalid username or password"))
		})

		It("should reject a malformed body", func() {
			req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader("{not json"))
			w := httptest.NewRecorder()
			handler.Login(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("Logout", func() {
		It("should revoke the session, expire the cookie and redirect home", func() {
			req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
			req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: "opaque-token-value"})
			w := httptest.NewRecorder()
			handler.Logout(w, req)

			Expect(w.Code).To(Equal(http.StatusSeeOther))
			Expect(w.Header().Get("Location")).To(Equal("/"))
			Expect(svc.loggedOutTokens).To(ConsistOf("opaque-token-value"))

			cookie := sessionCookie(w)
			Expect(cookie).NotTo(BeNil())
			Expect(cookie.Value).To(BeEmpty())
			Expect(cookie.MaxAge).To(BeNumerically("<", 0))
		})

		It("should still redirect when no session cookie is present", func() {
			req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
			w := httptest.NewRecorder()
			handler.Logout(w, req)

			Expect(w.Code).To(Equal(http.StatusSeeOther))
		})
	})

	Describe("AuthMiddleware", func() {
		var next http.Handler

		BeforeEach(func() {
			next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				u, ok := auth.UserFromContext(r.Context())
				Expect(ok).To(BeTrue())
				w.Write([]byte(u.Username))
			})
		})

		It("should inject the resolved user into the context", func() {
			svc.sessionUser = &auth.User{ID: 1, Username: "alice"}

			req := httptest.NewRequest(http.MethodGet, "/shifts/user-shifts", nil)
			req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: "opaque-token-value"})
			w := httptest.NewRecorder()
			handler.AuthMiddleware(next).ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(Equal("alice"))
		})

		It("should answer 401 when no session exists", func() {
			svc.sessionErr = auth.ErrNoSession

			req := httptest.NewRequest(http.MethodGet, "/shifts/user-shifts", nil)
			w := httptest.NewRecorder()
			handler.AuthMiddleware(next).ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})
	})
})
