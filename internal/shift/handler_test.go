package shift_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/widyatama/shift-management/internal/auth"
	"github.com/widyatama/shift-management/internal/shift"
	"github.com/widyatama/shift-management/internal/transport"
	"github.com/widyatama/shift-management/pkg/logger"
)

// fake service recording the last call and returning canned results
type fakeShiftService struct {
	lastShiftID int64
	lastUserID  int64

	groups    []shift.DayGroup
	detail    *shift.ShiftWithCompany
	detailErr error
	held      []*shift.Shift

	applyResult    *shift.Shift
	applyErr       error
	withdrawResult *shift.Shift
	withdrawErr    error
}

func (f *fakeShiftService) ListAvailable(_ context.Context, _ string) ([]shift.DayGroup, error) {
	return f.groups, nil
}

func (f *fakeShiftService) GetShift(_ context.Context, shiftID int64) (*shift.ShiftWithCompany, error) {
	f.lastShiftID = shiftID
	return f.detail, f.detailErr
}

func (f *fakeShiftService) ListUserShifts(_ context.Context, userID int64) ([]*shift.Shift, error) {
	f.lastUserID = userID
	return f.held, nil
}

func (f *fakeShiftService) Apply(_ context.Context, shiftID, userID int64) (*shift.Shift, error) {
	f.lastShiftID = shiftID
	f.lastUserID = userID
	return f.applyResult, f.applyErr
}

func (f *fakeShiftService) Withdraw(_ context.Context, shiftID, userID int64) (*shift.Shift, error) {
	f.lastShiftID = shiftID
	f.lastUserID = userID
	return f.withdrawResult, f.withdrawErr
}

var _ = Describe("Shift Handler", func() {
	var (
		svc     *fakeShiftService
		handler *shift.Handler
		router  *chi.Mux
	)

	currentUser := &auth.User{ID: 7, Username: "alice"}

	BeforeEach(func() {
		svc = &fakeShiftService{}
		handler = shift.NewHandler(transport.NewBaseHandler(logger.L()), svc)

		router = chi.NewRouter()
		router.Get("/shifts", handler.ListAvailable)
		router.Get("/shifts/user-shifts", handler.UserShifts)
		router.Get("/shifts/{id}", handler.GetShift)
		router.Post("/shifts/{id}/apply", handler.Apply)
		router.Post("/shifts/{id}/withdraw", handler.Withdraw)
	})

	asUser := func(req *http.Request) *http.Request {
		return req.WithContext(auth.ContextWithUser(req.Context(), currentUser))
	}

	Describe("Apply", func() {
		It("should apply on behalf of the authenticated user", func() {
			userID := int64(7)
			svc.applyResult = &shift.Shift{ID: 3, UserID: &userID}

			req := asUser(httptest.NewRequest(http.MethodPost, "/shifts/3/apply", nil))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(svc.lastShiftID).To(Equal(int64(3)))
			Expect(svc.lastUserID).To(Equal(int64(7)))

			var resp shift.ApplyResponse
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Message).To(ContainSubstring("assigned"))
			Expect(resp.Shift.ID).To(Equal(int64(3)))
		})

		It("should answer 400 when the user already holds a shift", func() {
			svc.applyErr = shift.ErrAlreadyAssigned

			req := asUser(httptest.NewRequest(http.MethodPost, "/shifts/3/apply", nil))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Body.String()).To(ContainSubstring("already have an assigned shift"))
		})

		It("should answer 400 when the shift is taken", func() {
			svc.applyErr = shift.ErrShiftUnavailable

			req := asUser(httptest.NewRequest(http.MethodPost, "/shifts/3/apply", nil))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Body.String()).To(ContainSubstring("not available"))
		})

		It("should answer 401 without an authenticated user", func() {
			req := httptest.NewRequest(http.MethodPost, "/shifts/3/apply", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})

		It("should reject a non-numeric shift id", func() {
			req := asUser(httptest.NewRequest(http.MethodPost, "/shifts/abc/apply", nil))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("Withdraw", func() {
		It("should answer 400 when the user does not own the shift", func() {
			svc.withdrawErr = shift.ErrNotOwner

			req := asUser(httptest.NewRequest(http.MethodPost, "/shifts/3/withdraw", nil))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Body.String()).To(ContainSubstring("not assigned"))
		})

		It("should return the released shift", func() {
			svc.withdrawResult = &shift.Shift{ID: 3}

			req := asUser(httptest.NewRequest(http.MethodPost, "/shifts/3/withdraw", nil))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp shift.WithdrawResponse
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Shift.UserID).To(BeNil())
		})
	})

	Describe("GetShift", func() {
		It("should answer 404 for a missing shift", func() {
			svc.detailErr = shift.ErrShiftNotFound

			req := httptest.NewRequest(http.MethodGet, "/shifts/999", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("should return the shift detail", func() {
			svc.detail = &shift.ShiftWithCompany{
				Shift:       shift.Shift{ID: 1, Position: "Emergency Room Nurse"},
				CompanyName: "City General Hospital",
			}

			req := httptest.NewRequest(http.MethodGet, "/shifts/1", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring("City General Hospital"))
		})
	})

	Describe("UserShifts", func() {
		It("should list the authenticated user's shifts", func() {
			svc.held = []*shift.Shift{{ID: 1}}

			req := asUser(httptest.NewRequest(http.MethodGet, "/shifts/user-shifts", nil))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(svc.lastUserID).To(Equal(int64(7)))
		})
	})

	Describe("ListAvailable", func() {
		It("should return grouped days", func() {
			svc.groups = []shift.DayGroup{{Date: "2025-03-02"}}

			req := httptest.NewRequest(http.MethodGet, "/shifts?date=2025-03-02", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring("2025-03-02"))
		})
	})
})
