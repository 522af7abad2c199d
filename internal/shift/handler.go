package shift

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/widyatama/shift-management/internal"
	"github.com/widyatama/shift-management/internal/auth"
	"github.com/widyatama/shift-management/internal/transport"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(base *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: base,
		Service:     service,
	}
}

// ListAvailable handles GET /shifts. Open shifts only, grouped by date.
// An optional ?date=YYYY-MM-DD narrows the listing to one day.
func (h *Handler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	groups, err := h.Service.ListAvailable(r.Context(), date)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"days": groups,
	})
}

// GetShift handles GET /shifts/{id}.
func (h *Handler) GetShift(w http.ResponseWriter, r *http.Request) {
	shiftID, err := h.shiftIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid shift id")
		return
	}

	detail, err := h.Service.GetShift(r.Context(), shiftID)
	if err != nil {
		if errors.Is(err, ErrShiftNotFound) {
			h.HandleServiceError(w, internal.NewNotFoundError("Shift not found", internal.ErrCodeShiftNotFound))
			return
		}
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"shift": detail,
	})
}

// UserShifts handles GET /shifts/user-shifts for the authenticated user.
func (h *Handler) UserShifts(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	shifts, err := h.Service.ListUserShifts(r.Context(), user.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"shifts": shifts,
	})
}

// Apply handles POST /shifts/{id}/apply.
func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	shiftID, err := h.shiftIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid shift id")
		return
	}

	assigned, err := h.Service.Apply(r.Context(), shiftID, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, ErrAlreadyAssigned):
			h.WriteError(w, http.StatusBadRequest, "You already have an assigned shift")
		case errors.Is(err, ErrShiftUnavailable):
			h.WriteError(w, http.StatusBadRequest, "Shift is not available")
		default:
			h.HandleServiceError(w, err)
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, ApplyResponse{
		Message: "Shift assigned successfully",
		Shift:   assigned,
	})
}

// Withdraw handles POST /shifts/{id}/withdraw.
func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	shiftID, err := h.shiftIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid shift id")
		return
	}

	released, err := h.Service.Withdraw(r.Context(), shiftID, user.ID)
	if err != nil {
		if errors.Is(err, ErrNotOwner) {
			h.WriteError(w, http.StatusBadRequest, "You are not assigned to this shift")
			return
		}
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, WithdrawResponse{
		Message: "Shift withdrawn successfully",
		Shift:   released,
	})
}

func (h *Handler) shiftIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
