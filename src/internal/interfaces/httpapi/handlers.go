package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/LeoTiTo/DuduApp-sub000/src/internal/application/ledger"
	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

// Handler HTTP 入口，只做解碼、呼叫 Use Case、編碼
type Handler struct {
	uc     ledger.Services
	logger *slog.Logger
}

// NewHandler 建構函數
func NewHandler(uc ledger.Services, logger *slog.Logger) *Handler {
	return &Handler{uc: uc, logger: logger}
}

// RecordDonation POST /api/donations
func (h *Handler) RecordDonation(w http.ResponseWriter, r *http.Request) {
	var req recordDonationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.uc.RecordDonation.Execute(r.Context(), SessionFromContext(r.Context()), ledger.RecordDonationCommand{
		AssociationID:  req.AssociationID,
		Amount:         req.Amount,
		Type:           req.Type,
		WantReceipt:    req.ReceiptPreferences.WantReceipt,
		MonthlyReceipt: req.ReceiptPreferences.MonthlyReceipt,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, recordDonationResponse{
		DonationID:     result.DonationID,
		CreatedAt:      result.CreatedAt,
		GoalCompleted:  result.GoalCompleted,
		UnlockedBadges: toBadgeResponses(result.UnlockedBadges),
	})
}

// ListBadges GET /api/users/me/badges
func (h *Handler) ListBadges(w http.ResponseWriter, r *http.Request) {
	result, err := h.uc.UserAchievements.Execute(r.Context(), SessionFromContext(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, badgesResponse{UserID: result.UserID, Badges: toBadgeResponses(result.Badges)})
}

// ListDonations GET /api/users/me/donations
func (h *Handler) ListDonations(w http.ResponseWriter, r *http.Request) {
	result, err := h.uc.UserDonations.Execute(r.Context(), SessionFromContext(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	donations := make([]donationResponse, 0, len(result.Donations))
	for _, v := range result.Donations {
		donations = append(donations, toDonationResponse(v))
	}
	writeJSON(w, http.StatusOK, donationsResponse{
		Donations:          donations,
		TotalAmount:        result.TotalAmount,
		DonationCount:      result.DonationCount,
		TotalByAssociation: result.TotalByAssociation,
	})
}

// UpdateDonationStatus PATCH /api/donations/{donationID}/status
func (h *Handler) UpdateDonationStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	view, err := h.uc.UpdateDonationStatus.Execute(r.Context(), SessionFromContext(r.Context()), ledger.UpdateDonationStatusCommand{
		DonationID:     chi.URLParam(r, "donationID"),
		Status:         req.Status,
		WantReceipt:    req.WantReceipt,
		MonthlyReceipt: req.MonthlyReceipt,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toDonationResponse(*view))
}

// GetGoal GET /api/associations/{associationID}/goal
func (h *Handler) GetGoal(w http.ResponseWriter, r *http.Request) {
	result, err := h.uc.GoalProgress.Execute(r.Context(), chi.URLParam(r, "associationID"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toGoalResponse(result))
}

// CreateGoal POST /api/admin/associations/{associationID}/goal
func (h *Handler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var req createGoalRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.uc.CreateGoal.Execute(r.Context(), ledger.CreateGoalCommand{
		AssociationID: chi.URLParam(r, "associationID"),
		TargetAmount:  req.TargetAmount,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toGoalResponse(result))
}

// Health GET /healthz
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// fail 5xx 記錄日誌，其餘直接返回
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, _ := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	}
	writeError(w, err)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return false
	}
	return true
}
