package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/LeoTiTo/DuduApp-sub000/src/internal/domain/achievement"
	"github.com/LeoTiTo/DuduApp-sub000/src/internal/domain/donation"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

// statusFor 領域錯誤代碼 → HTTP 狀態碼
func statusFor(err error) (int, errorBody) {
	var de *donation.DomainError
	if errors.As(err, &de) {
		body := errorBody{Code: string(de.Code), Message: de.Message}
		switch de.Code {
		case donation.ErrCodeInvalidDonationID,
			donation.ErrCodeInvalidGoalID,
			donation.ErrCodeInvalidUserID,
			donation.ErrCodeInvalidAssociationID,
			donation.ErrCodeInvalidAmount,
			donation.ErrCodeInvalidDonationType,
			donation.ErrCodeInvalidStatus,
			donation.ErrCodeInvalidReceipt:
			return http.StatusBadRequest, body
		case donation.ErrCodeNotDonationOwner:
			return http.StatusForbidden, body
		case donation.ErrCodeDonationNotFound, donation.ErrCodeGoalNotFound:
			return http.StatusNotFound, body
		case donation.ErrCodeDonationAlreadyExists,
			donation.ErrCodeGoalAlreadyExists,
			donation.ErrCodeGoalAlreadyCompleted:
			return http.StatusConflict, body
		}
		return http.StatusInternalServerError, errorBody{Code: string(de.Code), Message: "internal error"}
	}

	var ae *achievement.DomainError
	if errors.As(err, &ae) {
		if ae.Code == achievement.ErrCodeUnauthenticated {
			return http.StatusUnauthorized, errorBody{Code: string(ae.Code), Message: ae.Message}
		}
		return http.StatusInternalServerError, errorBody{Code: string(ae.Code), Message: "internal error"}
	}

	return http.StatusInternalServerError, errorBody{Code: "INTERNAL", Message: "internal error"}
}

func writeError(w http.ResponseWriter, err error) {
	status, body := statusFor(err)
	writeJSON(w, status, errorResponse{Error: body})
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: errorBody{Code: "BAD_REQUEST", Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
