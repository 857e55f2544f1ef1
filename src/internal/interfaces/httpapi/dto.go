package httpapi

import (
	"time"

	"github.com/LeoTiTo/DuduApp-sub000/src/internal/application/ledger"
	"github.com/shopspring/decimal"
)

// ===========================
// Request
// ===========================

type receiptPreferencesRequest struct {
	WantReceipt    bool `json:"wantReceipt"`
	MonthlyReceipt bool `json:"monthlyReceipt"`
}

type recordDonationRequest struct {
	AssociationID      string                    `json:"associationId"`
	Amount             decimal.Decimal           `json:"amount"`
	Type               string                    `json:"type"`
	ReceiptPreferences receiptPreferencesRequest `json:"receiptPreferences"`
}

type createGoalRequest struct {
	TargetAmount decimal.Decimal `json:"targetAmount"`
}

type updateStatusRequest struct {
	Status         string `json:"status"`
	WantReceipt    *bool  `json:"wantReceipt"`
	MonthlyReceipt *bool  `json:"monthlyReceipt"`
}

// ===========================
// Response
// ===========================

type badgeResponse struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	ImageRef    string `json:"imageRef"`
}

type recordDonationResponse struct {
	DonationID     string          `json:"donationId"`
	CreatedAt      time.Time       `json:"createdAt"`
	GoalCompleted  bool            `json:"goalCompleted"`
	UnlockedBadges []badgeResponse `json:"unlockedBadges"`
}

type badgesResponse struct {
	UserID string          `json:"userId"`
	Badges []badgeResponse `json:"badges"`
}

type donationResponse struct {
	DonationID     string    `json:"donationId"`
	AssociationID  string    `json:"associationId"`
	Amount         int64     `json:"amount"`
	Type           string    `json:"type"`
	Status         string    `json:"status"`
	WantReceipt    bool      `json:"wantReceipt"`
	MonthlyReceipt bool      `json:"monthlyReceipt"`
	CreatedAt      time.Time `json:"createdAt"`
}

type donationsResponse struct {
	Donations          []donationResponse `json:"donations"`
	TotalAmount        int64              `json:"totalAmount"`
	DonationCount      int                `json:"donationCount"`
	TotalByAssociation map[string]int64   `json:"totalByAssociation"`
}

type goalResponse struct {
	GoalID        string     `json:"goalId"`
	AssociationID string     `json:"associationId"`
	TargetAmount  int64      `json:"targetAmount"`
	RaisedAmount  int64      `json:"raisedAmount"`
	Completed     bool       `json:"completed"`
	CompletedBy   string     `json:"completedBy,omitempty"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// ===========================
// 轉換
// ===========================

func toBadgeResponses(badges []ledger.UnlockedBadge) []badgeResponse {
	out := make([]badgeResponse, 0, len(badges))
	for _, b := range badges {
		out = append(out, badgeResponse{ID: string(b.ID), DisplayName: b.DisplayName, ImageRef: b.ImageRef})
	}
	return out
}

func toDonationResponse(v ledger.DonationView) donationResponse {
	return donationResponse{
		DonationID:     v.DonationID,
		AssociationID:  v.AssociationID,
		Amount:         v.Amount,
		Type:           v.Type,
		Status:         v.Status,
		WantReceipt:    v.WantReceipt,
		MonthlyReceipt: v.MonthlyReceipt,
		CreatedAt:      v.CreatedAt,
	}
}

func toGoalResponse(g *ledger.GoalProgressResult) goalResponse {
	return goalResponse{
		GoalID:        g.GoalID,
		AssociationID: g.AssociationID,
		TargetAmount:  g.TargetAmount,
		RaisedAmount:  g.RaisedAmount,
		Completed:     g.Completed,
		CompletedBy:   g.CompletedBy,
		CompletedAt:   g.CompletedAt,
		CreatedAt:     g.CreatedAt,
	}
}
