package dynamo

import (
	"time"

	"github.com/LeoTiTo/DuduApp-sub000/src/internal/domain/donation"
)

// ===========================
// DynamoDB Item 結構
// ===========================

// donationItem donations 資料表
//
// 匿名捐款不寫 user_id，因此不會出現在 user_id-created_at 索引中。
// 時間以 UTC unix 奈秒儲存，索引排序鍵可直接比較。
type donationItem struct {
	DonationID     string `dynamodbav:"donation_id"`
	UserID         string `dynamodbav:"user_id,omitempty"`
	AssociationID  string `dynamodbav:"association_id"`
	Amount         int64  `dynamodbav:"amount"`
	Type           string `dynamodbav:"type"`
	Status         string `dynamodbav:"status"`
	WantReceipt    bool   `dynamodbav:"want_receipt"`
	MonthlyReceipt bool   `dynamodbav:"monthly_receipt"`
	CreatedAt      int64  `dynamodbav:"created_at"`
	UpdatedAt      int64  `dynamodbav:"updated_at"`
}

// goalItem goals 資料表（partition key: association_id）
type goalItem struct {
	AssociationID string `dynamodbav:"association_id"`
	GoalID        string `dynamodbav:"goal_id"`
	TargetAmount  int64  `dynamodbav:"target_amount"`
	Completed     bool   `dynamodbav:"completed"`
	CompletedAt   *int64 `dynamodbav:"completed_at,omitempty"`
	CompletedBy   string `dynamodbav:"completed_by,omitempty"`
	CreatedAt     int64  `dynamodbav:"created_at"`
}

// userBadgesItem users 資料表的徽章投影
type userBadgesItem struct {
	UserID string   `dynamodbav:"user_id"`
	Badges []string `dynamodbav:"badges,stringset,omitempty"`
}

func toNanos(t time.Time) int64 {
	return t.UTC().UnixNano()
}

func fromNanos(n int64) time.Time {
	return time.Unix(0, n).UTC()
}

// ===========================
// Domain ↔ Item 轉換
// ===========================

func toDonationItem(d *donation.Donation) donationItem {
	item := donationItem{
		DonationID:     d.DonationID().String(),
		AssociationID:  d.AssociationID().String(),
		Amount:         d.Amount().Value(),
		Type:           string(d.Type()),
		Status:         string(d.Status()),
		WantReceipt:    d.ReceiptPreferences().WantReceipt,
		MonthlyReceipt: d.ReceiptPreferences().MonthlyReceipt,
		CreatedAt:      toNanos(d.CreatedAt()),
		UpdatedAt:      toNanos(d.CreatedAt()),
	}
	if !d.IsAnonymous() {
		item.UserID = d.UserID().String()
	}
	return item
}

func toDomainDonation(item donationItem) (*donation.Donation, error) {
	id, err := donation.DonationIDFromString(item.DonationID)
	if err != nil {
		return nil, donation.ErrCorruptedData.WithContext(
			"id", item.DonationID,
			"reason", "invalid UUID format in table",
		)
	}

	userID := donation.AnonymousUser()
	if item.UserID != "" {
		userID, err = donation.NewUserID(item.UserID)
		if err != nil {
			return nil, donation.ErrCorruptedData.WithContext("id", item.DonationID, "user_id", item.UserID)
		}
	}

	associationID, err := donation.NewAssociationID(item.AssociationID)
	if err != nil {
		return nil, donation.ErrCorruptedData.WithContext("id", item.DonationID, "association_id", item.AssociationID)
	}

	return donation.ReconstructDonation(
		id,
		userID,
		associationID,
		item.Amount,
		item.Type,
		item.Status,
		donation.ReceiptPreferences{
			WantReceipt:    item.WantReceipt,
			MonthlyReceipt: item.MonthlyReceipt,
		},
		fromNanos(item.CreatedAt),
	)
}

func toGoalItem(g *donation.Goal) goalItem {
	item := goalItem{
		AssociationID: g.AssociationID().String(),
		GoalID:        g.GoalID().String(),
		TargetAmount:  g.TargetAmount().Value(),
		Completed:     g.IsCompleted(),
		CreatedAt:     toNanos(g.CreatedAt()),
	}
	if at := g.CompletedAt(); at != nil {
		n := toNanos(*at)
		item.CompletedAt = &n
	}
	if !g.CompletedBy().IsAnonymous() {
		item.CompletedBy = g.CompletedBy().String()
	}
	return item
}

func toDomainGoal(item goalItem) (*donation.Goal, error) {
	id, err := donation.GoalIDFromString(item.GoalID)
	if err != nil {
		return nil, donation.ErrCorruptedData.WithContext(
			"id", item.GoalID,
			"reason", "invalid UUID format in table",
		)
	}
	associationID, err := donation.NewAssociationID(item.AssociationID)
	if err != nil {
		return nil, donation.ErrCorruptedData.WithContext("id", item.GoalID, "association_id", item.AssociationID)
	}

	completedBy := donation.AnonymousUser()
	if item.CompletedBy != "" {
		completedBy, err = donation.NewUserID(item.CompletedBy)
		if err != nil {
			return nil, donation.ErrCorruptedData.WithContext("id", item.GoalID, "completed_by", item.CompletedBy)
		}
	}

	var completedAt *time.Time
	if item.CompletedAt != nil {
		t := fromNanos(*item.CompletedAt)
		completedAt = &t
	}

	return donation.ReconstructGoal(
		id,
		associationID,
		item.TargetAmount,
		fromNanos(item.CreatedAt),
		item.Completed,
		completedAt,
		completedBy,
	)
}
