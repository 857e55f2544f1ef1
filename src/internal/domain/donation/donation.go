package donation

import (
	"time"

	"github.com/LeoTiTo/DuduApp-sub000/src/internal/domain/shared"
)

// ===========================
// Donation 聚合根
// ===========================

// Donation 捐款聚合根
//
// 不變條件：
// - 寫入後 userID、associationID、amount、type、createdAt 不可變更
// - 只有 status 與收據偏好可以在寫入後修改
// - amount > 0
type Donation struct {
	donationID    DonationID
	userID        UserID // 零值 = 匿名
	associationID AssociationID
	amount        Amount
	donationType  DonationType
	status        DonationStatus
	receipt       ReceiptPreferences
	createdAt     time.Time

	events []shared.DomainEvent
}

// NewDonation 建立新捐款（發布 DonationRecordedEvent）
//
// 前置條件（由值對象保證）：amount > 0、donationType 為有效值。
// associationID 不可為零值；userID 可為零值（匿名）。
func NewDonation(
	userID UserID,
	associationID AssociationID,
	amount Amount,
	donationType DonationType,
	receipt ReceiptPreferences,
	createdAt time.Time,
) (*Donation, error) {
	if associationID.IsEmpty() {
		return nil, ErrInvalidAssociationID.WithContext("reason", "associationID cannot be empty")
	}
	if amount.Value() <= 0 {
		return nil, ErrInvalidAmount.WithContext("value", amount.Value())
	}
	if _, err := ParseDonationType(string(donationType)); err != nil {
		return nil, err
	}
	if err := receipt.validateFor(donationType); err != nil {
		return nil, err
	}

	d := &Donation{
		donationID:    NewDonationID(),
		userID:        userID,
		associationID: associationID,
		amount:        amount,
		donationType:  donationType,
		status:        initialStatus(donationType),
		receipt:       receipt,
		createdAt:     createdAt.UTC(),
		events:        make([]shared.DomainEvent, 0),
	}

	d.addEvent(NewDonationRecordedEvent(d))
	return d, nil
}

// ReconstructDonation 從持久化存儲重建（不發布事件）
//
// 即使資料來自資料庫也要驗證，避免損壞資料進入領域層。
func ReconstructDonation(
	donationID DonationID,
	userID UserID,
	associationID AssociationID,
	amount int64,
	donationType string,
	status string,
	receipt ReceiptPreferences,
	createdAt time.Time,
) (*Donation, error) {
	if donationID.IsEmpty() {
		return nil, ErrInvalidDonationID.WithContext("reason", "invalid donation ID in database")
	}
	if associationID.IsEmpty() {
		return nil, ErrCorruptedData.WithContext(
			"donation_id", donationID.String(),
			"reason", "missing association",
		)
	}
	amt, err := NewAmount(amount)
	if err != nil {
		return nil, ErrCorruptedData.WithContext(
			"donation_id", donationID.String(),
			"amount", amount,
		)
	}
	dt, err := ParseDonationType(donationType)
	if err != nil {
		return nil, ErrCorruptedData.WithContext(
			"donation_id", donationID.String(),
			"type", donationType,
		)
	}
	st, err := ParseDonationStatus(status)
	if err != nil {
		return nil, ErrCorruptedData.WithContext(
			"donation_id", donationID.String(),
			"status", status,
		)
	}

	return &Donation{
		donationID:    donationID,
		userID:        userID,
		associationID: associationID,
		amount:        amt,
		donationType:  dt,
		status:        st,
		receipt:       receipt,
		createdAt:     createdAt.UTC(),
		events:        make([]shared.DomainEvent, 0),
	}, nil
}

// ===========================
// 查詢方法
// ===========================

// DonationID 捐款 ID
func (d *Donation) DonationID() DonationID { return d.donationID }

// UserID 捐款人（匿名時為零值）
func (d *Donation) UserID() UserID { return d.userID }

// AssociationID 受贈協會
func (d *Donation) AssociationID() AssociationID { return d.associationID }

// Amount 金額
func (d *Donation) Amount() Amount { return d.amount }

// Type 類型
func (d *Donation) Type() DonationType { return d.donationType }

// Status 狀態
func (d *Donation) Status() DonationStatus { return d.status }

// ReceiptPreferences 收據偏好
func (d *Donation) ReceiptPreferences() ReceiptPreferences { return d.receipt }

// CreatedAt 建立時間（UTC）
func (d *Donation) CreatedAt() time.Time { return d.createdAt }

// IsAnonymous 是否為匿名捐款
func (d *Donation) IsAnonymous() bool { return d.userID.IsAnonymous() }

// IsOwnedBy 是否屬於指定使用者（匿名捐款不屬於任何人）
func (d *Donation) IsOwnedBy(userID UserID) bool {
	return !d.IsAnonymous() && d.userID.Equals(userID)
}

// ===========================
// 命令方法（只允許修改狀態與收據偏好）
// ===========================

// ChangeStatus 變更生命週期狀態
func (d *Donation) ChangeStatus(status DonationStatus) error {
	if _, err := ParseDonationStatus(string(status)); err != nil {
		return err
	}
	if d.status == status {
		return nil
	}
	old := d.status
	d.status = status
	d.addEvent(NewDonationStatusChangedEvent(d.donationID, old, status))
	return nil
}

// UpdateReceiptPreferences 更新收據偏好
func (d *Donation) UpdateReceiptPreferences(p ReceiptPreferences) error {
	if err := p.validateFor(d.donationType); err != nil {
		return err
	}
	d.receipt = p
	return nil
}

// ===========================
// 事件管理
// ===========================

func (d *Donation) addEvent(event shared.DomainEvent) {
	d.events = append(d.events, event)
}

// PullEvents 取出並清空待發布事件
func (d *Donation) PullEvents() []shared.DomainEvent {
	events := d.events
	d.events = make([]shared.DomainEvent, 0)
	return events
}
