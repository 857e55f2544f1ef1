package donation

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ===========================
// Amount 金額值對象
// ===========================

// Amount 捐款金額（整數貨幣單位，不含小數）
//
// 單筆捐款金額必須 > 0；累計金額（Ledger、Goal 進度）可以為 0。
type Amount struct {
	value int64
}

// NewAmount 建構單筆捐款金額（checked 版本，必須 > 0）
func NewAmount(value int64) (Amount, error) {
	if value <= 0 {
		return Amount{}, ErrInvalidAmount.WithContext("value", value)
	}
	return Amount{value: value}, nil
}

// AmountFromDecimal 從外部輸入（JSON、表單）轉換金額
//
// 只接受正整數，例如 15 或 "15.00"；15.5 會被拒絕。
func AmountFromDecimal(d decimal.Decimal) (Amount, error) {
	if !d.IsInteger() {
		return Amount{}, ErrInvalidAmount.WithContext(
			"value", d.String(),
			"reason", "amount must be a whole number",
		)
	}
	if !d.IsPositive() {
		return Amount{}, ErrInvalidAmount.WithContext("value", d.String())
	}
	if d.GreaterThan(decimal.NewFromInt(maxAmount)) {
		return Amount{}, ErrInvalidAmount.WithContext(
			"value", d.String(),
			"reason", fmt.Sprintf("amount exceeds %d", maxAmount),
		)
	}
	return Amount{value: d.IntPart()}, nil
}

// maxAmount 單筆上限，避免累加溢位
const maxAmount int64 = 1_000_000_000

// ZeroAmount 累計用的零值
func ZeroAmount() Amount {
	return Amount{}
}

// newAmountUnchecked 內部建構函數，呼叫者保證 value >= 0
func newAmountUnchecked(value int64) Amount {
	return Amount{value: value}
}

// Value 取得整數值
func (a Amount) Value() int64 {
	return a.value
}

// Add 相加（返回新值）
func (a Amount) Add(other Amount) Amount {
	return newAmountUnchecked(a.value + other.value)
}

// GreaterThanOrEqual 是否 >= other
func (a Amount) GreaterThanOrEqual(other Amount) bool {
	return a.value >= other.value
}

// IsZero 是否為零
func (a Amount) IsZero() bool {
	return a.value == 0
}

// Decimal 轉為 decimal（供 DTO 輸出）
func (a Amount) Decimal() decimal.Decimal {
	return decimal.NewFromInt(a.value)
}

// ===========================
// DonationType
// ===========================

// DonationType 捐款類型
type DonationType string

const (
	DonationTypeSingle    DonationType = "single"
	DonationTypeRecurrent DonationType = "recurrent"
)

// ParseDonationType 解析捐款類型
func ParseDonationType(s string) (DonationType, error) {
	switch DonationType(s) {
	case DonationTypeSingle, DonationTypeRecurrent:
		return DonationType(s), nil
	default:
		return "", ErrInvalidDonationType.WithContext("input", s)
	}
}

// ===========================
// DonationStatus
// ===========================

// DonationStatus 捐款生命週期狀態
type DonationStatus string

const (
	StatusCompleted DonationStatus = "completed"
	StatusActive    DonationStatus = "active"
	StatusPaused    DonationStatus = "paused"
	StatusCancelled DonationStatus = "cancelled"
)

// ParseDonationStatus 解析狀態
func ParseDonationStatus(s string) (DonationStatus, error) {
	switch DonationStatus(s) {
	case StatusCompleted, StatusActive, StatusPaused, StatusCancelled:
		return DonationStatus(s), nil
	default:
		return "", ErrInvalidStatus.WithContext("input", s)
	}
}

// initialStatus 新捐款的預設狀態
func initialStatus(t DonationType) DonationStatus {
	if t == DonationTypeRecurrent {
		return StatusActive
	}
	return StatusCompleted
}

// ===========================
// ReceiptPreferences
// ===========================

// ReceiptPreferences 收據偏好
type ReceiptPreferences struct {
	WantReceipt    bool
	MonthlyReceipt bool
}

// validateFor 每月收據只適用於定期捐款
func (p ReceiptPreferences) validateFor(t DonationType) error {
	if p.MonthlyReceipt && t != DonationTypeRecurrent {
		return ErrInvalidReceiptPreferences.WithContext("type", string(t))
	}
	return nil
}
