package donation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestLedgerCalculationService_Calculate(t *testing.T) {
	// Arrange
	svc := NewLedgerCalculationService()
	now := time.Now()
	history := []*Donation{
		donationAt(t, "u1", "assoc-a", 10, now),
		donationAt(t, "u1", "assoc-a", 25, now),
		donationAt(t, "u1", "assoc-b", 60, now),
	}

	// Act
	ledger := svc.Calculate(history)

	// Assert
	assert.Equal(t, int64(95), ledger.TotalAmount.Value())
	assert.Equal(t, 3, ledger.DonationCount)
	assert.Equal(t, 2, ledger.CountFor(mustAssociation(t, "assoc-a")))
	assert.Equal(t, 1, ledger.CountFor(mustAssociation(t, "assoc-b")))
	assert.Equal(t, int64(35), ledger.TotalFor(mustAssociation(t, "assoc-a")).Value())
	assert.Equal(t, int64(60), ledger.TotalFor(mustAssociation(t, "assoc-b")).Value())
	assert.Equal(t, 0, ledger.CountFor(mustAssociation(t, "assoc-c")))
}

func TestLedgerCalculationService_EmptyHistory(t *testing.T) {
	ledger := NewLedgerCalculationService().Calculate(nil)

	assert.True(t, ledger.TotalAmount.IsZero())
	assert.Equal(t, 0, ledger.DonationCount)
	assert.NotNil(t, ledger.CountByAssociation)
}

func TestMergeDonation_AddsMissingAndDeduplicates(t *testing.T) {
	now := time.Now()
	d1 := donationAt(t, "u1", "a", 10, now)
	d2 := donationAt(t, "u1", "a", 20, now)

	merged := MergeDonation([]*Donation{d1}, d2)
	require.Len(t, merged, 2)

	again := MergeDonation(merged, d2)
	assert.Len(t, again, 2, "已存在的捐款不應重複加入")
}

func TestAmountFromDecimal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{"整數", "15", 15, false},
		{"帶零小數", "15.00", 15, false},
		{"小數", "15.5", 0, true},
		{"零", "0", 0, true},
		{"負數", "-3", 0, true},
		{"超過上限", "1000000001", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := decimalFromString(t, tt.input)

			got, err := AmountFromDecimal(d)

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Value())
		})
	}
}

func TestNewUserID_TrimsAndValidates(t *testing.T) {
	u, err := NewUserID("  uid-42 ")
	require.NoError(t, err)
	assert.Equal(t, "uid-42", u.String())

	_, err = NewUserID("   ")
	assert.ErrorIs(t, err, ErrInvalidUserID)
}
