package donation

// ===========================
// LedgerCalculationService 領域服務
// ===========================

// Ledger 由捐款歷史推導出的累計資料
type Ledger struct {
	TotalAmount        Amount
	DonationCount      int
	CountByAssociation map[AssociationID]int
	TotalByAssociation map[AssociationID]Amount
}

// CountFor 指定協會的捐款次數
func (l Ledger) CountFor(associationID AssociationID) int {
	return l.CountByAssociation[associationID]
}

// TotalFor 指定協會的累計金額
func (l Ledger) TotalFor(associationID AssociationID) Amount {
	return l.TotalByAssociation[associationID]
}

// LedgerCalculationService 累計帳本計算服務
//
// 無狀態；每次都從完整歷史重新計算，不維護累加計數器，
// 因此結果不會與歷史產生漂移。
type LedgerCalculationService struct{}

// NewLedgerCalculationService 建構函數
func NewLedgerCalculationService() *LedgerCalculationService {
	return &LedgerCalculationService{}
}

// Calculate O(n) 計算總額、各協會次數與金額
func (s *LedgerCalculationService) Calculate(donations []*Donation) Ledger {
	ledger := Ledger{
		TotalAmount:        ZeroAmount(),
		CountByAssociation: make(map[AssociationID]int),
		TotalByAssociation: make(map[AssociationID]Amount),
	}

	for _, d := range donations {
		if d == nil {
			continue
		}
		ledger.TotalAmount = ledger.TotalAmount.Add(d.Amount())
		ledger.DonationCount++
		ledger.CountByAssociation[d.AssociationID()]++
		ledger.TotalByAssociation[d.AssociationID()] = ledger.TotalByAssociation[d.AssociationID()].Add(d.Amount())
	}

	return ledger
}

// MergeDonation 確保剛寫入的捐款出現在歷史中
//
// 某些存儲的索引是最終一致（例如 DynamoDB GSI），寫入後立即查詢可能讀不到。
// 以 DonationID 去重。
func MergeDonation(history []*Donation, d *Donation) []*Donation {
	if d == nil {
		return history
	}
	for _, h := range history {
		if h.DonationID().Equals(d.DonationID()) {
			return history
		}
	}
	merged := make([]*Donation, 0, len(history)+1)
	merged = append(merged, history...)
	return append(merged, d)
}
