package achievement

import (
	"sort"

	"github.com/LeoTiTo/DuduApp-sub000/src/internal/domain/donation"
)

// ===========================
// BadgeID
// ===========================

// BadgeID 徽章識別符（封閉的字串列舉）
type BadgeID string

const (
	BadgeFirstDonation BadgeID = "first_donation"
	BadgeCumulated100  BadgeID = "cumulated_100"
	BadgeCumulated1000 BadgeID = "cumulated_1000"
	BadgeLoyalty       BadgeID = "loyalty"
	BadgeCompleter     BadgeID = "completer"
)

// 門檻
const (
	Cumulated100Threshold  int64 = 100
	Cumulated1000Threshold int64 = 1000
	LoyaltyThreshold             = 10
)

// ===========================
// Facts 判定輸入
// ===========================

// Facts 徽章判定所需的帳本事實
type Facts struct {
	Ledger        donation.Ledger
	AssociationID donation.AssociationID // 本次捐款的協會
	CompletedGoal bool                   // 本次捐款是否完成了募款目標
}

// Predicate 純函數判定條件
type Predicate func(Facts) bool

// ===========================
// BadgeSet
// ===========================

// BadgeSet 使用者持有的徽章集合（只看成員關係，不看順序）
type BadgeSet map[BadgeID]struct{}

// NewBadgeSet 建立集合
func NewBadgeSet(ids ...BadgeID) BadgeSet {
	s := make(BadgeSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Contains 是否持有
func (s BadgeSet) Contains(id BadgeID) bool {
	_, ok := s[id]
	return ok
}

// Add 加入（重複加入無效果）
func (s BadgeSet) Add(id BadgeID) {
	s[id] = struct{}{}
}

// IDs 排序後的 ID 列表
func (s BadgeSet) IDs() []BadgeID {
	ids := make([]BadgeID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
