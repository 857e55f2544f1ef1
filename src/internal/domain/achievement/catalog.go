package achievement

import "sync"

// ===========================
// Badge Catalog 註冊表
// ===========================

// BadgeDefinition 徽章定義：判定條件 + 顯示資料
type BadgeDefinition struct {
	ID          BadgeID
	DisplayName string
	ImageRef    string
	Predicate   Predicate
}

// Catalog 有序的徽章註冊表
//
// 註冊順序即判定與顯示順序（前端依序播放解鎖動畫）。
// 新增徽章只需 Register，不需修改 Orchestrator。
type Catalog struct {
	mu          sync.RWMutex
	definitions []BadgeDefinition
	index       map[BadgeID]int
}

// NewCatalog 建立空的註冊表
func NewCatalog() *Catalog {
	return &Catalog{index: make(map[BadgeID]int)}
}

// Register 註冊徽章（ID 不可重複）
func (c *Catalog) Register(def BadgeDefinition) error {
	if def.ID == "" || def.Predicate == nil {
		return ErrInvalidBadgeDefinition.WithContext("badge_id", string(def.ID))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.index[def.ID]; exists {
		return ErrDuplicateBadge.WithContext("badge_id", string(def.ID))
	}
	c.index[def.ID] = len(c.definitions)
	c.definitions = append(c.definitions, def)
	return nil
}

// MustRegister 註冊失敗時 panic（僅用於啟動時的靜態目錄）
func (c *Catalog) MustRegister(def BadgeDefinition) {
	if err := c.Register(def); err != nil {
		panic(err)
	}
}

// Definitions 依註冊順序返回副本
func (c *Catalog) Definitions() []BadgeDefinition {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]BadgeDefinition, len(c.definitions))
	copy(out, c.definitions)
	return out
}

// Lookup 依 ID 查詢定義
func (c *Catalog) Lookup(id BadgeID) (BadgeDefinition, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.index[id]
	if !ok {
		return BadgeDefinition{}, ErrUnknownBadge.WithContext("badge_id", string(id))
	}
	return c.definitions[i], nil
}

// Ordered 將任意順序的 ID 依目錄順序排列；未註冊的 ID 被略過
func (c *Catalog) Ordered(ids BadgeSet) []BadgeDefinition {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]BadgeDefinition, 0, len(ids))
	for _, def := range c.definitions {
		if ids.Contains(def.ID) {
			out = append(out, def)
		}
	}
	return out
}

// ===========================
// 預設目錄
// ===========================

// DefaultCatalog 固定的五個徽章
func DefaultCatalog() *Catalog {
	c := NewCatalog()

	c.MustRegister(BadgeDefinition{
		ID:          BadgeFirstDonation,
		DisplayName: "First donation",
		ImageRef:    "badges/first_donation.png",
		Predicate: func(f Facts) bool {
			return f.Ledger.DonationCount == 1
		},
	})
	c.MustRegister(BadgeDefinition{
		ID:          BadgeCumulated100,
		DisplayName: "100 donated",
		ImageRef:    "badges/cumulated_100.png",
		Predicate: func(f Facts) bool {
			return f.Ledger.TotalAmount.Value() >= Cumulated100Threshold
		},
	})
	c.MustRegister(BadgeDefinition{
		ID:          BadgeCumulated1000,
		DisplayName: "1000 donated",
		ImageRef:    "badges/cumulated_1000.png",
		Predicate: func(f Facts) bool {
			return f.Ledger.TotalAmount.Value() >= Cumulated1000Threshold
		},
	})
	c.MustRegister(BadgeDefinition{
		ID:          BadgeLoyalty,
		DisplayName: "Loyal donor",
		ImageRef:    "badges/loyalty.png",
		Predicate: func(f Facts) bool {
			return !f.AssociationID.IsEmpty() && f.Ledger.CountFor(f.AssociationID) >= LoyaltyThreshold
		},
	})
	c.MustRegister(BadgeDefinition{
		ID:          BadgeCompleter,
		DisplayName: "Goal completer",
		ImageRef:    "badges/completer.png",
		Predicate: func(f Facts) bool {
			return f.CompletedGoal
		},
	})

	return c
}
