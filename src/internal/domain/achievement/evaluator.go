package achievement

// Evaluator 徽章判定服務（純函數，無副作用）
type Evaluator struct {
	catalog *Catalog
}

// NewEvaluator 建構函數
func NewEvaluator(catalog *Catalog) *Evaluator {
	return &Evaluator{catalog: catalog}
}

// Evaluate 返回「條件成立且尚未持有」的徽章，依目錄順序
//
// 已持有的徽章不會再次返回，這是「新解鎖」語義的來源。
func (e *Evaluator) Evaluate(facts Facts, held BadgeSet) []BadgeID {
	unlocked := make([]BadgeID, 0)
	for _, def := range e.catalog.Definitions() {
		if held.Contains(def.ID) {
			continue
		}
		if def.Predicate(facts) {
			unlocked = append(unlocked, def.ID)
		}
	}
	return unlocked
}

// Catalog 判定使用的目錄
func (e *Evaluator) Catalog() *Catalog {
	return e.catalog
}
