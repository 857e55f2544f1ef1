package ledger

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/LeoTiTo/DuduApp-sub000/src/internal/domain/achievement"
	"github.com/LeoTiTo/DuduApp-sub000/src/internal/domain/donation"
	"github.com/LeoTiTo/DuduApp-sub000/src/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// ===========================
// Mock DonationRepository
// ===========================

type MockDonationRepository struct {
	mu        sync.Mutex
	donations []*donation.Donation

	// 模擬最終一致的索引：查詢不返回最後一筆寫入
	HideLatestFromIndex bool

	SaveErr         error
	FindByUserErr   error
	FindByAssocErr  error
	SaveCallCount   int
	UpdateCallCount int
}

func NewMockDonationRepository() *MockDonationRepository {
	return &MockDonationRepository{}
}

func (m *MockDonationRepository) Save(ctx context.Context, d *donation.Donation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCallCount++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	for _, existing := range m.donations {
		if existing.DonationID().Equals(d.DonationID()) {
			return donation.ErrDonationAlreadyExists
		}
	}
	m.donations = append(m.donations, d)
	return nil
}

func (m *MockDonationRepository) FindByID(ctx context.Context, id donation.DonationID) (*donation.Donation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.donations {
		if d.DonationID().Equals(id) {
			return d, nil
		}
	}
	return nil, donation.ErrDonationNotFound
}

func (m *MockDonationRepository) FindByUserID(ctx context.Context, userID donation.UserID) ([]*donation.Donation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindByUserErr != nil {
		return nil, m.FindByUserErr
	}
	out := make([]*donation.Donation, 0)
	for _, d := range m.indexed() {
		if !d.IsAnonymous() && d.UserID().Equals(userID) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *MockDonationRepository) FindByAssociationID(ctx context.Context, assoc donation.AssociationID, since time.Time) ([]*donation.Donation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindByAssocErr != nil {
		return nil, m.FindByAssocErr
	}
	out := make([]*donation.Donation, 0)
	for _, d := range m.indexed() {
		if d.AssociationID().Equals(assoc) && !d.CreatedAt().Before(since) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *MockDonationRepository) UpdateStatus(ctx context.Context, d *donation.Donation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateCallCount++
	for i, existing := range m.donations {
		if existing.DonationID().Equals(d.DonationID()) {
			m.donations[i] = d
			return nil
		}
	}
	return donation.ErrDonationNotFound
}

func (m *MockDonationRepository) indexed() []*donation.Donation {
	if m.HideLatestFromIndex && len(m.donations) > 0 {
		return m.donations[:len(m.donations)-1]
	}
	return m.donations
}

// ===========================
// Mock GoalRepository
// ===========================

type MockGoalRepository struct {
	mu    sync.Mutex
	goals map[string]*donation.Goal

	FindErr                error
	MarkCompletedErr       error
	MarkCompletedCallCount int
}

func NewMockGoalRepository() *MockGoalRepository {
	return &MockGoalRepository{goals: make(map[string]*donation.Goal)}
}

func (m *MockGoalRepository) Save(ctx context.Context, g *donation.Goal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.goals[g.AssociationID().String()]; exists {
		return donation.ErrGoalAlreadyExists
	}
	m.goals[g.AssociationID().String()] = cloneGoal(g)
	return nil
}

func (m *MockGoalRepository) FindByAssociationID(ctx context.Context, assoc donation.AssociationID) (*donation.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	g, ok := m.goals[assoc.String()]
	if !ok {
		return nil, donation.ErrGoalNotFound
	}
	return cloneGoal(g), nil
}

// MarkCompleted 模擬條件寫入：存儲中已完成則返回 false
func (m *MockGoalRepository) MarkCompleted(ctx context.Context, g *donation.Goal) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MarkCompletedCallCount++
	if m.MarkCompletedErr != nil {
		return false, m.MarkCompletedErr
	}
	stored, ok := m.goals[g.AssociationID().String()]
	if !ok {
		return false, donation.ErrGoalNotFound
	}
	if stored.IsCompleted() {
		return false, nil
	}
	m.goals[g.AssociationID().String()] = cloneGoal(g)
	return true, nil
}

func (m *MockGoalRepository) stored(assoc string) *donation.Goal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.goals[assoc]
}

func cloneGoal(g *donation.Goal) *donation.Goal {
	clone, err := donation.ReconstructGoal(
		g.GoalID(), g.AssociationID(), g.TargetAmount().Value(), g.CreatedAt(),
		g.IsCompleted(), g.CompletedAt(), g.CompletedBy(),
	)
	if err != nil {
		panic(err)
	}
	return clone
}

// ===========================
// Mock AchievementRepository
// ===========================

type MockAchievementRepository struct {
	mu     sync.Mutex
	badges map[string]achievement.BadgeSet

	FindErr       error
	AddErr        map[achievement.BadgeID]error
	AddCallCount  int
	FindCallCount int
}

func NewMockAchievementRepository() *MockAchievementRepository {
	return &MockAchievementRepository{
		badges: make(map[string]achievement.BadgeSet),
		AddErr: make(map[achievement.BadgeID]error),
	}
}

func (m *MockAchievementRepository) AddBadge(ctx context.Context, userID donation.UserID, id achievement.BadgeID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddCallCount++
	if err := m.AddErr[id]; err != nil {
		return false, err
	}
	set, ok := m.badges[userID.String()]
	if !ok {
		set = achievement.NewBadgeSet()
		m.badges[userID.String()] = set
	}
	if set.Contains(id) {
		return false, nil
	}
	set.Add(id)
	return true, nil
}

func (m *MockAchievementRepository) FindBadges(ctx context.Context, userID donation.UserID) (achievement.BadgeSet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FindCallCount++
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	out := achievement.NewBadgeSet()
	for id := range m.badges[userID.String()] {
		out.Add(id)
	}
	return out, nil
}

func (m *MockAchievementRepository) held(user string) []achievement.BadgeID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.badges[user].IDs()
}

// ===========================
// Mock TransactionManager
// ===========================

type MockTransactionManager struct {
	mu                     sync.Mutex
	InTransactionCallCount int
	ShouldFail             bool
	FailError              error
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	m.InTransactionCallCount++
	fail := m.ShouldFail
	m.mu.Unlock()

	if fail {
		return m.FailError
	}
	return fn(ctx)
}

// ===========================
// Mock EventPublisher（testify/mock）
// ===========================

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event shared.DomainEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishBatch(ctx context.Context, events []shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// ===========================
// 組裝輔助
// ===========================

type fixture struct {
	donations    *MockDonationRepository
	goals        *MockGoalRepository
	achievements *MockAchievementRepository
	txManager    *MockTransactionManager
	catalog      *achievement.Catalog
	detector     *GoalCompletionDetector
	unlocker     *AchievementUnlocker
	record       *RecordDonationUseCase
	clock        *fakeClock
}

func newFixture() *fixture {
	f := &fixture{
		donations:    NewMockDonationRepository(),
		goals:        NewMockGoalRepository(),
		achievements: NewMockAchievementRepository(),
		txManager:    NewMockTransactionManager(),
		catalog:      achievement.DefaultCatalog(),
		clock:        newFakeClock(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)),
	}
	logger := discardLogger()
	publisher := shared.NopEventPublisher{}

	f.detector = NewGoalCompletionDetector(f.goals, f.donations, f.txManager, publisher, logger).WithClock(f.clock.Now)
	f.unlocker = NewAchievementUnlocker(f.achievements, f.catalog, publisher, logger)
	f.record = NewRecordDonationUseCase(
		f.donations,
		f.achievements,
		achievement.NewEvaluator(f.catalog),
		f.detector,
		f.unlocker,
		publisher,
		logger,
	).WithClock(f.clock.Now)
	return f
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeClock 每次呼叫前進一秒
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{now: start}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}
