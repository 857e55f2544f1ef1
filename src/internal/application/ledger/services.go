package ledger

import (
	"log/slog"

	"github.com/LeoTiTo/DuduApp-sub000/src/internal/domain/achievement"
	"github.com/LeoTiTo/DuduApp-sub000/src/internal/domain/donation"
	"github.com/LeoTiTo/DuduApp-sub000/src/internal/domain/shared"
)

// Dependencies 組裝 Use Case 所需的基礎設施
type Dependencies struct {
	Donations    donation.DonationRepository
	Goals        donation.GoalRepository
	Achievements achievement.AchievementRepository
	TxManager    shared.TransactionManager
	Catalog      *achievement.Catalog // nil 時使用 DefaultCatalog
	Publisher    shared.EventPublisher
	Logger       *slog.Logger
}

// Services 所有 Use Case
type Services struct {
	RecordDonation       *RecordDonationUseCase
	UserAchievements     *GetUserAchievementsUseCase
	UserDonations        *ListUserDonationsUseCase
	UpdateDonationStatus *UpdateDonationStatusUseCase
	CreateGoal           *CreateGoalUseCase
	GoalProgress         *GetGoalProgressUseCase
}

// NewServices 依相同的存儲後端建立所有 Use Case
func NewServices(deps Dependencies) Services {
	catalog := deps.Catalog
	if catalog == nil {
		catalog = achievement.DefaultCatalog()
	}
	publisher := deps.Publisher
	if publisher == nil {
		publisher = shared.NopEventPublisher{}
	}

	detector := NewGoalCompletionDetector(deps.Goals, deps.Donations, deps.TxManager, publisher, deps.Logger)
	unlocker := NewAchievementUnlocker(deps.Achievements, catalog, publisher, deps.Logger)

	return Services{
		RecordDonation: NewRecordDonationUseCase(
			deps.Donations,
			deps.Achievements,
			achievement.NewEvaluator(catalog),
			detector,
			unlocker,
			publisher,
			deps.Logger,
		),
		UserAchievements:     NewGetUserAchievementsUseCase(deps.Achievements, catalog),
		UserDonations:        NewListUserDonationsUseCase(deps.Donations),
		UpdateDonationStatus: NewUpdateDonationStatusUseCase(deps.Donations, deps.TxManager, publisher, deps.Logger),
		CreateGoal:           NewCreateGoalUseCase(deps.Goals, deps.TxManager),
		GoalProgress:         NewGetGoalProgressUseCase(deps.Goals, deps.Donations),
	}
}
