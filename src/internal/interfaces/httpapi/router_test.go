package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/LeoTiTo/DuduApp-sub000/src/internal/application/ledger"
	"github.com/LeoTiTo/DuduApp-sub000/src/internal/domain/donation"
	"github.com/LeoTiTo/DuduApp-sub000/src/internal/infrastructure/persistence"
	"github.com/LeoTiTo/DuduApp-sub000/src/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===========================
// 測試輔助函數
// ===========================

const testSecret = "test-secret"

type testServer struct {
	handler http.Handler
	auth    *Authenticator
}

// newTestServer 完整組裝：SQLite in-memory → Use Cases → Router
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := logging.Discard()

	db, err := persistence.Open(persistence.DriverSQLite, ":memory:", logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = persistence.Close(db) })

	services := ledger.NewServices(ledger.Dependencies{
		Donations:    persistence.NewDonationRepository(db),
		Goals:        persistence.NewGoalRepository(db),
		Achievements: persistence.NewAchievementRepository(db),
		TxManager:    persistence.NewGORMTransactionManager(db),
		Logger:       logger,
	})

	auth := NewAuthenticator(testSecret)
	return &testServer{
		handler: NewRouter(NewHandler(services, logger), auth, logger, 5*time.Second),
		auth:    auth,
	}
}

func (s *testServer) token(t *testing.T, userID, role string) string {
	t.Helper()
	tok, err := s.auth.GenerateToken(ledger.Session{UserID: userID, Email: userID + "@example.com", Role: role}, time.Hour)
	require.NoError(t, err)
	return tok
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func donationBody(assoc string, amount interface{}) map[string]interface{} {
	return map[string]interface{}{
		"associationId": assoc,
		"amount":        amount,
		"type":          "single",
		"receiptPreferences": map[string]bool{
			"wantReceipt": true,
		},
	}
}

func badgeIDs(badges []badgeResponse) []string {
	ids := make([]string, 0, len(badges))
	for _, b := range badges {
		ids = append(ids, b.ID)
	}
	return ids
}

// ===========================
// POST /api/donations
// ===========================

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/healthz", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRecordDonation_UnlocksBadgesAcrossRequests(t *testing.T) {
	// Arrange
	s := newTestServer(t)
	tok := s.token(t, "alice", "")

	// Act: 90 → first_donation
	first := s.do(t, http.MethodPost, "/api/donations", tok, donationBody("assoc-a", 90))

	// Assert
	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())
	firstResp := decode[recordDonationResponse](t, first)
	assert.NotEmpty(t, firstResp.DonationID)
	assert.Equal(t, []string{"first_donation"}, badgeIDs(firstResp.UnlockedBadges))
	assert.NotEmpty(t, firstResp.UnlockedBadges[0].DisplayName)

	// Act: 15 → cumulated_100
	second := s.do(t, http.MethodPost, "/api/donations", tok, donationBody("assoc-a", "15"))

	require.Equal(t, http.StatusCreated, second.Code, second.Body.String())
	assert.Equal(t, []string{"cumulated_100"}, badgeIDs(decode[recordDonationResponse](t, second).UnlockedBadges))

	// Assert: 徽章查詢
	badges := s.do(t, http.MethodGet, "/api/users/me/badges", tok, nil)
	require.Equal(t, http.StatusOK, badges.Code)
	assert.Equal(t, []string{"first_donation", "cumulated_100"}, badgeIDs(decode[badgesResponse](t, badges).Badges))
}

func TestRecordDonation_Anonymous(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/donations", "", donationBody("assoc-a", 500))

	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decode[recordDonationResponse](t, rec)
	assert.NotNil(t, resp.UnlockedBadges)
	assert.Empty(t, resp.UnlockedBadges)
}

func TestRecordDonation_ValidationErrors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name     string
		body     interface{}
		wantCode string
	}{
		{"negative amount", donationBody("assoc-a", -5), "AMOUNT_INVALID"},
		{"zero amount", donationBody("assoc-a", 0), "AMOUNT_INVALID"},
		{"fractional amount", donationBody("assoc-a", 10.5), "AMOUNT_INVALID"},
		{"missing association", donationBody("", 10), "ASSOCIATION_ID_INVALID"},
		{"malformed JSON", `{"amount":`, "BAD_REQUEST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, "/api/donations", "", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.wantCode, decode[errorResponse](t, rec).Error.Code)
		})
	}
}

func TestRecordDonation_InvalidTokenRejected(t *testing.T) {
	s := newTestServer(t)
	other := NewAuthenticator("other-secret")
	tok, err := other.GenerateToken(ledger.Session{UserID: "mallory"}, time.Hour)
	require.NoError(t, err)

	rec := s.do(t, http.MethodPost, "/api/donations", tok, donationBody("assoc-a", 10))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRecordDonation_ExpiredTokenRejected(t *testing.T) {
	s := newTestServer(t)
	tok, err := s.auth.GenerateToken(ledger.Session{UserID: "alice"}, -time.Minute)
	require.NoError(t, err)

	rec := s.do(t, http.MethodPost, "/api/donations", tok, donationBody("assoc-a", 10))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ===========================
// /api/users/me
// ===========================

func TestUserRoutes_RequireAuthentication(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/users/me/badges", "/api/users/me/donations"} {
		rec := s.do(t, http.MethodGet, path, "", nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		assert.Equal(t, "UNAUTHENTICATED", decode[errorResponse](t, rec).Error.Code)
	}
}

func TestListDonations_Totals(t *testing.T) {
	s := newTestServer(t)
	tok := s.token(t, "alice", "")
	for _, d := range []struct {
		assoc  string
		amount int
	}{{"assoc-a", 10}, {"assoc-b", 20}, {"assoc-a", 5}} {
		require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/donations", tok, donationBody(d.assoc, d.amount)).Code)
	}
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/donations", s.token(t, "bob", ""), donationBody("assoc-a", 99)).Code)

	rec := s.do(t, http.MethodGet, "/api/users/me/donations", tok, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[donationsResponse](t, rec)
	assert.Equal(t, int64(35), resp.TotalAmount)
	assert.Equal(t, 3, resp.DonationCount)
	assert.Equal(t, int64(15), resp.TotalByAssociation["assoc-a"])
	assert.Len(t, resp.Donations, 3)
}

// ===========================
// Goals
// ===========================

func TestGoal_AdminCreatesAndDonationsComplete(t *testing.T) {
	// Arrange
	s := newTestServer(t)
	admin := s.token(t, "root", ledger.RoleAdmin)
	donor := s.token(t, "alice", "")

	// 非管理員不能建立
	forbidden := s.do(t, http.MethodPost, "/api/admin/associations/assoc-a/goal", donor, map[string]interface{}{"targetAmount": 500})
	assert.Equal(t, http.StatusForbidden, forbidden.Code)

	created := s.do(t, http.MethodPost, "/api/admin/associations/assoc-a/goal", admin, map[string]interface{}{"targetAmount": 500})
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())

	duplicate := s.do(t, http.MethodPost, "/api/admin/associations/assoc-a/goal", admin, map[string]interface{}{"targetAmount": 900})
	assert.Equal(t, http.StatusConflict, duplicate.Code)

	// Act: 200, 200, 150
	var completions []bool
	for _, amount := range []int{200, 200, 150} {
		rec := s.do(t, http.MethodPost, "/api/donations", donor, donationBody("assoc-a", amount))
		require.Equal(t, http.StatusCreated, rec.Code)
		completions = append(completions, decode[recordDonationResponse](t, rec).GoalCompleted)
	}

	// Assert
	assert.Equal(t, []bool{false, false, true}, completions)

	progress := s.do(t, http.MethodGet, "/api/associations/assoc-a/goal", "", nil)
	require.Equal(t, http.StatusOK, progress.Code)
	goal := decode[goalResponse](t, progress)
	assert.True(t, goal.Completed)
	assert.Equal(t, int64(550), goal.RaisedAmount)
	assert.Equal(t, "alice", goal.CompletedBy)
	assert.NotNil(t, goal.CompletedAt)
}

func TestGoal_NotFound(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/associations/nobody/goal", "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "GOAL_NOT_FOUND", decode[errorResponse](t, rec).Error.Code)
}

func TestCreateGoal_RequiresToken(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/admin/associations/assoc-a/goal", "", map[string]interface{}{"targetAmount": 500})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ===========================
// PATCH /api/donations/{id}/status
// ===========================

func TestUpdateDonationStatus(t *testing.T) {
	s := newTestServer(t)
	alice := s.token(t, "alice", "")
	created := s.do(t, http.MethodPost, "/api/donations", alice, map[string]interface{}{
		"associationId":      "assoc-a",
		"amount":             30,
		"type":               "recurrent",
		"receiptPreferences": map[string]bool{"wantReceipt": true, "monthlyReceipt": true},
	})
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())
	id := decode[recordDonationResponse](t, created).DonationID
	path := "/api/donations/" + id + "/status"

	t.Run("other user is forbidden", func(t *testing.T) {
		rec := s.do(t, http.MethodPatch, path, s.token(t, "bob", ""), map[string]string{"status": "cancelled"})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("invalid status", func(t *testing.T) {
		rec := s.do(t, http.MethodPatch, path, alice, map[string]string{"status": "refunded"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("owner cancels", func(t *testing.T) {
		rec := s.do(t, http.MethodPatch, path, alice, map[string]string{"status": "cancelled"})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		resp := decode[donationResponse](t, rec)
		assert.Equal(t, "cancelled", resp.Status)
		assert.Equal(t, int64(30), resp.Amount)
	})

	t.Run("unknown donation", func(t *testing.T) {
		rec := s.do(t, http.MethodPatch, "/api/donations/"+donation.NewDonationID().String()+"/status", alice, map[string]string{"status": "cancelled"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
