package achievement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog_Order(t *testing.T) {
	defs := DefaultCatalog().Definitions()

	ids := make([]BadgeID, 0, len(defs))
	for _, d := range defs {
		ids = append(ids, d.ID)
		assert.NotEmpty(t, d.DisplayName)
		assert.NotEmpty(t, d.ImageRef)
	}
	assert.Equal(t, []BadgeID{BadgeFirstDonation, BadgeCumulated100, BadgeCumulated1000, BadgeLoyalty, BadgeCompleter}, ids)
}

func TestCatalog_Register_Duplicate(t *testing.T) {
	c := DefaultCatalog()

	err := c.Register(BadgeDefinition{ID: BadgeLoyalty, Predicate: func(Facts) bool { return true }})

	assert.ErrorIs(t, err, ErrDuplicateBadge)
	assert.Len(t, c.Definitions(), 5)
}

func TestCatalog_Register_Invalid(t *testing.T) {
	c := NewCatalog()

	assert.ErrorIs(t, c.Register(BadgeDefinition{ID: "x"}), ErrInvalidBadgeDefinition)
	assert.ErrorIs(t, c.Register(BadgeDefinition{Predicate: func(Facts) bool { return true }}), ErrInvalidBadgeDefinition)
}

func TestCatalog_MustRegister_Panics(t *testing.T) {
	c := DefaultCatalog()

	assert.Panics(t, func() {
		c.MustRegister(BadgeDefinition{ID: BadgeCompleter, Predicate: func(Facts) bool { return false }})
	})
}

func TestCatalog_Lookup(t *testing.T) {
	c := DefaultCatalog()

	def, err := c.Lookup(BadgeCumulated100)
	require.NoError(t, err)
	assert.Equal(t, "100 donated", def.DisplayName)

	_, err = c.Lookup("nope")
	assert.ErrorIs(t, err, ErrUnknownBadge)
}

func TestCatalog_Ordered_SkipsUnknown(t *testing.T) {
	c := DefaultCatalog()

	got := c.Ordered(NewBadgeSet(BadgeCompleter, "retired_badge", BadgeFirstDonation))

	require.Len(t, got, 2)
	assert.Equal(t, BadgeFirstDonation, got[0].ID)
	assert.Equal(t, BadgeCompleter, got[1].ID)
}

func TestBadgeSet(t *testing.T) {
	s := NewBadgeSet()
	s.Add(BadgeLoyalty)
	s.Add(BadgeLoyalty)
	s.Add(BadgeCompleter)

	assert.Len(t, s, 2)
	assert.True(t, s.Contains(BadgeLoyalty))
	assert.False(t, s.Contains(BadgeFirstDonation))
	assert.Equal(t, []BadgeID{BadgeCompleter, BadgeLoyalty}, s.IDs())
}
