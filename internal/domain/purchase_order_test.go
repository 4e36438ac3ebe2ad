package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPOStatus_CanTransitionTo(t *testing.T) {
	allowed := map[POStatus]map[POStatus]bool{
		POStatusDraft:     {POStatusProcessed: true, POStatusCancelled: true},
		POStatusProcessed: {POStatusActive: true, POStatusCancelled: true},
		POStatusActive:    {POStatusReturned: true, POStatusCancelled: true},
	}

	for _, from := range AllPOStatuses() {
		for _, to := range AllPOStatuses() {
			want := allowed[from][to]
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestPOStatus_Terminal(t *testing.T) {
	for _, s := range AllPOStatuses() {
		if !s.IsTerminal() {
			continue
		}
		for _, to := range AllPOStatuses() {
			assert.False(t, s.CanTransitionTo(to), "terminal %s must not move to %s", s, to)
		}
	}
	assert.True(t, POStatusReturned.IsTerminal())
	assert.True(t, POStatusCancelled.IsTerminal())
	assert.False(t, POStatusActive.IsTerminal())
}

func TestPOStatus_ItemHolding(t *testing.T) {
	t.Run("Holding and releasing are disjoint", func(t *testing.T) {
		for _, s := range AllPOStatuses() {
			assert.NotEqual(t, s.HoldsItems(), s.ReleasesItems(), string(s))
		}
	})

	t.Run("Initial statuses hold items", func(t *testing.T) {
		for _, s := range AllPOStatuses() {
			if s.IsInitial() {
				assert.True(t, s.HoldsItems(), string(s))
			}
		}
	})

	t.Run("Unknown status", func(t *testing.T) {
		s := POStatus("shipped")
		assert.False(t, s.IsValid())
		assert.False(t, s.CanTransitionTo(POStatusActive))
		assert.False(t, POStatusDraft.CanTransitionTo(s))
	})
}
