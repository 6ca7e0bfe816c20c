package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplicationStatusTransitions(t *testing.T) {
	allowed := [][2]ApplicationStatus{
		{StatusPending, StatusShortlisted},
		{StatusPending, StatusRejected},
		{StatusPending, StatusAccepted},
		{StatusShortlisted, StatusAccepted},
		{StatusShortlisted, StatusRejected},
		{StatusShortlisted, StatusShortlisted},
		{StatusAccepted, StatusAccepted},
	}
	for _, tr := range allowed {
		assert.True(t, tr[0].CanTransitionTo(tr[1]), "%s -> %s", tr[0], tr[1])
	}

	denied := [][2]ApplicationStatus{
		{StatusShortlisted, StatusPending},
		{StatusRejected, StatusAccepted},
		{StatusRejected, StatusPending},
		{StatusAccepted, StatusRejected},
		{StatusAccepted, StatusShortlisted},
		{StatusPending, ApplicationStatus("hired")},
	}
	for _, tr := range denied {
		assert.False(t, tr[0].CanTransitionTo(tr[1]), "%s -> %s", tr[0], tr[1])
	}
}

func TestApplicationStatusTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusShortlisted.Terminal())
	assert.True(t, StatusRejected.Terminal())
	assert.True(t, StatusAccepted.Terminal())
}
