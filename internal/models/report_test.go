package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTargetType(t *testing.T) {
	for _, in := range []string{"post", "POST", " Opportunity ", "user"} {
		tt, ok := ParseTargetType(in)
		assert.True(t, ok, in)
		assert.True(t, tt.Valid())
	}

	for _, in := range []string{"", "comment", "posts", "USERS"} {
		_, ok := ParseTargetType(in)
		assert.False(t, ok, in)
	}
}

func TestStatusGraph(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusReviewed))
	assert.True(t, StatusPending.CanTransitionTo(StatusResolved))
	assert.True(t, StatusPending.CanTransitionTo(StatusDismissed))
	assert.True(t, StatusReviewed.CanTransitionTo(StatusResolved))
	assert.True(t, StatusReviewed.CanTransitionTo(StatusDismissed))

	assert.False(t, StatusReviewed.CanTransitionTo(StatusPending))
	assert.False(t, StatusPending.CanTransitionTo(StatusPending))

	for _, terminal := range []ReportStatus{StatusResolved, StatusDismissed} {
		assert.True(t, terminal.Terminal())
		for _, next := range []ReportStatus{StatusPending, StatusReviewed, StatusResolved, StatusDismissed} {
			assert.False(t, terminal.CanTransitionTo(next), "%s -> %s", terminal, next)
		}
	}
}

func TestParseReportStatus(t *testing.T) {
	st, ok := ParseReportStatus("resolved")
	assert.True(t, ok)
	assert.Equal(t, StatusResolved, st)

	_, ok = ParseReportStatus("actioned")
	assert.False(t, ok)
}
