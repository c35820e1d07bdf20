package reservation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestOutcome(t *testing.T) {
	assert.Equal(t, "accepted", outcome(nil))
	assert.Equal(t, "slot_conflict", outcome(ErrSlotConflict))
	assert.Equal(t, "invalid_transition", outcome(fmt.Errorf("mutate: %w", ErrNotPending)))
	assert.Equal(t, "error", outcome(errors.New("connection reset")))
}

func TestRecordDecision(t *testing.T) {
	counter := DecisionsTotal.WithLabelValues(string(ActionRefuse), "missing_reason")
	before := testutil.ToFloat64(counter)

	recordDecision(ActionRefuse, ErrRefusalReasonRequired)

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
