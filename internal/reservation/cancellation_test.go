package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectiveStart(t *testing.T) {
	date := d(2030, 9, 15)

	assert.Equal(t, time.Date(2030, 9, 15, 8, 0, 0, 0, time.UTC), EffectiveStart(date, SegmentMorning, nil))
	assert.Equal(t, time.Date(2030, 9, 15, 8, 0, 0, 0, time.UTC), EffectiveStart(date, SegmentFullDay, time.UTC))
	assert.Equal(t, time.Date(2030, 9, 15, 14, 0, 0, 0, time.UTC), EffectiveStart(date, SegmentAfternoon, time.UTC))

	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)
	got := EffectiveStart(date, SegmentMorning, paris)
	assert.Equal(t, time.Date(2030, 9, 15, 6, 0, 0, 0, time.UTC), got.UTC())
}

func TestCanCancel(t *testing.T) {
	date := d(2030, 9, 15)

	tests := []struct {
		name    string
		segment Segment
		now     time.Time
		want    bool
	}{
		{"exactly 12h before morning", SegmentMorning, time.Date(2030, 9, 14, 20, 0, 0, 0, time.UTC), true},
		{"one second late for morning", SegmentMorning, time.Date(2030, 9, 14, 20, 0, 1, 0, time.UTC), false},
		{"full day uses morning start", SegmentFullDay, time.Date(2030, 9, 14, 21, 0, 0, 0, time.UTC), false},
		{"exactly 12h before afternoon", SegmentAfternoon, time.Date(2030, 9, 15, 2, 0, 0, 0, time.UTC), true},
		{"afternoon, 11h before", SegmentAfternoon, time.Date(2030, 9, 15, 3, 0, 0, 0, time.UTC), false},
		{"days ahead", SegmentMorning, time.Date(2030, 9, 1, 12, 0, 0, 0, time.UTC), true},
		{"already started", SegmentMorning, time.Date(2030, 9, 15, 9, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanCancel(date, tt.segment, tt.now, time.UTC))
		})
	}
}
