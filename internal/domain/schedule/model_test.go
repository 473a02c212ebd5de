package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduleBlockValidate(t *testing.T) {
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	nine := day.Add(9 * time.Hour)
	ten := day.Add(10 * time.Hour)

	tests := []struct {
		name    string
		block   ScheduleBlock
		wantErr error
	}{
		{
			name:  "valid block",
			block: ScheduleBlock{Title: "Deep work", Date: day, StartTime: nine, EndTime: ten},
		},
		{
			name:    "missing title",
			block:   ScheduleBlock{Date: day, StartTime: nine, EndTime: ten},
			wantErr: ErrTitleRequired,
		},
		{
			name:    "start equals end",
			block:   ScheduleBlock{Title: "x", Date: day, StartTime: nine, EndTime: nine},
			wantErr: ErrInvalidTimeRange,
		},
		{
			name:    "start after end",
			block:   ScheduleBlock{Title: "x", Date: day, StartTime: ten, EndTime: nine},
			wantErr: ErrInvalidTimeRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.block.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateAppliesDefaultColor(t *testing.T) {
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	block := ScheduleBlock{
		Title:     "Review",
		Date:      day,
		StartTime: day.Add(14 * time.Hour),
		EndTime:   day.Add(15 * time.Hour),
	}

	assert.NoError(t, block.Validate())
	assert.Equal(t, "#3b82f6", block.Color)

	block.Color = "#ff0000"
	assert.NoError(t, block.Validate())
	assert.Equal(t, "#ff0000", block.Color)
}
