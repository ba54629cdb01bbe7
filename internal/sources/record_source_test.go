package sources

import (
	"context"
	"errors"
	"testing"
	"time"

	"query-metrics/internal/models"
	storemocks "query-metrics/internal/stores/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestStoreRecordSource_Fetch_UsesWindowBounds(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 12, 28, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		window        models.ReportWindow
		expectedStart time.Time
	}{
		{window: models.WindowDay, expectedStart: now.Add(-24 * time.Hour)},
		{window: models.WindowWeek, expectedStart: now.Add(-7 * 24 * time.Hour)},
		{window: models.WindowMonth, expectedStart: now.Add(-30 * 24 * time.Hour)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(string(tt.window), func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStore := storemocks.NewMockQueryRecordStore(ctrl)
			expected := []*models.QueryRecord{{UserID: "u-1", Status: models.StatusSuccess, Timestamp: now}}
			mockStore.EXPECT().
				ListRecords(gomock.Any(), "sales-bot", tt.expectedStart, now).
				Return(expected, nil)

			records, err := NewStoreRecordSource(mockStore).Fetch(context.Background(), "sales-bot", tt.window, now)
			require.NoError(t, err)
			assert.Equal(t, expected, records)
		})
	}
}

func TestStoreRecordSource_Fetch_StoreError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	storeErr := errors.New("disk unavailable")
	mockStore := storemocks.NewMockQueryRecordStore(ctrl)
	mockStore.EXPECT().ListRecords(gomock.Any(), "sales-bot", gomock.Any(), gomock.Any()).Return(nil, storeErr)

	_, err := NewStoreRecordSource(mockStore).Fetch(context.Background(), "sales-bot", models.WindowWeek, time.Now())
	assert.ErrorIs(t, err, storeErr)
}
