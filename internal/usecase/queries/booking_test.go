//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"tablebook/internal/usecase/queries"
	queriesmock "tablebook/tests/mock/queries"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestListByDate(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	t.Run("returns the read store rows as-is", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockBookingReadStore(ctrl)
		q := queries.NewBookingQueries(store)

		want := []*queries.BookingView{
			{ID: 1, Table: "T1", Date: date, Start: 18, End: 19, Name: "Anna", Status: "booked"},
			{ID: 2, Table: "T2", Date: date, Start: 18, End: 19, Name: "Boris", Status: "booked"},
		}
		store.EXPECT().FindByDate(gomock.Any(), date).Return(want, nil)

		got, err := q.ListByDate(ctx, date)
		require.NoError(t, err)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("views mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("propagates store errors", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockBookingReadStore(ctrl)
		q := queries.NewBookingQueries(store)

		store.EXPECT().FindByDate(gomock.Any(), date).Return(nil, assert.AnError)

		_, err := q.ListByDate(ctx, date)
		assert.ErrorIs(t, err, assert.AnError)
	})
}
