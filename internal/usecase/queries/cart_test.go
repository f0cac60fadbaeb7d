//go:build unit

package queries_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"grocery-api/internal/usecase/queries"
	queriesmock "grocery-api/tests/mock/queries"
)

func TestCartQueries_GetByUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	view := &queries.CartView{UserID: userID, SubtotalCents: 1250, TotalCents: 1250}

	repo := queriesmock.NewMockCartViewRepo(ctrl)
	repo.EXPECT().FindByUserID(gomock.Any(), userID).Return(view, nil)

	q := queries.NewCartQueries(repo)
	got, err := q.GetByUser(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, userID, got.UserID)
	assert.Equal(t, 1250, got.TotalCents)
}
