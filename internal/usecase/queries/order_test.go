//go:build unit

package queries_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"grocery-api/internal/domain/user"
	"grocery-api/internal/usecase/queries"
	queriesmock "grocery-api/tests/mock/queries"
)

func TestOrderQueries_GetByID(t *testing.T) {
	ownerID := uuid.New()
	orderID := uuid.New()
	view := &queries.OrderView{ID: orderID, UserID: ownerID, Number: "ORD-20260402-0001"}

	tests := []struct {
		name    string
		actorID uuid.UUID
		role    user.Role
		wantErr error
	}{
		{name: "owner can read own order", actorID: ownerID, role: user.RoleCustomer},
		{name: "admin can read any order", actorID: uuid.New(), role: user.RoleAdmin},
		{name: "super admin can read any order", actorID: uuid.New(), role: user.RoleSuperAdmin},
		{name: "other customer is denied", actorID: uuid.New(), role: user.RoleCustomer, wantErr: queries.ErrOrderAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := queriesmock.NewMockOrderViewRepo(ctrl)
			repo.EXPECT().FindByID(gomock.Any(), orderID).Return(view, nil)

			q := queries.NewOrderQueries(repo)
			got, err := q.GetByID(context.Background(), tt.actorID, tt.role, orderID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "ORD-20260402-0001", got.Number)
		})
	}
}

func TestOrderQueries_ListByUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	items := []*queries.OrderListItem{{ID: uuid.New(), Number: "ORD-20260402-0002", Status: "pending"}}

	repo := queriesmock.NewMockOrderViewRepo(ctrl)
	repo.EXPECT().FindByUserID(gomock.Any(), userID).Return(items, nil)

	q := queries.NewOrderQueries(repo)
	got, err := q.ListByUser(context.Background(), userID)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ORD-20260402-0002", got[0].Number)
}
