package goal_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/carteira/internal/catalog"
	"github.com/MrJamesThe3rd/carteira/internal/goal"
)

func validParams() goal.Params {
	return goal.Params{
		Name:          "Viagem ao Japão",
		TargetAmount:  decimal.NewFromInt(15000),
		CurrentAmount: decimal.NewFromInt(3000),
		Deadline:      time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		Category:      "Viagem",
		Priority:      goal.PriorityMedium,
	}
}

func TestService_Add(t *testing.T) {
	type testCase struct {
		name    string
		modify  func(p *goal.Params)
		wantErr bool
	}

	tests := []testCase{
		{name: "Success", modify: func(p *goal.Params) {}},
		{name: "UnknownCategory", modify: func(p *goal.Params) { p.Category = "Festa" }, wantErr: true},
		{name: "UnknownPriority", modify: func(p *goal.Params) { p.Priority = "urgent" }, wantErr: true},
		{name: "NegativeTarget", modify: func(p *goal.Params) { p.TargetAmount = decimal.NewFromInt(-5) }, wantErr: true},
		{name: "MissingDeadline", modify: func(p *goal.Params) { p.Deadline = time.Time{} }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := goal.NewMockRepository(ctrl)

			params := validParams()
			tt.modify(&params)

			if !tt.wantErr {
				repo.EXPECT().LoadGoals(gomock.Any()).Return([]*goal.Goal{}, nil)
				repo.EXPECT().SaveGoals(gomock.Any(), gomock.Len(1)).Return(nil)
			}

			svc := goal.NewService(repo, catalog.Default())

			g, err := svc.Add(context.Background(), params)
			if tt.wantErr {
				assert.ErrorIs(t, err, goal.ErrInvalid)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Viagem ao Japão", g.Name)
		})
	}
}

func TestService_Update_UnknownIDIsNoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := goal.NewMockRepository(ctrl)
	repo.EXPECT().LoadGoals(gomock.Any()).Return([]*goal.Goal{{ID: "1700000000000"}}, nil)

	svc := goal.NewService(repo, catalog.Default())

	g, err := svc.Update(context.Background(), "1700000000001", validParams())
	require.NoError(t, err)
	assert.Nil(t, g)
}

func TestService_Contribute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	g := &goal.Goal{ID: uuid.NewString(), TargetAmount: decimal.NewFromInt(1000), CurrentAmount: decimal.NewFromInt(900)}

	repo := goal.NewMockRepository(ctrl)
	repo.EXPECT().LoadGoals(gomock.Any()).Return([]*goal.Goal{g}, nil)
	repo.EXPECT().SaveGoals(gomock.Any(), gomock.Len(1)).Return(nil)

	svc := goal.NewService(repo, catalog.Default())

	updated, err := svc.Contribute(context.Background(), g.ID, decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.True(t, updated.Completed())
	assert.True(t, decimal.NewFromInt(900).Equal(g.CurrentAmount))
}

func TestService_Contribute_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := goal.NewMockRepository(ctrl)
	svc := goal.NewService(repo, catalog.Default())

	_, err := svc.Contribute(context.Background(), uuid.NewString(), decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, goal.ErrInvalid)

	repo.EXPECT().LoadGoals(gomock.Any()).Return(nil, nil)

	_, err = svc.Contribute(context.Background(), uuid.NewString(), decimal.NewFromInt(1))
	assert.ErrorIs(t, err, goal.ErrNotFound)
}

func TestService_Remove(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	a := &goal.Goal{ID: uuid.NewString()}
	b := &goal.Goal{ID: uuid.NewString()}

	repo := goal.NewMockRepository(ctrl)
	repo.EXPECT().LoadGoals(gomock.Any()).Return([]*goal.Goal{a, b}, nil)
	repo.EXPECT().SaveGoals(gomock.Any(), []*goal.Goal{a}).Return(nil)

	svc := goal.NewService(repo, catalog.Default())
	require.NoError(t, svc.Remove(context.Background(), b.ID))
}
