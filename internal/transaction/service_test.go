package transaction_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/carteira/internal/catalog"
	"github.com/MrJamesThe3rd/carteira/internal/transaction"
)

func validParams() transaction.Params {
	return transaction.Params{
		Kind:        transaction.KindExpense,
		Amount:      decimal.NewFromInt(400),
		Category:    "Moradia",
		Description: "  Aluguel ",
		Date:        time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestService_Add(t *testing.T) {
	type testCase struct {
		name      string
		params    transaction.Params
		setupMock func(m *transaction.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "Success",
			params: validParams(),
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().LoadTransactions(gomock.Any()).Return([]*transaction.Transaction{}, nil)
				m.EXPECT().
					SaveTransactions(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, txs []*transaction.Transaction) error {
						require.Len(t, txs, 1)
						assert.NotEmpty(t, txs[0].ID)
						assert.Equal(t, "Aluguel", txs[0].Description)
						return nil
					})
			},
		},
		{
			name: "InvalidKind",
			params: func() transaction.Params {
				p := validParams()
				p.Kind = "transfer"
				return p
			}(),
			setupMock: func(m *transaction.MockRepository) {},
			wantErr:   transaction.ErrInvalid,
		},
		{
			name: "NegativeAmount",
			params: func() transaction.Params {
				p := validParams()
				p.Amount = decimal.NewFromInt(-1)
				return p
			}(),
			setupMock: func(m *transaction.MockRepository) {},
			wantErr:   transaction.ErrInvalid,
		},
		{
			name: "CategoryOfOtherKind",
			params: func() transaction.Params {
				p := validParams()
				p.Category = "Salário"
				return p
			}(),
			setupMock: func(m *transaction.MockRepository) {},
			wantErr:   transaction.ErrInvalid,
		},
		{
			name: "MissingDate",
			params: func() transaction.Params {
				p := validParams()
				p.Date = time.Time{}
				return p
			}(),
			setupMock: func(m *transaction.MockRepository) {},
			wantErr:   transaction.ErrInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := transaction.NewService(repo, catalog.Default())

			tx, err := svc.Add(context.Background(), tt.params)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, tx)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.params.Kind, tx.Kind)
		})
	}
}

func TestService_Add_RepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().LoadTransactions(gomock.Any()).Return(nil, nil)
	repo.EXPECT().SaveTransactions(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	svc := transaction.NewService(repo, catalog.Default())

	_, err := svc.Add(context.Background(), validParams())
	assert.EqualError(t, err, "disk full")
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	a := &transaction.Transaction{ID: uuid.NewString(), Kind: transaction.KindIncome, Amount: decimal.NewFromInt(1), Category: "Outros"}
	b := &transaction.Transaction{ID: uuid.NewString(), Kind: transaction.KindIncome, Amount: decimal.NewFromInt(2), Category: "Outros"}

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().LoadTransactions(gomock.Any()).Return([]*transaction.Transaction{a, b}, nil)
	repo.EXPECT().
		SaveTransactions(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, txs []*transaction.Transaction) error {
			require.Len(t, txs, 2)
			assert.Same(t, a, txs[0])
			assert.Equal(t, b.ID, txs[1].ID)
			assert.True(t, decimal.NewFromInt(400).Equal(txs[1].Amount))
			assert.Equal(t, transaction.KindExpense, txs[1].Kind)
			return nil
		})

	svc := transaction.NewService(repo, catalog.Default())

	tx, err := svc.Update(context.Background(), b.ID, validParams())
	require.NoError(t, err)
	assert.Equal(t, b.ID, tx.ID)
}

func TestService_Update_NoMatchWritesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().LoadTransactions(gomock.Any()).Return([]*transaction.Transaction{{ID: uuid.NewString()}}, nil)

	svc := transaction.NewService(repo, catalog.Default())

	tx, err := svc.Update(context.Background(), "1700000000000", validParams())
	require.NoError(t, err)
	assert.Nil(t, tx)
}

// Deleting by ID removes exactly one entry and keeps the others in order.
func TestService_Remove(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	txs := []*transaction.Transaction{
		{ID: uuid.NewString(), Description: "a"},
		{ID: uuid.NewString(), Description: "b"},
		{ID: uuid.NewString(), Description: "c"},
	}

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().LoadTransactions(gomock.Any()).Return(txs, nil)
	repo.EXPECT().
		SaveTransactions(gomock.Any(), []*transaction.Transaction{txs[0], txs[2]}).
		Return(nil)

	svc := transaction.NewService(repo, catalog.Default())

	require.NoError(t, svc.Remove(context.Background(), txs[1].ID))
	assert.Equal(t, "a", txs[0].Description)
	assert.Equal(t, "c", txs[2].Description)
}

func TestService_Remove_UnknownID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	existing := []*transaction.Transaction{{ID: uuid.NewString()}}

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().LoadTransactions(gomock.Any()).Return(existing, nil)
	repo.EXPECT().SaveTransactions(gomock.Any(), existing).Return(nil)

	svc := transaction.NewService(repo, catalog.Default())

	assert.NoError(t, svc.Remove(context.Background(), uuid.NewString()))
}

func TestService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tx := &transaction.Transaction{ID: uuid.NewString()}

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().LoadTransactions(gomock.Any()).Return([]*transaction.Transaction{tx}, nil).Times(2)

	svc := transaction.NewService(repo, catalog.Default())

	got, err := svc.Get(context.Background(), tx.ID)
	require.NoError(t, err)
	assert.Same(t, tx, got)

	_, err = svc.Get(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, transaction.ErrNotFound)
}

func TestService_ImportBatch_SkipsDuplicates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	existing := &transaction.Transaction{
		ID:          uuid.NewString(),
		Kind:        transaction.KindExpense,
		Amount:      decimal.RequireFromString("10.50"),
		Category:    "Alimentação",
		Description: "COFFEE SHOP",
		Date:        date,
	}

	params := []transaction.Params{
		{Kind: transaction.KindExpense, Amount: decimal.RequireFromString("10.5"), Category: "Outros", Description: "COFFEE SHOP", Date: date},
		{Kind: transaction.KindExpense, Amount: decimal.NewFromInt(20), Category: "Outros", Description: "LUNCH", Date: date},
	}

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().LoadTransactions(gomock.Any()).Return([]*transaction.Transaction{existing}, nil)
	repo.EXPECT().
		SaveTransactions(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, txs []*transaction.Transaction) error {
			require.Len(t, txs, 2)
			assert.Same(t, existing, txs[0])
			assert.Equal(t, "LUNCH", txs[1].Description)
			return nil
		})

	svc := transaction.NewService(repo, catalog.Default())

	result, err := svc.ImportBatch(context.Background(), params)
	require.NoError(t, err)
	assert.Len(t, result.Imported, 1)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "COFFEE SHOP", result.Skipped[0].Description)
}

func TestService_ImportBatch_SkipsRepeatsWithinBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	row := transaction.Params{
		Kind:        transaction.KindExpense,
		Amount:      decimal.RequireFromString("30"),
		Category:    "Transporte",
		Description: "Uber *Trip",
		Date:        time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC),
	}

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().LoadTransactions(gomock.Any()).Return(nil, nil)
	repo.EXPECT().SaveTransactions(gomock.Any(), gomock.Len(1)).Return(nil)

	svc := transaction.NewService(repo, catalog.Default())

	result, err := svc.ImportBatch(context.Background(), []transaction.Params{row, row})
	require.NoError(t, err)
	assert.Len(t, result.Imported, 1)
	assert.Len(t, result.Skipped, 1)
}

func TestService_ImportBatch_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := transaction.NewService(transaction.NewMockRepository(ctrl), catalog.Default())

	result, err := svc.ImportBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, result.Imported)
	assert.Empty(t, result.Skipped)
}

func TestService_ImportBatch_InvalidRow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := transaction.NewService(transaction.NewMockRepository(ctrl), catalog.Default())

	p := validParams()
	p.Category = "Nope"

	_, err := svc.ImportBatch(context.Background(), []transaction.Params{validParams(), p})
	assert.ErrorIs(t, err, transaction.ErrInvalid)
	assert.Contains(t, err.Error(), "row 2")
}
