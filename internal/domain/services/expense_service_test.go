package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flatmoney-service/internal/error/apperr"
)

func TestSeedExpenseTypes_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.expenses.SeedExpenseTypes(env.ctx))
	require.NoError(t, env.expenses.SeedExpenseTypes(env.ctx))

	types, err := env.expenses.ListExpenseTypes(env.ctx)
	require.NoError(t, err)
	assert.Len(t, types, len(DefaultExpenseTypes))
}

func TestCreateExpense(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "a@example.com")
	b := env.building(t, owner)
	require.NoError(t, env.expenses.SeedExpenseTypes(env.ctx))
	types, err := env.expenses.ListExpenseTypes(env.ctx)
	require.NoError(t, err)

	expense, err := env.expenses.CreateExpense(env.ctx, owner, b.ID, ExpenseInput{
		ExpenseTypeID: types[0].ID,
		Amount:        decimal.NewFromInt(300),
		Date:          date("2024-04-01"),
	})
	require.NoError(t, err)
	assert.Equal(t, types[0].Name, expense.ExpenseTypeName)

	_, err = env.expenses.CreateExpense(env.ctx, owner, b.ID, ExpenseInput{
		ExpenseTypeID: 9999, Amount: decimal.NewFromInt(1), Date: date("2024-04-01"),
	})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	list, err := env.expenses.ListExpenses(env.ctx, owner, b.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, types[0].Name, list[0].ExpenseTypeName)

	require.NoError(t, env.expenses.DeleteExpense(env.ctx, owner, b.ID, expense.ID))
	assert.ErrorIs(t, env.expenses.DeleteExpense(env.ctx, owner, b.ID, expense.ID), apperr.ErrNotFound)
}

func TestGetBalance(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "a@example.com")
	b := env.building(t, owner)
	f := env.floor(t, owner, b.ID, 1)
	a := env.apartment(t, owner, f.ID, "1")
	require.NoError(t, env.expenses.SeedExpenseTypes(env.ctx))
	types, err := env.expenses.ListExpenseTypes(env.ctx)
	require.NoError(t, err)

	_, err = env.ledger.CreateDeposit(env.ctx, owner, a.ID, DepositInput{Amount: decimal.RequireFromString("500.00"), Date: date("2024-01-01")})
	require.NoError(t, err)
	paid, err := env.ledger.CreateObligation(env.ctx, owner, a.ID, ObligationInput{Amount: decimal.RequireFromString("120.50"), DueDate: date("2024-02-01")})
	require.NoError(t, err)
	_, err = env.ledger.CreateObligation(env.ctx, owner, a.ID, ObligationInput{Amount: decimal.RequireFromString("80.00"), DueDate: date("2024-03-01")})
	require.NoError(t, err)
	_, err = env.ledger.SetObligationPaid(env.ctx, owner, paid.ID, true, nil)
	require.NoError(t, err)
	_, err = env.expenses.CreateExpense(env.ctx, owner, b.ID, ExpenseInput{
		ExpenseTypeID: types[0].ID, Amount: decimal.RequireFromString("200.25"), Date: date("2024-01-15"),
	})
	require.NoError(t, err)

	balance, err := env.expenses.GetBalance(env.ctx, owner, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "500", balance.Deposits.String())
	assert.Equal(t, "120.5", balance.ObligationsPaid.String())
	assert.Equal(t, "80", balance.ObligationsUnpaid.String())
	assert.Equal(t, "200.25", balance.Expenses.String())
	assert.Equal(t, "420.25", balance.Balance.String())

	stranger := env.user(t, "c@example.com")
	_, err = env.expenses.GetBalance(env.ctx, stranger, b.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestGetBalance_SkipsDeletedFloors(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "a@example.com")
	b := env.building(t, owner)
	f1 := env.floor(t, owner, b.ID, 1)
	f2 := env.floor(t, owner, b.ID, 2)
	a1 := env.apartment(t, owner, f1.ID, "1")
	a2 := env.apartment(t, owner, f2.ID, "21")

	_, err := env.ledger.CreateDeposit(env.ctx, owner, a1.ID, DepositInput{Amount: decimal.NewFromInt(100), Date: date("2024-01-01")})
	require.NoError(t, err)
	_, err = env.ledger.CreateDeposit(env.ctx, owner, a2.ID, DepositInput{Amount: decimal.NewFromInt(500), Date: date("2024-01-01")})
	require.NoError(t, err)
	_, err = env.ledger.CreateObligation(env.ctx, owner, a2.ID, ObligationInput{Amount: decimal.NewFromInt(40), DueDate: date("2024-02-01")})
	require.NoError(t, err)

	require.NoError(t, env.floors.DeleteFloor(env.ctx, owner, f2.ID, false))

	count, err := env.ledger.BulkCreateObligations(env.ctx, owner, b.ID, ObligationInput{Amount: decimal.NewFromInt(10), DueDate: date("2024-03-01")})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	balance, err := env.expenses.GetBalance(env.ctx, owner, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "100", balance.Deposits.String())
	assert.Equal(t, "10", balance.ObligationsUnpaid.String())
	assert.Equal(t, "100", balance.Balance.String())
}
