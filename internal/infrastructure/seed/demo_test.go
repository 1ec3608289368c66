package seed_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/labinventaris/internal/domain/entity"
	domaininv "github.com/jhoicas/labinventaris/internal/domain/inventory"
	"github.com/jhoicas/labinventaris/internal/infrastructure/memory"
	"github.com/jhoicas/labinventaris/internal/infrastructure/seed"
)

func TestApply_IdempotenteYOrden(t *testing.T) {
	ctx := context.Background()
	gw := memory.NewGateway()
	today := time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC)
	ds := seed.Demo(today)

	res, err := seed.Apply(ctx, gw, ds)
	require.NoError(t, err)
	assert.Equal(t, seed.Result{Labs: 5, Items: 12, Loans: 2, Logs: 3, Notifications: 3}, res)

	again, err := seed.Apply(ctx, gw, ds)
	require.NoError(t, err)
	assert.Equal(t, seed.Result{}, again, "la segunda corrida no inserta nada")

	items, err := gw.Items.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 12)
	assert.Equal(t, "TOOL-001", items[0].ID)

	logs, err := gw.Logs.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "3", logs[0].ID)

	p, err := gw.Profiles.Get(ctx, entity.DefaultProfileID)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Dr. Arini", p.Name)
}

func TestDemo_PrestamoVencidoYVigente(t *testing.T) {
	today := time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC)
	ds := seed.Demo(today)

	require.Len(t, ds.Loans, 2)
	assert.True(t, domaininv.LoanIsOverdue(ds.Loans[0].DueDate, ds.Loans[0].Status, today))
	assert.False(t, domaininv.LoanIsOverdue(ds.Loans[1].DueDate, ds.Loans[1].Status, today))
}
