package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/labinventaris/internal/domain"
	"github.com/jhoicas/labinventaris/internal/domain/entity"
	"github.com/jhoicas/labinventaris/internal/infrastructure/memory"
)

func TestItems_CreateManyEsAtomico(t *testing.T) {
	ctx := context.Background()
	gw := memory.NewGateway()
	require.NoError(t, gw.Items.Create(ctx, &entity.Item{ID: "ITEM-1", Name: "A"}))

	err := gw.Items.CreateMany(ctx, []*entity.Item{{ID: "ITEM-2", Name: "B"}, {ID: "ITEM-1", Name: "dup"}})
	assert.ErrorIs(t, err, domain.ErrConflict)

	items, err := gw.Items.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1, "ninguna fila del lote fallido queda guardada")
	assert.Equal(t, "A", items[0].Name)
}

func TestItems_UpdateYDelete(t *testing.T) {
	ctx := context.Background()
	gw := memory.NewGateway()
	require.NoError(t, gw.Items.Create(ctx, &entity.Item{ID: "ITEM-1", Name: "A", Quantity: 3}))

	qty := 9
	require.NoError(t, gw.Items.Update(ctx, "ITEM-1", entity.ItemPatch{Quantity: &qty}))
	items, _ := gw.Items.List(ctx)
	assert.Equal(t, 9, items[0].Quantity)
	assert.Equal(t, "A", items[0].Name)

	items[0].Name = "mutado fuera"
	again, _ := gw.Items.List(ctx)
	assert.Equal(t, "A", again[0].Name, "List devuelve copias")

	assert.ErrorIs(t, gw.Items.Update(ctx, "NOPE", entity.ItemPatch{Quantity: &qty}), domain.ErrNotFound)
	require.NoError(t, gw.Items.Delete(ctx, "ITEM-1"))
	assert.ErrorIs(t, gw.Items.Delete(ctx, "ITEM-1"), domain.ErrNotFound)
}

func TestLogs_MasRecientePrimero(t *testing.T) {
	ctx := context.Background()
	gw := memory.NewGateway()
	require.NoError(t, gw.Logs.Create(ctx, &entity.ActivityLog{ID: "1", Action: "primero"}))
	require.NoError(t, gw.Logs.Create(ctx, &entity.ActivityLog{ID: "2", Action: "segundo"}))

	logs, err := gw.Logs.List(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "segundo", logs[0].Action)
}

func TestProfiles_GetInexistenteDevuelveNil(t *testing.T) {
	ctx := context.Background()
	gw := memory.NewGateway()

	p, err := gw.Profiles.Get(ctx, entity.DefaultProfileID)
	require.NoError(t, err)
	assert.Nil(t, p)

	require.NoError(t, gw.Profiles.Upsert(ctx, &entity.UserProfile{ID: entity.DefaultProfileID, Name: "Dr. Arini"}))
	p, err = gw.Profiles.Get(ctx, entity.DefaultProfileID)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Dr. Arini", p.Name)
}

func TestNotifications_MarkReadYDeleteAll(t *testing.T) {
	ctx := context.Background()
	gw := memory.NewGateway()
	require.NoError(t, gw.Notifications.Create(ctx, &entity.Notification{ID: "N1"}))

	require.NoError(t, gw.Notifications.MarkRead(ctx, "N1"))
	list, _ := gw.Notifications.List(ctx)
	assert.True(t, list[0].Read)

	require.NoError(t, gw.Notifications.DeleteAll(ctx))
	list, _ = gw.Notifications.List(ctx)
	assert.Empty(t, list)
}
