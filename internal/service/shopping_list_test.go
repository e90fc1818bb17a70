package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(l *ShoppingList) []string {
	var out []string
	for _, it := range l.Items() {
		out = append(out, it.Name)
	}
	return out
}

func TestShoppingListAddMany(t *testing.T) {
	ctx := context.Background()

	t.Run("should drop duplicates ignoring case", func(t *testing.T) {
		_, records := newTestRecords()
		list := NewShoppingList(ctx, records)

		added := list.AddMany(ctx, []string{"Tomate", "tomate", "Sal"})
		assert.Equal(t, 2, added)
		assert.Equal(t, []string{"Tomate", "Sal"}, names(list))

		added = list.AddMany(ctx, []string{"SAL", "Pimienta"})
		assert.Equal(t, 1, added)
		assert.Equal(t, []string{"Tomate", "Sal", "Pimienta"}, names(list))
	})

	t.Run("should create unchecked items with quantity one", func(t *testing.T) {
		_, records := newTestRecords()
		list := NewShoppingList(ctx, records)
		list.AddMany(ctx, []string{"Leche"})

		items := list.Items()
		require.Len(t, items, 1)
		assert.Equal(t, "1", items[0].Quantity)
		assert.False(t, items[0].Checked)
		assert.True(t, strings.HasPrefix(items[0].ID, "item-"))
	})

	t.Run("should skip blank names", func(t *testing.T) {
		_, records := newTestRecords()
		list := NewShoppingList(ctx, records)
		assert.Equal(t, 1, list.AddMany(ctx, []string{"", "  ", "Huevos"}))
	})

	t.Run("should not write when nothing was added", func(t *testing.T) {
		backend, records := newTestRecords()
		list := NewShoppingList(ctx, records)
		list.AddMany(ctx, []string{"Arroz"})
		writes := backend.writes

		assert.Equal(t, 0, list.AddMany(ctx, []string{"arroz", "ARROZ"}))
		assert.Equal(t, writes, backend.writes)
	})

	t.Run("should persist across reloads", func(t *testing.T) {
		_, records := newTestRecords()
		list := NewShoppingList(ctx, records)
		list.AddMany(ctx, []string{"Harina", "Azúcar"})

		reloaded := NewShoppingList(ctx, records)
		assert.Equal(t, list.Items(), reloaded.Items())
	})
}

func TestShoppingListMutations(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*countingBackend, *ShoppingList) {
		backend, records := newTestRecords()
		list := NewShoppingList(ctx, records)
		require.Equal(t, 3, list.AddMany(ctx, []string{"Pan", "Queso", "Vino"}))
		return backend, list
	}

	t.Run("should toggle an item", func(t *testing.T) {
		_, list := setup(t)
		id := list.Items()[1].ID

		item, ok := list.Toggle(ctx, id)
		require.True(t, ok)
		assert.True(t, item.Checked)
		assert.Len(t, list.Pending(), 2)

		item, _ = list.Toggle(ctx, id)
		assert.False(t, item.Checked)
	})

	t.Run("should ignore unknown ids without writing", func(t *testing.T) {
		backend, list := setup(t)
		writes := backend.writes

		_, ok := list.Toggle(ctx, "missing")
		assert.False(t, ok)
		_, ok = list.SetQuantity(ctx, "missing", "3")
		assert.False(t, ok)
		assert.Equal(t, writes, backend.writes)
	})

	t.Run("should set a free text quantity", func(t *testing.T) {
		_, list := setup(t)
		id := list.Items()[0].ID

		item, ok := list.SetQuantity(ctx, id, "2 barras")
		require.True(t, ok)
		assert.Equal(t, "2 barras", item.Quantity)
		assert.Equal(t, "2 barras", list.Items()[0].Quantity)
	})

	t.Run("should clear completed items", func(t *testing.T) {
		_, list := setup(t)
		items := list.Items()
		list.Toggle(ctx, items[0].ID)
		list.Toggle(ctx, items[2].ID)

		assert.Equal(t, 2, list.ClearCompleted(ctx))
		assert.Equal(t, []string{"Queso"}, names(list))
	})

	t.Run("should clear everything", func(t *testing.T) {
		_, list := setup(t)
		list.ClearAll(ctx)
		assert.Empty(t, list.Items())
	})

	t.Run("should check all unless all are checked", func(t *testing.T) {
		_, list := setup(t)
		list.Toggle(ctx, list.Items()[0].ID)

		list.ToggleAll(ctx)
		for _, it := range list.Items() {
			assert.True(t, it.Checked)
		}

		list.ToggleAll(ctx)
		for _, it := range list.Items() {
			assert.False(t, it.Checked)
		}
	})

	t.Run("should leave an empty list empty on toggle all", func(t *testing.T) {
		_, records := newTestRecords()
		list := NewShoppingList(ctx, records)
		list.ToggleAll(ctx)
		assert.Empty(t, list.Items())
	})
}

func TestAddedMessage(t *testing.T) {
	assert.Equal(t, "Todos los ingredientes seleccionados ya estaban en la lista", AddedMessage(0))
	assert.Equal(t, "Ingrediente añadido", AddedMessage(1))
	assert.Equal(t, "4 ingredientes añadidos", AddedMessage(4))
}
