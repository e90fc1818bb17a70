package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/cases"

	"github.com/homsent/homsent-chef/backend/internal/model"
	"github.com/homsent/homsent-chef/backend/internal/storage"
)

// ShoppingList is the ordered shopping list. Names are unique ignoring case;
// duplicates are dropped on insertion, never merged.
type ShoppingList struct {
	mu      sync.RWMutex
	records storage.Records
	items   []model.ShoppingListItem
}

// NewShoppingList loads the saved list once.
func NewShoppingList(ctx context.Context, records storage.Records) *ShoppingList {
	l := &ShoppingList{records: records}
	if !records.Load(ctx, storage.ShoppingListKey, &l.items) || l.items == nil {
		l.items = []model.ShoppingListItem{}
	}
	return l
}

// Items returns a copy of the list in insertion order.
func (l *ShoppingList) Items() []model.ShoppingListItem {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]model.ShoppingListItem{}, l.items...)
}

// Pending returns the unchecked items.
func (l *ShoppingList) Pending() []model.ShoppingListItem {
	l.mu.RLock()
	defer l.mu.RUnlock()
	pending := make([]model.ShoppingListItem, 0, len(l.items))
	for _, it := range l.items {
		if !it.Checked {
			pending = append(pending, it)
		}
	}
	return pending
}

// AddMany appends every name not already present, ignoring case both against
// the list and within names. New items get quantity "1". Returns how many
// were added; the list is persisted once when that is non-zero.
func (l *ShoppingList) AddMany(ctx context.Context, names []string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	fold := cases.Fold()
	seen := make(map[string]struct{}, len(l.items)+len(names))
	for _, it := range l.items {
		seen[fold.String(it.Name)] = struct{}{}
	}

	added := 0
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		key := fold.String(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		l.items = append(l.items, model.ShoppingListItem{
			ID:       newItemID(),
			Name:     name,
			Quantity: "1",
		})
		added++
	}

	if added > 0 {
		l.persist(ctx)
	}
	return added
}

func (l *ShoppingList) Toggle(ctx context.Context, id string) (model.ShoppingListItem, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.indexOf(id)
	if i < 0 {
		return model.ShoppingListItem{}, false
	}
	l.items[i].Checked = !l.items[i].Checked
	l.persist(ctx)
	return l.items[i], true
}

func (l *ShoppingList) SetQuantity(ctx context.Context, id, quantity string) (model.ShoppingListItem, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.indexOf(id)
	if i < 0 {
		return model.ShoppingListItem{}, false
	}
	l.items[i].Quantity = quantity
	l.persist(ctx)
	return l.items[i], true
}

// ClearCompleted removes checked items and returns how many were removed.
func (l *ShoppingList) ClearCompleted(ctx context.Context) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	kept := l.items[:0:0]
	for _, it := range l.items {
		if !it.Checked {
			kept = append(kept, it)
		}
	}
	removed := len(l.items) - len(kept)
	l.items = kept
	l.persist(ctx)
	return removed
}

func (l *ShoppingList) ClearAll(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = []model.ShoppingListItem{}
	l.persist(ctx)
}

// ToggleAll unchecks everything when the list is non-empty and fully
// checked, and checks everything otherwise.
func (l *ShoppingList) ToggleAll(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	allChecked := len(l.items) > 0
	for _, it := range l.items {
		if !it.Checked {
			allChecked = false
			break
		}
	}
	for i := range l.items {
		l.items[i].Checked = !allChecked
	}
	l.persist(ctx)
}

func (l *ShoppingList) indexOf(id string) int {
	for i := range l.items {
		if l.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (l *ShoppingList) persist(ctx context.Context) {
	// Writes must land even when the triggering request goes away.
	l.records.Save(context.WithoutCancel(ctx), storage.ShoppingListKey, l.items)
}

// AddedMessage is the notice shown after adding ingredients to the list.
func AddedMessage(added int) string {
	switch added {
	case 0:
		return "Todos los ingredientes seleccionados ya estaban en la lista"
	case 1:
		return "Ingrediente añadido"
	default:
		return fmt.Sprintf("%d ingredientes añadidos", added)
	}
}
