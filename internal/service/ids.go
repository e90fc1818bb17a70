package service

import "github.com/google/uuid"

// Ids are prefixed version 7 UUIDs, so they sort by creation time.

func NewRecipeID() string {
	return "recipe-" + uuid.Must(uuid.NewV7()).String()
}

func newGlobalID() string {
	return "global-" + uuid.Must(uuid.NewV7()).String()
}

func newItemID() string {
	return "item-" + uuid.Must(uuid.NewV7()).String()
}

func newScopeID() string {
	return "scope-" + uuid.Must(uuid.NewV7()).String()
}
