package service

import (
	"context"
	"sync"

	"github.com/homsent/homsent-chef/backend/internal/model"
	"github.com/homsent/homsent-chef/backend/internal/storage"
)

// RecipeStore is the ordered collection of saved recipes, newest first.
// Every mutation writes the full list through to storage.
type RecipeStore struct {
	mu      sync.RWMutex
	records storage.Records
	recipes []model.Recipe
}

// NewRecipeStore loads the saved recipes once. A missing or unreadable
// record starts an empty collection.
func NewRecipeStore(ctx context.Context, records storage.Records) *RecipeStore {
	s := &RecipeStore{records: records}
	if !records.Load(ctx, storage.RecipesKey, &s.recipes) || s.recipes == nil {
		s.recipes = []model.Recipe{}
	}
	return s
}

// List returns a copy of every recipe, newest first.
func (s *RecipeStore) List() []model.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.CloneRecipes(s.recipes)
}

func (s *RecipeStore) Get(id string) (model.Recipe, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.recipes[i].Clone(), true
	}
	return model.Recipe{}, false
}

// Add prepends recipe.
func (s *RecipeStore) Add(ctx context.Context, recipe model.Recipe) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recipes = append([]model.Recipe{recipe.Clone()}, s.recipes...)
	s.persist(ctx)
}

// Delete removes the recipe with id and reports whether it existed.
func (s *RecipeStore) Delete(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.recipes = append(s.recipes[:i:i], s.recipes[i+1:]...)
	s.persist(ctx)
	return true
}

// ToggleFavorite flips the favorite flag of the recipe with id and returns
// the updated recipe.
func (s *RecipeStore) ToggleFavorite(ctx context.Context, id string) (model.Recipe, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return model.Recipe{}, false
	}
	s.recipes[i].Favorite = !s.recipes[i].Favorite
	s.persist(ctx)
	return s.recipes[i].Clone(), true
}

// ToggleFavoriteByTitle handles favorites coming from global search results,
// which have no stable id. A stored recipe with the same title is flipped;
// otherwise a favorited copy with a new id and origin Mundial is prepended.
func (s *RecipeStore) ToggleFavoriteByTitle(ctx context.Context, recipe model.Recipe) model.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.recipes {
		if s.recipes[i].Title == recipe.Title {
			s.recipes[i].Favorite = !s.recipes[i].Favorite
			s.persist(ctx)
			return s.recipes[i].Clone()
		}
	}

	promoted := recipe.Clone()
	promoted.ID = NewRecipeID()
	promoted.Favorite = true
	promoted.Origin = model.OriginWorld
	s.recipes = append([]model.Recipe{promoted}, s.recipes...)
	s.persist(ctx)
	return promoted.Clone()
}

// IsFavoritedByTitle reports the favorite flag of the stored recipe whose
// title equals recipe's, or false when none does.
func (s *RecipeStore) IsFavoritedByTitle(recipe model.Recipe) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.recipes {
		if r.Title == recipe.Title {
			return r.Favorite
		}
	}
	return false
}

func (s *RecipeStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.recipes)
}

func (s *RecipeStore) indexOf(id string) int {
	for i := range s.recipes {
		if s.recipes[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *RecipeStore) persist(ctx context.Context) {
	// Writes must land even when the triggering request goes away.
	s.records.Save(context.WithoutCancel(ctx), storage.RecipesKey, s.recipes)
}
