package service

import (
	"context"
	"time"

	"github.com/homsent/homsent-chef/backend/internal/metrics"
	"github.com/homsent/homsent-chef/backend/internal/model"
)

// Gateway is the boundary to the generative AI provider.
type Gateway interface {
	// IdentifyIngredients names the food visible in an image. An empty slice
	// means nothing was recognized. Failures wrap ErrRecognition.
	IdentifyIngredients(ctx context.Context, image []byte, mimeType string) ([]string, error)
	// GenerateRecipe returns a recipe without id, favorite flag or video.
	// Failures wrap ErrGeneration.
	GenerateRecipe(ctx context.Context, ingredients, filters []string) (model.Recipe, error)
	// SearchRecipes returns up to three well known recipes matching query.
	// Failures wrap ErrSearch.
	SearchRecipes(ctx context.Context, query string) ([]model.Recipe, error)
	// FindVideo returns a tutorial URL for the title or "" when none is found
	// or the lookup fails.
	FindVideo(ctx context.Context, title string) string
	// StartChat opens a conversation grounded on recipe.
	StartChat(ctx context.Context, recipe model.Recipe) (ChatSession, error)
}

// ChatSession is an opaque multi-turn conversation with the AI chef.
type ChatSession interface {
	// Send returns the chef's reply. Failures wrap ErrChat.
	Send(ctx context.Context, message string) (string, error)
}

// InstrumentedGateway records call counts and latency for every gateway call.
type InstrumentedGateway struct {
	next    Gateway
	metrics *metrics.Metrics
}

var _ Gateway = (*InstrumentedGateway)(nil)

func NewInstrumentedGateway(next Gateway, m *metrics.Metrics) *InstrumentedGateway {
	return &InstrumentedGateway{next: next, metrics: m}
}

func (g *InstrumentedGateway) IdentifyIngredients(ctx context.Context, image []byte, mimeType string) ([]string, error) {
	start := time.Now()
	names, err := g.next.IdentifyIngredients(ctx, image, mimeType)
	g.metrics.ObserveAICall("identify_ingredients", err, time.Since(start))
	return names, err
}

func (g *InstrumentedGateway) GenerateRecipe(ctx context.Context, ingredients, filters []string) (model.Recipe, error) {
	start := time.Now()
	recipe, err := g.next.GenerateRecipe(ctx, ingredients, filters)
	g.metrics.ObserveAICall("generate_recipe", err, time.Since(start))
	return recipe, err
}

func (g *InstrumentedGateway) SearchRecipes(ctx context.Context, query string) ([]model.Recipe, error) {
	start := time.Now()
	recipes, err := g.next.SearchRecipes(ctx, query)
	g.metrics.ObserveAICall("search_recipes", err, time.Since(start))
	return recipes, err
}

func (g *InstrumentedGateway) FindVideo(ctx context.Context, title string) string {
	start := time.Now()
	url := g.next.FindVideo(ctx, title)
	outcome := metrics.OutcomeOK
	if url == "" {
		outcome = metrics.OutcomeNotFound
	}
	g.metrics.ObserveAIOutcome("find_video", outcome, time.Since(start))
	return url
}

func (g *InstrumentedGateway) StartChat(ctx context.Context, recipe model.Recipe) (ChatSession, error) {
	start := time.Now()
	session, err := g.next.StartChat(ctx, recipe)
	g.metrics.ObserveAICall("start_chat", err, time.Since(start))
	if err != nil {
		return nil, err
	}
	return &instrumentedChat{next: session, metrics: g.metrics}, nil
}

type instrumentedChat struct {
	next    ChatSession
	metrics *metrics.Metrics
}

func (c *instrumentedChat) Send(ctx context.Context, message string) (string, error) {
	start := time.Now()
	reply, err := c.next.Send(ctx, message)
	c.metrics.ObserveAICall("chat", err, time.Since(start))
	return reply, err
}
