// Package gemini implements the AI gateway on top of the Google Gen AI SDK.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/homsent/homsent-chef/backend/internal/model"
	"github.com/homsent/homsent-chef/backend/internal/service"
)

const (
	DefaultModel     = "gemini-2.5-flash"
	maxSearchResults = 3
)

// generator is the subset of *genai.Models used by the gateway.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// chatStarter is the subset of *genai.Chats used by the gateway.
type chatStarter interface {
	Create(ctx context.Context, model string, config *genai.GenerateContentConfig, history []*genai.Content) (*genai.Chat, error)
}

// Gateway talks to Gemini for recognition, generation, search, video lookup
// and chat.
type Gateway struct {
	models   generator
	chats    chatStarter
	model    string
	validate *validator.Validate
	log      *zap.Logger
}

var _ service.Gateway = (*Gateway)(nil)

// NewGateway creates a Gemini client for the Gemini Developer API.
func NewGateway(ctx context.Context, apiKey, modelName string, log *zap.Logger) (*Gateway, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key must be set")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return newGateway(client.Models, client.Chats, modelName, log), nil
}

func newGateway(models generator, chats chatStarter, modelName string, log *zap.Logger) *Gateway {
	if modelName == "" {
		modelName = DefaultModel
	}
	return &Gateway{
		models:   models,
		chats:    chats,
		model:    modelName,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log.Named("gemini"),
	}
}

func (g *Gateway) IdentifyIngredients(ctx context.Context, image []byte, mimeType string) ([]string, error) {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(image, mimeType),
			genai.NewPartFromText(identifyPrompt),
		}, genai.RoleUser),
	}

	resp, err := g.models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", service.ErrRecognition, err)
	}
	return service.SplitIngredients(strings.TrimSpace(resp.Text())), nil
}

func (g *Gateway) GenerateRecipe(ctx context.Context, ingredients, filters []string) (model.Recipe, error) {
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(recipePrompt(ingredients, filters)), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   recipeSchema,
	})
	if err != nil {
		return model.Recipe{}, fmt.Errorf("%w: %v", service.ErrGeneration, err)
	}

	recipe, err := g.decodeRecipe(resp.Text())
	if err != nil {
		return model.Recipe{}, fmt.Errorf("%w: %v", service.ErrGeneration, err)
	}
	return recipe, nil
}

func (g *Gateway) SearchRecipes(ctx context.Context, query string) ([]model.Recipe, error) {
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(searchPrompt(query)), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   recipeArraySchema,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", service.ErrSearch, err)
	}

	recipes, err := g.decodeRecipes(resp.Text())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", service.ErrSearch, err)
	}
	return recipes, nil
}

// FindVideo asks Gemini, grounded on Google Search, for a YouTube tutorial.
func (g *Gateway) FindVideo(ctx context.Context, title string) string {
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(videoPrompt(title)), &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	})
	if err != nil {
		g.log.Warn("video lookup failed", zap.String("title", title), zap.Error(err))
		return ""
	}
	return extractURL(resp.Text())
}

func (g *Gateway) StartChat(ctx context.Context, recipe model.Recipe) (service.ChatSession, error) {
	chat, err := g.chats.Create(ctx, g.model, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(chefInstruction(recipe), genai.RoleUser),
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start chat: %w", err)
	}
	return &chatSession{chat: chat}, nil
}

type chatSession struct {
	chat *genai.Chat
}

func (s *chatSession) Send(ctx context.Context, message string) (string, error) {
	resp, err := s.chat.SendMessage(ctx, genai.Part{Text: message})
	if err != nil {
		return "", fmt.Errorf("%w: %v", service.ErrChat, err)
	}
	return resp.Text(), nil
}

func (g *Gateway) decodeRecipe(text string) (model.Recipe, error) {
	var recipe model.Recipe
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &recipe); err != nil {
		return model.Recipe{}, fmt.Errorf("failed to parse recipe: %w", err)
	}
	if err := g.checkRecipe(&recipe); err != nil {
		return model.Recipe{}, err
	}
	return recipe, nil
}

func (g *Gateway) decodeRecipes(text string) ([]model.Recipe, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []model.Recipe{}, nil
	}
	var recipes []model.Recipe
	if err := json.Unmarshal([]byte(text), &recipes); err != nil {
		return nil, fmt.Errorf("failed to parse recipes: %w", err)
	}
	if len(recipes) > maxSearchResults {
		recipes = recipes[:maxSearchResults]
	}
	for i := range recipes {
		if err := g.checkRecipe(&recipes[i]); err != nil {
			return nil, fmt.Errorf("recipe %d: %w", i, err)
		}
	}
	if recipes == nil {
		recipes = []model.Recipe{}
	}
	return recipes, nil
}

// checkRecipe validates a decoded recipe and clears fields the model must
// not set.
func (g *Gateway) checkRecipe(r *model.Recipe) error {
	r.ID = ""
	r.Favorite = false
	r.VideoURL = ""
	if r.Origin == model.OriginWorld {
		return fmt.Errorf("invalid origin %q", r.Origin)
	}
	if err := g.validate.Struct(r); err != nil {
		return fmt.Errorf("invalid recipe: %w", err)
	}
	return nil
}

// extractURL returns the first http(s) URL in a model reply, or "".
func extractURL(text string) string {
	for _, field := range strings.Fields(text) {
		field = strings.Trim(field, "<>()[]\"'`.,")
		if strings.HasPrefix(field, "https://") || strings.HasPrefix(field, "http://") {
			return field
		}
	}
	return ""
}
