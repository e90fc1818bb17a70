package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/homsent/homsent-chef/backend/internal/model"
	"github.com/homsent/homsent-chef/backend/internal/service"
)

// MockGateway is a mock implementation of the AI gateway
type MockGateway struct {
	mock.Mock
}

var _ service.Gateway = (*MockGateway)(nil)

// IdentifyIngredients mocks the IdentifyIngredients method
func (m *MockGateway) IdentifyIngredients(ctx context.Context, image []byte, mimeType string) ([]string, error) {
	args := m.Called(ctx, image, mimeType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// GenerateRecipe mocks the GenerateRecipe method
func (m *MockGateway) GenerateRecipe(ctx context.Context, ingredients, filters []string) (model.Recipe, error) {
	args := m.Called(ctx, ingredients, filters)
	return args.Get(0).(model.Recipe), args.Error(1)
}

// SearchRecipes mocks the SearchRecipes method
func (m *MockGateway) SearchRecipes(ctx context.Context, query string) ([]model.Recipe, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

// FindVideo mocks the FindVideo method
func (m *MockGateway) FindVideo(ctx context.Context, title string) string {
	args := m.Called(ctx, title)
	return args.String(0)
}

// StartChat mocks the StartChat method
func (m *MockGateway) StartChat(ctx context.Context, recipe model.Recipe) (service.ChatSession, error) {
	args := m.Called(ctx, recipe)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(service.ChatSession), args.Error(1)
}

// MockChatSession is a mock implementation of a chef chat session
type MockChatSession struct {
	mock.Mock
}

var _ service.ChatSession = (*MockChatSession)(nil)

// Send mocks the Send method
func (m *MockChatSession) Send(ctx context.Context, message string) (string, error) {
	args := m.Called(ctx, message)
	return args.String(0), args.Error(1)
}
