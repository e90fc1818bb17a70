package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/homsent/homsent-chef/backend/internal/middleware"
	"github.com/homsent/homsent-chef/backend/internal/mocks"
	"github.com/homsent/homsent-chef/backend/internal/model"
	"github.com/homsent/homsent-chef/backend/internal/service"
	"github.com/homsent/homsent-chef/backend/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router *gin.Engine
	gw     *mocks.MockGateway
	token  string
}

func setupTestServer(t *testing.T, aiLimit int) *testServer {
	t.Helper()
	gw := &mocks.MockGateway{}
	t.Cleanup(func() { gw.AssertExpectations(t) })

	adapter := storage.NewAdapter(storage.NewMemoryBackend(), zap.NewNop(), nil)
	workspaces := service.NewWorkspaces(gw, adapter, zap.NewNop(), nil)
	scopes := service.NewScopeService("test-secret", time.Hour)
	limiter := middleware.NewLocalRateLimiter(middleware.RateLimitConfig{
		Window:    time.Hour,
		Limit:     aiLimit,
		KeyPrefix: "test",
	})

	router := gin.New()
	NewHandler(workspaces, scopes, nil, limiter, zap.NewNop()).RegisterRoutes(router.Group("/api/v1"))

	ts := &testServer{router: router, gw: gw}
	rr := ts.do(t, http.MethodPost, "/api/v1/session", nil)
	require.Equal(t, http.StatusCreated, rr.Code)
	var session SessionResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &session))
	ts.token = session.Token
	return ts
}

func (ts *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if ts.token != "" {
		req.Header.Set("Authorization", "Bearer "+ts.token)
	}
	rr := httptest.NewRecorder()
	ts.router.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

// generate runs a successful generation and returns the stored recipe.
func (ts *testServer) generate(t *testing.T, title string) (model.Recipe, *mocks.MockChatSession) {
	t.Helper()
	chat := &mocks.MockChatSession{}
	ts.gw.On("GenerateRecipe", mock.Anything, []string{"pollo", "arroz"}, []string{}).Return(mocks.GeneratedRecipe(title), nil).Once()
	ts.gw.On("FindVideo", mock.Anything, title).Return("https://www.youtube.com/watch?v=abc123").Once()
	ts.gw.On("StartChat", mock.Anything, mock.Anything).Return(chat, nil).Once()

	rr := ts.do(t, http.MethodPost, "/api/v1/recipes/generate", GenerateRequest{Ingredients: "pollo, arroz"})
	require.Equal(t, http.StatusOK, rr.Code)
	state := decode[service.State](t, rr)
	require.NotNil(t, state.CurrentRecipe)
	return *state.CurrentRecipe, chat
}

func TestSession(t *testing.T) {
	ts := setupTestServer(t, 10)

	t.Run("should refresh a valid token for the same scope", func(t *testing.T) {
		first := ts.do(t, http.MethodGet, "/api/v1/state", nil)
		require.Equal(t, http.StatusOK, first.Code)

		rr := ts.do(t, http.MethodPost, "/api/v1/session", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		refreshed := decode[SessionResponse](t, rr)
		assert.NotEmpty(t, refreshed.Token)
		assert.True(t, strings.HasPrefix(refreshed.ScopeID, "scope-"))
	})

	t.Run("should reject scoped routes without a token", func(t *testing.T) {
		anon := &testServer{router: ts.router}
		rr := anon.do(t, http.MethodGet, "/api/v1/state", nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestNavigation(t *testing.T) {
	ts := setupTestServer(t, 10)

	rr := ts.do(t, http.MethodPost, "/api/v1/navigate", NavigateRequest{View: "shopping_list"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, service.ViewShoppingList, decode[service.State](t, rr).View)

	rr = ts.do(t, http.MethodPost, "/api/v1/navigate", NavigateRequest{View: "kitchen"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.do(t, http.MethodPut, "/api/v1/ingredients", IngredientsRequest{Ingredients: "huevos"})
	require.Equal(t, http.StatusOK, rr.Code)
	rr = ts.do(t, http.MethodPost, "/api/v1/ingredients/dictation", DictationRequest{Transcript: "patatas"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "huevos, patatas", decode[service.State](t, rr).Ingredients)

	rr = ts.do(t, http.MethodGet, "/api/v1/filters", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Vegano")
}

func TestGenerateAndManageRecipe(t *testing.T) {
	ts := setupTestServer(t, 10)
	recipe, _ := ts.generate(t, "Arroz con Pollo")
	path := "/api/v1/recipes/" + recipe.ID

	t.Run("should list the stored recipe", func(t *testing.T) {
		rr := ts.do(t, http.MethodGet, "/api/v1/recipes", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		list := decode[RecipeListResponse](t, rr)
		assert.Equal(t, 1, list.Total)
		require.Len(t, list.Creations, 1)
		assert.Equal(t, "Arroz con Pollo", list.Creations[0].Title)
	})

	t.Run("should reject unknown gallery filters", func(t *testing.T) {
		rr := ts.do(t, http.MethodGet, "/api/v1/recipes?cost=Gratis", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("should return the recipe with its embed url", func(t *testing.T) {
		rr := ts.do(t, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		got := decode[RecipeResponse](t, rr)
		assert.Equal(t, "https://www.youtube.com/embed/abc123", got.EmbedURL)
		assert.Equal(t, "Arroz con Pollo", got.Title)
	})

	t.Run("should toggle the favorite flag", func(t *testing.T) {
		rr := ts.do(t, http.MethodPost, path+"/favorite", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, decode[model.Recipe](t, rr).Favorite)
	})

	t.Run("should export a pdf download", func(t *testing.T) {
		rr := ts.do(t, http.MethodGet, path+"/export", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
		assert.Contains(t, rr.Header().Get("Content-Disposition"), "arroz_con_pollo.pdf")
		assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF")))
	})

	t.Run("should refuse link delivery without storage", func(t *testing.T) {
		rr := ts.do(t, http.MethodGet, path+"/export?delivery=link", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("should build share content", func(t *testing.T) {
		rr := ts.do(t, http.MethodGet, path+"/share", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Arroz con Pollo")
	})

	t.Run("should delete the recipe", func(t *testing.T) {
		rr := ts.do(t, http.MethodDelete, path, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Nil(t, decode[service.State](t, rr).CurrentRecipe)

		assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodGet, path, nil).Code)
		assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodDelete, path, nil).Code)
	})
}

func TestGenerateRateLimit(t *testing.T) {
	ts := setupTestServer(t, 1)
	ts.generate(t, "Arroz con Pollo")

	rr := ts.do(t, http.MethodPost, "/api/v1/recipes/generate", GenerateRequest{Ingredients: "pollo, arroz"})
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "1", rr.Header().Get("X-RateLimit-Limit"))
}

func TestCapture(t *testing.T) {
	ts := setupTestServer(t, 10)
	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 32)...)
	ts.gw.On("IdentifyIngredients", mock.Anything, png, "image/png").Return([]string{"tomate", "queso"}, nil).Once()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("image", "foto.png")
	require.NoError(t, err)
	_, err = part.Write(png)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/camera/capture", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+ts.token)
	rr := httptest.NewRecorder()
	ts.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "tomate, queso", decode[service.State](t, rr).Ingredients)

	rr = ts.do(t, http.MethodPost, "/api/v1/camera/capture", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// search runs a global search that returns one paella result.
func (ts *testServer) search(t *testing.T) service.GlobalResult {
	t.Helper()
	ts.gw.On("SearchRecipes", mock.Anything, "paella").
		Return([]model.Recipe{mocks.GeneratedRecipe("Paella Valenciana")}, nil).Once()
	ts.gw.On("FindVideo", mock.Anything, "Paella Valenciana").Return("https://youtu.be/paella42").Once()

	rr := ts.do(t, http.MethodPost, "/api/v1/search", SearchRequest{Query: "paella"})
	require.Equal(t, http.StatusOK, rr.Code)
	global := decode[service.GlobalState](t, rr)
	require.Len(t, global.Results, 1)
	return global.Results[0]
}

func TestSearchResult(t *testing.T) {
	ts := setupTestServer(t, 10)
	result := ts.search(t)
	path := "/api/v1/search/" + result.ID

	t.Run("should return the result with its embed url", func(t *testing.T) {
		rr := ts.do(t, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		got := decode[RecipeResponse](t, rr)
		assert.Equal(t, "Paella Valenciana", got.Title)
		assert.Equal(t, "https://www.youtube.com/embed/paella42", got.EmbedURL)
	})

	t.Run("should export an unsaved result", func(t *testing.T) {
		rr := ts.do(t, http.MethodGet, path+"/export", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
		assert.Contains(t, rr.Header().Get("Content-Disposition"), "paella_valenciana.pdf")
		assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF")))
	})

	t.Run("should share an unsaved result", func(t *testing.T) {
		rr := ts.do(t, http.MethodGet, path+"/share", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Paella Valenciana")
	})

	t.Run("should not save the result", func(t *testing.T) {
		rr := ts.do(t, http.MethodGet, "/api/v1/recipes", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Zero(t, decode[RecipeListResponse](t, rr).Total)
	})

	t.Run("should reject unknown results", func(t *testing.T) {
		for _, suffix := range []string{"", "/export", "/share"} {
			rr := ts.do(t, http.MethodGet, "/api/v1/search/global-missing"+suffix, nil)
			assert.Equal(t, http.StatusNotFound, rr.Code, suffix)
		}
	})
}

func TestSearchFavorite(t *testing.T) {
	ts := setupTestServer(t, 10)
	result := ts.search(t)
	assert.False(t, result.Favorited)

	rr := ts.do(t, http.MethodPost, "/api/v1/search/"+result.ID+"/favorite", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	saved := decode[model.Recipe](t, rr)
	assert.True(t, saved.Favorite)
	assert.Equal(t, model.OriginWorld, saved.Origin)

	rr = ts.do(t, http.MethodGet, "/api/v1/search", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, decode[service.GlobalState](t, rr).Results[0].Favorited)

	rr = ts.do(t, http.MethodPost, "/api/v1/search/global-missing/favorite", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestChat(t *testing.T) {
	ts := setupTestServer(t, 10)

	rr := ts.do(t, http.MethodPost, "/api/v1/chat/open", nil)
	assert.Equal(t, http.StatusConflict, rr.Code)

	_, chat := ts.generate(t, "Arroz con Pollo")
	chat.On("Send", mock.Anything, "¿Puedo usar quinoa?").Return("Sí, funciona igual de bien.", nil).Once()

	rr = ts.do(t, http.MethodPost, "/api/v1/chat/open", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, decode[service.ChatState](t, rr).Open)

	rr = ts.do(t, http.MethodPost, "/api/v1/chat/messages", ChatMessageRequest{Message: "  "})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.do(t, http.MethodPost, "/api/v1/chat/messages", ChatMessageRequest{Message: "¿Puedo usar quinoa?"})
	require.Equal(t, http.StatusOK, rr.Code)
	state := decode[service.ChatState](t, rr)
	require.Len(t, state.History, 3)
	assert.Equal(t, model.ChatRoleChef, state.History[2].Role)
	assert.Equal(t, "Sí, funciona igual de bien.", state.History[2].Content)
	chat.AssertExpectations(t)
}

func TestShoppingList(t *testing.T) {
	ts := setupTestServer(t, 10)

	rr := ts.do(t, http.MethodPost, "/api/v1/shopping-list/items", AddItemsRequest{Names: []string{"Tomate", "tomate", "Sal"}})
	require.Equal(t, http.StatusOK, rr.Code)
	added := decode[AddItemsResponse](t, rr)
	assert.Equal(t, 2, added.Added)
	require.Len(t, added.Items, 2)
	tomato := added.Items[0]

	rr = ts.do(t, http.MethodPut, "/api/v1/shopping-list/items/"+tomato.ID+"/quantity", QuantityRequest{Quantity: "1 kg"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "1 kg", decode[ShoppingListResponse](t, rr).Items[0].Quantity)

	rr = ts.do(t, http.MethodPost, "/api/v1/shopping-list/items/"+tomato.ID+"/toggle", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	list := decode[ShoppingListResponse](t, rr)
	assert.Equal(t, 1, list.PendingCount)
	assert.Equal(t, 1, list.CompletedCount)
	assert.False(t, list.AllChecked)

	rr = ts.do(t, http.MethodPost, "/api/v1/shopping-list/items/item-missing/toggle", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = ts.do(t, http.MethodGet, "/api/v1/shopping-list/retailers/mercadona", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "https://tienda.mercadona.es/search?query=Sal", decode[RetailerLinkResponse](t, rr).URL)

	rr = ts.do(t, http.MethodGet, "/api/v1/shopping-list/retailers/Lidl", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = ts.do(t, http.MethodDelete, "/api/v1/shopping-list/completed", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[ShoppingListResponse](t, rr).Items, 1)

	rr = ts.do(t, http.MethodPost, "/api/v1/shopping-list/toggle-all", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, decode[ShoppingListResponse](t, rr).AllChecked)

	rr = ts.do(t, http.MethodGet, "/api/v1/shopping-list/share", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.do(t, http.MethodDelete, "/api/v1/shopping-list", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decode[ShoppingListResponse](t, rr).Items)
}
