package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/homsent/homsent-chef/backend/internal/metrics"
	"github.com/homsent/homsent-chef/backend/internal/model"
	"github.com/homsent/homsent-chef/backend/internal/storage"
)

// View is the screen the browser should render.
type View string

const (
	ViewInput         View = "input"
	ViewCamera        View = "camera"
	ViewGallery       View = "gallery"
	ViewGlobalGallery View = "global_gallery"
	ViewShoppingList  View = "shopping_list"
)

// ParseView validates a view name coming from a client.
func ParseView(s string) (View, error) {
	switch v := View(s); v {
	case ViewInput, ViewCamera, ViewGallery, ViewGlobalGallery, ViewShoppingList:
		return v, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidView, s)
}

// FlowState tracks the capture, recognize and generate workflow.
type FlowState string

const (
	FlowIdle          FlowState = "idle"
	FlowCapturing     FlowState = "capturing"
	FlowRecognizing   FlowState = "recognizing"
	FlowGenerating    FlowState = "generating"
	FlowFetchingVideo FlowState = "fetching_video"
	FlowReady         FlowState = "ready"
)

// slot identifies one kind of async request. Each slot only commits the
// result of its most recent request.
type slot int

const (
	slotRecognition slot = iota
	slotGeneration
	slotSearch
	slotChat
	slotCount
)

var slotNames = [slotCount]string{"recognition", "generation", "search", "chat"}

// Controller owns the state of one browser scope and runs every workflow
// against the AI gateway and the stores. State changes are serialized by mu;
// gateway calls run without holding it.
type Controller struct {
	gateway  Gateway
	recipes  *RecipeStore
	shopping *ShoppingList
	log      *zap.Logger
	metrics  *metrics.Metrics

	mu             sync.Mutex
	seq            [slotCount]uint64
	view           View
	flow           FlowState
	ingredients    string
	current        *model.Recipe
	loading        bool
	loadingMessage string
	errMsg         string
	global         []model.Recipe
	globalLoading  bool
	globalErr      string
	chat           ChatSession
	chatHistory    []model.ChatMessage
	chatLoading    bool
	chatOpen       bool
	notice         string
}

// NewController loads both stores from records and starts on the input view.
func NewController(ctx context.Context, gateway Gateway, records storage.Records, log *zap.Logger, m *metrics.Metrics) *Controller {
	return &Controller{
		gateway:  gateway,
		recipes:  NewRecipeStore(ctx, records),
		shopping: NewShoppingList(ctx, records),
		log:      log,
		metrics:  m,
		view:     ViewInput,
		flow:     FlowIdle,
	}
}

func (c *Controller) Recipes() *RecipeStore {
	return c.recipes
}

func (c *Controller) ShoppingList() *ShoppingList {
	return c.shopping
}

// begin starts a request in s and returns its sequence number. Callers hold mu.
func (c *Controller) begin(s slot) uint64 {
	c.seq[s]++
	return c.seq[s]
}

// latest reports whether seq is still the latest request of s. Callers hold mu.
func (c *Controller) latest(s slot, seq uint64) bool {
	if c.seq[s] == seq {
		return true
	}
	c.metrics.StaleResult(slotNames[s])
	c.log.Debug("dropping stale result", zap.String("slot", slotNames[s]), zap.Uint64("seq", seq))
	return false
}

// invalidate makes every in-flight request of the given slots stale.
func (c *Controller) invalidate(slots ...slot) {
	for _, s := range slots {
		c.seq[s]++
	}
}

// --- navigation ---

// Navigate switches the rendered view. Opening the camera also moves the
// workflow to capturing.
func (c *Controller) Navigate(v View) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view = v
	if v == ViewCamera && !c.loading {
		c.flow = FlowCapturing
	} else if c.flow == FlowCapturing {
		c.flow = FlowIdle
	}
}

func (c *Controller) OpenCamera() {
	c.Navigate(ViewCamera)
}

func (c *Controller) CancelCamera() {
	c.Navigate(ViewInput)
}

// Reset returns to an empty input form, dropping the current recipe and the
// chat. Pending recognition, generation and chat results are discarded.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidate(slotRecognition, slotGeneration, slotChat)
	c.ingredients = ""
	c.current = nil
	c.errMsg = ""
	c.loading = false
	c.loadingMessage = ""
	c.flow = FlowIdle
	c.view = ViewInput
	c.chat = nil
	c.chatHistory = nil
	c.chatLoading = false
	c.chatOpen = false
}

func (c *Controller) SetIngredients(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ingredients = text
}

// AppendDictation adds a voice transcript to the ingredient text.
func (c *Controller) AppendDictation(transcript string) {
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ingredients == "" {
		c.ingredients = transcript
	} else {
		c.ingredients = c.ingredients + ", " + transcript
	}
}

func (c *Controller) DismissNotice() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notice = ""
}

// --- capture and generation ---

// Capture sends a photo to recognition and fills the ingredient text with
// the names found. A generation still in flight is abandoned.
func (c *Controller) Capture(ctx context.Context, image []byte, mimeType string) {
	c.mu.Lock()
	c.view = ViewInput
	c.flow = FlowRecognizing
	c.loading = true
	c.loadingMessage = loadingRecognizing
	c.errMsg = ""
	c.current = nil
	c.invalidate(slotGeneration)
	seq := c.begin(slotRecognition)
	c.mu.Unlock()

	names, err := c.gateway.IdentifyIngredients(ctx, image, mimeType)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.latest(slotRecognition, seq) {
		return
	}
	if err != nil {
		c.log.Warn("ingredient recognition failed", zap.Error(err))
		c.errMsg = MsgRecognitionFailed
	} else {
		c.ingredients = strings.Join(names, ", ")
	}
	if c.flow == FlowRecognizing {
		c.flow = FlowIdle
		c.loading = false
		c.loadingMessage = ""
	}
}

// Generate asks for a recipe from the comma separated ingredient text and
// the checked filters, looks up a video, stores the recipe and opens a chat
// about it.
func (c *Controller) Generate(ctx context.Context, text string, filters []model.FilterOption) {
	c.mu.Lock()
	c.ingredients = text
	if strings.TrimSpace(text) == "" {
		c.errMsg = MsgEmptyIngredients
		c.mu.Unlock()
		return
	}
	c.invalidate(slotRecognition, slotChat)
	seq := c.begin(slotGeneration)
	c.view = ViewInput
	c.flow = FlowGenerating
	c.loading = true
	c.loadingMessage = loadingGenerating
	c.errMsg = ""
	c.current = nil
	c.chat = nil
	c.chatHistory = nil
	c.chatLoading = false
	c.chatOpen = false
	c.mu.Unlock()

	ingredients := SplitIngredients(text)
	labels := model.CheckedLabels(filters)

	generated, err := c.gateway.GenerateRecipe(ctx, ingredients, labels)

	c.mu.Lock()
	if !c.latest(slotGeneration, seq) {
		c.mu.Unlock()
		return
	}
	if err != nil {
		c.log.Warn("recipe generation failed", zap.Error(err))
		c.errMsg = MsgGenerationFailed
		c.flow = FlowIdle
		c.loading = false
		c.loadingMessage = ""
		c.mu.Unlock()
		return
	}
	c.flow = FlowFetchingVideo
	c.loadingMessage = loadingVideo
	c.mu.Unlock()

	recipe := generated.Clone()
	recipe.VideoURL = c.gateway.FindVideo(ctx, recipe.Title)
	recipe.ID = NewRecipeID()
	recipe.Favorite = false

	session, chatErr := c.gateway.StartChat(ctx, recipe)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.latest(slotGeneration, seq) {
		return
	}
	c.recipes.Add(ctx, recipe)
	c.current = &recipe
	c.flow = FlowReady
	c.loading = false
	c.loadingMessage = ""

	if chatErr != nil {
		c.log.Warn("failed to start chef chat", zap.String("recipe_id", recipe.ID), zap.Error(chatErr))
		return
	}
	c.chat = session
	c.chatHistory = []model.ChatMessage{{Role: model.ChatRoleChef, Content: greeting(recipe.Title)}}
	c.notice = MsgChatReady
}

func greeting(title string) string {
	return fmt.Sprintf("¡Hola! Soy tu asistente de chef. ¿Tienes alguna pregunta sobre tu receta de \"%s\"?", title)
}

// SplitIngredients splits comma separated text into trimmed, non-empty names.
func SplitIngredients(text string) []string {
	parts := strings.Split(text, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// --- global search ---

// Search queries the AI for well known recipes and looks up a video for each
// result concurrently. Results get temporary global ids.
func (c *Controller) Search(ctx context.Context, query string) {
	c.mu.Lock()
	if strings.TrimSpace(query) == "" {
		c.globalErr = MsgEmptySearch
		c.mu.Unlock()
		return
	}
	seq := c.begin(slotSearch)
	c.globalLoading = true
	c.globalErr = ""
	c.global = nil
	c.mu.Unlock()

	results, err := c.gateway.SearchRecipes(ctx, query)
	if err == nil {
		g, gctx := errgroup.WithContext(ctx)
		for i := range results {
			g.Go(func() error {
				results[i].VideoURL = c.gateway.FindVideo(gctx, results[i].Title)
				return nil
			})
		}
		_ = g.Wait()
		for i := range results {
			results[i].ID = newGlobalID()
			results[i].Favorite = false
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.latest(slotSearch, seq) {
		return
	}
	c.globalLoading = false
	if err != nil {
		c.log.Warn("global recipe search failed", zap.String("query", query), zap.Error(err))
		c.globalErr = MsgSearchFailed
		return
	}
	c.global = results
}

// ToggleGlobalFavorite favorites or unfavorites a search result by title.
func (c *Controller) ToggleGlobalFavorite(ctx context.Context, globalID string) (model.Recipe, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range c.global {
		if r.ID == globalID {
			stored := c.recipes.ToggleFavoriteByTitle(ctx, r)
			c.syncCurrent(stored)
			return stored, nil
		}
	}
	return model.Recipe{}, fmt.Errorf("search result %s: %w", globalID, ErrNotFound)
}

// GlobalRecipe returns the current search result with globalID.
func (c *Controller) GlobalRecipe(globalID string) (model.Recipe, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range c.global {
		if r.ID == globalID {
			return r.Clone(), true
		}
	}
	return model.Recipe{}, false
}

// GlobalResult is a search result with its favorite flag resolved against
// the saved recipes.
type GlobalResult struct {
	model.Recipe
	Favorited bool `json:"favorited"`
}

func (c *Controller) globalResults() []GlobalResult {
	out := make([]GlobalResult, len(c.global))
	for i, r := range c.global {
		out[i] = GlobalResult{Recipe: r.Clone(), Favorited: c.recipes.IsFavoritedByTitle(r)}
	}
	return out
}

// --- chat ---

func (c *Controller) OpenChat() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.chat == nil {
		return ErrChatUnavailable
	}
	c.chatOpen = true
	return nil
}

func (c *Controller) CloseChat() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.chatOpen = false
}

// SendChat appends the user message, waits for the chef and appends the
// reply. A failed reply is recorded as an apology from the chef.
func (c *Controller) SendChat(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyMessage
	}

	c.mu.Lock()
	if c.chat == nil {
		c.mu.Unlock()
		return ErrChatUnavailable
	}
	if c.chatLoading {
		c.mu.Unlock()
		return ErrChatBusy
	}
	session := c.chat
	seq := c.begin(slotChat)
	c.chatHistory = append(c.chatHistory, model.ChatMessage{Role: model.ChatRoleUser, Content: text})
	c.chatLoading = true
	c.mu.Unlock()

	reply, err := session.Send(ctx, text)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.latest(slotChat, seq) {
		return nil
	}
	if err != nil {
		c.log.Warn("chef chat failed", zap.Error(err))
		reply = MsgChatFailed
	}
	c.chatHistory = append(c.chatHistory, model.ChatMessage{Role: model.ChatRoleChef, Content: reply})
	c.chatLoading = false
	return nil
}

// --- saved recipes ---

// DeleteRecipe removes a saved recipe and clears it from display when shown.
func (c *Controller) DeleteRecipe(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.recipes.Delete(ctx, id) {
		return fmt.Errorf("recipe %s: %w", id, ErrNotFound)
	}
	if c.current != nil && c.current.ID == id {
		c.current = nil
	}
	return nil
}

// ToggleFavorite flips a saved recipe's favorite flag, keeping the displayed
// copy consistent.
func (c *Controller) ToggleFavorite(ctx context.Context, id string) (model.Recipe, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.recipes.ToggleFavorite(ctx, id)
	if !ok {
		return model.Recipe{}, fmt.Errorf("recipe %s: %w", id, ErrNotFound)
	}
	c.syncCurrent(r)
	return r, nil
}

// syncCurrent refreshes the displayed recipe's favorite flag. Callers hold mu.
func (c *Controller) syncCurrent(stored model.Recipe) {
	if c.current != nil && c.current.ID == stored.ID {
		c.current.Favorite = stored.Favorite
	}
}

// Gallery returns the saved recipes narrowed and ordered by q.
func (c *Controller) Gallery(q GalleryQuery) []model.Recipe {
	return FilterGallery(c.recipes.List(), q)
}

// --- shopping list ---

// AddToShoppingList adds ingredient names and sets the matching notice.
func (c *Controller) AddToShoppingList(ctx context.Context, names []string) int {
	added := c.shopping.AddMany(ctx, names)
	c.mu.Lock()
	c.notice = AddedMessage(added)
	c.mu.Unlock()
	return added
}

// --- snapshot ---

// ChatState is the chat part of State.
type ChatState struct {
	Available bool                `json:"available"`
	Open      bool                `json:"open"`
	Loading   bool                `json:"loading"`
	History   []model.ChatMessage `json:"history"`
}

// GlobalState is the global search part of State.
type GlobalState struct {
	Results []GlobalResult `json:"results"`
	Loading bool           `json:"loading"`
	Error   string         `json:"error,omitempty"`
}

// State is everything the browser needs to render the current screen.
type State struct {
	View           View          `json:"view"`
	Flow           FlowState     `json:"flow"`
	Ingredients    string        `json:"ingredients"`
	CurrentRecipe  *model.Recipe `json:"current_recipe"`
	Loading        bool          `json:"loading"`
	LoadingMessage string        `json:"loading_message,omitempty"`
	Error          string        `json:"error,omitempty"`
	Notice         string        `json:"notice,omitempty"`
	Global         GlobalState   `json:"global"`
	Chat           ChatState     `json:"chat"`
	RecipeCount    int           `json:"recipe_count"`
	ShoppingCount  int           `json:"shopping_count"`
}

// Snapshot returns a consistent copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	var current *model.Recipe
	if c.current != nil {
		r := c.current.Clone()
		current = &r
	}

	return State{
		View:           c.view,
		Flow:           c.flow,
		Ingredients:    c.ingredients,
		CurrentRecipe:  current,
		Loading:        c.loading,
		LoadingMessage: c.loadingMessage,
		Error:          c.errMsg,
		Notice:         c.notice,
		Global: GlobalState{
			Results: c.globalResults(),
			Loading: c.globalLoading,
			Error:   c.globalErr,
		},
		Chat: ChatState{
			Available: c.chat != nil,
			Open:      c.chatOpen && c.chat != nil,
			Loading:   c.chatLoading,
			History:   append([]model.ChatMessage{}, c.chatHistory...),
		},
		RecipeCount:   c.recipes.Len(),
		ShoppingCount: len(c.shopping.Items()),
	}
}
