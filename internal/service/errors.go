package service

import "errors"

// Gateway failures. Implementations wrap the underlying cause with %w.
var (
	ErrRecognition = errors.New("failed to identify ingredients from image")
	ErrGeneration  = errors.New("failed to generate recipe")
	ErrSearch      = errors.New("failed to search for recipes")
	ErrChat        = errors.New("failed to get a reply from the chef")
	ErrExport      = errors.New("failed to export recipe")
)

// Controller and store errors surfaced to the HTTP layer.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidView       = errors.New("invalid view")
	ErrChatUnavailable   = errors.New("no chat session for the current recipe")
	ErrChatBusy          = errors.New("the chef is still answering")
	ErrEmptyMessage      = errors.New("message must not be empty")
	ErrNothingPending    = errors.New("no pending shopping list items")
	ErrUnknownRetailer   = errors.New("unknown retailer")
	ErrInvalidScopeToken = errors.New("invalid scope token")
)

// User-facing messages stored in the view state.
const (
	MsgEmptyIngredients  = "Por favor, introduce al menos un ingrediente."
	MsgRecognitionFailed = "No se pudieron reconocer los ingredientes. Por favor, inténtalo de nuevo."
	MsgGenerationFailed  = "Hubo un error al generar la receta. Por favor, inténtalo de nuevo."
	MsgEmptySearch       = "Por favor, introduce un término de búsqueda."
	MsgSearchFailed      = "Hubo un error al buscar recetas. Por favor, inténtalo de nuevo."
	MsgChatReady         = "¡Asistente de chef listo! Haz clic en el icono de chat."
	MsgChatFailed        = "Lo siento, No se pudo obtener una respuesta del chef."

	loadingRecognizing = "Reconociendo ingredientes..."
	loadingGenerating  = "Generando una receta deliciosa..."
	loadingVideo       = "Buscando un vídeo tutorial..."
)
