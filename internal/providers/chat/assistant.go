package chat

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Turn is one prior exchange in the conversation.
type Turn struct {
	Role    string `json:"role"` // user | assistant
	Content string `json:"content"`
}

// Request carries one user message plus bounded trailing history and the
// system context assembled by the caller.
type Request struct {
	System  string
	History []Turn
	Message string
}

// Assistant produces a single text reply. Implementations must always return
// a string on success; structured upstream payloads are serialized, never
// surfaced raw.
type Assistant interface {
	Reply(ctx context.Context, req Request) (string, error)
}

const staticProviderName = "static"

// StaticAssistant answers without calling any external model. It is the
// fallback when no provider is configured, so local and CI environments stay
// functional.
type StaticAssistant struct{}

func NewStaticAssistant() *StaticAssistant {
	return &StaticAssistant{}
}

func (s *StaticAssistant) Reply(_ context.Context, req Request) (string, error) {
	c := cases.Title(language.Spanish)
	topic := strings.TrimSpace(req.Message)
	if topic == "" {
		topic = "sismos recientes"
	}
	return fmt.Sprintf(
		"Soy el asistente de SismoTracker. No tengo un modelo de lenguaje configurado, "+
			"pero puedo confirmar que recibí tu consulta sobre %q. "+
			"Revisa la sección %s para ver los datos más recientes.",
		topic, c.String("sismos"),
	), nil
}

var _ Assistant = (*StaticAssistant)(nil)
