package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiAssistant_RequiresAPIKey(t *testing.T) {
	_, err := NewGeminiAssistant(GeminiOptions{})
	require.Error(t, err)
}

func TestGeminiAssistant_MapsHistoryRoles(t *testing.T) {
	var captured geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"hola"}]}}]}`))
	}))
	defer srv.Close()

	assistant, err := NewGeminiAssistant(GeminiOptions{APIKey: "key", BaseURL: srv.URL})
	require.NoError(t, err)

	reply, err := assistant.Reply(context.Background(), Request{
		System:  "contexto",
		History: []Turn{{Role: "user", Content: "primera"}, {Role: "assistant", Content: "respuesta"}},
		Message: "segunda",
	})
	require.NoError(t, err)
	assert.Equal(t, "hola", reply)

	require.NotNil(t, captured.SystemInstruction)
	require.Len(t, captured.Contents, 3)
	assert.Equal(t, "user", captured.Contents[0].Role)
	assert.Equal(t, "model", captured.Contents[1].Role)
	assert.Equal(t, "user", captured.Contents[2].Role)
}

func TestGeminiAssistant_SerializesNonTextCandidate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[]}}]}`))
	}))
	defer srv.Close()

	assistant, err := NewGeminiAssistant(GeminiOptions{APIKey: "key", BaseURL: srv.URL})
	require.NoError(t, err)

	reply, err := assistant.Reply(context.Background(), Request{Message: "hola"})
	require.NoError(t, err)
	// Always a string, even when the model returns no textual parts.
	assert.JSONEq(t, `{"role":"model","parts":[]}`, reply)
}

func TestGeminiAssistant_SurfacesUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	assistant, err := NewGeminiAssistant(GeminiOptions{APIKey: "key", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = assistant.Reply(context.Background(), Request{Message: "hola"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}

func TestOpenAIAssistant_StringContentPassesThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"todo bien"}}]}`))
	}))
	defer srv.Close()

	assistant, err := NewOpenAIAssistant(OpenAIOptions{APIKey: "key", BaseURL: srv.URL})
	require.NoError(t, err)

	reply, err := assistant.Reply(context.Background(), Request{Message: "estado?"})
	require.NoError(t, err)
	assert.Equal(t, "todo bien", reply)
}

func TestOpenAIAssistant_StructuredContentIsSerialized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":[{"type":"text","text":"hola"}]}}]}`))
	}))
	defer srv.Close()

	assistant, err := NewOpenAIAssistant(OpenAIOptions{APIKey: "key", BaseURL: srv.URL})
	require.NoError(t, err)

	reply, err := assistant.Reply(context.Background(), Request{Message: "hola"})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"type":"text","text":"hola"}]`, reply)
}

func TestStaticAssistant_AlwaysAnswers(t *testing.T) {
	reply, err := NewStaticAssistant().Reply(context.Background(), Request{Message: "¿hubo sismos hoy?"})
	require.NoError(t, err)
	assert.NotEmpty(t, reply)
}
