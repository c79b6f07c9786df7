package handlers

import (
	"net/http"

	"sismo/internal/providers/chat"
)

type chatTurn struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

type chatRequest struct {
	Message string     `json:"message" validate:"required"`
	History []chatTurn `json:"conversation_history" validate:"dive"`
}

func (a *App) ChatReply(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := a.decodeValid(r, &req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	history := make([]chat.Turn, 0, len(req.History))
	for _, t := range req.History {
		history = append(history, chat.Turn{Role: t.Role, Content: t.Content})
	}

	reply, err := a.Chat.Reply(r.Context(), req.Message, history)
	if err != nil {
		a.serviceError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]string{"response": reply})
}
