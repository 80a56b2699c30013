package main

import (
	"net/http"
	"strings"

	"github.com/AdamBeresnev/pbvsi-sulut/internal/assistant"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/httputil"
	"github.com/AdamBeresnev/pbvsi-sulut/views"
)

const maxChatMessage = 500

// chat sends the visitor's message with their session history and answers
// with the refreshed message list.
func (a *app) chat(w http.ResponseWriter, r *http.Request) {
	message := strings.TrimSpace(r.PostFormValue("message"))
	if message == "" {
		httputil.BadRequest(w, "Pesan tidak boleh kosong.", nil)
		return
	}
	if runes := []rune(message); len(runes) > maxChatMessage {
		message = string(runes[:maxChatMessage])
	}

	history := assistant.DecodeHistory(a.sessions.GetBytes(r.Context(), chatHistoryKey))
	reply := a.assistant.Reply(r.Context(), history, message)
	history = assistant.Append(history,
		assistant.NewMessage(assistant.SenderUser, message),
		assistant.NewMessage(assistant.SenderModel, reply),
	)

	raw, err := assistant.EncodeHistory(history)
	if err != nil {
		httputil.InternalServerError(w, "Failed to encode chat history", err)
		return
	}
	a.sessions.Put(r.Context(), chatHistoryKey, raw)

	panel := views.ChatPanel{Greeting: assistant.Greeting, Messages: history}
	a.render(w, r, views.ChatMessages(panel))
}
