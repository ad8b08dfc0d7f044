package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pocketledger/pocketledger/internal/service"
)

// ListTools handles GET /api/assistant/tools
func (h *Handler) ListTools(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string][]string{"tools": h.assistant.Tools()})
}

// ExecuteTool handles POST /api/assistant/tools/{name}. The body is the
// tool's raw JSON argument object; the response is the tool result. This is
// the endpoint the chat/voice collaborator calls once per tool invocation.
func (h *Handler) ExecuteTool(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	args, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "reading request body", http.StatusBadRequest)
		return
	}

	result, err := h.assistant.Execute(r.Context(), name, json.RawMessage(args))
	if err != nil {
		if errors.Is(err, service.ErrUnknownTool) || errors.Is(err, service.ErrBadToolArgs) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
