package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/md-rashed-zaman/companion/internal/model"
)

// docHandler serves the persistence-by-key documents (notes, ledger,
// journal): GET returns the whole list, PUT replaces it. The client owns
// item-level editing for these.
func (h *Handler) docHandler(name string, newDoc func() any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := UserIDFromContext(r.Context())

		switch r.Method {
		case http.MethodGet:
			doc := newDoc()
			if _, err := h.docs.Read(r.Context(), userID, name, doc); err != nil {
				http.Error(w, "failed to load "+name, http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(doc)

		case http.MethodPut:
			doc := newDoc()
			if err := json.NewDecoder(r.Body).Decode(doc); err != nil {
				http.Error(w, "invalid json body", http.StatusBadRequest)
				return
			}
			if err := h.docs.Write(r.Context(), userID, name, doc); err != nil {
				http.Error(w, "failed to save "+name, http.StatusInternalServerError)
				return
			}
			w.WriteHeader(http.StatusNoContent)

		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func (h *Handler) emptyNotes() any   { return &[]model.Note{} }
func (h *Handler) emptyLedger() any  { return &[]model.LedgerEntry{} }
func (h *Handler) emptyJournal() any { return &[]model.JournalEntry{} }
