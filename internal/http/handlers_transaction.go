package http

import (
	"errors"
	"log/slog"
	"net/http"

	"tally/internal/core"
	"tally/internal/store"
)

func (s *Server) handleSubmitTransaction(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	date, err := ParseDateValue(r.Form, "date")
	if err != nil {
		BadRequestError("Invalid date").Write(w)
		return
	}

	in := core.TransactionInput{
		ID:     FormValue(r.Form, "id"),
		Type:   FormValue(r.Form, "type"),
		Name:   FormValue(r.Form, "name"),
		Amount: FormValue(r.Form, "amount"),
		Date:   date,
	}
	editing := in.ID != ""

	tx, err := s.controller.SubmitTransaction(r.Context(), in)
	if err != nil {
		var fe core.FieldErrors
		if errors.As(err, &fe) {
			FieldErrorsResponse(fe).Write(w)
			return
		}
		if errors.Is(err, store.ErrNotFound) {
			ErrorResponse(http.StatusNotFound, "Transaction no longer exists").Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "Submit transaction error", "error", err, "name", in.Name)
		InternalServerError("Failed to save transaction").Write(w)
		return
	}

	// The dialog may already be closed when the request comes from a plain
	// form post; that is fine.
	s.session.CloseDialog()

	title := "Transaction added"
	if editing {
		title = "Transaction updated"
	}
	NewHTMXResponse().
		TriggerTransactionsChanged().
		TriggerDialogClose().
		TriggerSuccessNotification(title, `Successfully `+verbFor(editing)+` "`+tx.Name+`".`).
		Write(w)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if resp := RequireDeleteOrPOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	id := FormValue(r.Form, "id")
	if id == "" {
		id = r.URL.Query().Get("id")
	}

	if err := s.controller.DeleteTransaction(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Delete transaction error", "error", err, "id", id)
		InternalServerError("Failed to delete transaction").Write(w)
		return
	}

	NewHTMXResponse().
		TriggerTransactionsChanged().
		TriggerSuccessNotification("Transaction deleted", "Successfully deleted.").
		Write(w)
}

func verbFor(editing bool) string {
	if editing {
		return "updated"
	}
	return "added"
}
