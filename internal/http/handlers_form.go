package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"tally/internal/core"
	"tally/internal/dashboard"
	"tally/internal/store"
)

type transactionFormView struct {
	ID      string
	Type    string
	Name    string
	Amount  string
	Date    string
	Editing bool
}

type appointmentFormView struct {
	ID      string
	Title   string
	Date    string
	Editing bool
}

// handleTransactionForm opens the add/edit dialog and renders the form
// partial. Without ?id= the form is blank; with ?id= it is prefilled from the
// stored record. A second open while a dialog is up is a conflict.
func (s *Server) handleTransactionForm(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodGet); resp != nil {
		resp.Write(w)
		return
	}

	id := r.URL.Query().Get("id")
	view := transactionFormView{
		Type: core.Revenue.String(),
		Date: core.Today().Format("2006-01-02"),
	}

	if id == "" {
		if err := s.session.OpenAddDialog(); err != nil {
			dialogConflict(w)
			return
		}
	} else {
		tx, err := s.controller.Transaction(r.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			ErrorResponse(http.StatusNotFound, "Transaction no longer exists").Write(w)
			return
		}
		if err != nil {
			slog.ErrorContext(r.Context(), "Transaction lookup error", "error", err, "id", id)
			InternalServerError("Failed to load transaction").Write(w)
			return
		}
		if err := s.session.OpenEditDialog(id); err != nil {
			dialogConflict(w)
			return
		}
		view = transactionFormView{
			ID:      tx.ID,
			Type:    tx.Type.String(),
			Name:    tx.Name,
			Amount:  fmt.Sprintf("%d.%02d", tx.Amount.Cents/100, tx.Amount.Cents%100),
			Date:    tx.Date.Format("2006-01-02"),
			Editing: true,
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "transaction_form.html", view); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "transaction_form.html")
	}
}

// handleAppointmentForm mirrors handleTransactionForm for appointments.
func (s *Server) handleAppointmentForm(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodGet); resp != nil {
		resp.Write(w)
		return
	}

	id := r.URL.Query().Get("id")
	view := appointmentFormView{
		Date: core.Today().Format("2006-01-02"),
	}

	if id == "" {
		if err := s.session.OpenAddDialog(); err != nil {
			dialogConflict(w)
			return
		}
	} else {
		app, err := s.controller.Appointment(r.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			ErrorResponse(http.StatusNotFound, "Appointment no longer exists").Write(w)
			return
		}
		if err != nil {
			slog.ErrorContext(r.Context(), "Appointment lookup error", "error", err, "id", id)
			InternalServerError("Failed to load appointment").Write(w)
			return
		}
		if err := s.session.OpenEditDialog(id); err != nil {
			dialogConflict(w)
			return
		}
		view = appointmentFormView{
			ID:      app.ID,
			Title:   app.Title,
			Date:    app.Date.Format("2006-01-02"),
			Editing: true,
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "appointment_form.html", view); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "appointment_form.html")
	}
}

// handleDialogCancel is the Cancel exit of the dialog. Cancelling a closed
// dialog is a conflict so a stale cancel cannot mask a lost open.
func (s *Server) handleDialogCancel(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}

	if errors.Is(s.session.CloseDialog(), dashboard.ErrDialogClosed) {
		ErrorResponse(http.StatusConflict, "No dialog is open.").Write(w)
		return
	}

	NewHTMXResponse().
		TriggerDialogClose().
		Write(w)
}

func dialogConflict(w http.ResponseWriter) {
	ErrorResponse(http.StatusConflict, "A dialog is already open.").Write(w)
}
