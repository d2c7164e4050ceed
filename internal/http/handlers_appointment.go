package http

import (
	"errors"
	"log/slog"
	"net/http"

	"tally/internal/core"
	"tally/internal/store"
)

func (s *Server) handleSubmitAppointment(w http.ResponseWriter, r *http.Request) {
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

	in := core.AppointmentInput{
		ID:    FormValue(r.Form, "id"),
		Title: FormValue(r.Form, "title"),
		Date:  date,
	}
	editing := in.ID != ""

	app, err := s.controller.SubmitAppointment(r.Context(), in)
	if err != nil {
		var fe core.FieldErrors
		if errors.As(err, &fe) {
			FieldErrorsResponse(fe).Write(w)
			return
		}
		if errors.Is(err, store.ErrNotFound) {
			ErrorResponse(http.StatusNotFound, "Appointment no longer exists").Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "Submit appointment error", "error", err, "title", in.Title)
		InternalServerError("Failed to save appointment").Write(w)
		return
	}

	s.session.CloseDialog()

	title := "Appointment added"
	if editing {
		title = "Appointment updated"
	}
	NewHTMXResponse().
		TriggerAppointmentsChanged().
		TriggerDialogClose().
		TriggerSuccessNotification(title, `Successfully `+verbFor(editing)+` "`+app.Title+`".`).
		Write(w)
}

func (s *Server) handleDeleteAppointment(w http.ResponseWriter, r *http.Request) {
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

	if err := s.controller.DeleteAppointment(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Delete appointment error", "error", err, "id", id)
		InternalServerError("Failed to delete appointment").Write(w)
		return
	}

	NewHTMXResponse().
		TriggerAppointmentsChanged().
		TriggerSuccessNotification("Appointment deleted", "Successfully deleted.").
		Write(w)
}

// handleCalendarSelect moves the session's day list to the clicked date and
// renders the list for that day.
func (s *Server) handleCalendarSelect(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	day, err := ParseDateValue(r.Form, "date")
	if err != nil || day.IsZero() {
		BadRequestError("Invalid date").Write(w)
		return
	}

	s.session.SelectDay(day)

	apps, err := s.controller.AppointmentsOn(r.Context(), day)
	if err != nil {
		slog.ErrorContext(r.Context(), "Appointment list error", "error", err, "date", day.Format("2006-01-02"))
		InternalServerError("Failed to load appointments").Write(w)
		return
	}

	data := struct {
		Date string
		Rows []appointmentRow
	}{Date: day.Format("2006-01-02"), Rows: appointmentRows(apps)}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "appointment_list.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "appointment_list.html")
	}
}
