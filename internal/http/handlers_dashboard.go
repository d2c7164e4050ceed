package http

import (
	"log/slog"
	"net/http"

	"tally/internal/core"
)

type metricsView struct {
	TotalRevenue  string
	TotalExpenses string
	Profit        string
	Loss          bool
}

type transactionRow struct {
	ID     string
	Type   string
	Name   string
	Amount string
	Date   string
}

type appointmentRow struct {
	ID    string
	Title string
	Date  string
}

func metricsViewFrom(m core.Metrics) metricsView {
	return metricsView{
		TotalRevenue:  core.FormatUSD(m.TotalRevenue.Cents),
		TotalExpenses: core.FormatUSD(m.TotalExpenses.Cents),
		Profit:        core.FormatUSD(m.Profit.Cents),
		Loss:          m.Profit.Cents < 0,
	}
}

func transactionRows(txs []core.Transaction) []transactionRow {
	rows := make([]transactionRow, len(txs))
	for i, t := range txs {
		rows[i] = transactionRow{
			ID:     t.ID,
			Type:   t.Type.String(),
			Name:   t.Name,
			Amount: core.FormatUSD(t.Amount.Cents),
			Date:   t.Date.Format("2006-01-02"),
		}
	}
	return rows
}

func appointmentRows(apps []core.Appointment) []appointmentRow {
	rows := make([]appointmentRow, len(apps))
	for i, a := range apps {
		rows[i] = appointmentRow{
			ID:    a.ID,
			Title: a.Title,
			Date:  a.Date.Format("2006-01-02"),
		}
	}
	return rows
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	snap, err := s.controller.Snapshot(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Snapshot error", "error", err)
		http.Error(w, "failed to load dashboard", http.StatusInternalServerError)
		return
	}

	// Tables and day list lazy-load as partials; the page only needs the
	// metric cards and today's date for the forms.
	data := struct {
		Metrics metricsView
		Today   string
	}{
		Metrics: metricsViewFrom(snap.Metrics),
		Today:   core.Today().Format("2006-01-02"),
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleMetrics renders the metric cards partial. Metrics come straight from
// Snapshot; nothing here is cached.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	snap, err := s.controller.Snapshot(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Snapshot error", "error", err)
		InternalServerError("Failed to load metrics").Write(w)
		return
	}

	if err := s.templates.ExecuteTemplate(w, "metrics.html", metricsViewFrom(snap.Metrics)); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "metrics.html")
	}
}

// handleTransactionList renders one side of the ledger (?type=revenue or
// ?type=expense).
func (s *Server) handleTransactionList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	typ := core.TransactionType(r.URL.Query().Get("type"))
	if !typ.IsValid() {
		BadRequestError("Unknown transaction type").Write(w)
		return
	}

	txs, err := s.controller.TransactionsByType(r.Context(), typ)
	if err != nil {
		slog.ErrorContext(r.Context(), "Transaction list error", "error", err, "type", typ.String())
		InternalServerError("Failed to load transactions").Write(w)
		return
	}

	data := struct {
		Type string
		Rows []transactionRow
	}{Type: typ.String(), Rows: transactionRows(txs)}

	if err := s.templates.ExecuteTemplate(w, "transaction_table.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "transaction_table.html")
	}
}

// handleAppointmentList renders the day list. With ?date= it shows that day;
// otherwise it follows the session's open day list, falling back to today.
func (s *Server) handleAppointmentList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	day := core.Today()
	if selected, open := s.session.DayList(); open {
		day = selected
	}
	if v := r.URL.Query().Get("date"); v != "" {
		parsed, err := ParseDateValue(r.URL.Query(), "date")
		if err != nil {
			BadRequestError("Invalid date").Write(w)
			return
		}
		day = parsed
	}

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

	if err := s.templates.ExecuteTemplate(w, "appointment_list.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "appointment_list.html")
	}
}
