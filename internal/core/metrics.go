package core

// Metrics are the derived financial aggregates for the current transaction
// collection. Profit may be negative.
type Metrics struct {
	TotalRevenue  Money
	TotalExpenses Money
	Profit        Money
}

// Summarize computes metrics from a transaction collection. Pure function,
// recomputed on every read; results are never cached.
func Summarize(transactions []Transaction) Metrics {
	var revenue, expenses int64
	for _, t := range transactions {
		switch t.Type {
		case Revenue:
			revenue += t.Amount.Cents
		case Expense:
			expenses += t.Amount.Cents
		}
	}
	return Metrics{
		TotalRevenue:  Money{Cents: revenue},
		TotalExpenses: Money{Cents: expenses},
		Profit:        Money{Cents: revenue - expenses},
	}
}
