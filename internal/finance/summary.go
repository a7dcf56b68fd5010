package finance

// DailyFlow is one entry of the trailing 7-day income/expense series.
type DailyFlow struct {
	Date    Date    `json:"date"`
	Label   string  `json:"label"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// Summary is the derived view recomputed from the transaction list on
// every change. It is never persisted; identical inputs yield identical
// summaries.
type Summary struct {
	TotalIncome  float64            `json:"totalIncome"`
	TotalExpense float64            `json:"totalExpense"`
	Balance      float64            `json:"balance"`
	ByCategory   map[string]float64 `json:"byCategory"`
	Last7Days    []DailyFlow        `json:"last7Days"`
	SavingsRate  float64            `json:"savingsRate"`
}

// Turkish short weekday names, indexed by time.Weekday (Sunday first).
var weekdayLabels = [7]string{"Paz", "Pzt", "Sal", "Çar", "Per", "Cum", "Cmt"}

// Summarize derives totals, the expense category breakdown and the
// trailing 7-day series from the transaction list. today anchors the
// series: it covers today and the 6 preceding UTC calendar days, oldest
// first, zero-filled for days without matching records.
func Summarize(txs []Transaction, today Date) Summary {
	s := Summary{
		TotalIncome:  TotalIncome(txs),
		TotalExpense: TotalExpense(txs),
		Balance:      Balance(txs),
		ByCategory:   ExpensesByCategory(txs),
		Last7Days:    Last7Days(txs, today),
	}
	s.SavingsRate = savingsRate(s.TotalIncome, s.TotalExpense)
	return s
}

// Balance is the signed sum over all records.
func Balance(txs []Transaction) float64 {
	var balance float64
	for _, t := range txs {
		balance += t.Kind.Sign() * t.Amount
	}
	return balance
}

// TotalIncome sums the amounts of all income records.
func TotalIncome(txs []Transaction) float64 {
	return totalOf(txs, KindIncome)
}

// TotalExpense sums the amounts of all expense records.
func TotalExpense(txs []Transaction) float64 {
	return totalOf(txs, KindExpense)
}

func totalOf(txs []Transaction, kind Kind) float64 {
	var total float64
	for _, t := range txs {
		if t.Kind == kind {
			total += t.Amount
		}
	}
	return total
}

// ExpensesByCategory groups expense records by category label, summing
// amounts. Categories with no expense records are absent from the result.
func ExpensesByCategory(txs []Transaction) map[string]float64 {
	byCategory := make(map[string]float64)
	for _, t := range txs {
		if t.Kind == KindExpense {
			byCategory[t.Category] += t.Amount
		}
	}
	return byCategory
}

// Last7Days builds the series for the 7 calendar days ending at today,
// oldest first. Matching is exact calendar-day equality.
func Last7Days(txs []Transaction, today Date) []DailyFlow {
	series := make([]DailyFlow, 0, 7)
	for offset := -6; offset <= 0; offset++ {
		day := today.AddDays(offset)
		flow := DailyFlow{Date: day, Label: weekdayLabels[day.Weekday()]}
		for _, t := range txs {
			if !t.Date.Equal(day) {
				continue
			}
			switch t.Kind {
			case KindIncome:
				flow.Income += t.Amount
			case KindExpense:
				flow.Expense += t.Amount
			}
		}
		series = append(series, flow)
	}
	return series
}

// savingsRate is the fraction of income not spent, clamped to [0, 1].
// Zero income yields zero rather than dividing by zero.
func savingsRate(income, expense float64) float64 {
	if income <= 0 {
		return 0
	}
	rate := 1 - expense/income
	if rate < 0 {
		return 0
	}
	if rate > 1 {
		return 1
	}
	return rate
}
