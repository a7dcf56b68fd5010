package finance

// CurrencySymbol is the display currency for the UI. Amounts are stored
// without a currency; conversion is out of scope.
const CurrencySymbol = "₺"

// ExpenseCategories is the suggestion list offered by the entry form for
// expenses. Categories are free-form labels; the store does not validate
// against this list.
var ExpenseCategories = []string{
	"Gıda", "Ulaşım", "Kira", "Faturalar", "Eğlence", "Alışveriş", "Sağlık", "Eğitim", "Diğer",
}

// IncomeCategories is the suggestion list for incomes.
var IncomeCategories = []string{
	"Maaş", "Freelance", "Yatırım", "Hediye", "Satış", "Diğer",
}

// CategoriesFor returns the suggestion list for the given kind.
func CategoriesFor(kind Kind) []string {
	if kind == KindIncome {
		return IncomeCategories
	}
	return ExpenseCategories
}

// MarketSuggestions are the canned market-query prompts shown as chips
// in the market panel.
var MarketSuggestions = []string{
	"Türkiye enflasyon oranı son durum nedir?",
	"En yüksek mevduat faizi veren bankalar hangileri?",
	"Altın fiyatları beklentisi nedir?",
	"Teknoloji hisseleri performansı nasıl?",
}

// SeedTransactions is the compiled-in starting data set. There is no
// durable storage; this list is the only "persisted" state.
func SeedTransactions() []Transaction {
	return []Transaction{
		{ID: "1", Kind: KindIncome, Category: "Maaş", Amount: 45000, Date: NewDate(2024, 5, 1), Description: "Mayıs ayı maaşı"},
		{ID: "2", Kind: KindExpense, Category: "Kira", Amount: 15000, Date: NewDate(2024, 5, 2), Description: "Ev kirası"},
		{ID: "3", Kind: KindExpense, Category: "Gıda", Amount: 2500, Date: NewDate(2024, 5, 3), Description: "Market alışverişi"},
		{ID: "4", Kind: KindExpense, Category: "Faturalar", Amount: 1200, Date: NewDate(2024, 5, 5), Description: "Elektrik & Su"},
		{ID: "5", Kind: KindIncome, Category: "Yatırım", Amount: 3000, Date: NewDate(2024, 5, 10), Description: "Hisse senedi kar payı"},
	}
}
