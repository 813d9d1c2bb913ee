package constants

const (
	// Transaction Modes
	ModeExpense = "expense"
	ModeIncome  = "income"

	// Date Layout
	DateFormat     = "2006-01-02"
	DateTimeFormat = "2006-01-02 15:04"
)

// DefaultCategories are offered by the interactive prompts. Any other label
// can still be typed in.
var DefaultCategories = map[string][]string{
	ModeIncome:  {"Salary", "Freelance", "Investment", "Gift"},
	ModeExpense: {"Food", "Rent", "Transport", "Bills", "Health", "Entertainment"},
}
