package constants

const (
	MaxNameLen = 100
)

const (
	// UncategorizedLabel groups transactions recorded without a category.
	UncategorizedLabel = "Uncategorized"
	// OpeningBalanceCategory marks the transaction created from a balance-only file.
	OpeningBalanceCategory = "Opening Balance"
)

var ReservedNames = map[string]bool{
	"all":   true,
	"admin": true,
}
