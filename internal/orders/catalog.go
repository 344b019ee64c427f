package orders

// =============================================================================
// COLUMN CATALOG
// =============================================================================

// FilterColumn is the column matched against the selected codes. The match on
// the column name is exact.
const FilterColumn = "Product Line Code"

// catalog is the fixed list of recognized order columns, in display order.
var catalog = []string{
	"HPE Order #",
	"Purchase Order No",
	"Opportunity ID",
	"HPE Quote Number",
	"Customer Name (Sold To Name)",
	"Order Entry Date",
	"Product Number",
	"Product Description",
	FilterColumn,
	"Ordered Quantity",
	"OptionDescription",
	"Invoice Value (no tax)",
	"Local currency Item Price (no tax) USD",
	"Order Value (no tax) USD",
}

// currencyColumns are the catalog columns that hold amounts.
var currencyColumns = []string{
	"Invoice Value (no tax)",
	"Local currency Item Price (no tax) USD",
	"Order Value (no tax) USD",
}

var currencySet = func() map[string]bool {
	set := make(map[string]bool, len(currencyColumns))
	for _, c := range currencyColumns {
		set[c] = true
	}
	return set
}()

// Catalog returns a copy of the recognized order columns in display order.
func Catalog() []string {
	return append([]string(nil), catalog...)
}

// CurrencyColumns returns a copy of the currency column names.
func CurrencyColumns() []string {
	return append([]string(nil), currencyColumns...)
}

// IsCurrency reports whether column holds currency amounts. The match is
// exact.
func IsCurrency(column string) bool {
	return currencySet[column]
}
