package session

import (
	"errors"

	"github.com/ginjaninja78/order-code-filter/internal/codes"
	"github.com/ginjaninja78/order-code-filter/internal/loader"
	"github.com/ginjaninja78/order-code-filter/internal/orders"
)

// Severity ranks a user message the way a dialog would present it.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Message returns the text and severity a user interface shows for err.
// Errors outside the known taxonomy are shown as errors with their own text.
func Message(err error) (string, Severity) {
	var loadErr *loader.LoadError
	switch {
	case err == nil:
		return "", SeverityInfo
	case errors.As(err, &loadErr):
		return "Could not read file: " + loadErr.Err.Error(), SeverityError
	case errors.Is(err, orders.ErrNoRequiredColumns):
		return "No required Order columns found.", SeverityWarning
	case errors.Is(err, orders.ErrEmptySelection):
		return "Please select items in the Side Frame first.", SeverityInfo
	case errors.Is(err, orders.ErrMissingFilterColumn):
		return "Required column 'Product Line Code' not found.", SeverityError
	case errors.Is(err, orders.ErrNoDataLoaded):
		return "No orders file has been loaded.", SeverityError
	case errors.Is(err, codes.ErrNoCodeColumn):
		return "No 'code' column found.", SeverityError
	case errors.Is(err, codes.ErrRowOutOfRange):
		return "The selection no longer matches the displayed rows.", SeverityError
	case errors.Is(err, ErrCodesNotLoaded):
		return "Open a codes file before loading codes.", SeverityInfo
	default:
		return err.Error(), SeverityError
	}
}
