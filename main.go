// =============================================================================
// Order Code Filter - Main Entry Point
// =============================================================================
//
// USAGE:
//   orderfilter codes <file>          - Show a codes file
//   orderfilter orders <file>         - Show the order columns of an orders file
//   orderfilter filter <orders-file>  - Filter orders by product line codes
//   orderfilter version               - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Loading, filtering, formatting and session state
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/order-code-filter/cmd"
)

func main() {
	cmd.Execute()
}
