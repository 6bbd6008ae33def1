// receipt-scan parses German supermarket receipts into structured item
// records: store, date, priced items with quantities, and categories.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
