package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// NextNumber returns the document number following last for prefix.
// An empty or unparseable last number restarts the series at 1.
//
//	NextNumber("PO", "PO0006") == "PO0007"
//	NextNumber("INV", "")      == "INV0001"
func NextNumber(prefix, last string) string {
	n, err := strconv.Atoi(strings.TrimPrefix(last, prefix))
	if err != nil || n < 0 {
		n = 0
	}
	return fmt.Sprintf("%s%04d", prefix, n+1)
}
