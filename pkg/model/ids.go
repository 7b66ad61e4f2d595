package model

import "fmt"

// FormatUserIndex renders the n-th user index, e.g. 1 -> "0001"
func FormatUserIndex(n int) string {
	return fmt.Sprintf("%04d", n)
}

// FormatLecturerID renders the n-th lecturer ID, e.g. 1 -> "L0001"
func FormatLecturerID(n int) string {
	return fmt.Sprintf("L%04d", n)
}
