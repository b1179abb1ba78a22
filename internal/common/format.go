package common

import (
	"fmt"
	"strings"
)

// DefaultWidth is the width of report banners
const DefaultWidth = 80

// PrintSeparator prints a line of char repeated width times
func PrintSeparator(char string, width int) {
	fmt.Println(strings.Repeat(char, width))
}

// PrintHeader prints a report title between two separators
func PrintHeader(title string, width int) {
	fmt.Println()
	PrintSeparator("=", width)
	fmt.Println(title)
	PrintSeparator("=", width)
}

// PrintFooter prints the closing summary line of a report
func PrintFooter(message string, width int) {
	fmt.Println()
	PrintSeparator("=", width)
	fmt.Println(message)
	PrintSeparator("=", width)
	fmt.Println()
}

// BoxPrefix returns the tree prefix for a report line
func BoxPrefix(isLast bool) string {
	if isLast {
		return "└─"
	}
	return "├─"
}
