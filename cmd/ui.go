package cmd

import "github.com/pterm/pterm"

// printSeparator prints a green separator line between menu rounds.
func printSeparator() {
	pterm.Println(pterm.Green("----------------------------------------"))
}
