// Package main is the entry point for dodstats, which analyzes Day of
// Defeat demo files and reports per-round, per-player, and per-weapon
// statistics.
package main

import "github.com/doddemo/analyzer/cmd"

func main() {
	cmd.Execute()
}
