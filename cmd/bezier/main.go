// Package main is the bezier command.
package main

import "github.com/bnema/bezier/internal/cli/cmd"

func main() {
	cmd.Execute()
}
