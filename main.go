package main

import (
	"github.com/bioforensics/claspy/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
