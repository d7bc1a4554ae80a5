package main

import (
	"os"

	"github.com/abhisek/expertmaker/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
