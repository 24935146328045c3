package main

import (
	"os"

	"github.com/abhisek/finfluency/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
