package main

import (
	"os"

	"github.com/akorchagin/career-matcher/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
