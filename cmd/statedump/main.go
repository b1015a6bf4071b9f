package main

import (
	"os"

	"github.com/ndewijer/Sun-Circumference-Backend/cmd/statedump/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
