package main

import (
	"os"

	"github.com/nmehta/dermascan/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
