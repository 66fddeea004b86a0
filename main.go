package main

import (
	"os"

	"github.com/AnyUserName/img2fbm/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
