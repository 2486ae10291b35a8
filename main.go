package main

import (
	"os"

	"github.com/talentcompass/sourcer/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
