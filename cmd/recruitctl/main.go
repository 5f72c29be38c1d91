package main

import (
	"os"

	"github.com/ogurasousui/recruit-dashboard/cmd/recruitctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
