package main

import (
	"os"

	"github.com/wonny/insight/cmd/crm/commands"
)

// main is the entry point for the CRM analytics CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
