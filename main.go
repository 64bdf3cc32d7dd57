package main

import (
	"os"

	"github.com/folio-admin/folio-admin/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
