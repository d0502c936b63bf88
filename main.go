package main

import (
	"os"

	"github.com/ik-mouad/iorecycling-sub000/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
