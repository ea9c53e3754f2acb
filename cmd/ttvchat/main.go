package main

import (
	"log"

	"github.com/mwronski/ttvchat/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		log.Fatalln(err)
	}
}
