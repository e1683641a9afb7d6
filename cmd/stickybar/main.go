package main

import (
	"log"

	"github.com/MrSnakeDoc/stickybar/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("stickybar failed: %v", err)
	}
}
