package main

import (
	"log"

	"github.com/smallbiznis/procura/internal/config"
	"github.com/smallbiznis/procura/pkg/db"
)

func main() {
	cfg := config.Load()

	if err := db.Migrate(db.NewConfig(cfg)); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.Println("master data schema up to date")
}
