package main

import (
	"log"

	"github.com/tsmarsh/family-bingo/config"
)

func main() {
	db := config.SetupDatabase() // connects + migrates
	_ = db
	log.Println("Database migration completed successfully")
}
