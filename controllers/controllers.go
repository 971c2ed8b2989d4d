package controllers

import "github.com/tsmarsh/family-bingo/services"

var store *services.Store

// Use sets the store shared by all controllers.
func Use(s *services.Store) {
	store = s
}
