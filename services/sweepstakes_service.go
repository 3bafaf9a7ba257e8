package services

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SweepstakesService struct {
	DB     *gorm.DB
	Points RandomPointsGenerator
}

func NewSweepstakesService(db *gorm.DB) *SweepstakesService {
	return &SweepstakesService{DB: db, Points: NewCryptoPointsGenerator()}
}

// lockForUpdate takes a SELECT ... FOR UPDATE row lock on Postgres so the
// check-then-act lookups (open sweep, open drawing) are safe under concurrent
// requests. SQLite (the test dialector) rejects FOR UPDATE and serializes
// writers on its own, so the clause is skipped there.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
