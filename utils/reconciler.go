package utils

import (
	"crowdfund/models"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// InitializeTransactionReconciler sets up the daily transaction sweep.
// Transactions that never got an escrow-provider transaction attached and
// sat untouched for a week are closed out as aborted.
func InitializeTransactionReconciler(db *gorm.DB) *cron.Cron {
	log.Println("[TXN-RECONCILER] Initializing transaction reconciler...")

	c := cron.New()

	// Run daily at 03:00
	c.AddFunc("0 3 * * *", func() {
		log.Println("[TXN-RECONCILER] Running daily stale-transaction sweep...")
		AbortStaleTransactions(db)
	})

	c.Start()
	log.Println("[TXN-RECONCILER] Transaction reconciler started - runs daily at 3 AM")
	return c
}

// AbortStaleTransactions marks week-old transactions without a provider id
// as aborted.
func AbortStaleTransactions(db *gorm.DB) {
	cutoff := time.Now().AddDate(0, 0, -7)

	result := db.Model(&models.Transaction{}).
		Where("provider_id = '' AND state = ? AND created_at < ?", models.TransactionStateCreated, cutoff).
		Update("state", models.TransactionStateAborted)
	if result.Error != nil {
		log.Printf("[TXN-RECONCILER] Error aborting stale transactions: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("[TXN-RECONCILER] Aborted %d stale transactions", result.RowsAffected)
	}
}
