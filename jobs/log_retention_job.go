package jobs

import (
	"log"
	"time"

	"github.com/bandkasse/bandkasse/database"
	"github.com/bandkasse/bandkasse/models"
)

const logRetentionDays = 180

// PruneOldLogs deletes audit entries older than the retention window.
func PruneOldLogs() {
	cutoff := time.Now().AddDate(0, 0, -logRetentionDays)

	result := database.DB.Where("created_at < ?", cutoff).Delete(&models.LogEntry{})
	if result.Error != nil {
		log.Printf("Error pruning audit logs: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Pruned %d audit log entries older than %d days", result.RowsAffected, logRetentionDays)
	}
}
