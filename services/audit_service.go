package services

import (
	"log"

	"github.com/bandkasse/bandkasse/database"
	"github.com/bandkasse/bandkasse/models"
	"github.com/google/uuid"
)

// RecordLog appends an audit entry. Failures are logged and swallowed so
// auditing never blocks the action itself.
func RecordLog(actorID uuid.UUID, action, entity string, entityID uuid.UUID, detail string) {
	entry := models.LogEntry{
		ActorID:  &actorID,
		Action:   action,
		Entity:   entity,
		EntityID: &entityID,
		Detail:   detail,
	}
	if err := database.DB.Create(&entry).Error; err != nil {
		log.Printf("🔥 Failed to write audit log (%s %s): %v", action, entity, err)
	}
}
