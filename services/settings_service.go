package services

import (
	"log"
	"sync"

	"github.com/bandkasse/bandkasse/database"
	"github.com/bandkasse/bandkasse/models"
	"github.com/bandkasse/bandkasse/websocket"
	"gorm.io/gorm/clause"
)

var (
	settingsCache map[string]string
	settingsMutex sync.RWMutex
)

// ReloadSettings replaces the in-process settings cache from the database.
func ReloadSettings() error {
	var settings []models.Setting
	if err := database.DB.Find(&settings).Error; err != nil {
		return err
	}

	fresh := make(map[string]string, len(settings))
	for _, s := range settings {
		fresh[s.Key] = s.Value
	}

	settingsMutex.Lock()
	settingsCache = fresh
	settingsMutex.Unlock()
	return nil
}

// GetSetting reads one setting from the cache, loading it on first use.
func GetSetting(key string) string {
	settingsMutex.RLock()
	loaded := settingsCache != nil
	value := ""
	if loaded {
		value = settingsCache[key]
	}
	settingsMutex.RUnlock()

	if !loaded {
		if err := ReloadSettings(); err != nil {
			log.Printf("🔥 Failed to load settings: %v", err)
			return ""
		}
		settingsMutex.RLock()
		value = settingsCache[key]
		settingsMutex.RUnlock()
	}
	return value
}

// UpdateSetting upserts one setting, refreshes the cache, and notifies
// connected clients over the websocket hub.
func UpdateSetting(key, value string) error {
	setting := models.Setting{Key: key, Value: value}
	err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		return err
	}

	settingsMutex.Lock()
	if settingsCache == nil {
		settingsCache = make(map[string]string)
	}
	settingsCache[key] = value
	settingsMutex.Unlock()

	websocket.Broadcast <- websocket.SettingsEvent{Key: key, Value: value}
	return nil
}
