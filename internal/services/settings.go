package services

import (
	"encoding/json"
	"log"

	"jungleetoys_back_end/internal/database"
	"jungleetoys_back_end/internal/models"
)

const settingsRow = "store"

// LoadSettings reads the store settings, falling back to defaults when the
// row is missing or unreadable.
func LoadSettings() models.StoreSettings {
	settings := models.DefaultSettings()

	session, err := database.GetOrdersSession()
	if err != nil {
		return settings
	}

	var payload string
	if err := session.Query(
		`SELECT payload FROM settings WHERE name = ?`, settingsRow,
	).Scan(&payload); err != nil {
		return settings
	}

	if err := json.Unmarshal([]byte(payload), &settings); err != nil {
		log.Println("⚠️ Settings row is corrupt, using defaults:", err)
		return models.DefaultSettings()
	}
	return settings
}

// SaveSettings persists the store settings as a single JSON row.
func SaveSettings(settings models.StoreSettings) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}

	payload, err := json.Marshal(settings)
	if err != nil {
		return err
	}

	return session.Query(
		`INSERT INTO settings (name, payload) VALUES (?, ?)`, settingsRow, string(payload),
	).Exec()
}
