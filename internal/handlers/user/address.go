package user

import (
	"log"
	"net/http"

	"jungleetoys_back_end/internal/database"
	"jungleetoys_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// CreateAddress saves a delivery address for the authenticated user.
func CreateAddress(c *gin.Context) {
	userID := c.GetString("user_id")

	var req struct {
		Name       string `json:"name" binding:"required"`
		Street1    string `json:"street1" binding:"required"`
		Street2    string `json:"street2"`
		City       string `json:"city" binding:"required"`
		State      string `json:"state"`
		PostalCode string `json:"postal_code" binding:"required"`
		Country    string `json:"country" binding:"required"`
		Phone      string `json:"phone"`
		IsDefault  bool   `json:"is_default"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	address := models.Address{
		ID:         gocql.TimeUUID(),
		UserID:     userID,
		Name:       req.Name,
		Street1:    req.Street1,
		Street2:    req.Street2,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Country:    req.Country,
		Phone:      req.Phone,
		IsDefault:  req.IsDefault,
	}

	if err := session.Query(`
		INSERT INTO addresses (address_id, user_id, name, street1, street2, city, state, postal_code, country, phone, is_default)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		address.ID, address.UserID, address.Name, address.Street1, address.Street2,
		address.City, address.State, address.PostalCode, address.Country,
		address.Phone, address.IsDefault).Exec(); err != nil {
		log.Printf("❌ Address creation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Address creation failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"address": address})
}

// GetAddresses lists the authenticated user's saved addresses.
func GetAddresses(c *gin.Context) {
	userID := c.GetString("user_id")

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	iter := session.Query(`
		SELECT address_id, name, street1, street2, city, state, postal_code, country, phone, is_default
		FROM addresses WHERE user_id = ? ALLOW FILTERING`, userID).Iter()

	addresses := []models.Address{}
	var a models.Address
	for iter.Scan(&a.ID, &a.Name, &a.Street1, &a.Street2, &a.City, &a.State, &a.PostalCode, &a.Country, &a.Phone, &a.IsDefault) {
		a.UserID = userID
		addresses = append(addresses, a)
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Address lookup failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"addresses": addresses})
}

// DeleteAddress removes one of the user's addresses.
func DeleteAddress(c *gin.Context) {
	userID := c.GetString("user_id")

	addressID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address id"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	var owner string
	if err := session.Query("SELECT user_id FROM addresses WHERE address_id = ?", addressID).Scan(&owner); err != nil || owner != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		return
	}

	if err := session.Query("DELETE FROM addresses WHERE address_id = ?", addressID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Address deletion failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Address deleted"})
}
