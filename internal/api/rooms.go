package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/accesshub/campus-back/internal/db"
	"github.com/accesshub/campus-back/internal/models"
	"github.com/accesshub/campus-back/internal/validation"
)

type StoreRoomRequest struct {
	Name     string `json:"name" binding:"required"`
	Building string `json:"building"`
	Floor    int    `json:"floor"`
}

type UpdateRoomRequest struct {
	Name     *string `json:"name"`
	Building *string `json:"building"`
	Floor    *int    `json:"floor"`
}

func IndexRooms(c *gin.Context) {
	var rooms []models.Room
	if err := db.DB.WithContext(c.Request.Context()).Order("id").Find(&rooms).Error; err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, rooms)
}

func StoreRoom(c *gin.Context) {
	var req StoreRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	var n int64
	if err := db.DB.WithContext(ctx).Model(&models.Room{}).Where("name = ?", req.Name).Count(&n).Error; err != nil {
		respondError(c, err)
		return
	}
	if n > 0 {
		respondError(c, &validation.DuplicateCombinationError{Field: "name"})
		return
	}

	room := models.Room{Name: req.Name, Building: req.Building, Floor: req.Floor}
	if err := db.DB.WithContext(ctx).Create(&room).Error; err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, room)
}

func ShowRoom(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var room models.Room
	if err := db.DB.WithContext(c.Request.Context()).First(&room, id).Error; err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, room)
}

func UpdateRoom(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	var room models.Room
	if err := db.DB.WithContext(ctx).First(&room, id).Error; err != nil {
		respondError(c, err)
		return
	}

	if req.Name != nil && *req.Name != room.Name {
		var n int64
		if err := db.DB.WithContext(ctx).Model(&models.Room{}).
			Where("name = ? AND id <> ?", *req.Name, id).Count(&n).Error; err != nil {
			respondError(c, err)
			return
		}
		if n > 0 {
			respondError(c, &validation.DuplicateCombinationError{Field: "name"})
			return
		}
		room.Name = *req.Name
	}
	if req.Building != nil {
		room.Building = *req.Building
	}
	if req.Floor != nil {
		room.Floor = *req.Floor
	}

	if err := db.DB.WithContext(ctx).Save(&room).Error; err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, room)
}

func DeleteRoom(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	res := db.DB.WithContext(c.Request.Context()).Delete(&models.Room{}, id)
	if res.Error != nil {
		respondError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		c.Status(http.StatusNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}
