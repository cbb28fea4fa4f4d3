package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/accesshub/campus-back/internal/config"
	"github.com/accesshub/campus-back/internal/db"
	"github.com/accesshub/campus-back/internal/models"
	"github.com/accesshub/campus-back/internal/validation"
)

type StoreDeviceRequest struct {
	Name   string `json:"name" binding:"required"`
	RoomID uint   `json:"room_id" binding:"required"`
}

type UpdateDeviceRequest struct {
	Name   *string `json:"name"`
	RoomID *uint   `json:"room_id"`
}

func IndexDevices(c *gin.Context) {
	var devices []models.DeviceBoard
	if err := db.DB.WithContext(c.Request.Context()).Preload("Room").Order("id").Find(&devices).Error; err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, devices)
}

// StoreDevice registers a board and answers with its enrollment token.
// The token is shown exactly once; it is never serialized afterwards.
func StoreDevice(c *gin.Context) {
	var req StoreDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	var room models.Room
	if err := db.DB.WithContext(ctx).First(&room, req.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, &validation.ReferenceNotFoundError{Field: "room_id"})
			return
		}
		respondError(c, err)
		return
	}

	device := models.DeviceBoard{
		Name:   req.Name,
		RoomID: req.RoomID,
		Token:  uuid.NewString(),
	}
	if err := db.DB.WithContext(ctx).Create(&device).Error; err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, gin.H{"device": device, "token": device.Token})
}

func ShowDevice(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var device models.DeviceBoard
	if err := db.DB.WithContext(c.Request.Context()).Preload("Room").First(&device, id).Error; err != nil {
		respondError(c, err)
		return
	}
	online, err := db.DeviceOnline(c.Request.Context(), device.ID)
	if err != nil {
		online = false
	}
	respondData(c, http.StatusOK, gin.H{"device": device, "online": online})
}

func UpdateDevice(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdateDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	var device models.DeviceBoard
	if err := db.DB.WithContext(ctx).First(&device, id).Error; err != nil {
		respondError(c, err)
		return
	}

	if req.Name != nil {
		device.Name = *req.Name
	}
	if req.RoomID != nil {
		var room models.Room
		if err := db.DB.WithContext(ctx).First(&room, *req.RoomID).Error; err != nil {
			respondError(c, &validation.ReferenceNotFoundError{Field: "room_id"})
			return
		}
		device.RoomID = *req.RoomID
	}

	if err := db.DB.WithContext(ctx).Save(&device).Error; err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, device)
}

func DeleteDevice(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	res := db.DB.WithContext(c.Request.Context()).Delete(&models.DeviceBoard{}, id)
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

// Heartbeat godoc
// @Summary      Device board liveness report
// @Tags         device
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /device/heartbeat [post]
func Heartbeat(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		device := c.MustGet("device").(*models.DeviceBoard)
		ctx := c.Request.Context()
		now := time.Now()

		if err := db.TouchDeviceLastSeen(ctx, device.ID, now); err != nil {
			respondError(c, err)
			return
		}
		if err := db.TouchDevicePresence(ctx, device.ID, cfg.HeartbeatWindow); err != nil {
			// DB row already carries last_seen_at; presence is best effort.
			slog.Warn("presence update failed", "device_id", device.ID, "error", err)
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

type AccessEventRequest struct {
	CredentialType  string `json:"credential_type" binding:"required,oneof=RFID FINGERPRINT"`
	CredentialValue string `json:"credential_value" binding:"required"`
}

// AccessEvent resolves a presented credential and decides whether the
// door opens: admins always, everyone else only with a booking in the
// device's room covering the current moment. Every attempt is logged.
func AccessEvent(c *gin.Context) {
	device := c.MustGet("device").(*models.DeviceBoard)

	var req AccessEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	now := time.Now()
	entry := models.AccessLog{DeviceID: device.ID, RoomID: device.RoomID}

	cred, err := db.CredentialByValue(ctx, req.CredentialType, req.CredentialValue)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, err)
			return
		}
		entry.Reason = "unknown credential"
	} else {
		entry.UserID = &cred.UserID
		entry.CredentialID = &cred.ID

		if cred.User.Role == models.RoleAdmin {
			entry.Granted = true
			entry.Reason = "admin"
		} else {
			granted, err := db.UserHasRoomBooking(ctx, cred.UserID, device.RoomID,
				models.DaysOfWeek[int(now.Weekday())],
				now.Format(validation.TimeLayout),
				now.Format(validation.DateLayout))
			if err != nil {
				respondError(c, err)
				return
			}
			entry.Granted = granted
			if granted {
				entry.Reason = "scheduled"
			} else {
				entry.Reason = "no booking"
			}
		}
	}

	if err := db.DB.WithContext(ctx).Create(&entry).Error; err != nil {
		respondError(c, err)
		return
	}

	slog.Info("access event", "device_id", device.ID, "room_id", device.RoomID,
		"granted", entry.Granted, "reason", entry.Reason)
	c.JSON(http.StatusOK, gin.H{"granted": entry.Granted, "reason": entry.Reason})
}

// IndexAccessLogs lists the audit trail, newest first.
func IndexAccessLogs(c *gin.Context) {
	tx := db.DB.WithContext(c.Request.Context()).
		Preload("Device").Preload("Room").Preload("User")

	if roomID := c.Query("room_id"); roomID != "" {
		tx = tx.Where("room_id = ?", roomID)
	}
	if userID := c.Query("user_id"); userID != "" {
		tx = tx.Where("user_id = ?", userID)
	}
	if granted := c.Query("granted"); granted != "" {
		tx = tx.Where("granted = ?", granted == "true")
	}

	limit := 100
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 && l <= 1000 {
		limit = l
	}
	offset := 0
	if o, err := strconv.Atoi(c.Query("offset")); err == nil && o > 0 {
		offset = o
	}

	var logs []models.AccessLog
	if err := tx.Order("created_at DESC").Limit(limit).Offset(offset).Find(&logs).Error; err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, logs)
}
