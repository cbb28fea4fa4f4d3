package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/accesshub/campus-back/internal/db"
	"github.com/accesshub/campus-back/internal/models"
	"github.com/accesshub/campus-back/internal/validation"
)

type StoreSectionSubjectScheduleRequest struct {
	SectionSubjectID uint   `json:"section_subject_id" binding:"required"`
	DayOfWeek        string `json:"day_of_week" binding:"required,dayofweek"`
	RoomID           uint   `json:"room_id" binding:"required"`
	StartTime        string `json:"start_time" binding:"required,timeofday"`
	EndTime          string `json:"end_time" binding:"required,timeofday"`
}

type UpdateSectionSubjectScheduleRequest struct {
	SectionSubjectID *uint   `json:"section_subject_id"`
	DayOfWeek        *string `json:"day_of_week" binding:"omitempty,dayofweek"`
	RoomID           *uint   `json:"room_id"`
	StartTime        *string `json:"start_time" binding:"omitempty,timeofday"`
	EndTime          *string `json:"end_time" binding:"omitempty,timeofday"`
}

func IndexSectionSubjectSchedules(c *gin.Context) {
	var slots []models.SectionSubjectSchedule
	tx := db.DB.WithContext(c.Request.Context()).
		Preload("SectionSubject").Preload("Room")
	if ssID := c.Query("section_subject_id"); ssID != "" {
		tx = tx.Where("section_subject_id = ?", ssID)
	}
	if roomID := c.Query("room_id"); roomID != "" {
		tx = tx.Where("room_id = ?", roomID)
	}
	if err := tx.Order("day_of_week, start_time").Find(&slots).Error; err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, slots)
}

func checkSlotRefs(c *gin.Context, sectionSubjectID, roomID uint) error {
	ctx := c.Request.Context()
	var parent models.SectionSubject
	if err := db.DB.WithContext(ctx).First(&parent, sectionSubjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &validation.ReferenceNotFoundError{Field: "section_subject_id"}
		}
		return err
	}
	var room models.Room
	if err := db.DB.WithContext(ctx).First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &validation.ReferenceNotFoundError{Field: "room_id"}
		}
		return err
	}
	return nil
}

// StoreSectionSubjectSchedule godoc
// @Summary      Create the weekly meeting slot of a section subject
// @Description  Fails with 422 on chronology errors, exact-duplicate tuples, or room/day overlaps.
// @Tags         section-subject-schedules
// @Accept       json
// @Produce      json
// @Param        body  body  StoreSectionSubjectScheduleRequest  true  "Slot"
// @Success      201 {object} Response
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /section-subject-schedules [post]
func StoreSectionSubjectSchedule(c *gin.Context) {
	var req StoreSectionSubjectScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := validation.ValidateTimeRange("end_time", req.StartTime, req.EndTime, true); err != nil {
		respondError(c, err)
		return
	}
	if err := checkSlotRefs(c, req.SectionSubjectID, req.RoomID); err != nil {
		respondError(c, err)
		return
	}

	slot := models.SectionSubjectSchedule{
		SectionSubjectID: req.SectionSubjectID,
		DayOfWeek:        req.DayOfWeek,
		RoomID:           req.RoomID,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
	}

	ctx := c.Request.Context()
	err := db.WithRoomDayLock(ctx, slot.RoomID, slot.DayOfWeek, func(tx *gorm.DB) error {
		taken, err := db.SectionSubjectScheduleComboExists(tx, slot.SectionSubjectID, slot.DayOfWeek, slot.RoomID, slot.StartTime, slot.EndTime, 0)
		if err != nil {
			return err
		}
		if taken {
			return &validation.DuplicateCombinationError{Field: "start_time"}
		}
		intervals, err := db.SlotIntervals(tx, slot.RoomID, slot.DayOfWeek)
		if err != nil {
			return err
		}
		cand := validation.Interval{Start: slot.StartTime, End: slot.EndTime}
		if validation.HasConflict(cand, intervals) {
			return &validation.ConflictError{Field: "start_time"}
		}
		return tx.Create(&slot).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}

	db.DB.WithContext(ctx).Preload("SectionSubject").Preload("Room").First(&slot, slot.ID)
	respondData(c, http.StatusCreated, slot)
}

func ShowSectionSubjectSchedule(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var slot models.SectionSubjectSchedule
	if err := db.DB.WithContext(c.Request.Context()).
		Preload("SectionSubject").Preload("Room").
		First(&slot, id).Error; err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, slot)
}

func UpdateSectionSubjectSchedule(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdateSectionSubjectScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	var slot models.SectionSubjectSchedule
	if err := db.DB.WithContext(ctx).First(&slot, id).Error; err != nil {
		respondError(c, err)
		return
	}

	// Merge the patch into the stored row so the checks run against the
	// effective values, not the partial body.
	windowTouched := false
	if req.SectionSubjectID != nil {
		slot.SectionSubjectID = *req.SectionSubjectID
	}
	if req.DayOfWeek != nil && *req.DayOfWeek != slot.DayOfWeek {
		slot.DayOfWeek = *req.DayOfWeek
		windowTouched = true
	}
	if req.RoomID != nil && *req.RoomID != slot.RoomID {
		slot.RoomID = *req.RoomID
		windowTouched = true
	}
	if req.StartTime != nil && *req.StartTime != slot.StartTime {
		slot.StartTime = *req.StartTime
		windowTouched = true
	}
	if req.EndTime != nil && *req.EndTime != slot.EndTime {
		slot.EndTime = *req.EndTime
		windowTouched = true
	}

	if err := validation.ValidateTimeRange("end_time", slot.StartTime, slot.EndTime, true); err != nil {
		respondError(c, err)
		return
	}
	if err := checkSlotRefs(c, slot.SectionSubjectID, slot.RoomID); err != nil {
		respondError(c, err)
		return
	}

	err := db.WithRoomDayLock(ctx, slot.RoomID, slot.DayOfWeek, func(tx *gorm.DB) error {
		taken, err := db.SectionSubjectScheduleComboExists(tx, slot.SectionSubjectID, slot.DayOfWeek, slot.RoomID, slot.StartTime, slot.EndTime, slot.ID)
		if err != nil {
			return err
		}
		if taken {
			return &validation.DuplicateCombinationError{Field: "start_time"}
		}
		if windowTouched {
			intervals, err := db.SlotIntervals(tx, slot.RoomID, slot.DayOfWeek)
			if err != nil {
				return err
			}
			cand := validation.Interval{ID: slot.ID, Start: slot.StartTime, End: slot.EndTime}
			if validation.HasConflict(cand, intervals) {
				return &validation.ConflictError{Field: "start_time"}
			}
		}
		return tx.Omit(clause.Associations).Save(&slot).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}

	db.DB.WithContext(ctx).Preload("SectionSubject").Preload("Room").First(&slot, slot.ID)
	respondData(c, http.StatusOK, slot)
}

func DeleteSectionSubjectSchedule(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	res := db.DB.WithContext(c.Request.Context()).Delete(&models.SectionSubjectSchedule{}, id)
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
