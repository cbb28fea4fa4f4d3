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

type StoreScheduleSessionRequest struct {
	SectionSubjectScheduleID uint    `json:"section_subject_schedule_id" binding:"required"`
	FacultyID                uint    `json:"faculty_id" binding:"required"`
	RoomID                   uint    `json:"room_id" binding:"required"`
	StartDate                *string `json:"start_date" binding:"omitempty,dateonly"`
	EndDate                  *string `json:"end_date" binding:"omitempty,dateonly"`
	StartTime                string  `json:"start_time" binding:"required,timeofday"`
	EndTime                  string  `json:"end_time" binding:"required,timeofday"`
}

type UpdateScheduleSessionRequest struct {
	FacultyID *uint   `json:"faculty_id"`
	RoomID    *uint   `json:"room_id"`
	StartDate *string `json:"start_date" binding:"omitempty,dateonly"`
	EndDate   *string `json:"end_date" binding:"omitempty,dateonly"`
	StartTime *string `json:"start_time" binding:"omitempty,timeofday"`
	EndTime   *string `json:"end_time" binding:"omitempty,timeofday"`
}

func IndexScheduleSessions(c *gin.Context) {
	var sessions []models.ScheduleSession
	tx := db.DB.WithContext(c.Request.Context()).
		Preload("SectionSubjectSchedule").Preload("Faculty").Preload("Room")
	if sssID := c.Query("section_subject_schedule_id"); sssID != "" {
		tx = tx.Where("section_subject_schedule_id = ?", sssID)
	}
	if roomID := c.Query("room_id"); roomID != "" {
		tx = tx.Where("room_id = ?", roomID)
	}
	if err := tx.Order("id").Find(&sessions).Error; err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, sessions)
}

func checkSessionRefs(c *gin.Context, facultyID, roomID uint) error {
	ctx := c.Request.Context()
	if _, err := db.UserByID(ctx, facultyID, models.RoleFaculty); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &validation.ReferenceNotFoundError{Field: "faculty_id"}
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

func validateSessionRanges(s *models.ScheduleSession) error {
	if err := validation.ValidateDateRange("end_date", s.StartDate, s.EndDate, false); err != nil {
		return err
	}
	return validation.ValidateTimeRange("end_time", s.StartTime, s.EndTime, true)
}

// StoreScheduleSession godoc
// @Summary      Instantiate a dated session of a weekly slot
// @Description  Unique per (section_subject_schedule, start_date); a missing start_date forms its own bucket.
// @Tags         schedule-sessions
// @Accept       json
// @Produce      json
// @Param        body  body  StoreScheduleSessionRequest  true  "Session"
// @Success      201 {object} Response
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /schedule-sessions [post]
func StoreScheduleSession(c *gin.Context) {
	var req StoreScheduleSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	var parent models.SectionSubjectSchedule
	if err := db.DB.WithContext(ctx).First(&parent, req.SectionSubjectScheduleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, &validation.ReferenceNotFoundError{Field: "section_subject_schedule_id"})
			return
		}
		respondError(c, err)
		return
	}
	if err := checkSessionRefs(c, req.FacultyID, req.RoomID); err != nil {
		respondError(c, err)
		return
	}

	session := models.ScheduleSession{
		SectionSubjectScheduleID: req.SectionSubjectScheduleID,
		FacultyID:                req.FacultyID,
		RoomID:                   req.RoomID,
		StartDate:                req.StartDate,
		EndDate:                  req.EndDate,
		StartTime:                req.StartTime,
		EndTime:                  req.EndTime,
	}
	if err := validateSessionRanges(&session); err != nil {
		respondError(c, err)
		return
	}

	taken, err := db.SessionComboExists(db.DB.WithContext(ctx), session.SectionSubjectScheduleID, session.StartDate, 0)
	if err != nil {
		respondError(c, err)
		return
	}
	if taken {
		respondError(c, &validation.DuplicateCombinationError{Field: "start_date"})
		return
	}

	if err := db.DB.WithContext(ctx).Create(&session).Error; err != nil {
		respondError(c, err)
		return
	}
	db.DB.WithContext(ctx).
		Preload("SectionSubjectSchedule").Preload("Faculty").Preload("Room").
		First(&session, session.ID)
	respondData(c, http.StatusCreated, session)
}

func ShowScheduleSession(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var session models.ScheduleSession
	if err := db.DB.WithContext(c.Request.Context()).
		Preload("SectionSubjectSchedule").Preload("Faculty").Preload("Room").
		First(&session, id).Error; err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, session)
}

func UpdateScheduleSession(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdateScheduleSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	var session models.ScheduleSession
	if err := db.DB.WithContext(ctx).First(&session, id).Error; err != nil {
		respondError(c, err)
		return
	}

	if req.FacultyID != nil {
		session.FacultyID = *req.FacultyID
	}
	if req.RoomID != nil {
		session.RoomID = *req.RoomID
	}
	if req.StartDate != nil {
		session.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		session.EndDate = req.EndDate
	}
	if req.StartTime != nil {
		session.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		session.EndTime = *req.EndTime
	}

	if err := validateSessionRanges(&session); err != nil {
		respondError(c, err)
		return
	}
	if err := checkSessionRefs(c, session.FacultyID, session.RoomID); err != nil {
		respondError(c, err)
		return
	}

	taken, err := db.SessionComboExists(db.DB.WithContext(ctx), session.SectionSubjectScheduleID, session.StartDate, session.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	if taken {
		respondError(c, &validation.DuplicateCombinationError{Field: "start_date"})
		return
	}

	if err := db.DB.WithContext(ctx).Omit(clause.Associations).Save(&session).Error; err != nil {
		respondError(c, err)
		return
	}
	db.DB.WithContext(ctx).
		Preload("SectionSubjectSchedule").Preload("Faculty").Preload("Room").
		First(&session, session.ID)
	respondData(c, http.StatusOK, session)
}

func DeleteScheduleSession(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	res := db.DB.WithContext(c.Request.Context()).Delete(&models.ScheduleSession{}, id)
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
