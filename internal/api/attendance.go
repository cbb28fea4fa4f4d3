package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/accesshub/campus-back/internal/db"
	"github.com/accesshub/campus-back/internal/models"
	"github.com/accesshub/campus-back/internal/validation"
)

type StoreAttendanceRequest struct {
	ScheduleSessionID uint    `json:"schedule_session_id" binding:"required"`
	StudentID         uint    `json:"student_id" binding:"required"`
	DateIn            *string `json:"date_in" binding:"omitempty,dateonly"`
	TimeIn            *string `json:"time_in" binding:"omitempty,timeofday"`
	DateOut           *string `json:"date_out" binding:"omitempty,dateonly"`
	TimeOut           *string `json:"time_out" binding:"omitempty,timeofday"`
	Status            string  `json:"status" binding:"required,oneof=PRESENT LATE ABSENT"`
}

type UpdateAttendanceRequest struct {
	DateIn  *string `json:"date_in" binding:"omitempty,dateonly"`
	TimeIn  *string `json:"time_in" binding:"omitempty,timeofday"`
	DateOut *string `json:"date_out" binding:"omitempty,dateonly"`
	TimeOut *string `json:"time_out" binding:"omitempty,timeofday"`
	Status  *string `json:"status" binding:"omitempty,oneof=PRESENT LATE ABSENT"`
}

func IndexScheduleAttendance(c *gin.Context) {
	var rows []models.ScheduleAttendance
	tx := db.DB.WithContext(c.Request.Context()).
		Preload("ScheduleSession").Preload("Student")
	if sessionID := c.Query("schedule_session_id"); sessionID != "" {
		tx = tx.Where("schedule_session_id = ?", sessionID)
	}
	if studentID := c.Query("student_id"); studentID != "" {
		tx = tx.Where("student_id = ?", studentID)
	}
	if dateIn := c.Query("date_in"); dateIn != "" {
		tx = tx.Where("date_in = ?", dateIn)
	}
	if err := tx.Order("id").Find(&rows).Error; err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, rows)
}

// checkAttendanceChronology validates both in/out pairs. The out bound
// may equal the in bound (instant check-out), so the checks are
// non-strict.
func checkAttendanceChronology(a *models.ScheduleAttendance) error {
	if err := validation.ValidateDateRange("date_out", a.DateIn, a.DateOut, false); err != nil {
		return err
	}
	if a.TimeIn != nil && a.TimeOut != nil {
		sameDay := a.DateIn == nil || a.DateOut == nil || *a.DateIn == *a.DateOut
		if sameDay {
			return validation.ValidateTimeRange("time_out", *a.TimeIn, *a.TimeOut, false)
		}
	}
	return nil
}

// StoreScheduleAttendance godoc
// @Summary      Record a student's check-in against a session
// @Description  Only insertable while the session's date window contains today; unique per (session, student, date_in).
// @Tags         schedule-attendance
// @Accept       json
// @Produce      json
// @Param        body  body  StoreAttendanceRequest  true  "Attendance"
// @Success      201 {object} Response
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /schedule-attendance [post]
func StoreScheduleAttendance(c *gin.Context) {
	var req StoreAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	var session models.ScheduleSession
	if err := db.DB.WithContext(ctx).First(&session, req.ScheduleSessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, &validation.ReferenceNotFoundError{Field: "schedule_session_id"})
			return
		}
		respondError(c, err)
		return
	}
	if _, err := db.UserByID(ctx, req.StudentID, models.RoleStudent); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, &validation.ReferenceNotFoundError{Field: "student_id"})
			return
		}
		respondError(c, err)
		return
	}

	// The activity gate applies to creation only; corrections to an
	// existing record stay possible after the session closes.
	if !validation.SessionActive(session.StartDate, session.EndDate, time.Now()) {
		respondError(c, &validation.InactiveSessionError{})
		return
	}

	row := models.ScheduleAttendance{
		ScheduleSessionID: req.ScheduleSessionID,
		StudentID:         req.StudentID,
		DateIn:            req.DateIn,
		TimeIn:            req.TimeIn,
		DateOut:           req.DateOut,
		TimeOut:           req.TimeOut,
		Status:            req.Status,
	}
	if err := checkAttendanceChronology(&row); err != nil {
		respondError(c, err)
		return
	}

	taken, err := db.AttendanceComboExists(db.DB.WithContext(ctx), row.ScheduleSessionID, row.StudentID, row.DateIn, 0)
	if err != nil {
		respondError(c, err)
		return
	}
	if taken {
		respondError(c, &validation.DuplicateCombinationError{Field: "date_in"})
		return
	}

	if err := db.DB.WithContext(ctx).Create(&row).Error; err != nil {
		respondError(c, err)
		return
	}
	db.DB.WithContext(ctx).Preload("ScheduleSession").Preload("Student").First(&row, row.ID)
	respondData(c, http.StatusCreated, row)
}

func ShowScheduleAttendance(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var row models.ScheduleAttendance
	if err := db.DB.WithContext(c.Request.Context()).
		Preload("ScheduleSession").Preload("Student").
		First(&row, id).Error; err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, row)
}

func UpdateScheduleAttendance(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	var row models.ScheduleAttendance
	if err := db.DB.WithContext(ctx).First(&row, id).Error; err != nil {
		respondError(c, err)
		return
	}

	dateInTouched := false
	if req.DateIn != nil {
		if row.DateIn == nil || *req.DateIn != *row.DateIn {
			dateInTouched = true
		}
		row.DateIn = req.DateIn
	}
	if req.TimeIn != nil {
		row.TimeIn = req.TimeIn
	}
	if req.DateOut != nil {
		row.DateOut = req.DateOut
	}
	if req.TimeOut != nil {
		row.TimeOut = req.TimeOut
	}
	if req.Status != nil {
		row.Status = *req.Status
	}

	if err := checkAttendanceChronology(&row); err != nil {
		respondError(c, err)
		return
	}

	if dateInTouched {
		taken, err := db.AttendanceComboExists(db.DB.WithContext(ctx), row.ScheduleSessionID, row.StudentID, row.DateIn, row.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		if taken {
			respondError(c, &validation.DuplicateCombinationError{Field: "date_in"})
			return
		}
	}

	if err := db.DB.WithContext(ctx).Omit(clause.Associations).Save(&row).Error; err != nil {
		respondError(c, err)
		return
	}
	db.DB.WithContext(ctx).Preload("ScheduleSession").Preload("Student").First(&row, row.ID)
	respondData(c, http.StatusOK, row)
}

func DeleteScheduleAttendance(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	res := db.DB.WithContext(c.Request.Context()).Delete(&models.ScheduleAttendance{}, id)
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
