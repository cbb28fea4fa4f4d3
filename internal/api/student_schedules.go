package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/accesshub/campus-back/internal/db"
	"github.com/accesshub/campus-back/internal/models"
	"github.com/accesshub/campus-back/internal/validation"
)

type StoreStudentScheduleRequest struct {
	StudentID        uint `json:"student_id" binding:"required"`
	SubjectID        uint `json:"subject_id" binding:"required"`
	ScheduleID       uint `json:"schedule_id" binding:"required"`
	SchedulePeriodID uint `json:"schedule_period_id" binding:"required"`
}

func IndexStudentSchedules(c *gin.Context) {
	var rows []models.StudentSchedule
	tx := db.DB.WithContext(c.Request.Context()).
		Preload("Student").Preload("Subject").Preload("Schedule").Preload("SchedulePeriod")
	if studentID := c.Query("student_id"); studentID != "" {
		tx = tx.Where("student_id = ?", studentID)
	}
	if err := tx.Order("id").Find(&rows).Error; err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, rows)
}

func StoreStudentSchedule(c *gin.Context) {
	var req StoreStudentScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	if _, err := db.UserByID(ctx, req.StudentID, models.RoleStudent); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, &validation.ReferenceNotFoundError{Field: "student_id"})
			return
		}
		respondError(c, err)
		return
	}
	var subject models.Subject
	if err := db.DB.WithContext(ctx).First(&subject, req.SubjectID).Error; err != nil {
		respondError(c, &validation.ReferenceNotFoundError{Field: "subject_id"})
		return
	}
	var period models.SchedulePeriod
	if err := db.DB.WithContext(ctx).First(&period, req.SchedulePeriodID).Error; err != nil {
		respondError(c, &validation.ReferenceNotFoundError{Field: "schedule_period_id"})
		return
	}
	// The period must belong to the referenced schedule.
	if period.ScheduleID != req.ScheduleID {
		respondError(c, &validation.ReferenceNotFoundError{Field: "schedule_period_id"})
		return
	}

	taken, err := db.StudentScheduleExists(db.DB.WithContext(ctx), req.StudentID, req.SubjectID, req.ScheduleID, req.SchedulePeriodID, 0)
	if err != nil {
		respondError(c, err)
		return
	}
	if taken {
		respondError(c, &validation.DuplicateCombinationError{Field: "schedule_period_id"})
		return
	}

	row := models.StudentSchedule{
		StudentID:        req.StudentID,
		SubjectID:        req.SubjectID,
		ScheduleID:       req.ScheduleID,
		SchedulePeriodID: req.SchedulePeriodID,
	}
	if err := db.DB.WithContext(ctx).Create(&row).Error; err != nil {
		respondError(c, err)
		return
	}
	db.DB.WithContext(ctx).
		Preload("Student").Preload("Subject").Preload("Schedule").Preload("SchedulePeriod").
		First(&row, row.ID)
	respondData(c, http.StatusCreated, row)
}

func ShowStudentSchedule(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var row models.StudentSchedule
	if err := db.DB.WithContext(c.Request.Context()).
		Preload("Student").Preload("Subject").Preload("Schedule").Preload("SchedulePeriod").
		First(&row, id).Error; err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, row)
}

func DeleteStudentSchedule(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	res := db.DB.WithContext(c.Request.Context()).Delete(&models.StudentSchedule{}, id)
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
