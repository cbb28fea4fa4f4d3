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

type StoreScheduleRequest struct {
	UserID    uint   `json:"user_id" binding:"required"`
	DayOfWeek string `json:"day_of_week" binding:"required,dayofweek"`
	RoomID    uint   `json:"room_id" binding:"required"`
	SubjectID uint   `json:"subject_id" binding:"required"`
}

type UpdateScheduleRequest struct {
	UserID    *uint   `json:"user_id"`
	DayOfWeek *string `json:"day_of_week" binding:"omitempty,dayofweek"`
	RoomID    *uint   `json:"room_id"`
	SubjectID *uint   `json:"subject_id"`
}

func IndexSchedules(c *gin.Context) {
	var schedules []models.Schedule
	tx := db.DB.WithContext(c.Request.Context()).
		Preload("User").Preload("Room").Preload("Subject").Preload("Periods")
	if userID := c.Query("user_id"); userID != "" {
		tx = tx.Where("user_id = ?", userID)
	}
	if roomID := c.Query("room_id"); roomID != "" {
		tx = tx.Where("room_id = ?", roomID)
	}
	if day := c.Query("day_of_week"); day != "" {
		tx = tx.Where("day_of_week = ?", day)
	}
	if err := tx.Order("id").Find(&schedules).Error; err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, schedules)
}

func checkScheduleRefs(c *gin.Context, userID, roomID, subjectID uint) error {
	ctx := c.Request.Context()
	user, err := db.UserByID(ctx, userID, "")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &validation.ReferenceNotFoundError{Field: "user_id"}
		}
		return err
	}
	if user.Role != models.RoleFaculty && user.Role != models.RoleStudent {
		return &validation.ReferenceNotFoundError{Field: "user_id"}
	}
	var room models.Room
	if err := db.DB.WithContext(ctx).First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &validation.ReferenceNotFoundError{Field: "room_id"}
		}
		return err
	}
	var subject models.Subject
	if err := db.DB.WithContext(ctx).First(&subject, subjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &validation.ReferenceNotFoundError{Field: "subject_id"}
		}
		return err
	}
	return nil
}

// StoreSchedule godoc
// @Summary      Create a weekly schedule slot
// @Tags         schedules
// @Accept       json
// @Produce      json
// @Param        body  body  StoreScheduleRequest  true  "Schedule"
// @Success      201 {object} Response
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /schedules [post]
func StoreSchedule(c *gin.Context) {
	var req StoreScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := checkScheduleRefs(c, req.UserID, req.RoomID, req.SubjectID); err != nil {
		respondError(c, err)
		return
	}

	taken, err := db.ScheduleComboExists(db.DB.WithContext(ctx), req.UserID, req.DayOfWeek, req.RoomID, req.SubjectID, 0)
	if err != nil {
		respondError(c, err)
		return
	}
	if taken {
		respondError(c, &validation.DuplicateCombinationError{Field: "day_of_week"})
		return
	}

	schedule := models.Schedule{
		UserID:    req.UserID,
		DayOfWeek: req.DayOfWeek,
		RoomID:    req.RoomID,
		SubjectID: req.SubjectID,
	}
	if err := db.DB.WithContext(ctx).Create(&schedule).Error; err != nil {
		respondError(c, err)
		return
	}
	db.DB.WithContext(ctx).Preload("User").Preload("Room").Preload("Subject").First(&schedule, schedule.ID)
	respondData(c, http.StatusCreated, schedule)
}

func ShowSchedule(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var schedule models.Schedule
	if err := db.DB.WithContext(c.Request.Context()).
		Preload("User").Preload("Room").Preload("Subject").Preload("Periods").
		First(&schedule, id).Error; err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, schedule)
}

func UpdateSchedule(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	var schedule models.Schedule
	if err := db.DB.WithContext(ctx).First(&schedule, id).Error; err != nil {
		respondError(c, err)
		return
	}

	roomOrDayTouched := (req.RoomID != nil && *req.RoomID != schedule.RoomID) ||
		(req.DayOfWeek != nil && *req.DayOfWeek != schedule.DayOfWeek)

	if req.UserID != nil {
		schedule.UserID = *req.UserID
	}
	if req.DayOfWeek != nil {
		schedule.DayOfWeek = *req.DayOfWeek
	}
	if req.RoomID != nil {
		schedule.RoomID = *req.RoomID
	}
	if req.SubjectID != nil {
		schedule.SubjectID = *req.SubjectID
	}

	if err := checkScheduleRefs(c, schedule.UserID, schedule.RoomID, schedule.SubjectID); err != nil {
		respondError(c, err)
		return
	}

	taken, err := db.ScheduleComboExists(db.DB.WithContext(ctx), schedule.UserID, schedule.DayOfWeek, schedule.RoomID, schedule.SubjectID, schedule.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	if taken {
		respondError(c, &validation.DuplicateCombinationError{Field: "day_of_week"})
		return
	}

	// Moving the schedule moves its periods with it; the periods must
	// still fit in the target room+day.
	if roomOrDayTouched {
		err = db.WithRoomDayLock(ctx, schedule.RoomID, schedule.DayOfWeek, func(tx *gorm.DB) error {
			intervals, err := db.PeriodIntervals(tx, schedule.RoomID, schedule.DayOfWeek)
			if err != nil {
				return err
			}
			var periods []models.SchedulePeriod
			if err := tx.Where("schedule_id = ?", schedule.ID).Find(&periods).Error; err != nil {
				return err
			}
			for _, p := range periods {
				cand := validation.Interval{ID: p.ID, Start: p.StartTime, End: p.EndTime}
				if validation.HasConflict(cand, intervals) {
					return &validation.ConflictError{Field: "day_of_week"}
				}
			}
			return tx.Save(&schedule).Error
		})
	} else {
		err = db.DB.WithContext(ctx).Save(&schedule).Error
	}
	if err != nil {
		respondError(c, err)
		return
	}

	db.DB.WithContext(ctx).Preload("User").Preload("Room").Preload("Subject").Preload("Periods").First(&schedule, schedule.ID)
	respondData(c, http.StatusOK, schedule)
}

func DeleteSchedule(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	res := db.DB.WithContext(c.Request.Context()).Delete(&models.Schedule{}, id)
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
