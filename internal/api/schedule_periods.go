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

type StoreSchedulePeriodRequest struct {
	ScheduleID uint   `json:"schedule_id" binding:"required"`
	StartTime  string `json:"start_time" binding:"required,timeofday"`
	EndTime    string `json:"end_time" binding:"required,timeofday"`
}

type UpdateSchedulePeriodRequest struct {
	StartTime *string `json:"start_time" binding:"omitempty,timeofday"`
	EndTime   *string `json:"end_time" binding:"omitempty,timeofday"`
}

func IndexSchedulePeriods(c *gin.Context) {
	var periods []models.SchedulePeriod
	tx := db.DB.WithContext(c.Request.Context()).Preload("Schedule")
	if scheduleID := c.Query("schedule_id"); scheduleID != "" {
		tx = tx.Where("schedule_id = ?", scheduleID)
	}
	if err := tx.Order("start_time").Find(&periods).Error; err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, periods)
}

// StoreSchedulePeriod godoc
// @Summary      Add a time window to a schedule
// @Description  Fails with 422 when the window overlaps another period in the same room on the same day.
// @Tags         schedule-periods
// @Accept       json
// @Produce      json
// @Param        body  body  StoreSchedulePeriodRequest  true  "Period"
// @Success      201 {object} Response
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /schedule-periods [post]
func StoreSchedulePeriod(c *gin.Context) {
	var req StoreSchedulePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	// Zero-length periods are meaningless, so the check is strict.
	if err := validation.ValidateTimeRange("end_time", req.StartTime, req.EndTime, true); err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	var schedule models.Schedule
	if err := db.DB.WithContext(ctx).First(&schedule, req.ScheduleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, &validation.ReferenceNotFoundError{Field: "schedule_id"})
			return
		}
		respondError(c, err)
		return
	}

	period := models.SchedulePeriod{
		ScheduleID: req.ScheduleID,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
	}

	err := db.WithRoomDayLock(ctx, schedule.RoomID, schedule.DayOfWeek, func(tx *gorm.DB) error {
		intervals, err := db.PeriodIntervals(tx, schedule.RoomID, schedule.DayOfWeek)
		if err != nil {
			return err
		}
		cand := validation.Interval{Start: period.StartTime, End: period.EndTime}
		if validation.HasConflict(cand, intervals) {
			return &validation.ConflictError{Field: "start_time"}
		}
		return tx.Create(&period).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}

	db.DB.WithContext(ctx).Preload("Schedule").First(&period, period.ID)
	respondData(c, http.StatusCreated, period)
}

func ShowSchedulePeriod(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var period models.SchedulePeriod
	if err := db.DB.WithContext(c.Request.Context()).Preload("Schedule").First(&period, id).Error; err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, period)
}

func UpdateSchedulePeriod(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdateSchedulePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	var period models.SchedulePeriod
	if err := db.DB.WithContext(ctx).Preload("Schedule").First(&period, id).Error; err != nil {
		respondError(c, err)
		return
	}

	// Effective window after merging the patch over stored values.
	touched := false
	if req.StartTime != nil && *req.StartTime != period.StartTime {
		period.StartTime = *req.StartTime
		touched = true
	}
	if req.EndTime != nil && *req.EndTime != period.EndTime {
		period.EndTime = *req.EndTime
		touched = true
	}

	if err := validation.ValidateTimeRange("end_time", period.StartTime, period.EndTime, true); err != nil {
		respondError(c, err)
		return
	}

	// An update leaving the window untouched skips the conflict scan:
	// the stored row already passed it.
	var err error
	if touched {
		err = db.WithRoomDayLock(ctx, period.Schedule.RoomID, period.Schedule.DayOfWeek, func(tx *gorm.DB) error {
			intervals, err := db.PeriodIntervals(tx, period.Schedule.RoomID, period.Schedule.DayOfWeek)
			if err != nil {
				return err
			}
			cand := validation.Interval{ID: period.ID, Start: period.StartTime, End: period.EndTime}
			if validation.HasConflict(cand, intervals) {
				return &validation.ConflictError{Field: "start_time"}
			}
			return tx.Omit(clause.Associations).Save(&period).Error
		})
	} else {
		err = db.DB.WithContext(ctx).Omit(clause.Associations).Save(&period).Error
	}
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, period)
}

func DeleteSchedulePeriod(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	res := db.DB.WithContext(c.Request.Context()).Delete(&models.SchedulePeriod{}, id)
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
