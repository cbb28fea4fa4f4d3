package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/accesshub/campus-back/internal/db"
	"github.com/accesshub/campus-back/internal/excel"
	"github.com/accesshub/campus-back/internal/models"
	"github.com/accesshub/campus-back/internal/validation"
)

// ImportSectionSubjectSchedules godoc
// @Summary      Bulk-import weekly slots from an xlsx roster
// @Description  Each row runs through the same uniqueness and overlap checks as a single create; the first failing line aborts the import.
// @Tags         section-subject-schedules
// @Accept       mpfd
// @Produce      json
// @Success      201 {object} Response
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /section-subject-schedules/import [post]
func ImportSectionSubjectSchedules(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondBadRequest(c, fmt.Errorf("missing file upload"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	slots, err := excel.ParseSlotSheet(file)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Status: false, Message: err.Error()})
		return
	}

	ctx := c.Request.Context()
	created := make([]models.SectionSubjectSchedule, 0, len(slots))
	for _, row := range slots {
		slot := models.SectionSubjectSchedule{
			SectionSubjectID: row.SectionSubjectID,
			DayOfWeek:        row.DayOfWeek,
			RoomID:           row.RoomID,
			StartTime:        row.StartTime,
			EndTime:          row.EndTime,
		}
		if err := checkSlotRefs(c, slot.SectionSubjectID, slot.RoomID); err != nil {
			respondImportError(c, row.Line, err)
			return
		}
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
			if validation.HasConflict(validation.Interval{Start: slot.StartTime, End: slot.EndTime}, intervals) {
				return &validation.ConflictError{Field: "start_time"}
			}
			return tx.Create(&slot).Error
		})
		if err != nil {
			respondImportError(c, row.Line, err)
			return
		}
		created = append(created, slot)
	}

	respondData(c, http.StatusCreated, gin.H{"imported": len(created), "slots": created})
}

func respondImportError(c *gin.Context, line int, err error) {
	if validation.Is(err) {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Status:  false,
			Message: fmt.Sprintf("line %d: %s", line, err.Error()),
		})
		return
	}
	respondError(c, err)
}

// ExportSessionAttendance streams one session's attendance as xlsx.
func ExportSessionAttendance(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	var session models.ScheduleSession
	if err := db.DB.WithContext(ctx).First(&session, id).Error; err != nil {
		respondError(c, err)
		return
	}

	var rows []models.ScheduleAttendance
	if err := db.DB.WithContext(ctx).Preload("Student").
		Where("schedule_session_id = ?", session.ID).
		Order("student_id").Find(&rows).Error; err != nil {
		respondError(c, err)
		return
	}

	buf, err := excel.AttendanceReport(&session, rows)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("attendance-session-%d.xlsx", session.ID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
