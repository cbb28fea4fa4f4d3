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

type StoreSubjectRequest struct {
	Code string `json:"code" binding:"required"`
	Name string `json:"name" binding:"required"`
}

func IndexSubjects(c *gin.Context) {
	var subjects []models.Subject
	if err := db.DB.WithContext(c.Request.Context()).Order("id").Find(&subjects).Error; err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, subjects)
}

func StoreSubject(c *gin.Context) {
	var req StoreSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	var n int64
	if err := db.DB.WithContext(ctx).Model(&models.Subject{}).Where("code = ?", req.Code).Count(&n).Error; err != nil {
		respondError(c, err)
		return
	}
	if n > 0 {
		respondError(c, &validation.DuplicateCombinationError{Field: "code"})
		return
	}

	subject := models.Subject{Code: req.Code, Name: req.Name}
	if err := db.DB.WithContext(ctx).Create(&subject).Error; err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, subject)
}

func ShowSubject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var subject models.Subject
	if err := db.DB.WithContext(c.Request.Context()).First(&subject, id).Error; err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, subject)
}

func UpdateSubject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req struct {
		Code *string `json:"code"`
		Name *string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	var subject models.Subject
	if err := db.DB.WithContext(ctx).First(&subject, id).Error; err != nil {
		respondError(c, err)
		return
	}
	if req.Code != nil && *req.Code != subject.Code {
		var n int64
		if err := db.DB.WithContext(ctx).Model(&models.Subject{}).
			Where("code = ? AND id <> ?", *req.Code, id).Count(&n).Error; err != nil {
			respondError(c, err)
			return
		}
		if n > 0 {
			respondError(c, &validation.DuplicateCombinationError{Field: "code"})
			return
		}
		subject.Code = *req.Code
	}
	if req.Name != nil {
		subject.Name = *req.Name
	}
	if err := db.DB.WithContext(ctx).Save(&subject).Error; err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, subject)
}

func DeleteSubject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	res := db.DB.WithContext(c.Request.Context()).Delete(&models.Subject{}, id)
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

type StoreSectionRequest struct {
	Name string `json:"name" binding:"required"`
	Year int    `json:"year"`
}

func IndexSections(c *gin.Context) {
	var sections []models.Section
	if err := db.DB.WithContext(c.Request.Context()).Order("id").Find(&sections).Error; err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, sections)
}

func StoreSection(c *gin.Context) {
	var req StoreSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	var n int64
	if err := db.DB.WithContext(ctx).Model(&models.Section{}).Where("name = ?", req.Name).Count(&n).Error; err != nil {
		respondError(c, err)
		return
	}
	if n > 0 {
		respondError(c, &validation.DuplicateCombinationError{Field: "name"})
		return
	}

	section := models.Section{Name: req.Name, Year: req.Year}
	if err := db.DB.WithContext(ctx).Create(&section).Error; err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, section)
}

func ShowSection(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var section models.Section
	if err := db.DB.WithContext(c.Request.Context()).First(&section, id).Error; err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, section)
}

func UpdateSection(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req struct {
		Name *string `json:"name"`
		Year *int    `json:"year"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	var section models.Section
	if err := db.DB.WithContext(ctx).First(&section, id).Error; err != nil {
		respondError(c, err)
		return
	}
	if req.Name != nil {
		section.Name = *req.Name
	}
	if req.Year != nil {
		section.Year = *req.Year
	}
	if err := db.DB.WithContext(ctx).Save(&section).Error; err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, section)
}

func DeleteSection(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	res := db.DB.WithContext(c.Request.Context()).Delete(&models.Section{}, id)
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

type StoreSectionSubjectRequest struct {
	SectionID uint `json:"section_id" binding:"required"`
	SubjectID uint `json:"subject_id" binding:"required"`
	FacultyID uint `json:"faculty_id" binding:"required"`
}

type UpdateSectionSubjectRequest struct {
	SectionID *uint `json:"section_id"`
	SubjectID *uint `json:"subject_id"`
	FacultyID *uint `json:"faculty_id"`
}

func IndexSectionSubjects(c *gin.Context) {
	var rows []models.SectionSubject
	tx := db.DB.WithContext(c.Request.Context()).
		Preload("Section").Preload("Subject").Preload("Faculty")
	if sectionID := c.Query("section_id"); sectionID != "" {
		tx = tx.Where("section_id = ?", sectionID)
	}
	if err := tx.Order("id").Find(&rows).Error; err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, rows)
}

// StoreSectionSubject godoc
// @Summary      Assign a faculty member to teach a subject for a section
// @Tags         section-subjects
// @Accept       json
// @Produce      json
// @Param        body  body  StoreSectionSubjectRequest  true  "Assignment"
// @Success      201 {object} Response
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /section-subjects [post]
func StoreSectionSubject(c *gin.Context) {
	var req StoreSectionSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := checkSectionSubjectRefs(c, req.SectionID, req.SubjectID, req.FacultyID); err != nil {
		respondError(c, err)
		return
	}

	taken, err := db.SectionSubjectComboExists(db.DB.WithContext(ctx), req.SectionID, req.SubjectID, req.FacultyID, 0)
	if err != nil {
		respondError(c, err)
		return
	}
	if taken {
		respondError(c, &validation.DuplicateCombinationError{Field: "subject_id"})
		return
	}

	row := models.SectionSubject{SectionID: req.SectionID, SubjectID: req.SubjectID, FacultyID: req.FacultyID}
	if err := db.DB.WithContext(ctx).Create(&row).Error; err != nil {
		respondError(c, err)
		return
	}
	db.DB.WithContext(ctx).Preload("Section").Preload("Subject").Preload("Faculty").First(&row, row.ID)
	respondData(c, http.StatusCreated, row)
}

func checkSectionSubjectRefs(c *gin.Context, sectionID, subjectID, facultyID uint) error {
	ctx := c.Request.Context()
	var section models.Section
	if err := db.DB.WithContext(ctx).First(&section, sectionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &validation.ReferenceNotFoundError{Field: "section_id"}
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
	// Only FACULTY users may be assigned as faculty.
	if _, err := db.UserByID(ctx, facultyID, models.RoleFaculty); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &validation.ReferenceNotFoundError{Field: "faculty_id"}
		}
		return err
	}
	return nil
}

func ShowSectionSubject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var row models.SectionSubject
	if err := db.DB.WithContext(c.Request.Context()).
		Preload("Section").Preload("Subject").Preload("Faculty").
		First(&row, id).Error; err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, row)
}

func UpdateSectionSubject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdateSectionSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	var row models.SectionSubject
	if err := db.DB.WithContext(ctx).First(&row, id).Error; err != nil {
		respondError(c, err)
		return
	}

	// Effective tuple after the patch.
	if req.SectionID != nil {
		row.SectionID = *req.SectionID
	}
	if req.SubjectID != nil {
		row.SubjectID = *req.SubjectID
	}
	if req.FacultyID != nil {
		row.FacultyID = *req.FacultyID
	}

	if err := checkSectionSubjectRefs(c, row.SectionID, row.SubjectID, row.FacultyID); err != nil {
		respondError(c, err)
		return
	}
	taken, err := db.SectionSubjectComboExists(db.DB.WithContext(ctx), row.SectionID, row.SubjectID, row.FacultyID, row.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	if taken {
		respondError(c, &validation.DuplicateCombinationError{Field: "subject_id"})
		return
	}

	if err := db.DB.WithContext(ctx).Save(&row).Error; err != nil {
		respondError(c, err)
		return
	}
	db.DB.WithContext(ctx).Preload("Section").Preload("Subject").Preload("Faculty").First(&row, row.ID)
	respondData(c, http.StatusOK, row)
}

func DeleteSectionSubject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	res := db.DB.WithContext(c.Request.Context()).Delete(&models.SectionSubject{}, id)
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

type StoreSectionSubjectStudentRequest struct {
	SectionSubjectID uint `json:"section_subject_id" binding:"required"`
	StudentID        uint `json:"student_id" binding:"required"`
}

func IndexSectionSubjectStudents(c *gin.Context) {
	var rows []models.SectionSubjectStudent
	tx := db.DB.WithContext(c.Request.Context()).Preload("Student")
	if ssID := c.Query("section_subject_id"); ssID != "" {
		tx = tx.Where("section_subject_id = ?", ssID)
	}
	if err := tx.Order("id").Find(&rows).Error; err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, rows)
}

func StoreSectionSubjectStudent(c *gin.Context) {
	var req StoreSectionSubjectStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	var parent models.SectionSubject
	if err := db.DB.WithContext(ctx).First(&parent, req.SectionSubjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, &validation.ReferenceNotFoundError{Field: "section_subject_id"})
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

	taken, err := db.SectionSubjectStudentExists(db.DB.WithContext(ctx), req.SectionSubjectID, req.StudentID, 0)
	if err != nil {
		respondError(c, err)
		return
	}
	if taken {
		respondError(c, &validation.DuplicateCombinationError{Field: "student_id"})
		return
	}

	row := models.SectionSubjectStudent{SectionSubjectID: req.SectionSubjectID, StudentID: req.StudentID}
	if err := db.DB.WithContext(ctx).Create(&row).Error; err != nil {
		respondError(c, err)
		return
	}
	db.DB.WithContext(ctx).Preload("Student").First(&row, row.ID)
	respondData(c, http.StatusCreated, row)
}

func DeleteSectionSubjectStudent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	res := db.DB.WithContext(c.Request.Context()).Delete(&models.SectionSubjectStudent{}, id)
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
