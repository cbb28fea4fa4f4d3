package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/accesshub/campus-back/internal/db"
	"github.com/accesshub/campus-back/internal/models"
	"github.com/accesshub/campus-back/internal/validation"
)

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.Status(http.StatusNotFound)
		return 0, false
	}
	return uint(id), true
}

type StoreUserRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Role      string `json:"role" binding:"required,oneof=ADMIN FACULTY STUDENT"`
}

type UpdateUserRequest struct {
	Email     *string `json:"email" binding:"omitempty,email"`
	Password  *string `json:"password" binding:"omitempty,min=8"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Role      *string `json:"role" binding:"omitempty,oneof=ADMIN FACULTY STUDENT"`
}

// IndexUsers godoc
// @Summary      List users
// @Tags         users
// @Produce      json
// @Param        role  query  string  false  "Filter by role"
// @Success      200 {object} Response
// @Security     BearerAuth
// @Router       /users [get]
func IndexUsers(c *gin.Context) {
	var users []models.User
	tx := db.DB.WithContext(c.Request.Context())
	if role := c.Query("role"); role != "" {
		tx = tx.Where("role = ?", role)
	}
	if err := tx.Order("id").Find(&users).Error; err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, users)
}

// StoreUser godoc
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  StoreUserRequest  true  "User"
// @Success      201 {object} Response
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /users [post]
func StoreUser(c *gin.Context) {
	var req StoreUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	if _, err := db.UserByEmail(ctx, req.Email); err == nil {
		respondError(c, &validation.DuplicateCombinationError{Field: "email"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, err)
		return
	}

	user := models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         req.Role,
	}
	if err := db.DB.WithContext(ctx).Create(&user).Error; err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, user)
}

func ShowUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var user models.User
	if err := db.DB.WithContext(c.Request.Context()).Preload("Credentials").First(&user, id).Error; err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, user)
}

func UpdateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	var user models.User
	if err := db.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		respondError(c, err)
		return
	}

	if req.Email != nil && *req.Email != user.Email {
		if _, err := db.UserByEmail(ctx, *req.Email); err == nil {
			respondError(c, &validation.DuplicateCombinationError{Field: "email"})
			return
		}
		user.Email = *req.Email
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			respondError(c, err)
			return
		}
		user.PasswordHash = string(hash)
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Role != nil {
		user.Role = *req.Role
	}

	if err := db.DB.WithContext(ctx).Save(&user).Error; err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, user)
}

func DeleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	res := db.DB.WithContext(c.Request.Context()).Delete(&models.User{}, id)
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

type StoreCredentialRequest struct {
	Type  string `json:"type" binding:"required,oneof=RFID FINGERPRINT"`
	Value string `json:"value" binding:"required"`
}

// StoreCredential enrolls an RFID card or fingerprint slot for a user.
func StoreCredential(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req StoreCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	if _, err := db.UserByID(ctx, id, ""); err != nil {
		respondError(c, err)
		return
	}
	if _, err := db.CredentialByValue(ctx, req.Type, req.Value); err == nil {
		respondError(c, &validation.DuplicateCombinationError{Field: "value"})
		return
	}

	cred := models.Credential{UserID: id, Type: req.Type, Value: req.Value}
	if err := db.DB.WithContext(ctx).Create(&cred).Error; err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, cred)
}

func DeleteCredential(c *gin.Context) {
	userID, ok := parseID(c)
	if !ok {
		return
	}
	credID, err := strconv.ParseUint(c.Param("credential_id"), 10, 32)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	res := db.DB.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).
		Delete(&models.Credential{}, uint(credID))
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
