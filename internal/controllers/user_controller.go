package controllers

import (
	"net/http"
	"time"

	"github.com/franciscosanchezn/gin-cardapio-api/internal/models"
	"github.com/franciscosanchezn/gin-cardapio-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// UserController handles account registration, login and management
type UserController struct {
	userService services.UserService
	jwtSecret   []byte
	adminCode   string
}

// NewUserController creates a new instance of UserController
func NewUserController(userService services.UserService, jwtSecret, adminCode string) *UserController {
	return &UserController{
		userService: userService,
		jwtSecret:   []byte(jwtSecret),
		adminCode:   adminCode,
	}
}

type registerRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	Role      string `json:"role"`
	AdminCode string `json:"admin_code"`
}

type loginRequest struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type updateProfileRequest struct {
	Name            *string `json:"name"`
	Email           *string `json:"email"`
	Role            *string `json:"role"`
	CurrentPassword string  `json:"current_password"`
	NewPassword     string  `json:"new_password"`
}

type deleteAccountRequest struct {
	Password string `json:"password" binding:"required"`
}

// Register godoc
// @Summary Register an account
// @Description Create a customer or admin account. Duplicate name or email is a conflict.
// @Tags auth
// @Accept json
// @Produce json
// @Param user body registerRequest true "Registration"
// @Success 201 {object} map[string]string
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /api/v1/auth/register [post]
func (uc *UserController) Register(ctx *gin.Context) {
	var req registerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body", "detail": err.Error()})
		return
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	}
	if err := uc.userService.Register(&user, req.AdminCode, uc.adminCode); err != nil {
		respondError(ctx, "Failed to register user", err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"message": user.Role + " registered"})
}

// Login godoc
// @Summary Log in
// @Description Verify credentials and issue a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body loginRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} models.ErrorResponse
// @Router /api/v1/auth/login [post]
func (uc *UserController) Login(ctx *gin.Context) {
	var req loginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body", "detail": err.Error()})
		return
	}

	user, err := uc.userService.Authenticate(req.Name, req.Password)
	if err != nil {
		respondError(ctx, "Failed to log in", err)
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user": user.ID,
		"role": user.Role,
		"exp":  time.Now().Add(time.Hour * 24).Unix(),
		"iat":  time.Now().Unix(),
	})
	tokenString, err := token.SignedString(uc.jwtSecret)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Token generation failed", "detail": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"access_token": tokenString,
		"token_type":   "Bearer",
		"expires_in":   86400,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// ListUsers godoc
// @Summary List accounts
// @Tags users
// @Produce json
// @Success 200 {array} models.User
// @Security BearerAuth
// @Router /api/v1/protected/admin/users [get]
func (uc *UserController) ListUsers(ctx *gin.Context) {
	users, err := uc.userService.ListUsers()
	if err != nil {
		respondError(ctx, "Failed to list users", err)
		return
	}
	ctx.JSON(http.StatusOK, users)
}

// GetUserByID godoc
// @Summary Get an account by ID
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/protected/admin/users/{id} [get]
func (uc *UserController) GetUserByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	user, err := uc.userService.GetUserByID(id)
	if err != nil {
		respondError(ctx, "Failed to retrieve user", err)
		return
	}
	ctx.JSON(http.StatusOK, user)
}

// UpdateProfile godoc
// @Summary Update account details
// @Description Sparse update of name, email and role. Changing the password requires the current one.
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param update body updateProfileRequest true "Fields to update"
// @Success 200 {object} map[string]string
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/protected/users/{id} [put]
func (uc *UserController) UpdateProfile(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req updateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body", "detail": err.Error()})
		return
	}

	update := services.UserProfileUpdate{
		Name:            req.Name,
		Email:           req.Email,
		Role:            req.Role,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	}
	if err := uc.userService.UpdateProfile(id, update); err != nil {
		respondError(ctx, "Failed to update account", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Account updated"})
}

// DeleteAccount godoc
// @Summary Delete an account
// @Description Remove the account and, in order, its order items and orders. Requires the account password.
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param confirmation body deleteAccountRequest true "Password confirmation"
// @Success 200 {object} map[string]string
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/protected/users/{id} [delete]
func (uc *UserController) DeleteAccount(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req deleteAccountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Password is required to delete the account"})
		return
	}

	if err := uc.userService.Delete(id, req.Password); err != nil {
		respondError(ctx, "Failed to delete account", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}
