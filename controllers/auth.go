package controllers

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/ckoohin/tourify/db"
	"github.com/ckoohin/tourify/models"
	"github.com/ckoohin/tourify/redis"
	"github.com/ckoohin/tourify/utils"
)

const (
	accessTokenTTL  = time.Hour * 24
	refreshTokenTTL = time.Hour * 24 * 7
)

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "solid_secret_key" // Replace with secure key in production
	}
	return []byte(secret)
}

// Register creates a staff user. New users default to the ops-agent role
// unless an explicit role id is given.
func Register(c *fiber.Ctx) error {
	type RegisterInput struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		RoleID   uint   `json:"role_id"`
	}

	input := new(RegisterInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	if input.Email == "" || input.Password == "" || input.Name == "" {
		return utils.Error(c, fiber.StatusBadRequest, "Name, email and password are required")
	}

	var existingUser models.User
	if db.DB.Where("email = ?", input.Email).First(&existingUser).RowsAffected > 0 {
		return utils.Error(c, fiber.StatusConflict, "User with this email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	var role models.Role
	if input.RoleID != 0 {
		if err := db.DB.First(&role, input.RoleID).Error; err != nil {
			return utils.Error(c, fiber.StatusNotFound, "Role not found")
		}
	} else {
		if err := db.DB.Where("name = ?", "ops-agent").First(&role).Error; err != nil {
			log.Printf("Error finding default role: %v", err)
			return utils.Error(c, fiber.StatusInternalServerError, "Failed to assign default role. Role 'ops-agent' not found.")
		}
	}

	user := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashedPassword),
		RoleID:   role.ID,
		Role:     role,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		log.Printf("Error creating user: %v", err)
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	user.Password = ""
	return utils.Success(c, fiber.StatusCreated, "User registered successfully", user)
}

// Login authenticates a user and issues the access/refresh token pair. The
// refresh token is kept in Redis so logout can actually revoke it.
func Login(c *fiber.Ctx) error {
	type LoginInput struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	input := new(LoginInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	var user models.User
	if db.DB.Where("email = ?", input.Email).First(&user).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return utils.Error(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	role := models.Role{}
	if err := db.DB.First(&role, user.RoleID).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to fetch role")
	}

	claims := jwt.MapClaims{
		"id":      user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(accessTokenTTL).Unix(),
		"role":    role.Name,
		"role_id": user.RoleID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtSecret())
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to generate token")
	}

	refreshClaims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"exp":   time.Now().Add(refreshTokenTTL).Unix(),
	}
	refreshToken := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims)
	refreshTokenString, err := refreshToken.SignedString(jwtSecret())
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to generate refresh token")
	}

	if err := redis.Client.Set(redis.Ctx,
		fmt.Sprintf("refresh:%d", user.ID), refreshTokenString, refreshTokenTTL).Err(); err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to store refresh token")
	}

	return utils.Success(c, fiber.StatusOK, "Logged in successfully", fiber.Map{
		"token":        tokenString,
		"refreshToken": refreshTokenString,
		"user": fiber.Map{
			"id":      user.ID,
			"name":    user.Name,
			"email":   user.Email,
			"role":    role.Name,
			"role_id": role.ID,
		},
	})
}

// RefreshToken exchanges a valid refresh token for a new access token. The
// presented token must match the copy stored at login, so a logged-out or
// rotated token is rejected even before its JWT expiry.
func RefreshToken(c *fiber.Ctx) error {
	type RefreshRequest struct {
		RefreshToken string `json:"refreshToken"`
	}

	req := new(RefreshRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	token, err := jwt.Parse(req.RefreshToken, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return utils.Error(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}

	claims := token.Claims.(jwt.MapClaims)
	userID := uint(claims["id"].(float64))

	stored, err := redis.Client.Get(redis.Ctx, fmt.Sprintf("refresh:%d", userID)).Result()
	if err != nil || stored != req.RefreshToken {
		return utils.Error(c, fiber.StatusUnauthorized, "Refresh token revoked or expired")
	}

	var user models.User
	if err := db.DB.Preload("Role").First(&user, userID).Error; err != nil {
		return utils.Error(c, fiber.StatusUnauthorized, "User not found")
	}

	newClaims := jwt.MapClaims{
		"id":      user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(accessTokenTTL).Unix(),
		"role":    user.Role.Name,
		"role_id": user.RoleID,
	}
	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, newClaims)
	tokenString, err := newToken.SignedString(jwtSecret())
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to generate token")
	}

	return utils.Success(c, fiber.StatusOK, "Token refreshed successfully", fiber.Map{
		"token": tokenString,
	})
}

// GetUserProfile returns the current user's profile with role and permissions
func GetUserProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return utils.Error(c, fiber.StatusUnauthorized, "User ID not found in context")
	}

	var user models.User
	if err := db.DB.Preload("Role.Permissions").First(&user, userID).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "User not found")
	}

	user.Password = ""
	return utils.Success(c, fiber.StatusOK, "Profile fetched successfully", user)
}

// Logout blacklists the presented access token for its remaining lifetime
// and drops the stored refresh token.
func Logout(c *fiber.Ctx) error {
	userToken, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return utils.Error(c, fiber.StatusUnauthorized, "No authentication token")
	}

	claims := userToken.Claims.(jwt.MapClaims)
	userID := uint(claims["id"].(float64))

	ttl := accessTokenTTL
	if exp, ok := claims["exp"].(float64); ok {
		if remaining := time.Until(time.Unix(int64(exp), 0)); remaining > 0 {
			ttl = remaining
		}
	}
	if err := redis.Client.Set(redis.Ctx, "blacklist:"+userToken.Raw, "1", ttl).Err(); err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to revoke token")
	}
	redis.Client.Del(redis.Ctx, fmt.Sprintf("refresh:%d", userID))

	return utils.Success(c, fiber.StatusOK, "Successfully logged out", nil)
}
