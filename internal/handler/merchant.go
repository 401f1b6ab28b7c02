package handler

import (
	"net/http"
	"strings"

	"merchant-pulse/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// GetMe returns the authenticated merchant's profile.
func GetMe(c *gin.Context) {
	merchant, ok := currentMerchant(c)
	if !ok {
		return
	}

	util.Success(c, util.Response{
		"merchant": gin.H{
			"id":            merchant.ID,
			"username":      merchant.Username,
			"business_name": merchant.BusinessName,
			"merchant_code": merchant.MerchantCode,
			"tier":          merchant.Tier,
			"created_at":    merchant.CreatedAt,
			"last_login_at": merchant.LastLoginAt,
		},
	})
}

type updateProfileReq struct {
	BusinessName string `json:"business_name" binding:"required,max=128"`
}

// UpdateProfile changes the merchant's business name.
func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		merchant, ok := currentMerchant(c)
		if !ok {
			return
		}

		var req updateProfileReq
		if err := c.ShouldBindJSON(&req); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
			return
		}

		req.BusinessName = strings.TrimSpace(req.BusinessName)
		if req.BusinessName == "" {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "business name cannot be empty")
			return
		}

		if err := db.Model(merchant).Update("business_name", req.BusinessName).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to update profile")
			return
		}

		merchant.BusinessName = req.BusinessName

		util.Success(c, util.Response{
			"merchant": merchantView(merchant),
		})
	}
}

type changePasswordReq struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ChangePassword verifies the old password and stores a new hash.
func ChangePassword(db *gorm.DB, bcryptCost int) gin.HandlerFunc {
	return func(c *gin.Context) {
		merchant, ok := currentMerchant(c)
		if !ok {
			return
		}

		var req changePasswordReq
		if err := c.ShouldBindJSON(&req); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(merchant.PasswordHash), []byte(req.OldPassword)); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "old password is incorrect")
			return
		}

		if !isStrongPassword(req.NewPassword) {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "password must be 8-32 characters with upper, lower and digit")
			return
		}

		if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
			bcryptCost = bcrypt.DefaultCost
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
		if err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to hash password")
			return
		}

		if err := db.Model(merchant).Update("password_hash", string(hash)).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to update password")
			return
		}

		util.Success(c, util.Response{
			"message": "password changed, please log in again with the new password",
		})
	}
}
