package handler

import (
	"net/http"
	"testing"
	"time"

	"merchant-pulse/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newAuthRouter(db *gorm.DB) (*gin.Engine, *AuthHandler) {
	h := NewAuthHandler(db, "test-secret", "merchant-pulse-test", 24, bcrypt.MinCost)
	r := gin.New()
	r.POST("/api/auth/register", h.Register)
	r.POST("/api/auth/login", h.Login)
	return r, h
}

func TestRegister(t *testing.T) {
	db := newTestDB(t)
	r, _ := newAuthRouter(db)

	w := doJSON(r, http.MethodPost, "/api/auth/register", gin.H{
		"username":         "newshop",
		"password":         "Sup3rSecret",
		"confirm_password": "Sup3rSecret",
		"business_name":    "New Shop",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var merchant models.Merchant
	require.NoError(t, db.Where("username = ?", "newshop").First(&merchant).Error)
	require.Equal(t, "New Shop", merchant.BusinessName)
	require.NotEmpty(t, merchant.MerchantCode)
	require.Equal(t, models.TierBasic, merchant.Tier)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(merchant.PasswordHash), []byte("Sup3rSecret")))
}

func TestRegisterValidation(t *testing.T) {
	db := newTestDB(t)
	r, _ := newAuthRouter(db)

	tests := []struct {
		name string
		body gin.H
	}{
		{"short username", gin.H{"username": "ab", "password": "Sup3rSecret", "confirm_password": "Sup3rSecret"}},
		{"bad characters", gin.H{"username": "bad name!", "password": "Sup3rSecret", "confirm_password": "Sup3rSecret"}},
		{"weak password", gin.H{"username": "goodname", "password": "alllower", "confirm_password": "alllower"}},
		{"mismatch", gin.H{"username": "goodname", "password": "Sup3rSecret", "confirm_password": "Different1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, "/api/auth/register", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	r, _ := newAuthRouter(db)

	body := gin.H{"username": "TakenName", "password": "Sup3rSecret", "confirm_password": "Sup3rSecret"}
	w := doJSON(r, http.MethodPost, "/api/auth/register", body)
	require.Equal(t, http.StatusOK, w.Code)

	// case-insensitive collision
	body["username"] = "takenname"
	w = doJSON(r, http.MethodPost, "/api/auth/register", body)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	r, _ := newAuthRouter(db)

	reg := gin.H{"username": "shopper", "password": "Sup3rSecret", "confirm_password": "Sup3rSecret"}
	w := doJSON(r, http.MethodPost, "/api/auth/register", reg)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/api/auth/login", gin.H{"username": "shopper", "password": "Sup3rSecret"})
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	require.NotEmpty(t, env.Data["token"])

	// wrong password
	w = doJSON(r, http.MethodPost, "/api/auth/login", gin.H{"username": "shopper", "password": "wrongpass"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// unknown user gets the same response as a bad password
	w = doJSON(r, http.MethodPost, "/api/auth/login", gin.H{"username": "ghost", "password": "Sup3rSecret"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginLockout(t *testing.T) {
	db := newTestDB(t)
	r, _ := newAuthRouter(db)

	reg := gin.H{"username": "locked", "password": "Sup3rSecret", "confirm_password": "Sup3rSecret"}
	w := doJSON(r, http.MethodPost, "/api/auth/register", reg)
	require.Equal(t, http.StatusOK, w.Code)

	for i := 0; i < maxFailedLogins; i++ {
		w = doJSON(r, http.MethodPost, "/api/auth/login", gin.H{"username": "locked", "password": "wrongpass"})
		require.Equal(t, http.StatusUnauthorized, w.Code)
	}

	var merchant models.Merchant
	require.NoError(t, db.Where("username = ?", "locked").First(&merchant).Error)
	require.NotNil(t, merchant.LockedUntil)
	require.True(t, merchant.LockedUntil.After(time.Now()))

	// even the correct password is rejected while locked
	w = doJSON(r, http.MethodPost, "/api/auth/login", gin.H{"username": "locked", "password": "Sup3rSecret"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestIsStrongPassword(t *testing.T) {
	tests := []struct {
		pwd  string
		want bool
	}{
		{"Sup3rSecret", true},
		{"alllowercase1", false},
		{"ALLUPPERCASE1", false},
		{"NoDigitsHere", false},
		{"Sh0rt", false},
		{"", false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, isStrongPassword(tt.pwd), tt.pwd)
	}
}
