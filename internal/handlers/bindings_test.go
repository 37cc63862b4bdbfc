package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/lucassmelendez/ct-backend/internal/database/testutil"
	"github.com/lucassmelendez/ct-backend/internal/middleware"
	"github.com/lucassmelendez/ct-backend/internal/models"
	"github.com/lucassmelendez/ct-backend/internal/services"
)

func newBindingTestEnv(t *testing.T) (*gin.Engine, *gorm.DB, *uint) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.MustOpenTestDB(t, testutil.WithSeedData())
	svc, err := services.NewBindingService(db)
	require.NoError(t, err)

	handler := NewBindingHandler(svc)

	var currentUser uint
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if currentUser != 0 {
			c.Set(middleware.CtxUserIDKey, currentUser)
		}
		c.Next()
	})

	vincular := r.Group("/api/vincular")
	vincular.POST("/generar", handler.Generate)
	vincular.POST("/verificar", handler.Redeem)
	vincular.GET("/finca/:idFinca", handler.ListActive)
	vincular.DELETE("/codigo/:codigo/finca/:idFinca", handler.Revoke)

	return r, db, &currentUser
}

func seedBindingHTTPFixtures(t *testing.T, db *gorm.DB) (models.Farm, models.User) {
	t.Helper()

	farm := models.Farm{Name: "HTTP Farm"}
	require.NoError(t, db.Create(&farm).Error)

	credential := models.Credential{Email: "http@example.com", Password: "hashed"}
	require.NoError(t, db.Create(&credential).Error)

	user := models.User{
		FirstName: "Gabriel",
		LastName:  "Mora",
		AuthID:    credential.ID,
		RoleID:    models.RoleWorker,
		PremiumID: models.PremiumFree,
	}
	require.NoError(t, db.Create(&user).Error)

	return farm, user
}

func postJSON(r *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBindingGenerateAndRedeemFlow(t *testing.T) {
	r, db, currentUser := newBindingTestEnv(t)
	farm, user := seedBindingHTTPFixtures(t, db)
	*currentUser = user.ID

	w := postJSON(r, "/api/vincular/generar", gin.H{
		"idFinca":         farm.ID,
		"tipo":            "trabajador",
		"duracionMinutos": 15,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var generated struct {
		Success bool `json:"success"`
		Data    struct {
			Code      string `json:"codigo"`
			FarmID    uint   `json:"idFinca"`
			Kind      string `json:"tipo"`
			ExpiresAt string `json:"expiraEn"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &generated))
	require.True(t, generated.Success)
	require.Len(t, generated.Data.Code, 6)
	require.Equal(t, farm.ID, generated.Data.FarmID)
	require.Equal(t, "trabajador", generated.Data.Kind)
	require.NotEmpty(t, generated.Data.ExpiresAt)

	w = postJSON(r, "/api/vincular/verificar", gin.H{"codigo": generated.Data.Code})
	require.Equal(t, http.StatusOK, w.Code)

	var redeemed struct {
		Success bool `json:"success"`
		Data    struct {
			UserID     uint   `json:"idUsuario"`
			FarmID     uint   `json:"idFinca"`
			Kind       string `json:"tipo"`
			Membership struct {
				FarmID uint `json:"id_finca"`
				UserID uint `json:"id_usuario"`
			} `json:"vinculacion"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &redeemed))
	require.True(t, redeemed.Success)
	require.Equal(t, farm.ID, redeemed.Data.FarmID)
	require.Equal(t, user.ID, redeemed.Data.UserID)
	require.Equal(t, "trabajador", redeemed.Data.Kind)
	require.Equal(t, farm.ID, redeemed.Data.Membership.FarmID)

	// Redeeming the consumed code reports 404.
	w = postJSON(r, "/api/vincular/verificar", gin.H{"codigo": generated.Data.Code})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestBindingRedeemRoleMismatchReturns403(t *testing.T) {
	r, db, currentUser := newBindingTestEnv(t)
	farm, user := seedBindingHTTPFixtures(t, db)
	*currentUser = user.ID

	w := postJSON(r, "/api/vincular/generar", gin.H{
		"idFinca": farm.ID,
		"tipo":    "veterinario",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var generated struct {
		Data struct {
			Code string `json:"codigo"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &generated))

	w = postJSON(r, "/api/vincular/verificar", gin.H{"codigo": generated.Data.Code})
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestBindingGenerateValidation(t *testing.T) {
	r, db, currentUser := newBindingTestEnv(t)
	_, user := seedBindingHTTPFixtures(t, db)
	*currentUser = user.ID

	// Unknown kind.
	w := postJSON(r, "/api/vincular/generar", gin.H{"idFinca": 1, "tipo": "gerente"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Missing farm.
	w = postJSON(r, "/api/vincular/generar", gin.H{"tipo": "trabajador"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBindingListActiveAndRevoke(t *testing.T) {
	r, db, currentUser := newBindingTestEnv(t)
	farm, user := seedBindingHTTPFixtures(t, db)
	*currentUser = user.ID

	w := postJSON(r, "/api/vincular/generar", gin.H{"idFinca": farm.ID, "tipo": "trabajador"})
	require.Equal(t, http.StatusCreated, w.Code)

	var generated struct {
		Data struct {
			Code string `json:"codigo"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &generated))

	listReq := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/vincular/finca/%d", farm.ID), nil)
	listResp := httptest.NewRecorder()
	r.ServeHTTP(listResp, listReq)
	require.Equal(t, http.StatusOK, listResp.Code)

	var listing struct {
		Data struct {
			Codes []struct {
				Code string `json:"codigo"`
			} `json:"codigos"`
			Total int `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(listResp.Body.Bytes(), &listing))
	require.Equal(t, 1, listing.Data.Total)
	require.Equal(t, generated.Data.Code, listing.Data.Codes[0].Code)

	deletePath := fmt.Sprintf("/api/vincular/codigo/%s/finca/%d", generated.Data.Code, farm.ID)
	deleteResp := httptest.NewRecorder()
	r.ServeHTTP(deleteResp, httptest.NewRequest(http.MethodDelete, deletePath, nil))
	require.Equal(t, http.StatusOK, deleteResp.Code)

	// The revoked code no longer appears.
	listResp = httptest.NewRecorder()
	r.ServeHTTP(listResp, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/vincular/finca/%d", farm.ID), nil))
	require.NoError(t, json.Unmarshal(listResp.Body.Bytes(), &listing))
	require.Equal(t, 0, listing.Data.Total)
}
