package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/luct-faculty/reporting-api/internal/models"
	"github.com/luct-faculty/reporting-api/internal/service"
	"github.com/luct-faculty/reporting-api/pkg/response"
)

type staticUserRepo struct {
	user *models.User
}

func (r *staticUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.user, nil
}

func (r *staticUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.user != nil && r.user.Username == username, nil
}

func (r *staticUserRepo) Create(ctx context.Context, user *models.User) error {
	return nil
}

func newTestAuthService(t *testing.T) (*service.AuthService, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("student123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	svc := service.NewAuthService(&staticUserRepo{user: &models.User{
		ID:           3,
		Username:     "student1",
		PasswordHash: string(hash),
		Role:         models.RoleStudent,
	}}, validator.New(), zap.NewNop(), service.AuthConfig{
		Secret:     "test-secret",
		Expiration: time.Hour,
		Issuer:     "reporting-api",
	})

	res, err := svc.Login(context.Background(), models.LoginRequest{Username: "student1", Password: "student123"})
	require.NoError(t, err)
	return svc, res.Token
}

func newRouter(svc *service.AuthService, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{Auth(svc)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		claims := c.MustGet(ContextUserKey).(*models.JWTClaims)
		response.JSON(c, http.StatusOK, gin.H{"user_id": claims.UserID, "role": claims.Role})
	})
	r.GET("/protected", handlers...)
	return r
}

func TestAuthMissingToken(t *testing.T) {
	svc, _ := newTestAuthService(t)
	router := newRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthInvalidToken(t *testing.T) {
	svc, _ := newTestAuthService(t)
	router := newRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AuthHeader, "not-a-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthValidTokenInjectsClaims(t *testing.T) {
	svc, token := newTestAuthService(t)
	router := newRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AuthHeader, token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":3`)
	assert.Contains(t, w.Body.String(), `"role":"student"`)
}

func TestRequireRolesRejectsWrongRole(t *testing.T) {
	svc, token := newTestAuthService(t)
	router := newRouter(svc, RequireRoles(models.RolePL, models.RolePRL))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AuthHeader, token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRolesAllowsListedRole(t *testing.T) {
	svc, token := newTestAuthService(t)
	router := newRouter(svc, RequireRoles(models.RoleStudent))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AuthHeader, token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRolesEmptyListAdmitsAnyAuthenticated(t *testing.T) {
	svc, token := newTestAuthService(t)
	router := newRouter(svc, RequireRoles())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AuthHeader, token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
