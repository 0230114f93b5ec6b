package handler

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"callerid/internal/auth/models"
	"callerid/internal/auth/password"
	"callerid/internal/auth/service"
	"callerid/internal/identity/store"
	jwttoken "callerid/internal/jwt_token"
	authmw "callerid/pkg/platform/middleware/auth"
	"callerid/pkg/testutil"
)

func newAuthRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jwt := jwttoken.NewJWTService("test-key", "callerid-test")
	svc, err := service.New(store.NewInMemory(), jwt, service.WithHasher(password.NewHasher(bcrypt.MinCost)))
	require.NoError(t, err)
	h := New(svc, logger, 3600)

	r := chi.NewRouter()
	r.Route("/api/users", func(r chi.Router) {
		h.RegisterPublic(r)
		r.Group(func(r chi.Router) {
			r.Use(authmw.RequireAuth(jwttoken.NewJWTServiceAdapter(jwt), logger))
			h.RegisterProtected(r)
		})
	})
	return r
}

func TestRegisterLoginProfileFlow(t *testing.T) {
	router := newAuthRouter(t)

	rec := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/users/register", models.RegisterRequest{
		Name: "Ann", Phone: "+15551234567", Email: "ann@x.com", Password: "secret1",
	}))
	testutil.AssertStatus(t, rec, http.StatusCreated)
	assert.NotContains(t, rec.Body.String(), "secret1")
	assert.NotContains(t, rec.Body.String(), "$2a$")
	registered := testutil.UnmarshalResponse[models.UserResponse](t, rec)
	assert.Equal(t, "Ann", registered.Name)

	rec = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/users/register", models.RegisterRequest{
		Name: "Dup", Phone: "+15551234567", Password: "secret1",
	}))
	testutil.AssertStatusAndError(t, rec, http.StatusConflict, "conflict")

	rec = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/users/login", models.LoginRequest{
		Phone: "+15551234567", Password: "wrong",
	}))
	testutil.AssertStatusAndError(t, rec, http.StatusUnauthorized, "unauthorized")

	rec = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/users/login", models.LoginRequest{
		Phone: "+15550000000", Password: "secret1",
	}))
	testutil.AssertStatusAndError(t, rec, http.StatusNotFound, "not_found")

	rec = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/users/login", models.LoginRequest{
		Phone: "+15551234567", Password: "secret1",
	}))
	testutil.AssertStatusOK(t, rec)
	login := testutil.UnmarshalResponse[models.LoginResponse](t, rec)
	require.NotEmpty(t, login.Token)
	assert.Equal(t, 3600, login.ExpiresIn)

	req := testutil.NewRequest(t, http.MethodGet, "/api/users/profile")
	req.Header.Set("Authorization", "Bearer "+login.Token)
	rec = testutil.DoRequest(router, req)
	testutil.AssertStatusOK(t, rec)
	profile := testutil.UnmarshalResponse[models.UserResponse](t, rec)
	assert.Equal(t, registered.ID, profile.ID)
	assert.Equal(t, "ann@x.com", profile.Email)
}

func TestProfileRequiresToken(t *testing.T) {
	router := newAuthRouter(t)

	rec := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/api/users/profile"))
	testutil.AssertStatusAndError(t, rec, http.StatusUnauthorized, "unauthorized")

	req := testutil.NewRequest(t, http.MethodGet, "/api/users/profile")
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec = testutil.DoRequest(router, req)
	testutil.AssertStatusAndError(t, rec, http.StatusUnauthorized, "unauthorized")
}

func TestRegisterValidation(t *testing.T) {
	router := newAuthRouter(t)

	rec := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/users/register", models.RegisterRequest{
		Name: "Ann", Phone: "12", Password: "secret1",
	}))
	testutil.AssertStatusAndError(t, rec, http.StatusBadRequest, "validation_error")

	rec = testutil.DoRequest(router, testutil.NewRequestWithBody(t, http.MethodPost, "/api/users/register", "not json"))
	testutil.AssertStatusAndError(t, rec, http.StatusBadRequest, "bad_request")
}
