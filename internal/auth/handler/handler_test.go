package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"rubrica/internal/auth/handler/mocks"
	"rubrica/internal/auth/models"
	dErrors "rubrica/pkg/domain-errors"
	"rubrica/pkg/requestcontext"
)

type HandlerSuite struct {
	suite.Suite
	auth   *mocks.MockService
	router chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.auth = mocks.NewMockService(gomock.NewController(s.T()))
	h := New(s.auth, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	h.Register(r)
	h.RegisterProtected(r)
	s.router = r
}

func (s *HandlerSuite) login(body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) TestLoginSuccess() {
	s.auth.EXPECT().
		Login(gomock.Any(), &models.LoginRequest{Username: "admin", Password: "admin"}).
		Return(&models.LoginResponse{Token: "tok"}, nil)

	rec := s.login(`{"username":" admin","password":"admin"}`)

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"token":"tok"}`, rec.Body.String())
}

func (s *HandlerSuite) TestLoginMissingCredentialsSkipsService() {
	for _, body := range []string{`{}`, `{"username":"admin"}`, `{"password":"x"}`, `{"username":"  ","password":"x"}`} {
		rec := s.login(body)
		s.Equal(http.StatusBadRequest, rec.Code, body)
		s.Contains(rec.Body.String(), "missing_credentials", body)
	}
}

func (s *HandlerSuite) TestLoginInvalidCredentials() {
	s.auth.EXPECT().Login(gomock.Any(), gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodeInvalidCredentials, "invalid credentials"))

	rec := s.login(`{"username":"admin","password":"wrong"}`)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "invalid_credentials")
	s.NotContains(rec.Body.String(), "token\"")
}

func (s *HandlerSuite) TestLoginMalformedBody() {
	rec := s.login(`not json`)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "bad_request")
}

func (s *HandlerSuite) TestMeEchoesPrincipal() {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req = req.WithContext(requestcontext.WithPrincipal(req.Context(), requestcontext.Principal{UserID: 3, Username: "anna", RoleID: 2}))
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"user_id":3,"username":"anna","role_id":2}`, rec.Body.String())
}

func (s *HandlerSuite) TestMeWithoutPrincipal() {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))
	s.Equal(http.StatusUnauthorized, rec.Code)
}
