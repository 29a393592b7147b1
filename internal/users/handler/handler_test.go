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

	"rubrica/internal/listing"
	"rubrica/internal/users/handler/mocks"
	"rubrica/internal/users/models"
	"rubrica/internal/users/service"
	dErrors "rubrica/pkg/domain-errors"
)

type HandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  http.Handler
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.service = mocks.NewMockService(gomock.NewController(s.T()))
	r := chi.NewRouter()
	New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(r)
	s.router = r
}

func (s *HandlerSuite) do(method, target, body string) *httptest.ResponseRecorder {
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) TestListNeverSerializesPassword() {
	s.service.EXPECT().List(gomock.Any(), gomock.Any()).Return(&listing.Page[models.User]{
		Data:  []models.User{{ID: 1, Username: "admin", PasswordHash: "$2a$10$secret", RoleID: 1, RoleName: "admin"}},
		Total: 1,
	}, nil)

	rec := s.do(http.MethodGet, "/users/", "")

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"data":[{"id":1,"username":"admin","role_id":1,"role_name":"admin"}],"total":1}`, rec.Body.String())
}

func (s *HandlerSuite) TestCreate() {
	s.Run("trims username and returns 201", func() {
		s.service.EXPECT().
			Create(gomock.Any(), service.CreateInput{Username: "anna", Password: "s3cret", RoleID: 2}).
			Return(&models.User{ID: 2, Username: "anna", RoleID: 2, RoleName: "user"}, nil)

		rec := s.do(http.MethodPost, "/users/", `{"username":" anna ","password":"s3cret","role_id":2}`)

		s.Equal(http.StatusCreated, rec.Code)
		s.NotContains(rec.Body.String(), "s3cret")
	})

	s.Run("missing password", func() {
		rec := s.do(http.MethodPost, "/users/", `{"username":"anna","role_id":2}`)
		s.Equal(http.StatusBadRequest, rec.Code)
		s.Contains(rec.Body.String(), "validation_failed")
	})

	s.Run("duplicate username is 409", func() {
		s.service.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeConflict, "username already taken"))

		rec := s.do(http.MethodPost, "/users/", `{"username":"admin","password":"s3cret","role_id":1}`)

		s.Equal(http.StatusConflict, rec.Code)
	})
}

func (s *HandlerSuite) TestUpdatePasswordOptional() {
	s.service.EXPECT().
		Update(gomock.Any(), int64(4), service.UpdateInput{Username: "anna", RoleID: 1}).
		Return(&models.User{ID: 4, Username: "anna", RoleID: 1, RoleName: "admin"}, nil)

	rec := s.do(http.MethodPut, "/users/4", `{"username":"anna","role_id":1}`)

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"role_name":"admin"`)
}

func (s *HandlerSuite) TestUpdateRejectsShortPassword() {
	rec := s.do(http.MethodPut, "/users/4", `{"username":"anna","password":"ab","role_id":1}`)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestDelete() {
	s.service.EXPECT().Delete(gomock.Any(), int64(9)).Return(nil)

	rec := s.do(http.MethodDelete, "/users/9", "")

	s.Equal(http.StatusNoContent, rec.Code)
}

func (s *HandlerSuite) TestListRoles() {
	s.service.EXPECT().ListRoles(gomock.Any()).Return(models.DefaultRoles(), nil)

	rec := s.do(http.MethodGet, "/roles", "")

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"data":[{"id":1,"name":"admin"},{"id":2,"name":"user"}]}`, rec.Body.String())
}
