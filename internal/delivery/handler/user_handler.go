package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"notes-service/internal/application/command"
	"notes-service/internal/application/interfaces"
	"notes-service/internal/application/mapper"
	"notes-service/internal/delivery/middleware"
	"notes-service/internal/domain"
)

type UserHandler struct {
	userService interfaces.UserService
}

func NewUserHandler(userService interfaces.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Register(c echo.Context) error {
	var req command.CreateUserCommand
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.userService.CreateUser(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return sendJSONResponse(c, http.StatusOK, res.Result)
}

func (h *UserHandler) Login(c echo.Context) error {
	var req command.LoginUserCommand
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.userService.LoginUser(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return sendJSONResponse(c, http.StatusOK, res)
}

func (h *UserHandler) Me(c echo.Context) error {
	user, ok := middleware.UserFrom(c)
	if !ok {
		return domain.ErrUnauthorized
	}
	return sendJSONResponse(c, http.StatusOK, mapper.NewUserResultFromEntity(user))
}

func (h *UserHandler) ListUsers(c echo.Context) error {
	res, err := h.userService.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return sendJSONResponse(c, http.StatusOK, res.Result)
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return fmt.Errorf("%w: malformed request body", domain.ErrInvalidInput)
	}
	return c.Validate(req)
}
