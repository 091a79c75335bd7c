package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/assettracker/admin-console/internal/api/metrics"
	"github.com/assettracker/admin-console/internal/core/domain"
	"github.com/assettracker/admin-console/internal/core/ports"
)

// UserHandler handles HTTP requests for user administration.
type UserHandler struct {
	service ports.UserAdminService
}

func NewUserHandler(service ports.UserAdminService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /v1/users.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  listUsersResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	users, err := h.service.ListUsers(c.Request().Context(), principal)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListUsersResponse(users))
}

// Create handles POST /v1/users.
//
// @Summary      Create a user account
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      createUserRequest  true  "New account details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	user, err := h.service.CreateUser(c.Request().Context(), principal, ports.CreateUserInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
	})
	if err != nil {
		return userError(c, err)
	}

	role := "none"
	if len(user.Roles) > 0 {
		role = user.Roles[0]
	}
	metrics.UsersCreatedTotal.WithLabelValues(role).Inc()

	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// Update handles PUT /v1/users/:id.
//
// @Summary      Update a user account
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      int                true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	user, err := h.service.UpdateUser(c.Request().Context(), principal, id, ports.UpdateUserInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Active:    req.Active,
		Role:      req.Role,
	})
	if err != nil {
		return userError(c, err)
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Deactivate handles POST /v1/users/:id/deactivate.
//
// @Summary      Deactivate a user account
// @Tags         users
// @Produce      json
// @Security     CookieAuth
// @Param        id  path      int  true  "User id"
// @Success      200 {object}  map[string]string
// @Failure      404 {object}  errorResponse
// @Router       /v1/users/{id}/deactivate [post]
func (h *UserHandler) Deactivate(c echo.Context) error {
	return h.setActive(c, false)
}

// Reactivate handles POST /v1/users/:id/reactivate.
//
// @Summary      Reactivate a user account
// @Tags         users
// @Produce      json
// @Security     CookieAuth
// @Param        id  path      int  true  "User id"
// @Success      200 {object}  map[string]string
// @Failure      404 {object}  errorResponse
// @Router       /v1/users/{id}/reactivate [post]
func (h *UserHandler) Reactivate(c echo.Context) error {
	return h.setActive(c, true)
}

func (h *UserHandler) setActive(c echo.Context, active bool) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	if active {
		err = h.service.Reactivate(c.Request().Context(), principal, id)
	} else {
		err = h.service.Deactivate(c.Request().Context(), principal, id)
	}
	if err != nil {
		return userError(c, err)
	}

	status := "deactivated"
	if active {
		status = "reactivated"
	}
	return c.JSON(http.StatusOK, map[string]string{"status": status})
}

// Roles handles GET /v1/roles — the role choices for the edit form.
//
// @Summary      List assignable roles
// @Tags         users
// @Produce      json
// @Security     CookieAuth
// @Success      200  {array}  roleResponse
// @Router       /v1/roles [get]
func (h *UserHandler) Roles(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	roles, err := h.service.ListRoles(c.Request().Context(), principal)
	if err != nil {
		return err
	}

	items := make([]roleResponse, 0, len(roles))
	for _, r := range roles {
		items = append(items, roleResponse{Name: r.Name, Permissions: r.Permissions})
	}
	return c.JSON(http.StatusOK, items)
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	return id, nil
}

// userError maps service failures to deterministic status codes; anything
// unrecognised bubbles up to the central error handler.
func userError(c echo.Context, err error) error {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: ve.Error()})
	case errors.Is(err, domain.ErrUserExists):
		return c.JSON(http.StatusConflict, errorResponse{Error: "user already exists"})
	case errors.Is(err, domain.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "user not found"})
	default:
		return err
	}
}
