package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/assettracker/admin-console/internal/core/domain"
	"github.com/assettracker/admin-console/internal/core/ports"
)

func adminPrincipal() *domain.Principal {
	return &domain.Principal{
		UserID:      1,
		Username:    "root",
		Roles:       []string{domain.RoleAdmin},
		Permissions: []string{domain.PermUsersRead, domain.PermUsersWrite, domain.PermAuditRead},
	}
}

func userRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	return req
}

func TestUserHandler_Create(t *testing.T) {
	now := time.Now().UTC()
	svc := &stubUserAdminService{
		createFn: func(_ context.Context, actor *domain.Principal, input ports.CreateUserInput) (*domain.User, error) {
			if actor.Username != "root" {
				t.Fatalf("unexpected actor: %s", actor.Username)
			}
			if input.Username != "mike" || input.Role != domain.RoleViewer {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.User{
				ID:        2,
				Username:  input.Username,
				Email:     input.Email,
				Active:    true,
				Roles:     []string{input.Role},
				CreatedAt: now,
			}, nil
		},
	}
	h := NewUserHandler(svc)

	e := newEcho()
	body := `{"username":"mike","email":"mike@example.com","password":"long-enough","role":"viewer"}`
	req := userRequest(http.MethodPost, "/v1/users", body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("principal", adminPrincipal())

	if err := h.Create(c); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp userResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != 2 || resp.Username != "mike" || len(resp.Roles) != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestUserHandler_Create_PayloadValidation(t *testing.T) {
	svc := &stubUserAdminService{
		createFn: func(context.Context, *domain.Principal, ports.CreateUserInput) (*domain.User, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}
	h := NewUserHandler(svc)
	e := newEcho()

	cases := []struct {
		name string
		body string
	}{
		{"short username", `{"username":"ab","email":"a@b.com","password":"long-enough"}`},
		{"bad email", `{"username":"mike","email":"not-an-email","password":"long-enough"}`},
		{"short password", `{"username":"mike","email":"a@b.com","password":"short"}`},
		{"username with spaces", `{"username":"mi ke","email":"a@b.com","password":"long-enough"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := userRequest(http.MethodPost, "/v1/users", tc.body)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.Set("principal", adminPrincipal())

			if err := h.Create(c); err != nil {
				t.Fatalf("Create error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestUserHandler_Create_Duplicate(t *testing.T) {
	svc := &stubUserAdminService{
		createFn: func(context.Context, *domain.Principal, ports.CreateUserInput) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	h := NewUserHandler(svc)

	e := newEcho()
	body := `{"username":"mike","email":"mike@example.com","password":"long-enough"}`
	req := userRequest(http.MethodPost, "/v1/users", body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("principal", adminPrincipal())

	if err := h.Create(c); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestUserHandler_List(t *testing.T) {
	svc := &stubUserAdminService{
		listFn: func(context.Context, *domain.Principal) ([]*domain.User, error) {
			return []*domain.User{
				{ID: 1, Username: "adam", Active: true},
				{ID: 2, Username: "zoe", Active: false},
			}, nil
		},
	}
	h := NewUserHandler(svc)

	e := newEcho()
	req := userRequest(http.MethodGet, "/v1/users", "")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("principal", adminPrincipal())

	if err := h.List(c); err != nil {
		t.Fatalf("List error: %v", err)
	}

	var resp listUsersResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 2 || len(resp.Users) != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Users[0].Username != "adam" || resp.Users[1].Username != "zoe" {
		t.Fatalf("unexpected ordering: %+v", resp.Users)
	}
}

func TestUserHandler_Update(t *testing.T) {
	svc := &stubUserAdminService{
		updateFn: func(_ context.Context, _ *domain.Principal, id int64, input ports.UpdateUserInput) (*domain.User, error) {
			if id != 5 {
				t.Fatalf("expected id 5, got %d", id)
			}
			if input.Email == nil || *input.Email != "new@example.com" {
				t.Fatalf("email not carried: %+v", input)
			}
			if input.FirstName != nil {
				t.Fatalf("absent fields must stay nil")
			}
			return &domain.User{ID: 5, Username: "mike", Email: *input.Email, Active: true}, nil
		},
	}
	h := NewUserHandler(svc)

	e := newEcho()
	req := userRequest(http.MethodPut, "/v1/users/5", `{"email":"new@example.com"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("5")
	c.Set("principal", adminPrincipal())

	if err := h.Update(c); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestUserHandler_Update_NotFound(t *testing.T) {
	svc := &stubUserAdminService{
		updateFn: func(context.Context, *domain.Principal, int64, ports.UpdateUserInput) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	h := NewUserHandler(svc)

	e := newEcho()
	req := userRequest(http.MethodPut, "/v1/users/99", `{"email":"new@example.com"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("99")
	c.Set("principal", adminPrincipal())

	if err := h.Update(c); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestUserHandler_BadPathID(t *testing.T) {
	h := NewUserHandler(&stubUserAdminService{})

	e := newEcho()
	req := userRequest(http.MethodPut, "/v1/users/abc", `{}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")
	c.Set("principal", adminPrincipal())

	err := h.Update(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestUserHandler_DeactivateReactivate(t *testing.T) {
	var deactivated, reactivated int64
	svc := &stubUserAdminService{
		deactivateFn: func(_ context.Context, _ *domain.Principal, id int64) error {
			deactivated = id
			return nil
		},
		reactivateFn: func(_ context.Context, _ *domain.Principal, id int64) error {
			reactivated = id
			return nil
		},
	}
	h := NewUserHandler(svc)
	e := newEcho()

	req := userRequest(http.MethodPost, "/v1/users/3/deactivate", "")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("3")
	c.Set("principal", adminPrincipal())
	if err := h.Deactivate(c); err != nil {
		t.Fatalf("Deactivate error: %v", err)
	}
	if deactivated != 3 {
		t.Fatalf("expected deactivate id 3, got %d", deactivated)
	}

	req = userRequest(http.MethodPost, "/v1/users/3/reactivate", "")
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("3")
	c.Set("principal", adminPrincipal())
	if err := h.Reactivate(c); err != nil {
		t.Fatalf("Reactivate error: %v", err)
	}
	if reactivated != 3 {
		t.Fatalf("expected reactivate id 3, got %d", reactivated)
	}
}

func TestUserHandler_Roles(t *testing.T) {
	svc := &stubUserAdminService{
		listRolesFn: func(context.Context, *domain.Principal) ([]*domain.Role, error) {
			return []*domain.Role{
				{Name: domain.RoleAdmin, Permissions: []string{domain.PermUsersRead, domain.PermUsersWrite, domain.PermAuditRead}},
				{Name: domain.RoleViewer, Permissions: []string{domain.PermUsersRead}},
			}, nil
		},
	}
	h := NewUserHandler(svc)

	e := newEcho()
	req := userRequest(http.MethodGet, "/v1/roles", "")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("principal", adminPrincipal())

	if err := h.Roles(c); err != nil {
		t.Fatalf("Roles error: %v", err)
	}

	var resp []roleResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 2 || resp[0].Name != domain.RoleAdmin {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
