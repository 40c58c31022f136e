package rest

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/repository"
)

var (
	_ repository.AccountGateway = (*AccountClient)(nil)
	_ repository.UserRepository = (*UserClient)(nil)
)

type accountPayload struct {
	UserID   flexID  `json:"user_id"`
	Name     string  `json:"name"`
	Lastname string  `json:"lastname"`
	Email    string  `json:"email"`
	RoleName *string `json:"role_name"`
	RoleID   flexInt `json:"role_id"`
}

func (a accountPayload) toAccount(email string) *repository.Account {
	out := &repository.Account{
		UserID:   string(a.UserID),
		Name:     a.Name,
		Lastname: a.Lastname,
		Email:    a.Email,
		RoleID:   a.RoleID.Value,
	}
	if a.RoleName != nil {
		out.RoleName = *a.RoleName
	}
	if out.Email == "" {
		out.Email = email
	}
	return out
}

// AccountClient autenticación contra /useraccount del backend (formularios urlencoded).
type AccountClient struct {
	c *Client
}

// NewAccountClient construye el adaptador de cuentas.
func NewAccountClient(c *Client) *AccountClient {
	return &AccountClient{c: c}
}

// Login POST /useraccount/login/ con email y password.
func (a *AccountClient) Login(ctx context.Context, email, password string) (*repository.Account, error) {
	var resp accountPayload
	form := url.Values{"email": {email}, "password": {password}}
	if err := a.c.postForm(ctx, "/useraccount/login/", form, &resp); err != nil {
		return nil, err
	}
	return resp.toAccount(email), nil
}

// Register POST /useraccount/register/. El backend asigna el rol de las cuentas nuevas.
func (a *AccountClient) Register(ctx context.Context, reg repository.Registration) (*repository.Account, error) {
	var resp accountPayload
	form := url.Values{
		"name":     {reg.Name},
		"lastname": {reg.Lastname},
		"email":    {reg.Email},
		"password": {reg.Password},
	}
	if err := a.c.postForm(ctx, "/useraccount/register/", form, &resp); err != nil {
		return nil, err
	}
	out := resp.toAccount(reg.Email)
	if out.Name == "" {
		out.Name = reg.Name
		out.Lastname = reg.Lastname
	}
	if out.RoleName == "" {
		out.RoleName = reg.RoleName
	}
	if out.RoleID == 0 {
		out.RoleID = reg.RoleID
	}
	return out, nil
}

// UserClient administración de cuentas contra /useraccount del backend (JSON).
type UserClient struct {
	c *Client
}

// NewUserClient construye el adaptador de administración de cuentas.
func NewUserClient(c *Client) *UserClient {
	return &UserClient{c: c}
}

// List GET /useraccount/list/ → {"users": [...]}.
func (u *UserClient) List(ctx context.Context) ([]*entity.User, error) {
	var resp struct {
		Users []accountPayload `json:"users"`
	}
	if err := u.c.getJSON(ctx, "/useraccount/list/", &resp); err != nil {
		return nil, err
	}
	out := make([]*entity.User, 0, len(resp.Users))
	for _, p := range resp.Users {
		user := &entity.User{
			ID:       string(p.UserID),
			Name:     p.Name,
			Lastname: p.Lastname,
			Email:    p.Email,
			RoleID:   p.RoleID.ptr(),
		}
		if p.RoleName != nil {
			user.RoleName = *p.RoleName
		}
		out = append(out, user)
	}
	return out, nil
}

// Roles GET /useraccount/roles/ → {"roles": [...]}.
func (u *UserClient) Roles(ctx context.Context) ([]entity.UserRole, error) {
	var resp struct {
		Roles []struct {
			ID   flexInt `json:"role_id"`
			Name string  `json:"role_name"`
		} `json:"roles"`
	}
	if err := u.c.getJSON(ctx, "/useraccount/roles/", &resp); err != nil {
		return nil, err
	}
	out := make([]entity.UserRole, 0, len(resp.Roles))
	for _, r := range resp.Roles {
		out = append(out, entity.UserRole{ID: r.ID.Value, Name: strings.ToLower(r.Name)})
	}
	return out, nil
}

type userBody struct {
	Name     string `json:"name"`
	Lastname string `json:"lastname"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	RoleID   *int   `json:"role_id"`
}

// Create POST /useraccount/create/.
func (u *UserClient) Create(ctx context.Context, user *entity.User, password string) error {
	var resp accountPayload
	body := userBody{Name: user.Name, Lastname: user.Lastname, Email: user.Email, Password: password, RoleID: user.RoleID}
	if err := u.c.sendJSON(ctx, http.MethodPost, "/useraccount/create/", body, &resp); err != nil {
		return err
	}
	user.ID = string(resp.UserID)
	return nil
}

// Update PUT /useraccount/update/{id}/. El password solo viaja si no está vacío.
func (u *UserClient) Update(ctx context.Context, user *entity.User, password string) error {
	body := userBody{Name: user.Name, Lastname: user.Lastname, Email: user.Email, Password: password, RoleID: user.RoleID}
	return u.c.sendJSON(ctx, http.MethodPut, "/useraccount/update/"+url.PathEscape(user.ID)+"/", body, nil)
}

// Delete DELETE /useraccount/delete/{id}/.
func (u *UserClient) Delete(ctx context.Context, id string) error {
	return u.c.delete(ctx, "/useraccount/delete/"+url.PathEscape(id)+"/")
}
