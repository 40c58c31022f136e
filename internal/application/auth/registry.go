package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/entity"
)

// localAccount cuenta registrada desde esta tienda. Permite resolver el email
// a partir del nombre de usuario y autenticar si el servicio de cuentas no responde.
type localAccount struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	Role         string `json:"role"`
	RoleID       int    `json:"role_id,omitempty"`
	Name         string `json:"name,omitempty"`
	Lastname     string `json:"lastname,omitempty"`
}

func (a *localAccount) session() entity.Session {
	role := a.Role
	if role == "" {
		role = entity.RoleComprador
	}
	return entity.Session{
		UserID:   a.ID,
		Username: a.Username,
		Email:    a.Email,
		Name:     a.Name,
		Lastname: a.Lastname,
		Role:     role,
		RoleID:   a.RoleID,
	}
}

func accountKey(username string) string {
	return "cuenta:" + username
}

func accountEmailKey(email string) string {
	return "cuenta-email:" + strings.ToLower(email)
}

// findLocal retorna (nil, nil) si el usuario no está registrado.
func (uc *AuthUseCase) findLocal(ctx context.Context, username string) (*localAccount, error) {
	raw, ok, err := uc.kv.Get(ctx, accountKey(username))
	if err != nil {
		return nil, fmt.Errorf("leer registro local: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var acc localAccount
	if err := json.Unmarshal([]byte(raw), &acc); err != nil {
		uc.log.Warn().Err(err).Str("username", username).Msg("cuenta local ilegible")
		return nil, nil
	}
	return &acc, nil
}

func (uc *AuthUseCase) findLocalByEmail(ctx context.Context, email string) (*localAccount, error) {
	username, ok, err := uc.kv.Get(ctx, accountEmailKey(email))
	if err != nil {
		return nil, fmt.Errorf("leer registro local: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return uc.findLocal(ctx, username)
}

func (uc *AuthUseCase) saveLocal(ctx context.Context, acc *localAccount) error {
	raw, err := json.Marshal(acc)
	if err != nil {
		return err
	}
	if err := uc.kv.Set(ctx, accountKey(acc.Username), string(raw)); err != nil {
		return fmt.Errorf("guardar registro local: %w", err)
	}
	if err := uc.kv.Set(ctx, accountEmailKey(acc.Email), acc.Username); err != nil {
		return fmt.Errorf("guardar registro local: %w", err)
	}
	return nil
}
