package auth

import (
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/entity"
)

// demoAccount cuenta de prueba fija (una por rol, más "user" como comprador).
type demoAccount struct {
	id       int
	username string
	name     string
	role     string
	roleID   int
	hash     []byte
}

func demoAccounts() []demoAccount {
	seed := []struct {
		id       int
		username string
		name     string
		role     string
		roleID   int
	}{
		{1, "admin", "Admin", entity.RoleAdmin, 1},
		{2, "vendedor", "Vendedor", entity.RoleVendedor, 2},
		{3, "comprador", "Comprador", entity.RoleComprador, 3},
		{4, "mixto", "Mixto", entity.RoleMixto, 4},
		{5, "user", "Usuario", entity.RoleComprador, 3},
	}
	out := make([]demoAccount, 0, len(seed))
	for _, s := range seed {
		// contraseña de prueba: <usuario>123
		hash, err := bcrypt.GenerateFromPassword([]byte(s.username+"123"), bcrypt.MinCost)
		if err != nil {
			continue
		}
		out = append(out, demoAccount{
			id: s.id, username: s.username, name: s.name,
			role: s.role, roleID: s.roleID, hash: hash,
		})
	}
	return out
}

func (d demoAccount) email() string {
	return d.username + "@funkopop.com"
}

func (d demoAccount) session() entity.Session {
	return entity.Session{
		UserID:   strconv.Itoa(d.id),
		Username: d.username,
		Email:    d.email(),
		Name:     d.name,
		Role:     d.role,
		RoleID:   d.roleID,
	}
}

func (uc *AuthUseCase) matchDemo(username, password string) (demoAccount, bool) {
	for _, d := range uc.demo {
		if username != d.username && !strings.EqualFold(username, d.email()) {
			continue
		}
		if bcrypt.CompareHashAndPassword(d.hash, []byte(password)) == nil {
			return d, true
		}
		return demoAccount{}, false
	}
	return demoAccount{}, false
}

func (uc *AuthUseCase) isDemoName(username string) bool {
	for _, d := range uc.demo {
		if d.username == username {
			return true
		}
	}
	return false
}
