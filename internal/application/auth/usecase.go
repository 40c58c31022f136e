package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Tienda-Funkos-api/internal/application/dto"
	"github.com/jhoicas/Tienda-Funkos-api/internal/domain"
	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/access"
	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-Funkos-api/pkg/jwt"
	"github.com/jhoicas/Tienda-Funkos-api/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login, registro, logout y
// resolución de la sesión referida por un token.
type AuthUseCase struct {
	accounts repository.AccountGateway
	kv       repository.KeyValueStore
	jwtCfg   JWTConfig
	demo     []demoAccount
	log      *logger.Logger
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth. demoUsers habilita las cuentas de prueba.
func NewAuthUseCase(
	accounts repository.AccountGateway,
	kv repository.KeyValueStore,
	jwtCfg JWTConfig,
	demoUsers bool,
	log *logger.Logger,
) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	uc := &AuthUseCase{
		accounts: accounts,
		kv:       kv,
		jwtCfg:   jwtCfg,
		log:      log.Component("auth"),
		now:      time.Now,
	}
	if demoUsers {
		uc.demo = demoAccounts()
	}
	return uc
}

// Login autentica por nombre de usuario o email. Orden: cuentas de prueba,
// servicio de cuentas y, si el servicio no responde, el registro local.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, domain.Invalid("username", "usuario y contraseña son requeridos")
	}

	if d, ok := uc.matchDemo(username, in.Password); ok {
		return uc.openSession(ctx, d.session())
	}

	email := username
	var local *localAccount
	if !strings.Contains(username, "@") {
		acc, err := uc.findLocal(ctx, username)
		if err != nil {
			return nil, err
		}
		if acc == nil {
			return nil, domain.ErrUnauthorized
		}
		local = acc
		email = acc.Email
	}

	account, err := uc.accounts.Login(ctx, email, in.Password)
	if err == nil {
		return uc.openSession(ctx, sessionFromAccount(account, email))
	}
	if !errors.Is(err, domain.ErrUnavailable) {
		uc.log.Info().Err(err).Str("email", email).Msg("login rechazado")
		return nil, domain.ErrUnauthorized
	}

	uc.log.Warn().Err(err).Msg("servicio de cuentas no disponible, se usa el registro local")
	if local == nil {
		if local, err = uc.findLocalByEmail(ctx, email); err != nil {
			return nil, err
		}
	}
	if local == nil || bcrypt.CompareHashAndPassword([]byte(local.PasswordHash), []byte(in.Password)) != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.openSession(ctx, local.session())
}

// Register da de alta la cuenta en el servicio de cuentas con rol mixto,
// la guarda en el registro local e inicia sesión.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	name, lastname := splitName(username)
	if in.Name != "" {
		name = strings.TrimSpace(in.Name)
	}
	if in.Lastname != "" {
		lastname = strings.TrimSpace(in.Lastname)
	}
	if err := validateRegistration(username, name, lastname, email, in.Password); err != nil {
		return nil, err
	}

	existing, err := uc.findLocal(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil || uc.isDemoName(username) {
		return nil, domain.ErrDuplicate
	}

	account, err := uc.accounts.Register(ctx, repository.Registration{
		Name:     name,
		Lastname: lastname,
		Email:    email,
		Password: in.Password,
		RoleName: entity.RoleMixto,
		RoleID:   entity.RoleIDMixto,
	})
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	local := &localAccount{
		ID:           account.UserID,
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         entity.RoleMixto,
		RoleID:       account.RoleID,
		Name:         name,
		Lastname:     lastname,
	}
	if local.ID == "" {
		local.ID = uuid.New().String()
	}
	if local.RoleID == 0 {
		local.RoleID = entity.RoleIDMixto
	}
	if err := uc.saveLocal(ctx, local); err != nil {
		return nil, err
	}
	return uc.openSession(ctx, local.session())
}

// Logout elimina la sesión. Una sesión inexistente no es error.
func (uc *AuthUseCase) Logout(ctx context.Context, sessionID string) error {
	return uc.kv.Remove(ctx, sessionKey(sessionID))
}

// Authenticate valida el token y devuelve la sesión almacenada que referencia.
// Retorna domain.ErrSessionExpired si el token es inválido o la sesión ya no existe,
// y domain.ErrUnavailable si no se pudo leer el almacenamiento.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*entity.Session, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSessionExpired, err)
	}
	raw, ok, err := uc.kv.Get(ctx, sessionKey(claims.SessionID))
	if err != nil {
		return nil, fmt.Errorf("%w: leer sesión: %v", domain.ErrUnavailable, err)
	}
	if !ok {
		return nil, domain.ErrSessionExpired
	}
	var s entity.Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		uc.log.Warn().Err(err).Str("session_id", claims.SessionID).Msg("sesión ilegible")
		return nil, domain.ErrSessionExpired
	}
	return &s, nil
}

// openSession guarda la sesión con la misma vigencia que el token y lo emite.
// Una sesión sin un rol del conjunto conocido no se abre.
func (uc *AuthUseCase) openSession(ctx context.Context, s entity.Session) (*dto.LoginResponse, error) {
	if _, ok := access.ParseRole(s.Role); !ok {
		uc.log.Warn().Str("user_id", s.UserID).Str("role", s.Role).Msg("login rechazado: rol desconocido")
		return nil, domain.ErrForbidden
	}
	now := uc.now()
	s.ID = uuid.New().String()
	s.CreatedAt = now.UTC()

	raw, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	if err := uc.kv.SetTTL(ctx, sessionKey(s.ID), string(raw), uc.sessionTTL()); err != nil {
		return nil, fmt.Errorf("guardar sesión: %w", err)
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, s.ID, s.UserID, s.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", s.UserID).Str("role", s.Role).Msg("sesión iniciada")
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: now.Add(uc.sessionTTL()).UTC(),
		User:      ToSessionUser(&s),
	}, nil
}

func (uc *AuthUseCase) sessionTTL() time.Duration {
	return time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute
}

// ToSessionUser identidad pública de una sesión.
func ToSessionUser(s *entity.Session) dto.SessionUserResponse {
	return dto.SessionUserResponse{
		ID:       s.UserID,
		Username: s.Username,
		Email:    s.Email,
		Name:     s.Name,
		Lastname: s.Lastname,
		Role:     s.Role,
		RoleID:   s.RoleID,
	}
}

func sessionKey(id string) string {
	return "sesion:" + id
}

// sessionFromAccount traduce la respuesta del servicio de cuentas. Un role_name
// fuera del conjunto conocido se conserva tal cual y openSession lo rechaza.
func sessionFromAccount(a *repository.Account, email string) entity.Session {
	tag := a.RoleName
	if role, ok := access.ParseRole(a.RoleName); ok {
		tag = role.String()
	}
	id := a.UserID
	if id == "" {
		id = uuid.New().String()
	}
	username := a.Name
	if username == "" {
		username, _, _ = strings.Cut(email, "@")
	}
	return entity.Session{
		UserID:   id,
		Username: username,
		Email:    email,
		Name:     a.Name,
		Lastname: a.Lastname,
		Role:     tag,
		RoleID:   a.RoleID,
	}
}

// splitName separa "Nombre Apellido Apellido"; sin apellido se usa "Usuario".
func splitName(username string) (string, string) {
	parts := strings.Fields(username)
	if len(parts) == 0 {
		return username, "Usuario"
	}
	lastname := strings.Join(parts[1:], " ")
	if lastname == "" {
		lastname = "Usuario"
	}
	return parts[0], lastname
}

func validateRegistration(username, name, lastname, email, password string) error {
	switch {
	case username == "":
		return domain.Invalid("username", "el nombre de usuario es requerido")
	case utf8.RuneCountInString(name) > 16:
		return domain.Invalid("name", "El nombre debe tener máximo 16 caracteres")
	case utf8.RuneCountInString(lastname) > 80:
		return domain.Invalid("lastname", "El apellido debe tener máximo 80 caracteres")
	case password == "":
		return domain.Invalid("password", "la contraseña es requerida")
	case utf8.RuneCountInString(password) > 32:
		return domain.Invalid("password", "La contraseña debe tener máximo 32 caracteres")
	case email == "" || !strings.Contains(email, "@"):
		return domain.Invalid("email", "el email no es válido")
	case utf8.RuneCountInString(email) > 255:
		return domain.Invalid("email", "El email debe tener máximo 255 caracteres")
	}
	return nil
}
