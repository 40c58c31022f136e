package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-Funkos-api/internal/application/dto"
	"github.com/jhoicas/Tienda-Funkos-api/internal/application/usecase"
	"github.com/jhoicas/Tienda-Funkos-api/internal/domain"
	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/entity"
)

type fakeUserRepo struct {
	users     []*entity.User
	passwords map[string]string
	err       error
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	return &fakeUserRepo{users: users, passwords: map[string]string{}}
}

func (f *fakeUserRepo) List(context.Context) ([]*entity.User, error) {
	return f.users, f.err
}

func (f *fakeUserRepo) Roles(context.Context) ([]entity.UserRole, error) {
	return []entity.UserRole{{ID: 1, Name: "admin"}, {ID: 4, Name: "mixto"}}, f.err
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User, password string) error {
	if f.err != nil {
		return f.err
	}
	u.ID = "10"
	f.users = append(f.users, u)
	f.passwords[u.ID] = password
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *entity.User, password string) error {
	for i, cur := range f.users {
		if cur.ID == u.ID {
			f.users[i] = u
			if password != "" {
				f.passwords[u.ID] = password
			}
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	for i, cur := range f.users {
		if cur.ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func intPtr(v int) *int { return &v }

func TestUserUseCase_Create_Valido(t *testing.T) {
	repo := newFakeUserRepo()
	uc := usecase.NewUserUseCase(repo)

	out, err := uc.Create(context.Background(), dto.CreateUserRequest{
		Name: " Ana ", Lastname: "Gómez", Email: "ana@mail.com", Password: "clave", RoleID: intPtr(4),
	})
	require.NoError(t, err)
	assert.Equal(t, "10", out.ID)
	assert.Equal(t, "Ana", out.Name)
	assert.Equal(t, "clave", repo.passwords["10"])
}

func TestUserUseCase_Create_Validaciones(t *testing.T) {
	uc := usecase.NewUserUseCase(newFakeUserRepo())
	cases := []struct {
		name string
		in   dto.CreateUserRequest
	}{
		{"sin nombre", dto.CreateUserRequest{Lastname: "G", Email: "a@b.c", Password: "x"}},
		{"nombre largo", dto.CreateUserRequest{Name: "Maximilianoalberto", Lastname: "G", Email: "a@b.c", Password: "x"}},
		{"sin apellido", dto.CreateUserRequest{Name: "Ana", Email: "a@b.c", Password: "x"}},
		{"email inválido", dto.CreateUserRequest{Name: "Ana", Lastname: "G", Email: "ana", Password: "x"}},
		{"sin password", dto.CreateUserRequest{Name: "Ana", Lastname: "G", Email: "a@b.c"}},
		{"rol inválido", dto.CreateUserRequest{Name: "Ana", Lastname: "G", Email: "a@b.c", Password: "x", RoleID: intPtr(0)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestUserUseCase_Update_PasswordVacioConservaActual(t *testing.T) {
	repo := newFakeUserRepo(&entity.User{ID: "3", Name: "Ana", Lastname: "G", Email: "a@b.c"})
	repo.passwords["3"] = "vieja"
	uc := usecase.NewUserUseCase(repo)

	out, err := uc.Update(context.Background(), "3", dto.UpdateUserRequest{Name: "Ana María", Lastname: "G", Email: "a@b.c"})
	require.NoError(t, err)
	assert.Equal(t, "Ana María", out.Name)
	assert.Equal(t, "vieja", repo.passwords["3"])
}

func TestUserUseCase_Update_Inexistente_RetornaNotFound(t *testing.T) {
	uc := usecase.NewUserUseCase(newFakeUserRepo())
	_, err := uc.Update(context.Background(), "99", dto.UpdateUserRequest{Name: "Ana", Lastname: "G", Email: "a@b.c"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserUseCase_GetByID(t *testing.T) {
	uc := usecase.NewUserUseCase(newFakeUserRepo(&entity.User{ID: "3", Name: "Ana", RoleName: "mixto"}))

	out, err := uc.GetByID(context.Background(), "3")
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "mixto", out.RoleName)

	out, err = uc.GetByID(context.Background(), "4")
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestUserUseCase_ListYRoles(t *testing.T) {
	uc := usecase.NewUserUseCase(newFakeUserRepo(&entity.User{ID: "1"}, &entity.User{ID: "2"}))

	users, err := uc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)

	roles, err := uc.Roles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "mixto", roles[1].Name)
}

func TestUserUseCase_Delete(t *testing.T) {
	repo := newFakeUserRepo(&entity.User{ID: "1"})
	uc := usecase.NewUserUseCase(repo)

	require.NoError(t, uc.Delete(context.Background(), "1"))
	assert.Empty(t, repo.users)
	assert.ErrorIs(t, uc.Delete(context.Background(), ""), domain.ErrInvalidInput)
}

func TestUserUseCase_ErrorDelRepositorio_SePropaga(t *testing.T) {
	repo := newFakeUserRepo()
	repo.err = errors.New("backend caído")
	uc := usecase.NewUserUseCase(repo)

	_, err := uc.List(context.Background())
	assert.Error(t, err)
}
