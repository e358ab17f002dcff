package user

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// memoryRepo 内存仓储（仅测试使用）
type memoryRepo struct {
	users  map[uint]*User
	nextID uint
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: make(map[uint]*User)}
}

func (r *memoryRepo) Create(_ context.Context, u *User) error {
	r.nextID++
	u.ID = r.nextID
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memoryRepo) FindByID(_ context.Context, id uint) (*User, error) {
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, ErrUserNotFound
}

func (r *memoryRepo) FindByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *memoryRepo) FindByUsername(_ context.Context, username string) (*User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *memoryRepo) Update(_ context.Context, u *User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *memoryRepo) Purge(ctx context.Context, id uint) error {
	return r.Delete(ctx, id)
}

func (r *memoryRepo) List(_ context.Context, params ListParams) ([]*User, int64, error) {
	var out []*User
	for _, u := range r.users {
		if params.Keyword == "" || strings.Contains(u.Username, params.Keyword) {
			out = append(out, u)
		}
	}
	return out, int64(len(out)), nil
}

func init() {
	bcryptCost = bcrypt.MinCost
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryRepo())

	u, err := svc.Register(ctx, "alice", "Alice@Example.com", "secret123")
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.NotEqual(t, "secret123", u.Password)

	t.Run("邮箱重复", func(t *testing.T) {
		_, err := svc.Register(ctx, "alice2", "alice@example.com", "secret123")
		assert.ErrorIs(t, err, ErrEmailDuplicate)
	})

	t.Run("用户名重复", func(t *testing.T) {
		_, err := svc.Register(ctx, "alice", "other@example.com", "secret123")
		assert.ErrorIs(t, err, ErrUsernameDuplicate)
	})

	t.Run("格式校验", func(t *testing.T) {
		_, err := svc.Register(ctx, "al", "x@example.com", "secret123")
		assert.ErrorIs(t, err, ErrInvalidUsername)

		_, err = svc.Register(ctx, "bob", "not-an-email", "secret123")
		assert.ErrorIs(t, err, ErrInvalidEmail)

		_, err = svc.Register(ctx, "bob", "bob@example.com", "onlyletters")
		assert.ErrorIs(t, err, ErrWeakPassword)
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryRepo())
	_, err := svc.Register(ctx, "carol", "carol@example.com", "secret123")
	require.NoError(t, err)

	u, err := svc.Login(ctx, "carol@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "carol", u.Username)

	_, err = svc.Login(ctx, "carol@example.com", "wrong1234")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryRepo())
	a, err := svc.Register(ctx, "dave", "dave@example.com", "secret123")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "erin", "erin@example.com", "secret123")
	require.NoError(t, err)

	_, err = svc.Update(ctx, a.ID, UpdateParams{})
	assert.ErrorIs(t, err, ErrNothingToUpdate)

	taken := "erin"
	_, err = svc.Update(ctx, a.ID, UpdateParams{Username: &taken})
	assert.ErrorIs(t, err, ErrUsernameDuplicate)

	// 保持自己的用户名不算冲突
	same := "dave"
	newPassword := "changed456"
	updated, err := svc.Update(ctx, a.ID, UpdateParams{Username: &same, Password: &newPassword})
	require.NoError(t, err)
	assert.Equal(t, "dave", updated.Username)

	_, err = svc.Login(ctx, "dave@example.com", "changed456")
	assert.NoError(t, err)
}
