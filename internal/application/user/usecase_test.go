package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookclub/internal/domain/profile"
	"github.com/xiebiao/bookclub/internal/domain/user"
	"github.com/xiebiao/bookclub/internal/infrastructure/events"
	"github.com/xiebiao/bookclub/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookclub/internal/infrastructure/persistence/redis"
	apperrors "github.com/xiebiao/bookclub/pkg/errors"
	"github.com/xiebiao/bookclub/pkg/jwt"
)

type recordingPublisher struct {
	err    error
	events []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, e events.Event) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

type env struct {
	users     user.Repository
	profiles  profile.Repository
	service   user.Service
	txManager *mysql.TxManager
}

func newEnv(t *testing.T) *env {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, mysql.AutoMigrate(db))

	users := mysql.NewUserRepository(db)
	return &env{
		users:     users,
		profiles:  mysql.NewProfileRepository(db),
		service:   user.NewService(users),
		txManager: mysql.NewTxManager(db),
	}
}

func (e *env) register(p events.Publisher) *RegisterUseCase {
	return NewRegisterUseCase(e.service, e.users, e.profiles, e.txManager, p)
}

func TestRegister(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	pub := &recordingPublisher{}

	resp, err := e.register(pub).Execute(ctx, RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.Username)

	p, err := e.profiles.FindByUserID(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", p.DisplayName)

	require.Len(t, pub.events, 1)
	assert.Equal(t, events.UserRegistered, pub.events[0].Type)
	assert.Equal(t, resp.ID, pub.events[0].Payload.(UserRegisteredPayload).UserID)
}

func TestRegister_CompensatesWhenPublishFails(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	req := RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret123"}

	_, err := e.register(&recordingPublisher{err: errors.New("broker down")}).Execute(ctx, req)
	require.Error(t, err)

	_, err = e.users.FindByEmail(ctx, req.Email)
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	// 账号被物理删除，用户名和邮箱可以再次注册
	resp, err := e.register(&recordingPublisher{}).Execute(ctx, req)
	require.NoError(t, err)
	_, err = e.profiles.FindByUserID(ctx, resp.ID)
	assert.NoError(t, err)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	uc := e.register(&recordingPublisher{})

	_, err := uc.Execute(ctx, RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = uc.Execute(ctx, RegisterRequest{Username: "alice2", Email: "alice@example.com", Password: "secret123"})
	require.Error(t, err)
	assert.Equal(t, 400, apperrors.StatusOf(err))
}

func TestLoginLogoutRefresh(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	_, err := e.register(&recordingPublisher{}).Execute(ctx, RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	sessions := redis.NewSessionStore(client)
	jwtManager := jwt.NewManager("test-secret", 15*time.Minute, 24*time.Hour)

	login := NewLoginUseCase(e.service, jwtManager, sessions, 24*time.Hour)

	_, err = login.Execute(ctx, LoginRequest{Email: "alice@example.com", Password: "wrong-pass1"})
	assert.Equal(t, 401, apperrors.StatusOf(err))

	resp, err := login.Execute(ctx, LoginRequest{Email: "alice@example.com", Password: "secret123", ClientIP: "127.0.0.1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	session, err := sessions.GetSession(ctx, resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", session["username"])

	refresh := NewRefreshUseCase(e.service, jwtManager)
	_, err = refresh.Execute(ctx, resp.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	refreshed, err := refresh.Execute(ctx, resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	claims, err := jwtManager.ParseAccessToken(resp.AccessToken)
	require.NoError(t, err)
	require.NoError(t, NewLogoutUseCase(sessions).Execute(ctx, claims))

	blacklisted, err := sessions.IsInBlacklist(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, blacklisted)
	_, err = sessions.GetSession(ctx, resp.User.ID)
	assert.Error(t, err)
}
