package common

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookclub/internal/domain/book"
	"github.com/xiebiao/bookclub/internal/domain/follow"
	"github.com/xiebiao/bookclub/internal/domain/interaction"
	"github.com/xiebiao/bookclub/internal/domain/like"
	"github.com/xiebiao/bookclub/internal/domain/message"
	"github.com/xiebiao/bookclub/internal/domain/repostsave"
	"github.com/xiebiao/bookclub/internal/domain/review"
	"github.com/xiebiao/bookclub/internal/domain/shared"
	"github.com/xiebiao/bookclub/internal/domain/user"
	"github.com/xiebiao/bookclub/internal/infrastructure/persistence/mysql"
)

type fixture struct {
	db          *gorm.DB
	cascade     *Cascade
	messages    message.Repository
	likes       like.Repository
	repostSaves repostsave.Repository
	follows     follow.Repository
	reviews     review.Repository

	alice, bob *user.User
	review     *review.Review
}

func newFixture(t *testing.T) *fixture {
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

	ctx := context.Background()
	f := &fixture{
		db:          db,
		messages:    mysql.NewMessageRepository(db),
		likes:       mysql.NewLikeRepository(db),
		repostSaves: mysql.NewRepostSaveRepository(db),
		reviews:     mysql.NewReviewRepository(db),
	}
	f.follows = mysql.NewFollowRepository(db)
	f.cascade = NewCascade(mysql.NewTxManager(db), f.messages, f.likes, f.repostSaves, f.follows)

	users := mysql.NewUserRepository(db)
	f.alice = user.NewUser("alice", "alice@example.com", "hashed")
	f.bob = user.NewUser("bob", "bob@example.com", "hashed")
	require.NoError(t, users.Create(ctx, f.alice))
	require.NoError(t, users.Create(ctx, f.bob))

	b := &book.Book{ISBN: "9787111111111", Title: "三体", Author: "刘慈欣", Language: "zh", Genre: book.GenreScience}
	require.NoError(t, mysql.NewBookRepository(db).Create(ctx, b))
	require.NoError(t, mysql.NewInteractionRepository(db).Create(ctx,
		&interaction.Interaction{UserID: f.alice.ID, BookID: b.ID, Status: interaction.StatusReading}))

	f.review = &review.Review{UserID: f.alice.ID, BookID: b.ID, Title: "好书", Content: "值得一读", Rating: 5}
	require.NoError(t, f.reviews.Create(ctx, f.review))
	return f
}

func (f *fixture) like(t *testing.T, userID uint, target shared.Target) *like.Like {
	t.Helper()
	l, err := like.New(userID, target)
	require.NoError(t, err)
	require.NoError(t, f.likes.Create(context.Background(), l))
	return l
}

func TestCascade_DeleteReview(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	reviewTarget := shared.Target{Kind: shared.TargetReview, ID: f.review.ID}

	reviewID := f.review.ID
	comment := &message.Message{SenderID: f.bob.ID, Type: message.TypeReview, ReviewID: &reviewID, Content: "同感"}
	require.NoError(t, f.messages.Create(ctx, comment))
	commentTarget := shared.Target{Kind: shared.TargetMessage, ID: comment.ID}

	f.like(t, f.bob.ID, reviewTarget)
	f.like(t, f.alice.ID, commentTarget)
	saved, err := repostsave.New(f.bob.ID, repostsave.ActionSave, reviewTarget)
	require.NoError(t, err)
	require.NoError(t, f.repostSaves.Create(ctx, saved))

	// 无关的私信和点赞不受影响
	bobID := f.bob.ID
	dm := &message.Message{SenderID: f.alice.ID, Type: message.TypePersonal, ReceiverID: &bobID, Content: "你好"}
	require.NoError(t, f.messages.Create(ctx, dm))
	f.like(t, f.bob.ID, shared.Target{Kind: shared.TargetMessage, ID: dm.ID})

	err = f.cascade.Delete(ctx, reviewTarget, func(ctx context.Context) error {
		return f.reviews.Delete(ctx, f.review.ID)
	})
	require.NoError(t, err)

	_, err = f.reviews.FindByID(ctx, f.review.ID)
	assert.ErrorIs(t, err, review.ErrReviewNotFound)
	_, err = f.messages.FindByID(ctx, comment.ID)
	assert.ErrorIs(t, err, message.ErrMessageNotFound)

	n, err := f.likes.Count(ctx, reviewTarget)
	require.NoError(t, err)
	assert.Zero(t, n)
	n, err = f.likes.Count(ctx, commentTarget)
	require.NoError(t, err)
	assert.Zero(t, n)
	n, err = f.repostSaves.Count(ctx, reviewTarget, "")
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = f.messages.FindByID(ctx, dm.ID)
	assert.NoError(t, err)
	n, err = f.likes.Count(ctx, shared.Target{Kind: shared.TargetMessage, ID: dm.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestCascade_RollbackOnRemoveFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	reviewTarget := shared.Target{Kind: shared.TargetReview, ID: f.review.ID}
	f.like(t, f.bob.ID, reviewTarget)

	boom := errors.New("boom")
	err := f.cascade.Delete(ctx, reviewTarget, func(ctx context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)

	n, err := f.likes.Count(ctx, reviewTarget)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n, "删除失败时点赞应回滚")
}

func TestCascade_DeleteMessage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bobID := f.bob.ID
	dm := &message.Message{SenderID: f.alice.ID, Type: message.TypePersonal, ReceiverID: &bobID, Content: "你好"}
	require.NoError(t, f.messages.Create(ctx, dm))
	target := shared.Target{Kind: shared.TargetMessage, ID: dm.ID}
	f.like(t, f.bob.ID, target)

	err := f.cascade.Delete(ctx, target, func(ctx context.Context) error {
		return f.messages.Delete(ctx, dm.ID)
	})
	require.NoError(t, err)

	n, err := f.likes.Count(ctx, target)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCascade_DeleteUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	reviewTarget := shared.Target{Kind: shared.TargetReview, ID: f.review.ID}
	aliceTarget := shared.Target{Kind: shared.TargetUser, ID: f.alice.ID}

	bobID := f.bob.ID
	dm := &message.Message{SenderID: f.alice.ID, Type: message.TypePersonal, ReceiverID: &bobID, Content: "你好"}
	require.NoError(t, f.messages.Create(ctx, dm))
	f.like(t, f.alice.ID, shared.Target{Kind: shared.TargetMessage, ID: dm.ID})
	f.like(t, f.bob.ID, reviewTarget)

	saved, err := repostsave.New(f.bob.ID, repostsave.ActionSave, reviewTarget)
	require.NoError(t, err)
	require.NoError(t, f.repostSaves.Create(ctx, saved))

	fl, err := follow.New(f.bob.ID, aliceTarget)
	require.NoError(t, err)
	require.NoError(t, f.follows.Create(ctx, fl))
	back, err := follow.New(f.alice.ID, shared.Target{Kind: shared.TargetUser, ID: f.bob.ID})
	require.NoError(t, err)
	require.NoError(t, f.follows.Create(ctx, back))

	removed := false
	err = f.cascade.DeleteUser(ctx, f.bob.ID, func(ctx context.Context) error {
		removed = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, removed)

	_, err = f.messages.FindByID(ctx, dm.ID)
	assert.ErrorIs(t, err, message.ErrMessageNotFound, "收到的私信一并删除")
	n, err := f.likes.Count(ctx, shared.Target{Kind: shared.TargetMessage, ID: dm.ID})
	require.NoError(t, err)
	assert.Zero(t, n)
	n, err = f.likes.Count(ctx, reviewTarget)
	require.NoError(t, err)
	assert.Zero(t, n)
	n, err = f.repostSaves.Count(ctx, reviewTarget, "")
	require.NoError(t, err)
	assert.Zero(t, n)
	n, err = f.follows.CountFollowers(ctx, aliceTarget)
	require.NoError(t, err)
	assert.Zero(t, n)
	n, err = f.follows.CountFollowing(ctx, f.alice.ID, shared.TargetUser)
	require.NoError(t, err)
	assert.Zero(t, n)

	// 书评属于alice，不受影响
	_, err = f.reviews.FindByID(ctx, f.review.ID)
	assert.NoError(t, err)
}

func TestCascade_DeleteUserRollback(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	aliceTarget := shared.Target{Kind: shared.TargetUser, ID: f.alice.ID}

	fl, err := follow.New(f.bob.ID, aliceTarget)
	require.NoError(t, err)
	require.NoError(t, f.follows.Create(ctx, fl))

	boom := errors.New("boom")
	err = f.cascade.DeleteUser(ctx, f.bob.ID, func(ctx context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)

	n, err := f.follows.CountFollowers(ctx, aliceTarget)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n, "删除失败时关注关系应回滚")
}

func TestAuthorize(t *testing.T) {
	assert.NoError(t, Authorize(Anonymous, 7))
	assert.NoError(t, Authorize(7, 7))
	assert.Error(t, Authorize(8, 7))

	owner, err := ResolveOwner(Anonymous, 7)
	require.NoError(t, err)
	assert.EqualValues(t, 7, owner)

	owner, err = ResolveOwner(7, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 7, owner)

	_, err = ResolveOwner(7, 8)
	assert.Error(t, err)
}
