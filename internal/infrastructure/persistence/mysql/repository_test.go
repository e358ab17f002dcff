package mysql

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookclub/internal/domain/book"
	"github.com/xiebiao/bookclub/internal/domain/interaction"
	"github.com/xiebiao/bookclub/internal/domain/user"
)

// newTestDB 每个测试一个独立的内存数据库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, AutoMigrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string) *user.User {
	t.Helper()
	u := user.NewUser(name, name+"@example.com", "hashed")
	require.NoError(t, NewUserRepository(db).Create(context.Background(), u))
	return u
}

func seedBook(t *testing.T, db *gorm.DB, isbn string) *book.Book {
	t.Helper()
	b := &book.Book{ISBN: isbn, Title: "书名" + isbn, Author: "作者", Language: "zh", Genre: book.GenreFiction}
	require.NoError(t, NewBookRepository(db).Create(context.Background(), b))
	return b
}

func seedInteraction(t *testing.T, db *gorm.DB, userID, bookID uint) *interaction.Interaction {
	t.Helper()
	i := &interaction.Interaction{UserID: userID, BookID: bookID, Status: interaction.StatusReading}
	require.NoError(t, NewInteractionRepository(db).Create(context.Background(), i))
	return i
}

func TestUserRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	assert.NotZero(t, alice.ID)

	t.Run("用户名重复", func(t *testing.T) {
		err := repo.Create(ctx, user.NewUser("alice", "other@example.com", "hashed"))
		assert.ErrorIs(t, err, user.ErrUsernameDuplicate)
	})

	t.Run("邮箱重复", func(t *testing.T) {
		err := repo.Create(ctx, user.NewUser("alice2", "alice@example.com", "hashed"))
		assert.ErrorIs(t, err, user.ErrEmailDuplicate)
	})

	t.Run("软删除后查不到", func(t *testing.T) {
		bob := seedUser(t, db, "bob")
		require.NoError(t, repo.Delete(ctx, bob.ID))

		_, err := repo.FindByID(ctx, bob.ID)
		assert.ErrorIs(t, err, user.ErrUserNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, bob.ID), user.ErrUserNotFound)
	})

	t.Run("软删除后用户名和邮箱可以重新注册", func(t *testing.T) {
		dave := seedUser(t, db, "dave")
		require.NoError(t, repo.Delete(ctx, dave.ID))
		again := seedUser(t, db, "dave")
		assert.NotEqual(t, dave.ID, again.ID)

		// 有效用户之间仍然唯一
		err := repo.Create(ctx, user.NewUser("dave", "dave2@example.com", "hashed"))
		assert.ErrorIs(t, err, user.ErrUsernameDuplicate)

		// 更新不会清空active
		again.Password = "rehashed"
		require.NoError(t, repo.Update(ctx, again))
		err = repo.Create(ctx, user.NewUser("dave3", again.Email, "hashed"))
		assert.ErrorIs(t, err, user.ErrEmailDuplicate)
	})

	t.Run("物理删除释放唯一索引", func(t *testing.T) {
		carol := seedUser(t, db, "carol")
		require.NoError(t, repo.Purge(ctx, carol.ID))
		seedUser(t, db, "carol")
	})
}

func TestTxManager_Rollback(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	tm := NewTxManager(db)
	ctx := context.Background()

	err := tm.Transaction(ctx, func(ctx context.Context) error {
		if err := repo.Create(ctx, user.NewUser("dave", "dave@example.com", "hashed")); err != nil {
			return err
		}
		return repo.Create(ctx, user.NewUser("dave", "dave2@example.com", "hashed"))
	})
	require.ErrorIs(t, err, user.ErrUsernameDuplicate)

	_, err = repo.FindByEmail(ctx, "dave@example.com")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestBookRepository_ListEscapesKeyword(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookRepository(db)
	ctx := context.Background()

	b1 := &book.Book{ISBN: "9780000000001", Title: "100% Go", Author: "A", Genre: book.GenreScience}
	b2 := &book.Book{ISBN: "9780000000002", Title: "1000 Go", Author: "B", Genre: book.GenreScience}
	require.NoError(t, repo.Create(ctx, b1))
	require.NoError(t, repo.Create(ctx, b2))

	err := repo.Create(ctx, &book.Book{ISBN: "9780000000001", Title: "dup"})
	assert.ErrorIs(t, err, book.ErrISBNDuplicate)

	books, total, err := repo.List(ctx, book.ListParams{Keyword: "100%"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, books, 1)
	assert.Equal(t, b1.ID, books[0].ID)
}

func TestInteractionRepository_UniquePerUserBook(t *testing.T) {
	db := newTestDB(t)
	repo := NewInteractionRepository(db)
	ctx := context.Background()

	u := seedUser(t, db, "erin")
	b := seedBook(t, db, "9780000000003")
	first := seedInteraction(t, db, u.ID, b.ID)

	err := repo.Create(ctx, &interaction.Interaction{UserID: u.ID, BookID: b.ID, Status: interaction.StatusRead})
	assert.ErrorIs(t, err, interaction.ErrInteractionExists)

	got, err := repo.FindByUserAndBook(ctx, u.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, interaction.StatusReading, got.Status)

	now := time.Now()
	got.Apply(interaction.UpdateParams{Status: statusPtr(interaction.StatusRead)}, now)
	require.NoError(t, repo.Update(ctx, got))

	list, total, err := repo.List(ctx, interaction.ListParams{UserID: u.ID, Status: interaction.StatusRead})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, list, 1)
	assert.NotNil(t, list[0].FinishedAt)
	assert.False(t, list[0].CreatedAt.IsZero())
}

func statusPtr(s interaction.Status) *interaction.Status {
	return &s
}
