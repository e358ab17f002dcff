package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	appbook "github.com/xiebiao/bookclub/internal/application/book"
	appbooksale "github.com/xiebiao/bookclub/internal/application/booksale"
	"github.com/xiebiao/bookclub/internal/application/common"
	appfollow "github.com/xiebiao/bookclub/internal/application/follow"
	appinteraction "github.com/xiebiao/bookclub/internal/application/interaction"
	applike "github.com/xiebiao/bookclub/internal/application/like"
	appmessage "github.com/xiebiao/bookclub/internal/application/message"
	appprofile "github.com/xiebiao/bookclub/internal/application/profile"
	appquote "github.com/xiebiao/bookclub/internal/application/quote"
	apprepostsave "github.com/xiebiao/bookclub/internal/application/repostsave"
	appreview "github.com/xiebiao/bookclub/internal/application/review"
	appuser "github.com/xiebiao/bookclub/internal/application/user"
	"github.com/xiebiao/bookclub/internal/domain/book"
	"github.com/xiebiao/bookclub/internal/domain/booksale"
	"github.com/xiebiao/bookclub/internal/domain/content"
	"github.com/xiebiao/bookclub/internal/domain/follow"
	"github.com/xiebiao/bookclub/internal/domain/interaction"
	"github.com/xiebiao/bookclub/internal/domain/like"
	"github.com/xiebiao/bookclub/internal/domain/message"
	"github.com/xiebiao/bookclub/internal/domain/profile"
	"github.com/xiebiao/bookclub/internal/domain/quote"
	"github.com/xiebiao/bookclub/internal/domain/repostsave"
	"github.com/xiebiao/bookclub/internal/domain/review"
	"github.com/xiebiao/bookclub/internal/domain/user"
	"github.com/xiebiao/bookclub/internal/infrastructure/config"
	"github.com/xiebiao/bookclub/internal/infrastructure/events"
	"github.com/xiebiao/bookclub/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookclub/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookclub/internal/interface/http/handler"
	"github.com/xiebiao/bookclub/internal/interface/http/middleware"
	"github.com/xiebiao/bookclub/pkg/jwt"
	"github.com/xiebiao/bookclub/pkg/response"
)

type testServer struct {
	t      *testing.T
	engine *gin.Engine
	db     *gorm.DB
}

// newTestServer 组装完整的应用：sqlite内存库 + miniredis
func newTestServer(t *testing.T, requireAuth bool) *testServer {
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

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := &config.Config{
		Server:   config.ServerConfig{Mode: gin.TestMode},
		Metrics:  config.MetricsConfig{Enabled: true, Path: "/metrics"},
		Security: config.SecurityConfig{RequireAuth: requireAuth},
	}
	log := zerolog.Nop()
	publisher := events.NewLogPublisher(log)

	users := mysql.NewUserRepository(db)
	profiles := mysql.NewProfileRepository(db)
	books := mysql.NewBookRepository(db)
	sales := mysql.NewBookSaleRepository(db)
	interactions := mysql.NewInteractionRepository(db)
	reviews := mysql.NewReviewRepository(db)
	quotes := mysql.NewQuoteRepository(db)
	messages := mysql.NewMessageRepository(db)
	follows := mysql.NewFollowRepository(db)
	likes := mysql.NewLikeRepository(db)
	repostSaves := mysql.NewRepostSaveRepository(db)
	txManager := mysql.NewTxManager(db)
	checker := content.NewChecker(users, books, messages, interactions, reviews, quotes)
	cascade := common.NewCascade(txManager, messages, likes, repostSaves, follows)

	sessions := redis.NewSessionStore(rdb)
	jwtManager := jwt.NewManager("test-secret", 15*time.Minute, time.Hour)
	userService := user.NewService(users)

	h := &Handlers{
		User: handler.NewUserHandler(
			appuser.NewRegisterUseCase(userService, users, profiles, txManager, publisher),
			appuser.NewLoginUseCase(userService, jwtManager, sessions, time.Hour),
			appuser.NewLogoutUseCase(sessions),
			appuser.NewRefreshUseCase(userService, jwtManager),
			appuser.NewUseCase(userService, profiles, cascade),
		),
		Profile:     handler.NewProfileHandler(appprofile.NewUseCase(profile.NewService(profiles, users))),
		Book:        handler.NewBookHandler(appbook.NewUseCase(book.NewService(books), redis.NewBookCache(rdb), time.Minute)),
		BookSale:    handler.NewBookSaleHandler(appbooksale.NewUseCase(booksale.NewService(sales, books))),
		Interaction: handler.NewInteractionHandler(appinteraction.NewUseCase(interaction.NewService(interactions, users, books), cascade)),
		Review:      handler.NewReviewHandler(appreview.NewUseCase(review.NewService(reviews, users, books), cascade, publisher)),
		Quote:       handler.NewQuoteHandler(appquote.NewUseCase(quote.NewService(quotes, users, books), cascade, publisher)),
		Message: handler.NewMessageHandler(appmessage.NewUseCase(
			message.NewService(messages, users, interactions, reviews, quotes), cascade, publisher)),
		Follow:     handler.NewFollowHandler(appfollow.NewUseCase(follow.NewService(follows, users, books), publisher)),
		Like:       handler.NewLikeHandler(applike.NewUseCase(like.NewService(likes, users, checker), publisher)),
		RepostSave: handler.NewRepostSaveHandler(apprepostsave.NewUseCase(repostsave.NewService(repostSaves, users, checker), publisher)),
	}
	auth := middleware.NewAuthMiddleware(jwtManager, sessions, requireAuth)

	return &testServer{t: t, engine: New(cfg, log, h, auth), db: db}
}

func (s *testServer) do(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

// data 解析成功响应的data字段
func (s *testServer) data(w *httptest.ResponseRecorder) map[string]interface{} {
	s.t.Helper()
	var resp struct {
		Code int                    `json:"code"`
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp.Data
}

func (s *testServer) errorBody(w *httptest.ResponseRecorder) response.ErrorBody {
	s.t.Helper()
	var body response.ErrorBody
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

// create 发送POST并断言201，返回新资源的ID
func (s *testServer) create(path string, body interface{}) uint {
	s.t.Helper()
	w := s.do(http.MethodPost, path, body, "")
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	data := s.data(w)
	for _, key := range []string{"id", "user_id"} {
		if v, ok := data[key]; ok {
			return uint(v.(float64))
		}
	}
	s.t.Fatalf("响应中没有ID: %s", w.Body.String())
	return 0
}

// world 两个用户、一本书，以及alice对这本书的阅读记录、书评、书摘
type world struct {
	alice, bob                            uint
	book, interaction, review, quoteEntry uint
}

func (s *testServer) seed() world {
	s.t.Helper()
	var w world
	w.alice = s.create("/api/users", gin.H{"username": "alice", "email": "alice@example.com", "password": "secret123"})
	w.bob = s.create("/api/users", gin.H{"username": "bob", "email": "bob@example.com", "password": "secret123"})
	w.book = s.create("/api/books", gin.H{
		"isbn": "978-7-5366-9293-0", "title": "三体", "author": "刘慈欣", "genre": "science",
	})
	w.interaction = s.create("/api/book-interactions", gin.H{
		"user_id": w.alice, "book_id": w.book, "status": "reading",
	})
	w.review = s.create("/api/reviews", gin.H{
		"user_id": w.alice, "book_id": w.book, "title": "好书", "content": "值得一读", "rating": 5,
	})
	w.quoteEntry = s.create("/api/quotes", gin.H{
		"user_id": w.alice, "book_id": w.book, "content": "给岁月以文明", "page_number": 12,
	})
	return w
}

func TestPingAndNoRoute(t *testing.T) {
	s := newTestServer(t, false)

	w := s.do(http.MethodGet, "/ping", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/nothing-here", nil, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	body := s.errorBody(w)
	assert.Equal(t, http.StatusNotFound, body.Code)
	assert.Equal(t, "/api/nothing-here", body.Path)
	assert.NotEmpty(t, body.Timestamp)
	assert.NotNil(t, body.Details)
}

func TestMessage_TypeDeterminesTarget(t *testing.T) {
	s := newTestServer(t, false)
	wd := s.seed()

	cases := []struct {
		name    string
		body    gin.H
		typ     string
		present string
	}{
		{"personal", gin.H{"message_type": "personal", "receiver_id": wd.bob}, "personal", "receiver_id"},
		{"book", gin.H{"message_type": "book", "book_interaction_id": wd.interaction}, "book", "book_interaction_id"},
		{"review", gin.H{"message_type": "review", "review_id": wd.review}, "review", "review_id"},
		{"quote", gin.H{"message_type": "QUOTE", "quote_id": wd.quoteEntry}, "quote", "quote_id"},
	}
	refs := []string{"receiver_id", "book_interaction_id", "review_id", "quote_id"}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.body["sender_id"] = wd.alice
			tc.body["content"] = "hello"
			w := s.do(http.MethodPost, "/api/messages", tc.body, "")
			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

			data := s.data(w)
			assert.Equal(t, tc.typ, data["message_type"])
			for _, ref := range refs {
				if ref == tc.present {
					assert.NotNil(t, data[ref], ref)
				} else {
					assert.Nil(t, data[ref], ref)
				}
			}
		})
	}
}

func TestMessage_RejectsMismatchedTarget(t *testing.T) {
	s := newTestServer(t, false)
	wd := s.seed()

	cases := map[string]gin.H{
		"personal without receiver": {"message_type": "personal", "review_id": wd.review},
		"quote with receiver":       {"message_type": "quote", "quote_id": wd.quoteEntry, "receiver_id": wd.bob},
		"review without review":     {"message_type": "review"},
		"unknown type":              {"message_type": "poem", "receiver_id": wd.bob},
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			body["sender_id"] = wd.alice
			body["content"] = "hello"
			w := s.do(http.MethodPost, "/api/messages", body, "")
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Equal(t, "/api/messages", s.errorBody(w).Path)
		})
	}

	var count int64
	require.NoError(t, s.db.Table("messages").Count(&count).Error)
	assert.Zero(t, count)
}

func TestMessage_ListFilters(t *testing.T) {
	s := newTestServer(t, false)
	wd := s.seed()

	s.create("/api/messages", gin.H{"sender_id": wd.alice, "message_type": "personal", "receiver_id": wd.bob, "content": "hi"})
	s.create("/api/messages", gin.H{"sender_id": wd.bob, "message_type": "review", "review_id": wd.review, "content": "nice"})

	w := s.do(http.MethodGet, "/api/messages?message_type=review", nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 1, s.data(w)["total"])

	w = s.do(http.MethodGet, fmt.Sprintf("/api/messages?target_type=user&target_id=%d", wd.bob), nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 1, s.data(w)["total"])

	w = s.do(http.MethodGet, "/api/messages?message_type=poem", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBook_EnumLowercase(t *testing.T) {
	s := newTestServer(t, false)

	id := s.create("/api/books", gin.H{"isbn": "9787536692930", "title": "三体", "author": "刘慈欣", "genre": "FICTION"})

	w := s.do(http.MethodGet, fmt.Sprintf("/api/books/%d", id), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "fiction", s.data(w)["genre"])

	w = s.do(http.MethodPost, "/api/books", gin.H{"isbn": "9787536692931", "title": "x", "author": "y", "genre": "cooking"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/books", gin.H{"isbn": "not-an-isbn", "title": "x", "author": "y"}, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, s.errorBody(w).Details, "isbn: isbn")

	w = s.do(http.MethodGet, "/api/books/999", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = s.do(http.MethodGet, "/api/books/abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLike_IdempotentAndUnlike(t *testing.T) {
	s := newTestServer(t, false)
	wd := s.seed()

	body := gin.H{"user_id": wd.bob, "review_id": wd.review}
	w := s.do(http.MethodPost, "/api/likes", body, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	first := s.data(w)["id"]

	w = s.do(http.MethodPost, "/api/likes", body, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, first, s.data(w)["id"])

	countPath := fmt.Sprintf("/api/likes/count?target_type=review&target_id=%d", wd.review)
	w = s.do(http.MethodGet, countPath, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, s.data(w)["count"])

	w = s.do(http.MethodGet, fmt.Sprintf("/api/likes/exists?user_id=%d&target_type=review&target_id=%d", wd.bob, wd.review), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, s.data(w)["exists"])

	w = s.do(http.MethodDelete, fmt.Sprintf("/api/likes?user_id=%d&target_type=review&target_id=%d", wd.bob, wd.review), nil, "")
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	w = s.do(http.MethodGet, countPath, nil, "")
	assert.EqualValues(t, 0, s.data(w)["count"])

	// 两个目标
	w = s.do(http.MethodPost, "/api/likes", gin.H{"user_id": wd.bob, "review_id": wd.review, "quote_id": wd.quoteEntry}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	// 不支持的目标类型
	w = s.do(http.MethodGet, fmt.Sprintf("/api/likes/count?target_type=book&target_id=%d", wd.book), nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRepostSaveAndFollow(t *testing.T) {
	s := newTestServer(t, false)
	wd := s.seed()

	save := gin.H{"user_id": wd.bob, "action_type": "save", "quote_id": wd.quoteEntry}
	s.create("/api/repost-saves", save)
	w := s.do(http.MethodPost, "/api/repost-saves", save, "")
	assert.Equal(t, http.StatusBadRequest, w.Code, "同一动作不能重复")

	s.create("/api/repost-saves", gin.H{"user_id": wd.bob, "action_type": "repost", "quote_id": wd.quoteEntry})

	w = s.do(http.MethodGet, fmt.Sprintf("/api/repost-saves?user_id=%d&action_type=save", wd.bob), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, s.data(w)["total"])

	s.create("/api/follows", gin.H{"follower_id": wd.bob, "followed_user_id": wd.alice})
	s.create("/api/follows", gin.H{"follower_id": wd.bob, "followed_book_id": wd.book})
	w = s.do(http.MethodPost, "/api/follows", gin.H{"follower_id": wd.bob, "followed_user_id": wd.alice, "followed_book_id": wd.book}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, fmt.Sprintf("/api/follows/stats/%d", wd.alice), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, s.data(w)["followers"])
}

func TestReviewDelete_RemovesDependents(t *testing.T) {
	s := newTestServer(t, false)
	wd := s.seed()

	s.create("/api/messages", gin.H{"sender_id": wd.bob, "message_type": "review", "review_id": wd.review, "content": "agree"})
	s.create("/api/likes", gin.H{"user_id": wd.bob, "review_id": wd.review})
	s.create("/api/repost-saves", gin.H{"user_id": wd.bob, "action_type": "save", "review_id": wd.review})

	w := s.do(http.MethodDelete, fmt.Sprintf("/api/reviews/%d", wd.review), nil, "")
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	for _, table := range []string{"messages", "likes", "repost_saves"} {
		var count int64
		require.NoError(t, s.db.Table(table).Count(&count).Error)
		assert.Zero(t, count, table)
	}
}

func TestRequireAuth(t *testing.T) {
	s := newTestServer(t, true)

	s.create("/api/users", gin.H{"username": "alice", "email": "alice@example.com", "password": "secret123"})
	s.create("/api/users", gin.H{"username": "bob", "email": "bob@example.com", "password": "secret123"})

	book := gin.H{"isbn": "9787536692930", "title": "三体", "author": "刘慈欣", "genre": "science"}
	w := s.do(http.MethodPost, "/api/books", book, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, http.StatusUnauthorized, s.errorBody(w).Code)

	// 读接口不需要登录
	w = s.do(http.MethodGet, "/api/books", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	// 无效Token不会被当作匿名请求
	w = s.do(http.MethodGet, "/api/books", nil, "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/users/login", gin.H{"email": "alice@example.com", "password": "secret123"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	login := s.data(w)
	token := login["access_token"].(string)
	aliceID := uint(login["user"].(map[string]interface{})["id"].(float64))

	w = s.do(http.MethodPost, "/api/books", book, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	bookID := uint(s.data(w)["id"].(float64))

	// 不传user_id时默认当前用户
	w = s.do(http.MethodPost, "/api/reviews", gin.H{"book_id": bookID, "title": "好书", "content": "值得一读", "rating": 5}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	review := s.data(w)
	assert.EqualValues(t, aliceID, review["user_id"])

	// 不能替别人写
	w = s.do(http.MethodPost, "/api/reviews", gin.H{"user_id": aliceID + 1, "book_id": bookID, "title": "t", "content": "c", "rating": 3}, token)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodPost, "/api/users/logout", nil, token)
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/books", nil, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "登出后Token失效")
}

func TestProfileAndCatalog(t *testing.T) {
	s := newTestServer(t, false)
	wd := s.seed()

	// 注册时已经创建了空资料
	w := s.do(http.MethodPost, "/api/user-profiles", gin.H{"user_id": wd.alice, "display_name": "Alice"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	w = s.do(http.MethodGet, fmt.Sprintf("/api/user-profiles/by-user/%d", wd.alice), nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	p := s.data(w)
	assert.Equal(t, "unspecified", p["gender"])

	w = s.do(http.MethodPut, fmt.Sprintf("/api/user-profiles/%d", uint(p["id"].(float64))),
		gin.H{"display_name": "Alice Liu", "gender": "FEMALE", "location": "Istanbul"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Alice Liu", s.data(w)["display_name"])
	assert.Equal(t, "female", s.data(w)["gender"])

	w = s.do(http.MethodGet, "/api/user-profiles?location=Istanbul", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, s.data(w)["total"])

	sale := s.create("/api/book-sales", gin.H{"book_id": wd.book, "store_name": "当当", "price": 5900, "currency": "CNY", "in_stock": true})
	s.create("/api/book-sales", gin.H{"book_id": wd.book, "store_name": "京东", "price": 3900, "currency": "CNY", "in_stock": true})

	w = s.do(http.MethodPost, "/api/book-sales", gin.H{"book_id": 999, "store_name": "x", "price": 1, "currency": "CNY"}, "")
	assert.Equal(t, http.StatusNotFound, w.Code, "图书不存在")

	// 币种按ISO 4217校验，忽略大小写
	w = s.do(http.MethodPost, "/api/book-sales", gin.H{"book_id": wd.book, "store_name": "x", "price": 1, "currency": "ABC"}, "")
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Contains(t, s.errorBody(w).Details, "currency: currency")
	w = s.do(http.MethodPost, "/api/book-sales", gin.H{"book_id": wd.book, "store_name": "Kitapyurdu", "price": 25000, "currency": "try"}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "TRY", s.data(w)["currency"])

	w = s.do(http.MethodGet, fmt.Sprintf("/api/book-sales?book_id=%d&min_price=4000&max_price=10000", wd.book), nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 1, s.data(w)["total"])

	w = s.do(http.MethodPut, fmt.Sprintf("/api/book-sales/%d", sale), gin.H{"in_stock": false}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, false, s.data(w)["in_stock"])

	w = s.do(http.MethodGet, "/api/quotes?keyword=岁月", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, s.data(w)["total"])
	w = s.do(http.MethodGet, "/api/quotes?keyword=黑暗森林", nil, "")
	assert.EqualValues(t, 0, s.data(w)["total"])
}

func TestReadingUpdates(t *testing.T) {
	s := newTestServer(t, false)
	wd := s.seed()

	// 同一用户同一本书只能有一条阅读记录
	w := s.do(http.MethodPost, "/api/book-interactions", gin.H{"user_id": wd.alice, "book_id": wd.book, "status": "read"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	w = s.do(http.MethodPut, fmt.Sprintf("/api/book-interactions/%d", wd.interaction), gin.H{"status": "READ", "rating": 4}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "read", s.data(w)["status"])
	assert.EqualValues(t, 4, s.data(w)["rating"])

	w = s.do(http.MethodPut, fmt.Sprintf("/api/reviews/%d", wd.review), gin.H{"rating": 3, "contains_spoiler": true}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 3, s.data(w)["rating"])

	w = s.do(http.MethodGet, "/api/reviews?min_rating=4", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, s.data(w)["total"])

	msg := s.create("/api/messages", gin.H{"sender_id": wd.alice, "message_type": "personal", "receiver_id": wd.bob, "content": "hi"})
	s.create("/api/messages", gin.H{"sender_id": wd.bob, "message_type": "personal", "receiver_id": wd.alice, "content": "hello"})

	w = s.do(http.MethodGet, fmt.Sprintf("/api/messages/conversation?user_a=%d&user_b=%d", wd.bob, wd.alice), nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 2, s.data(w)["total"])

	w = s.do(http.MethodPatch, fmt.Sprintf("/api/messages/%d/read", msg), nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, s.data(w)["is_read"])

	// 关系资源没有更新接口
	w = s.do(http.MethodPut, "/api/likes/1", gin.H{}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserDelete_RemovesRelations(t *testing.T) {
	s := newTestServer(t, false)
	wd := s.seed()

	s.create("/api/follows", gin.H{"follower_id": wd.bob, "followed_user_id": wd.alice})
	s.create("/api/likes", gin.H{"user_id": wd.bob, "review_id": wd.review})
	s.create("/api/repost-saves", gin.H{"user_id": wd.bob, "action_type": "repost", "review_id": wd.review})
	s.create("/api/messages", gin.H{"sender_id": wd.alice, "message_type": "personal", "receiver_id": wd.bob, "content": "hi"})

	statsPath := fmt.Sprintf("/api/follows/stats/%d", wd.alice)
	w := s.do(http.MethodGet, statsPath, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.EqualValues(t, 1, s.data(w)["followers"])

	w = s.do(http.MethodDelete, fmt.Sprintf("/api/users/%d", wd.bob), nil, "")
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	w = s.do(http.MethodGet, statsPath, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, s.data(w)["followers"])

	w = s.do(http.MethodGet, fmt.Sprintf("/api/likes/count?target_type=review&target_id=%d", wd.review), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, s.data(w)["count"])

	for _, table := range []string{"repost_saves", "messages"} {
		var count int64
		require.NoError(t, s.db.Table(table).Count(&count).Error)
		assert.Zero(t, count, table)
	}

	// alice的书评保留
	w = s.do(http.MethodGet, fmt.Sprintf("/api/reviews/%d", wd.review), nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	// 注销后用户名和邮箱可以重新注册
	again := s.create("/api/users/register", gin.H{"username": "bob", "email": "bob@example.com", "password": "secret123"})
	assert.NotEqual(t, wd.bob, again)
}

func TestList_PageBounds(t *testing.T) {
	s := newTestServer(t, false)
	s.seed()

	w := s.do(http.MethodGet, "/api/books?page=9223372036854775807", nil, "")
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Equal(t, http.StatusBadRequest, s.errorBody(w).Code)

	w = s.do(http.MethodGet, "/api/books?page=10000", nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := s.data(w)
	assert.EqualValues(t, 1, data["total"])
	assert.Empty(t, data["list"])

	w = s.do(http.MethodGet, "/api/books?page_size=101", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
