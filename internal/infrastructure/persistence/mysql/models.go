package mysql

import (
	"time"

	"gorm.io/gorm"
)

// UserModel GORM用户模型
// domain/user/entity.go是领域实体，不依赖GORM，Repository负责两者之间的转换
//
// 用户名、邮箱的唯一索引包含active列：正常用户active=true，软删除时置为NULL。
// 唯一索引中NULL互不冲突，注销后的用户名和邮箱可以重新注册
type UserModel struct {
	ID        uint           `gorm:"primaryKey"`
	Username  string         `gorm:"uniqueIndex:idx_users_username_active,priority:1;size:30;not null;comment:用户名"`
	Email     string         `gorm:"uniqueIndex:idx_users_email_active,priority:1;size:100;not null;comment:邮箱"`
	Password  string         `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	Active    *bool          `gorm:"uniqueIndex:idx_users_username_active,priority:2;uniqueIndex:idx_users_email_active,priority:2;default:true;comment:是否有效（软删除后为NULL）"`
	CreatedAt time.Time      `gorm:"comment:创建时间"`
	UpdatedAt time.Time      `gorm:"comment:更新时间"`
	DeletedAt gorm.DeletedAt `gorm:"index;comment:删除时间（软删除）"`
}

func (UserModel) TableName() string {
	return "users"
}

// ProfileModel 用户资料，一个用户一条
type ProfileModel struct {
	ID          uint       `gorm:"primaryKey"`
	UserID      uint       `gorm:"uniqueIndex;not null;comment:用户ID"`
	DisplayName string     `gorm:"size:50;comment:显示名称"`
	Bio         string     `gorm:"size:500;comment:个人简介"`
	AvatarURL   string     `gorm:"size:500;comment:头像URL"`
	Location    string     `gorm:"index;size:100;comment:所在地"`
	Website     string     `gorm:"size:200;comment:个人网站"`
	BirthDate   *time.Time `gorm:"type:date;comment:生日"`
	Gender      string     `gorm:"size:20;not null;default:UNSPECIFIED;comment:性别"`
	CreatedAt   time.Time
	UpdatedAt   time.Time `gorm:"comment:更新时间"`
}

func (ProfileModel) TableName() string {
	return "user_profiles"
}

// BookModel GORM图书模型
// ISBN有唯一索引；标题、作者建搜索索引
type BookModel struct {
	ID            uint      `gorm:"primaryKey"`
	ISBN          string    `gorm:"uniqueIndex;size:13;not null;comment:ISBN号"`
	Title         string    `gorm:"index:idx_books_search;size:200;not null;comment:书名"`
	Author        string    `gorm:"index:idx_books_search;size:100;not null;comment:作者"`
	Publisher     string    `gorm:"size:100;comment:出版社"`
	PublishedYear int       `gorm:"index;comment:出版年份"`
	PageCount     int       `gorm:"comment:页数"`
	Language      string    `gorm:"size:10;comment:语言"`
	Genre         string    `gorm:"index;size:20;not null;default:OTHER;comment:类型"`
	Description   string    `gorm:"type:text;comment:图书描述"`
	CoverURL      string    `gorm:"size:500;comment:封面图片URL"`
	CreatedAt     time.Time `gorm:"index;comment:创建时间"`
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

func (BookModel) TableName() string {
	return "books"
}

// BookSaleModel 图书售卖信息，价格以最小货币单位（分）存储
type BookSaleModel struct {
	ID        uint   `gorm:"primaryKey"`
	BookID    uint   `gorm:"index;not null;comment:图书ID"`
	StoreName string `gorm:"size:100;not null;comment:店铺名称"`
	Price     int64  `gorm:"index;not null;comment:价格(最小货币单位)"`
	Currency  string `gorm:"size:3;not null;comment:币种(ISO 4217)"`
	URL       string `gorm:"size:500;comment:购买链接"`
	InStock   bool   `gorm:"not null;comment:是否有货"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (BookSaleModel) TableName() string {
	return "book_sales"
}

// InteractionModel 阅读记录，(user_id, book_id)唯一
type InteractionModel struct {
	ID         uint       `gorm:"primaryKey"`
	UserID     uint       `gorm:"uniqueIndex:idx_interactions_user_book;not null;comment:用户ID"`
	BookID     uint       `gorm:"uniqueIndex:idx_interactions_user_book;index;not null;comment:图书ID"`
	Status     string     `gorm:"index;size:20;not null;comment:阅读状态"`
	Rating     int        `gorm:"not null;default:0;comment:评分(0表示未评分)"`
	Note       string     `gorm:"type:text;comment:笔记"`
	StartedAt  *time.Time `gorm:"comment:开始阅读时间"`
	FinishedAt *time.Time `gorm:"comment:读完时间"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (InteractionModel) TableName() string {
	return "book_interactions"
}

type ReviewModel struct {
	ID              uint   `gorm:"primaryKey"`
	UserID          uint   `gorm:"index;not null;comment:作者ID"`
	BookID          uint   `gorm:"index;not null;comment:图书ID"`
	Title           string `gorm:"size:200;comment:标题"`
	Content         string `gorm:"type:text;not null;comment:内容"`
	Rating          int    `gorm:"index;not null;comment:评分(1-5)"`
	ContainsSpoiler bool   `gorm:"not null;default:false;comment:是否剧透"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (ReviewModel) TableName() string {
	return "reviews"
}

type QuoteModel struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     uint   `gorm:"index;not null;comment:摘录人ID"`
	BookID     uint   `gorm:"index;not null;comment:图书ID"`
	Content    string `gorm:"type:text;not null;comment:摘录内容"`
	PageNumber int    `gorm:"not null;default:0;comment:页码"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (QuoteModel) TableName() string {
	return "quotes"
}

// MessageModel 消息
// 消息类型与四个可空外键的对应关系由chk_messages_target约束保证：
// PERSONAL只有receiver_id，BOOK只有book_interaction_id，REVIEW只有review_id，QUOTE只有quote_id
type MessageModel struct {
	ID                uint      `gorm:"primaryKey"`
	SenderID          uint      `gorm:"index;not null;comment:发送者ID"`
	MessageType       string    `gorm:"size:20;not null;check:chk_messages_target,(message_type = 'PERSONAL' AND receiver_id IS NOT NULL AND book_interaction_id IS NULL AND review_id IS NULL AND quote_id IS NULL) OR (message_type = 'BOOK' AND receiver_id IS NULL AND book_interaction_id IS NOT NULL AND review_id IS NULL AND quote_id IS NULL) OR (message_type = 'REVIEW' AND receiver_id IS NULL AND book_interaction_id IS NULL AND review_id IS NOT NULL AND quote_id IS NULL) OR (message_type = 'QUOTE' AND receiver_id IS NULL AND book_interaction_id IS NULL AND review_id IS NULL AND quote_id IS NOT NULL);comment:消息类型"`
	ReceiverID        *uint     `gorm:"index;comment:接收者ID(PERSONAL)"`
	BookInteractionID *uint     `gorm:"index;comment:阅读记录ID(BOOK)"`
	ReviewID          *uint     `gorm:"index;comment:书评ID(REVIEW)"`
	QuoteID           *uint     `gorm:"index;comment:书摘ID(QUOTE)"`
	Content           string    `gorm:"type:text;not null;comment:内容"`
	IsRead            bool      `gorm:"not null;default:false;comment:是否已读"`
	CreatedAt         time.Time `gorm:"index"`
	UpdatedAt         time.Time
}

func (MessageModel) TableName() string {
	return "messages"
}

// FollowModel 关注关系
// target_key形如"user:3"、"book:7"，用于(follower_id, target_key)唯一索引
// chk_follows_target保证followed_user_id和followed_book_id有且只有一个
type FollowModel struct {
	ID             uint   `gorm:"primaryKey"`
	FollowerID     uint   `gorm:"uniqueIndex:idx_follows_follower_target;not null;comment:关注者ID"`
	FollowedUserID *uint  `gorm:"index;comment:被关注用户ID"`
	FollowedBookID *uint  `gorm:"index;comment:被关注图书ID"`
	TargetKey      string `gorm:"uniqueIndex:idx_follows_follower_target;size:40;not null;check:chk_follows_target,(followed_user_id IS NOT NULL AND followed_book_id IS NULL) OR (followed_user_id IS NULL AND followed_book_id IS NOT NULL);comment:关注对象键"`
	CreatedAt      time.Time
}

func (FollowModel) TableName() string {
	return "follows"
}

// LikeModel 点赞，(user_id, target_key)唯一
// chk_likes_target保证四个对象ID有且只有一个非空
type LikeModel struct {
	ID                uint   `gorm:"primaryKey"`
	UserID            uint   `gorm:"uniqueIndex:idx_likes_user_target;not null;comment:用户ID"`
	MessageID         *uint  `gorm:"index;comment:消息ID"`
	BookInteractionID *uint  `gorm:"index;comment:阅读记录ID"`
	ReviewID          *uint  `gorm:"index;comment:书评ID"`
	QuoteID           *uint  `gorm:"index;comment:书摘ID"`
	TargetKey         string `gorm:"uniqueIndex:idx_likes_user_target;index;size:40;not null;check:chk_likes_target,(CASE WHEN message_id IS NULL THEN 0 ELSE 1 END) + (CASE WHEN book_interaction_id IS NULL THEN 0 ELSE 1 END) + (CASE WHEN review_id IS NULL THEN 0 ELSE 1 END) + (CASE WHEN quote_id IS NULL THEN 0 ELSE 1 END) = 1;comment:点赞对象键"`
	CreatedAt         time.Time
}

func (LikeModel) TableName() string {
	return "likes"
}

// RepostSaveModel 转发/收藏，(user_id, target_key, action_type)唯一
// chk_repost_saves_target保证三个对象ID有且只有一个非空
type RepostSaveModel struct {
	ID                uint   `gorm:"primaryKey"`
	UserID            uint   `gorm:"uniqueIndex:idx_repost_saves_user_target_action;not null;comment:用户ID"`
	ActionType        string `gorm:"uniqueIndex:idx_repost_saves_user_target_action;size:10;not null;comment:动作(REPOST/SAVE)"`
	ReviewID          *uint  `gorm:"index;comment:书评ID"`
	QuoteID           *uint  `gorm:"index;comment:书摘ID"`
	BookInteractionID *uint  `gorm:"index;comment:阅读记录ID"`
	TargetKey         string `gorm:"uniqueIndex:idx_repost_saves_user_target_action;index;size:40;not null;check:chk_repost_saves_target,(CASE WHEN review_id IS NULL THEN 0 ELSE 1 END) + (CASE WHEN quote_id IS NULL THEN 0 ELSE 1 END) + (CASE WHEN book_interaction_id IS NULL THEN 0 ELSE 1 END) = 1;comment:对象键"`
	CreatedAt         time.Time
}

func (RepostSaveModel) TableName() string {
	return "repost_saves"
}
