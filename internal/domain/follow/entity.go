package follow

import (
	"time"

	"github.com/xiebiao/bookclub/internal/domain/shared"
)

// AllowedTargets 可关注的对象类型
var AllowedTargets = []shared.TargetKind{shared.TargetUser, shared.TargetBook}

// Follow 关注关系
// 一行只关注一个对象：FollowedUserID和FollowedBookID恰好一个非空
type Follow struct {
	ID             uint
	FollowerID     uint
	FollowedUserID *uint
	FollowedBookID *uint
	CreatedAt      time.Time
}

// New 创建关注关系
func New(followerID uint, target shared.Target) (*Follow, error) {
	if err := target.Check(AllowedTargets...); err != nil {
		return nil, err
	}
	if target.Kind == shared.TargetUser && target.ID == followerID {
		return nil, ErrFollowSelf
	}

	f := &Follow{FollowerID: followerID, CreatedAt: time.Now()}
	id := target.ID
	switch target.Kind {
	case shared.TargetUser:
		f.FollowedUserID = &id
	case shared.TargetBook:
		f.FollowedBookID = &id
	}
	return f, nil
}

// Target 返回关注对象
func (f *Follow) Target() (shared.Target, error) {
	return shared.TargetFromRefs(map[shared.TargetKind]*uint{
		shared.TargetUser: f.FollowedUserID,
		shared.TargetBook: f.FollowedBookID,
	})
}

// Stats 用户的关注统计
type Stats struct {
	UserID         uint
	Followers      int64
	FollowingUsers int64
	FollowingBooks int64
}
