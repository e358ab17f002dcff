package common

import (
	"context"

	"github.com/xiebiao/bookclub/internal/domain/follow"
	"github.com/xiebiao/bookclub/internal/domain/like"
	"github.com/xiebiao/bookclub/internal/domain/message"
	"github.com/xiebiao/bookclub/internal/domain/repostsave"
	"github.com/xiebiao/bookclub/internal/domain/shared"
	"github.com/xiebiao/bookclub/internal/infrastructure/persistence/mysql"
)

// Cascade 删除书评、书摘、阅读记录、消息时清理引用它们的数据
//
// 删除一个对象时，在同一事务中依次删除：
//  1. 关联到它的消息（以及这些消息上的点赞）
//  2. 它上面的点赞、转发、收藏
//  3. 对象本身
//
// 删除用户时见DeleteUser
type Cascade struct {
	txManager   *mysql.TxManager
	messages    message.Repository
	likes       like.Repository
	repostSaves repostsave.Repository
	follows     follow.Repository
}

// NewCascade 创建级联清理器
func NewCascade(
	txManager *mysql.TxManager,
	messages message.Repository,
	likes like.Repository,
	repostSaves repostsave.Repository,
	follows follow.Repository,
) *Cascade {
	return &Cascade{
		txManager:   txManager,
		messages:    messages,
		likes:       likes,
		repostSaves: repostSaves,
		follows:     follows,
	}
}

// Delete 清理引用target的数据后执行remove
func (c *Cascade) Delete(ctx context.Context, target shared.Target, remove func(ctx context.Context) error) error {
	return c.txManager.Transaction(ctx, func(ctx context.Context) error {
		liked := []shared.Target{target}

		// 消息只会关联用户、阅读记录、书评、书摘；消息本身没有下级消息
		if target.Kind != shared.TargetMessage {
			ids, err := c.messages.DeleteByTarget(ctx, target)
			if err != nil {
				return err
			}
			for _, id := range ids {
				liked = append(liked, shared.Target{Kind: shared.TargetMessage, ID: id})
			}
		}

		if err := c.likes.DeleteByTargets(ctx, liked...); err != nil {
			return err
		}

		if isRepostable(target.Kind) {
			if err := c.repostSaves.DeleteByTargets(ctx, target); err != nil {
				return err
			}
		}

		return remove(ctx)
	})
}

// DeleteUser 清理用户的社交关系后执行remove
// 包括用户发出和收到的消息（及其点赞）、用户的点赞和转发收藏、用户关注和被关注的记录。
// 用户写的书评、书摘、阅读记录保留
func (c *Cascade) DeleteUser(ctx context.Context, userID uint, remove func(ctx context.Context) error) error {
	return c.txManager.Transaction(ctx, func(ctx context.Context) error {
		ids, err := c.messages.DeleteByUser(ctx, userID)
		if err != nil {
			return err
		}
		if len(ids) > 0 {
			liked := make([]shared.Target, 0, len(ids))
			for _, id := range ids {
				liked = append(liked, shared.Target{Kind: shared.TargetMessage, ID: id})
			}
			if err := c.likes.DeleteByTargets(ctx, liked...); err != nil {
				return err
			}
		}

		if err := c.likes.DeleteByUser(ctx, userID); err != nil {
			return err
		}
		if err := c.repostSaves.DeleteByUser(ctx, userID); err != nil {
			return err
		}
		if err := c.follows.DeleteByUser(ctx, userID); err != nil {
			return err
		}
		return remove(ctx)
	})
}

func isRepostable(kind shared.TargetKind) bool {
	for _, k := range repostsave.AllowedTargets {
		if k == kind {
			return true
		}
	}
	return false
}
