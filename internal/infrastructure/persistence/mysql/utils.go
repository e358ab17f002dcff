package mysql

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/xiebiao/bookclub/internal/domain/shared"
)

// isDuplicateError 判断是否为唯一索引冲突
// MySQL: Error 1062 Duplicate entry 'xxx' for key 'yyy'
// SQLite: UNIQUE constraint failed: users.email
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}

// isCheckViolation 判断是否违反CHECK约束
// MySQL: Error 3819 Check constraint 'chk_messages_target' is violated
// SQLite: CHECK constraint failed: chk_messages_target
func isCheckViolation(err error, name string) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, name) &&
		(strings.Contains(msg, "CHECK constraint failed") || strings.Contains(msg, "Check constraint"))
}

// paginate 应用分页
func paginate(query *gorm.DB, p shared.Pagination) *gorm.DB {
	return query.Limit(p.Limit()).Offset(p.Offset())
}

// likeEscape 与likePattern配合使用："title LIKE ?" + likeEscape
// MySQL和SQLite默认转义字符不同，统一显式指定为!
const likeEscape = " ESCAPE '!'"

var likeReplacer = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// likePattern 转义LIKE通配符后包装成%keyword%
func likePattern(keyword string) string {
	return "%" + likeReplacer.Replace(keyword) + "%"
}

// refColumn 多态外键列：目标类型 → 列名
type refColumn map[shared.TargetKind]string

// where 按目标过滤，目标类型不在映射中时返回ErrInvalidTarget
func (c refColumn) where(query *gorm.DB, t shared.Target) (*gorm.DB, error) {
	col, ok := c[t.Kind]
	if !ok {
		return nil, shared.ErrInvalidTarget
	}
	return query.Where(col+" = ?", t.ID), nil
}

// groupTargets 按目标类型分组ID
func groupTargets(targets []shared.Target) map[shared.TargetKind][]uint {
	grouped := make(map[shared.TargetKind][]uint)
	for _, t := range targets {
		grouped[t.Kind] = append(grouped[t.Kind], t.ID)
	}
	return grouped
}

// uintPtr 复制指针指向的值，避免实体与模型共享内存
func uintPtr(p *uint) *uint {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
