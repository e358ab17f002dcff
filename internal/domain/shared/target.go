package shared

import (
	"fmt"

	"github.com/xiebiao/bookclub/pkg/enumjson"
	apperrors "github.com/xiebiao/bookclub/pkg/errors"
)

// TargetKind 被关注、点赞、转发、收藏的对象类型
type TargetKind string

const (
	TargetUser            TargetKind = "USER"
	TargetBook            TargetKind = "BOOK"
	TargetMessage         TargetKind = "MESSAGE"
	TargetBookInteraction TargetKind = "BOOK_INTERACTION"
	TargetReview          TargetKind = "REVIEW"
	TargetQuote           TargetKind = "QUOTE"
)

var targetKindNames = []string{
	string(TargetUser), string(TargetBook), string(TargetMessage),
	string(TargetBookInteraction), string(TargetReview), string(TargetQuote),
}

// ErrInvalidTarget 目标不合法（类型不支持或ID为空）
var ErrInvalidTarget = apperrors.BadRequest("无效的目标对象")

func (k TargetKind) MarshalJSON() ([]byte, error) {
	return enumjson.Marshal(string(k))
}

func (k *TargetKind) UnmarshalJSON(data []byte) error {
	v, err := enumjson.Unmarshal(data, targetKindNames...)
	if err != nil {
		return err
	}
	*k = TargetKind(v)
	return nil
}

// ParseTargetKind 解析目标类型，并限制在allowed范围内
func ParseTargetKind(raw string, allowed ...TargetKind) (TargetKind, error) {
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	v, err := enumjson.Parse(raw, names...)
	if err != nil {
		return "", ErrInvalidTarget.WithDetails(err.Error())
	}
	return TargetKind(v), nil
}

// Target 多态外键的值对象：类型+ID
type Target struct {
	Kind TargetKind
	ID   uint
}

// Key 返回目标的唯一键，如"review:12"
// 数据库用它建立(user_id, target_key)唯一索引，避免多个可空外键无法做唯一约束
func (t Target) Key() string {
	return fmt.Sprintf("%s:%d", enumjson.Lower(string(t.Kind)), t.ID)
}

func (t Target) String() string {
	return t.Key()
}

// Check 校验目标ID非空且类型在allowed范围内
func (t Target) Check(allowed ...TargetKind) error {
	if t.ID == 0 {
		return ErrInvalidTarget.WithDetails("目标ID不能为空")
	}
	for _, a := range allowed {
		if t.Kind == a {
			return nil
		}
	}
	return ErrInvalidTarget.WithDetails(fmt.Sprintf("不支持的目标类型: %s", enumjson.Lower(string(t.Kind))))
}

// TargetFromRefs 从一组可空外键中解析唯一的目标
// refs的key为目标类型，恰好一个非nil时返回对应Target
func TargetFromRefs(refs map[TargetKind]*uint) (Target, error) {
	var (
		found Target
		count int
	)
	for kind, id := range refs {
		if id == nil {
			continue
		}
		count++
		found = Target{Kind: kind, ID: *id}
	}
	if count != 1 {
		return Target{}, ErrInvalidTarget.WithDetails(fmt.Sprintf("必须且只能指定一个目标，实际%d个", count))
	}
	if found.ID == 0 {
		return Target{}, ErrInvalidTarget.WithDetails("目标ID不能为空")
	}
	return found, nil
}
