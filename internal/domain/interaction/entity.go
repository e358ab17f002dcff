package interaction

import (
	"time"

	"github.com/xiebiao/bookclub/pkg/enumjson"
)

// Status 阅读状态
type Status string

const (
	StatusWantToRead Status = "WANT_TO_READ"
	StatusReading    Status = "READING"
	StatusRead       Status = "READ"
	StatusAbandoned  Status = "ABANDONED"
)

var statusNames = []string{
	string(StatusWantToRead), string(StatusReading), string(StatusRead), string(StatusAbandoned),
}

// ParseStatus 解析接口传入的阅读状态
func ParseStatus(raw string) (Status, error) {
	v, err := enumjson.Parse(raw, statusNames...)
	return Status(v), err
}

func (s Status) MarshalJSON() ([]byte, error) {
	return enumjson.Marshal(string(s))
}

func (s *Status) UnmarshalJSON(data []byte) error {
	v, err := enumjson.Unmarshal(data, statusNames...)
	if err != nil {
		return err
	}
	*s = Status(v)
	return nil
}

// Interaction 用户与图书的阅读记录（书架）
// 同一用户对同一本书只有一条记录
type Interaction struct {
	ID         uint
	UserID     uint
	BookID     uint
	Status     Status
	Rating     int // 0-5，0表示未评分
	Note       string
	StartedAt  *time.Time
	FinishedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// UpdateParams 更新参数（nil表示不修改）
type UpdateParams struct {
	Status     *Status
	Rating     *int
	Note       *string
	StartedAt  *time.Time
	FinishedAt *time.Time
}

// Apply 应用更新
// 状态切换为READING/READ时，如未指定时间则自动记录开始/完成时间
func (i *Interaction) Apply(u UpdateParams, now time.Time) {
	if u.Status != nil {
		i.Status = *u.Status
	}
	if u.Rating != nil {
		i.Rating = *u.Rating
	}
	if u.Note != nil {
		i.Note = *u.Note
	}
	if u.StartedAt != nil {
		i.StartedAt = u.StartedAt
	}
	if u.FinishedAt != nil {
		i.FinishedAt = u.FinishedAt
	}
	i.stampProgress(now)
	i.UpdatedAt = now
}

func (i *Interaction) stampProgress(now time.Time) {
	switch i.Status {
	case StatusReading:
		if i.StartedAt == nil {
			i.StartedAt = &now
		}
	case StatusRead:
		if i.StartedAt == nil {
			i.StartedAt = &now
		}
		if i.FinishedAt == nil {
			i.FinishedAt = &now
		}
	}
}

// Validate 校验评分和时间
func (i *Interaction) Validate() error {
	if i.Rating < 0 || i.Rating > 5 {
		return ErrInvalidRating
	}
	if i.StartedAt != nil && i.FinishedAt != nil && i.FinishedAt.Before(*i.StartedAt) {
		return ErrInvalidPeriod
	}
	return nil
}
