package profile

import (
	"time"

	"github.com/xiebiao/bookclub/pkg/enumjson"
)

// Gender 性别
type Gender string

const (
	GenderMale        Gender = "MALE"
	GenderFemale      Gender = "FEMALE"
	GenderOther       Gender = "OTHER"
	GenderUnspecified Gender = "UNSPECIFIED"
)

var genderNames = []string{
	string(GenderMale), string(GenderFemale), string(GenderOther), string(GenderUnspecified),
}

// ParseGender 解析接口传入的性别（忽略大小写）
func ParseGender(raw string) (Gender, error) {
	v, err := enumjson.Parse(raw, genderNames...)
	return Gender(v), err
}

func (g Gender) MarshalJSON() ([]byte, error) {
	return enumjson.Marshal(string(g))
}

func (g *Gender) UnmarshalJSON(data []byte) error {
	v, err := enumjson.Unmarshal(data, genderNames...)
	if err != nil {
		return err
	}
	*g = Gender(v)
	return nil
}

// Profile 用户资料
// 每个用户最多一份资料（UserID唯一）
type Profile struct {
	ID          uint
	UserID      uint
	DisplayName string
	Bio         string
	AvatarURL   string
	Location    string
	Website     string
	BirthDate   *time.Time
	Gender      Gender
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewEmptyProfile 注册时创建的空资料
func NewEmptyProfile(userID uint, displayName string) *Profile {
	now := time.Now()
	return &Profile{
		UserID:      userID,
		DisplayName: displayName,
		Gender:      GenderUnspecified,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Apply 按非nil字段更新资料
func (p *Profile) Apply(u UpdateParams) {
	if u.DisplayName != nil {
		p.DisplayName = *u.DisplayName
	}
	if u.Bio != nil {
		p.Bio = *u.Bio
	}
	if u.AvatarURL != nil {
		p.AvatarURL = *u.AvatarURL
	}
	if u.Location != nil {
		p.Location = *u.Location
	}
	if u.Website != nil {
		p.Website = *u.Website
	}
	if u.BirthDate != nil {
		p.BirthDate = u.BirthDate
	}
	if u.Gender != nil {
		p.Gender = *u.Gender
	}
	p.UpdatedAt = time.Now()
}

// UpdateParams 更新参数（nil表示不修改）
type UpdateParams struct {
	DisplayName *string
	Bio         *string
	AvatarURL   *string
	Location    *string
	Website     *string
	BirthDate   *time.Time
	Gender      *Gender
}
