// Package enumjson 提供枚举类型的JSON编解码
//
// 枚举在数据库中以大写常量名保存（如 REVIEW），在接口中以小写字符串传输（如 "review"）。
// 小写转换使用土耳其语区域规则，再把无点的ı替换回i，
// 这样无论服务运行在什么区域设置下，输出都是稳定的ASCII字符串。
// 解析时同样接受ı/İ，并忽略大小写。
package enumjson

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	turkishLower = cases.Lower(language.Turkish)
	neutralUpper = cases.Upper(language.Und)
	dotless      = strings.NewReplacer("ı", "i", "İ", "I")
)

// Lower 返回枚举名的接口表示（小写、替换无点i）
//
//	Lower("REVIEW") == "review"  // 土耳其语规则下为"revıew"，替换后为"review"
func Lower(name string) string {
	return dotless.Replace(turkishLower.String(name))
}

// Canonical 返回输入字符串的规范（大写）形式
func Canonical(s string) string {
	return neutralUpper.String(dotless.Replace(strings.TrimSpace(s)))
}

// Marshal 编码枚举名
func Marshal(name string) ([]byte, error) {
	return json.Marshal(Lower(name))
}

// Unmarshal 解码JSON字符串并校验是否属于allowed
// 返回规范的大写枚举名
func Unmarshal(data []byte, allowed ...string) (string, error) {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return "", fmt.Errorf("枚举值必须是字符串: %w", err)
	}
	return Parse(raw, allowed...)
}

// Parse 解析字符串形式的枚举值（用于query参数）
func Parse(raw string, allowed ...string) (string, error) {
	canonical := Canonical(raw)
	for _, a := range allowed {
		if canonical == a {
			return a, nil
		}
	}
	lowered := make([]string, len(allowed))
	for i, a := range allowed {
		lowered[i] = Lower(a)
	}
	return "", fmt.Errorf("无效的枚举值%q，可选值: %s", raw, strings.Join(lowered, ", "))
}
