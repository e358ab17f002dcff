package dto

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/xiebiao/bookclub/internal/domain/book"
	"github.com/xiebiao/bookclub/internal/domain/booksale"
)

var registerOnce sync.Once

// RegisterValidators 在gin的validator上注册自定义规则
//   - isbn: 10位或13位ISBN，允许连字符和空格
//   - currency: ISO 4217货币代码，忽略大小写（大写后按iso4217校验）
//
// 错误详情中的字段名使用json tag
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(jsonFieldName)
		_ = v.RegisterValidation("isbn", validateISBN)
		_ = v.RegisterValidation("currency", validateCurrency)
	})
}

func validateISBN(fl validator.FieldLevel) bool {
	return book.IsValidISBN(fl.Field().String())
}

func validateCurrency(fl validator.FieldLevel) bool {
	return booksale.IsValidCurrency(fl.Field().String())
}

func jsonFieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}
