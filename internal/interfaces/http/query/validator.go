// Package query は信頼できないクエリ文字列を型付きのクエリオブジェクトへ
// 変換するバリデータ。解析は純粋で、1 項目でも不正なら既定値の部分適用は
// 行わずリクエスト全体を拒否する。
package query

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sngm3741/higo-analytics/api/internal/interfaces/http/common"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("query"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// checkStruct はタグ検証の結果をフィールド名付きのメッセージ列へ変換する。
func checkStruct(dest any) []string {
	err := validate.Struct(dest)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(errs))
	for _, fieldErr := range errs {
		messages = append(messages, fmt.Sprintf("%s %s", fieldErr.Field(), validationMessage(fieldErr)))
	}
	return messages
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	}
	return "is invalid"
}

// validationError は集めたメッセージを 400 相当の単一エラーへ畳み込む。
func validationError(messages []string) error {
	return common.NewBadRequest("invalid query parameters: " + strings.Join(messages, "; "))
}
