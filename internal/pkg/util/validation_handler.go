package util

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

// ErrValidation DTO 校验失败，具体字段见错误信息
var ErrValidation = errors.New("参数校验失败")

func init() {
	validate = validator.New()
}

func ValidateDTO(dto any) error {
	if err := validate.Struct(dto); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			firstError := vErrs[0]
			return fmt.Errorf("%w: 字段 [%s] 校验失败，规则 [%s]",
				ErrValidation,
				firstError.Field(),
				firstError.Tag())
		}
		return err
	}
	return nil
}
