package models

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/julianstephens/microhabit/internal/constants"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("datekey", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(constants.DateFormat, fl.Field().String())
		return err == nil
	})
	return v
}
