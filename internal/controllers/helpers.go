package controllers

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// fieldFailed - не прошло ли проверку конкретное поле DTO.
func fieldFailed(err error, field string) bool {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return false
	}
	for _, fe := range validationErrors {
		if fe.StructField() == field {
			return true
		}
	}
	return false
}
