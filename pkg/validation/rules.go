package validation

import (
	"github.com/go-playground/validator/v10"

	"supplies-backoffice/pkg/constants"
)

// registerRules регистрирует теги, которые мы используем в struct tags
func registerRules(v *validator.Validate) error {
	if err := v.RegisterValidation("order_status", isOrderStatus); err != nil {
		return err
	}
	if err := v.RegisterValidation("payment_status", isPaymentStatus); err != nil {
		return err
	}
	if err := v.RegisterValidation("archive_filter", isArchiveFilter); err != nil {
		return err
	}
	return nil
}

func isOrderStatus(fl validator.FieldLevel) bool {
	return constants.OrderStatus(fl.Field().String()).IsValid()
}

func isPaymentStatus(fl validator.FieldLevel) bool {
	return constants.PaymentStatus(fl.Field().String()).IsValid()
}

func isArchiveFilter(fl validator.FieldLevel) bool {
	_, ok := constants.ParseArchiveFilter(fl.Field().String())
	return ok
}
