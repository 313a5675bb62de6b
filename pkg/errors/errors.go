package errors

import "fmt"

var (
	// Авторизация
	ErrEmptyAuthHeader      = fmt.Errorf("nedostaje Authorization zaglavlje")
	ErrInvalidAuthHeader    = fmt.Errorf("neispravan format Authorization zaglavlja")
	ErrInvalidSigningMethod = fmt.Errorf("neispravan metod potpisa tokena")
	ErrInvalidToken         = fmt.Errorf("nevažeći token")
	ErrUnauthorized         = fmt.Errorf("neautorizovan pristup")
	ErrForbidden            = fmt.Errorf("pristup zabranjen")

	// Заявки и архив
	ErrInvalidStatus        = fmt.Errorf("status porudžbine nije podržan")
	ErrEmptyStatus          = fmt.Errorf("status je obavezan")
	ErrInvalidPaymentStatus = fmt.Errorf("status plaćanja mora biti unpaid, paid ili refunded")
	ErrInvalidArchiveType   = fmt.Errorf("tip arhive mora biti order, pdf ili all")
	ErrEmptyIDs             = fmt.Errorf("lista ID-jeva ne sme biti prazna")
	ErrInvalidArchiveEntry  = fmt.Errorf("neispravan zapis arhive")

	// Общие
	ErrNotFound   = fmt.Errorf("zapis nije pronađen")
	ErrBadRequest = fmt.Errorf("neispravan zahtev")
)

// HttpError - ошибка с HTTP-кодом и сообщением для пользователя.
// Err и Context идут только в лог, Details отдаётся клиенту в body.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Context map[string]interface{}
	Details interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, context map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Context: context}
}

// WithDetails прикрепляет к ошибке тело ответа (например, частичный счётчик пакетной операции).
func (e *HttpError) WithDetails(details interface{}) *HttpError {
	e.Details = details
	return e
}

type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}
