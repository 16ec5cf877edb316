package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/water-station-map/internal/domain"
)

type AppError struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	StatusCode int                    `json:"-"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    make(map[string]interface{}),
	}
}

// WithDetails возвращает копию ошибки с деталями (общие экземпляры не меняются)
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	c := *e
	c.Details = details
	return &c
}

// FromDomain переводит доменную ошибку в AppError
func FromDomain(err error) *AppError {
	var appErr *AppError
	switch {
	case stderrors.As(err, &appErr):
		return appErr
	case stderrors.Is(err, domain.ErrStationNotFound):
		return ErrStationNotFound
	case stderrors.Is(err, domain.ErrReportNotFound):
		return ErrReportNotFound
	case stderrors.Is(err, domain.ErrDistrictNotFound):
		return ErrDistrictNotFound
	case stderrors.Is(err, domain.ErrInvalidStation), stderrors.Is(err, domain.ErrInvalidReport):
		return ErrInvalidRequest.WithDetails(map[string]interface{}{"reason": err.Error()})
	case stderrors.Is(err, domain.ErrNotConnected):
		return ErrStoreUnavailable
	case stderrors.Is(err, domain.ErrUnsupported):
		return ErrUnsupportedOperation
	default:
		return ErrInternalServer
	}
}
