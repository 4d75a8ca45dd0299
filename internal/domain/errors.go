package domain

import (
	"errors"
	"fmt"
)

// GenericChartFailureMessage подставляется, если провайдер не прислал своего сообщения
const GenericChartFailureMessage = "failed to generate chart"

var (
	ErrMissingCoordinate = errors.New("missing lat/lon")
	ErrInvalidCoordinate = errors.New("invalid lat/lon")
	ErrIncompleteProfile = errors.New("incomplete birth profile: date, time, latitude, longitude and timezone offset are required")
	ErrInvalidProfile    = errors.New("invalid birth profile")
	ErrUnauthenticated   = errors.New("authentication required")
	ErrProfileNotFound   = errors.New("profile not found")
	ErrRateLimited       = errors.New("too many requests")
)

// DownstreamError провайдер ответил не-2xx или оказался недоступен
type DownstreamError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *DownstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("downstream error [status=%d]: %s", e.StatusCode, e.Message)
	}
	return "downstream error: " + e.Message
}

func (e *DownstreamError) Unwrap() error {
	return e.Err
}

// NewDownstreamError подставляет общее сообщение, если своего у провайдера нет
func NewDownstreamError(statusCode int, message string, err error) *DownstreamError {
	if message == "" {
		message = GenericChartFailureMessage
	}
	return &DownstreamError{StatusCode: statusCode, Message: message, Err: err}
}

func AsDownstreamError(err error) (*DownstreamError, bool) {
	var de *DownstreamError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// BusinessError ошибка бизнес-логики, которая уже залогирована в UseCase
type BusinessError struct {
	Err error
}

func (e *BusinessError) Error() string {
	return e.Err.Error()
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func WrapBusinessError(err error) error {
	if err == nil {
		return nil
	}
	return &BusinessError{Err: err}
}

func IsBusinessError(err error) bool {
	var businessErr *BusinessError
	return errors.As(err, &businessErr)
}
