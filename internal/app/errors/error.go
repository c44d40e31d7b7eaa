package errors

import (
	"fmt"
	"net/http"
	"reflect"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type ErrorCode string

const (
	CodeNotFound            ErrorCode = "NOT_FOUND"
	CodeInvalidInput        ErrorCode = "INVALID_INPUT"
	CodeUnauthorized        ErrorCode = "UNAUTHORIZED"
	CodeCreditsExhausted    ErrorCode = "CREDITS_EXHAUSTED"
	CodeVoucherNotApproved  ErrorCode = "VOUCHER_NOT_APPROVED"
	CodeInsufficientBalance ErrorCode = "INSUFFICIENT_BALANCE"
	CodeExpiredVoucher      ErrorCode = "EXPIRED_VOUCHER"
	CodeConflict            ErrorCode = "CONFLICT"
	CodeTooManyRequests     ErrorCode = "TOO_MANY_REQUESTS"
	CodeInternal            ErrorCode = "INTERNAL"
)

type AppError struct {
	StatusCode int
	Code       ErrorCode
	Message    string
	// Remaining carries the actual remaining balance on
	// INSUFFICIENT_BALANCE failures so clients can display it.
	Remaining *decimal.Decimal
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(statusCode int, code ErrorCode, message string) *AppError {
	return &AppError{
		StatusCode: statusCode,
		Code:       code,
		Message:    message,
	}
}

func NewBadRequestError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeInvalidInput, message)
}

func NewUnauthorizedError(message ...string) *AppError {
	if len(message) > 0 {
		return NewAppError(http.StatusUnauthorized, CodeUnauthorized, message[0])
	}
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, "Unauthorized")
}

func NewNotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message)
}

func NewConflictError(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeConflict, message)
}

func NewCreditsExhaustedError(message string) *AppError {
	return NewAppError(http.StatusPaymentRequired, CodeCreditsExhausted, message)
}

func NewVoucherNotApprovedError(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeVoucherNotApproved, message)
}

func NewExpiredVoucherError(message string) *AppError {
	return NewAppError(http.StatusGone, CodeExpiredVoucher, message)
}

func NewInsufficientBalanceError(remaining decimal.Decimal) *AppError {
	err := NewAppError(http.StatusBadRequest, CodeInsufficientBalance,
		fmt.Sprintf("Insufficient voucher balance (remaining %s)", remaining.StringFixed(2)))
	err.Remaining = &remaining
	return err
}

func NewTooManyRequestsError(message string) *AppError {
	return NewAppError(http.StatusTooManyRequests, CodeTooManyRequests, message)
}

func NewInternalServerError(originalError error, message string) *AppError {
	logrus.Errorf("[%s] %s", reflect.TypeOf(originalError).String(), originalError)
	return NewAppError(http.StatusInternalServerError, CodeInternal, message)
}
