package holidayerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidHolidayType = apperror.New(
		apperror.CodeInvalidInput,
		"invalid holiday type",
		http.StatusBadRequest,
	)
	ErrHolidayExists = apperror.New(
		apperror.CodeConflict,
		"a holiday already exists on that date",
		http.StatusConflict,
	)
	ErrHolidayTypeRestricted = apperror.New(
		apperror.CodeForbidden,
		"only admins may create non-personal holidays",
		http.StatusForbidden,
	)
)
