package payrollerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrInvalidBonusAmount = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid bonus amount. Must be a positive number.",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrPayslipDelivery = apperror.New(
		apperror.CodeDependencyFailure,
		"payslip delivery failed",
		http.StatusServiceUnavailable,
	)
)
