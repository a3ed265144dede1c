package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	amildomain "github.com/lazisku/maal/internal/amil/domain"
	fundingdomain "github.com/lazisku/maal/internal/amilfunding/domain"
	assetdomain "github.com/lazisku/maal/internal/asset/domain"
	distributiondomain "github.com/lazisku/maal/internal/distribution/domain"
	donordomain "github.com/lazisku/maal/internal/donor/domain"
	dskldomain "github.com/lazisku/maal/internal/dskl/domain"
	infaqdomain "github.com/lazisku/maal/internal/infaq/domain"
	nonhalaldomain "github.com/lazisku/maal/internal/nonhalal/domain"
	nucoindomain "github.com/lazisku/maal/internal/nucoin/domain"
	organizationdomain "github.com/lazisku/maal/internal/organization/domain"
	reportingdomain "github.com/lazisku/maal/internal/reporting/domain"
	walletdomain "github.com/lazisku/maal/internal/wallet/domain"
	zakatdomain "github.com/lazisku/maal/internal/zakat/domain"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrInternal       = errors.New("internal_error")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}
	}

	switch {
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case isPostingFaultError(err):
		return http.StatusUnprocessableEntity, errorPayload{
			Type:    "unprocessable",
			Message: err.Error(),
		}
	case errors.Is(err, ErrInternal):
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return true
	case isOrganizationValidationError(err),
		isAmilValidationError(err),
		isDonorValidationError(err),
		isZakatValidationError(err),
		isInfaqValidationError(err),
		isDsklValidationError(err),
		isAmilFundingValidationError(err),
		isDistributionValidationError(err),
		isNonHalalValidationError(err),
		isNuCoinValidationError(err),
		isAssetValidationError(err),
		isReportingValidationError(err):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, organizationdomain.ErrNotFound),
		errors.Is(err, amildomain.ErrOrganizerNotFound),
		errors.Is(err, amildomain.ErrAmilNotFound),
		errors.Is(err, donordomain.ErrVolunteerNotFound),
		errors.Is(err, donordomain.ErrDonorNotFound),
		errors.Is(err, zakatdomain.ErrNotFound),
		errors.Is(err, infaqdomain.ErrNotFound),
		errors.Is(err, dskldomain.ErrNotFound),
		errors.Is(err, fundingdomain.ErrFundingNotFound),
		errors.Is(err, fundingdomain.ErrUsageNotFound),
		errors.Is(err, distributiondomain.ErrDoneeNotFound),
		errors.Is(err, distributiondomain.ErrNotFound),
		errors.Is(err, nonhalaldomain.ErrReceiveNotFound),
		errors.Is(err, nonhalaldomain.ErrDistributionNotFound),
		errors.Is(err, nucoindomain.ErrCoinNotFound),
		errors.Is(err, nucoindomain.ErrTransferNotFound),
		errors.Is(err, assetdomain.ErrNotFound),
		errors.Is(err, reportingdomain.ErrMutationNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

// isPostingFaultError covers requests that are well formed but cannot be
// honored by the ledger in its current state.
func isPostingFaultError(err error) bool {
	var secondary *walletdomain.SecondaryPostingError
	if errors.As(err, &secondary) {
		return true
	}
	switch {
	case errors.Is(err, walletdomain.ErrInsufficientFunds),
		errors.Is(err, walletdomain.ErrInvalidDirection),
		errors.Is(err, nucoindomain.ErrNotApproved),
		errors.Is(err, nucoindomain.ErrInvalidScopePair):
		return true
	default:
		return false
	}
}

func validationErrorCode(err error) string {
	if errors.Is(err, ErrInvalidRequest) {
		return "invalid_request"
	}
	return err.Error()
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	default:
		return "invalid value"
	}
}
