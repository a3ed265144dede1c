package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	fundingdomain "github.com/lazisku/maal/internal/amilfunding/domain"
	nucoindomain "github.com/lazisku/maal/internal/nucoin/domain"
	walletdomain "github.com/lazisku/maal/internal/wallet/domain"
	zakatdomain "github.com/lazisku/maal/internal/zakat/domain"
	"github.com/stretchr/testify/assert"
)

func newErrorEngine(err error) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandlingMiddleware())
	r.GET("/boom", func(c *gin.Context) {
		AbortWithError(c, err)
	})
	return r
}

func do(r *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	r.ServeHTTP(w, req)
	return w
}

func TestMapValidationError(t *testing.T) {
	w := do(newErrorEngine(zakatdomain.ErrInvalidAmount))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation_error")
	assert.Contains(t, w.Body.String(), "invalid_amount")
}

func TestMapValidationErrorFieldFromCode(t *testing.T) {
	w := do(newErrorEngine(fundingdomain.ErrInvalidFundingType))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"funding_type"`)
}

func TestMapNotFoundError(t *testing.T) {
	w := do(newErrorEngine(zakatdomain.ErrNotFound))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not_found")
}

func TestMapPostingFaults(t *testing.T) {
	for _, err := range []error{
		walletdomain.ErrInsufficientFunds,
		nucoindomain.ErrNotApproved,
		nucoindomain.ErrInvalidScopePair,
	} {
		w := do(newErrorEngine(err))
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, err.Error())
	}
}

func TestMapSecondaryPostingErrorUnwraps(t *testing.T) {
	wrapped := &walletdomain.SecondaryPostingError{
		OrgID:  1,
		Amount: 100,
		Err:    walletdomain.ErrInsufficientFunds,
	}
	w := do(newErrorEngine(fmt.Errorf("post cut: %w", wrapped)))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestMapUnknownErrorIsInternal(t *testing.T) {
	w := do(newErrorEngine(fmt.Errorf("boom")))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal_error")
}
