package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	reportingdomain "github.com/lazisku/maal/internal/reporting/domain"
)

func (s *Server) ListTransactions(c *gin.Context) {
	pageToken, pageSize, err := pageParams(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	from, err := parseOptionalTime(c.Query("from"), false)
	if err != nil {
		AbortWithError(c, newValidationError("from", "invalid_time", "from must be RFC3339 or YYYY-MM-DD"))
		return
	}
	to, err := parseOptionalTime(c.Query("to"), true)
	if err != nil {
		AbortWithError(c, newValidationError("to", "invalid_time", "to must be RFC3339 or YYYY-MM-DD"))
		return
	}

	resp, err := s.reportingSvc.ListTransactions(c.Request.Context(), reportingdomain.ListTransactionsRequest{
		OrgID:      strings.TrimSpace(c.Query("org_id")),
		WalletType: strings.ToUpper(strings.TrimSpace(c.Query("wallet_type"))),
		SourceKind: strings.ToLower(strings.TrimSpace(c.Query("source_kind"))),
		From:       from,
		To:         to,
		PageToken:  pageToken,
		PageSize:   pageSize,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetWalletMutation(c *gin.Context) {
	year, err := parseOptionalInt(c.Query("year"))
	if err != nil {
		AbortWithError(c, newValidationError("year", "invalid_year", "year must be an integer"))
		return
	}

	resp, err := s.reportingSvc.GetMutation(c.Request.Context(), reportingdomain.GetMutationRequest{
		OrgID:      strings.TrimSpace(c.Query("org_id")),
		WalletType: strings.ToUpper(strings.TrimSpace(c.Query("wallet_type"))),
		Year:       year,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetYearlyRecap(c *gin.Context) {
	year, err := parseOptionalInt(c.Query("year"))
	if err != nil {
		AbortWithError(c, newValidationError("year", "invalid_year", "year must be an integer"))
		return
	}

	resp, err := s.reportingSvc.YearlyRecap(c.Request.Context(), reportingdomain.YearlyRecapRequest{
		OrgID: strings.TrimSpace(c.Query("org_id")),
		Year:  year,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func isReportingValidationError(err error) bool {
	switch err {
	case reportingdomain.ErrInvalidID,
		reportingdomain.ErrInvalidWalletType,
		reportingdomain.ErrInvalidYear:
		return true
	default:
		return false
	}
}
