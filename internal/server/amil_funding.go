package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	fundingdomain "github.com/lazisku/maal/internal/amilfunding/domain"
)

type createAmilFundingRequest struct {
	OrgID       string `json:"org_id"`
	FundingType string `json:"funding_type"`
	Amount      int64  `json:"amount"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

func (s *Server) CreateAmilFunding(c *gin.Context) {
	var req createAmilFundingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	date, err := parseDocumentDate(req.Date)
	if err != nil {
		AbortWithError(c, newValidationError("date", "invalid_date", "date must be RFC3339 or YYYY-MM-DD"))
		return
	}

	resp, err := s.fundingSvc.CreateFunding(c.Request.Context(), fundingdomain.CreateFundingRequest{
		OrgID:       strings.TrimSpace(req.OrgID),
		FundingType: strings.ToUpper(strings.TrimSpace(req.FundingType)),
		Amount:      req.Amount,
		Date:        date,
		Description: strings.TrimSpace(req.Description),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetAmilFundingByID(c *gin.Context) {
	resp, err := s.fundingSvc.GetFunding(c.Request.Context(), fundingdomain.GetFundingRequest{
		ID: c.Param("id"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListAmilFundings(c *gin.Context) {
	pageToken, pageSize, err := pageParams(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.fundingSvc.ListFunding(c.Request.Context(), fundingdomain.ListFundingRequest{
		OrgID:     strings.TrimSpace(c.Query("org_id")),
		PageToken: pageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

type createAmilFundingUsageRequest struct {
	OrgID   string `json:"org_id"`
	Purpose string `json:"purpose"`
	Amount  int64  `json:"amount"`
	Date    string `json:"date"`
}

func (s *Server) CreateAmilFundingUsage(c *gin.Context) {
	var req createAmilFundingUsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	date, err := parseDocumentDate(req.Date)
	if err != nil {
		AbortWithError(c, newValidationError("date", "invalid_date", "date must be RFC3339 or YYYY-MM-DD"))
		return
	}

	resp, err := s.fundingSvc.CreateUsage(c.Request.Context(), fundingdomain.CreateUsageRequest{
		OrgID:   strings.TrimSpace(req.OrgID),
		Purpose: strings.TrimSpace(req.Purpose),
		Amount:  req.Amount,
		Date:    date,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetAmilFundingUsageByID(c *gin.Context) {
	resp, err := s.fundingSvc.GetUsage(c.Request.Context(), fundingdomain.GetUsageRequest{
		ID: c.Param("id"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListAmilFundingUsages(c *gin.Context) {
	pageToken, pageSize, err := pageParams(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.fundingSvc.ListUsage(c.Request.Context(), fundingdomain.ListUsageRequest{
		OrgID:     strings.TrimSpace(c.Query("org_id")),
		PageToken: pageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func isAmilFundingValidationError(err error) bool {
	switch err {
	case fundingdomain.ErrInvalidID,
		fundingdomain.ErrInvalidAmount,
		fundingdomain.ErrInvalidFundingType,
		fundingdomain.ErrInvalidPurpose:
		return true
	default:
		return false
	}
}
