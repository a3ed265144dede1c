package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	nonhalaldomain "github.com/lazisku/maal/internal/nonhalal/domain"
)

type createNonHalalReceiveRequest struct {
	OrgID       string `json:"org_id"`
	Amount      int64  `json:"amount"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

func (s *Server) CreateNonHalalReceive(c *gin.Context) {
	var req createNonHalalReceiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	date, err := parseDocumentDate(req.Date)
	if err != nil {
		AbortWithError(c, newValidationError("date", "invalid_date", "date must be RFC3339 or YYYY-MM-DD"))
		return
	}

	resp, err := s.nonHalalSvc.CreateReceive(c.Request.Context(), nonhalaldomain.CreateReceiveRequest{
		OrgID:       strings.TrimSpace(req.OrgID),
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

func (s *Server) GetNonHalalReceiveByID(c *gin.Context) {
	resp, err := s.nonHalalSvc.GetReceive(c.Request.Context(), nonhalaldomain.GetReceiveRequest{
		ID: c.Param("id"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListNonHalalReceives(c *gin.Context) {
	pageToken, pageSize, err := pageParams(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.nonHalalSvc.ListReceives(c.Request.Context(), nonhalaldomain.ListReceiveRequest{
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

type createNonHalalDistributionRequest struct {
	OrgID       string `json:"org_id"`
	Amount      int64  `json:"amount"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

func (s *Server) CreateNonHalalDistribution(c *gin.Context) {
	var req createNonHalalDistributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	date, err := parseDocumentDate(req.Date)
	if err != nil {
		AbortWithError(c, newValidationError("date", "invalid_date", "date must be RFC3339 or YYYY-MM-DD"))
		return
	}

	resp, err := s.nonHalalSvc.CreateDistribution(c.Request.Context(), nonhalaldomain.CreateDistributionRequest{
		OrgID:       strings.TrimSpace(req.OrgID),
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

func (s *Server) GetNonHalalDistributionByID(c *gin.Context) {
	resp, err := s.nonHalalSvc.GetDistribution(c.Request.Context(), nonhalaldomain.GetDistributionRequest{
		ID: c.Param("id"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListNonHalalDistributions(c *gin.Context) {
	pageToken, pageSize, err := pageParams(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.nonHalalSvc.ListDistributions(c.Request.Context(), nonhalaldomain.ListDistributionRequest{
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

func isNonHalalValidationError(err error) bool {
	switch err {
	case nonhalaldomain.ErrInvalidID,
		nonhalaldomain.ErrInvalidAmount:
		return true
	default:
		return false
	}
}
