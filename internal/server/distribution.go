package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	distributiondomain "github.com/lazisku/maal/internal/distribution/domain"
)

type createDoneeRequest struct {
	OrgID string `json:"org_id"`
	Name  string `json:"name"`
	Asnaf string `json:"asnaf"`
}

func (s *Server) CreateDonee(c *gin.Context) {
	var req createDoneeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.distributionSvc.CreateDonee(c.Request.Context(), distributiondomain.CreateDoneeRequest{
		OrgID: strings.TrimSpace(req.OrgID),
		Name:  strings.TrimSpace(req.Name),
		Asnaf: strings.ToUpper(strings.TrimSpace(req.Asnaf)),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetDoneeByID(c *gin.Context) {
	resp, err := s.distributionSvc.GetDonee(c.Request.Context(), distributiondomain.GetDoneeRequest{
		ID: c.Param("id"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListDonees(c *gin.Context) {
	pageToken, pageSize, err := pageParams(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.distributionSvc.ListDonees(c.Request.Context(), distributiondomain.ListDoneeRequest{
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

type createZakatDistributionRequest struct {
	DoneeID string `json:"donee_id"`
	Amount  int64  `json:"amount"`
	Date    string `json:"date"`
}

func (s *Server) CreateZakatDistribution(c *gin.Context) {
	var req createZakatDistributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	date, err := parseDocumentDate(req.Date)
	if err != nil {
		AbortWithError(c, newValidationError("date", "invalid_date", "date must be RFC3339 or YYYY-MM-DD"))
		return
	}

	resp, err := s.distributionSvc.CreateZakatDistribution(c.Request.Context(), distributiondomain.CreateZakatDistributionRequest{
		DoneeID: strings.TrimSpace(req.DoneeID),
		Amount:  req.Amount,
		Date:    date,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetZakatDistributionByID(c *gin.Context) {
	resp, err := s.distributionSvc.GetZakatDistribution(c.Request.Context(), distributiondomain.GetZakatDistributionRequest{
		ID: c.Param("id"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListZakatDistributions(c *gin.Context) {
	pageToken, pageSize, err := pageParams(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.distributionSvc.ListZakatDistributions(c.Request.Context(), distributiondomain.ListZakatDistributionRequest{
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

type createInfaqDistributionRequest struct {
	OrgID     string `json:"org_id"`
	Recipient string `json:"recipient"`
	Amount    int64  `json:"amount"`
	Date      string `json:"date"`
}

func (s *Server) CreateInfaqDistribution(c *gin.Context) {
	var req createInfaqDistributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	date, err := parseDocumentDate(req.Date)
	if err != nil {
		AbortWithError(c, newValidationError("date", "invalid_date", "date must be RFC3339 or YYYY-MM-DD"))
		return
	}

	resp, err := s.distributionSvc.CreateInfaqDistribution(c.Request.Context(), distributiondomain.CreateInfaqDistributionRequest{
		OrgID:     strings.TrimSpace(req.OrgID),
		Recipient: strings.TrimSpace(req.Recipient),
		Amount:    req.Amount,
		Date:      date,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetInfaqDistributionByID(c *gin.Context) {
	resp, err := s.distributionSvc.GetInfaqDistribution(c.Request.Context(), distributiondomain.GetInfaqDistributionRequest{
		ID: c.Param("id"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListInfaqDistributions(c *gin.Context) {
	pageToken, pageSize, err := pageParams(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.distributionSvc.ListInfaqDistributions(c.Request.Context(), distributiondomain.ListInfaqDistributionRequest{
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

func isDistributionValidationError(err error) bool {
	switch err {
	case distributiondomain.ErrInvalidID,
		distributiondomain.ErrInvalidName,
		distributiondomain.ErrInvalidAsnaf,
		distributiondomain.ErrInvalidAmount,
		distributiondomain.ErrInvalidRecipient:
		return true
	default:
		return false
	}
}
