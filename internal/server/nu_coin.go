package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	nucoindomain "github.com/lazisku/maal/internal/nucoin/domain"
)

type createNuCoinRequest struct {
	DonorID string `json:"donor_id"`
	Amount  int64  `json:"amount"`
	Date    string `json:"date"`
}

func (s *Server) CreateNuCoin(c *gin.Context) {
	var req createNuCoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	date, err := parseDocumentDate(req.Date)
	if err != nil {
		AbortWithError(c, newValidationError("date", "invalid_date", "date must be RFC3339 or YYYY-MM-DD"))
		return
	}

	resp, err := s.nuCoinSvc.CreateCoin(c.Request.Context(), nucoindomain.CreateCoinRequest{
		DonorID: strings.TrimSpace(req.DonorID),
		Amount:  req.Amount,
		Date:    date,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetNuCoinByID(c *gin.Context) {
	resp, err := s.nuCoinSvc.GetCoin(c.Request.Context(), nucoindomain.GetCoinRequest{
		ID: c.Param("id"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListNuCoins(c *gin.Context) {
	pageToken, pageSize, err := pageParams(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.nuCoinSvc.ListCoins(c.Request.Context(), nucoindomain.ListCoinRequest{
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

type createNuCoinAggregateRequest struct {
	OrgID  string `json:"org_id"`
	Amount int64  `json:"amount"`
	Date   string `json:"date"`
}

func (s *Server) CreateNuCoinAggregate(c *gin.Context) {
	var req createNuCoinAggregateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	date, err := parseDocumentDate(req.Date)
	if err != nil {
		AbortWithError(c, newValidationError("date", "invalid_date", "date must be RFC3339 or YYYY-MM-DD"))
		return
	}

	resp, err := s.nuCoinSvc.CreateAggregate(c.Request.Context(), nucoindomain.CreateAggregateRequest{
		OrgID:  strings.TrimSpace(req.OrgID),
		Amount: req.Amount,
		Date:   date,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

type createNuCoinTransferRequest struct {
	SourceOrgID      string `json:"source_org_id"`
	DestinationOrgID string `json:"destination_org_id"`
	Amount           int64  `json:"amount"`
	Status           string `json:"status"`
	Date             string `json:"date"`
}

func (s *Server) CreateNuCoinTransfer(c *gin.Context) {
	var req createNuCoinTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	date, err := parseDocumentDate(req.Date)
	if err != nil {
		AbortWithError(c, newValidationError("date", "invalid_date", "date must be RFC3339 or YYYY-MM-DD"))
		return
	}

	resp, err := s.nuCoinSvc.CreateTransfer(c.Request.Context(), nucoindomain.CreateTransferRequest{
		SourceOrgID:      strings.TrimSpace(req.SourceOrgID),
		DestinationOrgID: strings.TrimSpace(req.DestinationOrgID),
		Amount:           req.Amount,
		Status:           strings.ToUpper(strings.TrimSpace(req.Status)),
		Date:             date,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetNuCoinTransferByID(c *gin.Context) {
	resp, err := s.nuCoinSvc.GetTransfer(c.Request.Context(), nucoindomain.GetTransferRequest{
		ID: c.Param("id"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListNuCoinTransfers(c *gin.Context) {
	pageToken, pageSize, err := pageParams(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.nuCoinSvc.ListTransfers(c.Request.Context(), nucoindomain.ListTransferRequest{
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

type moveNuCoinFundRequest struct {
	OrgID string `json:"org_id"`
}

// MoveNuCoinFund sweeps the aggregator wallet into the spendable coin
// wallet. The sweep reports its outcome as a result object, so the response
// status comes from the result rather than an error mapping.
func (s *Server) MoveNuCoinFund(c *gin.Context) {
	var req moveNuCoinFundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.nuCoinSvc.MoveFund(c.Request.Context(), nucoindomain.MoveFundRequest{
		OrgID: strings.TrimSpace(req.OrgID),
	})
	if err != nil && result.Status == 0 {
		AbortWithError(c, err)
		return
	}

	c.JSON(result.Status, result)
}

func isNuCoinValidationError(err error) bool {
	switch err {
	case nucoindomain.ErrInvalidID,
		nucoindomain.ErrInvalidAmount:
		return true
	default:
		return false
	}
}
