package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	zakatdomain "github.com/lazisku/maal/internal/zakat/domain"
)

type createZakatRequest struct {
	AmilID      string `json:"amil_id"`
	MuzakkiName string `json:"muzakki_name"`
	Amount      int64  `json:"amount"`
	Date        string `json:"date"`
}

func (s *Server) CreateZakat(c *gin.Context) {
	var req createZakatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	date, err := parseDocumentDate(req.Date)
	if err != nil {
		AbortWithError(c, newValidationError("date", "invalid_date", "date must be RFC3339 or YYYY-MM-DD"))
		return
	}

	resp, err := s.zakatSvc.Create(c.Request.Context(), zakatdomain.CreateZakatRequest{
		AmilID:      strings.TrimSpace(req.AmilID),
		MuzakkiName: strings.TrimSpace(req.MuzakkiName),
		Amount:      req.Amount,
		Date:        date,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetZakatByID(c *gin.Context) {
	resp, err := s.zakatSvc.GetByID(c.Request.Context(), zakatdomain.GetZakatRequest{
		ID: c.Param("id"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

type updateZakatRequest struct {
	MuzakkiName string `json:"muzakki_name"`
}

func (s *Server) UpdateZakat(c *gin.Context) {
	var req updateZakatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.zakatSvc.Update(c.Request.Context(), zakatdomain.UpdateZakatRequest{
		ID:          c.Param("id"),
		MuzakkiName: strings.TrimSpace(req.MuzakkiName),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListZakats(c *gin.Context) {
	pageToken, pageSize, err := pageParams(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.zakatSvc.List(c.Request.Context(), zakatdomain.ListZakatRequest{
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

func isZakatValidationError(err error) bool {
	switch err {
	case zakatdomain.ErrInvalidID,
		zakatdomain.ErrInvalidName,
		zakatdomain.ErrInvalidAmount:
		return true
	default:
		return false
	}
}
