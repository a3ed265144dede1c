package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	infaqdomain "github.com/lazisku/maal/internal/infaq/domain"
)

type createInfaqRequest struct {
	AmilID    string `json:"amil_id"`
	GiverName string `json:"giver_name"`
	Amount    int64  `json:"amount"`
	Date      string `json:"date"`
}

func (s *Server) CreateInfaq(c *gin.Context) {
	var req createInfaqRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	date, err := parseDocumentDate(req.Date)
	if err != nil {
		AbortWithError(c, newValidationError("date", "invalid_date", "date must be RFC3339 or YYYY-MM-DD"))
		return
	}

	resp, err := s.infaqSvc.Create(c.Request.Context(), infaqdomain.CreateInfaqRequest{
		AmilID:    strings.TrimSpace(req.AmilID),
		GiverName: strings.TrimSpace(req.GiverName),
		Amount:    req.Amount,
		Date:      date,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetInfaqByID(c *gin.Context) {
	resp, err := s.infaqSvc.GetByID(c.Request.Context(), infaqdomain.GetInfaqRequest{
		ID: c.Param("id"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListInfaqs(c *gin.Context) {
	pageToken, pageSize, err := pageParams(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.infaqSvc.List(c.Request.Context(), infaqdomain.ListInfaqRequest{
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

func isInfaqValidationError(err error) bool {
	switch err {
	case infaqdomain.ErrInvalidID,
		infaqdomain.ErrInvalidName,
		infaqdomain.ErrInvalidAmount:
		return true
	default:
		return false
	}
}
