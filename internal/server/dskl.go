package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	dskldomain "github.com/lazisku/maal/internal/dskl/domain"
)

type createDsklRequest struct {
	AmilID string `json:"amil_id"`
	Kind   string `json:"kind"`
	Amount int64  `json:"amount"`
	Date   string `json:"date"`
}

func (s *Server) CreateDskl(c *gin.Context) {
	var req createDsklRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	date, err := parseDocumentDate(req.Date)
	if err != nil {
		AbortWithError(c, newValidationError("date", "invalid_date", "date must be RFC3339 or YYYY-MM-DD"))
		return
	}

	resp, err := s.dsklSvc.Create(c.Request.Context(), dskldomain.CreateDsklRequest{
		AmilID: strings.TrimSpace(req.AmilID),
		Kind:   strings.ToUpper(strings.TrimSpace(req.Kind)),
		Amount: req.Amount,
		Date:   date,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetDsklByID(c *gin.Context) {
	resp, err := s.dsklSvc.GetByID(c.Request.Context(), dskldomain.GetDsklRequest{
		ID: c.Param("id"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListDskls(c *gin.Context) {
	pageToken, pageSize, err := pageParams(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.dsklSvc.List(c.Request.Context(), dskldomain.ListDsklRequest{
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

func isDsklValidationError(err error) bool {
	switch err {
	case dskldomain.ErrInvalidID,
		dskldomain.ErrInvalidKind,
		dskldomain.ErrInvalidAmount:
		return true
	default:
		return false
	}
}
