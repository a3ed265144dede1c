package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	assetdomain "github.com/lazisku/maal/internal/asset/domain"
)

type createAssetRecordingRequest struct {
	OrgID string `json:"org_id"`
	Name  string `json:"name"`
	Value int64  `json:"value"`
	Date  string `json:"date"`
}

func (s *Server) CreateAssetRecording(c *gin.Context) {
	var req createAssetRecordingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	date, err := parseDocumentDate(req.Date)
	if err != nil {
		AbortWithError(c, newValidationError("date", "invalid_date", "date must be RFC3339 or YYYY-MM-DD"))
		return
	}

	resp, err := s.assetSvc.Create(c.Request.Context(), assetdomain.CreateAssetRequest{
		OrgID: strings.TrimSpace(req.OrgID),
		Name:  strings.TrimSpace(req.Name),
		Value: req.Value,
		Date:  date,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetAssetRecordingByID(c *gin.Context) {
	resp, err := s.assetSvc.GetByID(c.Request.Context(), assetdomain.GetAssetRequest{
		ID: c.Param("id"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListAssetRecordings(c *gin.Context) {
	pageToken, pageSize, err := pageParams(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.assetSvc.List(c.Request.Context(), assetdomain.ListAssetRequest{
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

func isAssetValidationError(err error) bool {
	switch err {
	case assetdomain.ErrInvalidID,
		assetdomain.ErrInvalidName,
		assetdomain.ErrInvalidValue:
		return true
	default:
		return false
	}
}
