package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	amildomain "github.com/lazisku/maal/internal/amil/domain"
)

type createOrganizerRequest struct {
	OrgID string `json:"org_id"`
	Name  string `json:"name"`
}

func (s *Server) CreateOrganizer(c *gin.Context) {
	var req createOrganizerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.amilSvc.CreateOrganizer(c.Request.Context(), amildomain.CreateOrganizerRequest{
		OrgID: strings.TrimSpace(req.OrgID),
		Name:  strings.TrimSpace(req.Name),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetOrganizerByID(c *gin.Context) {
	resp, err := s.amilSvc.GetOrganizer(c.Request.Context(), amildomain.GetOrganizerRequest{
		ID: c.Param("id"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListOrganizers(c *gin.Context) {
	pageToken, pageSize, err := pageParams(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.amilSvc.ListOrganizers(c.Request.Context(), amildomain.ListOrganizerRequest{
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

type createAmilRequest struct {
	OrganizerID string `json:"organizer_id"`
	Name        string `json:"name"`
}

func (s *Server) CreateAmil(c *gin.Context) {
	var req createAmilRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.amilSvc.CreateAmil(c.Request.Context(), amildomain.CreateAmilRequest{
		OrganizerID: strings.TrimSpace(req.OrganizerID),
		Name:        strings.TrimSpace(req.Name),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetAmilByID(c *gin.Context) {
	resp, err := s.amilSvc.GetAmil(c.Request.Context(), amildomain.GetAmilRequest{
		ID: c.Param("id"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListAmils(c *gin.Context) {
	pageToken, pageSize, err := pageParams(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.amilSvc.ListAmils(c.Request.Context(), amildomain.ListAmilRequest{
		OrganizerID: strings.TrimSpace(c.Query("organizer_id")),
		PageToken:   pageToken,
		PageSize:    pageSize,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func isAmilValidationError(err error) bool {
	switch err {
	case amildomain.ErrInvalidName,
		amildomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
