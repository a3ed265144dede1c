package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	organizationdomain "github.com/lazisku/maal/internal/organization/domain"
)

type createOrganizationRequest struct {
	Name     string `json:"name"`
	Scope    string `json:"scope"`
	District string `json:"district"`
}

func (s *Server) CreateOrganization(c *gin.Context) {
	var req createOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.organizationSvc.Create(c.Request.Context(), organizationdomain.CreateOrganizationRequest{
		Name:     strings.TrimSpace(req.Name),
		Scope:    strings.TrimSpace(req.Scope),
		District: strings.TrimSpace(req.District),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetOrganizationByID(c *gin.Context) {
	resp, err := s.organizationSvc.GetByID(c.Request.Context(), organizationdomain.GetOrganizationRequest{
		ID: c.Param("id"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListOrganizations(c *gin.Context) {
	pageToken, pageSize, err := pageParams(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.organizationSvc.List(c.Request.Context(), organizationdomain.ListOrganizationRequest{
		PageToken: pageToken,
		PageSize:  pageSize,
		Scope:     strings.TrimSpace(c.Query("scope")),
		District:  strings.TrimSpace(c.Query("district")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func isOrganizationValidationError(err error) bool {
	switch err {
	case organizationdomain.ErrInvalidName,
		organizationdomain.ErrInvalidScope,
		organizationdomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
