package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	donordomain "github.com/lazisku/maal/internal/donor/domain"
)

type createVolunteerRequest struct {
	OrgID string `json:"org_id"`
	Name  string `json:"name"`
}

func (s *Server) CreateVolunteer(c *gin.Context) {
	var req createVolunteerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.donorSvc.CreateVolunteer(c.Request.Context(), donordomain.CreateVolunteerRequest{
		OrgID: strings.TrimSpace(req.OrgID),
		Name:  strings.TrimSpace(req.Name),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetVolunteerByID(c *gin.Context) {
	resp, err := s.donorSvc.GetVolunteer(c.Request.Context(), donordomain.GetVolunteerRequest{
		ID: c.Param("id"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListVolunteers(c *gin.Context) {
	pageToken, pageSize, err := pageParams(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.donorSvc.ListVolunteers(c.Request.Context(), donordomain.ListVolunteerRequest{
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

type createDonorRequest struct {
	VolunteerID string `json:"volunteer_id"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
}

func (r createDonorRequest) toDomain() donordomain.CreateDonorRequest {
	return donordomain.CreateDonorRequest{
		VolunteerID: strings.TrimSpace(r.VolunteerID),
		Name:        strings.TrimSpace(r.Name),
		Phone:       strings.TrimSpace(r.Phone),
	}
}

func (s *Server) CreateDonor(c *gin.Context) {
	var req createDonorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.donorSvc.CreateDonor(c.Request.Context(), req.toDomain())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

type createDonorsBulkRequest struct {
	Donors []createDonorRequest `json:"donors"`
}

// CreateDonorsBulk accepts a batch of donors and reports a per-item outcome.
// A failing item never aborts the rest of the batch.
func (s *Server) CreateDonorsBulk(c *gin.Context) {
	var req createDonorsBulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if len(req.Donors) == 0 {
		AbortWithError(c, newValidationError("donors", "invalid_request", "donors must not be empty"))
		return
	}

	items := make([]donordomain.CreateDonorRequest, 0, len(req.Donors))
	for _, item := range req.Donors {
		items = append(items, item.toDomain())
	}

	states, err := s.donorSvc.CreateDonorsBulk(c.Request.Context(), items)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": states})
}

func (s *Server) GetDonorByID(c *gin.Context) {
	resp, err := s.donorSvc.GetDonor(c.Request.Context(), donordomain.GetDonorRequest{
		ID: c.Param("id"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListDonors(c *gin.Context) {
	pageToken, pageSize, err := pageParams(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.donorSvc.ListDonors(c.Request.Context(), donordomain.ListDonorRequest{
		VolunteerID: strings.TrimSpace(c.Query("volunteer_id")),
		PageToken:   pageToken,
		PageSize:    pageSize,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func isDonorValidationError(err error) bool {
	switch err {
	case donordomain.ErrInvalidName,
		donordomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
