package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/lazisku/maal/pkg/db/pagination"
)

type CreateVolunteerRequest struct {
	OrgID string
	Name  string
}

type CreateDonorRequest struct {
	VolunteerID string
	Name        string
	Phone       string
}

// BulkItemState reports the outcome of one item of a bulk create. Items are
// independent, a failing item never aborts the batch.
type BulkItemState struct {
	Index   int          `json:"index"`
	ID      snowflake.ID `json:"id,omitempty"`
	Status  int          `json:"status"`
	Message string       `json:"message,omitempty"`
}

type GetVolunteerRequest struct {
	ID string
}

type GetDonorRequest struct {
	ID string
}

type ListVolunteerRequest struct {
	OrgID     string
	PageToken string
	PageSize  int
}

type ListVolunteerResponse struct {
	pagination.PageInfo
	Volunteers []Volunteer `json:"volunteers"`
}

type ListDonorRequest struct {
	VolunteerID string
	PageToken   string
	PageSize    int
}

type ListDonorResponse struct {
	pagination.PageInfo
	Donors []Donor `json:"donors"`
}

type Service interface {
	CreateVolunteer(context.Context, CreateVolunteerRequest) (Volunteer, error)
	GetVolunteer(context.Context, GetVolunteerRequest) (Volunteer, error)
	ListVolunteers(context.Context, ListVolunteerRequest) (ListVolunteerResponse, error)

	CreateDonor(context.Context, CreateDonorRequest) (Donor, error)
	CreateDonorsBulk(context.Context, []CreateDonorRequest) ([]BulkItemState, error)
	GetDonor(context.Context, GetDonorRequest) (Donor, error)
	ListDonors(context.Context, ListDonorRequest) (ListDonorResponse, error)
}

var (
	ErrInvalidName       = errors.New("invalid_name")
	ErrInvalidID         = errors.New("invalid_id")
	ErrVolunteerNotFound = errors.New("volunteer_not_found")
	ErrDonorNotFound     = errors.New("donor_not_found")
)
