package domain

import (
	"context"
	"errors"

	"github.com/lazisku/maal/pkg/db/pagination"
)

type CreateOrganizerRequest struct {
	OrgID string
	Name  string
}

type CreateAmilRequest struct {
	OrganizerID string
	Name        string
}

type GetOrganizerRequest struct {
	ID string
}

type GetAmilRequest struct {
	ID string
}

type ListOrganizerRequest struct {
	OrgID     string
	PageToken string
	PageSize  int
}

type ListOrganizerResponse struct {
	pagination.PageInfo
	Organizers []Organizer `json:"organizers"`
}

type ListAmilRequest struct {
	OrganizerID string
	PageToken   string
	PageSize    int
}

type ListAmilResponse struct {
	pagination.PageInfo
	Amils []Amil `json:"amils"`
}

type Service interface {
	CreateOrganizer(context.Context, CreateOrganizerRequest) (Organizer, error)
	GetOrganizer(context.Context, GetOrganizerRequest) (Organizer, error)
	ListOrganizers(context.Context, ListOrganizerRequest) (ListOrganizerResponse, error)

	CreateAmil(context.Context, CreateAmilRequest) (Amil, error)
	GetAmil(context.Context, GetAmilRequest) (Amil, error)
	ListAmils(context.Context, ListAmilRequest) (ListAmilResponse, error)
}

var (
	ErrInvalidName       = errors.New("invalid_name")
	ErrInvalidID         = errors.New("invalid_id")
	ErrOrganizerNotFound = errors.New("organizer_not_found")
	ErrAmilNotFound      = errors.New("amil_not_found")
)
