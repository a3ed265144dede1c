package domain

import (
	"context"
	"errors"

	"github.com/lazisku/maal/pkg/db/pagination"
)

type CreateOrganizationRequest struct {
	Name     string
	Scope    string
	District string
}

type ListOrganizationRequest struct {
	PageToken string
	PageSize  int
	Scope     string
	District  string
}

type ListOrganizationFilter struct {
	Scope    Scope
	District string
}

type ListOrganizationResponse struct {
	pagination.PageInfo
	Organizations []Organization `json:"organizations"`
}

type GetOrganizationRequest struct {
	ID string
}

type Service interface {
	Create(context.Context, CreateOrganizationRequest) (Organization, error)
	GetByID(context.Context, GetOrganizationRequest) (Organization, error)
	List(context.Context, ListOrganizationRequest) (ListOrganizationResponse, error)
}

var (
	ErrInvalidName  = errors.New("invalid_name")
	ErrInvalidScope = errors.New("invalid_scope")
	ErrInvalidID    = errors.New("invalid_id")
	ErrNotFound     = errors.New("organization_not_found")
)
