package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/lazisku/maal/internal/organization/domain"
	"github.com/lazisku/maal/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("organization.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateOrganizationRequest) (domain.Organization, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Organization{}, domain.ErrInvalidName
	}

	scope := domain.Scope(strings.ToUpper(strings.TrimSpace(req.Scope)))
	if !scope.Valid() {
		return domain.Organization{}, domain.ErrInvalidScope
	}

	now := time.Now().UTC()
	org := domain.Organization{
		ID:        s.genID.Generate(),
		Name:      name,
		Scope:     scope,
		District:  strings.TrimSpace(req.District),
		Metadata:  datatypes.JSONMap{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &org); err != nil {
		return domain.Organization{}, err
	}

	return org, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetOrganizationRequest) (domain.Organization, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Organization{}, err
	}

	org, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Organization{}, err
	}
	if org == nil {
		return domain.Organization{}, domain.ErrNotFound
	}

	return *org, nil
}

func (s *Service) List(ctx context.Context, req domain.ListOrganizationRequest) (domain.ListOrganizationResponse, error) {
	filter := domain.ListOrganizationFilter{
		Scope:    domain.Scope(strings.ToUpper(strings.TrimSpace(req.Scope))),
		District: strings.TrimSpace(req.District),
	}
	if filter.Scope != "" && !filter.Scope.Valid() {
		return domain.ListOrganizationResponse{}, domain.ErrInvalidScope
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, filter, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListOrganizationResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(org *domain.Organization) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        org.ID.String(),
			CreatedAt: org.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	orgs := make([]domain.Organization, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		orgs = append(orgs, *item)
	}

	resp := domain.ListOrganizationResponse{Organizations: orgs}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
