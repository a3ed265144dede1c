package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/lazisku/maal/internal/amil/domain"
	orgdomain "github.com/lazisku/maal/internal/organization/domain"
	"github.com/lazisku/maal/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    domain.Repository
	OrgRepo orgdomain.Repository
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	repo    domain.Repository
	orgRepo orgdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("amil.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		orgRepo: p.OrgRepo,
	}
}

func (s *Service) CreateOrganizer(ctx context.Context, req domain.CreateOrganizerRequest) (domain.Organizer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Organizer{}, domain.ErrInvalidName
	}

	orgID, err := parseID(req.OrgID)
	if err != nil {
		return domain.Organizer{}, err
	}

	org, err := s.orgRepo.FindByID(ctx, s.db, orgID)
	if err != nil {
		return domain.Organizer{}, err
	}
	if org == nil {
		return domain.Organizer{}, orgdomain.ErrNotFound
	}

	now := time.Now().UTC()
	organizer := domain.Organizer{
		ID:        s.genID.Generate(),
		OrgID:     orgID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.InsertOrganizer(ctx, s.db, &organizer); err != nil {
		return domain.Organizer{}, err
	}

	return organizer, nil
}

func (s *Service) GetOrganizer(ctx context.Context, req domain.GetOrganizerRequest) (domain.Organizer, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return domain.Organizer{}, err
	}

	organizer, err := s.repo.FindOrganizerByID(ctx, s.db, id)
	if err != nil {
		return domain.Organizer{}, err
	}
	if organizer == nil {
		return domain.Organizer{}, domain.ErrOrganizerNotFound
	}

	return *organizer, nil
}

func (s *Service) ListOrganizers(ctx context.Context, req domain.ListOrganizerRequest) (domain.ListOrganizerResponse, error) {
	var orgID snowflake.ID
	if strings.TrimSpace(req.OrgID) != "" {
		id, err := parseID(req.OrgID)
		if err != nil {
			return domain.ListOrganizerResponse{}, err
		}
		orgID = id
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.ListOrganizers(ctx, s.db, orgID, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListOrganizerResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(organizer *domain.Organizer) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        organizer.ID.String(),
			CreatedAt: organizer.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	organizers := make([]domain.Organizer, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		organizers = append(organizers, *item)
	}

	resp := domain.ListOrganizerResponse{Organizers: organizers}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func (s *Service) CreateAmil(ctx context.Context, req domain.CreateAmilRequest) (domain.Amil, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Amil{}, domain.ErrInvalidName
	}

	organizerID, err := parseID(req.OrganizerID)
	if err != nil {
		return domain.Amil{}, err
	}

	organizer, err := s.repo.FindOrganizerByID(ctx, s.db, organizerID)
	if err != nil {
		return domain.Amil{}, err
	}
	if organizer == nil {
		return domain.Amil{}, domain.ErrOrganizerNotFound
	}

	now := time.Now().UTC()
	amil := domain.Amil{
		ID:          s.genID.Generate(),
		OrganizerID: organizerID,
		Name:        name,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.InsertAmil(ctx, s.db, &amil); err != nil {
		return domain.Amil{}, err
	}

	return amil, nil
}

func (s *Service) GetAmil(ctx context.Context, req domain.GetAmilRequest) (domain.Amil, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return domain.Amil{}, err
	}

	amil, err := s.repo.FindAmilByID(ctx, s.db, id)
	if err != nil {
		return domain.Amil{}, err
	}
	if amil == nil {
		return domain.Amil{}, domain.ErrAmilNotFound
	}

	return *amil, nil
}

func (s *Service) ListAmils(ctx context.Context, req domain.ListAmilRequest) (domain.ListAmilResponse, error) {
	var organizerID snowflake.ID
	if strings.TrimSpace(req.OrganizerID) != "" {
		id, err := parseID(req.OrganizerID)
		if err != nil {
			return domain.ListAmilResponse{}, err
		}
		organizerID = id
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.ListAmils(ctx, s.db, organizerID, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListAmilResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(amil *domain.Amil) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        amil.ID.String(),
			CreatedAt: amil.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	amils := make([]domain.Amil, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		amils = append(amils, *item)
	}

	resp := domain.ListAmilResponse{Amils: amils}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
