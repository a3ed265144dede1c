package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/lazisku/maal/internal/donor/domain"
	orgdomain "github.com/lazisku/maal/internal/organization/domain"
	"github.com/lazisku/maal/pkg/db/pagination"
	"github.com/lazisku/maal/pkg/txutil"
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
		log:     p.Log.Named("donor.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		orgRepo: p.OrgRepo,
	}
}

func (s *Service) CreateVolunteer(ctx context.Context, req domain.CreateVolunteerRequest) (domain.Volunteer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Volunteer{}, domain.ErrInvalidName
	}

	orgID, err := parseID(req.OrgID)
	if err != nil {
		return domain.Volunteer{}, err
	}

	org, err := s.orgRepo.FindByID(ctx, s.db, orgID)
	if err != nil {
		return domain.Volunteer{}, err
	}
	if org == nil {
		return domain.Volunteer{}, orgdomain.ErrNotFound
	}

	now := time.Now().UTC()
	volunteer := domain.Volunteer{
		ID:        s.genID.Generate(),
		OrgID:     orgID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.InsertVolunteer(ctx, s.db, &volunteer); err != nil {
		return domain.Volunteer{}, err
	}

	return volunteer, nil
}

func (s *Service) GetVolunteer(ctx context.Context, req domain.GetVolunteerRequest) (domain.Volunteer, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return domain.Volunteer{}, err
	}

	volunteer, err := s.repo.FindVolunteerByID(ctx, s.db, id)
	if err != nil {
		return domain.Volunteer{}, err
	}
	if volunteer == nil {
		return domain.Volunteer{}, domain.ErrVolunteerNotFound
	}

	return *volunteer, nil
}

func (s *Service) ListVolunteers(ctx context.Context, req domain.ListVolunteerRequest) (domain.ListVolunteerResponse, error) {
	var orgID snowflake.ID
	if strings.TrimSpace(req.OrgID) != "" {
		id, err := parseID(req.OrgID)
		if err != nil {
			return domain.ListVolunteerResponse{}, err
		}
		orgID = id
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.ListVolunteers(ctx, s.db, orgID, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListVolunteerResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(volunteer *domain.Volunteer) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        volunteer.ID.String(),
			CreatedAt: volunteer.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	volunteers := make([]domain.Volunteer, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		volunteers = append(volunteers, *item)
	}

	resp := domain.ListVolunteerResponse{Volunteers: volunteers}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func (s *Service) CreateDonor(ctx context.Context, req domain.CreateDonorRequest) (domain.Donor, error) {
	donor, err := s.buildDonor(ctx, s.db, req)
	if err != nil {
		return domain.Donor{}, err
	}

	if err := s.repo.InsertDonor(ctx, s.db, donor); err != nil {
		return domain.Donor{}, err
	}

	return *donor, nil
}

// CreateDonorsBulk creates donors independently, one transaction per item.
// Failures become per-item states instead of aborting the batch.
func (s *Service) CreateDonorsBulk(ctx context.Context, reqs []domain.CreateDonorRequest) ([]domain.BulkItemState, error) {
	states := make([]domain.BulkItemState, 0, len(reqs))
	for i, req := range reqs {
		donor, err := s.createDonorTx(ctx, req)
		if err != nil {
			states = append(states, domain.BulkItemState{
				Index:   i,
				Status:  http.StatusUnprocessableEntity,
				Message: err.Error(),
			})
			continue
		}
		states = append(states, domain.BulkItemState{
			Index:  i,
			ID:     donor.ID,
			Status: http.StatusCreated,
		})
	}
	return states, nil
}

func (s *Service) createDonorTx(ctx context.Context, req domain.CreateDonorRequest) (*domain.Donor, error) {
	tx := txutil.Begin(s.db)
	defer tx.RollbackUnlessFinished()

	donor, err := s.buildDonor(ctx, tx.DB(), req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.InsertDonor(ctx, tx.DB(), donor); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return donor, nil
}

func (s *Service) buildDonor(ctx context.Context, db *gorm.DB, req domain.CreateDonorRequest) (*domain.Donor, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	volunteerID, err := parseID(req.VolunteerID)
	if err != nil {
		return nil, err
	}

	volunteer, err := s.repo.FindVolunteerByID(ctx, db, volunteerID)
	if err != nil {
		return nil, err
	}
	if volunteer == nil {
		return nil, domain.ErrVolunteerNotFound
	}

	now := time.Now().UTC()
	return &domain.Donor{
		ID:          s.genID.Generate(),
		VolunteerID: volunteerID,
		Name:        name,
		Phone:       strings.TrimSpace(req.Phone),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (s *Service) GetDonor(ctx context.Context, req domain.GetDonorRequest) (domain.Donor, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return domain.Donor{}, err
	}

	donor, err := s.repo.FindDonorByID(ctx, s.db, id)
	if err != nil {
		return domain.Donor{}, err
	}
	if donor == nil {
		return domain.Donor{}, domain.ErrDonorNotFound
	}

	return *donor, nil
}

func (s *Service) ListDonors(ctx context.Context, req domain.ListDonorRequest) (domain.ListDonorResponse, error) {
	var volunteerID snowflake.ID
	if strings.TrimSpace(req.VolunteerID) != "" {
		id, err := parseID(req.VolunteerID)
		if err != nil {
			return domain.ListDonorResponse{}, err
		}
		volunteerID = id
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.ListDonors(ctx, s.db, volunteerID, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListDonorResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(donor *domain.Donor) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        donor.ID.String(),
			CreatedAt: donor.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	donors := make([]domain.Donor, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		donors = append(donors, *item)
	}

	resp := domain.ListDonorResponse{Donors: donors}
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
