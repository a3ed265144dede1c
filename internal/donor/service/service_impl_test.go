package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/lazisku/maal/internal/donor/domain"
	donorrepository "github.com/lazisku/maal/internal/donor/repository"
	orgdomain "github.com/lazisku/maal/internal/organization/domain"
	orgrepository "github.com/lazisku/maal/internal/organization/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*gorm.DB, domain.Service, *snowflake.Node) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&orgdomain.Organization{},
		&domain.Volunteer{},
		&domain.Donor{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:      db,
		Log:     zap.NewNop(),
		GenID:   node,
		Repo:    donorrepository.Provide(),
		OrgRepo: orgrepository.Provide(),
	})
	return db, svc, node
}

func seedVolunteer(t *testing.T, db *gorm.DB, svc domain.Service, node *snowflake.Node) domain.Volunteer {
	t.Helper()
	org := orgdomain.Organization{
		ID:       node.Generate(),
		Name:     "Ranting Sukamaju",
		Scope:    orgdomain.ScopeTwig,
		District: "Sukamaju",
	}
	require.NoError(t, db.Create(&org).Error)

	volunteer, err := svc.CreateVolunteer(context.Background(), domain.CreateVolunteerRequest{
		OrgID: org.ID.String(),
		Name:  "Pak Slamet",
	})
	require.NoError(t, err)
	return volunteer
}

func TestCreateDonor(t *testing.T) {
	db, svc, node := newTestService(t)
	volunteer := seedVolunteer(t, db, svc, node)

	donor, err := svc.CreateDonor(context.Background(), domain.CreateDonorRequest{
		VolunteerID: volunteer.ID.String(),
		Name:        "Bu Aminah",
		Phone:       "08123456789",
	})
	require.NoError(t, err)
	assert.Equal(t, volunteer.ID, donor.VolunteerID)

	_, err = svc.CreateDonor(context.Background(), domain.CreateDonorRequest{
		VolunteerID: node.Generate().String(),
		Name:        "Nobody",
	})
	assert.ErrorIs(t, err, domain.ErrVolunteerNotFound)
}

func TestCreateDonorsBulkMixedOutcomes(t *testing.T) {
	db, svc, node := newTestService(t)
	volunteer := seedVolunteer(t, db, svc, node)

	states, err := svc.CreateDonorsBulk(context.Background(), []domain.CreateDonorRequest{
		{VolunteerID: volunteer.ID.String(), Name: "Donor A"},
		{VolunteerID: volunteer.ID.String(), Name: ""},
		{VolunteerID: node.Generate().String(), Name: "Donor C"},
		{VolunteerID: volunteer.ID.String(), Name: "Donor D"},
	})
	require.NoError(t, err)
	require.Len(t, states, 4)

	assert.Equal(t, http.StatusCreated, states[0].Status)
	assert.NotZero(t, states[0].ID)
	assert.Equal(t, 0, states[0].Index)

	assert.Equal(t, http.StatusUnprocessableEntity, states[1].Status)
	assert.Equal(t, domain.ErrInvalidName.Error(), states[1].Message)
	assert.Zero(t, states[1].ID)

	assert.Equal(t, http.StatusUnprocessableEntity, states[2].Status)
	assert.Equal(t, domain.ErrVolunteerNotFound.Error(), states[2].Message)

	assert.Equal(t, http.StatusCreated, states[3].Status)

	// Only the successful items persisted.
	var count int64
	require.NoError(t, db.Model(&domain.Donor{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestListDonorsByVolunteer(t *testing.T) {
	db, svc, node := newTestService(t)
	volunteer := seedVolunteer(t, db, svc, node)

	for _, name := range []string{"Donor A", "Donor B", "Donor C"} {
		_, err := svc.CreateDonor(context.Background(), domain.CreateDonorRequest{
			VolunteerID: volunteer.ID.String(),
			Name:        name,
		})
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
	}

	resp, err := svc.ListDonors(context.Background(), domain.ListDonorRequest{
		VolunteerID: volunteer.ID.String(),
		PageSize:    10,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Donors, 3)
}
