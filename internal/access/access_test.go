package access

import (
	"context"
	"testing"

	"anoa.com/placementportal/internal/entity"
	"anoa.com/placementportal/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeStudents map[uuid.UUID]*entity.StudentProfile

func (f fakeStudents) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.StudentProfile, error) {
	if p, ok := f[userID]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeCompanies map[uuid.UUID]*entity.CompanyProfile

func (f fakeCompanies) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.CompanyProfile, error) {
	if p, ok := f[userID]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func TestPolicyCheck(t *testing.T) {
	p := Allow(entity.RoleCompany, entity.RoleAdmin)

	assert.NoError(t, p.Check(Actor{Role: entity.RoleCompany}))
	assert.NoError(t, p.Check(Actor{Role: entity.RoleAdmin}))

	err := p.Check(Actor{Role: entity.RoleStudent})
	assert.ErrorIs(t, err, apperror.ErrForbidden)
	assert.ElementsMatch(t, []entity.Role{entity.RoleCompany, entity.RoleAdmin}, p.Roles())
}

func TestGateResolvesProfiles(t *testing.T) {
	studentUser, companyUser := uuid.New(), uuid.New()
	gate := NewGate(
		fakeStudents{studentUser: {ID: uuid.New(), UserID: studentUser}},
		fakeCompanies{companyUser: {ID: uuid.New(), UserID: companyUser}},
	)
	ctx := context.Background()

	s, err := gate.Student(ctx, Actor{UserID: studentUser, Role: entity.RoleStudent})
	require.NoError(t, err)
	assert.Equal(t, studentUser, s.UserID)

	_, err = gate.Student(ctx, Actor{UserID: uuid.New(), Role: entity.RoleStudent})
	assert.ErrorIs(t, err, apperror.ErrProfileRequired)

	_, err = gate.Student(ctx, Actor{UserID: companyUser, Role: entity.RoleCompany})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	c, err := gate.Company(ctx, Actor{UserID: companyUser, Role: entity.RoleCompany})
	require.NoError(t, err)
	assert.Equal(t, companyUser, c.UserID)
}

func TestOwnsJob(t *testing.T) {
	owner, other := uuid.New(), uuid.New()
	ownerProfile := &entity.CompanyProfile{ID: uuid.New(), UserID: owner}
	gate := NewGate(fakeStudents{}, fakeCompanies{
		owner: ownerProfile,
		other: {ID: uuid.New(), UserID: other},
	})
	ctx := context.Background()
	job := &entity.Job{ID: uuid.New(), CompanyID: ownerProfile.ID}

	assert.NoError(t, gate.OwnsJob(ctx, Actor{UserID: owner, Role: entity.RoleCompany}, job))
	assert.NoError(t, gate.OwnsJob(ctx, Actor{UserID: uuid.New(), Role: entity.RoleAdmin}, job))

	err := gate.OwnsJob(ctx, Actor{UserID: other, Role: entity.RoleCompany}, job)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	err = gate.OwnsJob(ctx, Actor{UserID: uuid.New(), Role: entity.RoleStudent}, job)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	assert.True(t, gate.IsJobOwner(ctx, Actor{UserID: owner, Role: entity.RoleCompany}, job))
	assert.False(t, gate.IsJobOwner(ctx, Actor{UserID: other, Role: entity.RoleCompany}, job))
	assert.False(t, gate.IsJobOwner(ctx, Actor{UserID: uuid.New(), Role: entity.RoleStudent}, job))
}
