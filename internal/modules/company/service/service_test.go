package service

import (
	"context"
	"testing"

	"anoa.com/placementportal/internal/access"
	companyRepo "anoa.com/placementportal/internal/modules/company/repository"
	"anoa.com/placementportal/internal/modules/company/dto"
	studentRepo "anoa.com/placementportal/internal/modules/student/repository"
	userRepo "anoa.com/placementportal/internal/modules/user/repository"
	"anoa.com/placementportal/internal/testutil"
	"anoa.com/placementportal/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyProfile(t *testing.T) {
	db := testutil.NewDB(t)
	companies := companyRepo.NewCompanyRepository(db)
	gate := access.NewGate(studentRepo.NewStudentRepository(db), companies)
	svc := NewCompanyService(companies, userRepo.NewUserRepository(db), gate)
	ctx := context.Background()

	company := testutil.SeedCompany(t, db, true)
	student := testutil.SeedStudent(t, db, nil)

	res, err := svc.GetProfile(ctx, company.Actor())
	require.NoError(t, err)
	assert.Equal(t, company.Company.CompanyName, res.Profile.CompanyName)
	assert.True(t, res.User.IsApproved)

	website := "https://acme.test"
	updated, err := svc.UpdateProfile(ctx, company.Actor(), dto.UpdateCompanyProfileInput{Website: &website})
	require.NoError(t, err)
	assert.Equal(t, website, updated.Website)
	assert.Equal(t, company.Company.Industry, updated.Industry)

	_, err = svc.GetProfile(ctx, student.Actor())
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	list, err := svc.ListAll(ctx, student.Actor())
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.ListAll(ctx, company.Actor())
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}
