package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"anoa.com/placementportal/internal/access"
	"anoa.com/placementportal/internal/entity"
	"anoa.com/placementportal/internal/modules/application/dto"
	appRepo "anoa.com/placementportal/internal/modules/application/repository"
	companyRepo "anoa.com/placementportal/internal/modules/company/repository"
	jobRepo "anoa.com/placementportal/internal/modules/job/repository"
	notifRepo "anoa.com/placementportal/internal/modules/notification/repository"
	notifService "anoa.com/placementportal/internal/modules/notification/service"
	studentRepo "anoa.com/placementportal/internal/modules/student/repository"
	"anoa.com/placementportal/internal/testutil"
	"anoa.com/placementportal/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	svc     ApplicationService
	db      *gorm.DB
	company testutil.Seeded
	student testutil.Seeded
	job     *entity.Job
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db := testutil.NewDB(t)
	gate := access.NewGate(studentRepo.NewStudentRepository(db), companyRepo.NewCompanyRepository(db))
	notifications := notifService.NewNotificationService(notifRepo.NewNotificationRepository(db), nil)
	svc := NewApplicationService(appRepo.NewApplicationRepository(db), jobRepo.NewJobRepository(db), gate, notifications)

	company := testutil.SeedCompany(t, db, true)
	return fixture{
		svc:     svc,
		db:      db,
		company: company,
		student: testutil.SeedStudent(t, db, nil),
		job:     testutil.SeedJob(t, db, company.Company, nil),
	}
}

func (f fixture) apply(t *testing.T) *dto.ApplicationResponse {
	t.Helper()
	res, err := f.svc.Apply(context.Background(), f.student.Actor(), dto.ApplyInput{
		JobID:       f.job.ID.String(),
		CoverLetter: "Hire me",
	})
	require.NoError(t, err)
	return res
}

func countNotifications(t *testing.T, db *gorm.DB, userID uuid.UUID, kind string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&entity.Notification{}).
		Where("user_id = ? AND type = ?", userID, kind).
		Count(&n).Error)
	return n
}

func TestApply(t *testing.T) {
	f := newFixture(t)

	res := f.apply(t)
	assert.Equal(t, entity.StatusPending, res.Status)
	assert.Equal(t, f.job.ID, res.JobID)
	assert.Equal(t, f.student.Student.ID, res.StudentID)
	require.NotNil(t, res.Eligibility)
	assert.True(t, res.Eligibility.Eligible)

	assert.EqualValues(t, 1, countNotifications(t, f.db, f.company.User.ID, entity.NotificationApplicationReceived))
}

func TestApplyRejectsDuplicates(t *testing.T) {
	f := newFixture(t)
	f.apply(t)

	_, err := f.svc.Apply(context.Background(), f.student.Actor(), dto.ApplyInput{JobID: f.job.ID.String(), CoverLetter: "again"})
	assert.ErrorIs(t, err, apperror.ErrConflict)

	var n int64
	require.NoError(t, f.db.Model(&entity.Application{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestConcurrentApplyStoresOneApplication(t *testing.T) {
	f := newFixture(t)

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Apply(context.Background(), f.student.Actor(), dto.ApplyInput{JobID: f.job.ID.String(), CoverLetter: "race"})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
			} else if apperror.KindOf(err) == apperror.KindDuplicate {
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicts)
}

func TestApplyToMissingOrInactiveJob(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Apply(ctx, f.student.Actor(), dto.ApplyInput{JobID: uuid.NewString(), CoverLetter: "x"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	closed := testutil.SeedJob(t, f.db, f.company.Company, func(j *entity.Job) { j.IsActive = false })
	_, err = f.svc.Apply(ctx, f.student.Actor(), dto.ApplyInput{JobID: closed.ID.String(), CoverLetter: "x"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = f.svc.Apply(ctx, f.company.Actor(), dto.ApplyInput{JobID: f.job.ID.String(), CoverLetter: "x"})
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestListByStudent(t *testing.T) {
	f := newFixture(t)
	f.apply(t)

	list, err := f.svc.ListByStudent(context.Background(), f.student.Actor())
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Job)
	assert.Equal(t, f.job.Title, list[0].Job.Title)
	require.NotNil(t, list[0].Job.Company)
	assert.Equal(t, f.company.Company.CompanyName, list[0].Job.Company.CompanyName)
}

func TestListByJobIsOwnerOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.apply(t)

	list, err := f.svc.ListByJob(ctx, f.company.Actor(), f.job.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Student)
	require.NotNil(t, list[0].Student.User)
	assert.Equal(t, f.student.User.Email, list[0].Student.User.Email)

	other := testutil.SeedCompany(t, f.db, true)
	_, err = f.svc.ListByJob(ctx, other.Actor(), f.job.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = f.svc.ListByJob(ctx, f.student.Actor(), f.job.ID)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	admin := testutil.SeedAdmin(t, f.db)
	list, err = f.svc.ListByJob(ctx, admin.Actor(), f.job.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	all, err := f.svc.ListAll(ctx, admin.Actor())
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = f.svc.ListAll(ctx, f.company.Actor())
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestSetStatusFollowsTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	app := f.apply(t)

	res, err := f.svc.SetStatus(ctx, f.company.Actor(), app.ID, entity.StatusShortlisted)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusShortlisted, res.Status)
	assert.EqualValues(t, 1, countNotifications(t, f.db, f.student.User.ID, entity.NotificationApplicationStatus))

	// re-setting the same status is a no-op and sends nothing
	_, err = f.svc.SetStatus(ctx, f.company.Actor(), app.ID, entity.StatusShortlisted)
	require.NoError(t, err)
	assert.EqualValues(t, 1, countNotifications(t, f.db, f.student.User.ID, entity.NotificationApplicationStatus))

	_, err = f.svc.SetStatus(ctx, f.company.Actor(), app.ID, entity.StatusPending)
	assert.ErrorIs(t, err, apperror.ErrInvalidTransition)

	_, err = f.svc.SetStatus(ctx, f.company.Actor(), app.ID, entity.StatusAccepted)
	require.NoError(t, err)

	_, err = f.svc.SetStatus(ctx, f.company.Actor(), app.ID, entity.StatusRejected)
	assert.ErrorIs(t, err, apperror.ErrInvalidTransition)

	var stored entity.Application
	require.NoError(t, f.db.First(&stored, "id = ?", app.ID).Error)
	assert.Equal(t, entity.StatusAccepted, stored.Status)

	admin := testutil.SeedAdmin(t, f.db)
	res, err = f.svc.SetStatus(ctx, admin.Actor(), app.ID, entity.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, res.Status)
}

// racingRepository runs beforeUpdate once, between the service's read and
// its status write.
type racingRepository struct {
	appRepo.ApplicationRepository
	beforeUpdate func()
}

func (r *racingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from *entity.ApplicationStatus, to entity.ApplicationStatus, updatedAt time.Time) error {
	if hook := r.beforeUpdate; hook != nil {
		r.beforeUpdate = nil
		hook()
	}
	return r.ApplicationRepository.UpdateStatus(ctx, id, from, to, updatedAt)
}

func TestSetStatusRejectsConcurrentChange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	app := f.apply(t)

	gate := access.NewGate(studentRepo.NewStudentRepository(f.db), companyRepo.NewCompanyRepository(f.db))
	repo := &racingRepository{ApplicationRepository: appRepo.NewApplicationRepository(f.db)}
	svc := NewApplicationService(repo, jobRepo.NewJobRepository(f.db), gate, nil)

	repo.beforeUpdate = func() {
		_, err := f.svc.SetStatus(ctx, f.company.Actor(), app.ID, entity.StatusAccepted)
		require.NoError(t, err)
	}

	_, err := svc.SetStatus(ctx, f.company.Actor(), app.ID, entity.StatusRejected)
	assert.ErrorIs(t, err, apperror.ErrInvalidTransition)

	var stored entity.Application
	require.NoError(t, f.db.First(&stored, "id = ?", app.ID).Error)
	assert.Equal(t, entity.StatusAccepted, stored.Status)

	// admins override whatever is stored
	admin := testutil.SeedAdmin(t, f.db)
	repo.beforeUpdate = func() {
		require.NoError(t, f.db.Model(&entity.Application{}).
			Where("id = ?", app.ID).
			Update("status", entity.StatusShortlisted).Error)
	}
	res, err := svc.SetStatus(ctx, admin.Actor(), app.ID, entity.StatusRejected)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusRejected, res.Status)
}

func TestSetStatusAccess(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	app := f.apply(t)

	other := testutil.SeedCompany(t, f.db, true)
	_, err := f.svc.SetStatus(ctx, other.Actor(), app.ID, entity.StatusRejected)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = f.svc.SetStatus(ctx, f.student.Actor(), app.ID, entity.StatusAccepted)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	_, err = f.svc.SetStatus(ctx, f.company.Actor(), app.ID, entity.ApplicationStatus("hired"))
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	_, err = f.svc.SetStatus(ctx, f.company.Actor(), uuid.New(), entity.StatusRejected)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
