package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"anoa.com/placementportal/internal/access"
	"anoa.com/placementportal/internal/entity"
	companyRepo "anoa.com/placementportal/internal/modules/company/repository"
	"anoa.com/placementportal/internal/modules/student/dto"
	studentRepo "anoa.com/placementportal/internal/modules/student/repository"
	userRepo "anoa.com/placementportal/internal/modules/user/repository"
	"anoa.com/placementportal/internal/testutil"
	"anoa.com/placementportal/pkg/apperror"
	"anoa.com/placementportal/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memoryStorage struct {
	uploaded  []string
	deleted   []string
	failWrite bool
}

func (m *memoryStorage) Upload(_ context.Context, r io.Reader, folder, fileName string) (string, error) {
	if m.failWrite {
		return "", errors.New("storage down")
	}
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	url := "https://files.test/" + folder + "/" + fileName
	m.uploaded = append(m.uploaded, url)
	return url, nil
}

func (m *memoryStorage) Delete(_ context.Context, url string) error {
	m.deleted = append(m.deleted, url)
	return nil
}

func newTestService(t *testing.T, fileStorage storage.FileStorage) (StudentService, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	students := studentRepo.NewStudentRepository(db)
	gate := access.NewGate(students, companyRepo.NewCompanyRepository(db))
	return NewStudentService(students, userRepo.NewUserRepository(db), gate, fileStorage), db
}

func ptr[T any](v T) *T { return &v }

func TestGetProfile(t *testing.T) {
	svc, db := newTestService(t, nil)
	student := testutil.SeedStudent(t, db, nil)

	res, err := svc.GetProfile(context.Background(), student.Actor())
	require.NoError(t, err)
	assert.Equal(t, student.User.Email, res.User.Email)
	assert.Equal(t, student.Student.RollNumber, res.Profile.RollNumber)

	company := testutil.SeedCompany(t, db, true)
	_, err = svc.GetProfile(context.Background(), company.Actor())
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestUpdateProfileIsPartial(t *testing.T) {
	svc, db := newTestService(t, nil)
	student := testutil.SeedStudent(t, db, nil)

	updated, err := svc.UpdateProfile(context.Background(), student.Actor(), dto.UpdateStudentProfileInput{
		CGPA:   ptr(9.1),
		Skills: &[]string{"go", "sql"},
	})
	require.NoError(t, err)
	assert.Equal(t, 9.1, updated.CGPA)
	assert.Equal(t, student.Student.FullName, updated.FullName)

	var stored entity.StudentProfile
	require.NoError(t, db.First(&stored, "id = ?", student.Student.ID).Error)
	assert.Equal(t, []string{"go", "sql"}, stored.Skills)
	assert.Equal(t, student.Student.Department, stored.Department)
}

func TestUpdateProfileRollNumberConflict(t *testing.T) {
	svc, db := newTestService(t, nil)
	first := testutil.SeedStudent(t, db, nil)
	second := testutil.SeedStudent(t, db, nil)

	_, err := svc.UpdateProfile(context.Background(), second.Actor(), dto.UpdateStudentProfileInput{
		RollNumber: ptr(first.Student.RollNumber),
	})
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestUploadResume(t *testing.T) {
	files := &memoryStorage{}
	svc, db := newTestService(t, files)
	student := testutil.SeedStudent(t, db, nil)
	ctx := context.Background()

	upload := func(name string, size int64) (*entity.StudentProfile, error) {
		return svc.UploadResume(ctx, student.Actor(), dto.ResumeFile{
			Reader:   strings.NewReader("%PDF-1.4"),
			FileName: name,
			Size:     size,
		})
	}

	profile, err := upload("cv.pdf", 8)
	require.NoError(t, err)
	require.NotNil(t, profile.Resume)
	first := *profile.Resume

	profile, err = upload("cv-v2.docx", 8)
	require.NoError(t, err)
	assert.NotEqual(t, first, *profile.Resume)
	assert.Equal(t, []string{first}, files.deleted)

	_, err = upload("cv.exe", 8)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	_, err = upload("huge.pdf", MaxResumeSize+1)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	files.failWrite = true
	_, err = upload("cv.pdf", 8)
	assert.Error(t, err)
	assert.Equal(t, apperror.KindServerFault, apperror.KindOf(err))
}

func TestUploadResumeWithoutStorage(t *testing.T) {
	svc, db := newTestService(t, nil)
	student := testutil.SeedStudent(t, db, nil)

	_, err := svc.UploadResume(context.Background(), student.Actor(), dto.ResumeFile{
		Reader:   strings.NewReader("x"),
		FileName: "cv.pdf",
		Size:     1,
	})
	assert.ErrorIs(t, err, apperror.ErrBadRequest)
}

func TestListAll(t *testing.T) {
	svc, db := newTestService(t, nil)
	student := testutil.SeedStudent(t, db, nil)
	testutil.SeedStudent(t, db, nil)
	company := testutil.SeedCompany(t, db, true)
	admin := testutil.SeedAdmin(t, db)

	list, err := svc.ListAll(context.Background(), company.Actor())
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = svc.ListAll(context.Background(), admin.Actor())
	assert.NoError(t, err)

	_, err = svc.ListAll(context.Background(), student.Actor())
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}
