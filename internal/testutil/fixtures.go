package testutil

import (
	"fmt"
	"testing"
	"time"

	"anoa.com/placementportal/internal/access"
	"anoa.com/placementportal/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Seeded is an identity created directly in the database, with its profile.
type Seeded struct {
	User    *entity.User
	Student *entity.StudentProfile
	Company *entity.CompanyProfile
}

func (s Seeded) Actor() access.Actor {
	return access.Actor{UserID: s.User.ID, Role: s.User.Role}
}

func seedUser(t testing.TB, db *gorm.DB, role entity.Role, approved bool) *entity.User {
	t.Helper()
	user := &entity.User{
		Email:        fmt.Sprintf("%s-%s@portal.test", role, uuid.NewString()[:8]),
		PasswordHash: "x",
		Role:         role,
		Approved:     approved,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

// SeedStudent creates an approved student. mutate may adjust the profile before insert.
func SeedStudent(t testing.TB, db *gorm.DB, mutate func(*entity.StudentProfile)) Seeded {
	t.Helper()
	user := seedUser(t, db, entity.RoleStudent, true)
	profile := &entity.StudentProfile{
		UserID:         user.ID,
		FullName:       "Student " + user.ID.String()[:4],
		Phone:          "555-0100",
		RollNumber:     "R-" + user.ID.String()[:8],
		Department:     "CSE",
		GraduationYear: 2026,
		CGPA:           8,
		Skills:         []string{},
		Projects:       []entity.Project{},
		Education:      []entity.Education{},
	}
	if mutate != nil {
		mutate(profile)
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("seed student profile: %v", err)
	}
	return Seeded{User: user, Student: profile}
}

func SeedCompany(t testing.TB, db *gorm.DB, approved bool) Seeded {
	t.Helper()
	user := seedUser(t, db, entity.RoleCompany, approved)
	profile := &entity.CompanyProfile{
		UserID:      user.ID,
		CompanyName: "Company " + user.ID.String()[:4],
		Industry:    "Software",
		Location:    "Pune",
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("seed company profile: %v", err)
	}
	return Seeded{User: user, Company: profile}
}

func SeedAdmin(t testing.TB, db *gorm.DB) Seeded {
	t.Helper()
	return Seeded{User: seedUser(t, db, entity.RoleAdmin, true)}
}

// SeedJob posts an active job for company. mutate may adjust it before insert.
func SeedJob(t testing.TB, db *gorm.DB, company *entity.CompanyProfile, mutate func(*entity.Job)) *entity.Job {
	t.Helper()
	job := &entity.Job{
		CompanyID:    company.ID,
		Title:        "Backend Engineer",
		Description:  "Build services",
		Requirements: []string{},
		Location:     "Remote",
		JobType:      entity.JobTypeFullTime,
		Skills:       []string{"go"},
		Eligibility: entity.Eligibility{
			GraduationYears: []int{},
			Departments:     []string{},
		},
		Deadline: time.Now().Add(30 * 24 * time.Hour),
		IsActive: true,
	}
	if mutate != nil {
		mutate(job)
	}
	if err := db.Create(job).Error; err != nil {
		t.Fatalf("seed job: %v", err)
	}
	return job
}
