package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JobType string

const (
	JobTypeFullTime   JobType = "Full-time"
	JobTypePartTime   JobType = "Part-time"
	JobTypeInternship JobType = "Internship"
)

func (t JobType) Valid() bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeInternship:
		return true
	}
	return false
}

const DefaultCurrency = "USD"

type Salary struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `gorm:"size:10" json:"currency"`
}

type Eligibility struct {
	MinCGPA         float64  `gorm:"column:min_cgpa" json:"minCGPA"`
	GraduationYears []int    `gorm:"type:text;serializer:json" json:"graduationYears"`
	Departments     []string `gorm:"type:text;serializer:json" json:"departments"`
}

type Job struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID    uuid.UUID   `gorm:"type:uuid;not null;index" json:"companyId"`
	Title        string      `gorm:"size:200;not null" json:"title"`
	Description  string      `gorm:"type:text;not null" json:"description"`
	Requirements []string    `gorm:"type:text;serializer:json" json:"requirements"`
	Location     string      `gorm:"size:150;not null" json:"location"`
	JobType      JobType     `gorm:"size:20;not null;index" json:"jobType"`
	Salary       Salary      `gorm:"embedded;embeddedPrefix:salary_" json:"salary"`
	Skills       []string    `gorm:"type:text;serializer:json" json:"skills"`
	Eligibility  Eligibility `gorm:"embedded;embeddedPrefix:eligibility_" json:"eligibility"`
	Deadline     time.Time   `gorm:"not null" json:"deadline"`
	IsActive     bool        `gorm:"not null;index" json:"isActive"`
	CreatedAt    time.Time   `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt    time.Time   `gorm:"autoUpdateTime" json:"updatedAt"`

	Company *CompanyProfile `gorm:"foreignKey:CompanyID" json:"company"`
}

func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if j.Salary.Currency == "" {
		j.Salary.Currency = DefaultCurrency
	}
	return nil
}

// AcceptsDepartment reports exact membership of department in the eligibility list.
func (j *Job) AcceptsDepartment(department string) bool {
	for _, d := range j.Eligibility.Departments {
		if d == department {
			return true
		}
	}
	return false
}

// EligibilityReport describes how a student measures up against a job's
// eligibility predicates. It is informational only.
type EligibilityReport struct {
	Eligible bool     `json:"eligible"`
	Reasons  []string `json:"reasons"`
}

// CheckEligibility evaluates minCGPA, graduationYears and departments.
// Empty year or department lists place no restriction.
func (j *Job) CheckEligibility(student *StudentProfile) EligibilityReport {
	report := EligibilityReport{Eligible: true, Reasons: []string{}}
	if student == nil {
		return EligibilityReport{Eligible: false, Reasons: []string{"student profile required"}}
	}

	if student.CGPA < j.Eligibility.MinCGPA {
		report.Reasons = append(report.Reasons, fmt.Sprintf("cgpa %.2f is below the minimum of %.2f", student.CGPA, j.Eligibility.MinCGPA))
	}

	if len(j.Eligibility.GraduationYears) > 0 {
		allowed := false
		for _, y := range j.Eligibility.GraduationYears {
			if y == student.GraduationYear {
				allowed = true
				break
			}
		}
		if !allowed {
			report.Reasons = append(report.Reasons, fmt.Sprintf("graduation year %d is not eligible", student.GraduationYear))
		}
	}

	if len(j.Eligibility.Departments) > 0 && !j.AcceptsDepartment(student.Department) {
		report.Reasons = append(report.Reasons, fmt.Sprintf("department %q is not eligible", student.Department))
	}

	report.Eligible = len(report.Reasons) == 0
	return report
}
