package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Project struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Link         *string  `json:"link,omitempty"`
}

type Education struct {
	Degree      string  `json:"degree"`
	Institution string  `json:"institution"`
	Year        int     `json:"year"`
	Percentage  float64 `json:"percentage"`
}

type StudentProfile struct {
	ID             uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID   `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`
	FullName       string      `gorm:"size:150;not null" json:"fullName"`
	Phone          string      `gorm:"size:30;not null" json:"phone"`
	RollNumber     string      `gorm:"size:50;uniqueIndex;not null" json:"rollNumber"`
	Department     string      `gorm:"size:100;not null" json:"department"`
	GraduationYear int         `gorm:"not null" json:"graduationYear"`
	CGPA           float64     `gorm:"column:cgpa;not null" json:"cgpa"`
	Skills         []string    `gorm:"type:text;serializer:json" json:"skills"`
	Resume         *string     `gorm:"type:text" json:"resume,omitempty"`
	Projects       []Project   `gorm:"type:text;serializer:json" json:"projects"`
	Education      []Education `gorm:"type:text;serializer:json" json:"education"`
	CreatedAt      time.Time   `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time   `gorm:"autoUpdateTime" json:"updatedAt"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (p *StudentProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type CompanyProfile struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`
	CompanyName   string    `gorm:"size:150;not null" json:"companyName"`
	Industry      string    `gorm:"size:100" json:"industry"`
	Website       string    `gorm:"size:255" json:"website"`
	Description   string    `gorm:"type:text" json:"description"`
	Location      string    `gorm:"size:150" json:"location"`
	ContactPerson string    `gorm:"size:150" json:"contactPerson"`
	ContactEmail  string    `gorm:"size:255" json:"contactEmail"`
	ContactPhone  string    `gorm:"size:30" json:"contactPhone"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (p *CompanyProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// OwnedProfiles lists the profile tables owned by an identity through user_id.
// Deleting an identity removes its row from each of them.
func OwnedProfiles() []any {
	return []any{&StudentProfile{}, &CompanyProfile{}}
}

// Owned is a profile that belongs to exactly one identity.
type Owned interface {
	SetOwner(userID uuid.UUID)
}

func (p *StudentProfile) SetOwner(userID uuid.UUID) { p.UserID = userID }

func (p *CompanyProfile) SetOwner(userID uuid.UUID) { p.UserID = userID }
