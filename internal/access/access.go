// Package access is the authorization gate shared by every workflow operation.
//
// Operations declare a Policy (the roles allowed to call them) and use a Gate to
// resolve the caller's owned profile and check resource ownership. Failures follow
// one rule: a role outside the policy gets ErrForbidden before anything is looked
// up, and a resource owned by somebody else is reported as ErrNotFound so its
// existence is never confirmed to the caller.
package access

import (
	"context"
	"fmt"

	"anoa.com/placementportal/internal/entity"
	"anoa.com/placementportal/pkg/apperror"
	"anoa.com/placementportal/pkg/database"
	"github.com/google/uuid"
)

// Actor is the authenticated caller as carried by the session token.
type Actor struct {
	UserID uuid.UUID
	Role   entity.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == entity.RoleAdmin
}

type Policy struct {
	roles []entity.Role
}

// Allow declares the roles permitted to perform an operation.
func Allow(roles ...entity.Role) Policy {
	return Policy{roles: roles}
}

func (p Policy) Permits(role entity.Role) bool {
	for _, r := range p.roles {
		if r == role {
			return true
		}
	}
	return false
}

func (p Policy) Check(actor Actor) error {
	if !p.Permits(actor.Role) {
		return fmt.Errorf("role %q may not perform this action: %w", actor.Role, apperror.ErrForbidden)
	}
	return nil
}

func (p Policy) Roles() []entity.Role {
	return append([]entity.Role(nil), p.roles...)
}

type StudentFinder interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.StudentProfile, error)
}

type CompanyFinder interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.CompanyProfile, error)
}

type Gate struct {
	students  StudentFinder
	companies CompanyFinder
}

func NewGate(students StudentFinder, companies CompanyFinder) *Gate {
	return &Gate{students: students, companies: companies}
}

var (
	studentOnly = Allow(entity.RoleStudent)
	companyOnly = Allow(entity.RoleCompany)
)

// Student resolves the calling student's profile.
func (g *Gate) Student(ctx context.Context, actor Actor) (*entity.StudentProfile, error) {
	if err := studentOnly.Check(actor); err != nil {
		return nil, err
	}
	profile, err := g.students.FindByUserID(ctx, actor.UserID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("student profile not found: %w", apperror.ErrProfileRequired)
		}
		return nil, err
	}
	return profile, nil
}

// Company resolves the calling company's profile.
func (g *Gate) Company(ctx context.Context, actor Actor) (*entity.CompanyProfile, error) {
	if err := companyOnly.Check(actor); err != nil {
		return nil, err
	}
	profile, err := g.companies.FindByUserID(ctx, actor.UserID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("company profile not found: %w", apperror.ErrProfileRequired)
		}
		return nil, err
	}
	return profile, nil
}

// OwnsJob admits admins and the company that posted job.
func (g *Gate) OwnsJob(ctx context.Context, actor Actor, job *entity.Job) error {
	if actor.IsAdmin() {
		return nil
	}
	company, err := g.Company(ctx, actor)
	if err != nil {
		return err
	}
	if job == nil || job.CompanyID != company.ID {
		return fmt.Errorf("job not found: %w", apperror.ErrNotFound)
	}
	return nil
}

// IsJobOwner is OwnsJob without the error: false for anyone who is not the owner or an admin.
func (g *Gate) IsJobOwner(ctx context.Context, actor Actor, job *entity.Job) bool {
	if actor.Role != entity.RoleCompany && !actor.IsAdmin() {
		return false
	}
	return g.OwnsJob(ctx, actor, job) == nil
}
