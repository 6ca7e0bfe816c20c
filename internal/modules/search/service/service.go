package service

import (
	"fmt"
	"html"
	"log"
	"strings"
	"time"

	"anoa.com/placementportal/internal/entity"
	"github.com/google/uuid"
	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
)

const (
	JobsIndex         = "jobs"
	signingKeyName    = "TenantTokenSigner"
	searchTokenExpiry = 24 * time.Hour
)

type MeiliSearchService interface {
	IndexJob(job *entity.Job) error
	DeleteJob(id uuid.UUID) error
	// GenerateSearchToken issues a tenant token restricted to what role may see.
	// companyID scopes a company to its own inactive postings.
	GenerateSearchToken(role entity.Role, companyID *uuid.UUID) (string, error)
}

type meiliSearchService struct {
	client        meilisearch.ServiceManager
	signingKeyUID string
	signingKey    string
	sanitizer     *bluemonday.Policy
}

func NewMeiliSearchService(client meilisearch.ServiceManager, masterKey string) MeiliSearchService {
	if masterKey == "" {
		log.Println("WARNING: MEILI_MASTER_KEY is not set.")
	}

	s := &meiliSearchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndexes()
	s.initSigningKey()
	return s
}

func (s *meiliSearchService) initSigningKey() {
	resp, err := s.client.GetKeys(&meilisearch.KeysQuery{
		Limit: 20,
	})
	if err != nil {
		log.Printf("Failed to get meilisearch keys: %v", err)
		return
	}

	for _, key := range resp.Results {
		if key.Name == signingKeyName {
			s.signingKeyUID = key.UID
			s.signingKey = key.Key
			log.Println("Found existing Meilisearch signing key")
			return
		}
	}

	key, err := s.client.CreateKey(&meilisearch.Key{
		Description: "Key to sign tenant tokens",
		Name:        signingKeyName,
		Actions:     []string{"search"},
		Indexes:     []string{JobsIndex},
		ExpiresAt:   time.Now().AddDate(100, 0, 0),
	})
	if err != nil {
		log.Printf("Failed to create signing key: %v", err)
		return
	}

	s.signingKeyUID = key.UID
	s.signingKey = key.Key
	log.Println("Created new Meilisearch signing key")
}

func (s *meiliSearchService) initIndexes() {
	filterable := []any{"is_active", "company_id", "job_type", "departments"}
	if _, err := s.client.Index(JobsIndex).UpdateFilterableAttributes(&filterable); err != nil {
		log.Printf("Failed to update jobs filterable attributes: %v", err)
	}

	sortable := []string{"created_at", "deadline"}
	if _, err := s.client.Index(JobsIndex).UpdateSortableAttributes(&sortable); err != nil {
		log.Printf("Failed to update jobs sortable attributes: %v", err)
	}

	log.Println("Meilisearch indexes initialized")
}

type meiliJobDoc struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	JobType     string   `json:"job_type"`
	Skills      []string `json:"skills"`
	Departments []string `json:"departments"`
	CompanyID   string   `json:"company_id"`
	CompanyName string   `json:"company_name"`
	IsActive    bool     `json:"is_active"`
	Deadline    int64    `json:"deadline"`
	CreatedAt   int64    `json:"created_at"`
}

func newJobDoc(job *entity.Job, clean func(string) string) meiliJobDoc {
	doc := meiliJobDoc{
		ID:          job.ID.String(),
		Title:       job.Title,
		Description: clean(job.Description),
		Location:    job.Location,
		JobType:     string(job.JobType),
		Skills:      job.Skills,
		Departments: job.Eligibility.Departments,
		CompanyID:   job.CompanyID.String(),
		IsActive:    job.IsActive,
		Deadline:    job.Deadline.Unix(),
		CreatedAt:   job.CreatedAt.Unix(),
	}
	if job.Company != nil {
		doc.CompanyName = job.Company.CompanyName
	}
	return doc
}

// cleanContentForIndex strips markup so only the readable text is searchable.
func (s *meiliSearchService) cleanContentForIndex(content string) string {
	content = strings.ReplaceAll(content, "</p>", " ")
	content = strings.ReplaceAll(content, "<br>", " ")
	content = strings.ReplaceAll(content, "</div>", " ")

	cleanText := html.UnescapeString(s.sanitizer.Sanitize(content))

	return strings.Join(strings.Fields(cleanText), " ")
}

func (s *meiliSearchService) IndexJob(job *entity.Job) error {
	doc := newJobDoc(job, s.cleanContentForIndex)

	task, err := s.client.Index(JobsIndex).AddDocuments([]meiliJobDoc{doc}, strPtr("id"))
	if err != nil {
		return err
	}
	log.Printf("Indexed job %s, task id: %d", job.ID, task.TaskUID)
	return nil
}

func (s *meiliSearchService) DeleteJob(id uuid.UUID) error {
	_, err := s.client.Index(JobsIndex).DeleteDocument(id.String())
	return err
}

// jobFilter mirrors the catalog's visibility rule: inactive jobs are only
// searchable by admins and by the company that posted them.
func jobFilter(role entity.Role, companyID *uuid.UUID) any {
	switch {
	case role == entity.RoleAdmin:
		return nil
	case role == entity.RoleCompany && companyID != nil:
		return fmt.Sprintf("is_active = true OR company_id = '%s'", companyID.String())
	default:
		return "is_active = true"
	}
}

func (s *meiliSearchService) GenerateSearchToken(role entity.Role, companyID *uuid.UUID) (string, error) {
	if s.signingKeyUID == "" || s.signingKey == "" {
		return "", fmt.Errorf("signing key not initialized")
	}

	searchRules := map[string]any{
		JobsIndex: map[string]any{"filter": jobFilter(role, companyID)},
	}

	return s.client.GenerateTenantToken(s.signingKeyUID, searchRules, &meilisearch.TenantTokenOptions{
		APIKey:    s.signingKey,
		ExpiresAt: time.Now().Add(searchTokenExpiry),
	})
}

func strPtr(s string) *string {
	return &s
}
