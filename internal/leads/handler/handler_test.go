package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	enrichsvc "leadsync_backend/internal/enrichment/service"
	"leadsync_backend/internal/leads/cache"
	"leadsync_backend/internal/leads/repository"
	"leadsync_backend/internal/leads/service"
	"leadsync_backend/internal/leads/transport"
	"leadsync_backend/platform/logger"
	"leadsync_backend/platform/validator"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// memoryRepo is a minimal in-memory repository for handler tests.
type memoryRepo struct {
	leads map[uuid.UUID]repository.Lead
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{leads: make(map[uuid.UUID]repository.Lead)}
}

func (r *memoryRepo) Create(_ context.Context, params repository.CreateLeadParams) (repository.Lead, error) {
	for _, lead := range r.leads {
		if lead.Email == params.Email {
			return repository.Lead{}, repository.ErrDuplicate
		}
	}
	now := time.Now().UTC()
	lead := repository.Lead{
		ID:         uuid.New(),
		FirstName:  params.FirstName,
		LastName:   params.LastName,
		Email:      params.Email,
		Phone:      params.Phone,
		Company:    params.Company,
		City:       params.City,
		Country:    params.Country,
		Source:     params.Source,
		ExternalID: params.ExternalID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	r.leads[lead.ID] = lead
	return lead, nil
}

func (r *memoryRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Lead, error) {
	lead, ok := r.leads[id]
	if !ok {
		return repository.Lead{}, repository.ErrNotFound
	}
	return lead, nil
}

func (r *memoryRepo) GetByEmail(_ context.Context, email string) (repository.Lead, error) {
	for _, lead := range r.leads {
		if lead.Email == email {
			return lead, nil
		}
	}
	return repository.Lead{}, repository.ErrNotFound
}

func (r *memoryRepo) GetByExternalID(_ context.Context, externalID string) (repository.Lead, error) {
	for _, lead := range r.leads {
		if lead.ExternalID != nil && *lead.ExternalID == externalID {
			return lead, nil
		}
	}
	return repository.Lead{}, repository.ErrNotFound
}

func (r *memoryRepo) List(_ context.Context) ([]repository.Lead, error) {
	out := make([]repository.Lead, 0, len(r.leads))
	for _, lead := range r.leads {
		out = append(out, lead)
	}
	return out, nil
}

func (r *memoryRepo) UpdateSummary(_ context.Context, id uuid.UUID, summary, nextAction string) (repository.Lead, error) {
	lead, ok := r.leads[id]
	if !ok {
		return repository.Lead{}, repository.ErrNotFound
	}
	lead.Summary = &summary
	lead.NextAction = &nextAction
	r.leads[id] = lead
	return lead, nil
}

type stubSummarizer struct {
	result enrichsvc.Result
}

func (s stubSummarizer) Summarize(context.Context, repository.Lead) enrichsvc.Result {
	return s.result
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	log := logger.New("development")
	svc := service.New(newMemoryRepo(), cache.New(client, 300*time.Second, log), log)
	h := New(svc, stubSummarizer{result: enrichsvc.Result{Summary: "Solid lead.", NextAction: "Email them."}}, validator.New())

	engine := gin.New()
	engine.POST("/leads", h.Create)
	engine.GET("/leads", h.List)
	engine.GET("/leads/:id", h.GetByID)
	engine.POST("/leads/:id/summarize", h.Summarize)
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(rec, req)
	return rec
}

func TestCreateThenDuplicateConflicts(t *testing.T) {
	engine := newTestEngine(t)
	body := `{"firstName": "Ada", "lastName": "Lovelace", "email": "a@x.com"}`

	rec := doJSON(t, engine, http.MethodPost, "/leads", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created transport.LeadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected lead id in response")
	}

	rec = doJSON(t, engine, http.MethodPost, "/leads", body)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", rec.Code)
	}
}

func TestCreateRejectsInvalidEmail(t *testing.T) {
	engine := newTestEngine(t)

	rec := doJSON(t, engine, http.MethodPost, "/leads", `{"firstName": "Ada", "lastName": "Lovelace", "email": "not-an-email"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetByIDUnknownReturnsNotFound(t *testing.T) {
	engine := newTestEngine(t)

	rec := doJSON(t, engine, http.MethodGet, "/leads/"+uuid.NewString(), "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestGetByIDInvalidUUID(t *testing.T) {
	engine := newTestEngine(t)

	rec := doJSON(t, engine, http.MethodGet, "/leads/not-a-uuid", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSummarizePersistsEnrichmentPair(t *testing.T) {
	engine := newTestEngine(t)

	rec := doJSON(t, engine, http.MethodPost, "/leads", `{"firstName": "Ada", "lastName": "Lovelace", "email": "a@x.com"}`)
	var created transport.LeadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	rec = doJSON(t, engine, http.MethodPost, "/leads/"+created.ID+"/summarize", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var summary transport.SummarizeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("failed to decode summary: %v", err)
	}
	if summary.Summary != "Solid lead." || summary.NextAction != "Email them." {
		t.Fatalf("unexpected summary response: %+v", summary)
	}

	rec = doJSON(t, engine, http.MethodGet, "/leads/"+created.ID, "")
	var got transport.LeadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode lead: %v", err)
	}
	if got.Summary == nil || *got.Summary != "Solid lead." {
		t.Fatalf("expected persisted summary, got %+v", got.Summary)
	}
	if got.NextAction == nil || *got.NextAction != "Email them." {
		t.Fatalf("expected persisted next action, got %+v", got.NextAction)
	}
}
