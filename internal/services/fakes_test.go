package services

import (
	"context"
	"io"
	"sync"

	"github.com/pgvector/pgvector-go"
	"github.com/yoockh/careerly/internal/models"
	"github.com/yoockh/careerly/internal/notify"
	"github.com/yoockh/careerly/internal/providers/llm"
	pgrepo "github.com/yoockh/careerly/internal/repositories/postgres"
	"github.com/yoockh/careerly/internal/utils"
	"gorm.io/datatypes"
)

func ptr[T any](v T) *T { return &v }

type fakeUserRepo struct {
	users   map[string]*models.User
	ensured []string
	err     error
}

func newFakeUsers(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]*models.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) EnsureExists(_ context.Context, id, email string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	r.ensured = append(r.ensured, id)
	if _, ok := r.users[id]; ok {
		return false, nil
	}
	r.users[id] = &models.User{ID: id, Email: email, UserType: models.UserTypeIndividual}
	return true, nil
}

func (r *fakeUserRepo) SetUserType(_ context.Context, id string, t models.UserType, companyID *string) error {
	u, ok := r.users[id]
	if !ok {
		return utils.ErrNotFound
	}
	u.UserType = t
	u.CompanyID = companyID
	return nil
}

type fakeCompanyRepo struct {
	rows []*models.Company
}

func (r *fakeCompanyRepo) Insert(_ context.Context, c *models.Company) error {
	r.rows = append(r.rows, c)
	return nil
}

func (r *fakeCompanyRepo) GetByID(_ context.Context, id string) (*models.Company, error) {
	for _, c := range r.rows {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, utils.ErrNotFound
}

type fakeJobRepo struct {
	rows       map[string]*models.JobPosting
	order      []string
	lastFilter pgrepo.JobFilter
	inserted   []*models.JobPosting
	embedded   map[string]pgvector.Vector
}

func newFakeJobs(jobs ...*models.JobPosting) *fakeJobRepo {
	r := &fakeJobRepo{rows: map[string]*models.JobPosting{}, embedded: map[string]pgvector.Vector{}}
	for _, j := range jobs {
		r.rows[j.ID] = j
		r.order = append(r.order, j.ID)
	}
	return r
}

// List ignores ordering and only applies the company filter, so the
// service has to enforce visibility and sort order itself.
func (r *fakeJobRepo) List(_ context.Context, f pgrepo.JobFilter) ([]models.JobPosting, error) {
	r.lastFilter = f
	var out []models.JobPosting
	for _, id := range r.order {
		j := r.rows[id]
		if f.CompanyID != "" && j.CompanyID != f.CompanyID {
			continue
		}
		out = append(out, *j)
	}
	return out, nil
}

func (r *fakeJobRepo) GetByID(_ context.Context, id string) (*models.JobPosting, error) {
	j, ok := r.rows[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *j
	return &cp, nil
}

func (r *fakeJobRepo) Insert(_ context.Context, j *models.JobPosting) error {
	r.inserted = append(r.inserted, j)
	r.rows[j.ID] = j
	r.order = append(r.order, j.ID)
	return nil
}

func (r *fakeJobRepo) UpdateStatus(_ context.Context, id string, status models.JobStatus) error {
	j, ok := r.rows[id]
	if !ok {
		return utils.ErrNotFound
	}
	j.Status = status
	return nil
}

func (r *fakeJobRepo) SetEmbedding(_ context.Context, id string, v pgvector.Vector) error {
	r.embedded[id] = v
	return nil
}

type fakeAppRepo struct {
	rows       map[string]*models.JobApplication
	order      []string
	jobs       *fakeJobRepo
	lastFilter pgrepo.ApplicationFilter
	inserted   []*models.JobApplication
	scores     map[string]float64
}

func newFakeApps(jobs *fakeJobRepo, apps ...*models.JobApplication) *fakeAppRepo {
	r := &fakeAppRepo{rows: map[string]*models.JobApplication{}, jobs: jobs, scores: map[string]float64{}}
	for _, a := range apps {
		r.rows[a.ID] = a
		r.order = append(r.order, a.ID)
	}
	return r
}

func (r *fakeAppRepo) List(_ context.Context, f pgrepo.ApplicationFilter) ([]models.JobApplication, error) {
	r.lastFilter = f
	var out []models.JobApplication
	for _, id := range r.order {
		a := *r.rows[id]
		if f.ApplicantID != "" && a.ApplicantID != f.ApplicantID {
			continue
		}
		if j, ok := r.jobs.rows[a.JobID]; ok {
			a.Job = j
		}
		if f.CompanyID != "" && (a.Job == nil || a.Job.CompanyID != f.CompanyID) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *fakeAppRepo) GetByID(_ context.Context, id string) (*models.JobApplication, error) {
	a, ok := r.rows[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *a
	if j, ok := r.jobs.rows[a.JobID]; ok {
		cp.Job = j
	}
	return &cp, nil
}

func (r *fakeAppRepo) Insert(_ context.Context, a *models.JobApplication) error {
	r.inserted = append(r.inserted, a)
	r.rows[a.ID] = a
	r.order = append(r.order, a.ID)
	return nil
}

func (r *fakeAppRepo) UpdateStatus(_ context.Context, id string, status models.ApplicationStatus) error {
	a, ok := r.rows[id]
	if !ok {
		return utils.ErrNotFound
	}
	a.Status = status
	return nil
}

func (r *fakeAppRepo) SetMatchingScore(_ context.Context, id string, score float64) error {
	r.scores[id] = score
	return nil
}

type fakeResumeRepo struct {
	rows      map[string]*models.Resume
	order     []string
	inserted  []*models.Resume
	feedback  map[string]datatypes.JSON
	embedded  map[string]pgvector.Vector
	insertErr error
}

func newFakeResumes(rows ...*models.Resume) *fakeResumeRepo {
	r := &fakeResumeRepo{
		rows:     map[string]*models.Resume{},
		feedback: map[string]datatypes.JSON{},
		embedded: map[string]pgvector.Vector{},
	}
	for _, row := range rows {
		r.rows[row.ID] = row
		r.order = append(r.order, row.ID)
	}
	return r
}

func (r *fakeResumeRepo) ListByUser(_ context.Context, userID string, _ int) ([]models.Resume, error) {
	var out []models.Resume
	for _, id := range r.order {
		if row := r.rows[id]; row.UserID == userID {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (r *fakeResumeRepo) LatestByUser(_ context.Context, userID string) (*models.Resume, error) {
	var latest *models.Resume
	for _, id := range r.order {
		row := r.rows[id]
		if row.UserID == userID && (latest == nil || row.CreatedAt.After(latest.CreatedAt)) {
			latest = row
		}
	}
	if latest == nil {
		return nil, utils.ErrNotFound
	}
	return latest, nil
}

func (r *fakeResumeRepo) GetByID(_ context.Context, id string) (*models.Resume, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *row
	return &cp, nil
}

func (r *fakeResumeRepo) Insert(_ context.Context, row *models.Resume) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, row)
	r.rows[row.ID] = row
	r.order = append(r.order, row.ID)
	return nil
}

func (r *fakeResumeRepo) UpdateContent(_ context.Context, id string, content datatypes.JSON) error {
	row, ok := r.rows[id]
	if !ok {
		return utils.ErrNotFound
	}
	row.Content = content
	return nil
}

func (r *fakeResumeRepo) SetFeedback(_ context.Context, id string, feedback datatypes.JSON) error {
	r.feedback[id] = feedback
	return nil
}

func (r *fakeResumeRepo) SetEmbedding(_ context.Context, id string, v pgvector.Vector) error {
	r.embedded[id] = v
	return nil
}

type fakeProvider struct {
	reply   string
	err     error
	prompts []llm.Request
}

func (p *fakeProvider) Name() string { return "fake" }
func (p *fakeProvider) Close() error { return nil }

func (p *fakeProvider) Complete(_ context.Context, req llm.Request) (string, error) {
	p.prompts = append(p.prompts, req)
	return p.reply, p.err
}

type fakeEmbedder struct {
	vectors map[string][]float32
	calls   int
}

func (e *fakeEmbedder) Close() error { return nil }

func (e *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	e.calls++
	if v, ok := e.vectors[text]; ok {
		return v, nil
	}
	return []float32{1, 0, 0}, nil
}

type fakeHistory struct {
	rows []*models.GenerationLog
}

func (h *fakeHistory) Insert(_ context.Context, g *models.GenerationLog) error {
	h.rows = append(h.rows, g)
	return nil
}

func (h *fakeHistory) ListByUser(_ context.Context, userID string, _ int64) ([]models.GenerationLog, error) {
	var out []models.GenerationLog
	for _, g := range h.rows {
		if g.UserID == userID {
			out = append(out, *g)
		}
	}
	return out, nil
}

type fakeQueue struct {
	ids []string
	err error
}

func (q *fakeQueue) EnqueueScore(_ context.Context, id string) error {
	q.ids = append(q.ids, id)
	return q.err
}

type sentEvent struct {
	channel string
	event   notify.Event
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentEvent
}

func (n *fakeNotifier) NotifyUser(_ context.Context, userID string, ev notify.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentEvent{notify.UserChannel(userID), ev})
	return nil
}

func (n *fakeNotifier) NotifyCompany(_ context.Context, companyID string, ev notify.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentEvent{notify.CompanyChannel(companyID), ev})
	return nil
}

type fakeUploader struct {
	objects map[string][]byte
	err     error
}

func (u *fakeUploader) Upload(_ context.Context, objectName, _ string, r io.Reader) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if u.objects == nil {
		u.objects = map[string][]byte{}
	}
	u.objects[objectName] = b
	return "https://storage.googleapis.com/resumes/" + objectName, nil
}
