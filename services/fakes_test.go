package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/Manuelherrera22/Quinela/models"
	"github.com/Manuelherrera22/Quinela/repositories"
	"github.com/Manuelherrera22/Quinela/storage"
)

var errStoreDown = errors.New("store unavailable")

type memUserRepo struct {
	mu        sync.Mutex
	users     map[string]*models.User
	listErr   error
	failScore map[string]bool
	writes    int
}

func newMemUserRepo(users ...models.User) *memUserRepo {
	r := &memUserRepo{users: map[string]*models.User{}, failScore: map[string]bool{}}
	for i := range users {
		u := users[i]
		r.users[u.Email] = &u
	}
	return r
}

func (r *memUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Email]; ok {
		return repositories.ErrUserEmailConflict
	}
	user.CreatedAt = time.Now()
	u := *user
	r.users[user.Email] = &u
	return nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) List(_ context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (r *memUserRepo) UpdateScore(_ context.Context, email string, points, exact int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failScore[email] {
		return errStoreDown
	}
	u, ok := r.users[email]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.Points, u.ExactMatches = points, exact
	r.writes++
	return nil
}

func (r *memUserRepo) UpdateSelectedChampion(_ context.Context, email string, champion *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.SelectedChampion = champion
	return nil
}

func (r *memUserRepo) UpdateAvatar(_ context.Context, email string, key *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.AvatarKey = key
	return nil
}

func (r *memUserRepo) UpsertAccount(_ context.Context, _ repositories.SQLExecutor, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := *user
	r.users[user.Email] = &u
	return nil
}

func (r *memUserRepo) get(email string) models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.users[email]
}

type memMatchRepo struct {
	mu      sync.Mutex
	matches map[string]*models.Match
	listErr error
}

func newMemMatchRepo(matches ...models.Match) *memMatchRepo {
	r := &memMatchRepo{matches: map[string]*models.Match{}}
	for i := range matches {
		m := matches[i]
		r.matches[m.ID] = &m
	}
	return r
}

func (r *memMatchRepo) CreateIfAbsent(_ context.Context, _ repositories.SQLExecutor, m *models.Match) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.matches[m.ID]; ok {
		return false, nil
	}
	cp := *m
	r.matches[m.ID] = &cp
	return true, nil
}

func (r *memMatchRepo) GetByID(_ context.Context, id string) (*models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *memMatchRepo) List(_ context.Context, f repositories.MatchFilter) ([]models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]models.Match, 0, len(r.matches))
	for _, m := range r.matches {
		if f.Stage != nil && m.Stage != *f.Stage {
			continue
		}
		if f.Group != nil && !m.InGroup(*f.Group) {
			continue
		}
		if f.Status != nil && m.Status != *f.Status {
			continue
		}
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].KickoffAt.Equal(out[j].KickoffAt) {
			return out[i].KickoffAt.Before(out[j].KickoffAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *memMatchRepo) UpdateResult(_ context.Context, id string, home, away int) (*models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	m.HomeScore, m.AwayScore = &home, &away
	m.Status = models.MatchStatusFinished
	cp := *m
	return &cp, nil
}

func (r *memMatchRepo) LockStarted(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, m := range r.matches {
		if m.Status == models.MatchStatusOpen && !m.KickoffAt.After(now) {
			m.Status = models.MatchStatusLocked
			n++
		}
	}
	return n, nil
}

func (r *memMatchRepo) EarliestKickoff(_ context.Context) (*time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var earliest *time.Time
	for _, m := range r.matches {
		k := m.KickoffAt
		if earliest == nil || k.Before(*earliest) {
			earliest = &k
		}
	}
	return earliest, nil
}

func (r *memMatchRepo) status(id string) models.MatchStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.matches[id].Status
}

type memPredictionRepo struct {
	mu          sync.Mutex
	predictions map[[2]string]models.Prediction
	listErr     error
}

func newMemPredictionRepo(predictions ...models.Prediction) *memPredictionRepo {
	r := &memPredictionRepo{predictions: map[[2]string]models.Prediction{}}
	for _, p := range predictions {
		r.predictions[[2]string{p.UserEmail, p.MatchID}] = p
	}
	return r
}

func (r *memPredictionRepo) Upsert(_ context.Context, p *models.Prediction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := [2]string{p.UserEmail, p.MatchID}
	now := time.Now()
	if existing, ok := r.predictions[key]; ok {
		p.CreatedAt = existing.CreatedAt
	} else {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	r.predictions[key] = *p
	return nil
}

func (r *memPredictionRepo) ListAll(_ context.Context) ([]models.Prediction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]models.Prediction, 0, len(r.predictions))
	for _, p := range r.predictions {
		out = append(out, p)
	}
	return out, nil
}

func (r *memPredictionRepo) ListByUser(_ context.Context, email string) ([]models.Prediction, error) {
	all, err := r.ListAll(context.Background())
	if err != nil {
		return nil, err
	}
	out := make([]models.Prediction, 0)
	for _, p := range all {
		if p.UserEmail == email {
			out = append(out, p)
		}
	}
	return out, nil
}

type memSettingsRepo struct {
	mu       sync.Mutex
	champion *string
	getErr   error
}

func (r *memSettingsRepo) GetChampion(_ context.Context) (*string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.champion, nil
}

func (r *memSettingsRepo) SetChampion(_ context.Context, champion *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.champion = champion
	return nil
}

func (r *memSettingsRepo) EnsureDefaults(_ context.Context, _ repositories.SQLExecutor) error {
	return nil
}

type publishedEvent struct {
	room, eventType string
	payload         interface{}
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (b *recordingBroadcaster) Publish(room, eventType string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, publishedEvent{room, eventType, payload})
}

func (b *recordingBroadcaster) types() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.events))
	for i, e := range b.events {
		out[i] = e.eventType
	}
	return out
}

type memUploader struct {
	objects   map[string][]byte
	sizes     map[string]int64
	uploadErr error
	deleted   []string
}

func newMemUploader() *memUploader {
	return &memUploader{objects: map[string][]byte{}, sizes: map[string]int64{}}
}

func (u *memUploader) Upload(_ context.Context, key, _ string, reader io.Reader, size int64) (*storage.UploadResult, error) {
	if u.uploadErr != nil {
		return nil, u.uploadErr
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, reader); err != nil {
		return nil, err
	}
	u.objects[key] = buf.Bytes()
	u.sizes[key] = size
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *memUploader) Delete(_ context.Context, key string) error {
	delete(u.objects, key)
	u.deleted = append(u.deleted, key)
	return nil
}

func (u *memUploader) GetPublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

type stubScoring struct {
	calls  int
	result *RecalculationResult
	err    error
}

func (s *stubScoring) Recalculate(context.Context) (*RecalculationResult, error) {
	s.calls++
	return s.result, s.err
}

var testNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func groupMatch(id, home, away, group string, kickoff time.Time) models.Match {
	return models.Match{
		ID:        id,
		HomeTeam:  home,
		AwayTeam:  away,
		KickoffAt: kickoff,
		Stage:     models.StageGroup,
		Group:     strPtr(group),
		Status:    models.MatchStatusOpen,
	}
}

func finishedMatch(id, home, away, group string, hs, as int) models.Match {
	m := groupMatch(id, home, away, group, testNow.Add(-48*time.Hour))
	m.Status = models.MatchStatusFinished
	m.HomeScore, m.AwayScore = intPtr(hs), intPtr(as)
	return m
}
