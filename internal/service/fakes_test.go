package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/zoraaver/wlogger/internal/domain"
)

// In-memory repositories mirroring the Mongo implementations.

type memoryStore struct {
	mu  sync.Mutex
	seq int
}

func (m *memoryStore) nextID() string {
	m.seq++
	return fmt.Sprintf("%024x", m.seq)
}

type fakePlanRepo struct {
	memoryStore
	plans   map[string]*domain.WorkoutPlan
	updates int
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: map[string]*domain.WorkoutPlan{}}
}

func clonePlan(p *domain.WorkoutPlan) *domain.WorkoutPlan {
	c := *p
	c.Weeks = make([]domain.Week, len(p.Weeks))
	for i, w := range p.Weeks {
		c.Weeks[i] = w
		c.Weeks[i].Workouts = make([]domain.Workout, len(w.Workouts))
		for j, wo := range w.Workouts {
			c.Weeks[i].Workouts[j] = wo
			c.Weeks[i].Workouts[j].Exercises = append([]domain.PlannedExercise(nil), wo.Exercises...)
		}
	}
	return &c
}

func (r *fakePlanRepo) Create(_ context.Context, plan *domain.WorkoutPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	plan.ID = r.nextID()
	if plan.Status == "" {
		plan.Status = domain.PlanNotStarted
	}
	r.plans[plan.ID] = clonePlan(plan)
	return nil
}

func (r *fakePlanRepo) GetByID(_ context.Context, id string) (*domain.WorkoutPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.plans[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return clonePlan(p), nil
}

func (r *fakePlanRepo) ListByUser(_ context.Context, userID string) ([]*domain.WorkoutPlanSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.WorkoutPlanSummary{}
	for _, p := range r.plans {
		if p.UserID == userID {
			out = append(out, &domain.WorkoutPlanSummary{ID: p.ID, Name: p.Name, Status: p.Status, Start: p.Start, End: p.End})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakePlanRepo) Update(_ context.Context, plan *domain.WorkoutPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.plans[plan.ID]; !ok {
		return domain.ErrNotFound
	}
	r.updates++
	r.plans[plan.ID] = clonePlan(plan)
	return nil
}

func (r *fakePlanRepo) UpdateStatus(_ context.Context, id string, status domain.PlanStatus, start, end *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.plans[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Status, p.Start, p.End = status, start, end
	return nil
}

func (r *fakePlanRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.plans[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.plans, id)
	return nil
}

func (r *fakePlanRepo) ListInProgress(_ context.Context) ([]*domain.WorkoutPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.WorkoutPlan
	for _, p := range r.plans {
		if p.Status == domain.PlanInProgress {
			out = append(out, clonePlan(p))
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	memoryStore
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	user.ID = r.nextID()
	if user.WorkoutPlanIDs == nil {
		user.WorkoutPlanIDs = []string{}
	}
	if user.WorkoutLogIDs == nil {
		user.WorkoutLogIDs = []string{}
	}
	c := *user
	r.users[user.ID] = &c
	return nil
}

func (r *fakeUserRepo) get(id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, err := r.get(id)
	if err != nil {
		return nil, err
	}
	c := *u
	c.WorkoutPlanIDs = append([]string{}, u.WorkoutPlanIDs...)
	c.WorkoutLogIDs = append([]string{}, u.WorkoutLogIDs...)
	return &c, nil
}

func (r *fakeUserRepo) find(match func(*domain.User) bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			c := *u
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Email == email })
}

func (r *fakeUserRepo) GetByFirebaseUID(_ context.Context, uid string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.FirebaseUID != "" && u.FirebaseUID == uid })
}

func (r *fakeUserRepo) mutate(id string, fn func(*domain.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, err := r.get(id)
	if err != nil {
		return err
	}
	fn(u)
	return nil
}

func without(ids []string, id string) []string {
	out := []string{}
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func (r *fakeUserRepo) UpdateFirebaseUID(_ context.Context, userID, uid string) error {
	return r.mutate(userID, func(u *domain.User) { u.FirebaseUID = uid })
}

func (r *fakeUserRepo) AddWorkoutPlan(_ context.Context, userID, planID string) error {
	return r.mutate(userID, func(u *domain.User) { u.WorkoutPlanIDs = append(u.WorkoutPlanIDs, planID) })
}

func (r *fakeUserRepo) RemoveWorkoutPlan(_ context.Context, userID, planID string) error {
	return r.mutate(userID, func(u *domain.User) {
		u.WorkoutPlanIDs = without(u.WorkoutPlanIDs, planID)
		if u.CurrentWorkoutPlanID == planID {
			u.CurrentWorkoutPlanID = ""
		}
	})
}

func (r *fakeUserRepo) SetCurrentWorkoutPlan(_ context.Context, userID, planID string) error {
	return r.mutate(userID, func(u *domain.User) { u.CurrentWorkoutPlanID = planID })
}

func (r *fakeUserRepo) AddWorkoutLog(_ context.Context, userID, logID string) error {
	return r.mutate(userID, func(u *domain.User) { u.WorkoutLogIDs = append([]string{logID}, u.WorkoutLogIDs...) })
}

func (r *fakeUserRepo) RemoveWorkoutLog(_ context.Context, userID, logID string) error {
	return r.mutate(userID, func(u *domain.User) { u.WorkoutLogIDs = without(u.WorkoutLogIDs, logID) })
}

type fakeExerciseRepo struct {
	memoryStore
	exercises map[string]*domain.Exercise
}

func newFakeExerciseRepo(userID string, names ...string) *fakeExerciseRepo {
	r := &fakeExerciseRepo{exercises: map[string]*domain.Exercise{}}
	for _, n := range names {
		_ = r.Create(context.Background(), &domain.Exercise{UserID: userID, Name: n})
	}
	return r
}

func (r *fakeExerciseRepo) Create(_ context.Context, ex *domain.Exercise) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.exercises {
		if e.UserID == ex.UserID && e.Name == ex.Name {
			return domain.ErrDuplicateExercise
		}
	}
	ex.ID = r.nextID()
	c := *ex
	r.exercises[ex.ID] = &c
	return nil
}

func (r *fakeExerciseRepo) GetByID(_ context.Context, id string) (*domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.exercises[id]
	if !ok {
		return nil, domain.ErrExerciseNotFound
	}
	c := *e
	return &c, nil
}

func (r *fakeExerciseRepo) ListByUser(_ context.Context, userID string) ([]*domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Exercise{}
	for _, e := range r.exercises {
		if e.UserID == userID {
			c := *e
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeExerciseRepo) ExistsByName(_ context.Context, userID, name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.exercises {
		if e.UserID == userID && e.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeExerciseRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.exercises[id]; !ok {
		return domain.ErrExerciseNotFound
	}
	delete(r.exercises, id)
	return nil
}

type fakeLogRepo struct {
	memoryStore
	logs []*domain.WorkoutLog
}

func (r *fakeLogRepo) Create(_ context.Context, l *domain.WorkoutLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l.ID = r.nextID()
	c := *l
	r.logs = append(r.logs, &c)
	return nil
}

func (r *fakeLogRepo) GetByID(_ context.Context, id string) (*domain.WorkoutLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.logs {
		if l.ID == id {
			c := *l
			c.Exercises = make([]domain.LoggedExercise, len(l.Exercises))
			for i, e := range l.Exercises {
				c.Exercises[i] = e
				c.Exercises[i].Sets = append([]domain.LoggedSet(nil), e.Sets...)
			}
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeLogRepo) ListByIDs(_ context.Context, ids []string) ([]*domain.WorkoutLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := map[string]bool{}
	for _, id := range ids {
		wanted[id] = true
	}
	out := []*domain.WorkoutLog{}
	for _, l := range r.logs {
		if wanted[l.ID] {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeLogRepo) Update(_ context.Context, l *domain.WorkoutLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.logs {
		if existing.ID == l.ID {
			c := *l
			r.logs[i] = &c
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeLogRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, l := range r.logs {
		if l.ID == id {
			r.logs = append(r.logs[:i], r.logs[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeLogRepo) FindByWorkoutAndWindow(_ context.Context, workoutID string, from, to time.Time, allowedIDs []string) ([]*domain.WorkoutLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	allowed := map[string]bool{}
	for _, id := range allowedIDs {
		allowed[id] = true
	}
	var out []*domain.WorkoutLog
	for _, l := range r.logs {
		if l.WorkoutID == workoutID && allowed[l.ID] && !l.CreatedAt.Before(from) && !l.CreatedAt.After(to) {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

type fakeFiles struct {
	objects map[string][]byte
	deleted []string
}

func newFakeFiles() *fakeFiles {
	return &fakeFiles{objects: map[string][]byte{}}
}

func (f *fakeFiles) Upload(_ context.Context, file []byte, key, _ string) error {
	f.objects[key] = file
	return nil
}

func (f *fakeFiles) PresignedURL(_ context.Context, key string, ttl time.Duration) (string, error) {
	return fmt.Sprintf("https://files.example.com/%s?ttl=%d", key, int(ttl.Seconds())), nil
}

func (f *fakeFiles) Delete(_ context.Context, key string) error {
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return nil
}
