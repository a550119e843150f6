package fakeprojectrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/lovablecline/platform/projects"
)

var _ projects.Repo = (*FakeProjectRepo)(nil)

type FakeProjectRepo struct {
	byID map[string]*projects.Project
	lock sync.RWMutex
}

func NewFakeProjectRepo() *FakeProjectRepo {
	return &FakeProjectRepo{byID: make(map[string]*projects.Project)}
}

func (r *FakeProjectRepo) Create(_ context.Context, project *projects.Project) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	copied := *project
	r.byID[project.ID] = &copied
	return nil
}

func (r *FakeProjectRepo) GetByID(_ context.Context, id string) (*projects.Project, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	project, ok := r.byID[id]
	if !ok {
		return nil, projects.ErrNotFound
	}
	copied := *project
	return &copied, nil
}

func (r *FakeProjectRepo) Update(_ context.Context, project *projects.Project) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.byID[project.ID]; !ok {
		return projects.ErrNotFound
	}
	copied := *project
	r.byID[project.ID] = &copied
	return nil
}

func (r *FakeProjectRepo) Delete(_ context.Context, id string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	delete(r.byID, id)
	return nil
}

func (r *FakeProjectRepo) List(_ context.Context, offset, limit int) ([]*projects.Project, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	all := r.sorted()
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *FakeProjectRepo) ListByOwner(_ context.Context, ownerID string) ([]*projects.Project, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	owned := make([]*projects.Project, 0)
	for _, project := range r.sorted() {
		if project.OwnerID == ownerID {
			owned = append(owned, project)
		}
	}
	return owned, nil
}

func (r *FakeProjectRepo) sorted() []*projects.Project {
	all := make([]*projects.Project, 0, len(r.byID))
	for _, project := range r.byID {
		copied := *project
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all
}
