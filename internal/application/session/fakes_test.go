package session_test

import (
	"context"
	"sync"

	"github.com/tu-usuario/granja-pro/internal/domain"
	"github.com/tu-usuario/granja-pro/internal/domain/entity"
	"github.com/tu-usuario/granja-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia
// ──────────────────────────────────────────────────────────────────────────────

type fakeProfiles struct {
	mu                sync.Mutex
	byUser            map[string]*entity.Profile
	duplicateOnCreate bool // simula perder la carrera: Create devuelve ErrDuplicate
	missOnFirstGet    bool // el primer Get no ve la fila (lectura antes del commit rival)
	getCalls          int
	createCalls       int
	updateRoleCalls   int
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{byUser: make(map[string]*entity.Profile)}
}

func (f *fakeProfiles) GetByUserID(_ context.Context, userID string) (*entity.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if f.missOnFirstGet && f.getCalls == 1 {
		return nil, nil
	}
	p, ok := f.byUser[userID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfiles) Create(_ context.Context, p *entity.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.duplicateOnCreate {
		return domain.ErrDuplicate
	}
	if _, exists := f.byUser[p.UserID]; exists {
		return domain.ErrDuplicate
	}
	cp := *p
	f.byUser[p.UserID] = &cp
	return nil
}

func (f *fakeProfiles) UpdateRole(_ context.Context, id, role string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateRoleCalls++
	for _, p := range f.byUser {
		if p.ID == id {
			p.Role = role
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeRoles struct {
	mu        sync.Mutex
	byUser    map[string][]*entity.BusinessRole
	listErr   error
	listCalls int
	lookupErr error
}

func newFakeRoles() *fakeRoles {
	return &fakeRoles{byUser: make(map[string][]*entity.BusinessRole)}
}

func (f *fakeRoles) ListByUserID(_ context.Context, userID string) ([]*entity.BusinessRole, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]*entity.BusinessRole(nil), f.byUser[userID]...), nil
}

func (f *fakeRoles) GetByUserAndBusiness(_ context.Context, userID, businessID string) (*entity.BusinessRole, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	for _, b := range f.byUser[userID] {
		if b.BusinessID == businessID {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeRoles) Create(_ context.Context, role *entity.BusinessRole) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byUser[role.UserID] = append(f.byUser[role.UserID], role)
	return nil
}

func (f *fakeRoles) UpdatePermissions(_ context.Context, id string, permissions map[string]bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, list := range f.byUser {
		for _, b := range list {
			if b.ID == id {
				b.Permissions = permissions
				return nil
			}
		}
	}
	return domain.ErrNotFound
}

func (f *fakeRoles) Delete(_ context.Context, _ string) error { return nil }

func (f *fakeRoles) DeleteByBusinessID(_ context.Context, businessID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for user, list := range f.byUser {
		kept := list[:0]
		for _, b := range list {
			if b.BusinessID != businessID {
				kept = append(kept, b)
			}
		}
		f.byUser[user] = kept
	}
	return nil
}

func (f *fakeRoles) GetRoleByEmailAndBusiness(_ context.Context, _, _ string) (string, error) {
	return "", nil
}

type fakeBusinesses struct {
	mu           sync.Mutex
	rows         map[string]*entity.Business
	order        []string
	hideFromList bool // simula reglas de acceso restrictivas: ListByIDs vacío
	listErr      error
	fetchErr     error
	fetchCalls   int
}

func newFakeBusinesses() *fakeBusinesses {
	return &fakeBusinesses{rows: make(map[string]*entity.Business)}
}

func (f *fakeBusinesses) add(b *entity.Business) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[b.ID] = b
	f.order = append(f.order, b.ID)
}

func (f *fakeBusinesses) Create(_ context.Context, b *entity.Business) error {
	f.add(b)
	return nil
}

func (f *fakeBusinesses) GetByID(_ context.Context, id string) (*entity.Business, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBusinesses) ListByIDs(_ context.Context, ids []string) ([]*entity.Business, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.hideFromList {
		return nil, nil
	}
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var out []*entity.Business
	for _, id := range f.order {
		if wanted[id] {
			cp := *f.rows[id]
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeBusinesses) Update(_ context.Context, b *entity.Business) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[b.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *b
	f.rows[b.ID] = &cp
	return nil
}

func (f *fakeBusinesses) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, id)
	return nil
}

func (f *fakeBusinesses) FetchNames(_ context.Context, ids []string) ([]repository.BusinessNameInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchCalls++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	var out []repository.BusinessNameInfo
	for _, id := range ids {
		if b, ok := f.rows[id]; ok {
			out = append(out, repository.BusinessNameInfo{ID: b.ID, Name: b.Name, Description: b.Description})
		}
	}
	return out, nil
}

type fakePrefs struct {
	mu     sync.Mutex
	m      map[string]string
	getErr error
}

func newFakePrefs() *fakePrefs { return &fakePrefs{m: make(map[string]string)} }

func (f *fakePrefs) GetActiveBusiness(_ context.Context, userID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return "", f.getErr
	}
	return f.m[userID], nil
}

func (f *fakePrefs) SetActiveBusiness(_ context.Context, userID, businessID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.m[userID] = businessID
	return nil
}

func (f *fakePrefs) ClearActiveBusiness(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.m, userID)
	return nil
}
