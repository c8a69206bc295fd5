package service

import (
	"context"
	"errors"
	"sort"

	"github.com/cse-motors/dealership/internal/core/domain"
)

type stubAccountRepo struct {
	accounts map[int64]*domain.Account
	nextID   int64
	err      error // if set, every call returns it
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: make(map[int64]*domain.Account), nextID: 1}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAccountRepo) Create(_ context.Context, a *domain.Account) (*domain.Account, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, existing := range r.accounts {
		if existing.Email == a.Email {
			return nil, domain.ErrDuplicate
		}
	}
	stored := cloneAccount(a)
	stored.ID = r.nextID
	r.nextID++
	r.accounts[stored.ID] = stored
	return cloneAccount(stored), nil
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, a := range r.accounts {
		if a.Email == email {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) FindByID(_ context.Context, id int64) (*domain.Account, error) {
	if r.err != nil {
		return nil, r.err
	}
	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) EmailExists(_ context.Context, email string, exceptID int64) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	for _, a := range r.accounts {
		if a.Email == email && a.ID != exceptID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubAccountRepo) UpdateProfile(_ context.Context, u domain.ProfileUpdate) (*domain.Account, error) {
	if r.err != nil {
		return nil, r.err
	}
	a, ok := r.accounts[u.AccountID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	a.FirstName, a.LastName, a.Email = u.FirstName, u.LastName, u.Email
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) UpdatePasswordHash(_ context.Context, id int64, hash string) error {
	if r.err != nil {
		return r.err
	}
	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.PasswordHash = hash
	return nil
}

func (r *stubAccountRepo) Delete(_ context.Context, id int64) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.accounts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.accounts, id)
	return nil
}

type stubClassRepo struct {
	classes map[int64]domain.Classification
	err     error
}

func newStubClassRepo(names ...string) *stubClassRepo {
	r := &stubClassRepo{classes: make(map[int64]domain.Classification)}
	for i, n := range names {
		id := int64(i + 1)
		r.classes[id] = domain.Classification{ID: id, Name: n}
	}
	return r
}

func (r *stubClassRepo) List(context.Context) ([]domain.Classification, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]domain.Classification, 0, len(r.classes))
	for _, c := range r.classes {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubClassRepo) FindByID(_ context.Context, id int64) (*domain.Classification, error) {
	if r.err != nil {
		return nil, r.err
	}
	c, ok := r.classes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *stubClassRepo) NameExists(_ context.Context, name string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	for _, c := range r.classes {
		if c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubClassRepo) Create(ctx context.Context, name string) (*domain.Classification, error) {
	if exists, _ := r.NameExists(ctx, name); exists {
		return nil, domain.ErrDuplicate
	}
	if r.err != nil {
		return nil, r.err
	}
	id := int64(len(r.classes) + 1)
	c := domain.Classification{ID: id, Name: name}
	r.classes[id] = c
	return &c, nil
}

type stubItemRepo struct {
	items  map[int64]domain.InventoryItem
	nextID int64
	err    error
}

func newStubItemRepo() *stubItemRepo {
	return &stubItemRepo{items: make(map[int64]domain.InventoryItem), nextID: 1}
}

func (r *stubItemRepo) ListByClassification(_ context.Context, classificationID int64) ([]domain.InventoryItem, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []domain.InventoryItem
	for _, it := range r.items {
		if it.ClassificationID == classificationID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *stubItemRepo) FindByID(_ context.Context, id int64) (*domain.InventoryItem, error) {
	if r.err != nil {
		return nil, r.err
	}
	it, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &it, nil
}

func (r *stubItemRepo) Create(_ context.Context, spec domain.VehicleSpec) (*domain.InventoryItem, error) {
	if r.err != nil {
		return nil, r.err
	}
	it := spec.Item(r.nextID)
	r.nextID++
	r.items[it.ID] = it
	return &it, nil
}

func (r *stubItemRepo) Update(_ context.Context, id int64, spec domain.VehicleSpec) (*domain.InventoryItem, error) {
	if r.err != nil {
		return nil, r.err
	}
	if _, ok := r.items[id]; !ok {
		return nil, domain.ErrNotFound
	}
	it := spec.Item(id)
	r.items[id] = it
	return &it, nil
}

func (r *stubItemRepo) Delete(_ context.Context, id int64) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

var errStorage = errors.New("connection refused")

// failingHasher simulates a hashing backend that cannot produce a hash.
type failingHasher struct{}

func (failingHasher) Hash(string) (string, error) { return "", domain.ErrHashFailed }
func (failingHasher) Verify(string, string) bool  { return false }
