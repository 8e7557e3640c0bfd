package impl

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memStore is a shared in-memory database backing the fake repositories.
type memStore struct {
	mu sync.Mutex

	users      map[uint]*entity.User
	tokens     map[uint]*entity.RefreshToken
	categories map[uint]*entity.Category
	products   map[uint]*entity.Product
	sizes      map[uint]*entity.ProductSize
	settings   map[string]*entity.Setting

	nextID uint
}

func newMemStore() *memStore {
	return &memStore{
		users:      map[uint]*entity.User{},
		tokens:     map[uint]*entity.RefreshToken{},
		categories: map[uint]*entity.Category{},
		products:   map[uint]*entity.Product{},
		sizes:      map[uint]*entity.ProductSize{},
		settings:   map[string]*entity.Setting{},
	}
}

func (s *memStore) id() uint {
	s.nextID++
	return s.nextID
}

// memTxManager runs the callback directly against the shared store. The
// fakes do not model rollback; tests assert behavior, not atomicity.
type memTxManager struct {
	store *memStore
}

func newMemTxManager(store *memStore) repository.TransactionManager {
	return &memTxManager{store: store}
}

func (tm *memTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(&memFactory{store: tm.store})
}

type memFactory struct {
	store *memStore
}

func (f *memFactory) UserRepo() repository.UserRepository { return &memUserRepo{f.store} }
func (f *memFactory) RefreshTokenRepo() repository.RefreshTokenRepository {
	return &memTokenRepo{f.store}
}
func (f *memFactory) CategoryRepo() repository.CategoryRepository { return &memCategoryRepo{f.store} }
func (f *memFactory) ProductRepo() repository.ProductRepository   { return &memProductRepo{f.store} }
func (f *memFactory) ProductSizeRepo() repository.ProductSizeRepository {
	return &memSizeRepo{f.store}
}
func (f *memFactory) SettingsRepo() repository.SettingsRepository { return &memSettingsRepo{f.store} }

// --- users ---

type memUserRepo struct{ s *memStore }

func (r *memUserRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return repository.ErrDuplicateUser
		}
	}
	user.ID = r.s.id()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.s.users[user.ID] = &clone
	return nil
}

func (r *memUserRepo) FindByID(_ context.Context, id uint) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *memUserRepo) FindByIdentifier(_ context.Context, identifier string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == identifier || u.Username == identifier {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *memUserRepo) List(_ context.Context) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var users []*entity.User
	for _, u := range r.s.users {
		clone := *u
		users = append(users, &clone)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *memUserRepo) UpdatePassword(_ context.Context, id uint, passwordHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

// --- refresh tokens ---

type memTokenRepo struct{ s *memStore }

func (r *memTokenRepo) Create(_ context.Context, token *entity.RefreshToken) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	token.ID = r.s.id()
	token.CreatedAt = time.Now()
	clone := *token
	r.s.tokens[token.ID] = &clone
	return nil
}

func (r *memTokenRepo) FindByID(_ context.Context, id uint) (*entity.RefreshToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tokens[id]
	if !ok {
		return nil, repository.ErrRefreshTokenNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *memTokenRepo) FindActive(_ context.Context) ([]*entity.RefreshToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now()
	var tokens []*entity.RefreshToken
	for _, t := range r.s.tokens {
		if t.Active(now) {
			clone := *t
			tokens = append(tokens, &clone)
		}
	}
	return tokens, nil
}

func (r *memTokenRepo) List(_ context.Context) ([]*entity.RefreshToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var tokens []*entity.RefreshToken
	for _, t := range r.s.tokens {
		clone := *t
		tokens = append(tokens, &clone)
	}
	sort.Slice(tokens, func(i, j int) bool { return tokens[i].ID > tokens[j].ID })
	return tokens, nil
}

func (r *memTokenRepo) Revoke(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tokens[id]
	if !ok {
		return repository.ErrRefreshTokenNotFound
	}
	t.Revoked = true
	return nil
}

func (r *memTokenRepo) DeleteInactive(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now()
	var removed int64
	for id, t := range r.s.tokens {
		if t.Revoked || !t.ExpiresAt.After(now) {
			delete(r.s.tokens, id)
			removed++
		}
	}
	return removed, nil
}

// --- categories ---

type memCategoryRepo struct{ s *memStore }

func (r *memCategoryRepo) Create(_ context.Context, category *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.categories {
		if c.DeletedAt == nil && c.Name == category.Name {
			return repository.ErrDuplicateCategory
		}
	}
	category.ID = r.s.id()
	category.CreatedAt = time.Now()
	category.UpdatedAt = category.CreatedAt
	clone := *category
	r.s.categories[category.ID] = &clone
	return nil
}

func (r *memCategoryRepo) FindByID(_ context.Context, id uint) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[id]
	if !ok || c.DeletedAt != nil {
		return nil, repository.ErrCategoryNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *memCategoryRepo) FindByName(_ context.Context, name string) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.categories {
		if c.DeletedAt == nil && c.Name == name {
			clone := *c
			return &clone, nil
		}
	}
	return nil, repository.ErrCategoryNotFound
}

func (r *memCategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var categories []*entity.Category
	for _, c := range r.s.categories {
		if c.DeletedAt == nil {
			clone := *c
			categories = append(categories, &clone)
		}
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories, nil
}

func (r *memCategoryRepo) Update(_ context.Context, category *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[category.ID]
	if !ok || c.DeletedAt != nil {
		return repository.ErrCategoryNotFound
	}
	c.Name = category.Name
	c.Description = category.Description
	c.UpdatedAt = time.Now()
	return nil
}

func (r *memCategoryRepo) SoftDelete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[id]
	if !ok || c.DeletedAt != nil {
		return repository.ErrCategoryNotFound
	}
	now := time.Now()
	c.DeletedAt = &now
	return nil
}

func (r *memCategoryRepo) Restore(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[id]
	if !ok {
		return repository.ErrCategoryNotFound
	}
	c.DeletedAt = nil
	return nil
}

func (r *memCategoryRepo) FindAnyByID(_ context.Context, id uint) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, repository.ErrCategoryNotFound
	}
	clone := *c
	return &clone, nil
}

// --- products ---

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Create(_ context.Context, product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	product.ID = r.s.id()
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	clone := *product
	r.s.products[product.ID] = &clone
	return nil
}

func (r *memProductRepo) FindByID(_ context.Context, id uint) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok || p.DeletedAt != nil {
		return nil, repository.ErrProductNotFound
	}
	return r.load(p), nil
}

func (r *memProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var products []*entity.Product
	for _, p := range r.s.products {
		if p.DeletedAt == nil {
			products = append(products, r.load(p))
		}
	}
	sort.Slice(products, func(i, j int) bool {
		if products[i].DisplayOrder != products[j].DisplayOrder {
			return products[i].DisplayOrder < products[j].DisplayOrder
		}
		return products[i].ID < products[j].ID
	})
	return products, nil
}

// load clones the product and resolves associations the way the real
// repository's preloads do.
func (r *memProductRepo) load(p *entity.Product) *entity.Product {
	clone := *p
	if clone.CategoryID != nil {
		if c, ok := r.s.categories[*clone.CategoryID]; ok && c.DeletedAt == nil {
			categoryClone := *c
			clone.Category = &categoryClone
		}
	}
	clone.Sizes = nil
	var sizeIDs []uint
	for id, sz := range r.s.sizes {
		if sz.ProductID == p.ID {
			sizeIDs = append(sizeIDs, id)
		}
	}
	sort.Slice(sizeIDs, func(i, j int) bool { return sizeIDs[i] < sizeIDs[j] })
	for _, id := range sizeIDs {
		clone.Sizes = append(clone.Sizes, *r.s.sizes[id])
	}
	return &clone
}

func (r *memProductRepo) Update(_ context.Context, product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[product.ID]
	if !ok || p.DeletedAt != nil {
		return repository.ErrProductNotFound
	}
	p.Name = product.Name
	p.Description = product.Description
	p.Price = product.Price
	p.Image = product.Image
	p.CategoryID = product.CategoryID
	p.DisplayOrder = product.DisplayOrder
	p.UpdatedAt = time.Now()
	return nil
}

func (r *memProductRepo) SoftDelete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok || p.DeletedAt != nil {
		return repository.ErrProductNotFound
	}
	now := time.Now()
	p.DeletedAt = &now
	return nil
}

// --- product sizes ---

type memSizeRepo struct{ s *memStore }

func (r *memSizeRepo) Create(_ context.Context, size *entity.ProductSize) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	size.ID = r.s.id()
	size.CreatedAt = time.Now()
	size.UpdatedAt = size.CreatedAt
	clone := *size
	r.s.sizes[size.ID] = &clone
	return nil
}

func (r *memSizeRepo) FindByID(_ context.Context, id uint) (*entity.ProductSize, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sz, ok := r.s.sizes[id]
	if !ok {
		return nil, repository.ErrProductSizeNotFound
	}
	clone := *sz
	return &clone, nil
}

func (r *memSizeRepo) ListByProduct(_ context.Context, productID uint) ([]*entity.ProductSize, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var sizes []*entity.ProductSize
	for _, sz := range r.s.sizes {
		if sz.ProductID == productID {
			clone := *sz
			sizes = append(sizes, &clone)
		}
	}
	sort.Slice(sizes, func(i, j int) bool { return sizes[i].ID < sizes[j].ID })
	return sizes, nil
}

func (r *memSizeRepo) ListUniqueSizes(_ context.Context) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	seen := map[string]bool{}
	var names []string
	for _, sz := range r.s.sizes {
		if !seen[sz.Size] {
			seen[sz.Size] = true
			names = append(names, sz.Size)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (r *memSizeRepo) Update(_ context.Context, size *entity.ProductSize) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sz, ok := r.s.sizes[size.ID]
	if !ok {
		return repository.ErrProductSizeNotFound
	}
	sz.Size = size.Size
	sz.Price = size.Price
	sz.Image = size.Image
	sz.UpdatedAt = time.Now()
	return nil
}

func (r *memSizeRepo) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.sizes[id]; !ok {
		return repository.ErrProductSizeNotFound
	}
	delete(r.s.sizes, id)
	return nil
}

// --- settings ---

type memSettingsRepo struct{ s *memStore }

func (r *memSettingsRepo) FindByKey(_ context.Context, key string) (*entity.Setting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st, ok := r.s.settings[key]
	if !ok {
		return nil, repository.ErrSettingNotFound
	}
	clone := *st
	return &clone, nil
}

func (r *memSettingsRepo) List(_ context.Context) ([]*entity.Setting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var settings []*entity.Setting
	for _, st := range r.s.settings {
		clone := *st
		settings = append(settings, &clone)
	}
	sort.Slice(settings, func(i, j int) bool { return settings[i].Key < settings[j].Key })
	return settings, nil
}

func (r *memSettingsRepo) Upsert(_ context.Context, setting *entity.Setting) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if existing, ok := r.s.settings[setting.Key]; ok {
		existing.Value = setting.Value
		existing.UpdatedAt = time.Now()
		setting.ID = existing.ID
		return nil
	}
	setting.ID = r.s.id()
	setting.CreatedAt = time.Now()
	setting.UpdatedAt = setting.CreatedAt
	clone := *setting
	r.s.settings[setting.Key] = &clone
	return nil
}

// --- exporter spy ---

// spyExporter records export triggers instead of touching the filesystem.
type spyExporter struct {
	mu              sync.Mutex
	exportCalls     int
	afterMutation   int
	carouselCalls   int
	lastCarouselVal bool
}

func (e *spyExporter) Export(context.Context) (*usecase.ExportResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.exportCalls++
	return &usecase.ExportResult{}, nil
}

func (e *spyExporter) ExportAfterMutation(context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.afterMutation++
}

func (e *spyExporter) SetCarouselVisibility(_ context.Context, visible bool) (*usecase.ExportResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.carouselCalls++
	e.lastCarouselVal = visible
	return &usecase.ExportResult{}, nil
}

func (e *spyExporter) Document(context.Context) (*entity.Snapshot, error) {
	return &entity.Snapshot{}, nil
}

func (e *spyExporter) mutationExports() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.afterMutation
}
