package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// map上の商品ストア（プロセスが落ちたら消える）
type ProductMemoryRepository struct {
	mu       sync.RWMutex
	products map[int64]model.Product
	lastID   int64
}

func NewProductMemoryRepository() *ProductMemoryRepository {
	return &ProductMemoryRepository{products: make(map[int64]model.Product)}
}

var _ repo.ProductRepository = (*ProductMemoryRepository)(nil)

func (r *ProductMemoryRepository) ListActive(ctx context.Context) ([]model.Product, error) {
	return r.listByArchived(false), nil
}

func (r *ProductMemoryRepository) ListArchived(ctx context.Context) ([]model.Product, error) {
	return r.listByArchived(true), nil
}

func (r *ProductMemoryRepository) listByArchived(archived bool) []model.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		if p.Archived == archived {
			out = append(out, p.Clone())
		}
	}
	//挿入順 = ID順
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *ProductMemoryRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	return p.Clone(), nil
}

func (r *ProductMemoryRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	//削除されたIDも再利用しない
	r.lastID++
	p = p.Clone()
	p.ID = r.lastID
	p.Archived = false
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	r.products[p.ID] = p
	return p.Clone(), nil
}

func (r *ProductMemoryRepository) Update(ctx context.Context, id int64, in model.InsertProduct) (model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	in.ApplyTo(&p)
	r.products[id] = p
	return p.Clone(), nil
}

func (r *ProductMemoryRepository) Archive(ctx context.Context, id int64) (model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	p.Archived = true
	r.products[id] = p
	return p.Clone(), nil
}

func (r *ProductMemoryRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.products, id)
	return nil
}
