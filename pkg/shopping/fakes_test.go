package shopping

import (
	"Foodia-Shopping/entities"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// fakeShoppingRepository keeps rows in memory and enforces the same partial unique
// index as the real table: one active row per owner and key.
type fakeShoppingRepository struct {
	mu    sync.Mutex
	items map[uuid.UUID]entities.ShoppingItem
	clock time.Time

	// beforeCreate runs before each insert, outside the lock, to simulate a
	// concurrent writer.
	beforeCreate func(item *entities.ShoppingItem)
	createErr    error
}

func newFakeShoppingRepository() *fakeShoppingRepository {
	return &fakeShoppingRepository{
		items: make(map[uuid.UUID]entities.ShoppingItem),
		clock: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (r *fakeShoppingRepository) tick() time.Time {
	r.clock = r.clock.Add(time.Second)
	return r.clock
}

func (r *fakeShoppingRepository) conflicts(item *entities.ShoppingItem) bool {
	if item.Completed {
		return false
	}
	for id, other := range r.items {
		if id != item.ID && !other.Completed && other.OwnerID == item.OwnerID && other.NormalizedKey == item.NormalizedKey {
			return true
		}
	}
	return false
}

func (r *fakeShoppingRepository) CreateShoppingItem(_ context.Context, item *entities.ShoppingItem) error {
	if r.beforeCreate != nil {
		hook := r.beforeCreate
		r.beforeCreate = nil
		hook(item)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return r.createErr
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if r.conflicts(item) {
		return gorm.ErrDuplicatedKey
	}
	now := r.tick()
	item.CreatedAt = now
	item.UpdatedAt = now
	r.items[item.ID] = *item
	return nil
}

func (r *fakeShoppingRepository) GetShoppingItemByID(_ context.Context, id string) (*entities.ShoppingItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	item, ok := r.items[uid]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &item, nil
}

func (r *fakeShoppingRepository) FindActiveShoppingItem(ctx context.Context, ownerID string, normalizedKey string) (*entities.ShoppingItem, error) {
	return r.FindOtherActiveShoppingItem(ctx, ownerID, normalizedKey, uuid.Nil.String())
}

func (r *fakeShoppingRepository) FindOtherActiveShoppingItem(_ context.Context, ownerID string, normalizedKey string, excludeID string) (*entities.ShoppingItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range r.items {
		if item.OwnerID.String() == ownerID && item.NormalizedKey == normalizedKey && !item.Completed && item.ID.String() != excludeID {
			found := item
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeShoppingRepository) UpdateShoppingItem(_ context.Context, item *entities.ShoppingItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	if r.conflicts(item) {
		return gorm.ErrDuplicatedKey
	}
	item.UpdatedAt = r.tick()
	r.items[item.ID] = *item
	return nil
}

func (r *fakeShoppingRepository) DeleteShoppingItem(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	uid, err := uuid.Parse(id)
	if err != nil {
		return nil
	}
	delete(r.items, uid)
	return nil
}

func (r *fakeShoppingRepository) GetShoppingItems(_ context.Context, ownerID string) ([]*entities.ShoppingItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var items []*entities.ShoppingItem
	for _, item := range r.items {
		if item.OwnerID.String() == ownerID {
			found := item
			items = append(items, &found)
		}
	}
	return items, nil
}

func (r *fakeShoppingRepository) DeleteCompletedShoppingItems(_ context.Context, ownerID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, item := range r.items {
		if item.OwnerID.String() == ownerID && item.Completed {
			delete(r.items, id)
			n++
		}
	}
	return n, nil
}

// insert puts a row in place directly, bypassing the uniqueness check.
func (r *fakeShoppingRepository) insert(item entities.ShoppingItem) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = r.tick()
		item.UpdatedAt = item.CreatedAt
	}
	r.items[item.ID] = item
}

func (r *fakeShoppingRepository) all(ownerID uuid.UUID) []entities.ShoppingItem {
	r.mu.Lock()
	defer r.mu.Unlock()

	var items []entities.ShoppingItem
	for _, item := range r.items {
		if item.OwnerID == ownerID {
			items = append(items, item)
		}
	}
	return items
}

type fakeRecipeRepository struct {
	recipes  map[string]*entities.Recipe
	titleErr error
}

func newFakeRecipeRepository(recipes ...*entities.Recipe) *fakeRecipeRepository {
	r := &fakeRecipeRepository{recipes: make(map[string]*entities.Recipe)}
	for _, rec := range recipes {
		if rec.ID == uuid.Nil {
			rec.ID = uuid.New()
		}
		r.recipes[rec.ID.String()] = rec
	}
	return r
}

func (r *fakeRecipeRepository) CreateRecipe(_ context.Context, recipe *entities.Recipe) error {
	if recipe.ID == uuid.Nil {
		recipe.ID = uuid.New()
	}
	r.recipes[recipe.ID.String()] = recipe
	return nil
}

func (r *fakeRecipeRepository) GetRecipeByID(_ context.Context, id string) (*entities.Recipe, error) {
	rec, ok := r.recipes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return rec, nil
}

func (r *fakeRecipeRepository) GetRecipeTitles(_ context.Context, ids []string) (map[string]string, error) {
	if r.titleErr != nil {
		return nil, r.titleErr
	}
	titles := make(map[string]string)
	for _, id := range ids {
		if rec, ok := r.recipes[id]; ok {
			titles[id] = rec.Title
		}
	}
	return titles, nil
}

type sentMail struct {
	to, subject, body string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (m *fakeMailer) SendMail(toEmail string, subject string, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: toEmail, subject: subject, body: body})
	return nil
}

var errStorageDown = errors.New("storage down")
