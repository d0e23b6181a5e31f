package shopping

import (
	migration "Foodia-Shopping/cmd/database/migrate"
	"Foodia-Shopping/domain"
	"Foodia-Shopping/entities"
	"Foodia-Shopping/pkg/recipe"
	"Foodia-Shopping/pkg/shopping/quantity"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, migration.Migrate(db))
	return db
}

func newItem(owner uuid.UUID, name string, q quantity.Quantity) *entities.ShoppingItem {
	key := NormalizeName(name)
	return &entities.ShoppingItem{
		OwnerID:       owner,
		DisplayName:   name,
		NormalizedKey: key,
		Quantity:      q,
		Category:      Classify(key),
	}
}

func TestShoppingRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewShoppingRepository(newTestDB(t))
	owner := uuid.New()
	recipeID := uuid.New()

	item := newItem(owner, "Flour", quantity.Text("2 cups"))
	item.SourceRecipeID = &recipeID
	require.NoError(t, repo.CreateShoppingItem(ctx, item))
	assert.NotEqual(t, uuid.Nil, item.ID)
	assert.False(t, item.CreatedAt.IsZero())

	got, err := repo.GetShoppingItemByID(ctx, item.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Flour", got.DisplayName)
	assert.Equal(t, "flour", got.NormalizedKey)
	assert.Equal(t, "2 cups", got.Quantity.String())
	assert.Equal(t, domain.CategoryPantry, got.Category)
	require.NotNil(t, got.SourceRecipeID)
	assert.Equal(t, recipeID, *got.SourceRecipeID)

	_, err = repo.GetShoppingItemByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestShoppingRepository_NumericQuantityRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewShoppingRepository(newTestDB(t))

	item := newItem(uuid.New(), "Eggs", quantity.Number(1.5))
	require.NoError(t, repo.CreateShoppingItem(ctx, item))

	got, err := repo.GetShoppingItemByID(ctx, item.ID.String())
	require.NoError(t, err)
	assert.True(t, got.Quantity.IsNumeric())
	assert.True(t, got.Quantity.Equal(quantity.Number(1.5)))
}

func TestShoppingRepository_ActiveKeyIsUnique(t *testing.T) {
	ctx := context.Background()
	repo := NewShoppingRepository(newTestDB(t))
	owner := uuid.New()

	first := newItem(owner, "Milk", quantity.Default)
	require.NoError(t, repo.CreateShoppingItem(ctx, first))

	err := repo.CreateShoppingItem(ctx, newItem(owner, "milk", quantity.Default))
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// other owners and completed rows are not constrained
	require.NoError(t, repo.CreateShoppingItem(ctx, newItem(uuid.New(), "Milk", quantity.Default)))

	first.Completed = true
	require.NoError(t, repo.UpdateShoppingItem(ctx, first))
	require.NoError(t, repo.CreateShoppingItem(ctx, newItem(owner, "Milk", quantity.Default)))

	done := newItem(owner, "Milk", quantity.Default)
	done.Completed = true
	require.NoError(t, repo.CreateShoppingItem(ctx, done))
}

func TestShoppingRepository_FindActive(t *testing.T) {
	ctx := context.Background()
	repo := NewShoppingRepository(newTestDB(t))
	owner := uuid.New()

	got, err := repo.FindActiveShoppingItem(ctx, owner.String(), "milk")
	require.NoError(t, err)
	assert.Nil(t, got)

	done := newItem(owner, "Milk", quantity.Default)
	done.Completed = true
	require.NoError(t, repo.CreateShoppingItem(ctx, done))
	require.NoError(t, repo.CreateShoppingItem(ctx, newItem(uuid.New(), "Milk", quantity.Default)))

	got, err = repo.FindActiveShoppingItem(ctx, owner.String(), "milk")
	require.NoError(t, err)
	assert.Nil(t, got)

	active := newItem(owner, "Milk", quantity.Number(2))
	require.NoError(t, repo.CreateShoppingItem(ctx, active))

	got, err = repo.FindActiveShoppingItem(ctx, owner.String(), "milk")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, active.ID, got.ID)

	got, err = repo.FindOtherActiveShoppingItem(ctx, owner.String(), "milk", active.ID.String())
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = repo.FindOtherActiveShoppingItem(ctx, owner.String(), "milk", done.ID.String())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, active.ID, got.ID)
}

func TestShoppingRepository_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewShoppingRepository(newTestDB(t))
	owner := uuid.New()
	other := uuid.New()

	milk := newItem(owner, "Milk", quantity.Default)
	eggs := newItem(owner, "Eggs", quantity.Default)
	eggs.Completed = true
	bread := newItem(owner, "Bread", quantity.Default)
	bread.Completed = true
	theirs := newItem(other, "Milk", quantity.Default)
	theirs.Completed = true
	for _, item := range []*entities.ShoppingItem{milk, eggs, bread, theirs} {
		require.NoError(t, repo.CreateShoppingItem(ctx, item))
	}

	items, err := repo.GetShoppingItems(ctx, owner.String())
	require.NoError(t, err)
	assert.Len(t, items, 3)

	deleted, err := repo.DeleteCompletedShoppingItems(ctx, owner.String())
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	require.NoError(t, repo.DeleteShoppingItem(ctx, milk.ID.String()))
	require.NoError(t, repo.DeleteShoppingItem(ctx, milk.ID.String()))

	items, err = repo.GetShoppingItems(ctx, owner.String())
	require.NoError(t, err)
	assert.Empty(t, items)

	items, err = repo.GetShoppingItems(ctx, other.String())
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestShoppingService_WithDatabase(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	recipes := recipe.NewRecipeRepository(db)
	service := NewShoppingService(NewShoppingRepository(db), recipes, &fakeMailer{}, zaptest.NewLogger(t))
	owner := uuid.NewString()

	rec := &entities.Recipe{Title: "Pancakes", Ingredients: "2 Eggs\n1 cup Flour\nMilk"}
	require.NoError(t, recipes.CreateRecipe(ctx, rec))

	res, err := service.ImportRecipe(ctx, rec.ID.String(), owner)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Created)

	res, err = service.ImportIngredients(ctx, domain.ImportIngredientsRequest{Lines: []string{"3 eggs", "milk"}}, owner)
	require.NoError(t, err)
	assert.Equal(t, domain.ImportIngredientsResponse{Merged: 2}, res)

	list, err := service.GetShoppingList(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 3, list.TotalItems)

	for _, section := range list.Sections {
		for _, item := range section.Items {
			assert.Equal(t, "Pancakes", item.SourceRecipeTitle)
			if item.DisplayName == "Eggs" {
				assert.Equal(t, "5", item.Quantity.String())
				done := true
				_, err := service.ToggleItem(ctx, item.ID, domain.ToggleShoppingItemRequest{Completed: &done}, owner)
				require.NoError(t, err)
			}
		}
	}

	added, err := service.AddItem(ctx, domain.AddShoppingItemRequest{Name: "Eggs"}, owner)
	require.NoError(t, err)
	assert.False(t, added.Merged)

	cleared, err := service.ClearCompleted(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cleared.Deleted)
}
