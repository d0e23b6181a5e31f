package shopping

import (
	"Foodia-Shopping/domain"
	"Foodia-Shopping/entities"
	"Foodia-Shopping/internal/utils/mailing"
	"Foodia-Shopping/pkg/recipe"
	"Foodia-Shopping/pkg/shopping/quantity"
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"sort"
	"strings"
)

type (
	ShoppingService interface {
		AddItem(ctx context.Context, req domain.AddShoppingItemRequest, userID string) (domain.AddShoppingItemResponse, error)
		ImportIngredients(ctx context.Context, req domain.ImportIngredientsRequest, userID string) (domain.ImportIngredientsResponse, error)
		ImportRecipe(ctx context.Context, recipeID string, userID string) (domain.ImportIngredientsResponse, error)
		GetShoppingList(ctx context.Context, userID string) (domain.ShoppingListResponse, error)
		ToggleItem(ctx context.Context, id string, req domain.ToggleShoppingItemRequest, userID string) (domain.ShoppingItemResponse, error)
		UpdateItem(ctx context.Context, id string, req domain.UpdateShoppingItemRequest, userID string) (domain.ShoppingItemResponse, error)
		DeleteItem(ctx context.Context, id string, userID string) error
		ClearCompleted(ctx context.Context, userID string) (domain.ClearCompletedResponse, error)
		ShareList(ctx context.Context, req domain.ShareShoppingListRequest, userID string) error
	}

	shoppingService struct {
		shoppingRepository ShoppingRepository
		recipeRepository   recipe.RecipeRepository
		mailer             mailing.Mailer
		log                *zap.Logger
	}

	itemInput struct {
		ownerID        uuid.UUID
		name           string
		quantity       quantity.Quantity
		category       domain.Category
		sourceRecipeID *uuid.UUID
	}

	addOutcome int
)

const (
	outcomeSkipped addOutcome = iota
	outcomeCreated
	outcomeMerged
)

// maxAddAttempts bounds the retry after losing an insert race on the active-key index.
const maxAddAttempts = 2

func NewShoppingService(
	shoppingRepository ShoppingRepository,
	recipeRepository recipe.RecipeRepository,
	mailer mailing.Mailer,
	log *zap.Logger,
) ShoppingService {
	if log == nil {
		log = zap.NewNop()
	}
	return &shoppingService{
		shoppingRepository: shoppingRepository,
		recipeRepository:   recipeRepository,
		mailer:             mailer,
		log:                log.Named("shopping"),
	}
}

func (s *shoppingService) AddItem(ctx context.Context, req domain.AddShoppingItemRequest, userID string) (domain.AddShoppingItemResponse, error) {
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return domain.AddShoppingItemResponse{}, domain.ErrParseUUID
	}

	if strings.TrimSpace(req.Name) == "" {
		return domain.AddShoppingItemResponse{}, domain.ErrEmptyItemName
	}

	in := itemInput{
		ownerID:  ownerID,
		name:     req.Name,
		quantity: quantity.Default,
	}

	if req.Quantity != nil {
		in.quantity = *req.Quantity
	}

	if req.Category != "" {
		category, ok := domain.ParseCategory(req.Category)
		if !ok {
			return domain.AddShoppingItemResponse{}, domain.ErrInvalidCategory
		}
		in.category = category
	}

	if req.SourceRecipeID != "" {
		recipeID, err := uuid.Parse(req.SourceRecipeID)
		if err != nil {
			return domain.AddShoppingItemResponse{}, domain.ErrParseUUID
		}
		in.sourceRecipeID = &recipeID
	}

	item, outcome, err := s.addOrMerge(ctx, in)
	if err != nil {
		return domain.AddShoppingItemResponse{}, err
	}

	return domain.AddShoppingItemResponse{
		Item:   s.toResponse(item, s.recipeTitles(ctx, []*entities.ShoppingItem{item})),
		Merged: outcome == outcomeMerged,
	}, nil
}

func (s *shoppingService) ImportIngredients(ctx context.Context, req domain.ImportIngredientsRequest, userID string) (domain.ImportIngredientsResponse, error) {
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ImportIngredientsResponse{}, domain.ErrParseUUID
	}

	if len(req.Lines) == 0 {
		return domain.ImportIngredientsResponse{}, domain.ErrNoIngredientLines
	}

	var sourceRecipeID *uuid.UUID
	if req.SourceRecipeID != "" {
		recipeID, err := uuid.Parse(req.SourceRecipeID)
		if err != nil {
			return domain.ImportIngredientsResponse{}, domain.ErrParseUUID
		}
		sourceRecipeID = &recipeID
	}

	return s.importLines(ctx, ownerID, req.Lines, sourceRecipeID)
}

func (s *shoppingService) ImportRecipe(ctx context.Context, recipeID string, userID string) (domain.ImportIngredientsResponse, error) {
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ImportIngredientsResponse{}, domain.ErrParseUUID
	}

	if _, err := uuid.Parse(recipeID); err != nil {
		return domain.ImportIngredientsResponse{}, domain.ErrRecipeNotFound
	}

	rec, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ImportIngredientsResponse{}, domain.ErrRecipeNotFound
		}
		return domain.ImportIngredientsResponse{}, err
	}

	lines := recipe.IngredientLines(rec)
	if len(lines) == 0 {
		return domain.ImportIngredientsResponse{}, domain.ErrNoIngredients
	}

	return s.importLines(ctx, ownerID, lines, &rec.ID)
}

// importLines runs every line through the parser and add-or-merge. A zero amount
// ("0 eggs") still puts the item on the list with the default quantity. Blank lines
// and lines that fail are counted as skipped; they never abort the batch.
func (s *shoppingService) importLines(ctx context.Context, ownerID uuid.UUID, lines []string, sourceRecipeID *uuid.UUID) (domain.ImportIngredientsResponse, error) {
	var res domain.ImportIngredientsResponse

	for i, line := range lines {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		parsed := ParseLine(line)
		if parsed.Name == "" {
			res.Skipped++
			continue
		}

		amount := parsed.Quantity
		if v, ok := amount.Float(); ok && v <= 0 {
			s.log.Info("ingredient line has no usable amount, using default quantity",
				zap.Int("line", i+1),
				zap.String("text", line),
			)
			amount = quantity.Default
		}

		_, outcome, err := s.addOrMerge(ctx, itemInput{
			ownerID:        ownerID,
			name:           parsed.Name,
			quantity:       amount,
			sourceRecipeID: sourceRecipeID,
		})
		if err != nil {
			s.log.Warn("skipping ingredient line",
				zap.Int("line", i+1),
				zap.String("text", line),
				zap.Error(err),
			)
			res.Skipped++
			continue
		}

		switch outcome {
		case outcomeCreated:
			res.Created++
		case outcomeMerged:
			res.Merged++
		default:
			res.Skipped++
		}
	}

	s.log.Info("ingredients imported",
		zap.String("owner_id", ownerID.String()),
		zap.Int("created", res.Created),
		zap.Int("merged", res.Merged),
		zap.Int("skipped", res.Skipped),
	)
	return res, nil
}

// addOrMerge grows the owner's active item with the same key, or creates one. An
// empty name is a no-op. When the insert loses a race against a concurrent add
// (unique active-key index) the lookup runs again and merges into the winner.
func (s *shoppingService) addOrMerge(ctx context.Context, in itemInput) (*entities.ShoppingItem, addOutcome, error) {
	name := strings.TrimSpace(in.name)
	if name == "" {
		return nil, outcomeSkipped, nil
	}

	if v, ok := in.quantity.Float(); ok && v <= 0 {
		return nil, outcomeSkipped, domain.ErrInvalidQuantity
	}

	key := NormalizeName(name)
	category := in.category
	if category == "" {
		category = Classify(key)
	}

	for attempt := 0; attempt < maxAddAttempts; attempt++ {
		existing, err := s.shoppingRepository.FindActiveShoppingItem(ctx, in.ownerID.String(), key)
		if err != nil {
			return nil, outcomeSkipped, fmt.Errorf("failed to look up shopping item: %w", err)
		}

		if existing != nil {
			mergeInto(existing, in.quantity, category, in.sourceRecipeID)
			if err := s.shoppingRepository.UpdateShoppingItem(ctx, existing); err != nil {
				return nil, outcomeSkipped, fmt.Errorf("failed to merge shopping item: %w", err)
			}
			s.log.Debug("shopping item merged",
				zap.String("owner_id", in.ownerID.String()),
				zap.String("key", key),
				zap.String("quantity", existing.Quantity.String()),
			)
			return existing, outcomeMerged, nil
		}

		item := &entities.ShoppingItem{
			ID:             uuid.New(),
			OwnerID:        in.ownerID,
			DisplayName:    name,
			NormalizedKey:  key,
			Quantity:       in.quantity,
			Category:       category,
			Completed:      false,
			SourceRecipeID: in.sourceRecipeID,
		}

		err = s.shoppingRepository.CreateShoppingItem(ctx, item)
		if err == nil {
			return item, outcomeCreated, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, outcomeSkipped, fmt.Errorf("failed to create shopping item: %w", err)
		}

		s.log.Warn("concurrent add for the same item, merging",
			zap.String("owner_id", in.ownerID.String()),
			zap.String("key", key),
		)
	}

	return nil, outcomeSkipped, fmt.Errorf("failed to add shopping item %q: %w", key, gorm.ErrDuplicatedKey)
}

// mergeInto applies an incoming add to an existing active item. A specific category
// replaces Other but is never replaced by it, and provenance is only filled in.
func mergeInto(existing *entities.ShoppingItem, q quantity.Quantity, category domain.Category, sourceRecipeID *uuid.UUID) {
	existing.Quantity = quantity.Merge(existing.Quantity, q)

	if existing.Category == domain.CategoryOther && category != domain.CategoryOther && category.IsValid() {
		existing.Category = category
	}

	if existing.SourceRecipeID == nil && sourceRecipeID != nil {
		id := *sourceRecipeID
		existing.SourceRecipeID = &id
	}
}

func (s *shoppingService) GetShoppingList(ctx context.Context, userID string) (domain.ShoppingListResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return domain.ShoppingListResponse{}, domain.ErrParseUUID
	}

	items, err := s.shoppingRepository.GetShoppingItems(ctx, userID)
	if err != nil {
		return domain.ShoppingListResponse{}, err
	}

	return s.buildList(items, s.recipeTitles(ctx, items)), nil
}

func (s *shoppingService) buildList(items []*entities.ShoppingItem, titles map[string]string) domain.ShoppingListResponse {
	sorted := make([]*entities.ShoppingItem, len(items))
	copy(sorted, items)
	sortItems(sorted)

	res := domain.ShoppingListResponse{
		Sections:   []domain.ShoppingSection{},
		TotalItems: len(sorted),
	}

	for _, item := range sorted {
		if item.Completed {
			res.CompletedItems++
		} else {
			res.ActiveItems++
		}

		category := sectionOf(item)
		last := len(res.Sections) - 1
		if last < 0 || res.Sections[last].Category != category {
			res.Sections = append(res.Sections, domain.ShoppingSection{Category: category})
			last++
		}
		res.Sections[last].Items = append(res.Sections[last].Items, s.toResponse(item, titles))
	}

	return res
}

func sectionOf(item *entities.ShoppingItem) domain.Category {
	if item.Category.IsValid() {
		return item.Category
	}
	return domain.CategoryOther
}

// sortItems orders by section, then active before completed, then display name
// ignoring case, then creation time.
func sortItems(items []*entities.ShoppingItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if ra, rb := sectionOf(a).Rank(), sectionOf(b).Rank(); ra != rb {
			return ra < rb
		}
		if a.Completed != b.Completed {
			return !a.Completed
		}
		if na, nb := strings.ToLower(a.DisplayName), strings.ToLower(b.DisplayName); na != nb {
			return na < nb
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID.String() < b.ID.String()
	})
}

func (s *shoppingService) ToggleItem(ctx context.Context, id string, req domain.ToggleShoppingItemRequest, userID string) (domain.ShoppingItemResponse, error) {
	if req.Completed == nil {
		return domain.ShoppingItemResponse{}, domain.ErrInvalidToggle
	}

	item, err := s.getOwnedItem(ctx, id, userID)
	if err != nil {
		return domain.ShoppingItemResponse{}, err
	}

	if item.Completed == *req.Completed {
		return s.toResponse(item, s.recipeTitles(ctx, []*entities.ShoppingItem{item})), nil
	}

	if *req.Completed {
		item.Completed = true
		if err := s.shoppingRepository.UpdateShoppingItem(ctx, item); err != nil {
			return domain.ShoppingItemResponse{}, err
		}
	} else {
		item, err = s.settleActive(ctx, item)
		if err != nil {
			return domain.ShoppingItemResponse{}, err
		}
	}

	return s.toResponse(item, s.recipeTitles(ctx, []*entities.ShoppingItem{item})), nil
}

func (s *shoppingService) UpdateItem(ctx context.Context, id string, req domain.UpdateShoppingItemRequest, userID string) (domain.ShoppingItemResponse, error) {
	item, err := s.getOwnedItem(ctx, id, userID)
	if err != nil {
		return domain.ShoppingItemResponse{}, err
	}

	keyChanged := false
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.ShoppingItemResponse{}, domain.ErrEmptyItemName
		}
		key := NormalizeName(name)
		keyChanged = key != item.NormalizedKey
		item.DisplayName = name
		item.NormalizedKey = key
		if keyChanged && req.Category == nil {
			item.Category = Classify(key)
		}
	}

	if req.Quantity != nil {
		if v, ok := req.Quantity.Float(); ok && v <= 0 {
			return domain.ShoppingItemResponse{}, domain.ErrInvalidQuantity
		}
		item.Quantity = *req.Quantity
	}

	if req.Category != nil {
		category, ok := domain.ParseCategory(*req.Category)
		if !ok {
			return domain.ShoppingItemResponse{}, domain.ErrInvalidCategory
		}
		item.Category = category
	}

	if keyChanged && !item.Completed {
		item, err = s.settleActive(ctx, item)
		if err != nil {
			return domain.ShoppingItemResponse{}, err
		}
	} else if err := s.shoppingRepository.UpdateShoppingItem(ctx, item); err != nil {
		return domain.ShoppingItemResponse{}, err
	}

	return s.toResponse(item, s.recipeTitles(ctx, []*entities.ShoppingItem{item})), nil
}

// settleActive saves item as active. If the owner already has another active item
// with the same key, item is folded into that one and removed, and the survivor is
// returned.
func (s *shoppingService) settleActive(ctx context.Context, item *entities.ShoppingItem) (*entities.ShoppingItem, error) {
	for attempt := 0; attempt < maxAddAttempts; attempt++ {
		other, err := s.shoppingRepository.FindOtherActiveShoppingItem(ctx, item.OwnerID.String(), item.NormalizedKey, item.ID.String())
		if err != nil {
			return nil, fmt.Errorf("failed to look up shopping item: %w", err)
		}

		if other != nil {
			mergeInto(other, item.Quantity, item.Category, item.SourceRecipeID)
			if err := s.shoppingRepository.UpdateShoppingItem(ctx, other); err != nil {
				return nil, fmt.Errorf("failed to merge shopping item: %w", err)
			}
			if err := s.shoppingRepository.DeleteShoppingItem(ctx, item.ID.String()); err != nil {
				return nil, fmt.Errorf("failed to remove merged shopping item: %w", err)
			}
			s.log.Debug("shopping item folded into active duplicate",
				zap.String("owner_id", item.OwnerID.String()),
				zap.String("key", item.NormalizedKey),
				zap.String("survivor_id", other.ID.String()),
			)
			return other, nil
		}

		item.Completed = false
		err = s.shoppingRepository.UpdateShoppingItem(ctx, item)
		if err == nil {
			return item, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("failed to reactivate shopping item %q: %w", item.NormalizedKey, gorm.ErrDuplicatedKey)
}

// DeleteItem removes an owned item. Deleting an id that does not exist (or no longer
// exists) succeeds without doing anything.
func (s *shoppingService) DeleteItem(ctx context.Context, id string, userID string) error {
	item, err := s.getOwnedItem(ctx, id, userID)
	if err != nil {
		if errors.Is(err, domain.ErrShoppingItemNotFound) {
			return nil
		}
		return err
	}

	return s.shoppingRepository.DeleteShoppingItem(ctx, item.ID.String())
}

func (s *shoppingService) ClearCompleted(ctx context.Context, userID string) (domain.ClearCompletedResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return domain.ClearCompletedResponse{}, domain.ErrParseUUID
	}

	deleted, err := s.shoppingRepository.DeleteCompletedShoppingItems(ctx, userID)
	if err != nil {
		return domain.ClearCompletedResponse{}, err
	}

	return domain.ClearCompletedResponse{Deleted: deleted}, nil
}

func (s *shoppingService) ShareList(ctx context.Context, req domain.ShareShoppingListRequest, userID string) error {
	list, err := s.GetShoppingList(ctx, userID)
	if err != nil {
		return err
	}

	body, err := renderListEmail(list, req.IncludeCompleted)
	if err != nil {
		return err
	}

	if err := s.mailer.SendMail(req.Email, "Your shopping list", body); err != nil {
		return fmt.Errorf("failed to send shopping list: %w", err)
	}
	return nil
}

func (s *shoppingService) getOwnedItem(ctx context.Context, id string, userID string) (*entities.ShoppingItem, error) {
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrShoppingItemNotFound
	}

	item, err := s.shoppingRepository.GetShoppingItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrShoppingItemNotFound
		}
		return nil, err
	}

	if item.OwnerID != ownerID {
		return nil, domain.ErrUnauthorizedAccess
	}

	return item, nil
}

// recipeTitles resolves provenance for display. The recipe link is weak, so lookup
// failures and deleted recipes just leave the title out.
func (s *shoppingService) recipeTitles(ctx context.Context, items []*entities.ShoppingItem) map[string]string {
	seen := make(map[string]struct{})
	var ids []string
	for _, item := range items {
		if item == nil || item.SourceRecipeID == nil {
			continue
		}
		id := item.SourceRecipeID.String()
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	if len(ids) == 0 || s.recipeRepository == nil {
		return map[string]string{}
	}

	titles, err := s.recipeRepository.GetRecipeTitles(ctx, ids)
	if err != nil {
		s.log.Warn("failed to resolve recipe titles", zap.Error(err))
		return map[string]string{}
	}
	return titles
}

func (s *shoppingService) toResponse(item *entities.ShoppingItem, titles map[string]string) domain.ShoppingItemResponse {
	res := domain.ShoppingItemResponse{
		ID:          item.ID.String(),
		DisplayName: item.DisplayName,
		Quantity:    item.Quantity,
		Category:    sectionOf(item),
		Completed:   item.Completed,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}

	if item.SourceRecipeID != nil {
		res.SourceRecipeID = item.SourceRecipeID.String()
		res.SourceRecipeTitle = titles[res.SourceRecipeID]
	}

	return res
}
