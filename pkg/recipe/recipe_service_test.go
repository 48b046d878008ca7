package recipe

import (
	"context"
	"errors"
	"foodgram-backend/domain"
	"foodgram-backend/entities"
	"foodgram-backend/pkg/catalog"
	"foodgram-backend/pkg/subscription"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&entities.User{},
		&entities.Ingredient{},
		&entities.Tag{},
		&entities.Recipe{},
		&entities.RecipeIngredient{},
		&entities.RecipeTag{},
		&entities.Follow{},
		&entities.Favorite{},
		&entities.ShoppingCartEntry{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

type fakeImageStorage struct{}

func (f *fakeImageStorage) UploadBase64Image(ctx context.Context, folder string, dataURI string) (string, error) {
	return "https://images.test/" + folder + "/fake.png", nil
}

func newTestService(db *gorm.DB) RecipeService {
	return NewRecipeService(
		NewRecipeRepository(db),
		catalog.NewCatalogRepository(db),
		subscription.NewSubscriptionRepository(db),
		&fakeImageStorage{},
	)
}

func seedUser(t *testing.T, db *gorm.DB, username string) *entities.User {
	user := &entities.User{
		ID:       uuid.New(),
		Username: username,
		Email:    username + "@example.com",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}
	return user
}

func seedIngredient(t *testing.T, db *gorm.DB, name, unit string) *entities.Ingredient {
	ingredient := &entities.Ingredient{
		ID:              uuid.New(),
		Name:            name,
		MeasurementUnit: unit,
	}
	if err := db.Create(ingredient).Error; err != nil {
		t.Fatalf("Failed to seed ingredient: %v", err)
	}
	return ingredient
}

func seedTag(t *testing.T, db *gorm.DB, name, slug string) *entities.Tag {
	tag := &entities.Tag{
		ID:   uuid.New(),
		Name: name,
		Slug: slug,
	}
	if err := db.Create(tag).Error; err != nil {
		t.Fatalf("Failed to seed tag: %v", err)
	}
	return tag
}

func TestCreateRecipeRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	service := newTestService(db)
	ctx := context.Background()

	author := seedUser(t, db, "chef")
	flour := seedIngredient(t, db, "flour", "g")
	sugar := seedIngredient(t, db, "sugar", "g")
	breakfast := seedTag(t, db, "Breakfast", "breakfast")

	detail, err := service.CreateRecipe(ctx, domain.RecipeRequest{
		Name:        "Pancakes",
		Text:        "Mix and fry.",
		CookingTime: 20,
		Ingredients: []domain.RecipeIngredientRequest{
			{ID: flour.ID.String(), Amount: 200},
			{ID: sugar.ID.String(), Amount: 100},
		},
		Tags: []string{breakfast.ID.String()},
	}, author.ID.String())
	if err != nil {
		t.Fatalf("CreateRecipe failed: %v", err)
	}

	read, err := service.GetRecipeDetail(ctx, detail.ID, author.ID.String())
	if err != nil {
		t.Fatalf("GetRecipeDetail failed: %v", err)
	}

	if len(read.Ingredients) != 2 {
		t.Fatalf("Expected 2 ingredients, got %d", len(read.Ingredients))
	}
	amounts := map[string]float64{}
	for _, item := range read.Ingredients {
		amounts[item.Name] = item.Amount
		if item.MeasurementUnit != "g" {
			t.Errorf("Expected unit g for %s, got %s", item.Name, item.MeasurementUnit)
		}
	}
	if amounts["flour"] != 200 || amounts["sugar"] != 100 {
		t.Errorf("Unexpected ingredient amounts: %v", amounts)
	}

	if len(read.Tags) != 1 || read.Tags[0].Slug != "breakfast" {
		t.Errorf("Expected tag breakfast, got %v", read.Tags)
	}
	if read.Author.ID != author.ID.String() {
		t.Errorf("Expected author %s, got %s", author.ID, read.Author.ID)
	}
}

func TestCreateRecipeCookingTimeValidation(t *testing.T) {
	db := setupTestDB(t)
	service := newTestService(db)
	ctx := context.Background()

	author := seedUser(t, db, "chef")
	flour := seedIngredient(t, db, "flour", "g")

	req := domain.RecipeRequest{
		Name:        "Bread",
		Text:        "Bake.",
		CookingTime: 0,
		Ingredients: []domain.RecipeIngredientRequest{{ID: flour.ID.String(), Amount: 500}},
	}

	if _, err := service.CreateRecipe(ctx, req, author.ID.String()); !errors.Is(err, domain.ErrInvalidCookingTime) {
		t.Fatalf("Expected ErrInvalidCookingTime, got %v", err)
	}

	req.CookingTime = 5
	if _, err := service.CreateRecipe(ctx, req, author.ID.String()); err != nil {
		t.Fatalf("CreateRecipe with cooking_time=5 failed: %v", err)
	}
}

func TestCreateRecipeUnknownReferences(t *testing.T) {
	db := setupTestDB(t)
	service := newTestService(db)
	ctx := context.Background()

	author := seedUser(t, db, "chef")
	flour := seedIngredient(t, db, "flour", "g")

	_, err := service.CreateRecipe(ctx, domain.RecipeRequest{
		Name:        "Mystery",
		Text:        "???",
		CookingTime: 10,
		Ingredients: []domain.RecipeIngredientRequest{{ID: uuid.New().String(), Amount: 1}},
	}, author.ID.String())
	if !errors.Is(err, domain.ErrIngredientNotFound) {
		t.Fatalf("Expected ErrIngredientNotFound, got %v", err)
	}

	_, err = service.CreateRecipe(ctx, domain.RecipeRequest{
		Name:        "Mystery",
		Text:        "???",
		CookingTime: 10,
		Ingredients: []domain.RecipeIngredientRequest{{ID: flour.ID.String(), Amount: 1}},
		Tags:        []string{uuid.New().String()},
	}, author.ID.String())
	if !errors.Is(err, domain.ErrTagNotFound) {
		t.Fatalf("Expected ErrTagNotFound, got %v", err)
	}

	_, err = service.CreateRecipe(ctx, domain.RecipeRequest{
		Name:        "Empty",
		Text:        "nothing",
		CookingTime: 10,
	}, author.ID.String())
	if !errors.Is(err, domain.ErrNoIngredients) {
		t.Fatalf("Expected ErrNoIngredients, got %v", err)
	}

	_, err = service.CreateRecipe(ctx, domain.RecipeRequest{
		Name:        "Negative",
		Text:        "impossible",
		CookingTime: 10,
		Ingredients: []domain.RecipeIngredientRequest{{ID: flour.ID.String(), Amount: -1}},
	}, author.ID.String())
	if !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("Expected ErrInvalidAmount, got %v", err)
	}

	// nothing may be written when a reference or amount fails to validate
	var recipeCount, joinCount int64
	db.Model(&entities.Recipe{}).Count(&recipeCount)
	db.Model(&entities.RecipeIngredient{}).Count(&joinCount)
	if recipeCount != 0 || joinCount != 0 {
		t.Errorf("Expected no rows after failed creates, found %d recipes and %d join rows", recipeCount, joinCount)
	}
}

func TestUpdateRecipeReplacesRelations(t *testing.T) {
	db := setupTestDB(t)
	service := newTestService(db)
	ctx := context.Background()

	author := seedUser(t, db, "chef")
	flour := seedIngredient(t, db, "flour", "g")
	sugar := seedIngredient(t, db, "sugar", "g")
	milk := seedIngredient(t, db, "milk", "ml")
	breakfast := seedTag(t, db, "Breakfast", "breakfast")
	dinner := seedTag(t, db, "Dinner", "dinner")

	created, err := service.CreateRecipe(ctx, domain.RecipeRequest{
		Name:        "Pancakes",
		Text:        "Mix and fry.",
		CookingTime: 20,
		Ingredients: []domain.RecipeIngredientRequest{
			{ID: flour.ID.String(), Amount: 200},
			{ID: sugar.ID.String(), Amount: 100},
		},
		Tags: []string{breakfast.ID.String()},
	}, author.ID.String())
	if err != nil {
		t.Fatalf("CreateRecipe failed: %v", err)
	}

	updated, err := service.UpdateRecipe(ctx, created.ID, domain.RecipeRequest{
		Name:        "Milk pancakes",
		Text:        "Mix with milk and fry.",
		CookingTime: 25,
		Ingredients: []domain.RecipeIngredientRequest{{ID: milk.ID.String(), Amount: 300}},
		Tags:        []string{dinner.ID.String()},
	}, author.ID.String())
	if err != nil {
		t.Fatalf("UpdateRecipe failed: %v", err)
	}

	if len(updated.Ingredients) != 1 || updated.Ingredients[0].Name != "milk" {
		t.Fatalf("Expected only milk after update, got %v", updated.Ingredients)
	}
	if len(updated.Tags) != 1 || updated.Tags[0].Slug != "dinner" {
		t.Fatalf("Expected only dinner tag after update, got %v", updated.Tags)
	}

	// no leftover join rows from the prior set
	var ingredientRows, tagRows int64
	db.Model(&entities.RecipeIngredient{}).Where("recipe_id = ?", created.ID).Count(&ingredientRows)
	db.Model(&entities.RecipeTag{}).Where("recipe_id = ?", created.ID).Count(&tagRows)
	if ingredientRows != 1 || tagRows != 1 {
		t.Errorf("Expected 1 ingredient row and 1 tag row, got %d and %d", ingredientRows, tagRows)
	}
}

func TestUpdateRecipeOnlyAuthor(t *testing.T) {
	db := setupTestDB(t)
	service := newTestService(db)
	ctx := context.Background()

	author := seedUser(t, db, "chef")
	other := seedUser(t, db, "visitor")
	flour := seedIngredient(t, db, "flour", "g")

	req := domain.RecipeRequest{
		Name:        "Bread",
		Text:        "Bake.",
		CookingTime: 60,
		Ingredients: []domain.RecipeIngredientRequest{{ID: flour.ID.String(), Amount: 500}},
	}

	created, err := service.CreateRecipe(ctx, req, author.ID.String())
	if err != nil {
		t.Fatalf("CreateRecipe failed: %v", err)
	}

	if _, err := service.UpdateRecipe(ctx, created.ID, req, other.ID.String()); !errors.Is(err, domain.ErrNotRecipeAuthor) {
		t.Fatalf("Expected ErrNotRecipeAuthor, got %v", err)
	}
	if err := service.DeleteRecipe(ctx, created.ID, other.ID.String()); !errors.Is(err, domain.ErrNotRecipeAuthor) {
		t.Fatalf("Expected ErrNotRecipeAuthor on delete, got %v", err)
	}
}

func TestFavoriteStateMachine(t *testing.T) {
	db := setupTestDB(t)
	service := newTestService(db)
	ctx := context.Background()

	author := seedUser(t, db, "chef")
	viewer := seedUser(t, db, "viewer")
	flour := seedIngredient(t, db, "flour", "g")

	created, err := service.CreateRecipe(ctx, domain.RecipeRequest{
		Name:        "Bread",
		Text:        "Bake.",
		CookingTime: 60,
		Ingredients: []domain.RecipeIngredientRequest{{ID: flour.ID.String(), Amount: 500}},
	}, author.ID.String())
	if err != nil {
		t.Fatalf("CreateRecipe failed: %v", err)
	}

	if err := service.FavoriteRecipe(ctx, created.ID, viewer.ID.String()); err != nil {
		t.Fatalf("FavoriteRecipe failed: %v", err)
	}
	if err := service.FavoriteRecipe(ctx, created.ID, viewer.ID.String()); !errors.Is(err, domain.ErrAlreadyFavorited) {
		t.Fatalf("Expected ErrAlreadyFavorited on second add, got %v", err)
	}

	detail, err := service.GetRecipeDetail(ctx, created.ID, viewer.ID.String())
	if err != nil {
		t.Fatalf("GetRecipeDetail failed: %v", err)
	}
	if !detail.IsFavorited {
		t.Errorf("Expected is_favorited=true for viewer")
	}

	if err := service.UnfavoriteRecipe(ctx, created.ID, viewer.ID.String()); err != nil {
		t.Fatalf("UnfavoriteRecipe failed: %v", err)
	}
	if err := service.UnfavoriteRecipe(ctx, created.ID, viewer.ID.String()); !errors.Is(err, domain.ErrNotFavorited) {
		t.Fatalf("Expected ErrNotFavorited on absent pair, got %v", err)
	}

	if err := service.FavoriteRecipe(ctx, uuid.New().String(), viewer.ID.String()); !errors.Is(err, domain.ErrRecipeNotFound) {
		t.Fatalf("Expected ErrRecipeNotFound for missing recipe, got %v", err)
	}
}

func TestCartStateMachine(t *testing.T) {
	db := setupTestDB(t)
	service := newTestService(db)
	ctx := context.Background()

	author := seedUser(t, db, "chef")
	viewer := seedUser(t, db, "viewer")
	flour := seedIngredient(t, db, "flour", "g")

	created, err := service.CreateRecipe(ctx, domain.RecipeRequest{
		Name:        "Bread",
		Text:        "Bake.",
		CookingTime: 60,
		Ingredients: []domain.RecipeIngredientRequest{{ID: flour.ID.String(), Amount: 500}},
	}, author.ID.String())
	if err != nil {
		t.Fatalf("CreateRecipe failed: %v", err)
	}

	if err := service.AddToCart(ctx, created.ID, viewer.ID.String()); err != nil {
		t.Fatalf("AddToCart failed: %v", err)
	}
	if err := service.AddToCart(ctx, created.ID, viewer.ID.String()); !errors.Is(err, domain.ErrAlreadyInCart) {
		t.Fatalf("Expected ErrAlreadyInCart on second add, got %v", err)
	}
	if err := service.RemoveFromCart(ctx, created.ID, viewer.ID.String()); err != nil {
		t.Fatalf("RemoveFromCart failed: %v", err)
	}
	if err := service.RemoveFromCart(ctx, created.ID, viewer.ID.String()); !errors.Is(err, domain.ErrNotInCart) {
		t.Fatalf("Expected ErrNotInCart on absent pair, got %v", err)
	}
}

// relationRaceRepo reports favorite and cart relations as absent so the add
// path still runs when the row already exists, the way a lost
// check-then-write race behaves.
type relationRaceRepo struct {
	RecipeRepository
}

func (r relationRaceRepo) IsFavorited(ctx context.Context, userID, recipeID string) (bool, error) {
	return false, nil
}

func (r relationRaceRepo) IsInCart(ctx context.Context, userID, recipeID string) (bool, error) {
	return false, nil
}

func TestRelationAddConflict(t *testing.T) {
	db := setupTestDB(t)
	service := NewRecipeService(
		relationRaceRepo{NewRecipeRepository(db)},
		catalog.NewCatalogRepository(db),
		subscription.NewSubscriptionRepository(db),
		&fakeImageStorage{},
	)
	ctx := context.Background()

	author := seedUser(t, db, "chef")
	viewer := seedUser(t, db, "viewer")
	flour := seedIngredient(t, db, "flour", "g")

	created := createRecipeWithIngredients(t, service, author.ID.String(), "Bread", []domain.RecipeIngredientRequest{
		{ID: flour.ID.String(), Amount: 500},
	})

	if err := service.FavoriteRecipe(ctx, created.ID, viewer.ID.String()); err != nil {
		t.Fatalf("FavoriteRecipe failed: %v", err)
	}
	// the row exists but was reported absent, so the insert hits the unique index
	if err := service.FavoriteRecipe(ctx, created.ID, viewer.ID.String()); !errors.Is(err, domain.ErrRelationConflict) {
		t.Fatalf("Expected ErrRelationConflict on favorite, got %v", err)
	}

	if err := service.AddToCart(ctx, created.ID, viewer.ID.String()); err != nil {
		t.Fatalf("AddToCart failed: %v", err)
	}
	if err := service.AddToCart(ctx, created.ID, viewer.ID.String()); !errors.Is(err, domain.ErrRelationConflict) {
		t.Fatalf("Expected ErrRelationConflict on cart add, got %v", err)
	}

	// exactly one row per relation despite the second insert attempt
	var favorites, entries int64
	db.Model(&entities.Favorite{}).Where("recipe_id = ?", created.ID).Count(&favorites)
	db.Model(&entities.ShoppingCartEntry{}).Where("recipe_id = ?", created.ID).Count(&entries)
	if favorites != 1 || entries != 1 {
		t.Errorf("Expected 1 favorite and 1 cart entry, got %d and %d", favorites, entries)
	}
}

func createRecipeWithIngredients(t *testing.T, service RecipeService, authorID string, name string, items []domain.RecipeIngredientRequest) domain.RecipeDetail {
	detail, err := service.CreateRecipe(context.Background(), domain.RecipeRequest{
		Name:        name,
		Text:        name,
		CookingTime: 10,
		Ingredients: items,
	}, authorID)
	if err != nil {
		t.Fatalf("CreateRecipe %s failed: %v", name, err)
	}
	return detail
}

func TestShoppingListAggregation(t *testing.T) {
	db := setupTestDB(t)
	service := newTestService(db)
	ctx := context.Background()

	author := seedUser(t, db, "chef")
	buyer := seedUser(t, db, "buyer")
	flour := seedIngredient(t, db, "flour", "g")
	sugar := seedIngredient(t, db, "sugar", "g")

	pancakes := createRecipeWithIngredients(t, service, author.ID.String(), "Pancakes", []domain.RecipeIngredientRequest{
		{ID: flour.ID.String(), Amount: 200},
		{ID: sugar.ID.String(), Amount: 100},
	})
	bread := createRecipeWithIngredients(t, service, author.ID.String(), "Bread", []domain.RecipeIngredientRequest{
		{ID: flour.ID.String(), Amount: 300},
	})

	if err := service.AddToCart(ctx, pancakes.ID, buyer.ID.String()); err != nil {
		t.Fatalf("AddToCart failed: %v", err)
	}
	if err := service.AddToCart(ctx, bread.ID, buyer.ID.String()); err != nil {
		t.Fatalf("AddToCart failed: %v", err)
	}

	items, err := service.BuildShoppingList(ctx, buyer.ID.String())
	if err != nil {
		t.Fatalf("BuildShoppingList failed: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("Expected 2 aggregated rows, got %d: %v", len(items), items)
	}
	totals := map[string]float64{}
	units := map[string]string{}
	for _, item := range items {
		totals[item.Name] = item.Amount
		units[item.Name] = item.MeasurementUnit
	}
	if totals["flour"] != 500 || units["flour"] != "g" {
		t.Errorf("Expected flour 500 g, got %v %v", totals["flour"], units["flour"])
	}
	if totals["sugar"] != 100 {
		t.Errorf("Expected sugar 100, got %v", totals["sugar"])
	}
}

func TestShoppingListOrderIndependent(t *testing.T) {
	db := setupTestDB(t)
	service := newTestService(db)
	ctx := context.Background()

	author := seedUser(t, db, "chef")
	first := seedUser(t, db, "first")
	second := seedUser(t, db, "second")
	flour := seedIngredient(t, db, "flour", "g")
	milk := seedIngredient(t, db, "milk", "ml")

	r1 := createRecipeWithIngredients(t, service, author.ID.String(), "R1", []domain.RecipeIngredientRequest{
		{ID: flour.ID.String(), Amount: 200},
		{ID: milk.ID.String(), Amount: 50},
	})
	r2 := createRecipeWithIngredients(t, service, author.ID.String(), "R2", []domain.RecipeIngredientRequest{
		{ID: flour.ID.String(), Amount: 300},
	})

	// first adds R1 then R2, second adds R2 then R1
	for _, id := range []string{r1.ID, r2.ID} {
		if err := service.AddToCart(ctx, id, first.ID.String()); err != nil {
			t.Fatalf("AddToCart failed: %v", err)
		}
	}
	for _, id := range []string{r2.ID, r1.ID} {
		if err := service.AddToCart(ctx, id, second.ID.String()); err != nil {
			t.Fatalf("AddToCart failed: %v", err)
		}
	}

	firstList, err := service.BuildShoppingList(ctx, first.ID.String())
	if err != nil {
		t.Fatalf("BuildShoppingList failed: %v", err)
	}
	secondList, err := service.BuildShoppingList(ctx, second.ID.String())
	if err != nil {
		t.Fatalf("BuildShoppingList failed: %v", err)
	}

	if len(firstList) != len(secondList) {
		t.Fatalf("Expected identical lists, got %v vs %v", firstList, secondList)
	}
	for i := range firstList {
		if firstList[i] != secondList[i] {
			t.Errorf("Row %d differs: %v vs %v", i, firstList[i], secondList[i])
		}
	}
}

func TestShoppingListEmptyCart(t *testing.T) {
	db := setupTestDB(t)
	service := newTestService(db)

	buyer := seedUser(t, db, "buyer")

	items, err := service.BuildShoppingList(context.Background(), buyer.ID.String())
	if err != nil {
		t.Fatalf("BuildShoppingList on empty cart failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("Expected empty list, got %v", items)
	}
}

func TestRenderShoppingList(t *testing.T) {
	db := setupTestDB(t)
	service := newTestService(db)
	ctx := context.Background()

	author := seedUser(t, db, "chef")
	buyer := seedUser(t, db, "buyer")
	flour := seedIngredient(t, db, "flour", "g")

	bread := createRecipeWithIngredients(t, service, author.ID.String(), "Bread", []domain.RecipeIngredientRequest{
		{ID: flour.ID.String(), Amount: 500},
	})
	if err := service.AddToCart(ctx, bread.ID, buyer.ID.String()); err != nil {
		t.Fatalf("AddToCart failed: %v", err)
	}

	text, err := service.RenderShoppingList(ctx, buyer.ID.String())
	if err != nil {
		t.Fatalf("RenderShoppingList failed: %v", err)
	}

	want := "Shopping list:\nflour (g) - 500\n"
	if text != want {
		t.Errorf("Expected %q, got %q", want, text)
	}
}

func TestDeleteRecipeCascades(t *testing.T) {
	db := setupTestDB(t)
	service := newTestService(db)
	ctx := context.Background()

	author := seedUser(t, db, "chef")
	viewer := seedUser(t, db, "viewer")
	flour := seedIngredient(t, db, "flour", "g")

	created := createRecipeWithIngredients(t, service, author.ID.String(), "Bread", []domain.RecipeIngredientRequest{
		{ID: flour.ID.String(), Amount: 500},
	})

	if err := service.FavoriteRecipe(ctx, created.ID, viewer.ID.String()); err != nil {
		t.Fatalf("FavoriteRecipe failed: %v", err)
	}
	if err := service.AddToCart(ctx, created.ID, viewer.ID.String()); err != nil {
		t.Fatalf("AddToCart failed: %v", err)
	}

	if err := service.DeleteRecipe(ctx, created.ID, author.ID.String()); err != nil {
		t.Fatalf("DeleteRecipe failed: %v", err)
	}

	for name, model := range map[string]any{
		"recipe_ingredients":    &entities.RecipeIngredient{},
		"favorites":             &entities.Favorite{},
		"shopping_cart_entries": &entities.ShoppingCartEntry{},
	} {
		var count int64
		db.Model(model).Where("recipe_id = ?", created.ID).Count(&count)
		if count != 0 {
			t.Errorf("Expected no %s rows after delete, found %d", name, count)
		}
	}

	if _, err := service.GetRecipeDetail(ctx, created.ID, ""); !errors.Is(err, domain.ErrRecipeNotFound) {
		t.Errorf("Expected ErrRecipeNotFound after delete, got %v", err)
	}
}

func TestListRecipesFilters(t *testing.T) {
	db := setupTestDB(t)
	service := newTestService(db)
	ctx := context.Background()

	chef := seedUser(t, db, "chef")
	baker := seedUser(t, db, "baker")
	viewer := seedUser(t, db, "viewer")
	flour := seedIngredient(t, db, "flour", "g")
	breakfast := seedTag(t, db, "Breakfast", "breakfast")
	dinner := seedTag(t, db, "Dinner", "dinner")

	pancakes, err := service.CreateRecipe(ctx, domain.RecipeRequest{
		Name:        "Pancakes",
		Text:        "Fry.",
		CookingTime: 20,
		Ingredients: []domain.RecipeIngredientRequest{{ID: flour.ID.String(), Amount: 200}},
		Tags:        []string{breakfast.ID.String()},
	}, chef.ID.String())
	if err != nil {
		t.Fatalf("CreateRecipe failed: %v", err)
	}

	if _, err := service.CreateRecipe(ctx, domain.RecipeRequest{
		Name:        "Stew",
		Text:        "Simmer.",
		CookingTime: 90,
		Ingredients: []domain.RecipeIngredientRequest{{ID: flour.ID.String(), Amount: 10}},
		Tags:        []string{dinner.ID.String()},
	}, baker.ID.String()); err != nil {
		t.Fatalf("CreateRecipe failed: %v", err)
	}

	byTag, count, err := service.GetRecipes(ctx, domain.RecipeFilter{TagSlugs: []string{"breakfast"}}, "", 1, 10)
	if err != nil {
		t.Fatalf("GetRecipes by tag failed: %v", err)
	}
	if count != 1 || len(byTag) != 1 || byTag[0].Name != "Pancakes" {
		t.Errorf("Expected only Pancakes for tag breakfast, got count=%d %v", count, byTag)
	}

	byAuthor, count, err := service.GetRecipes(ctx, domain.RecipeFilter{AuthorID: baker.ID.String()}, "", 1, 10)
	if err != nil {
		t.Fatalf("GetRecipes by author failed: %v", err)
	}
	if count != 1 || len(byAuthor) != 1 || byAuthor[0].Name != "Stew" {
		t.Errorf("Expected only Stew for author, got count=%d %v", count, byAuthor)
	}

	if err := service.FavoriteRecipe(ctx, pancakes.ID, viewer.ID.String()); err != nil {
		t.Fatalf("FavoriteRecipe failed: %v", err)
	}
	favorited, count, err := service.GetRecipes(ctx, domain.RecipeFilter{Favorited: true}, viewer.ID.String(), 1, 10)
	if err != nil {
		t.Fatalf("GetRecipes by favorite failed: %v", err)
	}
	if count != 1 || len(favorited) != 1 || favorited[0].ID != pancakes.ID {
		t.Errorf("Expected favorited filter to return Pancakes, got count=%d %v", count, favorited)
	}
	if !favorited[0].IsFavorited {
		t.Errorf("Expected is_favorited=true in listing for viewer")
	}
}
