// Package memory is an in-process storage.Store used by tests. It keeps the
// same owner scoping and error contract as the Postgres store.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hongminglow/mealplan-be/internal/models"
	"github.com/hongminglow/mealplan-be/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store holds every table in maps guarded by one mutex.
type Store struct {
	mu          sync.Mutex
	now         func() time.Time
	seq         int64
	users       map[uuid.UUID]models.User
	meals       map[uuid.UUID]models.Meal
	planned     map[uuid.UUID]models.PlannedMeal
	ingredients map[uuid.UUID]models.Ingredient
	inventory   map[uuid.UUID]models.InventoryItem
	lists       map[uuid.UUID]models.ShoppingList

	// FailWith, when set, is returned by every operation.
	FailWith error
}

func New() *Store {
	return &Store{
		now:         time.Now,
		users:       map[uuid.UUID]models.User{},
		meals:       map[uuid.UUID]models.Meal{},
		planned:     map[uuid.UUID]models.PlannedMeal{},
		ingredients: map[uuid.UUID]models.Ingredient{},
		inventory:   map[uuid.UUID]models.InventoryItem{},
		lists:       map[uuid.UUID]models.ShoppingList{},
	}
}

func (s *Store) Users() storage.UserStore                 { return users{s} }
func (s *Store) Meals() storage.MealStore                 { return meals{s} }
func (s *Store) PlannedMeals() storage.PlannedMealStore   { return planned{s} }
func (s *Store) Ingredients() storage.IngredientStore     { return ingredients{s} }
func (s *Store) Inventory() storage.InventoryStore        { return inventory{s} }
func (s *Store) ShoppingLists() storage.ShoppingListStore { return lists{s} }

// lock acquires the mutex and reports the injected failure, if any.
func (s *Store) lock() error {
	s.mu.Lock()
	if s.FailWith != nil {
		s.mu.Unlock()
		return s.FailWith
	}
	return nil
}

// tick returns a strictly increasing timestamp so creation order is stable.
// Callers hold s.mu.
func (s *Store) tick() time.Time {
	s.seq++
	return s.now().Add(time.Duration(s.seq) * time.Millisecond)
}

type users struct{ s *Store }

func (u users) CreateUser(_ context.Context, user models.User) (models.User, error) {
	if err := u.s.lock(); err != nil {
		return models.User{}, err
	}
	defer u.s.mu.Unlock()
	for _, existing := range u.s.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return models.User{}, storage.ErrAlreadyExists
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = u.s.tick()
	u.s.users[user.ID] = user
	return user, nil
}

func (u users) FindByEmail(_ context.Context, email string) (models.User, error) {
	if err := u.s.lock(); err != nil {
		return models.User{}, err
	}
	defer u.s.mu.Unlock()
	for _, user := range u.s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

func (u users) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := u.FindByEmail(ctx, email)
	switch err {
	case nil:
		return true, nil
	case storage.ErrNotFound:
		return false, nil
	default:
		return false, err
	}
}

func (u users) ListUsers(_ context.Context) ([]models.UserOverview, error) {
	if err := u.s.lock(); err != nil {
		return nil, err
	}
	defer u.s.mu.Unlock()
	out := []models.UserOverview{}
	for _, user := range u.s.users {
		ov := models.UserOverview{ID: user.ID, Name: user.Name, Email: user.Email, IsAdmin: user.IsAdmin, CreatedAt: user.CreatedAt}
		for _, m := range u.s.meals {
			if m.UserID == user.ID {
				ov.Count.Meals++
			}
		}
		for _, i := range u.s.inventory {
			if i.UserID == user.ID {
				ov.Count.InventoryItems++
			}
		}
		for _, p := range u.s.planned {
			if p.UserID == user.ID {
				ov.Count.PlannedMeals++
			}
		}
		for _, l := range u.s.lists {
			if l.UserID == user.ID {
				ov.Count.ShoppingLists++
			}
		}
		out = append(out, ov)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (u users) SetAdmin(_ context.Context, id uuid.UUID, isAdmin bool) (models.User, error) {
	if err := u.s.lock(); err != nil {
		return models.User{}, err
	}
	defer u.s.mu.Unlock()
	user, ok := u.s.users[id]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	user.IsAdmin = isAdmin
	u.s.users[id] = user
	return user, nil
}

func (u users) DeleteUser(_ context.Context, id uuid.UUID) error {
	if err := u.s.lock(); err != nil {
		return err
	}
	defer u.s.mu.Unlock()
	if _, ok := u.s.users[id]; !ok {
		return storage.ErrNotFound
	}
	for k, v := range u.s.lists {
		if v.UserID == id {
			delete(u.s.lists, k)
		}
	}
	for k, v := range u.s.planned {
		if v.UserID == id {
			delete(u.s.planned, k)
		}
	}
	for k, v := range u.s.inventory {
		if v.UserID == id {
			delete(u.s.inventory, k)
		}
	}
	for k, v := range u.s.meals {
		if v.UserID == id {
			delete(u.s.meals, k)
		}
	}
	delete(u.s.users, id)
	return nil
}

type meals struct{ s *Store }

func (m meals) ListOwned(_ context.Context, owner uuid.UUID) ([]models.Meal, error) {
	if err := m.s.lock(); err != nil {
		return nil, err
	}
	defer m.s.mu.Unlock()
	out := []models.Meal{}
	for _, meal := range m.s.meals {
		if meal.UserID == owner {
			out = append(out, meal)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m meals) FindOwnedByID(_ context.Context, owner, id uuid.UUID) (models.Meal, error) {
	if err := m.s.lock(); err != nil {
		return models.Meal{}, err
	}
	defer m.s.mu.Unlock()
	meal, ok := m.s.meals[id]
	if !ok || meal.UserID != owner {
		return models.Meal{}, storage.ErrNotFound
	}
	return meal, nil
}

func (m meals) CreateOwned(_ context.Context, owner uuid.UUID, meal models.Meal) (models.Meal, error) {
	if err := m.s.lock(); err != nil {
		return models.Meal{}, err
	}
	defer m.s.mu.Unlock()
	if meal.ID == uuid.Nil {
		meal.ID = uuid.New()
	}
	meal.UserID = owner
	meal.CreatedAt = m.s.tick()
	meal.UpdatedAt = meal.CreatedAt
	m.s.meals[meal.ID] = meal
	return meal, nil
}

func (m meals) DeleteOwned(_ context.Context, owner, id uuid.UUID) error {
	if err := m.s.lock(); err != nil {
		return err
	}
	defer m.s.mu.Unlock()
	meal, ok := m.s.meals[id]
	if !ok || meal.UserID != owner {
		return storage.ErrNotFound
	}
	delete(m.s.meals, id)
	for k, p := range m.s.planned {
		if p.MealID == id {
			delete(m.s.planned, k)
		}
	}
	return nil
}

type planned struct{ s *Store }

func (p planned) ListOwned(_ context.Context, owner uuid.UUID) ([]models.PlannedMeal, error) {
	if err := p.s.lock(); err != nil {
		return nil, err
	}
	defer p.s.mu.Unlock()
	out := []models.PlannedMeal{}
	for _, pm := range p.s.planned {
		if pm.UserID == owner {
			pm.Meal = p.s.meals[pm.MealID].Ref()
			out = append(out, pm)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlannedDate.Before(out[j].PlannedDate) })
	return out, nil
}

func (p planned) CreateOwned(_ context.Context, owner uuid.UUID, pm models.PlannedMeal) (models.PlannedMeal, error) {
	if err := p.s.lock(); err != nil {
		return models.PlannedMeal{}, err
	}
	defer p.s.mu.Unlock()
	meal, ok := p.s.meals[pm.MealID]
	if !ok || meal.UserID != owner {
		return models.PlannedMeal{}, storage.ErrNotFound
	}
	if pm.ID == uuid.Nil {
		pm.ID = uuid.New()
	}
	if pm.Servings <= 0 {
		pm.Servings = meal.Servings
	}
	pm.UserID = owner
	pm.CreatedAt = p.s.tick()
	pm.Meal = meal.Ref()
	p.s.planned[pm.ID] = pm
	return pm, nil
}

func (p planned) DeleteOwned(_ context.Context, owner, id uuid.UUID) error {
	if err := p.s.lock(); err != nil {
		return err
	}
	defer p.s.mu.Unlock()
	pm, ok := p.s.planned[id]
	if !ok || pm.UserID != owner {
		return storage.ErrNotFound
	}
	delete(p.s.planned, id)
	return nil
}

type ingredients struct{ s *Store }

func (g ingredients) List(_ context.Context) ([]models.Ingredient, error) {
	if err := g.s.lock(); err != nil {
		return nil, err
	}
	defer g.s.mu.Unlock()
	out := []models.Ingredient{}
	for _, ing := range g.s.ingredients {
		out = append(out, ing)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (g ingredients) FindByID(_ context.Context, id uuid.UUID) (models.Ingredient, error) {
	if err := g.s.lock(); err != nil {
		return models.Ingredient{}, err
	}
	defer g.s.mu.Unlock()
	ing, ok := g.s.ingredients[id]
	if !ok {
		return models.Ingredient{}, storage.ErrNotFound
	}
	return ing, nil
}

func (g ingredients) Create(_ context.Context, ing models.Ingredient) (models.Ingredient, error) {
	if err := g.s.lock(); err != nil {
		return models.Ingredient{}, err
	}
	defer g.s.mu.Unlock()
	for _, existing := range g.s.ingredients {
		if existing.Name == ing.Name {
			return models.Ingredient{}, storage.ErrAlreadyExists
		}
	}
	if ing.ID == uuid.Nil {
		ing.ID = uuid.New()
	}
	ing.CreatedAt = g.s.tick()
	g.s.ingredients[ing.ID] = ing
	return ing, nil
}

type inventory struct{ s *Store }

func (v inventory) ListOwned(_ context.Context, owner uuid.UUID) ([]models.InventoryItem, error) {
	if err := v.s.lock(); err != nil {
		return nil, err
	}
	defer v.s.mu.Unlock()
	out := []models.InventoryItem{}
	for _, item := range v.s.inventory {
		if item.UserID == owner {
			item.Ingredient = v.s.ingredients[item.IngredientID].Ref()
			out = append(out, item)
		}
	}
	models.SortInventory(out)
	return out, nil
}

func (v inventory) CreateOwned(_ context.Context, owner uuid.UUID, item models.InventoryItem) (models.InventoryItem, error) {
	if err := v.s.lock(); err != nil {
		return models.InventoryItem{}, err
	}
	defer v.s.mu.Unlock()
	ing, ok := v.s.ingredients[item.IngredientID]
	if !ok {
		return models.InventoryItem{}, storage.ErrInvalidReference
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	item.UserID = owner
	item.CreatedAt = v.s.tick()
	item.UpdatedAt = item.CreatedAt
	item.Ingredient = ing.Ref()
	v.s.inventory[item.ID] = item
	return item, nil
}

func (v inventory) DeleteOwned(_ context.Context, owner, id uuid.UUID) error {
	if err := v.s.lock(); err != nil {
		return err
	}
	defer v.s.mu.Unlock()
	item, ok := v.s.inventory[id]
	if !ok || item.UserID != owner {
		return storage.ErrNotFound
	}
	delete(v.s.inventory, id)
	return nil
}

type lists struct{ s *Store }

func (l lists) ListOwned(_ context.Context, owner uuid.UUID) ([]models.ShoppingList, error) {
	if err := l.s.lock(); err != nil {
		return nil, err
	}
	defer l.s.mu.Unlock()
	out := []models.ShoppingList{}
	for _, list := range l.s.lists {
		if list.UserID == owner {
			list.Items = append([]models.ShoppingListItem{}, list.Items...)
			out = append(out, list)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (l lists) CreateOwned(_ context.Context, owner uuid.UUID, list models.ShoppingList) (models.ShoppingList, error) {
	if err := l.s.lock(); err != nil {
		return models.ShoppingList{}, err
	}
	defer l.s.mu.Unlock()
	if list.ID == uuid.Nil {
		list.ID = uuid.New()
	}
	items := make([]models.ShoppingListItem, 0, len(list.Items))
	for _, item := range list.Items {
		ing, ok := l.s.ingredients[item.IngredientID]
		if !ok {
			return models.ShoppingList{}, storage.ErrInvalidReference
		}
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.ShoppingListID = list.ID
		item.Ingredient = ing.Ref()
		items = append(items, item)
	}
	list.Items = items
	list.UserID = owner
	list.CreatedAt = l.s.tick()
	list.UpdatedAt = list.CreatedAt
	l.s.lists[list.ID] = list
	return list, nil
}

func (l lists) DeleteOwned(_ context.Context, owner, id uuid.UUID) error {
	if err := l.s.lock(); err != nil {
		return err
	}
	defer l.s.mu.Unlock()
	list, ok := l.s.lists[id]
	if !ok || list.UserID != owner {
		return storage.ErrNotFound
	}
	delete(l.s.lists, id)
	return nil
}

func (l lists) SetItemPurchased(_ context.Context, owner, listID, itemID uuid.UUID, purchased bool) (models.ShoppingListItem, error) {
	if err := l.s.lock(); err != nil {
		return models.ShoppingListItem{}, err
	}
	defer l.s.mu.Unlock()
	list, ok := l.s.lists[listID]
	if !ok || list.UserID != owner {
		return models.ShoppingListItem{}, storage.ErrNotFound
	}
	for i := range list.Items {
		if list.Items[i].ID == itemID {
			list.Items[i].IsPurchased = purchased
			list.IsCompleted = list.PurchasedCount() == len(list.Items)
			l.s.lists[listID] = list
			return list.Items[i], nil
		}
	}
	return models.ShoppingListItem{}, storage.ErrNotFound
}
