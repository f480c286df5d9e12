package service

import (
	"context"
	"testing"

	"github.com/mgdevhub/gym-meals/internal/model"
	"github.com/mgdevhub/gym-meals/internal/repository"
	"github.com/mgdevhub/gym-meals/internal/service/mocks"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func groceryFixture() (*GroceryService, *mocks.MockStore) {
	store := &mocks.MockStore{}
	return NewGroceryService(store), store
}

func TestGroceryService_MergeItemsDeduplicates(t *testing.T) {
	svc, store := groceryFixture()

	existing := []model.GroceryItem{
		{ID: "r1-i1", Name: "Chicken breast", Amount: "200g"},
	}
	raw, _ := json.Marshal(existing)
	store.On("Get", mock.Anything, groceryListKey(testDevice)).Return(string(raw), nil)
	store.On("Set", mock.Anything, groceryListKey(testDevice), mock.Anything).Return(nil)

	added, list := svc.MergeItems(context.Background(), testDevice, []model.GroceryItem{
		{ID: "r1-i1", Name: "Chicken breast", Amount: "200g"}, // duplicate
		{ID: "r1-i2", Name: "White rice", Amount: "150g"},
	})

	assert.Equal(t, 1, added)
	assert.Len(t, list, 2)

	// merging the same recipe again adds nothing and writes nothing
	added, list = svc.MergeItems(context.Background(), testDevice, []model.GroceryItem{
		{ID: "r1-i1", Name: "Chicken breast"},
		{ID: "r1-i2", Name: "White rice"},
	})
	assert.Equal(t, 0, added)
	assert.Len(t, list, 2)
	store.AssertNumberOfCalls(t, "Set", 1)
}

func TestGroceryService_AddItemAssignsID(t *testing.T) {
	svc, store := groceryFixture()

	store.On("Get", mock.Anything, groceryListKey(testDevice)).
		Return("", repository.ErrNotFound)
	store.On("Set", mock.Anything, groceryListKey(testDevice), mock.Anything).Return(nil)

	list := svc.AddItem(context.Background(), testDevice, model.GroceryItem{Name: "Eggs"})

	assert.Len(t, list, 1)
	assert.NotEmpty(t, list[0].ID)
	assert.Equal(t, "Eggs", list[0].Name)
}

func TestGroceryService_RemoveItem(t *testing.T) {
	svc, store := groceryFixture()

	existing := []model.GroceryItem{
		{ID: "a", Name: "Eggs"},
		{ID: "b", Name: "Oats"},
	}
	raw, _ := json.Marshal(existing)
	store.On("Get", mock.Anything, groceryListKey(testDevice)).Return(string(raw), nil)
	store.On("Set", mock.Anything, groceryListKey(testDevice), mock.Anything).Return(nil)

	list := svc.RemoveItem(context.Background(), testDevice, "a")

	assert.Len(t, list, 1)
	assert.Equal(t, "b", list[0].ID)

	// removing an unknown id changes nothing and writes nothing
	list = svc.RemoveItem(context.Background(), testDevice, "missing")
	assert.Len(t, list, 1)
	store.AssertNumberOfCalls(t, "Set", 1)
}

func TestGroceryService_ClearRemovesKey(t *testing.T) {
	svc, store := groceryFixture()

	store.On("Remove", mock.Anything, groceryListKey(testDevice)).Return(nil).Once()

	svc.Clear(context.Background(), testDevice)

	list := svc.List(context.Background(), testDevice)
	assert.Empty(t, list)
	store.AssertExpectations(t)
}

func TestGroceryService_WriteFailureKeepsSessionState(t *testing.T) {
	svc, store := groceryFixture()

	store.On("Get", mock.Anything, groceryListKey(testDevice)).
		Return("", repository.ErrNotFound)
	store.On("Set", mock.Anything, groceryListKey(testDevice), mock.Anything).
		Return(assert.AnError)

	svc.AddItem(context.Background(), testDevice, model.GroceryItem{Name: "Milk"})

	list := svc.List(context.Background(), testDevice)
	assert.Len(t, list, 1)
	assert.Equal(t, "Milk", list[0].Name)
}
