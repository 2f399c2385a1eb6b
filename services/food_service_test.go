package services

import (
	"errors"
	"testing"
	"time"
)

func TestCreateFoodValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewFoodService(db)

	if _, err := svc.Create(FoodDraft{FoodName: "", KcalPerG: 1.2}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("empty name: err = %v, want ErrInvalidArgument", err)
	}
	if _, err := svc.Create(FoodDraft{FoodName: "bad", KcalPerG: 0}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("zero density: err = %v, want ErrInvalidArgument", err)
	}
	if _, err := svc.Create(FoodDraft{FoodName: "bad2", KcalPerG: -1}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("negative density: err = %v, want ErrInvalidArgument", err)
	}
}

func TestListFoodsOrderedByName(t *testing.T) {
	db := newTestDB(t)
	mustFood(t, db, "Tuna", 1.1)
	mustFood(t, db, "Chicken", 2)

	foods, err := NewFoodService(db).List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(foods) != 2 || foods[0].FoodName != "Chicken" {
		t.Fatalf("list = %+v, want name-ordered with Chicken first", foods)
	}
}

func TestDeleteFoodConflictWhenReferenced(t *testing.T) {
	db := newTestDB(t)
	food := mustFood(t, db, "Salmon", 1.2)
	mustMeal(t, db, MealDraft{Dt: at(time.Now()), FoodID: &food.ID, Grams: f(50)})

	svc := NewFoodService(db)
	if err := svc.Delete(food.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("delete referenced food: err = %v, want ErrConflict", err)
	}

	free := mustFood(t, db, "Unused", 3)
	if err := svc.Delete(free.ID); err != nil {
		t.Fatalf("delete unreferenced food: %v", err)
	}
	if err := svc.Delete(free.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete twice: err = %v, want ErrNotFound", err)
	}
}
