package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Veraticus/akihabara-market/internal/common"
	"github.com/Veraticus/akihabara-market/internal/model"
)

func TestSQLiteStorage_CustomerLifecycle(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	before := time.Now().Add(-time.Second)
	customer := &model.Customer{Name: "Sakura Haruno", Email: "sakura@example.com", Phone: "600 123 456"}
	if err := store.CreateCustomer(ctx, customer); err != nil {
		t.Fatalf("CreateCustomer() error = %v", err)
	}
	if customer.ID <= 0 {
		t.Fatalf("CreateCustomer() did not assign an ID")
	}
	if customer.Phone != "600123456" {
		t.Errorf("phone not normalized: %q", customer.Phone)
	}

	got, err := store.GetCustomer(ctx, customer.ID)
	if err != nil {
		t.Fatalf("GetCustomer() error = %v", err)
	}
	if got.Name != customer.Name || got.Email != customer.Email || got.Phone != customer.Phone {
		t.Errorf("GetCustomer() = %+v, want %+v", got, customer)
	}
	if got.RegisteredAt.Before(before) || got.RegisteredAt.After(time.Now().Add(time.Second)) {
		t.Errorf("RegisteredAt = %v, want close to now", got.RegisteredAt)
	}
	registeredAt := got.RegisteredAt

	got.Name = "Sakura Uchiha"
	got.Email = "sakura.uchiha@example.com"
	if err := store.UpdateCustomer(ctx, got); err != nil {
		t.Fatalf("UpdateCustomer() error = %v", err)
	}

	updated, err := store.GetCustomer(ctx, customer.ID)
	if err != nil {
		t.Fatalf("GetCustomer() after update error = %v", err)
	}
	if updated.Name != "Sakura Uchiha" || updated.Email != "sakura.uchiha@example.com" {
		t.Errorf("update not applied: %+v", updated)
	}
	if !updated.RegisteredAt.Equal(registeredAt) {
		t.Errorf("RegisteredAt changed on update: %v -> %v", registeredAt, updated.RegisteredAt)
	}

	if err := store.DeleteCustomer(ctx, customer.ID); err != nil {
		t.Fatalf("DeleteCustomer() error = %v", err)
	}
	if _, err := store.GetCustomer(ctx, customer.ID); !errors.Is(err, ErrCustomerNotFound) {
		t.Errorf("GetCustomer() after delete error = %v, want ErrCustomerNotFound", err)
	}
	if err := store.DeleteCustomer(ctx, customer.ID); !errors.Is(err, ErrCustomerNotFound) {
		t.Errorf("second DeleteCustomer() error = %v, want ErrCustomerNotFound", err)
	}
}

func TestSQLiteStorage_DuplicateEmail(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	first := &model.Customer{Name: "Naruto", Email: "naruto@konoha.jp", Phone: "611000111"}
	second := &model.Customer{Name: "Hinata", Email: "hinata@konoha.jp", Phone: "611000222"}
	for _, c := range []*model.Customer{first, second} {
		if err := store.CreateCustomer(ctx, c); err != nil {
			t.Fatalf("CreateCustomer() error = %v", err)
		}
	}

	clash := &model.Customer{Name: "Imposter", Email: "NARUTO@konoha.jp", Phone: "611000333"}
	err := store.CreateCustomer(ctx, clash)
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("CreateCustomer() error = %v, want ErrDuplicateEmail", err)
	}
	if !errors.Is(err, common.ErrDuplicateEntry) {
		t.Errorf("ErrDuplicateEmail does not wrap common.ErrDuplicateEntry")
	}

	second.Email = "naruto@konoha.jp"
	if err := store.UpdateCustomer(ctx, second); !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("UpdateCustomer() error = %v, want ErrDuplicateEmail", err)
	}
}

func TestSQLiteStorage_GetCustomerByPhone(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	customer := &model.Customer{Name: "Light", Email: "light@example.jp", Phone: "+81 90-1234-5678"}
	if err := store.CreateCustomer(ctx, customer); err != nil {
		t.Fatalf("CreateCustomer() error = %v", err)
	}

	got, err := store.GetCustomerByPhone(ctx, "+81 (90) 1234 5678")
	if err != nil {
		t.Fatalf("GetCustomerByPhone() error = %v", err)
	}
	if got.ID != customer.ID {
		t.Errorf("GetCustomerByPhone() ID = %d, want %d", got.ID, customer.ID)
	}

	if _, err := store.GetCustomerByPhone(ctx, "699999999"); !errors.Is(err, ErrCustomerNotFound) {
		t.Errorf("unknown phone error = %v, want ErrCustomerNotFound", err)
	}
	if _, err := store.GetCustomerByPhone(ctx, " "); !errors.Is(err, ErrEmptyString) {
		t.Errorf("blank phone error = %v, want ErrEmptyString", err)
	}
}

func TestSQLiteStorage_ListCustomers(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	names := []string{"Asuka", "Rei", "Misato"}
	for i, name := range names {
		c := &model.Customer{
			Name:  name,
			Email: name + "@nerv.jp",
			Phone: "60000000" + string(rune('1'+i)),
		}
		if err := store.CreateCustomer(ctx, c); err != nil {
			t.Fatalf("CreateCustomer(%s) error = %v", name, err)
		}
	}

	customers, err := store.ListCustomers(ctx)
	if err != nil {
		t.Fatalf("ListCustomers() error = %v", err)
	}
	if len(customers) != len(names) {
		t.Fatalf("ListCustomers() returned %d customers, want %d", len(customers), len(names))
	}
	for i, c := range customers {
		if c.Name != names[i] {
			t.Errorf("customers[%d].Name = %q, want %q", i, c.Name, names[i])
		}
	}
}

func TestSQLiteStorage_CreateCustomerInvalid(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	bad := &model.Customer{Name: "Nobody", Email: "nobody", Phone: "600123456"}
	if err := store.CreateCustomer(ctx, bad); !errors.Is(err, model.ErrInvalidCustomer) {
		t.Errorf("CreateCustomer() error = %v, want ErrInvalidCustomer", err)
	}
	if err := store.CreateCustomer(ctx, nil); !errors.Is(err, ErrNilParameter) {
		t.Errorf("CreateCustomer(nil) error = %v, want ErrNilParameter", err)
	}
}
