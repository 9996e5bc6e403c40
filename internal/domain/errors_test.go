package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{name: "nil error", err: nil, want: ""},
		{name: "validation sentinel", err: ErrItemQtyInvalid, want: KindValidation},
		{name: "wrapped validation", err: fmt.Errorf("add item: %w", ErrUnknownProduct), want: KindValidation},
		{name: "not found", err: ErrOrderNotFound, want: KindNotFound},
		{name: "conflict", err: ErrCustomerExists, want: KindConflict},
		{name: "io", err: fmt.Errorf("%w: disk full", ErrBackupFailed), want: KindIO},
		{name: "unclassified", err: errors.New("boom"), want: KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSentinelsWrapExactlyOneKind(t *testing.T) {
	kinds := []error{ErrValidation, ErrNotFound, ErrConflict, ErrIO}
	sentinels := []error{
		ErrCustomerNameRequired, ErrProductNameRequired, ErrPriceInvalid,
		ErrItemQtyInvalid, ErrItemPriceInvalid, ErrItemsRequired,
		ErrItemIndexOutOfRange, ErrTotalMismatch, ErrDateInvalid,
		ErrStatusInvalid, ErrUnknownCustomer, ErrUnknownProduct,
		ErrTransitionForbidden, ErrOrderNotFound, ErrCustomerNotFound,
		ErrProductNotFound, ErrCustomerExists, ErrProductExists,
		ErrBackupFailed, ErrBackupUnsupported,
	}

	for _, sentinel := range sentinels {
		matched := 0
		for _, kind := range kinds {
			if errors.Is(sentinel, kind) {
				matched++
			}
		}
		if matched != 1 {
			t.Errorf("%v matches %d kinds, want 1", sentinel, matched)
		}
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(fmt.Errorf("get: %w", ErrCustomerNotFound)) {
		t.Error("IsNotFound should match wrapped customer not found")
	}
	if IsNotFound(ErrCustomerExists) {
		t.Error("IsNotFound should not match conflict")
	}
	if KindOf(ErrProductExists) != KindConflict {
		t.Error("product exists should be a conflict")
	}
}
