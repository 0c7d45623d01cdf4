package db

import (
	"context"
	"errors"

	"github.com/jakechorley/connect-care/pkg/core/model"
)

// ErrNotFound is returned when a record id does not exist in a store.
// It is a benign result: callers check for it with errors.Is and carry on.
var ErrNotFound = errors.New("record not found")

// ErrInvalidPatch is returned when a patch cannot be applied to a record's fields
var ErrInvalidPatch = errors.New("invalid patch")

// DefaultListLimit matches the page size the list screens request
const DefaultListLimit = 100

// DefaultSort lists newest records first
const DefaultSort = "-created_date"

// Patch is a partial record keyed by JSON field name.
// id, created_date and updated_date are owned by the store and ignored.
type Patch map[string]any

// RecordStore defines CRUD-shaped access to one entity kind's collection
type RecordStore[T any] interface {
	List(ctx context.Context, sortSpec string, limit int) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, draft T) (T, error)
	Update(ctx context.Context, id string, patch Patch) (T, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// Lister is the read side of a RecordStore
type Lister[T any] interface {
	List(ctx context.Context, sortSpec string, limit int) ([]T, error)
}

// Creator is the write side used by form submission
type Creator[T any] interface {
	Create(ctx context.Context, draft T) (T, error)
}

// Entity is the pointer constraint stores need to manage a record type in place
type Entity[T any] interface {
	*T
	Metadata() *model.Meta
	Normalize()
	Clone() T
}

// Store aliases for the four record kinds
type (
	EmergencyStore = RecordStore[model.Emergency]
	NGOStore       = RecordStore[model.NGO]
	VolunteerStore = RecordStore[model.Volunteer]
	ResourceStore  = RecordStore[model.Resource]
)
