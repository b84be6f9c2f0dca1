package pl0

import "errors"

// MaxScopeSize is the default number of declarations a scope can hold.
const MaxScopeSize = 4096

var (
	ErrScopeFull       = errors.New("scope is full")
	ErrAlreadyDeclared = errors.New("identifier is already declared")
)

type IdentKind int

const (
	KindConstant IdentKind = iota
	KindVariable
)

func (k IdentKind) String() string {
	switch k {
	case KindConstant:
		return "constant"
	case KindVariable:
		return "variable"
	default:
		return "unknown"
	}
}

// IdentAttrs are the attributes recorded for a declared identifier. Offset
// is the position of the declaration in the scope, in insertion order.
type IdentAttrs struct {
	Loc    Location
	Kind   IdentKind
	Offset uint
}

// Scope is the storage the scope checker declares into. A nested-scope
// implementation only has to satisfy this interface.
type Scope interface {
	Insert(name string, attrs *IdentAttrs) error
	Lookup(name string) *IdentAttrs
	Size() uint
	Full() bool
}

type SymbolEntry struct {
	Name  string
	Attrs *IdentAttrs
}

// SymbolTable is a single flat scope. Lookups scan the entries linearly.
type SymbolTable struct {
	entries  []SymbolEntry
	capacity uint
}

func NewSymbolTable() *SymbolTable {
	return NewSymbolTableWithCapacity(MaxScopeSize)
}

func NewSymbolTableWithCapacity(capacity uint) *SymbolTable {
	if capacity == 0 {
		capacity = MaxScopeSize
	}

	return &SymbolTable{capacity: capacity}
}

// Insert adds name to the table. It fails with ErrAlreadyDeclared if name is
// present and with ErrScopeFull once the capacity is reached.
func (t *SymbolTable) Insert(name string, attrs *IdentAttrs) error {
	if t.Lookup(name) != nil {
		return ErrAlreadyDeclared
	}

	if t.Full() {
		return ErrScopeFull
	}

	t.entries = append(t.entries, SymbolEntry{Name: name, Attrs: attrs})
	return nil
}

func (t *SymbolTable) Lookup(name string) *IdentAttrs {
	for _, e := range t.entries {
		if e.Name == name {
			return e.Attrs
		}
	}

	return nil
}

// Size is the number of declarations, which is also the next free offset.
func (t *SymbolTable) Size() uint {
	return uint(len(t.entries))
}

func (t *SymbolTable) Full() bool {
	return t.Size() >= t.capacity
}

func (t *SymbolTable) Capacity() uint {
	return t.capacity
}

// Entries returns a copy of the table in declaration order.
func (t *SymbolTable) Entries() []SymbolEntry {
	entries := make([]SymbolEntry, len(t.entries))
	copy(entries, t.entries)

	return entries
}
