package catalog

import (
	"fmt"
	"slices"
)

// Kind identifies one entry of the signal catalog.
type Kind uint16

// Invalid is the zero Kind. It is never a catalog entry.
const Invalid Kind = 0

// Kind returns k, so a bare Kind can be used wherever a tagged value is expected.
func (k Kind) Kind() Kind {
	return k
}

// Valid reports whether k is an entry of the catalog.
func (k Kind) Valid() bool {
	return k != Invalid && int(k) < len(names)
}

// String returns the catalog name of k.
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", uint16(k))
	}
	return names[k]
}

// MarshalText implements encoding.TextMarshaler using the catalog name.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("catalog: cannot marshal invalid kind %d", uint16(k))
	}
	return []byte(names[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown names are rejected.
func (k *Kind) UnmarshalText(text []byte) error {
	found, ok := Lookup(string(text))
	if !ok {
		return fmt.Errorf("catalog: unknown signal kind %q", string(text))
	}
	*k = found
	return nil
}

// Lookup returns the Kind registered under name.
func Lookup(name string) (Kind, bool) {
	i, ok := slices.BinarySearch(names[1:], name)
	if !ok {
		return Invalid, false
	}
	return Kind(i + 1), true
}

// MustLookup is like Lookup but panics when name is not in the catalog.
func MustLookup(name string) Kind {
	k, ok := Lookup(name)
	if !ok {
		panic(fmt.Sprintf("catalog: unknown signal kind %q", name))
	}
	return k
}

// Len returns the number of kinds in the catalog.
func Len() int {
	return len(names) - 1
}

// All returns every kind in catalog (name) order.
func All() []Kind {
	kinds := make([]Kind, 0, Len())
	for i := 1; i < len(names); i++ {
		kinds = append(kinds, Kind(i))
	}
	return kinds
}

// Names returns the catalog names in order.
func Names() []string {
	return slices.Clone(names[1:])
}
