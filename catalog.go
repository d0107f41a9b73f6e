package armature

import (
	"fmt"
	"slices"
)

// Library resolves animation names for an owner.
type Library[T any] interface {
	Animation(owner *T, name string) (*Animation, bool)
}

// LibraryFunc adapts a function to Library.
type LibraryFunc[T any] func(owner *T, name string) (*Animation, bool)

// Animation calls f.
func (f LibraryFunc[T]) Animation(owner *T, name string) (*Animation, bool) {
	return f(owner, name)
}

// Catalog is a Library backed by a fixed table. It ignores the owner, so one
// Catalog can serve every object that shares a model.
type Catalog[T any] struct {
	anims map[string]*Animation
}

// NewCatalog returns a Catalog holding anims.
func NewCatalog[T any](anims ...*Animation) *Catalog[T] {
	c := &Catalog[T]{anims: make(map[string]*Animation, len(anims))}
	for _, a := range anims {
		c.anims[a.Name] = a
	}
	return c
}

// Add registers a. Names must be unique.
func (c *Catalog[T]) Add(a *Animation) error {
	if _, dup := c.anims[a.Name]; dup {
		return fmt.Errorf("armature: duplicate animation %q", a.Name)
	}
	c.anims[a.Name] = a
	return nil
}

func (c *Catalog[T]) Animation(_ *T, name string) (*Animation, bool) {
	a, ok := c.anims[name]
	return a, ok
}

// Names returns the registered names in sorted order.
func (c *Catalog[T]) Names() []string {
	names := make([]string, 0, len(c.anims))
	for n := range c.anims {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
