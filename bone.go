package armature

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Kind is a transform kind of a bone.
type Kind uint8

const (
	Rotation Kind = iota
	Position
	Scale

	numKinds = 3
)

func (k Kind) String() string {
	switch k {
	case Rotation:
		return "rotation"
	case Position:
		return "position"
	case Scale:
		return "scale"
	}
	return "unknown"
}

// Snapshot is an immutable copy of a bone's transform. Rotation is in radians.
type Snapshot struct {
	Name     string
	Rotation mgl32.Vec3
	Position mgl32.Vec3
	Scale    mgl32.Vec3
	Pivot    mgl32.Vec3
	Hidden   bool
}

// RestPose returns an identity snapshot: no rotation, no offset, unit scale.
func RestPose(name string, pivot mgl32.Vec3) Snapshot {
	return Snapshot{Name: name, Scale: mgl32.Vec3{1, 1, 1}, Pivot: pivot}
}

// Component returns the vector of kind k.
func (s Snapshot) Component(k Kind) mgl32.Vec3 {
	switch k {
	case Position:
		return s.Position
	case Scale:
		return s.Scale
	}
	return s.Rotation
}

// Bone is the pose view of one bone in the host's model. The engine only
// touches bones through this interface.
type Bone interface {
	Name() string
	Hidden() bool
	Pivot() mgl32.Vec3
	// Component returns the current rotation, position or scale.
	Component(k Kind) mgl32.Vec3
	SetComponent(k Kind, v mgl32.Vec3)
	// Rest is the bone's source pose. Animations apply on top of it and idle
	// components decay back to it.
	Rest() Snapshot
	Tracker() *ResetTracker
}

// SaveSnapshot copies the current transform of b.
func SaveSnapshot(b Bone) Snapshot {
	return Snapshot{
		Name:     b.Name(),
		Rotation: b.Component(Rotation),
		Position: b.Component(Position),
		Scale:    b.Component(Scale),
		Pivot:    b.Pivot(),
		Hidden:   b.Hidden(),
	}
}

// BoneTree is the host's bone hierarchy.
type BoneTree interface {
	AllBones() []Bone
	TopLevelBones() []Bone
	BoneByName(name string) (Bone, bool)
}

// BasicBone is a ready-made Bone for hosts without their own bone type.
type BasicBone struct {
	rest     Snapshot
	current  [numKinds]mgl32.Vec3
	hidden   bool
	parent   *BasicBone
	children []*BasicBone
	tracker  ResetTracker
}

// NewBasicBone creates a bone posed at rest.
func NewBasicBone(rest Snapshot) *BasicBone {
	b := &BasicBone{rest: rest, hidden: rest.Hidden}
	for k := Kind(0); k < numKinds; k++ {
		b.current[k] = rest.Component(k)
	}
	return b
}

func (b *BasicBone) Name() string                      { return b.rest.Name }
func (b *BasicBone) Hidden() bool                      { return b.hidden }
func (b *BasicBone) SetHidden(h bool)                  { b.hidden = h }
func (b *BasicBone) Pivot() mgl32.Vec3                 { return b.rest.Pivot }
func (b *BasicBone) Component(k Kind) mgl32.Vec3       { return b.current[k] }
func (b *BasicBone) SetComponent(k Kind, v mgl32.Vec3) { b.current[k] = v }
func (b *BasicBone) Rest() Snapshot                    { return b.rest }
func (b *BasicBone) Tracker() *ResetTracker            { return &b.tracker }

// Parent returns the parent bone, or nil for a top-level bone.
func (b *BasicBone) Parent() *BasicBone { return b.parent }

// Children returns the direct children. The slice must not be modified.
func (b *BasicBone) Children() []*BasicBone { return b.children }

// Skeleton is a BoneTree of BasicBones, kept in insertion order.
type Skeleton struct {
	all    []Bone
	top    []Bone
	byName map[string]*BasicBone
}

// NewSkeleton returns an empty skeleton.
func NewSkeleton() *Skeleton {
	return &Skeleton{byName: make(map[string]*BasicBone)}
}

// AddBone attaches b under the bone named parent, or at the top level when
// parent is empty. Bone names must be unique.
func (s *Skeleton) AddBone(parent string, b *BasicBone) error {
	if _, dup := s.byName[b.Name()]; dup {
		return fmt.Errorf("armature: duplicate bone %q", b.Name())
	}
	if parent == "" {
		s.top = append(s.top, b)
	} else {
		p, ok := s.byName[parent]
		if !ok {
			return fmt.Errorf("armature: bone %q: parent %q not found", b.Name(), parent)
		}
		b.parent = p
		p.children = append(p.children, b)
	}
	s.byName[b.Name()] = b
	s.all = append(s.all, b)
	return nil
}

// MustAddBone is like AddBone but panics on error.
func (s *Skeleton) MustAddBone(parent string, b *BasicBone) *BasicBone {
	if err := s.AddBone(parent, b); err != nil {
		panic(err)
	}
	return b
}

func (s *Skeleton) AllBones() []Bone      { return s.all }
func (s *Skeleton) TopLevelBones() []Bone { return s.top }

func (s *Skeleton) BoneByName(name string) (Bone, bool) {
	b, ok := s.byName[name]
	if !ok {
		return nil, false
	}
	return b, true
}

// Basic returns the concrete bone named name.
func (s *Skeleton) Basic(name string) *BasicBone {
	return s.byName[name]
}
