// Package ecs runs armature animators inside a [Donburi] world.
//
// Store each entity's animator in a component created with
// [NewAnimatorComponent], tick them all once per frame with [System.Update],
// and consume fired sound, particle and instruction keyframes as
// [KeyframeEventType] events.
//
// Usage:
//
//	anims := ecs.NewAnimatorComponent[Player]()
//	entity := world.Create(anims)
//	ecs.Attach(world, world.Entry(entity), anims, animator)
//
//	sys := ecs.NewSystem(anims)
//	// each frame
//	if err := sys.Update(world, renderTime); err != nil {
//		log.Print(err)
//	}
//	ecs.KeyframeEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
