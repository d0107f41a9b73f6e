// Package armature evaluates and blends skeletal keyframe animations.
//
// Every frame the host calls [Animator.Tick] with its render time in ticks
// (20 per second). Each channel ([Controller]) asks its predicate what to
// play, cross-fades into new animations, advances or loops the running one
// and writes the resulting rotation, position and scale into the host's bones
// through the [Bone] interface. Components no channel wrote this frame glide
// back to their rest pose.
//
// The engine produces per-axis scalars only. Composing them into matrices,
// loading animation files and rendering are left to the host.
//
// # Quick start
//
//	skel := armature.NewSkeleton()
//	skel.MustAddBone("", armature.NewBasicBone(armature.RestPose("body", mgl32.Vec3{})))
//	skel.MustAddBone("body", armature.NewBasicBone(armature.RestPose("head", mgl32.Vec3{0, 24, 0})))
//
//	nod := armature.MustAnimation(armature.Animation{
//		Name: "nod",
//		Loop: true,
//		Bones: []armature.BoneAnimation{{
//			Bone: "head",
//			Rotation: armature.VectorTimeline{X: armature.MustTimeline(
//				armature.Keyframe{Length: 10, Start: armature.Authored(0), End: armature.Authored(20)},
//				armature.Keyframe{Length: 10, Start: armature.Authored(20), End: armature.Authored(0),
//					Easing: easing.Spec{Kind: easing.InOutSine}},
//			)},
//		}},
//	})
//
//	anim := armature.NewAnimator(player, skel, armature.NewCatalog[Player](nod))
//	anim.AddController(armature.ControllerConfig[Player]{
//		Name:             "base",
//		TransitionLength: 5,
//		Predicate: func(c *armature.Controller[Player], ev *armature.Event[Player]) armature.Decision {
//			return armature.Continue(armature.Play("nod"))
//		},
//	})
//
//	// each frame
//	if err := anim.Tick(renderTime, nil, env); err != nil {
//		log.Fatal(err)
//	}
//
// # Timelines
//
// A [Timeline] is a gap-free list of [Keyframe]s for one scalar. Sampling
// past the end clamps to the last value, and zero-length keyframes snap to
// their end value. Rotation keyframes are authored in degrees; [Authored]
// values are converted to radians (X and Y negated) while [Constant] values
// pass through as-is. Keyframe values may also be live formulas from the expr
// package, which read the query.anim_time and query.life_time values each
// controller publishes before it samples.
//
// Easing curves live in the easing package. A keyframe whose easing is
// [easing.Custom] uses the controller's [ControllerConfig].EaseOverride.
//
// # Events
//
// Sound, particle and instruction keyframes fire at most once per playback
// and re-arm every time a looping animation wraps. Register listeners on the
// [ControllerConfig] or with [Controller.OnSound] and friends.
//
// # ECS integration
//
// The armature/ecs module ticks animators stored on [Donburi] entities and
// republishes keyframe events as Donburi events.
//
// [Donburi]: https://github.com/yohamta/donburi
package armature
