package carve

import (
	"sort"

	"github.com/tanema/gween/ease"
)

// Interpolation selects the easing curve applied between a keyframe
// and its successor.
type Interpolation uint8

const (
	// InterpolationInstant holds the keyframe's transform until the
	// next keyframe starts.
	InterpolationInstant Interpolation = iota
	InterpolationLinear
	InterpolationQuadEaseIn
	InterpolationQuadEaseOut
	InterpolationQuadEaseInOut
	InterpolationCubicEaseIn
	InterpolationCubicEaseOut
	InterpolationCubicEaseInOut
)

// String returns the interpolation's name.
func (i Interpolation) String() string {
	switch i {
	case InterpolationInstant:
		return "Instant"
	case InterpolationLinear:
		return "Linear"
	case InterpolationQuadEaseIn:
		return "QuadEaseIn"
	case InterpolationQuadEaseOut:
		return "QuadEaseOut"
	case InterpolationQuadEaseInOut:
		return "QuadEaseInOut"
	case InterpolationCubicEaseIn:
		return "CubicEaseIn"
	case InterpolationCubicEaseOut:
		return "CubicEaseOut"
	case InterpolationCubicEaseInOut:
		return "CubicEaseInOut"
	}
	return "Unknown"
}

// easing returns the gween curve for the interpolation. Instant has no
// curve; callers handle it before easing.
func (i Interpolation) easing() ease.TweenFunc {
	switch i {
	case InterpolationQuadEaseIn:
		return ease.InQuad
	case InterpolationQuadEaseOut:
		return ease.OutQuad
	case InterpolationQuadEaseInOut:
		return ease.InOutQuad
	case InterpolationCubicEaseIn:
		return ease.InCubic
	case InterpolationCubicEaseOut:
		return ease.OutCubic
	case InterpolationCubicEaseInOut:
		return ease.InOutCubic
	}
	return ease.Linear
}

// Transform is a node-local placement: translation, rotation as euler
// degrees, and per-axis scale.
type Transform struct {
	Translation Vec3
	Rotation    Vec3
	Scale       Vec3
}

// IdentityTransform returns the no-op transform.
func IdentityTransform() Transform {
	return Transform{Scale: Vec3{1, 1, 1}}
}

// KeyFrame pins a transform to an animation frame. The interpolation
// describes how to reach the NEXT keyframe from this one.
type KeyFrame struct {
	Frame         int
	Interpolation Interpolation
	// LongRotation asks for the long way around when interpolating
	// the rotation between this keyframe and the next.
	LongRotation bool
	Transform    Transform
}

// AddKeyFrame inserts kf into the node's keyframe list, kept sorted by
// frame. A keyframe at an existing frame replaces it.
func (n *Node) AddKeyFrame(kf KeyFrame) {
	i := sort.Search(len(n.keyFrames), func(i int) bool {
		return n.keyFrames[i].Frame >= kf.Frame
	})
	if i < len(n.keyFrames) && n.keyFrames[i].Frame == kf.Frame {
		n.keyFrames[i] = kf
		return
	}
	n.keyFrames = append(n.keyFrames, KeyFrame{})
	copy(n.keyFrames[i+1:], n.keyFrames[i:])
	n.keyFrames[i] = kf
}

// KeyFrames returns the node's keyframes in frame order. The returned
// slice MUST NOT be mutated by the caller.
func (n *Node) KeyFrames() []KeyFrame { return n.keyFrames }

// TransformAt returns the node's transform at the given frame,
// interpolating between the surrounding keyframes with the earlier
// keyframe's easing curve. A node without keyframes is at identity;
// frames outside the keyframe range clamp to the nearest keyframe.
func (n *Node) TransformAt(frame int) Transform {
	kfs := n.keyFrames
	if len(kfs) == 0 {
		return IdentityTransform()
	}
	if frame <= kfs[0].Frame {
		return kfs[0].Transform
	}
	last := kfs[len(kfs)-1]
	if frame >= last.Frame {
		return last.Transform
	}
	i := sort.Search(len(kfs), func(i int) bool {
		return kfs[i].Frame > frame
	})
	from, to := kfs[i-1], kfs[i]
	if from.Interpolation == InterpolationInstant {
		return from.Transform
	}
	t := float32(frame - from.Frame)
	d := float32(to.Frame - from.Frame)
	fn := from.Interpolation.easing()
	lerp := func(b, c float64) float64 {
		return float64(fn(t, float32(b), float32(c-b), d))
	}
	var out Transform
	for a := 0; a < 3; a++ {
		out.Translation[a] = lerp(from.Transform.Translation[a], to.Transform.Translation[a])
		out.Rotation[a] = lerp(from.Transform.Rotation[a], to.Transform.Rotation[a])
		out.Scale[a] = lerp(from.Transform.Scale[a], to.Transform.Scale[a])
	}
	return out
}
