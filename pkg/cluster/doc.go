// Package cluster assigns every component a circular region on a 2D canvas
// and scatters each vertex inside its component's region.
//
// # Layout
//
// [Layout] processes components largest first. Each gets a radius scaled by
// the square root of its population share, floored at Options.MinRadius so
// small components stay visible. Candidate centers come from a cursor that
// sweeps the canvas left to right and top to bottom with random jitter; a
// candidate that collides with an already placed circle is replaced by a
// uniformly random center. Collision checks go through a spatial hash grid,
// so each check only looks at circles registered near the candidate.
//
// Retries are bounded by Options.MaxAttempts. When the budget runs out the
// least-overlapping candidate seen is kept and its [Region] is flagged
// as a Fallback; [Result.Overlaps] lists those components.
//
//	res, err := cluster.Layout(counts, bounds, cluster.NewRand(42), cluster.DefaultOptions())
//
// # Placement
//
// [Place] samples a point in a region with polar coordinates: a uniform
// angle and a uniform radius. This puts more points near the center than a
// uniform disk would. PlaceOptions.AreaUniform switches to the square-root
// radius transform.
//
// # Randomness
//
// All randomness is drawn from a caller-supplied [Rand], so the same seed
// reproduces the same layout.
package cluster
