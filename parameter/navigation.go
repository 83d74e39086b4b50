package parameter

import "time"

// Navigation - Weighted A*
const (
	// NavHeuristicWeight inflates the Manhattan heuristic; >1 trades optimality for fewer expansions
	NavHeuristicWeight = 1.1

	// NavIterationsPerAdvance is the default per-call iteration budget of a bidirectional search
	NavIterationsPerAdvance = 10_000

	// NavMaxAdvanceCalls is the default number of Advance calls before a search gives up
	NavMaxAdvanceCalls = 20
)

// Navigation - Path cache recompute tolerance
// A cached path is kept while the destination drifts no further than the tolerance for the remaining distance
const (
	NavRecomputeNearDist      = 25 // Remaining distance at or below which any drift recomputes
	NavRecomputeFarDist       = 50 // Remaining distance above which the far tolerance applies
	NavRecomputeMidTolerance  = 5
	NavRecomputeFarTolerance  = 10
	NavArrivalDistanceDefault = 1 // Manhattan distance under which a unit counts as arrived
)

// Navigation - Ballistic arc
const (
	// NavParabolaMinVertex is the minimum lift of the Bézier control points (tiles)
	NavParabolaMinVertex = 50.0

	// NavParabolaVertexDivisor scales lift with straight-line distance: lift = dist / divisor
	NavParabolaVertexDivisor = 3.0
)

// Terrain layout costs
const (
	NavOpenCost  = 1.0
	NavShoreCost = 2.0 // Passage tiles touching a wall
)

// Sandbox
const (
	SandboxTickInterval   = 50 * time.Millisecond
	SandboxIterations     = 40 // Small budget so frontier growth is visible tick to tick
	SandboxMaxAdvance     = 400
	SandboxBraiding       = 0.3
	SandboxToneCompleted  = 880
	SandboxToneNotFound   = 220
	SandboxToneDurationMs = 80
)
