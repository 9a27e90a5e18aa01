package activity

// Activity state flags are split by lifecycle into two groups:
// persistentFlags survive across simulation passes, transientFlags are
// wiped by ResetTransientState at the start of every pass.

// persistentFlags survive across simulation passes and process restarts.
type persistentFlags struct {
	anchored      bool
	anchorDateSet bool
}

// transientFlags hold the per-pass release gating state. Any of the
// waiting* flags being true means the activity is not released. The
// surrounding simulation driver sets and clears them; the engine only
// reads them during eligibility checks.
type transientFlags struct {
	// Base gating conditions (every activity).
	waitingOptimizationRelease  bool
	waitingAnchorRelease        bool
	waitingPredecessorBatch     bool
	waitingRightCompressRelease bool

	// Extended gating conditions (internal activities).
	waitingRightMovingNeighborRelease  bool
	waitingScheduledDateBeforeMove     bool
	waitingPredecessorOperationRelease bool
	waitingActivityMoved               bool
	waitingClockAdjustmentRelease      bool
	waitingLeftMoveBlock               bool
	movePreventIntersection            bool

	beingMoved bool
	sequenced  bool

	// Reanchor capture, valid between ReanchorSetup and Reanchor.
	wasAnchored bool
}
