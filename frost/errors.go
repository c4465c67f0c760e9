package frost

import "errors"

// Sentinel errors returned by this package's operations, grouped by the
// behavior they signal rather than by call site. Cryptographic checks that
// have an expected negative outcome (share verification, proof-of-knowledge
// verification) return a boolean instead of one of these; these errors are
// reserved for structural problems the caller must not just retry past.
var (
	// ErrInvalidArgument covers arguments that are out of range or
	// inconsistent, for example an out-of-range index or threshold passed to
	// InitKeygen, a non-increasing new threshold, missing-paired tweaks, a
	// missing nonce commitment, signature share or recipient key, and
	// wrong-length commitment vectors. Duplicate indexes are reported as
	// ErrDuplicateIndex instead.
	ErrInvalidArgument = errors.New("frost: invalid argument")

	// ErrPreconditionNotMet covers operations that require state which is
	// not yet present: signing or dealing repair shares before an aggregate
	// share exists, signing without a nonce pair, aggregating before this
	// participant has generated its own shares.
	ErrPreconditionNotMet = errors.New("frost: precondition not met")

	// ErrDegenerateCommitment signals that a computed group commitment was
	// the point at infinity. The session is unrecoverable; the caller must
	// restart with fresh nonces.
	ErrDegenerateCommitment = errors.New("frost: degenerate group commitment")

	// ErrInvalidKey signals that a tweak computation produced an
	// intermediate point with no affine representative.
	ErrInvalidKey = errors.New("frost: invalid key")

	// ErrIndexOutOfRange signals a participant index of 0 or greater than
	// the group size, or one that does not fit in a single byte.
	ErrIndexOutOfRange = errors.New("frost: participant index out of range")

	// ErrDuplicateIndex signals that a set of participant indexes expected
	// to be pairwise distinct was not.
	ErrDuplicateIndex = errors.New("frost: duplicate participant index")

	// ErrAlreadyHeld signals an attempt to repair a share the participant
	// already holds.
	ErrAlreadyHeld = errors.New("frost: aggregate share already held")
)
