package domain

import "errors"

var (
	// ErrEmptyContent rejects a post whose content is empty after trimming.
	ErrEmptyContent = errors.New("post content is empty")

	// ErrNoSession is returned when no user session has been established.
	ErrNoSession = errors.New("no active session")

	// ErrOwnReaction rejects reacting to one's own post.
	ErrOwnReaction = errors.New("cannot react to own post")

	// ErrDuplicateReaction marks a reaction the ledger has already
	// recorded. Callers treat it as a benign no-op.
	ErrDuplicateReaction = errors.New("reaction already recorded")
)
