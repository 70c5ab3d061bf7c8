package physics

import "errors"

var (
	// ErrInvalidWorld is returned when the world region has a non-positive or
	// non-finite extent.
	ErrInvalidWorld = errors.New("physics: invalid world region")

	// ErrNilProxy is returned by Add for a nil proxy.
	ErrNilProxy = errors.New("physics: nil proxy")

	// ErrInvalidProxy is returned by Add for a proxy with a negative or
	// non-finite box, or a non-finite velocity.
	ErrInvalidProxy = errors.New("physics: invalid proxy")

	// ErrProxyTooLarge is returned by Add when a proxy cannot fit inside the
	// world region.
	ErrProxyTooLarge = errors.New("physics: proxy larger than world")

	// ErrDuplicateID is returned by Add for a preset ID that the engine
	// already gave to another proxy.
	ErrDuplicateID = errors.New("physics: duplicate proxy id")
)
