package model

import (
	"errors"
	"fmt"
)

var ErrInvalidStatus = errors.New("invalid publish status")

// PublishStatus is persisted as a small integer.
type PublishStatus int

const (
	StatusUnpublished PublishStatus = 1
	StatusPublished   PublishStatus = 2
)

var statusNames = map[PublishStatus]string{
	StatusUnpublished: "UNPUBLISHED",
	StatusPublished:   "PUBLISHED",
}

// StatusNames lists the wire names in declaration order.
func StatusNames() []interface{} {
	return []interface{}{"UNPUBLISHED", "PUBLISHED"}
}

func PublishStatusOf(v int) (PublishStatus, error) {
	s := PublishStatus(v)
	if _, ok := statusNames[s]; !ok {
		return 0, fmt.Errorf("%w: %d", ErrInvalidStatus, v)
	}
	return s, nil
}

func ParsePublishStatus(name string) (PublishStatus, error) {
	for s, n := range statusNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidStatus, name)
}

func (s PublishStatus) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return fmt.Sprintf("PublishStatus(%d)", int(s))
}

// CanChangeTo reports whether a book currently in s may move to target.
// Publishing is one-way: PUBLISHED only ever stays PUBLISHED.
func (s PublishStatus) CanChangeTo(target PublishStatus) bool {
	switch s {
	case StatusUnpublished:
		return true
	case StatusPublished:
		return target == StatusPublished
	default:
		return false
	}
}
