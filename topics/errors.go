package topics

import "errors"

var (
	// ErrDuplicateTopic means a current topic already has the same title and body.
	ErrDuplicateTopic = errors.New("topic with this title and body already exists")

	// ErrTopicNotFound means the topic was deleted or archived by someone else.
	ErrTopicNotFound = errors.New("topic not found")

	// ErrTopicGone means a vote referenced a topic that no longer exists.
	ErrTopicGone = errors.New("topic is no longer open for voting")

	// ErrDuplicateInArchive means the archive batch violated a uniqueness
	// constraint and nothing was archived.
	ErrDuplicateInArchive = errors.New("archive batch contains a duplicate topic")
)
