package models

import "time"

// MaxTitleLength is the longest topic title, in characters, a proposal may carry.
const MaxTitleLength = 140

// Domain types

type Topic struct {
	ID           int64     `json:"id"`
	ProposerID   string    `json:"proposer_id"`
	ProposerName string    `json:"proposer_name"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	CreatedAt    time.Time `json:"created_at"`
}

// RankedTopic is a current topic with its live vote count.
type RankedTopic struct {
	Topic
	Votes int `json:"votes"`
}

type ArchivedTopic struct {
	ID           int64     `json:"id"`
	BatchID      string    `json:"batch_id"`
	Episode      int       `json:"episode"`
	ProposerID   string    `json:"proposer_id"`
	ProposerName string    `json:"proposer_name"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	VoteCount    int       `json:"vote_count"`
	ArchivedAt   time.Time `json:"archived_at"`
}

// ArchiveBatch describes one archive run.
type ArchiveBatch struct {
	ID         string    `json:"id"`
	Episode    int       `json:"episode"`
	Count      int       `json:"count"`
	ArchivedAt time.Time `json:"archived_at"`
}

// Response types

type TopicListResponse struct {
	Topics []RankedTopic `json:"topics"`
}

type TopicResponse struct {
	Topic RankedTopic `json:"topic"`
}

type EpisodeListResponse struct {
	Episodes []int `json:"episodes"`
}

type ArchiveResponse struct {
	Episode int             `json:"episode"`
	Topics  []ArchivedTopic `json:"topics"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
