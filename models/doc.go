// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain and response types shared by the stores, the
chat coordinator and the HTTP API.

# Domain Types

  - Topic: a proposed discussion item, immutable once created
  - RankedTopic: a Topic with its live vote count
  - ArchivedTopic: an immutable snapshot of a topic and its final tally
  - ArchiveBatch: the result of one archive run under an episode

# Response Types

  - TopicListResponse: current topics, most votes first
  - TopicResponse: a single current topic
  - EpisodeListResponse: episode numbers with archived topics
  - ArchiveResponse: archived topics of one episode
  - ErrorResponse: error, message

# Constants

	MaxTitleLength = 140
*/
package models
