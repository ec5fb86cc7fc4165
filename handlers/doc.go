// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the read-only topic API.

# Handler Types

TopicsHandler serves current topics and the episode archive. It depends on
the read side of the topic engine only:

	topicsHandler := handlers.NewTopicsHandler(svc)

# Endpoints

	GET /topics                    → ListTopics   (ranked by votes, ties by proposal order)
	GET /topics/{id}               → GetTopic     (one topic with its live vote count)
	GET /episodes                  → ListEpisodes (archived episode numbers, newest first)
	GET /episodes/{episode}/topics → ListArchive  (frozen counts at archive time)

Writing (proposals, votes, archiving, deletion) happens only through the
chat dialogues.

# Errors

All errors use the JSON shape from models.ErrorResponse:

	400  malformed topic id or episode number
	404  unknown topic, or an episode with nothing archived
	500  storage failure (logged with slog)
*/
package handlers
