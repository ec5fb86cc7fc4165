// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session runs the per-user chat dialogues on top of the topic engine.

Each user has at most one dialogue. Handle feeds it one Event and returns a
Reply for the transport to deliver; the Coordinator itself never talks to the
chat platform.

# States

	Idle
	  /propose  -> AwaitingTitle -> AwaitingBody -> AwaitingConfirmation -> Idle
	  /archive  -> AwaitingEpisodeNumber -> AwaitingArchiveConfirmation -> Idle   (admin)
	  /vote     -> SelectingVotes (until Stop or nothing is left) -> Idle
	  /delete   -> SelectingDeletions (until Stop or nothing is left) -> Idle    (admin)

Any entry command abandons the current dialogue and starts a new one. /cancel
returns to Idle from anywhere.

List, Start, Help and Unsubscribe do not touch dialogue state.
*/
package session
