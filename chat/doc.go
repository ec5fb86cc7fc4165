// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package chat is the Discord transport.

It registers the slash commands, turns interactions and direct messages into
session events, and delivers the replies. Buttons carry their meaning in the
custom id:

	select:<topic id>   vote for or delete a topic
	confirm:yes         accept the pending question
	confirm:no          decline it
	stop                leave a vote or delete keyboard

Bot also implements notify.Sender for the weekly reminder.
*/
package chat
