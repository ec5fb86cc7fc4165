// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package notify sends the weekly "go vote" reminder to subscribed users.
//
// Delivery goes through a Sender, which the chat transport implements.
// Messages are paced so a large subscriber list does not trip the chat
// platform's rate limits, and no database transaction is held while sending.
package notify
