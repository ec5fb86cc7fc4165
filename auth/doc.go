// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth decides who may run admin operations and who may propose.

Identity itself is not verified here: the chat platform supplies the user id,
and the Guard only checks it against the configured lists.

	guard := auth.NewGuard(cfg.AdminIDs, cfg.BannedIDs)
	if err := guard.RequireAdmin(userID); err != nil {
		// reply with a rejection; no dialogue state changes
	}

# Errors

	ErrNotAdmin  user is not on the admin list
	ErrBanned    user is on the banned list
*/
package auth
