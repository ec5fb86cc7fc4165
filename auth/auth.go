// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"log/slog"
)

var (
	ErrNotAdmin = errors.New("admin privileges required")
	ErrBanned   = errors.New("user is banned")
)

// Guard answers identity questions from configured user id lists.
// It is read-only after construction and safe for concurrent use.
type Guard struct {
	admins map[string]struct{}
	banned map[string]struct{}
}

// NewGuard builds a guard from admin and banned user ids
func NewGuard(adminIDs, bannedIDs []string) *Guard {
	g := &Guard{
		admins: make(map[string]struct{}, len(adminIDs)),
		banned: make(map[string]struct{}, len(bannedIDs)),
	}
	for _, id := range adminIDs {
		g.admins[id] = struct{}{}
	}
	for _, id := range bannedIDs {
		g.banned[id] = struct{}{}
	}
	return g
}

func (g *Guard) IsAdmin(userID string) bool {
	_, ok := g.admins[userID]
	return ok
}

func (g *Guard) IsBanned(userID string) bool {
	_, ok := g.banned[userID]
	return ok
}

// RequireAdmin returns ErrNotAdmin for anyone not on the admin list.
func (g *Guard) RequireAdmin(userID string) error {
	if !g.IsAdmin(userID) {
		slog.Warn("admin operation rejected", "user_id", userID)
		return ErrNotAdmin
	}
	return nil
}

// RequireNotBanned returns ErrBanned for users on the banned list.
func (g *Guard) RequireNotBanned(userID string) error {
	if g.IsBanned(userID) {
		return ErrBanned
	}
	return nil
}
