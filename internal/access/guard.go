// Package access decides which chats and users may trigger a report.
package access

import (
	"strconv"
	"strings"
)

// Guard holds the chat and user allow-lists. An empty list allows everyone.
// A Guard is read-only after construction.
type Guard struct {
	chats map[int64]struct{}
	users map[int64]struct{}
}

// NewGuard builds a Guard from id lists.
func NewGuard(chatIDs, userIDs []int64) *Guard {
	return &Guard{chats: toSet(chatIDs), users: toSet(userIDs)}
}

// ChatAllowed reports whether chatID passes the chat allow-list.
func (g *Guard) ChatAllowed(chatID int64) bool {
	if len(g.chats) == 0 {
		return true
	}
	_, ok := g.chats[chatID]
	return ok
}

// UserAllowed reports whether the user passes the user allow-list. A nil
// userID means the sender is unknown.
func (g *Guard) UserAllowed(userID *int64) bool {
	if len(g.users) == 0 {
		return true
	}
	if userID == nil {
		return false
	}
	_, ok := g.users[*userID]
	return ok
}

// Allowed requires both the chat and the user to pass.
func (g *Guard) Allowed(chatID int64, userID *int64) bool {
	return g.ChatAllowed(chatID) && g.UserAllowed(userID)
}

// ParseIDs parses a comma separated id list. Entries that are not integers
// are returned in invalid and left out of ids.
func ParseIDs(raw string) (ids []int64, invalid []string) {
	for _, part := range strings.Split(raw, ",") {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		id, err := strconv.ParseInt(item, 10, 64)
		if err != nil {
			invalid = append(invalid, item)
			continue
		}
		ids = append(ids, id)
	}
	return ids, invalid
}

func toSet(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
