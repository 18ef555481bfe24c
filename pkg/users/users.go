// Package users resolves numeric user ids to account names.
package users

import (
	"log/slog"
	"strconv"
	"sync"

	"github.com/moby/sys/user"
)

// DefaultPasswdPath is the system account database.
const DefaultPasswdPath = "/etc/passwd"

// Resolver maps a uid to a display name. Unknown uids resolve to their
// decimal form and negative (unreadable) uids to "?".
type Resolver interface {
	Username(uid int) string
}

// PasswdResolver looks uids up in a passwd(5) file and caches every answer,
// including numeric fallbacks, for the life of the resolver.
type PasswdResolver struct {
	path string

	mu    sync.Mutex
	cache map[int]string
}

// NewPasswdResolver returns a resolver backed by path, or DefaultPasswdPath
// when path is empty.
func NewPasswdResolver(path string) *PasswdResolver {
	if path == "" {
		path = DefaultPasswdPath
	}
	return &PasswdResolver{path: path, cache: make(map[int]string)}
}

func (r *PasswdResolver) Username(uid int) string {
	if uid < 0 {
		return "?"
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if name, ok := r.cache[uid]; ok {
		return name
	}

	name := strconv.Itoa(uid)
	users, err := user.ParsePasswdFileFilter(r.path, func(u user.User) bool {
		return u.Uid == uid
	})
	switch {
	case err != nil:
		slog.Debug("passwd lookup failed", "path", r.path, "uid", uid, "err", err)
	case len(users) > 0 && users[0].Name != "":
		name = users[0].Name
	}
	r.cache[uid] = name
	return name
}

// Static resolves from a fixed table, falling back like PasswdResolver.
type Static map[int]string

func (s Static) Username(uid int) string {
	if uid < 0 {
		return "?"
	}
	if name, ok := s[uid]; ok {
		return name
	}
	return strconv.Itoa(uid)
}
