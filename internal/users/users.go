// Package users resolves numeric user and group ids to names.
package users

import (
	"fmt"
	"os/user"
	"strconv"
)

// Lookup resolves ids through the system account database and remembers
// every answer, failures included. It is not safe for concurrent use.
type Lookup struct {
	lookupUser  func(string) (*user.User, error)
	lookupGroup func(string) (*user.Group, error)
	users       map[uint32]result
	groups      map[uint32]result
}

type result struct {
	name string
	err  error
}

func New() *Lookup {
	return &Lookup{
		lookupUser:  user.LookupId,
		lookupGroup: user.LookupGroupId,
		users:       make(map[uint32]result),
		groups:      make(map[uint32]result),
	}
}

// UserName returns the login name for uid.
func (l *Lookup) UserName(uid uint32) (string, error) {
	if r, ok := l.users[uid]; ok {
		return r.name, r.err
	}
	var r result
	u, err := l.lookupUser(strconv.FormatUint(uint64(uid), 10))
	switch {
	case err != nil:
		r.err = fmt.Errorf("could not get user name for id %d: %w", uid, err)
	case u.Username == "":
		r.err = fmt.Errorf("could not get user name for id %d", uid)
	default:
		r.name = u.Username
	}
	l.users[uid] = r
	return r.name, r.err
}

// GroupName returns the group name for gid.
func (l *Lookup) GroupName(gid uint32) (string, error) {
	if r, ok := l.groups[gid]; ok {
		return r.name, r.err
	}
	var r result
	g, err := l.lookupGroup(strconv.FormatUint(uint64(gid), 10))
	switch {
	case err != nil:
		r.err = fmt.Errorf("could not get group name for id %d: %w", gid, err)
	case g.Name == "":
		r.err = fmt.Errorf("could not get group name for id %d", gid)
	default:
		r.name = g.Name
	}
	l.groups[gid] = r
	return r.name, r.err
}
