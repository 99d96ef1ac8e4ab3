package analysis

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/doddemo/analyzer/internal/container"
	"github.com/doddemo/analyzer/internal/wire"
)

// PlayerGlobalId is an opaque identity stable across disconnect/reconnect
// within one demo. Equality and hashing use the id alone (spec.md §3).
type PlayerGlobalId string

// ConnectionStatus is a player's slot occupancy. Disconnecting resets
// ClientID to zero, and ClientID is meaningless once Connected is false —
// exactly one connected player may hold a given client id at a time
// (invariant I2).
type ConnectionStatus struct {
	Connected bool
	ClientID  uint8
}

// WeaponTally is one weapon's entry in a player's kill/teamkill breakdown.
type WeaponTally struct {
	Kills     int
	TeamKills int
}

// KillEntry is one recorded kill within a KillStreak.
type KillEntry struct {
	Time   GameTime
	Weapon wire.Weapon
}

// KillStreak is an ordered, non-decreasing-in-time list of kills (invariant
// I4). An empty streak separates two finished streaks — see
// internal/analysis's kill-streak update function.
type KillStreak []KillEntry

// Player is identified by PlayerGlobalId. Team and Class are optional
// (nil until first observed); Score/Kills/Deaths form the "(score, kills,
// deaths)" triple spec.md §3 describes.
type Player struct {
	ID              PlayerGlobalId
	Connection      ConnectionStatus
	Name            string
	Team            *wire.Team
	Class           *wire.Class
	Score           int32
	Kills           int32
	Deaths          int32
	KillStreaks     []KillStreak
	WeaponBreakdown map[wire.Weapon]WeaponTally
}

func newPlayer(id PlayerGlobalId) *Player {
	return &Player{
		ID:              id,
		WeaponBreakdown: make(map[wire.Weapon]WeaponTally),
	}
}

// derivePlayerGlobalId implements the §3 precedence: a decimal Steam ID64
// from the userinfo blob, else a deterministic UUID seeded by the server
// connection id, else a random UUID.
func derivePlayerGlobalId(fields map[string]string, connectionID uint32) PlayerGlobalId {
	if sid, ok := fields["*sid"]; ok {
		if _, err := strconv.ParseUint(sid, 10, 64); err == nil {
			return PlayerGlobalId(sid)
		}
	}

	idBytes := [4]byte{byte(connectionID), byte(connectionID >> 8), byte(connectionID >> 16), byte(connectionID >> 24)}
	seed := make([]byte, 0, 16)
	for i := 0; i < 4; i++ {
		seed = append(seed, idBytes[:]...)
	}
	if id, err := uuid.FromBytes(seed); err == nil {
		return PlayerGlobalId(id.String())
	}
	return PlayerGlobalId(uuid.New().String())
}

// parseUserinfo splits a `\key\value\key\value...` blob into a map, per
// spec.md §4.4.2: strip leading/trailing NUL and backslash, split on
// backslash, and take complete key/value pairs.
func parseUserinfo(raw []byte) map[string]string {
	s := string(raw)
	s = strings.Trim(s, "\x00\\")
	if s == "" {
		return nil
	}
	parts := strings.Split(s, "\\")
	fields := make(map[string]string, len(parts)/2)
	for i := 0; i+1 < len(parts); i += 2 {
		fields[parts[i]] = parts[i+1]
	}
	return fields
}

// applyPlayerIdentity is the player-identity update function (spec.md
// §4.4.2), triggered by SvcUpdateUserInfo.
func applyPlayerIdentity(s *State, msg container.SvcUpdateUserInfo) {
	fields := parseUserinfo(msg.UserInfo)

	if len(fields) == 0 {
		if p := s.findByClientIndex(msg.Index); p != nil {
			p.Connection = ConnectionStatus{Connected: false}
		}
		return
	}

	if fields["*hltv"] == "1" {
		return
	}

	id := derivePlayerGlobalId(fields, msg.ID)

	if s.findByID(id) == nil {
		s.Players = append(s.Players, newPlayer(id))
	}

	if occupant := s.findByClientIndex(msg.Index); occupant != nil && occupant.ID != id {
		occupant.Connection = ConnectionStatus{Connected: false}
	}

	player := s.findByID(id)
	player.Connection = ConnectionStatus{Connected: true, ClientID: msg.Index}

	if name, ok := fields["name"]; ok {
		player.Name = name
	} else {
		player.Name = fmt.Sprintf("Player %d", msg.ID)
	}

	if teamStr, ok := fields["team"]; ok {
		if team, ok := wire.TeamFromUserinfo(teamStr); ok {
			player.Team = &team
		}
	}
}
