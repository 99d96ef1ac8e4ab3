// Package demomsg is the wire-level user-message catalog and decoder: a
// dispatch table mapping a message's NUL-padded name to a typed record,
// built on top of the primitive decoders in internal/wire. Every recognized
// tag decodes to a typed record even when the update functions in
// internal/analysis ignore it.
package demomsg

import (
	"fmt"
	"strings"
	"time"

	"github.com/doddemo/analyzer/internal/wire"
)

// Message is any decoded user message. It carries no behavior beyond
// identifying itself to internal/analysis via a type switch; the
// messageName method exists only for logging/debugging.
type Message interface {
	messageName() string
}

type base struct{ name string }

func (b base) messageName() string { return b.name }

// RoundStateValue is the closed set of round-state transitions.
type RoundStateValue uint8

const (
	RoundStateReset     RoundStateValue = 0
	RoundStateNormal    RoundStateValue = 1
	RoundStateAlliesWin RoundStateValue = 3
	RoundStateAxisWin   RoundStateValue = 4
	RoundStateDraw      RoundStateValue = 5
)

func (v RoundStateValue) String() string {
	switch v {
	case RoundStateReset:
		return "Reset"
	case RoundStateNormal:
		return "Normal"
	case RoundStateAlliesWin:
		return "AlliesWin"
	case RoundStateAxisWin:
		return "AxisWin"
	case RoundStateDraw:
		return "Draw"
	default:
		return "?"
	}
}

// ---- Message records, alphabetical to match the dispatch table below. ----

type AmmoShort struct {
	base
	Ammo   wire.Ammo
	Amount uint16
}

type AmmoX struct {
	base
	Ammo   wire.Ammo
	Amount uint8
}

type BloodPuff struct {
	base
	X, Y, Z int16
}

type CancelProg struct {
	base
	AreaIndex uint8
}

type CapMsg struct {
	base
	ClientIndex uint8
	PointName   string
	Team        wire.Team
}

type ClanTimer struct {
	base
	Duration time.Duration
}

type ClCorpse struct {
	base
	ModelName         string
	Origin            [3]int16
	Angle             [3]int8
	AnimationSequence uint8
	Body              uint16
	Team              wire.Team
}

type ClientAreas struct {
	base
	IconIndex uint8
	Flags     uint8
	HudIcon   string // only set when Flags == 255
}

type CurWeapon struct {
	base
	IsActive bool
	Weapon   wire.Weapon
	ClipAmmo uint8
}

// DeathMsg is emitted when a player kills another player. KillerClientIndex
// is 0 for a suicide (no killer slot).
type DeathMsg struct {
	base
	KillerClientIndex uint8
	VictimClientIndex uint8
	Weapon            wire.Weapon
}

type Frags struct {
	base
	ClientIndex uint8
	Frags       int16
}

type GameRules struct{ base }

type Health struct {
	base
	Health uint8
}

type HideWeapon struct {
	base
	Flags uint8
}

type HudText struct {
	base
	Text         string
	InitHudStyle uint8
}

type InitHUD struct{ base }

type Objective struct {
	EntityIndex      uint16
	AreaIndex        uint8
	Team             wire.Team // TeamNone means unassigned
	NeutralIcon      uint8
	AlliesIcon       uint8
	AxisIcon         uint8
	OriginX, OriginY int16
}

type InitObj struct {
	base
	Objectives []Objective
}

type Motd struct {
	base
	IsTerminal bool
	Text       string
}

type ObjScore struct {
	base
	ClientIndex uint8
	Score       int16
}

type PClass struct {
	base
	ClientIndex uint8
	Class       wire.Class
}

type PStatus struct {
	base
	ClientIndex uint8
	Status      uint8
}

type PTeam struct {
	base
	ClientIndex uint8
	Team        wire.Team
}

type PlayersIn struct {
	base
	ObjectiveIndex        uint8
	Team                  wire.Team
	PlayersInsideArea     uint8
	RequiredPlayersForArea uint8
}

type ReloadDone struct{ base }
type ReqState struct{ base }
type ResetHUD struct{ base }
type ResetSens struct{ base }

type RoundState struct {
	base
	Value RoundStateValue
}

type SayText struct {
	base
	ClientIndex uint8
	Text        string
}

type Scope struct{ base }

// ScoreShort overwrites a player's full (score, kills, deaths) triple.
type ScoreShort struct {
	base
	ClientIndex uint8
	Score       int16
	Kills       int16
	Deaths      int16
}

type ServerName struct {
	base
	Name string
}

type SetFOV struct {
	base
	FOV uint8
}

type SetObj struct {
	base
	AreaIndex uint8
	Team      wire.Team
}

type Spectator struct {
	base
	ClientIndex uint8
	IsSpectator bool
}

type StartProg struct {
	base
	AreaIndex   uint8
	Team        wire.Team
	CapDuration time.Duration
}

type StatusValue struct {
	base
	Value uint8
}

// TeamScore is emitted when a team's point total changes, either by
// objective capture or by tick.
type TeamScore struct {
	base
	Team  wire.Team
	Score uint16
}

type TextMsg struct {
	base
	Destination            uint8
	Text                    string
	Arg1, Arg2, Arg3, Arg4 string // empty when absent
}

type TimeLeft struct {
	base
	Duration time.Duration
}

type UseSound struct {
	base
	IsEntityInSphere bool
}

type VoiceMask struct {
	base
	AudiblePlayers int32
	BannedPlayers  int32
}

type WaveStatus struct {
	base
	Status uint8
}

type WaveTime struct {
	base
	Duration time.Duration
}

type WeaponList struct {
	base
	PrimaryAmmo          wire.Ammo
	PrimaryAmmoMax       uint8
	SecondaryAmmo        wire.Ammo
	SecondaryAmmoMax     uint8
	Slot                 uint8
	PositionInSlot       uint8
	Weapon               wire.Weapon
	ClipSize             uint8
}

type YouDied struct{ base }

// Decode parses a single (name, payload) user message per the dispatch
// table below. name is matched after trimming trailing NUL padding. Unknown
// names and payloads that fail their grammar both return an error — callers
// are expected to drop the event and continue (see internal/event).
func Decode(name string, payload []byte) (Message, error) {
	r := wire.NewReader(payload)
	name = strings.TrimRight(name, "\x00")

	switch name {
	case "AmmoShort":
		ammo, err := readAmmo(r)
		if err != nil {
			return nil, err
		}
		amount, err := r.U16()
		if err != nil {
			return nil, err
		}
		return finish(r, &AmmoShort{base{name}, ammo, amount})

	case "AmmoX":
		ammo, err := readAmmo(r)
		if err != nil {
			return nil, err
		}
		amount, err := r.U8()
		if err != nil {
			return nil, err
		}
		return finish(r, &AmmoX{base{name}, ammo, amount})

	case "BloodPuff":
		x, err1 := r.I16()
		y, err2 := r.I16()
		z, err3 := r.I16()
		if err := firstErr(err1, err2, err3); err != nil {
			return nil, err
		}
		return finish(r, &BloodPuff{base{name}, x, y, z})

	case "CancelProg":
		area, err := r.U8()
		if err != nil {
			return nil, err
		}
		if _, err := r.U8(); err != nil { // unused second byte
			return nil, err
		}
		return finish(r, &CancelProg{base{name}, area})

	case "CapMsg":
		client, err := r.U8()
		if err != nil {
			return nil, err
		}
		point, err := r.NullString()
		if err != nil {
			return nil, err
		}
		team, err := readTeam(r)
		if err != nil {
			return nil, err
		}
		return finish(r, &CapMsg{base{name}, client, point, team})

	case "ClCorpse":
		model, err := r.NullString()
		if err != nil {
			return nil, err
		}
		var origin [3]int16
		var angle [3]int8
		for i := range origin {
			v, err := r.I16()
			if err != nil {
				return nil, err
			}
			origin[i] = v
		}
		for i := range angle {
			v, err := r.I8()
			if err != nil {
				return nil, err
			}
			angle[i] = v
		}
		seq, err := r.U8()
		if err != nil {
			return nil, err
		}
		body, err := r.U16()
		if err != nil {
			return nil, err
		}
		team, err := readTeam(r)
		if err != nil {
			return nil, err
		}
		return finish(r, &ClCorpse{base{name}, model, origin, angle, seq, body, team})

	case "ClanTimer":
		seconds, err := r.U8()
		if err != nil {
			return nil, err
		}
		return finish(r, &ClanTimer{base{name}, time.Duration(seconds) * time.Second})

	case "ClientAreas":
		icon, err := r.U8()
		if err != nil {
			return nil, err
		}
		flags, err := r.U8()
		if err != nil {
			return nil, err
		}
		var hudIcon string
		if flags == 255 {
			hudIcon, err = r.NullString()
			if err != nil {
				return nil, err
			}
		}
		return finish(r, &ClientAreas{base{name}, icon, flags, hudIcon})

	case "CurWeapon":
		active, err := r.Bool()
		if err != nil {
			return nil, err
		}
		weapon, err := readWeapon(r)
		if err != nil {
			return nil, err
		}
		clip, err := r.U8()
		if err != nil {
			return nil, err
		}
		return finish(r, &CurWeapon{base{name}, active, weapon, clip})

	case "DeathMsg":
		killer, err := r.U8()
		if err != nil {
			return nil, err
		}
		victim, err := r.U8()
		if err != nil {
			return nil, err
		}
		weapon, err := readWeapon(r)
		if err != nil {
			return nil, err
		}
		return finish(r, &DeathMsg{base{name}, killer, victim, weapon})

	case "Frags":
		client, err := r.U8()
		if err != nil {
			return nil, err
		}
		frags, err := r.I16()
		if err != nil {
			return nil, err
		}
		return finish(r, &Frags{base{name}, client, frags})

	case "GameRules":
		if _, err := r.U8(); err != nil {
			return nil, err
		}
		if _, err := r.U8(); err != nil {
			return nil, err
		}
		return finish(r, &GameRules{base{name}})

	case "Health":
		h, err := r.U8()
		if err != nil {
			return nil, err
		}
		return finish(r, &Health{base{name}, h})

	case "HideWeapon":
		f, err := r.U8()
		if err != nil {
			return nil, err
		}
		return finish(r, &HideWeapon{base{name}, f})

	case "HudText":
		text, err := r.NullString()
		if err != nil {
			return nil, err
		}
		style, err := r.U8()
		if err != nil {
			return nil, err
		}
		return finish(r, &HudText{base{name}, text, style})

	case "InitHUD":
		return finish(r, &InitHUD{base{name}})

	case "InitObj":
		count, err := r.U8()
		if err != nil {
			return nil, err
		}
		objs := make([]Objective, 0, count)
		for i := 0; i < int(count); i++ {
			ent, err := r.U16()
			if err != nil {
				return nil, err
			}
			area, err := r.U8()
			if err != nil {
				return nil, err
			}
			teamByte, err := r.U8()
			if err != nil {
				return nil, err
			}
			team, err := wire.TeamFromByte(teamByte)
			if err != nil {
				return nil, err
			}
			if _, err := r.U8(); err != nil { // spawnflags-derived byte, unused downstream
				return nil, err
			}
			neutral, err := r.U8()
			if err != nil {
				return nil, err
			}
			allies, err := r.U8()
			if err != nil {
				return nil, err
			}
			axis, err := r.U8()
			if err != nil {
				return nil, err
			}
			ox, err := r.I16()
			if err != nil {
				return nil, err
			}
			oy, err := r.I16()
			if err != nil {
				return nil, err
			}
			objs = append(objs, Objective{ent, area, team, neutral, allies, axis, ox, oy})
		}
		return finish(r, &InitObj{base{name}, objs})

	case "MOTD":
		terminal, err := r.Bool()
		if err != nil {
			return nil, err
		}
		text := r.RestAsString()
		return &Motd{base{name}, terminal, text}, nil

	case "ObjScore":
		client, err := r.U8()
		if err != nil {
			return nil, err
		}
		score, err := r.I16()
		if err != nil {
			return nil, err
		}
		return finish(r, &ObjScore{base{name}, client, score})

	case "PClass":
		client, err := r.U8()
		if err != nil {
			return nil, err
		}
		class, err := readClass(r)
		if err != nil {
			return nil, err
		}
		return finish(r, &PClass{base{name}, client, class})

	case "PStatus":
		client, err := r.U8()
		if err != nil {
			return nil, err
		}
		status, err := r.U8()
		if err != nil {
			return nil, err
		}
		return finish(r, &PStatus{base{name}, client, status})

	case "PTeam":
		client, err := r.U8()
		if err != nil {
			return nil, err
		}
		team, err := readTeam(r)
		if err != nil {
			return nil, err
		}
		return finish(r, &PTeam{base{name}, client, team})

	case "PlayersIn":
		obj, err := r.U8()
		if err != nil {
			return nil, err
		}
		team, err := readTeam(r)
		if err != nil {
			return nil, err
		}
		inside, err := r.U8()
		if err != nil {
			return nil, err
		}
		required, err := r.U8()
		if err != nil {
			return nil, err
		}
		return finish(r, &PlayersIn{base{name}, obj, team, inside, required})

	case "ReloadDone":
		return finish(r, &ReloadDone{base{name}})
	case "ReqState":
		return finish(r, &ReqState{base{name}})
	case "ResetHUD":
		return finish(r, &ResetHUD{base{name}})
	case "ResetSens":
		return finish(r, &ResetSens{base{name}})

	case "RoundState":
		v, err := r.U8()
		if err != nil {
			return nil, err
		}
		rs := RoundStateValue(v)
		switch rs {
		case RoundStateReset, RoundStateNormal, RoundStateAlliesWin, RoundStateAxisWin, RoundStateDraw:
		default:
			return nil, fmt.Errorf("demomsg: unrecognized RoundState tag %d", v)
		}
		return finish(r, &RoundState{base{name}, rs})

	case "SayText":
		client, err := r.U8()
		if err != nil {
			return nil, err
		}
		if _, err := r.U8(); err != nil { // unused
			return nil, err
		}
		text, err := r.NullString()
		if err != nil {
			return nil, err
		}
		return finish(r, &SayText{base{name}, client, text})

	case "Scope":
		if _, err := r.U8(); err != nil {
			return nil, err
		}
		return finish(r, &Scope{base{name}})

	case "ScoreShort":
		client, err := r.U8()
		if err != nil {
			return nil, err
		}
		score, err := r.I16()
		if err != nil {
			return nil, err
		}
		kills, err := r.I16()
		if err != nil {
			return nil, err
		}
		deaths, err := r.I16()
		if err != nil {
			return nil, err
		}
		if _, err := r.U8(); err != nil { // padding byte
			return nil, err
		}
		return finish(r, &ScoreShort{base{name}, client, score, kills, deaths})

	case "ServerName":
		return &ServerName{base{name}, r.RestAsString()}, nil

	case "SetFOV":
		fov, err := r.U8()
		if err != nil {
			return nil, err
		}
		return finish(r, &SetFOV{base{name}, fov})

	case "SetObj":
		area, err := r.U8()
		if err != nil {
			return nil, err
		}
		teamByte, err := r.U8()
		if err != nil {
			return nil, err
		}
		team, err := wire.TeamFromByte(teamByte)
		if err != nil {
			return nil, err
		}
		if _, err := r.U8(); err != nil { // trailing unused byte
			return nil, err
		}
		return finish(r, &SetObj{base{name}, area, team})

	case "Spectator":
		client, err := r.U8()
		if err != nil {
			return nil, err
		}
		isSpec, err := r.Bool()
		if err != nil {
			return nil, err
		}
		return finish(r, &Spectator{base{name}, client, isSpec})

	case "StartProg":
		area, err := r.U8()
		if err != nil {
			return nil, err
		}
		team, err := readTeam(r)
		if err != nil {
			return nil, err
		}
		secs, err := r.U16()
		if err != nil {
			return nil, err
		}
		return finish(r, &StartProg{base{name}, area, team, time.Duration(secs) * time.Second})

	case "StatusValue":
		v, err := r.U8()
		if err != nil {
			return nil, err
		}
		return finish(r, &StatusValue{base{name}, v})

	case "TeamScore":
		team, err := readTeam(r)
		if err != nil {
			return nil, err
		}
		score, err := r.U16()
		if err != nil {
			return nil, err
		}
		return finish(r, &TeamScore{base{name}, team, score})

	case "TextMsg":
		dest, err := r.U8()
		if err != nil {
			return nil, err
		}
		text, err := r.NullString()
		if err != nil {
			return nil, err
		}
		args := make([]string, 0, 4)
		for len(args) < 4 && r.Remaining() > 0 {
			s, err := r.NullString()
			if err != nil {
				break
			}
			args = append(args, s)
		}
		for len(args) < 4 {
			args = append(args, "")
		}
		return finish(r, &TextMsg{base{name}, dest, text, args[0], args[1], args[2], args[3]})

	case "TimeLeft":
		secs, err := r.U16()
		if err != nil {
			return nil, err
		}
		return finish(r, &TimeLeft{base{name}, time.Duration(secs) * time.Second})

	case "UseSound":
		in, err := r.Bool()
		if err != nil {
			return nil, err
		}
		return finish(r, &UseSound{base{name}, in})

	case "VoiceMask":
		a, err := r.I32()
		if err != nil {
			return nil, err
		}
		b, err := r.I32()
		if err != nil {
			return nil, err
		}
		return finish(r, &VoiceMask{base{name}, a, b})

	case "WaveStatus":
		v, err := r.U8()
		if err != nil {
			return nil, err
		}
		return finish(r, &WaveStatus{base{name}, v})

	case "WaveTime":
		secs, err := r.U8()
		if err != nil {
			return nil, err
		}
		return finish(r, &WaveTime{base{name}, time.Duration(secs) * time.Second})

	case "WeaponList":
		primaryAmmo, err := readAmmo(r)
		if err != nil {
			return nil, err
		}
		primaryMax, err := r.U8()
		if err != nil {
			return nil, err
		}
		secondaryAmmo, err := readAmmo(r)
		if err != nil {
			return nil, err
		}
		secondaryMax, err := r.U8()
		if err != nil {
			return nil, err
		}
		slot, err := r.U8()
		if err != nil {
			return nil, err
		}
		posInSlot, err := r.U8()
		if err != nil {
			return nil, err
		}
		weapon, err := readWeapon(r)
		if err != nil {
			return nil, err
		}
		if _, err := r.U8(); err != nil {
			return nil, err
		}
		if _, err := r.U8(); err != nil {
			return nil, err
		}
		clipSize, err := r.U8()
		if err != nil {
			return nil, err
		}
		return finish(r, &WeaponList{base{name}, primaryAmmo, primaryMax, secondaryAmmo, secondaryMax, slot, posInSlot, weapon, clipSize})

	case "YouDied":
		if _, err := r.U8(); err != nil {
			return nil, err
		}
		return finish(r, &YouDied{base{name}})

	default:
		return nil, fmt.Errorf("demomsg: unrecognized message %q", name)
	}
}

func readTeam(r *wire.Reader) (wire.Team, error) {
	v, err := r.U8()
	if err != nil {
		return 0, err
	}
	return wire.TeamFromByteStrict(v)
}

func readClass(r *wire.Reader) (wire.Class, error) {
	v, err := r.U8()
	if err != nil {
		return 0, err
	}
	return wire.ClassFromByte(v)
}

func readWeapon(r *wire.Reader) (wire.Weapon, error) {
	v, err := r.U8()
	if err != nil {
		return 0, err
	}
	return wire.WeaponFromByte(v)
}

func readAmmo(r *wire.Reader) (wire.Ammo, error) {
	v, err := r.U8()
	if err != nil {
		return 0, err
	}
	return wire.AmmoFromByte(v)
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// finish enforces the all-consuming grammar: any recognized message other
// than the trailing-string exceptions (ServerName, MOTD) must consume its
// entire payload.
func finish[T Message](r *wire.Reader, msg T) (T, error) {
	if !r.AllConsumed() {
		var zero T
		return zero, fmt.Errorf("demomsg: %d trailing bytes after %s", r.Remaining(), msg.messageName())
	}
	return msg, nil
}
