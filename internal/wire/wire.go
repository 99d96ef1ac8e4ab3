// Package wire implements the primitive decoders shared by every user message:
// a little-endian byte cursor over a message payload, and the closed,
// fixed-tag enumerations (Team, Class, Weapon, Ammo) that appear throughout
// the catalog.
package wire

import (
	"encoding/binary"
	"fmt"
)

// Reader is a forward-only cursor over a message payload. Every getter
// advances the cursor and returns an error instead of panicking when the
// payload is short — malformed payloads are common on the wire and must
// fail the containing message, not the process.
type Reader struct {
	b   []byte
	pos int
}

// NewReader wraps b for sequential decoding.
func NewReader(b []byte) *Reader {
	return &Reader{b: b}
}

// Remaining reports how many bytes are left to read.
func (r *Reader) Remaining() int {
	return len(r.b) - r.pos
}

func (r *Reader) need(n int) error {
	if r.Remaining() < n {
		return fmt.Errorf("wire: need %d bytes, have %d", n, r.Remaining())
	}
	return nil
}

// U8 reads one unsigned byte.
func (r *Reader) U8() (byte, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.b[r.pos]
	r.pos++
	return v, nil
}

// I8 reads one signed byte.
func (r *Reader) I8() (int8, error) {
	v, err := r.U8()
	return int8(v), err
}

// Bool reads one byte and reports whether it is nonzero.
func (r *Reader) Bool() (bool, error) {
	v, err := r.U8()
	return v != 0, err
}

// U16 reads a little-endian unsigned 16-bit integer.
func (r *Reader) U16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(r.b[r.pos:])
	r.pos += 2
	return v, nil
}

// I16 reads a little-endian signed 16-bit integer.
func (r *Reader) I16() (int16, error) {
	v, err := r.U16()
	return int16(v), err
}

// I32 reads a little-endian signed 32-bit integer.
func (r *Reader) I32() (int32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(r.b[r.pos:])
	r.pos += 4
	return int32(v), nil
}

// NullString reads bytes up to and including the next NUL byte and returns
// the string before it. An immediate NUL yields the empty string. Returns an
// error if no NUL byte is found before the payload ends.
func (r *Reader) NullString() (string, error) {
	for i := r.pos; i < len(r.b); i++ {
		if r.b[i] == 0 {
			s := string(r.b[r.pos:i])
			r.pos = i + 1
			return s, nil
		}
	}
	return "", fmt.Errorf("wire: unterminated string")
}

// RestAsString consumes every remaining byte as a string, NUL-trimmed at the
// end if present. Used by the handful of messages whose payload is a
// trailing variable-length string (ServerName, Motd) rather than a
// NUL-delimited field.
func (r *Reader) RestAsString() string {
	s := r.b[r.pos:]
	r.pos = len(r.b)
	for len(s) > 0 && s[len(s)-1] == 0 {
		s = s[:len(s)-1]
	}
	return string(s)
}

// AllConsumed reports whether every byte of the payload has been read.
// Callers that require an all-consuming grammar check this after decoding
// every field.
func (r *Reader) AllConsumed() bool {
	return r.Remaining() == 0
}

// Team is a player's side. Closed enumeration with fixed wire tags.
type Team uint8

const (
	TeamNone       Team = 0
	TeamAllies     Team = 1
	TeamAxis       Team = 2
	TeamSpectators Team = 3
)

// String renders the team name, or "?" for an unrecognized value.
func (t Team) String() string {
	switch t {
	case TeamAllies:
		return "Allies"
	case TeamAxis:
		return "Axis"
	case TeamSpectators:
		return "Spectators"
	case TeamNone:
		return "None"
	default:
		return "?"
	}
}

// TeamFromByte decodes a wire team tag. Tag 0 reports TeamNone with a nil
// error (used by the InitObj/SetObj "no team" sentinel); any other unrecognized
// value is an error.
func TeamFromByte(v byte) (Team, error) {
	switch v {
	case 0:
		return TeamNone, nil
	case 1:
		return TeamAllies, nil
	case 2:
		return TeamAxis, nil
	case 3:
		return TeamSpectators, nil
	default:
		return 0, fmt.Errorf("wire: unrecognized team tag %d", v)
	}
}

// TeamFromByteStrict decodes a wire team tag where 0 is not a valid team.
// Used by message types that always carry a real team (CapMsg, ClCorpse,
// PTeam, PlayersIn, StartProg, TeamScore); InitObj/SetObj use TeamFromByte
// instead since their team field is nullable.
func TeamFromByteStrict(v byte) (Team, error) {
	t, err := TeamFromByte(v)
	if err != nil {
		return 0, err
	}
	if t == TeamNone {
		return 0, fmt.Errorf("wire: team tag 0 not valid in this context")
	}
	return t, nil
}

// TeamFromUserinfo maps the lowercase team name carried in a userinfo blob.
func TeamFromUserinfo(s string) (Team, bool) {
	switch s {
	case "allies":
		return TeamAllies, true
	case "axis":
		return TeamAxis, true
	case "spectators":
		return TeamSpectators, true
	default:
		return 0, false
	}
}

// Class is a player's chosen class. The numeric mapping below is carried
// over verbatim from the original implementation, including its "FIXME
// Inaccurate" caveat — no authoritative source for the correct mapping was
// available, so this is not a resolved Open Question, just a reproduction.
type Class uint8

const (
	ClassRifleman Class = iota + 1
	ClassStaffSergeant
	ClassMasterSergeant
	ClassSergeant
	ClassSniper
	ClassSupportInfantry
	ClassMachineGunner
	ClassBazooka
	ClassMortar
	ClassGrenadier
	ClassStosstruppe
	ClassUnteroffizer
	ClassSturmtruppe
	ClassScharfschutze
	ClassFg42Zweibein
	ClassFg42Zielfernrohr
	ClassMG34Schutze
	ClassMG42Schutze
	ClassPanzerschreck
	ClassAxisMortar
	ClassBritishRifleman
	ClassSergeantMajor
	ClassMarksman
	ClassGunner
	ClassRocketInfantry
	ClassBritishMortar
	ClassRandom
)

var classNames = map[Class]string{
	ClassRifleman:         "Rifleman",
	ClassStaffSergeant:    "Staff Sergeant",
	ClassMasterSergeant:   "Master Sergeant",
	ClassSergeant:         "Sergeant",
	ClassSniper:           "Sniper",
	ClassSupportInfantry:  "Support Infantry",
	ClassMachineGunner:    "Machine Gunner",
	ClassBazooka:          "Bazooka",
	ClassMortar:           "Mortar",
	ClassGrenadier:        "Grenadier",
	ClassStosstruppe:      "Stosstruppe",
	ClassUnteroffizer:     "Unteroffizer",
	ClassSturmtruppe:      "Sturmtruppe",
	ClassScharfschutze:    "Scharfschutze",
	ClassFg42Zweibein:     "FG42 Zweibein",
	ClassFg42Zielfernrohr: "FG42 Zielfernrohr",
	ClassMG34Schutze:      "MG34 Schutze",
	ClassMG42Schutze:      "MG42 Schutze",
	ClassPanzerschreck:    "Panzerschreck",
	ClassAxisMortar:       "Axis Mortar",
	ClassBritishRifleman:  "British Rifleman",
	ClassSergeantMajor:    "Sergeant Major",
	ClassMarksman:         "Marksman",
	ClassGunner:           "Gunner",
	ClassRocketInfantry:   "Rocket Infantry",
	ClassBritishMortar:    "British Mortar",
	ClassRandom:           "Random",
}

// String renders the class name, or "?" for an unrecognized value.
func (c Class) String() string {
	if s, ok := classNames[c]; ok {
		return s
	}
	return "?"
}

// ClassFromByte decodes a wire class tag (1..=27).
func ClassFromByte(v byte) (Class, error) {
	c := Class(v)
	if _, ok := classNames[c]; !ok {
		return 0, fmt.Errorf("wire: unrecognized class tag %d", v)
	}
	return c, nil
}

// Weapon is a weapon or melee item. Closed enumeration; several tag values
// (15, 16, 33, 34, 41) are deliberately unassigned in the original catalog.
type Weapon uint8

const (
	WeaponKabar            Weapon = 1
	WeaponGermanKnife      Weapon = 2
	WeaponM1911            Weapon = 3
	WeaponLuger            Weapon = 4
	WeaponGarand           Weapon = 5
	WeaponScopedK98        Weapon = 6
	WeaponThompson         Weapon = 7
	WeaponStg44            Weapon = 8
	WeaponSpringfield      Weapon = 9
	WeaponK98              Weapon = 10
	WeaponBar              Weapon = 11
	WeaponMp40             Weapon = 12
	WeaponMk2Grenade       Weapon = 13
	WeaponStickGrenade     Weapon = 14
	WeaponMg42             Weapon = 17
	WeaponBrowning30Cal    Weapon = 18
	WeaponSpade            Weapon = 19
	WeaponM1Carbine        Weapon = 20
	WeaponMg34             Weapon = 21
	WeaponGreaseGun        Weapon = 22
	WeaponFg42             Weapon = 23
	WeaponK43              Weapon = 24
	WeaponLeeEnfield       Weapon = 25
	WeaponSten             Weapon = 26
	WeaponBren             Weapon = 27
	WeaponWebley           Weapon = 28
	WeaponBazooka          Weapon = 29
	WeaponPanzerschreck    Weapon = 30
	WeaponPiat             Weapon = 31
	WeaponMortar           Weapon = 32
	WeaponScopedFg42       Weapon = 35
	WeaponM1A1Carbine      Weapon = 36
	WeaponK98Bayonet       Weapon = 37
	WeaponScopedLeeEnfield Weapon = 38
	WeaponMillsBomb        Weapon = 39
	WeaponBritishKnife     Weapon = 40
	WeaponButtStock        Weapon = 42 // shared tag for Garand/K43 bayonet-less bash
	WeaponEnfieldBayonet   Weapon = 43
)

var weaponNames = map[Weapon]string{
	WeaponKabar:            "K-bar",
	WeaponGermanKnife:      "German Knife",
	WeaponM1911:            "M1911",
	WeaponLuger:            "Luger",
	WeaponGarand:           "Garand",
	WeaponScopedK98:        "Scoped K98",
	WeaponThompson:         "Thompson",
	WeaponStg44:            "StG44",
	WeaponSpringfield:      "Springfield",
	WeaponK98:              "K98",
	WeaponBar:              "BAR",
	WeaponMp40:             "MP40",
	WeaponMk2Grenade:       "Mk2 Grenade",
	WeaponStickGrenade:     "Stick Grenade",
	WeaponMg42:             "MG42",
	WeaponBrowning30Cal:    "Browning .30cal",
	WeaponSpade:            "Spade",
	WeaponM1Carbine:        "M1 Carbine",
	WeaponMg34:             "MG34",
	WeaponGreaseGun:        "Grease Gun",
	WeaponFg42:             "FG42",
	WeaponK43:              "K43",
	WeaponLeeEnfield:       "Lee-Enfield",
	WeaponSten:             "Sten",
	WeaponBren:             "Bren",
	WeaponWebley:           "Webley",
	WeaponBazooka:          "Bazooka",
	WeaponPanzerschreck:    "Panzerschreck",
	WeaponPiat:             "PIAT",
	WeaponMortar:           "Mortar",
	WeaponScopedFg42:       "Scoped FG42",
	WeaponM1A1Carbine:      "M1A1 Carbine",
	WeaponK98Bayonet:       "K98 Bayonet",
	WeaponScopedLeeEnfield: "Scoped Lee-Enfield",
	WeaponMillsBomb:        "Mills Bomb",
	WeaponBritishKnife:     "British Knife",
	WeaponButtStock:        "Butt Stock",
	WeaponEnfieldBayonet:   "Enfield Bayonet",
}

// String renders the weapon name, or "?" for an unrecognized value.
func (w Weapon) String() string {
	if s, ok := weaponNames[w]; ok {
		return s
	}
	return "?"
}

// WeaponFromByte decodes a wire weapon tag.
func WeaponFromByte(v byte) (Weapon, error) {
	w := Weapon(v)
	if _, ok := weaponNames[w]; !ok {
		return 0, fmt.Errorf("wire: unrecognized weapon tag %d", v)
	}
	return w, nil
}

// Ammo is an ammunition kind shared by one or more weapons.
type Ammo uint8

const (
	AmmoSmg           Ammo = 1
	AmmoAltRifle      Ammo = 2
	AmmoRifle         Ammo = 3
	AmmoPistol        Ammo = 4
	AmmoSpringfield   Ammo = 5
	AmmoHeavy         Ammo = 6
	AmmoMg42          Ammo = 7
	AmmoBrowning30Cal Ammo = 8
	AmmoRocket        Ammo = 13
	AmmoGrenade       Ammo = 9
)

var ammoNames = map[Ammo]string{
	AmmoSmg:           "SMG",
	AmmoAltRifle:      "Alt Rifle",
	AmmoRifle:         "Rifle",
	AmmoPistol:        "Pistol",
	AmmoSpringfield:   "Springfield",
	AmmoHeavy:         "Heavy",
	AmmoMg42:          "MG42",
	AmmoBrowning30Cal: "Browning .30cal",
	AmmoRocket:        "Rocket",
	AmmoGrenade:       "Grenade",
}

// String renders the ammo kind name, or "?" for an unrecognized value.
func (a Ammo) String() string {
	if s, ok := ammoNames[a]; ok {
		return s
	}
	return "?"
}

// AmmoFromByte decodes a wire ammo tag.
func AmmoFromByte(v byte) (Ammo, error) {
	a := Ammo(v)
	if _, ok := ammoNames[a]; !ok {
		return 0, fmt.Errorf("wire: unrecognized ammo tag %d", v)
	}
	return a, nil
}
