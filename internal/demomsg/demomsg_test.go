package demomsg

import (
	"testing"

	"github.com/doddemo/analyzer/internal/wire"
)

func TestDecodeDeathMsg(t *testing.T) {
	msg, err := Decode("DeathMsg", []byte{1, 2, byte(wire.WeaponGarand)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dm, ok := msg.(*DeathMsg)
	if !ok {
		t.Fatalf("got %T, want *DeathMsg", msg)
	}
	if dm.KillerClientIndex != 1 || dm.VictimClientIndex != 2 || dm.Weapon != wire.WeaponGarand {
		t.Fatalf("unexpected fields: %+v", dm)
	}
}

func TestDecodeDeathMsgTrailingBytes(t *testing.T) {
	if _, err := Decode("DeathMsg", []byte{1, 2, byte(wire.WeaponGarand), 0xff}); err == nil {
		t.Fatalf("expected error for trailing byte")
	}
}

func TestDecodeUnknownName(t *testing.T) {
	if _, err := Decode("NotARealMessage", []byte{1}); err == nil {
		t.Fatalf("expected error for unknown message name")
	}
}

func TestDecodeRoundStateRejectsBadTag(t *testing.T) {
	if _, err := Decode("RoundState", []byte{2}); err == nil {
		t.Fatalf("expected error for RoundState tag 2 (not a valid state)")
	}
	for _, v := range []byte{0, 1, 3, 4, 5} {
		if _, err := Decode("RoundState", []byte{v}); err != nil {
			t.Fatalf("RoundState(%d) unexpected error: %v", v, err)
		}
	}
}

func TestDecodeScoreShort(t *testing.T) {
	msg, err := Decode("ScoreShort", []byte{5, 10, 0, 3, 0, 1, 0, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ss := msg.(*ScoreShort)
	if ss.ClientIndex != 5 || ss.Score != 10 || ss.Kills != 3 || ss.Deaths != 1 {
		t.Fatalf("unexpected fields: %+v", ss)
	}
}

func TestDecodeTextMsgOptionalArgs(t *testing.T) {
	payload := append([]byte{2}, "hello\x00"...)
	payload = append(payload, "one\x00"...)
	msg, err := Decode("TextMsg", payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tm := msg.(*TextMsg)
	if tm.Text != "hello" || tm.Arg1 != "one" || tm.Arg2 != "" {
		t.Fatalf("unexpected fields: %+v", tm)
	}
}

func TestDecodeClientAreasWithHudIcon(t *testing.T) {
	payload := append([]byte{1, 255}, "icon\x00"...)
	msg, err := Decode("ClientAreas", payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ca := msg.(*ClientAreas)
	if ca.HudIcon != "icon" {
		t.Fatalf("unexpected HudIcon: %q", ca.HudIcon)
	}
}

func TestDecodeClientAreasWithoutHudIcon(t *testing.T) {
	msg, err := Decode("ClientAreas", []byte{1, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ca := msg.(*ClientAreas)
	if ca.HudIcon != "" {
		t.Fatalf("unexpected HudIcon: %q", ca.HudIcon)
	}
}

func TestDecodeInitObjEmpty(t *testing.T) {
	msg, err := Decode("InitObj", []byte{0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	io := msg.(*InitObj)
	if len(io.Objectives) != 0 {
		t.Fatalf("expected zero objectives, got %d", len(io.Objectives))
	}
}

func TestDecodeInitObjOne(t *testing.T) {
	payload := []byte{1, 10, 0, 3, 1, 0xff, 1, 2, 3, 5, 0, 6, 0}
	msg, err := Decode("InitObj", payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	io := msg.(*InitObj)
	if len(io.Objectives) != 1 {
		t.Fatalf("expected 1 objective, got %d", len(io.Objectives))
	}
	obj := io.Objectives[0]
	if obj.EntityIndex != 10 || obj.AreaIndex != 3 || obj.Team != wire.TeamAllies {
		t.Fatalf("unexpected objective: %+v", obj)
	}
}

func TestDecodeServerNameConsumesRemainder(t *testing.T) {
	msg, err := Decode("ServerName", []byte("a cool server"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sn := msg.(*ServerName); sn.Name != "a cool server" {
		t.Fatalf("unexpected name: %q", sn.Name)
	}
}

func TestDecodeCapMsg(t *testing.T) {
	payload := append([]byte{7}, "flag_a\x00"...)
	payload = append(payload, byte(wire.TeamAllies))
	msg, err := Decode("CapMsg", payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cm := msg.(*CapMsg)
	if cm.ClientIndex != 7 || cm.PointName != "flag_a" || cm.Team != wire.TeamAllies {
		t.Fatalf("unexpected fields: %+v", cm)
	}
}

func TestDecodeCapMsgRejectsTeamZero(t *testing.T) {
	payload := append([]byte{7}, "flag_a\x00"...)
	payload = append(payload, 0)
	if _, err := Decode("CapMsg", payload); err == nil {
		t.Fatalf("expected error for team tag 0")
	}
}

func TestDecodeClCorpse(t *testing.T) {
	payload := append([]byte{}, "player\x00"...)
	payload = append(payload, 0, 0, 0, 0, 0, 0) // origin [3]int16
	payload = append(payload, 0, 0, 0)          // angle [3]int8
	payload = append(payload, 1)                // seq
	payload = append(payload, 0, 0)             // body (uint16)
	payload = append(payload, byte(wire.TeamAxis))
	msg, err := Decode("ClCorpse", payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cc := msg.(*ClCorpse)
	if cc.Team != wire.TeamAxis {
		t.Fatalf("unexpected fields: %+v", cc)
	}
}

func TestDecodeClCorpseRejectsTeamZero(t *testing.T) {
	payload := append([]byte{}, "player\x00"...)
	payload = append(payload, 0, 0, 0, 0, 0, 0)
	payload = append(payload, 0, 0, 0)
	payload = append(payload, 1)
	payload = append(payload, 0, 0)
	payload = append(payload, 0)
	if _, err := Decode("ClCorpse", payload); err == nil {
		t.Fatalf("expected error for team tag 0")
	}
}

func TestDecodePTeam(t *testing.T) {
	msg, err := Decode("PTeam", []byte{3, byte(wire.TeamAxis)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pt := msg.(*PTeam)
	if pt.ClientIndex != 3 || pt.Team != wire.TeamAxis {
		t.Fatalf("unexpected fields: %+v", pt)
	}
}

func TestDecodePTeamRejectsTeamZero(t *testing.T) {
	if _, err := Decode("PTeam", []byte{3, 0}); err == nil {
		t.Fatalf("expected error for team tag 0")
	}
}

func TestDecodePlayersIn(t *testing.T) {
	msg, err := Decode("PlayersIn", []byte{2, byte(wire.TeamAllies), 1, 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pi := msg.(*PlayersIn)
	if pi.Team != wire.TeamAllies || pi.PlayersInsideArea != 1 || pi.RequiredPlayersForArea != 3 {
		t.Fatalf("unexpected fields: %+v", pi)
	}
}

func TestDecodePlayersInRejectsTeamZero(t *testing.T) {
	if _, err := Decode("PlayersIn", []byte{2, 0, 1, 3}); err == nil {
		t.Fatalf("expected error for team tag 0")
	}
}

func TestDecodeStartProg(t *testing.T) {
	msg, err := Decode("StartProg", []byte{4, byte(wire.TeamAxis), 30, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sp := msg.(*StartProg)
	if sp.Team != wire.TeamAxis {
		t.Fatalf("unexpected fields: %+v", sp)
	}
}

func TestDecodeStartProgRejectsTeamZero(t *testing.T) {
	if _, err := Decode("StartProg", []byte{4, 0, 30, 0}); err == nil {
		t.Fatalf("expected error for team tag 0")
	}
}

func TestDecodeTeamScore(t *testing.T) {
	msg, err := Decode("TeamScore", []byte{byte(wire.TeamAllies), 5, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ts := msg.(*TeamScore)
	if ts.Team != wire.TeamAllies || ts.Score != 5 {
		t.Fatalf("unexpected fields: %+v", ts)
	}
}

func TestDecodeTeamScoreRejectsTeamZero(t *testing.T) {
	if _, err := Decode("TeamScore", []byte{0, 5, 0}); err == nil {
		t.Fatalf("expected error for team tag 0")
	}
}

func TestDecodeMotd(t *testing.T) {
	payload := append([]byte{1}, "welcome"...)
	msg, err := Decode("MOTD", payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := msg.(*Motd)
	if !m.IsTerminal || m.Text != "welcome" {
		t.Fatalf("unexpected fields: %+v", m)
	}
}
