package wire

import "testing"

func TestReaderPrimitives(t *testing.T) {
	r := NewReader([]byte{0x01, 0xff, 0x02, 0x00, 'h', 'i', 0x00, 'r', 'e', 's', 't'})

	u8, err := r.U8()
	if err != nil || u8 != 1 {
		t.Fatalf("U8 = %d, %v", u8, err)
	}
	i8, err := r.I8()
	if err != nil || i8 != -1 {
		t.Fatalf("I8 = %d, %v", i8, err)
	}
	u16, err := r.U16()
	if err != nil || u16 != 2 {
		t.Fatalf("U16 = %d, %v", u16, err)
	}
	s, err := r.NullString()
	if err != nil || s != "hi" {
		t.Fatalf("NullString = %q, %v", s, err)
	}
	if rest := r.RestAsString(); rest != "rest" {
		t.Fatalf("RestAsString = %q", rest)
	}
	if !r.AllConsumed() {
		t.Fatalf("expected all consumed")
	}
}

func TestReaderShortRead(t *testing.T) {
	r := NewReader([]byte{0x01})
	if _, err := r.U16(); err == nil {
		t.Fatalf("expected error reading U16 past end")
	}
}

func TestNullStringUnterminated(t *testing.T) {
	r := NewReader([]byte{'a', 'b'})
	if _, err := r.NullString(); err == nil {
		t.Fatalf("expected error for unterminated string")
	}
}

func TestNullStringImmediateNUL(t *testing.T) {
	r := NewReader([]byte{0x00, 'x'})
	s, err := r.NullString()
	if err != nil || s != "" {
		t.Fatalf("NullString = %q, %v", s, err)
	}
}

func TestTeamFromByteNullable(t *testing.T) {
	cases := []struct {
		in      byte
		want    Team
		wantErr bool
	}{
		{0, TeamNone, false},
		{1, TeamAllies, false},
		{2, TeamAxis, false},
		{3, TeamSpectators, false},
		{9, 0, true},
	}
	for _, c := range cases {
		got, err := TeamFromByte(c.in)
		if (err != nil) != c.wantErr {
			t.Fatalf("TeamFromByte(%d) err=%v, wantErr=%v", c.in, err, c.wantErr)
		}
		if err == nil && got != c.want {
			t.Fatalf("TeamFromByte(%d) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestTeamFromByteStrictRejectsZero(t *testing.T) {
	cases := []struct {
		in      byte
		want    Team
		wantErr bool
	}{
		{0, 0, true},
		{1, TeamAllies, false},
		{2, TeamAxis, false},
		{3, TeamSpectators, false},
		{9, 0, true},
	}
	for _, c := range cases {
		got, err := TeamFromByteStrict(c.in)
		if (err != nil) != c.wantErr {
			t.Fatalf("TeamFromByteStrict(%d) err=%v, wantErr=%v", c.in, err, c.wantErr)
		}
		if err == nil && got != c.want {
			t.Fatalf("TeamFromByteStrict(%d) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestWeaponFromByteUnassignedTag(t *testing.T) {
	if _, err := WeaponFromByte(15); err == nil {
		t.Fatalf("expected error for unassigned weapon tag 15")
	}
}

func TestClassFromByteFullRange(t *testing.T) {
	for v := byte(1); v <= 27; v++ {
		if _, err := ClassFromByte(v); err != nil {
			t.Fatalf("ClassFromByte(%d) unexpected error: %v", v, err)
		}
	}
	if _, err := ClassFromByte(28); err == nil {
		t.Fatalf("expected error for class tag 28")
	}
}
