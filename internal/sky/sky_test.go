package sky

import (
	"encoding/json"
	"math"
	"testing"
)

func TestLonToSign(t *testing.T) {
	tests := []struct {
		name   string
		input  float64
		sign   Sign
		index  int
		degree float64
	}{
		{name: "zero is aries", input: 0, sign: Aries, index: 0, degree: 0},
		{name: "last degree", input: 359, sign: Pisces, index: 11, degree: 29},
		{name: "cusp belongs to next sign", input: 30, sign: Taurus, index: 1, degree: 0},
		{name: "negative wraps", input: -30, sign: Pisces, index: 11, degree: 0},
		{name: "above 360 wraps", input: 725.5, sign: Aries, index: 0, degree: 5.5},
		{name: "mid sign", input: 135.25, sign: Leo, index: 4, degree: 15.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := LonToSign(tt.input)
			if pos.Sign != tt.sign || pos.SignIndex != tt.index {
				t.Fatalf("expected %s (%d), got %s (%d)", tt.sign, tt.index, pos.Sign, pos.SignIndex)
			}
			if math.Abs(pos.Degree-tt.degree) > 1e-9 {
				t.Fatalf("expected degree %v, got %v", tt.degree, pos.Degree)
			}
		})
	}
}

func TestLonToSignInvariant(t *testing.T) {
	for l := -1000.0; l <= 1000; l += 7.3 {
		pos := LonToSign(l)
		if pos.Longitude < 0 || pos.Longitude >= 360 {
			t.Fatalf("longitude %v out of range for input %v", pos.Longitude, l)
		}
		if pos.Degree < 0 || pos.Degree >= 30 {
			t.Fatalf("degree %v out of range for input %v", pos.Degree, l)
		}
		rebuilt := float64(pos.SignIndex)*30 + pos.Degree
		if math.Abs(Normalize(rebuilt-l)) > 1e-6 && math.Abs(Normalize(rebuilt-l)-360) > 1e-6 {
			t.Fatalf("rebuilt %v not congruent to %v", rebuilt, l)
		}
	}
}

func TestSignedDelta(t *testing.T) {
	tests := []struct {
		from, to, want float64
	}{
		{from: 10, to: 20, want: 10},
		{from: 20, to: 10, want: -10},
		{from: 350, to: 10, want: 20},
		{from: 10, to: 350, want: -20},
		{from: 0, to: 180, want: 180},
		{from: 180, to: 0, want: 180},
	}
	for _, tt := range tests {
		if got := SignedDelta(tt.from, tt.to); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("SignedDelta(%v, %v) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestSeparation(t *testing.T) {
	if got := Separation(3, 357); math.Abs(got-6) > 1e-9 {
		t.Fatalf("expected 6, got %v", got)
	}
	if got := Separation(0, 180); got != 180 {
		t.Fatalf("expected 180, got %v", got)
	}
	if Separation(40, 100) != Separation(100, 40) {
		t.Fatalf("expected symmetric separation")
	}
}

func TestParseBody(t *testing.T) {
	if body, ok := ParseBody("north node"); !ok || body != NorthNode {
		t.Fatalf("expected NorthNode, got %q", body)
	}
	if body, ok := ParseBody("MARS"); !ok || body != Mars {
		t.Fatalf("expected Mars, got %q", body)
	}
	if _, ok := ParseBody("Pluto"); ok {
		t.Fatalf("expected Pluto to be unknown")
	}
}

func TestPositionsBodiesRosterOrder(t *testing.T) {
	positions := Positions{
		Saturn: LonToSign(10),
		Sun:    LonToSign(20),
		Moon:   LonToSign(30),
	}
	bodies := positions.Bodies()
	if len(bodies) != 3 || bodies[0] != Sun || bodies[1] != Moon || bodies[2] != Saturn {
		t.Fatalf("unexpected order: %v", bodies)
	}
}

func TestSignJSON(t *testing.T) {
	payload, err := json.Marshal(LonToSign(95))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded Position
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Sign != Cancer {
		t.Fatalf("expected Cancer, got %s", decoded.Sign)
	}
}
