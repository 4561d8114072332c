package dignity

import (
	"strings"
	"testing"

	"astrolabe/internal/sky"
)

func TestGet(t *testing.T) {
	table := DefaultTable()
	tests := []struct {
		body sky.Body
		sign sky.Sign
		want State
	}{
		{body: sky.Sun, sign: sky.Leo, want: Domicile},
		{body: sky.Saturn, sign: sky.Cancer, want: Detriment},
		{body: sky.Mars, sign: sky.Cancer, want: Fall},
		{body: sky.Moon, sign: sky.Taurus, want: Exaltation},
		{body: sky.Venus, sign: sky.Gemini, want: Peregrine},
		{body: sky.Earth, sign: sky.Leo, want: Peregrine},
		{body: sky.NorthNode, sign: sky.Gemini, want: Peregrine},
	}
	for _, tt := range tests {
		t.Run(string(tt.body)+" in "+tt.sign.String(), func(t *testing.T) {
			if got := table.Get(tt.body, tt.sign); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestWeight(t *testing.T) {
	table := DefaultTable()
	if w := table.Weight(sky.Sun, sky.Leo); w != 2 {
		t.Fatalf("expected 2, got %d", w)
	}
	if w := table.Weight(sky.Sun, sky.Aries); w != 1 {
		t.Fatalf("expected 1, got %d", w)
	}
	if w := table.Weight(sky.Sun, sky.Gemini); w != 0 {
		t.Fatalf("expected 0, got %d", w)
	}
	if w := table.Weight(sky.Sun, sky.Aquarius); w != -1 {
		t.Fatalf("expected -1, got %d", w)
	}
	if w := table.Weight(sky.Sun, sky.Libra); w != -2 {
		t.Fatalf("expected -2, got %d", w)
	}
}

func TestNilTableIsPeregrine(t *testing.T) {
	var table *Table
	if got := table.Get(sky.Sun, sky.Leo); got != Peregrine {
		t.Fatalf("expected peregrine, got %s", got)
	}
}

func TestEvaluate(t *testing.T) {
	table := DefaultTable()

	t.Run("mixed chart", func(t *testing.T) {
		summary := table.Evaluate(sky.Positions{
			sky.Sun:    sky.LonToSign(125),
			sky.Saturn: sky.LonToSign(95),
			sky.Venus:  sky.LonToSign(65),
			sky.Earth:  sky.LonToSign(305),
		})
		if len(summary.Domicile) != 1 || summary.Domicile[0].Body != sky.Sun {
			t.Fatalf("unexpected domicile bucket: %+v", summary.Domicile)
		}
		if len(summary.Detriment) != 1 || summary.Detriment[0].Body != sky.Saturn {
			t.Fatalf("unexpected detriment bucket: %+v", summary.Detriment)
		}
		if len(summary.Peregrine) != 1 || summary.Peregrine[0].Body != sky.Venus {
			t.Fatalf("unexpected peregrine bucket: %+v", summary.Peregrine)
		}
		if summary.Score != 1 {
			t.Fatalf("expected score 1, got %d", summary.Score)
		}
		if !strings.HasPrefix(summary.Text, "Dignified (1): Sun in Leo (domicile).") {
			t.Fatalf("unexpected text: %q", summary.Text)
		}
		if !strings.Contains(summary.Text, "Debilitated (1): Saturn in Cancer (detriment).") {
			t.Fatalf("unexpected text: %q", summary.Text)
		}
	})

	t.Run("all peregrine", func(t *testing.T) {
		summary := table.Evaluate(sky.Positions{
			sky.Sun:  sky.LonToSign(65),
			sky.Moon: sky.LonToSign(65),
		})
		if summary.Text != AllPeregrine {
			t.Fatalf("expected all-peregrine text, got %q", summary.Text)
		}
	})

	t.Run("empty chart", func(t *testing.T) {
		summary := table.Evaluate(sky.Positions{})
		if summary.Text != AllPeregrine || summary.Score != 0 {
			t.Fatalf("unexpected summary: %+v", summary)
		}
	})
}

func TestMutualReceptions(t *testing.T) {
	table := DefaultTable()

	t.Run("venus and mars", func(t *testing.T) {
		receptions := table.MutualReceptions(sky.Positions{
			sky.Venus: sky.LonToSign(5),
			sky.Mars:  sky.LonToSign(35),
			sky.Sun:   sky.LonToSign(125),
		})
		if len(receptions) != 1 {
			t.Fatalf("expected 1 reception, got %d", len(receptions))
		}
		r := receptions[0]
		if r.A != sky.Venus || r.B != sky.Mars || r.SignA != sky.Aries || r.SignB != sky.Taurus {
			t.Fatalf("unexpected reception: %+v", r)
		}
	})

	t.Run("one-sided", func(t *testing.T) {
		receptions := table.MutualReceptions(sky.Positions{
			sky.Venus: sky.LonToSign(5),
			sky.Mars:  sky.LonToSign(95),
		})
		if len(receptions) != 0 {
			t.Fatalf("expected none, got %+v", receptions)
		}
	})
}

func TestStateText(t *testing.T) {
	var s State
	if err := s.UnmarshalText([]byte("Exaltation")); err != nil || s != Exaltation {
		t.Fatalf("expected exaltation, got %s (%v)", s, err)
	}
	if err := s.UnmarshalText([]byte("rulership")); err == nil {
		t.Fatalf("expected error")
	}
}
