package shift

import (
	"math"
	"testing"

	"astrolabe/internal/sky"
)

func TestAnalyzeIdentity(t *testing.T) {
	positions := sky.Positions{
		sky.Sun:  sky.LonToSign(125.3),
		sky.Moon: sky.LonToSign(3.9),
		sky.Mars: sky.LonToSign(359.99),
	}
	for _, r := range Analyze(positions, positions) {
		if r.Shifted || r.Delta != 0 || r.Direction != Forward {
			t.Fatalf("expected no shift for %s, got %+v", r.Body, r)
		}
	}
}

func TestAnalyzeMarsIngress(t *testing.T) {
	records := Analyze(
		sky.Positions{sky.Mars: sky.LonToSign(25)},
		sky.Positions{sky.Mars: sky.LonToSign(65)},
	)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	r := records[0]
	if !r.Shifted || r.Delta != 40 || r.Direction != Forward {
		t.Fatalf("unexpected record: %+v", r)
	}
	if r.From != sky.Aries || r.To != sky.Gemini {
		t.Fatalf("expected Aries to Gemini, got %s to %s", r.From, r.To)
	}
}

func TestAnalyzeDirection(t *testing.T) {
	tests := []struct {
		name  string
		from  float64
		to    float64
		delta float64
		dir   Direction
	}{
		{name: "retreat", from: 65, to: 50, delta: 15, dir: Backward},
		{name: "advance", from: 10, to: 12, delta: 2, dir: Forward},
		{name: "wrap uses shortest arc for delta", from: 350, to: 10, delta: 20, dir: Backward},
		{name: "wrap the other way", from: 10, to: 350, delta: 20, dir: Forward},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := Analyze(
				sky.Positions{sky.Venus: sky.LonToSign(tt.from)},
				sky.Positions{sky.Venus: sky.LonToSign(tt.to)},
			)
			r := records[0]
			if math.Abs(r.Delta-tt.delta) > 1e-9 || r.Direction != tt.dir {
				t.Fatalf("expected delta %v %s, got %v %s", tt.delta, tt.dir, r.Delta, r.Direction)
			}
		})
	}
}

func TestAnalyzeSkipsUnmatched(t *testing.T) {
	records := Analyze(
		sky.Positions{sky.Sun: sky.LonToSign(10), sky.Earth: sky.LonToSign(190)},
		sky.Positions{sky.Sun: sky.LonToSign(40), sky.Moon: sky.LonToSign(5)},
	)
	if len(records) != 1 || records[0].Body != sky.Sun {
		t.Fatalf("expected only the Sun, got %+v", records)
	}
}

func TestIngresses(t *testing.T) {
	records := Analyze(
		sky.Positions{sky.Sun: sky.LonToSign(10), sky.Mars: sky.LonToSign(25)},
		sky.Positions{sky.Sun: sky.LonToSign(12), sky.Mars: sky.LonToSign(31)},
	)
	ingresses := Ingresses(records)
	if len(ingresses) != 1 || ingresses[0].Body != sky.Mars {
		t.Fatalf("expected the Mars ingress, got %+v", ingresses)
	}
}
