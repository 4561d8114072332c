package motion

import (
	"fmt"
	"time"

	"astrolabe/internal/aspect"
	"astrolabe/internal/sky"
)

const (
	Step     = 2 * time.Hour
	MaxSteps = 36
	// TightOrb is the residual below which the Moon counts as aspecting a
	// body.
	TightOrb = 1.0
)

var partners = []sky.Body{sky.Sun, sky.Mercury, sky.Venus, sky.Mars, sky.Jupiter, sky.Saturn}

// Void is the result of a void-of-course scan. When Void is true the Moon
// leaves Sign at Until without perfecting another aspect. Aspect is set when
// the scan stopped on an aspect. Steps counts the forward samples taken.
type Void struct {
	Void     bool           `json:"void"`
	Sign     sky.Sign       `json:"sign"`
	NextSign *sky.Sign      `json:"next_sign,omitempty"`
	Until    *time.Time     `json:"until,omitempty"`
	Aspect   *aspect.Aspect `json:"aspect,omitempty"`
	Steps    int            `json:"steps"`
}

// VoidOfCourse checks the Moon's aspects at t, then walks forward in Step
// increments for at most MaxSteps. Other bodies are sampled once at t; only
// the Moon is resampled. A sign change ends the scan as void. A new aspect
// within TightOrb ends it as not void. Exhausting the steps is not void.
func VoidOfCourse(sample Sampler, t time.Time) (Void, error) {
	others := make(map[sky.Body]float64, len(partners))
	for _, body := range partners {
		lon, err := sample(body, t)
		if err != nil {
			return Void{}, fmt.Errorf("sampling %s: %w", body, err)
		}
		others[body] = lon
	}

	moon, err := sample(sky.Moon, t)
	if err != nil {
		return Void{}, fmt.Errorf("sampling %s: %w", sky.Moon, err)
	}
	sign := sky.LonToSign(moon).Sign
	result := Void{Sign: sign}

	if a, ok := tightAspect(moon, others); ok {
		result.Aspect = &a
		return result, nil
	}

	for step := 1; step <= MaxSteps; step++ {
		at := t.Add(time.Duration(step) * Step)
		moon, err = sample(sky.Moon, at)
		if err != nil {
			return Void{}, fmt.Errorf("sampling %s: %w", sky.Moon, err)
		}
		result.Steps = step

		if next := sky.LonToSign(moon).Sign; next != sign {
			result.Void = true
			result.NextSign = &next
			result.Until = &at
			return result, nil
		}
		if a, ok := tightAspect(moon, others); ok {
			result.Aspect = &a
			return result, nil
		}
	}
	return result, nil
}

func tightAspect(moon float64, others map[sky.Body]float64) (aspect.Aspect, bool) {
	var best aspect.Aspect
	found := false
	for _, body := range partners {
		lon, ok := others[body]
		if !ok {
			continue
		}
		a, ok := aspect.Between(sky.Moon, body, moon, lon, tightConfig)
		if !ok || a.Orb >= TightOrb {
			continue
		}
		if !found || a.Orb < best.Orb {
			best = a
			found = true
		}
	}
	return best, found
}

var tightConfig = func() aspect.Config {
	orbs := make(map[aspect.Kind]float64)
	for _, kind := range aspect.Kinds() {
		orbs[kind] = TightOrb
	}
	return aspect.Config{Name: "void", Orbs: orbs, ExactBelow: TightOrb}
}()
