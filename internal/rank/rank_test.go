package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply_FirstPass(t *testing.T) {
	out := Apply(Initial(), DefaultConfig(), 95)

	assert.Equal(t, 2, out.AwardedPoints)
	assert.Equal(t, State{BeltIndex: 0, Stripes: 0, Points: 2}, out.State)
	assert.False(t, out.LeveledUp)
}

func TestApply_SecondPassCarriesIntoStripe(t *testing.T) {
	cfg := DefaultConfig()
	first := Apply(Initial(), cfg, 95)
	second := Apply(first.State, cfg, 92)

	assert.Equal(t, 1, second.State.Points)
	assert.Equal(t, 1, second.State.Stripes)
	assert.False(t, second.LeveledUp)
}

func TestApply_FailAwardsFailPoints(t *testing.T) {
	out := Apply(Initial(), DefaultConfig(), 89)

	assert.Equal(t, 1, out.AwardedPoints)
	assert.Equal(t, 1, out.State.Points)
}

func TestApply_PassScoreIsInclusive(t *testing.T) {
	out := Apply(Initial(), DefaultConfig(), 90)
	assert.Equal(t, 2, out.AwardedPoints)
}

func TestApply_PromotesBelt(t *testing.T) {
	cfg := DefaultConfig()
	start := State{BeltIndex: 2, Stripes: cfg.StripesPerBelt - 1, Points: cfg.PointsPerStripe - 1}

	out := Apply(start, cfg, 100)

	assert.True(t, out.LeveledUp)
	assert.Equal(t, State{BeltIndex: 3, Stripes: 0, Points: 1}, out.State)
}

func TestApply_CascadesMultiplePromotions(t *testing.T) {
	cfg := Config{PointsPerStripe: 1, StripesPerBelt: 1, PassPoints: 3, FailPoints: 0, PassScore: 50}

	out := Apply(Initial(), cfg, 80)

	assert.True(t, out.LeveledUp)
	assert.Equal(t, State{BeltIndex: 3, Stripes: 0, Points: 0}, out.State)
}

func TestApply_TerminalBeltDiscardsPoints(t *testing.T) {
	cfg := DefaultConfig()
	capped := State{BeltIndex: len(Belts) - 1, Stripes: cfg.StripesPerBelt, Points: 0}

	for _, score := range []int{0, 50, 90, 100} {
		out := Apply(capped, cfg, score)
		assert.Equal(t, capped, out.State, "score %d", score)
		assert.False(t, out.LeveledUp, "score %d", score)
	}
}

func TestApply_TerminalBeltSaturatesFromBelow(t *testing.T) {
	cfg := DefaultConfig()
	start := State{BeltIndex: len(Belts) - 1, Stripes: cfg.StripesPerBelt - 1, Points: 2}

	out := Apply(start, cfg, 100)

	assert.Equal(t, State{BeltIndex: len(Belts) - 1, Stripes: cfg.StripesPerBelt, Points: 0}, out.State)
	assert.False(t, out.LeveledUp)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	start := State{BeltIndex: 1, Stripes: 2, Points: 2}
	copyOf := start
	Apply(start, DefaultConfig(), 100)
	assert.Equal(t, copyOf, start)
}

func TestProgress_Bounds(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 0, Progress(Initial(), cfg))

	maxed := State{BeltIndex: len(Belts) - 1, Stripes: cfg.StripesPerBelt, Points: cfg.PointsPerStripe}
	assert.Equal(t, 100, Progress(maxed, cfg))
}

func TestProgress_MonotonicAcrossLadder(t *testing.T) {
	cfg := DefaultConfig()
	state := Initial()
	last := Progress(state, cfg)

	scores := []int{95, 40, 100, 90, 10, 99}
	for i := 0; i < 200; i++ {
		state = Apply(state, cfg, scores[i%len(scores)]).State
		p := Progress(state, cfg)
		require.GreaterOrEqual(t, p, last, "step %d regressed", i)
		require.LessOrEqual(t, p, 100)
		last = p
	}
	assert.Equal(t, 100, last)
	assert.Equal(t, "Coral", BeltName(state))
}

func TestBeltName_Clamps(t *testing.T) {
	assert.Equal(t, "White", BeltName(Initial()))
	assert.Equal(t, "Purple", BeltName(State{BeltIndex: 2}))
	assert.Equal(t, "Coral", BeltName(State{BeltIndex: 42}))
}

func TestPointsToNextStripe(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 3, PointsToNextStripe(Initial(), cfg))
	assert.Equal(t, 1, PointsToNextStripe(State{Points: 2}, cfg))
	assert.Equal(t, 0, PointsToNextStripe(State{BeltIndex: len(Belts) - 1, Stripes: cfg.StripesPerBelt}, cfg))
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	bad := Config{PointsPerStripe: 0, StripesPerBelt: -1, PassScore: 101}
	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pointsPerStripe")
	assert.Contains(t, err.Error(), "stripesPerBelt")
	assert.Contains(t, err.Error(), "passScore")
}
