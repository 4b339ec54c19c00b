package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/callcentre-sim/callcentre-sim/sim/dist"
)

func TestNewExperiment_Defaults(t *testing.T) {
	exp, err := NewExperiment()
	require.NoError(t, err)

	assert.Equal(t, DefaultOperators, exp.NOperators)
	assert.Equal(t, DefaultMeanIAT, exp.MeanIAT)
	assert.Equal(t, StreamsBasic, exp.NStreams)
	assert.False(t, exp.WithCallback)
	assert.NotNil(t, exp.ArrivalDist)
	assert.NotNil(t, exp.CallDist)
	assert.Nil(t, exp.CallbackDist)
	assert.Nil(t, exp.NurseDist)
}

func TestNewExperiment_CallbackModelUsesFourStreams(t *testing.T) {
	exp, err := NewExperiment(WithCallback(0.4))
	require.NoError(t, err)

	assert.Equal(t, StreamsCallback, exp.NStreams)
	assert.NotNil(t, exp.CallbackDist)
	assert.NotNil(t, exp.NurseDist)
}

func TestNewExperiment_ValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		opts []Option
	}{
		{"zero operators", []Option{WithOperators(0)}},
		{"negative operators", []Option{WithOperators(-1)}},
		{"zero nurses with callback", []Option{WithCallback(0.4), WithNurses(0)}},
		{"non-positive mean iat", []Option{WithMeanIAT(0)}},
		{"triangular low > mode", []Option{WithCallDuration(8, 7, 10)}},
		{"triangular mode > high", []Option{WithCallDuration(5, 11, 10)}},
		{"probability above one", []Option{WithCallback(1.5)}},
		{"nurse low > high", []Option{WithCallback(0.4), WithNurseConsult(20, 10)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewExperiment(tc.opts...)
			assert.Error(t, err)
		})
	}
}

func TestNewExperiment_StreamCountMismatchFails(t *testing.T) {
	_, err := NewExperiment(WithStreams(3))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "streams")

	// Callback model with the basic stream count is also a mismatch.
	_, err = NewExperiment(WithCallback(0.4), WithStreams(StreamsBasic))
	assert.Error(t, err)
}

func TestSetRandomNumberSet_IdempotentRederivation(t *testing.T) {
	exp, err := NewExperiment(WithCallback(0.4))
	require.NoError(t, err)

	require.NoError(t, exp.SetRandomNumberSet(3))
	first := dist.SampleN(exp.ArrivalDist, 50)
	firstNurse := dist.SampleN(exp.NurseDist, 50)

	// Re-deriving with the same identifier, with no intervening run, must
	// rebuild identical distributions.
	require.NoError(t, exp.SetRandomNumberSet(3))
	second := dist.SampleN(exp.ArrivalDist, 50)
	secondNurse := dist.SampleN(exp.NurseDist, 50)

	assert.Equal(t, first, second)
	assert.Equal(t, firstNurse, secondNurse)
}

func TestSetRandomNumberSet_DistinctSetsDiffer(t *testing.T) {
	exp, err := NewExperiment()
	require.NoError(t, err)

	require.NoError(t, exp.SetRandomNumberSet(0))
	a := dist.SampleN(exp.ArrivalDist, 50)
	require.NoError(t, exp.SetRandomNumberSet(1))
	b := dist.SampleN(exp.ArrivalDist, 50)

	assert.NotEqual(t, a, b)
}

func TestExperiment_SpecOverridesReplaceFamilies(t *testing.T) {
	exp, err := NewExperiment(
		WithArrivalSpec(dist.Spec{Type: "fixed", Params: map[string]float64{"value": 5}}),
		WithCallSpec(dist.Spec{Type: "fixed", Params: map[string]float64{"value": 5}}),
	)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		assert.Equal(t, 5.0, exp.ArrivalDist.Sample())
		assert.Equal(t, 5.0, exp.CallDist.Sample())
	}
}

func TestInitResults_ResetsAccumulator(t *testing.T) {
	exp, err := NewExperiment()
	require.NoError(t, err)

	exp.Results.RecordWaitingTime(1.0)
	exp.Results.AddCallDuration(2.0)
	exp.InitResults()

	assert.Empty(t, exp.Results.WaitingTimes)
	assert.Zero(t, exp.Results.TotalCallDuration)
}
