package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreMBTIAllHigh(t *testing.T) {
	t.Parallel()

	res, err := ScoreMBTI(polarMBTI(true))
	require.NoError(t, err)

	assert.Equal(t, "ENFP", res.Type)
	assert.Equal(t, MBTIDimensionScores{EI: 100, SN: 100, TF: 100, JP: 100}, res.Dimensions)
	assert.Equal(t, "The Campaigner - Enthusiastic, creative and sociable free spirits.", res.Description)
}

func TestScoreMBTIAllLow(t *testing.T) {
	t.Parallel()

	res, err := ScoreMBTI(polarMBTI(false))
	require.NoError(t, err)

	assert.Equal(t, "ISTJ", res.Type)
	assert.Equal(t, MBTIDimensionScores{EI: 20, SN: 20, TF: 20, JP: 20}, res.Dimensions)
	assert.Equal(t, "The ISTJ type - A unique combination of traits and preferences.", res.Description)
	assert.Equal(t, []string{"Analytical", "Reliable", "Creative", "Empathetic"}, res.Strengths)
}

func TestScoreMBTIIntj(t *testing.T) {
	t.Parallel()

	answers := polarMBTI(false)
	for _, q := range MBTIQuestions() {
		if q.Dimension == DimensionSN {
			v := 5
			if q.Reverse {
				v = 1
			}
			answers[q.ID] = v
		}
	}

	res, err := ScoreMBTI(answers)
	require.NoError(t, err)
	assert.Equal(t, "INTJ", res.Type)
	assert.Contains(t, res.Description, "The Architect")
}

func TestScoreMBTIRanges(t *testing.T) {
	t.Parallel()

	for v := MinAnswer; v <= MaxAnswer; v++ {
		res, err := ScoreMBTI(uniformMBTI(v))
		require.NoError(t, err)

		for _, d := range Dimensions {
			p := res.Dimensions.Get(d)
			assert.GreaterOrEqual(t, p, 20.0)
			assert.LessOrEqual(t, p, 100.0)
		}
		require.Len(t, res.Type, 4)
		assert.Contains(t, "EI", string(res.Type[0]))
		assert.Contains(t, "NS", string(res.Type[1]))
		assert.Contains(t, "FT", string(res.Type[2]))
		assert.Contains(t, "PJ", string(res.Type[3]))
	}
}

func TestReverseFiveEqualsForwardOne(t *testing.T) {
	t.Parallel()

	rev, ok := LookupMBTI("ei2")
	require.True(t, ok)
	fwd, ok := LookupMBTI("ei1")
	require.True(t, ok)

	assert.Equal(t, EffectiveScore(fwd, 1), EffectiveScore(rev, 5))
	assert.Equal(t, EffectiveScore(fwd, 5), EffectiveScore(rev, 1))
}

func TestTypeCodeTieTakesLowLetter(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ISTJ", TypeCode(MBTIDimensionScores{EI: 50, SN: 50, TF: 50, JP: 50}))
	assert.Equal(t, "ENFP", TypeCode(MBTIDimensionScores{EI: 50.1, SN: 51, TF: 60, JP: 100}))
}

func TestProfileCopiesAreIndependent(t *testing.T) {
	t.Parallel()

	p := LookupProfile("INTJ")
	p.Strengths[0] = "mutated"
	assert.Equal(t, "Strategic thinking", LookupProfile("INTJ").Strengths[0])

	res, err := ScoreMBTI(polarMBTI(true))
	require.NoError(t, err)
	res.WorkStyle[0] = "mutated"
	assert.Equal(t, "Collaborative", LookupProfile("ENFP").WorkStyle[0])
}

func TestScoreMBTIDeterministic(t *testing.T) {
	t.Parallel()

	answers := uniformMBTI(4)
	answers["tf1"] = 1
	first, err := ScoreMBTI(answers)
	require.NoError(t, err)
	second, err := ScoreMBTI(answers)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
