package modelcard

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "model_card.json")

	require.NoError(t, Default().Save(path))

	card, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), card)
}

func TestAddCandidate(t *testing.T) {
	card := Default()

	require.NoError(t, card.AddCandidate(Candidate{Key: "ridge", Name: "Ridge", TestMSE: 36100000, TestR2: 0.8874}))
	assert.Len(t, card.Comparison, 5)

	assert.Error(t, card.AddCandidate(Candidate{Key: "ridge", Name: "Ridge"}))
	assert.Error(t, card.AddCandidate(Candidate{Key: "lasso"}))
	assert.Len(t, card.Comparison, 5)
}

func TestSet(t *testing.T) {
	card := Default()

	require.NoError(t, card.Set("displayName", "Linear Regression"))
	require.NoError(t, card.Set("testR2", "0.9"))
	require.NoError(t, card.Set("testSamples", "100"))
	assert.Equal(t, "Linear Regression", card.DisplayName)
	assert.Equal(t, 0.9, card.Metrics.TestR2)
	assert.Equal(t, 100, card.Training.TestSamples)

	assert.Error(t, card.Set("testMSE", "lots"))
	assert.Error(t, card.Set("trainingSamples", "1.5"))
	assert.Error(t, card.Set("color", "blue"))
}

func TestCheckSelection(t *testing.T) {
	require.NoError(t, Default().CheckSelection())
	require.NoError(t, (&ModelCard{BestModel: "A"}).CheckSelection())

	card := Default()
	require.NoError(t, card.AddCandidate(Candidate{Key: "ridge", Name: "Ridge", TestMSE: 1, TestR2: 0.99}))
	err := card.CheckSelection()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Ridge" has the lowest test MSE`)

	card = Default()
	card.Metrics.TestMSE = 1
	assert.Error(t, card.CheckSelection())
}
