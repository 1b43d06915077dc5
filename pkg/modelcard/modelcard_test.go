package modelcard

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Summaries(t *testing.T) {
	card := Default()

	assert.Equal(t, "R²: 0.8877, MSE: 36,009,030 (Lowest Loss)", card.PerformanceSummary())
	assert.Equal(t, "Test R²: 0.8877, Test MSE: 36,009,030 (Lowest Loss)", card.TestPerformanceSummary())
	assert.Equal(t, "88.77%", card.VarianceExplained())
	require.NoError(t, card.Validate())

	best, ok := card.Best()
	require.True(t, ok)
	assert.Equal(t, "linear_regression", best.Key)
}

func TestFormatMSE(t *testing.T) {
	assert.Equal(t, "36,058,265", FormatMSE(36058265))
	assert.Equal(t, "999", FormatMSE(999))
	assert.Equal(t, "1,000", FormatMSE(999.6))
}

func TestFormatSalary(t *testing.T) {
	assert.Equal(t, "$61,163.49", FormatSalary(61163.490856481665))
	assert.Equal(t, "$20,000.00", FormatSalary(20000))
	assert.Equal(t, "$150,000.00", FormatSalary(150000))
}

func TestBest_Empty(t *testing.T) {
	_, ok := (&ModelCard{BestModel: "x"}).Best()
	assert.False(t, ok)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("round trip", func(t *testing.T) {
		path := filepath.Join(dir, "card.json")
		data, err := json.Marshal(Default())
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, data, 0o644))

		card, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, Default(), card)
	})

	t.Run("display name falls back to best model", func(t *testing.T) {
		path := filepath.Join(dir, "minimal.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"bestModel":"Ridge"}`), 0o644))

		card, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "Ridge", card.DisplayName)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.json"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("invalid json", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{`), 0o644))
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("duplicate comparison key", func(t *testing.T) {
		path := filepath.Join(dir, "dup.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"bestModel":"A","comparison":[{"key":"a"},{"key":"a"}]}`), 0o644))
		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestRepositoryModelCard(t *testing.T) {
	card, err := Load(filepath.Join("..", "..", "models", "model_card.json"))
	require.NoError(t, err)
	assert.Equal(t, Default(), card)
}
