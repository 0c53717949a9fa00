package llm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testTask struct {
	Title string `json:"title"`
	XP    int    `json:"xp"`
}

type testPayload struct {
	Message string     `json:"message"`
	Tasks   []testTask `json:"tasks"`
	Weight  float64    `json:"weight"`
}

func TestExtractJSON_CleanJSON(t *testing.T) {
	raw := `{"message":"Here you go","tasks":[{"title":"Draft outline","xp":20}]}`
	result, err := ExtractJSON[testPayload](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "Here you go", result.Message)
	require.Len(t, result.Tasks, 1)
	assert.Equal(t, 20, result.Tasks[0].XP)
}

func TestExtractJSON_FencedWithChatter(t *testing.T) {
	raw := "Sure! Here are tasks:\n```json\n{\"message\":\"ok\",\"tasks\":[]}\n```\nGood luck."
	result, err := ExtractJSON[testPayload](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", result.Message)
	assert.Empty(t, result.Tasks)
}

func TestExtractJSON_BareArray(t *testing.T) {
	raw := `Tasks: [{"title":"A","xp":10},{"title":"B","xp":15}] done`
	result, err := ExtractJSON[[]testTask](raw, nil)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "B", result[1].Title)
}

func TestExtractJSON_BracesInsideStrings(t *testing.T) {
	raw := `{"message":"use {curly} and [square] freely","tasks":[]}`
	result, err := ExtractJSON[testPayload](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "use {curly} and [square] freely", result.Message)
}

func TestExtractJSON_CommentsAndLeadingDecimals(t *testing.T) {
	raw := "{\n  // model commentary\n  \"message\": \"ok\", /* inline */\n  \"weight\": .5\n}"
	result, err := ExtractJSON[testPayload](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", result.Message)
	assert.Equal(t, 0.5, result.Weight)
}

func TestExtractJSON_NoJSON(t *testing.T) {
	_, err := ExtractJSON[testPayload]("I can't help with that.", nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_Unbalanced(t *testing.T) {
	_, err := ExtractJSON[testPayload](`{"message":"ok", "tasks":[}`, nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_ValidationFailure(t *testing.T) {
	validator := func(p testPayload) error {
		if len(p.Tasks) == 0 {
			return errors.New("no tasks")
		}
		return nil
	}
	_, err := ExtractJSON(`{"message":"ok","tasks":[]}`, validator)
	assert.ErrorIs(t, err, ErrInvalidOutput)
	assert.Contains(t, err.Error(), "validation failed")
}
