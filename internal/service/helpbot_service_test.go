package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHelpBot(t *testing.T) *HelpBotService {
	t.Helper()
	bot, err := NewHelpBotService(nil)
	require.NoError(t, err)
	require.NotEmpty(t, bot.Entries)
	return bot
}

func TestBestAnswerPicksTaggedTopic(t *testing.T) {
	bot := newHelpBot(t)

	answer, ok := bot.BestAnswer("How do I make a subject folder")
	assert.True(t, ok)
	assert.True(t, strings.HasPrefix(answer, "**Creating a subject folder**"))
	assert.False(t, strings.HasSuffix(answer, "\n"))

	answer, ok = bot.BestAnswer("create quiz")
	assert.True(t, ok)
	assert.NotContains(t, answer, "subject folder**")
}

func TestBestAnswerFallbacks(t *testing.T) {
	bot := newHelpBot(t)

	greeting, ok := bot.BestAnswer("   ")
	assert.False(t, ok)
	assert.True(t, strings.HasPrefix(greeting, "Hi!"))

	fallback, ok := bot.BestAnswer("zzzz qqqq xxyy")
	assert.False(t, ok)
	assert.True(t, strings.HasPrefix(fallback, "I'm not sure about that."))
}

func TestScoreMatchWeighsTagsOverTypos(t *testing.T) {
	entry := &KBEntry{Tags: []string{"export excel"}, Question: "How do I export to Excel?"}

	exact := ScoreMatch("export excel", entry)
	typo := ScoreMatch("exprot exel", entry)
	unrelated := ScoreMatch("reset password", entry)

	assert.Greater(t, exact, typo)
	assert.Greater(t, typo, 0.0)
	assert.Zero(t, unrelated)
}

func TestReplyWithoutCache(t *testing.T) {
	bot := newHelpBot(t)
	ctx := context.Background()

	assert.Equal(t, HelpBotEmptyReply, bot.Reply(ctx, "  "))
	answer, _ := bot.BestAnswer("create quiz")
	assert.Equal(t, answer, bot.Reply(ctx, "  Create   QUIZ "))
}
