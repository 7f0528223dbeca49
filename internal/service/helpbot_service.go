package service

import (
	"context"
	"crypto/sha1"
	_ "embed"
	"encoding/hex"
	"errors"
	"quizfy_backend/pkg/logger"
	"quizfy_backend/pkg/monitoring"
	"regexp"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pmezard/go-difflib/difflib"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed kb/teacher_faq.yaml
var teacherFAQ []byte

const (
	helpBotThreshold   = 3.0
	helpBotFuzzyCutoff = 0.75
	helpBotCachePrefix = "helpbot:reply:"

	HelpBotEmptyReply = "Type your question and I'll help."

	helpBotGreeting = "Hi! Ask me anything about using Quizfy. For example:\n" +
		"- How do I create a quiz?\n" +
		"- How do I grade submissions?\n" +
		"- How do I export to Excel?"

	helpBotFallback = "I'm not sure about that. Here are some things I can help with:\n\n" +
		"**Quizzes:**\n" +
		"- How do I create a quiz?\n" +
		"- How do I add questions?\n" +
		"- How do I set a time limit?\n\n" +
		"**Grading:**\n" +
		"- How do I view submissions?\n" +
		"- How do I grade file uploads?\n" +
		"- How do I export to Excel?\n\n" +
		"**Organization:**\n" +
		"- How do I create folders?\n" +
		"- How do I use analytics?\n\n" +
		"Try asking one of these questions!"
)

var fillerWords = map[string]bool{
	"the": true, "a": true, "an": true, "is": true, "are": true, "can": true,
	"i": true, "you": true, "how": true, "do": true, "to": true, "my": true,
	"this": true, "that": true, "what": true, "where": true, "when": true,
	"please": true, "help": true, "want": true, "need": true,
}

var whitespace = regexp.MustCompile(`\s+`)

type KBEntry struct {
	Tags     []string `yaml:"tags"`
	Question string   `yaml:"q"`
	Answer   string   `yaml:"a"`
}

type HelpBotService struct {
	Entries  []KBEntry
	Cache    *redis.Client
	CacheTTL time.Duration
}

// NewHelpBotService loads the embedded FAQ. cache may be nil.
func NewHelpBotService(cache *redis.Client) (*HelpBotService, error) {
	var entries []KBEntry
	if err := yaml.Unmarshal(teacherFAQ, &entries); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, errors.New("help bot knowledge base is empty")
	}
	return &HelpBotService{Entries: entries, Cache: cache, CacheTTL: time.Hour}, nil
}

func normalizeText(text string) string {
	return whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(text)), " ")
}

func contentWords(text string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.Fields(text) {
		if !fillerWords[w] {
			words[w] = true
		}
	}
	return words
}

func overlap(a, b map[string]bool) int {
	n := 0
	for w := range a {
		if b[w] {
			n++
		}
	}
	return n
}

func chars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// hasCloseMatch reports whether any candidate is at least cutoff similar to
// word by SequenceMatcher ratio.
func hasCloseMatch(word string, candidates []string, cutoff float64) bool {
	w := chars(word)
	for _, c := range candidates {
		m := difflib.NewMatcher(chars(c), w)
		if m.RealQuickRatio() >= cutoff && m.QuickRatio() >= cutoff && m.Ratio() >= cutoff {
			return true
		}
	}
	return false
}

// ScoreMatch rates how well query fits entry. Tags weigh most, then the
// canonical question, then near-miss spellings of tag words.
func ScoreMatch(query string, entry *KBEntry) float64 {
	queryNorm := normalizeText(query)
	queryWords := contentWords(queryNorm)

	score := 0.0
	for _, tag := range entry.Tags {
		tagNorm := normalizeText(tag)
		if strings.Contains(queryNorm, tagNorm) {
			score += 15
		}
		if strings.Contains(tagNorm, queryNorm) {
			score += 10
		}
		score += float64(overlap(queryWords, contentWords(tagNorm))) * 3
	}

	score += float64(overlap(queryWords, contentWords(normalizeText(entry.Question)))) * 2

	for qw := range queryWords {
		if len([]rune(qw)) < 3 {
			continue
		}
		for _, tag := range entry.Tags {
			if hasCloseMatch(qw, strings.Fields(normalizeText(tag)), helpBotFuzzyCutoff) {
				score += 2
			}
		}
	}
	return score
}

// BestAnswer returns the highest scoring answer; ties go to the earlier entry.
func (s *HelpBotService) BestAnswer(message string) (string, bool) {
	msg := strings.TrimSpace(message)
	if msg == "" {
		return helpBotGreeting, false
	}

	best := -1
	bestScore := 0.0
	for i := range s.Entries {
		if score := ScoreMatch(msg, &s.Entries[i]); score > bestScore {
			best, bestScore = i, score
		}
	}
	if best >= 0 && bestScore >= helpBotThreshold {
		return strings.TrimRight(s.Entries[best].Answer, "\n"), true
	}
	return helpBotFallback, false
}

func cacheKey(normalized string) string {
	sum := sha1.Sum([]byte(normalized))
	return helpBotCachePrefix + hex.EncodeToString(sum[:])
}

// Reply answers a teacher's question, using Redis when it is configured.
func (s *HelpBotService) Reply(ctx context.Context, message string) string {
	message = strings.TrimSpace(message)
	if message == "" {
		return HelpBotEmptyReply
	}

	key := cacheKey(normalizeText(message))
	if s.Cache != nil {
		cached, err := s.Cache.Get(ctx, key).Result()
		if err == nil {
			return cached
		}
		if !errors.Is(err, redis.Nil) {
			logger.Log.Warn("Help bot cache read failed", zap.Error(err))
		}
	}

	reply, matched := s.BestAnswer(message)
	if matched {
		monitoring.HelpBotQueries.WithLabelValues("true").Inc()
	} else {
		monitoring.HelpBotQueries.WithLabelValues("false").Inc()
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, key, reply, s.CacheTTL).Err(); err != nil {
			logger.Log.Warn("Help bot cache write failed", zap.Error(err))
		}
	}
	return reply
}
