package enrich

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/wordbook/internal/common"
	"github.com/dmitrijs2005/wordbook/internal/logging"
)

// ErrInvalidResponse is returned when no JSON object can be recovered
// from the model's reply.
var ErrInvalidResponse = errors.New("AI response was not valid JSON")

// AcademicData is the model's description of a single word.
type AcademicData struct {
	Word              string   `json:"word"`
	Type              string   `json:"type"`
	EngDefinition     string   `json:"engDefinition"`
	Turkish           string   `json:"turkish"`
	Synonyms          string   `json:"synonyms"`
	AcademicSentences []string `json:"academicSentences"`
}

// ContextStory is a short academic paragraph using a list of words.
type ContextStory struct {
	EnglishStory       string   `json:"englishStory"`
	TurkishTranslation string   `json:"turkishTranslation"`
	UsedWords          []string `json:"usedWords"`
}

// Client wraps a Generator with rate limiting and response parsing.
type Client struct {
	gen     Generator
	limiter *Limiter
	log     logging.Logger
}

func NewClient(gen Generator, limiter *Limiter, log logging.Logger) *Client {
	if limiter == nil {
		limiter = NewLimiter(DefaultMaxRequests, DefaultWindow)
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Client{gen: gen, limiter: limiter, log: log}
}

func (c *Client) FetchAcademicData(ctx context.Context, word string) (*AcademicData, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil, fmt.Errorf("%w: word is empty", common.ErrInvalidInput)
	}

	var data AcademicData
	if err := c.call(ctx, "academic_data", academicDataPrompt(word), &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *Client) GenerateContextStory(ctx context.Context, words []string) (*ContextStory, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: no words for a story", common.ErrInvalidInput)
	}

	var story ContextStory
	if err := c.call(ctx, "context_story", contextStoryPrompt(words), &story); err != nil {
		return nil, err
	}
	return &story, nil
}

func (c *Client) call(ctx context.Context, op, prompt string, out any) error {
	// a cancelled caller must not use up quota
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := c.limiter.Allow(); err != nil {
		c.log.Warn(ctx, "enrichment rate limited", "op", op, "err", err)
		return err
	}

	text, err := c.gen.Generate(ctx, prompt)
	if err != nil {
		c.log.Error(ctx, "enrichment request failed", "op", op, "err", err)
		return err
	}

	if err := ParseResponse(text, out); err != nil {
		c.log.Error(ctx, "enrichment response unparsable", "op", op, "raw", text)
		return err
	}

	c.log.Debug(ctx, "enrichment request done", "op", op)
	return nil
}

// ParseResponse strips Markdown code fences, keeps the text between the
// first '{' and the last '}' and decodes it into out.
func ParseResponse(text string, out any) error {
	clean := strings.ReplaceAll(text, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	clean = strings.TrimSpace(clean)

	first := strings.Index(clean, "{")
	last := strings.LastIndex(clean, "}")
	if first != -1 && last != -1 && first < last {
		clean = clean[first : last+1]
	}

	if err := json.Unmarshal([]byte(clean), out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}
