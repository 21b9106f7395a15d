// Package narrator restyles plain-text weather reports as conversational
// narrations spoken by a randomly selected presenter persona.
package narrator

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// Persona is one entry of the presenter registry.
type Persona struct {
	Name        string `json:"name"`
	Affiliation string `json:"affiliation"`
	Country     string `json:"country"`
	USP         string `json:"usp"`
}

// registryFile matches the on-disk registry shape.
type registryFile struct {
	WeatherReaders []Persona `json:"weather_readers"`
}

// LoadPersonas reads the presenter registry from path.
func LoadPersonas(path string) ([]Persona, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read persona registry: %w", err)
	}
	var reg registryFile
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse persona registry: %w", err)
	}
	if len(reg.WeatherReaders) == 0 {
		return nil, fmt.Errorf("persona registry %s is empty", path)
	}
	return reg.WeatherReaders, nil
}

// ChatCompleter is the slice of the OpenAI client used for narration.
// Tests inject a stub that records calls without hitting the network.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Narrator produces persona narrations of plain-text weather reports.
// The persona registry is loaded once and read-only afterwards.
type Narrator struct {
	client   ChatCompleter
	model    string // Azure deployment name
	personas []Persona
	rng      *rand.Rand
}

// New creates a Narrator. rng may be nil, in which case a time-seeded source
// is used; tests pass a fixed-seed source to pin persona selection.
func New(client ChatCompleter, model string, personas []Persona, rng *rand.Rand) (*Narrator, error) {
	if len(personas) == 0 {
		return nil, fmt.Errorf("no personas configured")
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Narrator{
		client:   client,
		model:    model,
		personas: personas,
		rng:      rng,
	}, nil
}

const systemMessage = "You are a helpful assistant who is an expert in summarizing weather reports."

// Narrate selects a persona uniformly at random, asks the model to restyle
// the report in that persona's voice, and returns the narration prefixed with
// the persona's identity. The model output is included verbatim.
func (n *Narrator) Narrate(ctx context.Context, report string) (string, error) {
	p := n.personas[n.rng.Intn(len(n.personas))]

	prompt := fmt.Sprintf(
		"Summarize this weather report in a friendly, conversational tone as if by %s,"+
			" a renowned weather presenter from %s in %s. "+
			"%s is known for %s."+
			"Always generate in English language ONLY."+
			"Use emoticons as much as possible: %s",
		p.Name, p.Affiliation, p.Country, p.Name, p.USP, report)

	resp, err := n.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: n.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemMessage},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("chat completion returned no content")
	}

	return fmt.Sprintf("AI-generated summary:\nPersonality used today: %s from %s in %s\n%s.\n\n%s",
		p.Name, p.Affiliation, p.Country, p.USP, resp.Choices[0].Message.Content), nil
}
