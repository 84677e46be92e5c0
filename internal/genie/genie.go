// ABOUTME: HireGenie AI placement assistant backed by the Anthropic API
// ABOUTME: Keeps an in-memory transcript and an optional PDF resume attachment

package genie

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const maxResumeSize = 5 * 1024 * 1024

const systemPrompt = `You are HireGenie, an expert AI placement assistant for college students. You help with:
- Resume analysis and optimization
- Interview preparation (technical and HR)
- Company research and insights
- Mock interview practice
- Career guidance
- Aptitude and coding tips

Be encouraging, professional, and provide actionable advice. When analyzing resumes, be specific and constructive. Format your responses clearly with bullet points and sections where appropriate.`

// Greeting is the assistant's opening line, shown before any API call.
const Greeting = `Hi! I'm HireGenie, your AI placement assistant. I can help you with:

- Resume analysis and improvements
- Interview preparation tips
- Company-specific guidance
- Technical question practice
- Career advice

You can also attach your resume for personalized feedback. How can I help you today?`

// Resume is a pending PDF attachment for the next question.
type Resume struct {
	Name string
	data string // base64
}

// Genie is a chat session with the placement assistant. Not safe for
// concurrent use.
type Genie struct {
	client     anthropic.Client
	model      anthropic.Model
	transcript []anthropic.MessageParam
	resume     *Resume
	sent       bool // resume already included in a prior turn
}

// New builds a session. Extra request options are applied after the API key,
// so callers can redirect the base URL.
func New(apiKey, model string, opts ...option.RequestOption) (*Genie, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY is not set")
	}
	all := append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &Genie{
		client: anthropic.NewClient(all...),
		model:  anthropic.Model(model),
	}, nil
}

// AttachResume loads a local PDF to send with the next question. Only .pdf
// files up to 5 MB are accepted.
func (g *Genie) AttachResume(path string) error {
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return fmt.Errorf("only PDF resumes are supported, got %q", filepath.Ext(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading resume: %w", err)
	}
	if len(data) > maxResumeSize {
		return fmt.Errorf("resume is %d bytes, the limit is 5 MB", len(data))
	}

	g.resume = &Resume{
		Name: filepath.Base(path),
		data: base64.StdEncoding.EncodeToString(data),
	}
	g.sent = false
	return nil
}

// Resume reports the pending attachment, nil when none.
func (g *Genie) Resume() *Resume {
	return g.resume
}

// RemoveResume drops the attachment. Turns already sent keep their copy in
// the transcript.
func (g *Genie) RemoveResume() {
	g.resume = nil
	g.sent = false
}

// Len returns the number of recorded turns.
func (g *Genie) Len() int {
	return len(g.transcript)
}

// Clear resets the transcript and drops the attachment.
func (g *Genie) Clear() {
	g.transcript = nil
	g.resume = nil
	g.sent = false
}

// Ask sends one user turn and returns the assistant's reply. On any API
// failure neither turn is recorded, so a retry sends a clean transcript.
func (g *Genie) Ask(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("empty question")
	}

	blocks := []anthropic.ContentBlockParamUnion{}
	if g.resume != nil && !g.sent {
		blocks = append(blocks, anthropic.NewDocumentBlock(anthropic.Base64PDFSourceParam{
			Data: g.resume.data,
		}))
	}
	blocks = append(blocks, anthropic.NewTextBlock(text))
	userTurn := anthropic.NewUserMessage(blocks...)

	msg, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     g.model,
		MaxTokens: 1000,
		System:    []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages:  append(append([]anthropic.MessageParam{}, g.transcript...), userTurn),
	})
	if err != nil {
		return "", fmt.Errorf("assistant unavailable: %w", err)
	}

	var parts []string
	for _, block := range msg.Content {
		if block.Type == "text" {
			parts = append(parts, block.Text)
		}
	}
	reply := strings.Join(parts, "\n\n")

	g.transcript = append(g.transcript, userTurn, msg.ToParam())
	if g.resume != nil {
		g.sent = true
	}
	return reply, nil
}
