// Package gemini implements LLM access and token counting using Google
// Gemini.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/sitescout"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// Ensure Client implements sitescout.LLMClient at compile time.
var _ sitescout.LLMClient = (*Client)(nil)

// Client implements sitescout.LLMClient using Google Gemini.
type Client struct {
	client *genai.Client
}

// NewClient creates a new Client.
func NewClient(client *genai.Client) *Client {
	return &Client{client: client}
}

// Generate sends a prompt pair to Gemini and returns the model's response.
func (c *Client) Generate(ctx context.Context, req sitescout.LLMRequest) (*sitescout.LLMResponse, error) {
	if req.UserPrompt == "" {
		return nil, sitescout.Errorf(sitescout.EINVALID, "user prompt required")
	}

	config := &genai.GenerateContentConfig{}
	if req.SystemPrompt != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemPrompt}},
		}
	}
	temp := float32(0.4)
	config.Temperature = &temp

	result, err := c.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: req.UserPrompt}},
		}},
		config,
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, sitescout.Errorf(sitescout.EINTERNAL, "gemini returned nil result")
	}

	return &sitescout.LLMResponse{Text: result.Text(), Model: model}, nil
}

// SystemPrompt is the instruction used when answering questions about a
// crawled site's pages.
const SystemPrompt = "You are a helpful assistant answering questions about a website's content. Answer based only on the pages provided. If the answer is not in the pages, say so."

// BuildRunPrompt builds the user prompt containing a run's pages and the
// question to answer about them.
func BuildRunPrompt(pages []*sitescout.PageDoc, question string) string {
	var sb strings.Builder
	sb.WriteString("<pages>\n")
	for i, page := range pages {
		title := page.Title
		if title == "" {
			title = page.URL
		}
		sb.WriteString("<page>\n")
		fmt.Fprintf(&sb, "<index>%d</index>\n", i+1)
		fmt.Fprintf(&sb, "<title>%s</title>\n", title)
		fmt.Fprintf(&sb, "<source>%s</source>\n", page.URL)
		fmt.Fprintf(&sb, "<content>%s</content>\n", page.Markdown)
		sb.WriteString("</page>\n")
	}
	sb.WriteString("</pages>\n\n")
	fmt.Fprintf(&sb, "Question: %s", question)
	return sb.String()
}
