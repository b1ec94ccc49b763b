// ABOUTME: Tool-mediated answer generation with a single tool round
// ABOUTME: Defines the model client abstraction and the two-phase protocol

package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/classpilot/classpilot/internal/models"
	"github.com/classpilot/classpilot/internal/tools"
)

// ErrGenerationFailed wraps provider and protocol failures.
var ErrGenerationFailed = errors.New("generation failed")

// StopReason says why the model stopped producing output.
type StopReason string

const (
	// StopEnd means the model produced a final text answer.
	StopEnd StopReason = "end"
	// StopToolUse means the model requested tool invocations.
	StopToolUse StopReason = "tool_use"
)

// Role identifies the author of a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolCall is a tool invocation requested by the model.
type ToolCall struct {
	ID        string
	Name      string
	Arguments map[string]any
}

// Message is one entry in a model conversation.
type Message struct {
	Role       Role
	Content    string
	ToolCalls  []ToolCall // assistant messages only
	ToolCallID string     // tool messages only
}

// CompletionRequest is a single model call.
type CompletionRequest struct {
	Messages    []Message
	Tools       []tools.Schema
	Temperature float32
	MaxTokens   int
}

// Completion is the model's reply.
type Completion struct {
	Content   string
	ToolCalls []ToolCall
	Stop      StopReason
}

// ModelClient abstracts the chat completion provider.
type ModelClient interface {
	Complete(ctx context.Context, req CompletionRequest) (*Completion, error)
}

// Result is a generated answer with the citations its tool calls
// produced.
type Result struct {
	Text      string
	Citations []models.Citation
}

const systemPrompt = `You are an AI assistant specialized in course materials and educational content with access to tools for searching course content and retrieving course outlines.

Tool Usage:
- Use the search tool for questions about specific course content or detailed educational materials
- Use the outline tool for questions about course structure, lesson lists, or course overviews
- One round of tool use per question: gather what you need, then answer
- Synthesize tool results into accurate, fact-based responses
- If tools yield no results, state this clearly without offering alternatives

Response Protocol:
- General knowledge questions: answer using existing knowledge without tools
- Course-specific content questions: use the search tool, then answer
- Course structure/outline questions: use the outline tool
- No meta-commentary: provide direct answers only, and never mention the search results or the tools

All responses must be brief, educational, clear, and example-supported when examples aid understanding. Provide only the direct answer to what was asked.`

// Generator runs the two-phase protocol: one model call with tools
// offered, and if the model requests tools, one follow-up call with
// the results and no tools.
type Generator struct {
	client      ModelClient
	registry    *tools.Registry
	maxTokens   int
	temperature float32
	logger      *slog.Logger
}

// New creates a Generator.
func New(client ModelClient, registry *tools.Registry, maxTokens int, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	if maxTokens <= 0 {
		maxTokens = 800
	}
	return &Generator{
		client:    client,
		registry:  registry,
		maxTokens: maxTokens,
		logger:    logger,
	}
}

// Generate answers a query. history is the rendered prior conversation
// and may be empty. Citations come from the tools the model invoked;
// a toolless answer carries none.
func (g *Generator) Generate(ctx context.Context, query, history string) (*Result, error) {
	system := systemPrompt
	if history != "" {
		system = fmt.Sprintf("%s\n\nPrevious conversation:\n%s", systemPrompt, history)
	}

	messages := []Message{
		{Role: RoleSystem, Content: system},
		{Role: RoleUser, Content: query},
	}

	first, err := g.client.Complete(ctx, CompletionRequest{
		Messages:    messages,
		Tools:       g.registry.Schemas(),
		Temperature: 0,
		MaxTokens:   g.maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	if first.Stop != StopToolUse || len(first.ToolCalls) == 0 {
		return &Result{Text: first.Content}, nil
	}

	messages = append(messages, Message{
		Role:      RoleAssistant,
		Content:   first.Content,
		ToolCalls: first.ToolCalls,
	})

	var citations []models.Citation
	for _, call := range first.ToolCalls {
		text, callCitations, err := g.registry.Execute(ctx, call.Name, call.Arguments)
		if err != nil {
			if errors.Is(err, tools.ErrUnknownTool) {
				return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
			}
			// A registered tool failing is information the model can
			// work with, not a protocol failure.
			g.logger.Warn("tool execution failed", "tool", call.Name, "error", err)
			text = fmt.Sprintf("Tool execution error: %v", err)
		}
		citations = append(citations, callCitations...)
		messages = append(messages, Message{
			Role:       RoleTool,
			Content:    text,
			ToolCallID: call.ID,
		})
	}

	// No tools on the follow-up call: the model must synthesize now.
	second, err := g.client.Complete(ctx, CompletionRequest{
		Messages:    messages,
		Temperature: 0,
		MaxTokens:   g.maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	return &Result{Text: second.Content, Citations: citations}, nil
}
