// ABOUTME: Tests for message and tool conversion between internal and OpenAI types
// ABOUTME: Conversion is pure, so no network or API key is needed

package llm

import (
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/classpilot/classpilot/internal/generator"
	"github.com/classpilot/classpilot/internal/tools"
)

func TestNewOpenAIClient_RequiresKey(t *testing.T) {
	if _, err := NewOpenAIClient(ClientConfig{}); err == nil {
		t.Error("expected error for missing API key")
	}
}

func TestToOpenAIMessages(t *testing.T) {
	msgs := toOpenAIMessages([]generator.Message{
		{Role: generator.RoleSystem, Content: "sys"},
		{Role: generator.RoleUser, Content: "question"},
		{Role: generator.RoleAssistant, ToolCalls: []generator.ToolCall{{
			ID: "call_1", Name: "search_course_content",
			Arguments: map[string]any{"query": "x"},
		}}},
		{Role: generator.RoleTool, Content: "result", ToolCallID: "call_1"},
	})

	if len(msgs) != 4 {
		t.Fatalf("len = %d", len(msgs))
	}
	if msgs[0].Role != openai.ChatMessageRoleSystem || msgs[0].Content != "sys" {
		t.Errorf("system = %+v", msgs[0])
	}
	if msgs[2].Role != openai.ChatMessageRoleAssistant {
		t.Errorf("assistant role = %q", msgs[2].Role)
	}
	if len(msgs[2].ToolCalls) != 1 {
		t.Fatalf("assistant tool calls = %d", len(msgs[2].ToolCalls))
	}
	call := msgs[2].ToolCalls[0]
	if call.ID != "call_1" || call.Type != openai.ToolTypeFunction || call.Function.Name != "search_course_content" {
		t.Errorf("tool call = %+v", call)
	}
	if call.Function.Arguments != `{"query":"x"}` {
		t.Errorf("arguments = %q", call.Function.Arguments)
	}
	if msgs[3].Role != openai.ChatMessageRoleTool || msgs[3].ToolCallID != "call_1" {
		t.Errorf("tool message = %+v", msgs[3])
	}
}

func TestToOpenAITools(t *testing.T) {
	out := toOpenAITools([]tools.Schema{{
		Name:        "get_course_outline",
		Description: "outline",
		Parameters:  map[string]any{"type": "object"},
	}})

	if len(out) != 1 {
		t.Fatalf("len = %d", len(out))
	}
	if out[0].Type != openai.ToolTypeFunction || out[0].Function.Name != "get_course_outline" {
		t.Errorf("tool = %+v", out[0])
	}
}

func TestFromOpenAIChoice_Text(t *testing.T) {
	completion, err := fromOpenAIChoice(openai.ChatCompletionChoice{
		Message:      openai.ChatCompletionMessage{Content: "answer"},
		FinishReason: openai.FinishReasonStop,
	})
	if err != nil {
		t.Fatal(err)
	}
	if completion.Stop != generator.StopEnd || completion.Content != "answer" {
		t.Errorf("completion = %+v", completion)
	}
}

func TestFromOpenAIChoice_ToolCalls(t *testing.T) {
	completion, err := fromOpenAIChoice(openai.ChatCompletionChoice{
		Message: openai.ChatCompletionMessage{
			ToolCalls: []openai.ToolCall{{
				ID:   "call_7",
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      "search_course_content",
					Arguments: `{"query":"testing","lesson_number":2}`,
				},
			}},
		},
		FinishReason: openai.FinishReasonToolCalls,
	})
	if err != nil {
		t.Fatal(err)
	}
	if completion.Stop != generator.StopToolUse {
		t.Errorf("Stop = %q", completion.Stop)
	}
	if len(completion.ToolCalls) != 1 {
		t.Fatalf("tool calls = %d", len(completion.ToolCalls))
	}
	call := completion.ToolCalls[0]
	if call.ID != "call_7" || call.Name != "search_course_content" {
		t.Errorf("call = %+v", call)
	}
	if call.Arguments["query"] != "testing" {
		t.Errorf("arguments = %v", call.Arguments)
	}
	if n, ok := call.Arguments["lesson_number"].(float64); !ok || n != 2 {
		t.Errorf("lesson_number = %v", call.Arguments["lesson_number"])
	}
}

func TestFromOpenAIChoice_MalformedArguments(t *testing.T) {
	_, err := fromOpenAIChoice(openai.ChatCompletionChoice{
		Message: openai.ChatCompletionMessage{
			ToolCalls: []openai.ToolCall{{
				ID:       "c",
				Type:     openai.ToolTypeFunction,
				Function: openai.FunctionCall{Name: "t", Arguments: "{not json"},
			}},
		},
		FinishReason: openai.FinishReasonToolCalls,
	})
	if err == nil {
		t.Error("expected error for malformed arguments")
	}
}
