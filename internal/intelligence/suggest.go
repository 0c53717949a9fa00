package intelligence

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alexanderramin/streakhq/internal/llm"
)

// User-facing messages returned in place of errors.
const (
	NoticeDisabled = "AI suggestions are turned off. Set STREAKHQ_LLM_ENABLED=true to use them."
	NoticeEmpty    = "I couldn't generate a response. Please try again."
	NoticeError    = "Sorry, I encountered an error talking to the AI service."
)

const (
	maxTaskMinutes = 60
	minTaskXP      = 10
	maxTaskXP      = 50
	maxMiniTasks   = 5
)

// SuggestedTask is one task proposed by the model.
type SuggestedTask struct {
	Title           string `json:"title"`
	DurationMinutes int    `json:"durationMinutes"`
	XP              int    `json:"xp"`
}

type SuggestRequest struct {
	ProjectTitle string
	CategoryName string
	CurrentTasks []SuggestedTask
	Feedback     string
	APIKey       string
	ImageBase64  string
}

// SuggestResponse always carries a message; Tasks is empty on any failure.
type SuggestResponse struct {
	Message string          `json:"message"`
	Tasks   []SuggestedTask `json:"tasks"`
}

// SuggestionService proposes tasks for projects and mini-tasks for
// categories. It never returns an error: failures become a notice message
// with no suggestions.
type SuggestionService interface {
	SuggestProjectTasks(ctx context.Context, req SuggestRequest) SuggestResponse
	SuggestMiniTasks(ctx context.Context, category string, projects, tasks []string, apiKey string) []string
}

type suggestionService struct {
	client  llm.LLMClient
	enabled bool
	logger  *slog.Logger
}

// NewSuggestionService wraps client. When enabled is false every call
// returns NoticeDisabled without touching the network.
func NewSuggestionService(client llm.LLMClient, enabled bool, logger *slog.Logger) SuggestionService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &suggestionService{client: client, enabled: enabled, logger: logger}
}

func (s *suggestionService) SuggestProjectTasks(ctx context.Context, req SuggestRequest) SuggestResponse {
	empty := []SuggestedTask{}
	if !s.enabled || s.client == nil {
		return SuggestResponse{Message: NoticeDisabled, Tasks: empty}
	}

	task := llm.TaskSuggest
	var images []string
	if req.ImageBase64 != "" {
		task = llm.TaskSuggestImage
		images = []string{req.ImageBase64}
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         task,
		SystemPrompt: suggestSystemPrompt,
		UserPrompt:   buildSuggestPrompt(req),
		Images:       images,
		APIKey:       req.APIKey,
	})
	if err != nil {
		s.logger.Warn("task suggestion failed", "project", req.ProjectTitle, "error", err)
		return SuggestResponse{Message: NoticeError, Tasks: empty}
	}

	out, err := llm.ExtractJSON[SuggestResponse](resp.Text, nil)
	if err != nil {
		s.logger.Warn("task suggestion unreadable", "project", req.ProjectTitle, "error", err)
		return SuggestResponse{Message: NoticeError, Tasks: empty}
	}

	out.Tasks = sanitizeTasks(out.Tasks)
	if out.Message == "" {
		if len(out.Tasks) == 0 {
			out.Message = NoticeEmpty
		} else {
			out.Message = fmt.Sprintf("Here are %d suggested tasks.", len(out.Tasks))
		}
	}
	return out
}

func (s *suggestionService) SuggestMiniTasks(ctx context.Context, category string, projects, tasks []string, apiKey string) []string {
	if !s.enabled || s.client == nil {
		return []string{}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Category: %s\n", category)
	if len(projects) > 0 {
		fmt.Fprintf(&b, "Active projects: %s\n", strings.Join(projects, ", "))
	}
	if len(tasks) > 0 {
		fmt.Fprintf(&b, "Current tasks: %s\n", strings.Join(tasks, ", "))
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskSuggest,
		SystemPrompt: miniTaskSystemPrompt,
		UserPrompt:   b.String(),
		APIKey:       apiKey,
	})
	if err != nil {
		s.logger.Warn("mini-task suggestion failed", "category", category, "error", err)
		return []string{}
	}
	list, err := llm.ExtractJSON[[]string](resp.Text, nil)
	if err != nil {
		s.logger.Warn("mini-task suggestion unreadable", "category", category, "error", err)
		return []string{}
	}

	out := make([]string, 0, maxMiniTasks)
	for _, item := range list {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
		if len(out) == maxMiniTasks {
			break
		}
	}
	return out
}

func buildSuggestPrompt(req SuggestRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "I am planning a project called '%s' in the category '%s'.", req.ProjectTitle, req.CategoryName)

	if req.ImageBase64 != "" {
		b.WriteString("\n\nI've attached an image (photo, whiteboard, diagram, handwritten notes). Analyze it carefully and extract actionable tasks from it.")
	}
	if len(req.CurrentTasks) > 0 {
		current, _ := json.Marshal(req.CurrentTasks)
		fmt.Fprintf(&b, "\n\nCurrent plan:\n%s", current)
	}
	if req.Feedback != "" {
		fmt.Fprintf(&b, "\n\nUser feedback: %q\n\nAdjust the plan based on this feedback.", req.Feedback)
	} else {
		b.WriteString("\n\nSuggest 5-8 concrete, actionable micro-tasks.")
	}
	return b.String()
}

// sanitizeTasks drops untitled entries and pulls duration and XP into the
// ranges the prompt asks for.
func sanitizeTasks(in []SuggestedTask) []SuggestedTask {
	out := make([]SuggestedTask, 0, len(in))
	for _, t := range in {
		t.Title = strings.TrimSpace(t.Title)
		if t.Title == "" {
			continue
		}
		switch {
		case t.DurationMinutes <= 0:
			t.DurationMinutes = 30
		case t.DurationMinutes > maxTaskMinutes:
			t.DurationMinutes = maxTaskMinutes
		}
		switch {
		case t.XP < minTaskXP:
			t.XP = minTaskXP
		case t.XP > maxTaskXP:
			t.XP = maxTaskXP
		}
		out = append(out, t)
	}
	return out
}
