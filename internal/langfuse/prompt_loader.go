package langfuse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/blaisecz/wellness-forecast/internal/logger"
)

// Prompt sources.
const (
	PromptSourceLangfuse = "langfuse"
	PromptSourceFile     = "file"
)

const promptFetchTimeout = 5 * time.Second

// PromptLoaderConfig describes how to load a prompt from Langfuse or fallback storage.
type PromptLoaderConfig struct {
	BaseURL   string
	PublicKey string
	SecretKey string

	PromptName  string
	PromptLabel string
	// Local copy refreshed after every successful fetch and read when Langfuse is unreachable
	SavePath string
}

// Prompt is a managed prompt template.
type Prompt struct {
	Name    string
	Version int // zero when loaded from the local file
	Source  string
	Text    string
}

var (
	errLangfuseDisabled = errors.New("langfuse integration disabled")
	placeholderPattern  = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_]+)\s*\}\}`)
)

// Compile substitutes {{name}} placeholders. Unknown placeholders are left as is.
func (p Prompt) Compile(vars map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(p.Text, func(m string) string {
		name := placeholderPattern.FindStringSubmatch(m)[1]
		if v, ok := vars[name]; ok {
			return v
		}
		return m
	})
}

// LoadPrompt retrieves a prompt from Langfuse, falling back to the local copy.
func LoadPrompt(ctx context.Context, cfg PromptLoaderConfig) (Prompt, error) {
	log := logger.WithComponent("langfuse")

	if cfg.PromptName != "" {
		prompt, err := fetchPrompt(ctx, cfg)
		switch {
		case err == nil:
			if err := savePromptToFile(cfg.SavePath, prompt.Text); err != nil {
				log.Warn().Err(err).Str("path", cfg.SavePath).Msg("failed to cache prompt locally")
			}
			return prompt, nil
		case !errors.Is(err, errLangfuseDisabled):
			log.Warn().Err(err).Str("prompt", cfg.PromptName).Msg("prompt fetch failed, using local copy")
		}
	}

	text, err := readPromptFromFile(cfg.SavePath)
	if err != nil {
		return Prompt{}, err
	}
	return Prompt{Name: cfg.PromptName, Source: PromptSourceFile, Text: text}, nil
}

func promptURL(cfg PromptLoaderConfig) (string, error) {
	u, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid LANGFUSE_BASE_URL: %w", err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/api/public/v2/prompts/" + url.PathEscape(cfg.PromptName)
	if cfg.PromptLabel != "" {
		u.RawQuery = url.Values{"label": {cfg.PromptLabel}}.Encode()
	}
	return u.String(), nil
}

type promptResponse struct {
	Name    string          `json:"name"`
	Version int             `json:"version"`
	Type    string          `json:"type"`
	Prompt  json.RawMessage `json:"prompt"`
}

func fetchPrompt(ctx context.Context, cfg PromptLoaderConfig) (Prompt, error) {
	if cfg.BaseURL == "" || cfg.PublicKey == "" || cfg.SecretKey == "" {
		return Prompt{}, errLangfuseDisabled
	}

	endpoint, err := promptURL(cfg)
	if err != nil {
		return Prompt{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, promptFetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Prompt{}, fmt.Errorf("create prompt request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(cfg.PublicKey, cfg.SecretKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return Prompt{}, fmt.Errorf("call Langfuse prompt API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return Prompt{}, fmt.Errorf("Langfuse prompt API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var pr promptResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return Prompt{}, fmt.Errorf("decode Langfuse prompt response: %w", err)
	}

	text, err := promptText(pr)
	if err != nil {
		return Prompt{}, err
	}

	name := pr.Name
	if name == "" {
		name = cfg.PromptName
	}
	return Prompt{Name: name, Version: pr.Version, Source: PromptSourceLangfuse, Text: text}, nil
}

func promptText(pr promptResponse) (string, error) {
	switch pr.Type {
	case "", "text":
		var text string
		if err := json.Unmarshal(pr.Prompt, &text); err != nil {
			return "", fmt.Errorf("parse text prompt: %w", err)
		}
		return text, nil
	case "chat":
		var messages []chatPromptMessage
		if err := json.Unmarshal(pr.Prompt, &messages); err != nil {
			return "", fmt.Errorf("parse chat prompt: %w", err)
		}
		return flattenChatMessages(messages), nil
	default:
		return "", fmt.Errorf("unsupported prompt type %q", pr.Type)
	}
}

type chatPromptMessage struct {
	Type    string `json:"type"`
	Role    string `json:"role"`
	Content string `json:"content"`
	Name    string `json:"name"`
}

// flattenChatMessages renders a chat prompt as "ROLE: content" blocks.
// Placeholders become {{name}} so Compile can fill them.
func flattenChatMessages(messages []chatPromptMessage) string {
	parts := make([]string, 0, len(messages))
	for _, msg := range messages {
		content := msg.Content
		if msg.Type == "placeholder" {
			if msg.Name == "" {
				continue
			}
			content = "{{" + msg.Name + "}}"
		}
		if content == "" {
			continue
		}
		role := msg.Role
		if role == "" {
			role = "message"
		}
		parts = append(parts, strings.ToUpper(role)+": "+content)
	}
	return strings.Join(parts, "\n\n")
}

func readPromptFromFile(path string) (string, error) {
	if path == "" {
		return "", errors.New("no local prompt file configured")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read local prompt file: %w", err)
	}
	return string(data), nil
}

func savePromptToFile(path, prompt string) error {
	if path == "" {
		return nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(prompt), 0o600)
}
