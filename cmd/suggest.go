package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/xrsl/blogx/pkg/ai"
	"github.com/xrsl/blogx/pkg/config"
	"github.com/xrsl/blogx/pkg/content"
	"github.com/xrsl/blogx/pkg/signal"
	"github.com/xrsl/blogx/pkg/style"
)

var (
	suggestModelFlag  string
	suggestTagsFlag   bool
	suggestDryRunFlag bool
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <article>",
	Short: "Suggest missing front matter with AI",
	Long: `Fill a missing description (and optionally tags) for an article.

The article body is sent to the configured AI provider; only the front
matter block is rewritten, the body is preserved byte for byte.

Examples:
  blogx suggest content/posts/my-post.md
  blogx suggest content/posts/my-post.md -m claude-sonnet-4-5
  blogx suggest content/posts/my-post.md --tags --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().StringVarP(&suggestModelFlag, "model", "m", "", "Model: gemini-2.5-flash, claude-sonnet-4-5, ...")
	suggestCmd.Flags().BoolVar(&suggestTagsFlag, "tags", false, "Also suggest tags when missing")
	suggestCmd.Flags().BoolVar(&suggestDryRunFlag, "dry-run", false, "Print suggestions without writing")
	rootCmd.AddCommand(suggestCmd)
}

const suggestSystemPrompt = `You are an editor for a technical blog. Given a markdown article,
write the metadata the author left blank.

Return ONLY a JSON object in this exact format:
{
  "description": "<one sentence, max 160 characters, no markdown>",
  "tags": ["<up to 5 short lowercase tags>"]
}

Do not include any explanation, markdown, or text outside the JSON object.`

func runSuggest(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	article, err := content.Load(args[0])
	if err != nil {
		return err
	}

	needDescription := strings.TrimSpace(article.Front.Description) == ""
	needTags := suggestTagsFlag && len(article.Front.Tags) == 0
	if !needDescription && !needTags {
		fmt.Printf("%s Nothing to suggest for %s\n", style.C(style.Green, "✓"), args[0])
		return nil
	}

	model := suggestModelFlag
	if model == "" {
		model = cfg.Model
	}
	if model == "" {
		model = ai.DefaultModel()
	}
	if !ai.IsModelSupported(model) {
		return fmt.Errorf("unsupported model: %s", model)
	}

	client, err := ai.NewClient(model)
	if err != nil {
		return fmt.Errorf("error creating AI client: %w", err)
	}
	defer client.Close()

	ctx, cancel := signal.NotifyContext()
	defer cancel()

	userPrompt := fmt.Sprintf("## Title\n%s\n\n## Article\n%s", article.Front.Title, article.Body)

	// Start spinner
	done := make(chan bool)
	go func() {
		i := 0
		for {
			select {
			case <-done:
				fmt.Fprintf(os.Stderr, "\r\033[K")
				return
			default:
				msg := fmt.Sprintf("Asking %s...", model)
				fmt.Fprintf(os.Stderr, "\r%s %s", style.C(style.Cyan, spinnerFrames[i%len(spinnerFrames)]), msg)
				time.Sleep(80 * time.Millisecond)
				i++
			}
		}
	}()

	var result string
	if cachingClient, ok := client.(ai.CachingClient); ok {
		result, err = cachingClient.GenerateContentWithSystem(ctx, suggestSystemPrompt, userPrompt)
	} else {
		result, err = client.GenerateContent(ctx, suggestSystemPrompt+"\n\n"+userPrompt)
	}

	done <- true
	close(done)

	if err != nil {
		return err
	}

	var output struct {
		Description string   `json:"description"`
		Tags        []string `json:"tags"`
	}
	if err := json.Unmarshal([]byte(extractJSON(result)), &output); err != nil {
		return fmt.Errorf("failed to parse AI response as JSON: %w\nResponse was: %s", err, result)
	}

	if needDescription {
		if output.Description == "" {
			return fmt.Errorf("AI response missing description")
		}
		if suggestDryRunFlag {
			fmt.Printf("description: %s\n", output.Description)
		} else {
			article.Front.Description = output.Description
		}
	}
	if needTags && len(output.Tags) > 0 {
		if suggestDryRunFlag {
			fmt.Printf("tags: %s\n", strings.Join(output.Tags, ", "))
		} else {
			article.Front.Tags = output.Tags
		}
	}

	if suggestDryRunFlag {
		return nil
	}

	if err := article.Save(); err != nil {
		return fmt.Errorf("failed to write %s: %w", article.Path, err)
	}
	fmt.Printf("%s Updated %s\n", style.C(style.Green, "✓"), style.C(style.Cyan, article.Path))
	return nil
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// extractJSON attempts to extract JSON from a response that may contain markdown
func extractJSON(s string) string {
	s = strings.TrimSpace(s)

	// Remove markdown code blocks if present
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
	}

	// Find first { and last }
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start != -1 && end != -1 && end > start {
		s = s[start : end+1]
	}

	return strings.TrimSpace(s)
}
