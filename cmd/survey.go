package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/ai-tool-advisor/internal/ai"
	"github.com/spigell/ai-tool-advisor/internal/catalog"
	"github.com/spigell/ai-tool-advisor/internal/feedback"
	"github.com/spigell/ai-tool-advisor/internal/recommend"
	"github.com/spigell/ai-tool-advisor/internal/survey"
)

const (
	PromptYes  = "Yes"
	PromptNo   = "No"
	PromptBack = "back"
	PromptDone = "done"
	PromptSkip = "skip"

	checked   = "[x] "
	unchecked = "[ ] "
	pageSize  = 12
)

// asker is the part of promptui the questionnaire needs.
type asker interface {
	Select(label string, items []string, cursor int) (int, string, error)
	Prompt(label string, validate func(string) error) (string, error)
}

type promptAsker struct{}

func (promptAsker) Select(label string, items []string, cursor int) (int, string, error) {
	p := promptui.Select{
		Label:     label,
		Items:     items,
		Size:      pageSize,
		CursorPos: cursor,
	}
	return p.Run()
}

func (promptAsker) Prompt(label string, validate func(string) error) (string, error) {
	p := promptui.Prompt{
		Label:    label,
		Validate: validate,
	}
	return p.Run()
}

var surveyCmd = &cobra.Command{
	Use:   "survey",
	Short: "Answer the questionnaire and get AI tool recommendations",
	Run: func(cmd *cobra.Command, _ []string) {
		runSurveyCmd(cmd)
	},
}

func init() {
	rootCmd.AddCommand(surveyCmd)

	surveyCmd.Flags().Bool("no-explain", false, "do not offer an AI explanation of the recommendations")
	surveyCmd.Flags().Bool("no-feedback", false, "do not ask for feedback after the recommendations")
}

func runSurveyCmd(cmd *cobra.Command) {
	ctx := context.Background()

	s := setup(ctx)
	defer s.Close()

	noExplain, _ := cmd.Flags().GetBool("no-explain")
	noFeedback, _ := cmd.Flags().GetBool("no-feedback")

	if !noFeedback {
		if err := s.openFeedback(); err != nil {
			s.logger.Warn("feedback is disabled", zap.Error(err))
		}
	}

	flow := &surveyFlow{
		asker:     promptAsker{},
		out:       os.Stdout,
		engine:    s.engine,
		explainer: s.explainer,
		feedback:  s.feedback,
		logger:    s.logger,
		explain:   !noExplain,
	}

	if err := flow.Run(ctx, survey.NewSession()); err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			s.logger.Info("exiting", zap.String("reason", "interrupted"))
			return
		}
		s.logger.Fatal("survey failed", zap.Error(err))
	}
}

// surveyFlow drives one interactive session from the first question to the
// feedback prompt. feedback is optional.
type surveyFlow struct {
	asker     asker
	out       io.Writer
	engine    *recommend.Engine
	explainer ai.Explainer
	feedback  feedback.Sink
	logger    *zap.Logger
	explain   bool
}

// Run asks, recommends and follows up until the user declines to start over.
func (f *surveyFlow) Run(ctx context.Context, s *survey.Session) error {
	for {
		if err := f.round(ctx, s); err != nil {
			return err
		}

		_, answer, err := f.asker.Select("Start the survey again?", []string{PromptYes, PromptNo}, 1)
		if err != nil {
			return err
		}
		if answer != PromptYes {
			return nil
		}

		s.Reset()
		f.logger.Debug("survey restarted", zap.String("session", s.ID))
	}
}

func (f *surveyFlow) round(ctx context.Context, s *survey.Session) error {
	if err := f.ask(s); err != nil {
		return err
	}

	result, err := f.engine.Recommend(s)
	if err != nil {
		return err
	}
	printResult(f.out, result)

	if f.explain {
		if err := f.offerExplanation(ctx, s, result); err != nil {
			return err
		}
	}

	if f.feedback != nil && len(result.Tools) > 0 {
		return f.collectFeedback(ctx, s, result)
	}
	return nil
}

// ask walks the questionnaire until the session is complete.
func (f *surveyFlow) ask(s *survey.Session) error {
	for !s.Complete {
		q, ok := s.Current()
		if !ok {
			return survey.ErrIncomplete
		}

		answered, total := s.Progress()
		fmt.Fprintf(f.out, "\n[%d/%d] %s\n", answered+1, total, q.Text)
		if q.Help != "" {
			fmt.Fprintf(f.out, "%s\n", q.Help)
		}

		var (
			values []string
			back   bool
			err    error
		)
		if q.Multi {
			values, back, err = f.askMulti(q, s.Default(), s.Page > 0)
		} else {
			values, back, err = f.askSingle(q, s.Default(), s.Page > 0)
		}
		if err != nil {
			return err
		}

		if back {
			s.Back()
			continue
		}
		if err := s.Answer(values...); err != nil {
			return err
		}
	}
	return nil
}

func (f *surveyFlow) askSingle(q survey.Question, defaults []string, canGoBack bool) ([]string, bool, error) {
	items := append([]string(nil), q.Options...)
	if canGoBack {
		items = append(items, PromptBack)
	}

	cursor := 0
	if len(defaults) > 0 {
		cursor = indexOf(q.Options, defaults[0])
	}

	i, _, err := f.asker.Select(q.Text, items, cursor)
	if err != nil {
		return nil, false, err
	}
	if i >= len(q.Options) {
		return nil, true, nil
	}
	return []string{q.Options[i]}, false, nil
}

// askMulti toggles options until done is chosen. Options keep their questionnaire order.
func (f *surveyFlow) askMulti(q survey.Question, defaults []string, canGoBack bool) ([]string, bool, error) {
	selected := make(map[string]bool, len(defaults))
	for _, value := range defaults {
		selected[value] = true
	}

	cursor := 0
	for {
		items := make([]string, 0, len(q.Options)+2)
		for _, option := range q.Options {
			mark := unchecked
			if selected[option] {
				mark = checked
			}
			items = append(items, mark+option)
		}
		items = append(items, PromptDone)
		if canGoBack {
			items = append(items, PromptBack)
		}

		i, _, err := f.asker.Select(q.Text, items, cursor)
		if err != nil {
			return nil, false, err
		}

		switch {
		case i < len(q.Options):
			option := q.Options[i]
			selected[option] = !selected[option]
			cursor = i
		case i == len(q.Options):
			values := make([]string, 0, len(selected))
			for _, option := range q.Options {
				if selected[option] {
					values = append(values, option)
				}
			}
			return values, false, nil
		default:
			return nil, true, nil
		}
	}
}

func (f *surveyFlow) offerExplanation(ctx context.Context, s *survey.Session, result *recommend.Result) error {
	if _, disabled := f.explainer.(ai.Disabled); disabled || len(result.Tools) == 0 {
		return nil
	}

	_, answer, err := f.asker.Select("Explain these recommendations with AI?", []string{PromptYes, PromptNo}, 0)
	if err != nil {
		return err
	}
	if answer != PromptYes {
		return nil
	}

	tools := make([]*catalog.Tool, 0, len(result.Tools))
	for _, ranked := range result.Tools {
		tools = append(tools, ranked.Tool)
	}

	text, err := f.explainer.Explain(ctx, ai.Request{
		SessionID: s.ID,
		Responses: s.Responses,
		Archetype: result.Archetype,
		Tools:     tools,
	})
	if err != nil {
		// The recommendation already stands on its own.
		f.logger.Warn("explanation failed", zap.Error(err))
		return nil
	}

	fmt.Fprintf(f.out, "\n%s\n", text)
	return nil
}

func (f *surveyFlow) collectFeedback(ctx context.Context, s *survey.Session, result *recommend.Result) error {
	items := append(result.Names(), PromptSkip)
	i, _, err := f.asker.Select("Rate one of the recommended tools?", items, 0)
	if err != nil {
		return err
	}
	if i >= len(result.Tools) {
		return nil
	}

	ratings := make([]string, 0, feedback.MaxRating-feedback.MinRating+1)
	for r := feedback.MaxRating; r >= feedback.MinRating; r-- {
		ratings = append(ratings, strconv.Itoa(r))
	}
	_, rating, err := f.asker.Select("Rating", ratings, 0)
	if err != nil {
		return err
	}

	comment, err := f.asker.Prompt("Comment (optional)", nil)
	if err != nil {
		return err
	}

	value, _ := strconv.Atoi(rating)
	record := feedback.Record{
		SessionID: s.ID,
		Tool:      result.Tools[i].Tool.Name,
		Rating:    value,
		Comment:   comment,
		Survey:    s.Responses,
		Archetype: string(result.Archetype),
	}.Normalize()

	if err := f.feedback.Append(ctx, record); err != nil {
		return fmt.Errorf("saving feedback: %w", err)
	}

	f.logger.Info("feedback saved", zap.String("tool", record.Tool), zap.Int("rating", record.Rating))
	fmt.Fprintln(f.out, "Thank you for the feedback!")
	return nil
}

func printResult(out io.Writer, result *recommend.Result) {
	p := result.Profile

	fmt.Fprintf(out, "\n%s\n%s\n", p.Title, p.Description)
	if p.Strengths != "" {
		fmt.Fprintf(out, "\n강점: %s\n", p.Strengths)
	}
	if p.RecommendedApproach != "" {
		fmt.Fprintf(out, "추천 접근법: %s\n", p.RecommendedApproach)
	}

	if len(result.Tools) == 0 {
		fmt.Fprintln(out, "\n추천할 도구가 없습니다.")
		return
	}

	fmt.Fprintln(out, "\n추천 도구:")
	for i, ranked := range result.Tools {
		tool := ranked.Tool
		fmt.Fprintf(out, "%d. %s (%s, %s) - %d점\n", i+1, tool.Name, orDash(tool.Category), tool.Difficulty.Effective(), ranked.Score)
		if tool.Description != "" {
			fmt.Fprintf(out, "   %s\n", tool.Description)
		}
	}
}

func indexOf(items []string, value string) int {
	for i, item := range items {
		if item == value {
			return i
		}
	}
	return 0
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
