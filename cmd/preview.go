package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/battlecard/internal/card"
	"github.com/abhisek/battlecard/internal/diagram"
	"github.com/abhisek/battlecard/internal/disclosure"
	"github.com/abhisek/battlecard/internal/markdown"
	"github.com/abhisek/battlecard/internal/quiz"
)

var previewCmd = &cobra.Command{
	Use:   "preview <card.json>",
	Short: "Print a card file section by section (no backend, no database)",
	Long: `Validate a card file and print every section as the player would show it.

This is a stateless authoring tool: nothing is sent to the backend and no
review is recorded. With --render the decision tree is sent to the diagram
service and the SVG written to the diagram directory. With --quiz the
checkpoint is asked on stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().Bool("render", false, "Render the decision tree through the diagram service")
	previewCmd.Flags().Bool("quiz", false, "Answer the checkpoint interactively")
	previewCmd.Flags().Int("width", 80, "Wrap width")
}

func runPreview(cmd *cobra.Command, args []string) error {
	render, _ := cmd.Flags().GetBool("render")
	askQuiz, _ := cmd.Flags().GetBool("quiz")
	width, _ := cmd.Flags().GetInt("width")

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read card: %w", err)
	}
	c, err := card.Decode(raw)
	if err != nil {
		return err
	}

	block := diagram.Extract(c.Algorithm)
	fmt.Printf("%s  (%s)\n\n", c.Topic, c.Filename)

	for _, st := range disclosure.New(c.HasQuiz()).Stages() {
		fmt.Printf("── %s ──\n", st.Title())
		switch st {
		case disclosure.Vignette:
			fmt.Println(markdown.Render(c.Vignette, width))
		case disclosure.Foundation:
			fmt.Println(markdown.Render(c.Foundation, width))
		case disclosure.Algorithm:
			fmt.Println(markdown.Render(block.Prose, width))
			if block.Found {
				fmt.Println("\nDecision tree source:")
				fmt.Println(block.Source)
			}
		case disclosure.Keys:
			fmt.Println(markdown.Render(c.Keys, width))
		case disclosure.MCQ:
			fmt.Println(c.Quiz.Question)
			for i, opt := range c.Quiz.Options {
				fmt.Printf("  %s\n", quiz.Display(i, opt))
			}
		case disclosure.SRS:
			fmt.Println(markdown.Render(c.FinalText(), width))
		}
		fmt.Println()
	}

	if render && block.Found {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		id := diagram.NewID()
		res := diagram.Render(context.Background(),
			diagram.NewKrokiRenderer(cfg.DiagramURL, cfg.RequestTimeout),
			diagram.FileSink{Dir: cfg.DiagramDir}, id, block.Source)
		if res.Err != nil {
			fmt.Printf("Syntax error in decision tree: %v\n\n", res.Err)
		} else {
			fmt.Printf("Decision tree rendered: %s (%d bytes)\n\n", res.Path, len(res.SVG))
		}
	}

	if askQuiz && c.HasQuiz() {
		st := quiz.New(c.Quiz)
		scanner := bufio.NewScanner(os.Stdin)
		for !st.Answered() {
			fmt.Print("Your answer (A-D): ")
			if !scanner.Scan() {
				fmt.Println("\n(input closed)")
				return nil
			}
			i, ok := quiz.KeyIndex(strings.TrimSpace(scanner.Text()))
			if !ok || !st.Select(i) {
				fmt.Println("Pick one of the listed letters.")
			}
		}
		if st.Correct {
			fmt.Println("✓ Correct")
		} else {
			fmt.Println("✗ Not quite")
		}
		fmt.Printf("Answer: %s\n", st.Answer)
		if i := st.CorrectIndex(); i >= 0 && i != st.Selected {
			fmt.Printf("Matching option: %s\n", quiz.Display(i, st.Options[i]))
		}
	}
	return nil
}
