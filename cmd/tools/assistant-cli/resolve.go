package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"shop-assistant/internal/assistant"
	"shop-assistant/internal/assistant/extract"
	"shop-assistant/internal/catalog/memory"
	"shop-assistant/internal/common/config"
	"shop-assistant/internal/common/logger"
	"shop-assistant/internal/models"

	"github.com/spf13/cobra"
)

// defaultAssistant mirrors the defaults applied by the config loader.
var defaultAssistant = config.AssistantConfig{
	ResultLimit:             6,
	AroundFactor:            0.2,
	SearchFallbackMinRating: 4.5,
	RecommendMinRating:      4.5,
	GeneralMinRating:        4.7,
}

func newEngine(opts *rootOptions) *assistant.Engine {
	log := logger.NewNoOpLogger()
	if opts.verbose {
		log = logger.NewStructured("debug", "console", "stderr")
	}
	return assistant.NewEngine(defaultAssistant, log, nil)
}

func newResolveCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "resolve <message>",
		Short: "Resolve a chat message against the fixture catalog",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := memory.LoadFile(opts.fixture)
			if err != nil {
				return fmt.Errorf("load fixture: %w", err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			res, err := newEngine(opts).Resolve(ctx, strings.Join(args, " "), memory.New(products))
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			printResult(cmd.OutOrStdout(), res)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")
	return cmd
}

func newClassifyCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <message>",
		Short: "Print the intent and entities of a chat message",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, ents := newEngine(opts).Classify(strings.Join(args, " "))
			return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
				"intent":   in,
				"entities": ents,
			})
		},
	}
}

func newVocabCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "vocab",
		Short: "Print the brand roster, hint categories and retrieval settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := newEngine(opts)
			return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
				"brands":     engine.Brands(),
				"categories": extract.Categories(),
				"settings":   engine.Settings(),
			})
		},
	}
}

func printResult(w io.Writer, res *models.SearchResult) {
	fmt.Fprintf(w, "intent:   %s\n", res.Intent)
	if res.Category != "" {
		fmt.Fprintf(w, "category: %s\n", res.Category)
	}
	if res.FallbackUsed {
		fmt.Fprintln(w, "fallback: yes")
	}
	fmt.Fprintf(w, "response: %s\n", res.Response)
	for _, p := range res.Products {
		fmt.Fprintf(w, "  #%-4d %-28s %-12s $%9.2f  %.1f★\n", p.ID, p.Name, p.Brand, p.Price, p.Rating)
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
