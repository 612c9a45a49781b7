package main

import (
	"fmt"
	"strings"
	"time"

	apiclient "shop-assistant/internal/common/http"
	"shop-assistant/internal/models"

	"github.com/spf13/cobra"
)

func newAskCmd() *cobra.Command {
	var (
		server    string
		sessionID string
		timeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "ask <message>",
		Short: "Send a chat message to a running assistant server",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := apiclient.NewClient(server, timeout)
			resp, err := client.Chat(cmd.Context(), models.ChatRequest{
				Message:   strings.Join(args, " "),
				SessionID: sessionID,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "session:  %s\n", resp.SessionID)
			printResult(w, &models.SearchResult{
				Response: resp.Response,
				Products: resp.Products,
				Intent:   resp.Intent,
			})
			return nil
		},
	}
	cmd.Flags().StringVarP(&server, "server", "s", "http://localhost:8080", "assistant server base URL")
	cmd.Flags().StringVar(&sessionID, "session", "", "session id to echo")
	cmd.Flags().DurationVar(&timeout, "timeout", 15*time.Second, "request timeout")
	return cmd
}
