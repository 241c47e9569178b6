package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/forgelab/assetforge/internal/providers"
	"github.com/spf13/cobra"
)

func newChatCmd() *cobra.Command {
	var providerName string
	var model string
	var maxTokens int

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Simple one-shot chat loop against an LLM provider",
		Long: `Reads prompts from standard input, sends each one as a single completion,
and prints the response. Type "exit" to quit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, model, err := resolveProvider(cmd, providerName, model)
			if err != nil {
				return err
			}

			in := bufio.NewReader(cmd.InOrStdin())
			out := cmd.OutOrStdout()

			for {
				fmt.Fprint(out, "Enter your prompt (or type 'exit' to quit): ")
				line, readErr := in.ReadString('\n')
				input := strings.TrimSpace(line)
				if strings.EqualFold(input, "exit") {
					return nil
				}
				if input != "" {
					response, err := provider.Complete(cmd.Context(), providers.Config{
						Model:       model,
						Temperature: 0.5,
						MaxTokens:   maxTokens,
						Prompt:      input,
					})
					if err != nil {
						return err
					}
					fmt.Fprintln(out, strings.TrimSpace(response))
				}
				if readErr != nil {
					return nil
				}
			}
		},
	}

	addProviderFlags(cmd, &providerName, &model)
	cmd.Flags().IntVar(&maxTokens, "max-tokens", 1500, "Token budget per response")

	return cmd
}
