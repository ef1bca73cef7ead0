// ABOUTME: Interactive terminal chat for the banking-assistant platform.
// ABOUTME: Wires config, the gateway client, and a chat session per selected agent.

package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/bankdesk/console/internal/api"
	"github.com/bankdesk/console/internal/chat"
	"github.com/bankdesk/console/internal/config"
)

// getConfigPath returns the path to the console config file.
// Priority: DESK_CONFIG env var > XDG_CONFIG_HOME/bankdesk/console.yaml > ~/.config/bankdesk/console.yaml
func getConfigPath() string {
	if envPath := os.Getenv("DESK_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "console.yaml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "bankdesk", "console.yaml")
}

// loadConfig reads the config file, falling back to defaults when none exists.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return config.Default(), nil
	}
	return nil, err
}

func main() {
	server := flag.String("server", "", "Gateway base URL (overrides config)")
	user := flag.String("user", "", "User id for outbound messages (overrides config)")
	flag.Parse()

	cfg, err := loadConfig(getConfigPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *server != "" {
		cfg.Server.BaseURL = *server
	}
	if *user != "" {
		cfg.Chat.UserID = *user
	}

	logger := setupLogger(cfg.Logging)
	slog.SetDefault(logger)

	client := api.New(cfg.Server.BaseURL, cfg.Chat.UserID, api.Options{
		Timeout: cfg.Chat.RequestTimeout,
		Token:   cfg.Server.Token,
		Logger:  logger,
	})

	fmt.Printf("desk-chat connected to %s\n", cfg.Server.BaseURL)
	fmt.Println("Type a message and press Enter. /help for commands. Ctrl+C to quit.")
	fmt.Println()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, client); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\nGoodbye!")
}

func run(ctx context.Context, client *api.Client) error {
	scanner := bufio.NewScanner(os.Stdin)

	var session *chat.Session

	for {
		// Print prompt (include agent name if a session is open)
		if session != nil {
			fmt.Printf("[%s]> ", session.Agent().Name)
		} else {
			fmt.Print("> ")
		}

		// Read input with context awareness
		inputCh := make(chan string, 1)
		errCh := make(chan error, 1)

		go func() {
			if scanner.Scan() {
				inputCh <- scanner.Text()
			} else {
				if err := scanner.Err(); err != nil {
					errCh <- err
				} else {
					errCh <- io.EOF
				}
			}
		}()

		var input string
		select {
		case <-ctx.Done():
			return nil
		case err := <-errCh:
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		case input = <-inputCh:
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if input == "/quit" || input == "/exit" || input == "/q" {
			return nil
		}

		if input == "/agents" {
			if err := listAgents(ctx, client); err != nil {
				fmt.Printf("[error] %v\n", err)
			}
			fmt.Println()
			continue
		}

		if strings.HasPrefix(input, "/use") {
			arg := strings.TrimSpace(strings.TrimPrefix(input, "/use"))
			if arg == "" {
				session = nil
				fmt.Println("Cleared agent selection")
			} else {
				var err error
				session, err = openSession(ctx, client, arg)
				if err != nil {
					fmt.Printf("[error] %v\n", err)
				} else {
					fmt.Printf("Now talking to %s\n", session.Agent().Name)
				}
			}
			fmt.Println()
			continue
		}

		if input == "/reset" {
			if session == nil {
				fmt.Println("No agent selected. Use /use <agent_id> first.")
			} else {
				session.Reset()
				fmt.Println("Conversation cleared")
			}
			fmt.Println()
			continue
		}

		if input == "/log" {
			if session == nil {
				fmt.Println("No agent selected. Use /use <agent_id> first.")
			} else {
				renderLog(session.Turns())
			}
			fmt.Println()
			continue
		}

		if input == "/help" {
			printHelp()
			fmt.Println()
			continue
		}

		if session == nil {
			fmt.Println("No agent selected. Use /agents to list, /use <agent_id> to pick one.")
			fmt.Println()
			continue
		}

		agentTurn, err := session.Send(ctx, input)
		if err != nil {
			// The notifier already surfaced the failure; in-flight
			// rejection just means the previous turn has not settled.
			if errors.Is(err, chat.ErrSendInFlight) {
				fmt.Println("[busy] previous turn still in flight")
			}
			fmt.Println()
			continue
		}
		if agentTurn != nil {
			renderTurn(*agentTurn)
		}
		fmt.Println()
	}
}

// openSession looks up the agent identity and starts a fresh session with it.
func openSession(ctx context.Context, client *api.Client, agentID string) (*chat.Session, error) {
	agents, err := client.ListAgents(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching agents: %w", err)
	}
	for _, a := range agents {
		if a.ID == agentID {
			return chat.NewSession(a, client, consoleNotifier{}, nil), nil
		}
	}
	return nil, fmt.Errorf("unknown agent %q", agentID)
}

// listAgents fetches and displays the available agents.
func listAgents(ctx context.Context, client *api.Client) error {
	agents, err := client.ListAgents(ctx)
	if err != nil {
		return fmt.Errorf("fetching agents: %w", err)
	}

	if len(agents) == 0 {
		fmt.Println("No agents available")
		return nil
	}

	fmt.Println("Available agents:")
	for _, a := range agents {
		caps := strings.Join(a.Capabilities, ", ")
		fmt.Printf("  %s: %s [%s]\n", a.ID, a.Name, caps)
	}
	return nil
}

// printHelp displays available commands.
func printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  /agents        List available agents")
	fmt.Println("  /use <id>      Start a conversation with an agent")
	fmt.Println("  /use           Clear agent selection")
	fmt.Println("  /reset         Clear the current conversation")
	fmt.Println("  /log           Show the conversation so far")
	fmt.Println("  /help          Show this help")
	fmt.Println("  /quit          Exit")
}
