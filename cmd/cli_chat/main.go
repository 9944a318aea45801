package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"legal-llm/internal/config"
	"legal-llm/internal/domain"
	"legal-llm/internal/faq"
	"legal-llm/internal/guard"
	"legal-llm/internal/llm"
	"legal-llm/internal/repository"
	"legal-llm/internal/service"
)

func main() {
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := zap.NewExample()
	defer logger.Sync()

	llmClient := llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, llm.Options{
		Model:       cfg.LLMModel,
		Temperature: cfg.LLMTemperature,
		MaxTokens:   cfg.LLMMaxTokens,
	}, zap.NewStdLog(logger))

	messageRepo := repository.NewMemoryMessageRepository()
	chatSvc := service.NewChatService(
		llmClient,
		repository.NewMemorySessionRepository(),
		messageRepo,
		faq.NewStore(),
		guard.NewLadder(),
		service.NewBasicHistoryService(messageRepo, cfg.HistoryLimit),
	)

	fmt.Println("===== Legal Query Assistant =====")
	fmt.Println("General information only; not a substitute for professional legal advice.")

	selected := selectDomain(reader)

	session, err := chatSvc.CreateSession(ctx, selected)
	if err != nil {
		log.Fatalf("crear sesion: %v", err)
	}

	fmt.Println("---- Chat (comandos: 'domain', 'clear', 'exit') ----")
	for {
		fmt.Print("You > ")
		text, err := reader.ReadString('\n')
		if err != nil {
			log.Fatalf("leer input: %v", err)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		switch strings.ToLower(text) {
		case "exit", "quit":
			fmt.Println("Bye.")
			return
		case "clear":
			if err := chatSvc.Clear(ctx, session.ID); err != nil {
				fmt.Printf("error clearing conversation: %v\n", err)
				continue
			}
			fmt.Println("Conversation cleared.")
			continue
		case "domain":
			selected = selectDomain(reader)
			continue
		}

		answer, err := chatSvc.Ask(ctx, session.ID, selected, text)
		if err != nil {
			fmt.Printf("error generating answer: %v\n", err)
			continue
		}

		if answer.Guarded {
			fmt.Printf("Assistant (guard) > %s\n", answer.AssistantMessage.Content)
			continue
		}
		fmt.Printf("Assistant > %s\n", answer.AssistantMessage.Content)
	}
}

func selectDomain(reader *bufio.Reader) domain.Legal {
	domains := domain.Domains()
	for {
		fmt.Println("Select legal domain (approximate):")
		for i, d := range domains {
			fmt.Printf("[%d] %s\n", i+1, d)
		}
		fmt.Print("Choice: ")

		line, _ := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		if idx, err := strconv.Atoi(line); err == nil && idx >= 1 && idx <= len(domains) {
			return domains[idx-1]
		}
		if domain.IsKnown(line) {
			return domain.ParseDomain(line)
		}
		fmt.Println("Invalid choice.")
	}
}
