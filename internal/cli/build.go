package cli

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/hireflow/interview-agent/internal/adapters/llm"
	firestorestore "github.com/hireflow/interview-agent/internal/adapters/storage/firestore"
	filestore "github.com/hireflow/interview-agent/internal/adapters/storage/file"
	memstore "github.com/hireflow/interview-agent/internal/adapters/storage/memory"
	redisstore "github.com/hireflow/interview-agent/internal/adapters/storage/redis"
	"github.com/hireflow/interview-agent/internal/app/dialogue"
	"github.com/hireflow/interview-agent/internal/config"
	"github.com/hireflow/interview-agent/internal/domain"
	"github.com/hireflow/interview-agent/internal/observability"
)

func buildLLMClient(ctx context.Context, cfg *config.Config) (domain.LLMClient, error) {
	log := observability.Logger()

	switch cfg.LLMProvider {
	case "groq":
		log.Info("using groq llm client", "model", cfg.GroqModel)
		return llm.NewGroqClient(cfg.GroqAPIKey, cfg.GroqModel, cfg.GroqBaseURL, cfg.GenerateTimeout)
	case "gemini":
		log.Info("using gemini llm client", "model", cfg.GeminiModel)
		return llm.NewGeminiClient(ctx, cfg.GCPProjectID, cfg.GCPLocation, cfg.GeminiModel)
	case "mock":
		log.Info("using mock llm client")
		return llm.NewMockClient(), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLMProvider)
	}
}

func buildSessionStore(cfg *config.Config) (domain.SessionStore, error) {
	switch cfg.SessionBackend {
	case "redis":
		observability.Logger().Info("using redis session store", "addr", cfg.RedisAddr)
		client := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		return redisstore.NewSessionStore(client, cfg.RedisTTL), nil
	case "memory":
		observability.Logger().Info("using in-memory session store")
		return memstore.NewSessionStore(), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.SessionBackend)
	}
}

func buildTranscriptStore(ctx context.Context, cfg *config.Config) (domain.TranscriptStore, error) {
	switch cfg.TranscriptBackend {
	case "firestore":
		observability.Logger().Info("using firestore transcript store", "project", cfg.GCPProjectID)
		return firestorestore.NewTranscriptStore(ctx, cfg.GCPProjectID)
	case "file":
		observability.Logger().Info("using file transcript store", "dir", cfg.TranscriptDir)
		return filestore.NewTranscriptStore(cfg.TranscriptDir)
	default:
		return nil, fmt.Errorf("unknown transcript backend %q", cfg.TranscriptBackend)
	}
}

func buildService(ctx context.Context, cfg *config.Config) (*dialogue.Service, error) {
	flows, err := dialogue.LoadFlows(cfg.ScriptPath)
	if err != nil {
		return nil, err
	}

	llmClient, err := buildLLMClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	sessions, err := buildSessionStore(cfg)
	if err != nil {
		return nil, err
	}

	transcripts, err := buildTranscriptStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	gateway := dialogue.NewGateway(llmClient, cfg.GenerateTimeout)
	return dialogue.NewService(flows, gateway, sessions, transcripts), nil
}
