package bootstrap

import (
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"insight-backend/internal/documents"
	"insight-backend/internal/llm"
	"insight-backend/internal/llm/gemini"
	"insight-backend/internal/shared/config"
	"insight-backend/internal/shared/server"
	"insight-backend/internal/shared/storage/object"
	localstore "insight-backend/internal/shared/storage/object/local"
)

// App holds shared dependencies.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	Repo             documents.Repo
	Files            object.ObjectStore
	LLM              llm.Client
	DocumentsService *documents.Service
	DocumentsHandler *documents.Handler
}

// Build wires repositories, the object store, the AI client, services
// and the router. A missing or unopenable database falls back to the
// in-memory repo so a dev process always starts.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}

	repo := buildRepo(cfg)
	files := localstore.New(cfg.LocalStoreDir)
	aiClient := buildLLM(cfg)

	svc := &documents.Service{
		Repo:  repo,
		Files: files,
		AI:    aiClient,
	}
	handler := documents.NewHandler(svc)

	app := &App{
		Config:           cfg,
		Repo:             repo,
		Files:            files,
		LLM:              aiClient,
		DocumentsService: svc,
		DocumentsHandler: handler,
	}
	app.Router = server.NewRouter(cfg, handler, svc.AIAvailable)
	return app, nil
}

func buildRepo(cfg config.Config) documents.Repo {
	if strings.TrimSpace(cfg.DatabasePath) == "" {
		return documents.NewMemoryRepo()
	}
	repo, err := documents.NewGormRepo(cfg.DatabasePath)
	if err != nil {
		log.Printf("failed to open database at %s, falling back to memory: %v", cfg.DatabasePath, err)
		return documents.NewMemoryRepo()
	}
	return repo
}

func buildLLM(cfg config.Config) llm.Client {
	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		log.Printf("GEMINI_API_KEY not set, AI analysis disabled")
		return llm.Unavailable{}
	}
	client, err := gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Printf("failed to initialize Gemini client, AI analysis disabled: %v", err)
		return llm.Unavailable{}
	}
	return client
}
