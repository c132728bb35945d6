package server

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/xpanvictor/linguabridge/internal/config"
	"github.com/xpanvictor/linguabridge/internal/domains/chat"
	"github.com/xpanvictor/linguabridge/internal/domains/translation"
	"github.com/xpanvictor/linguabridge/internal/handlers"
	ws "github.com/xpanvictor/linguabridge/internal/handlers/websocket"
	"github.com/xpanvictor/linguabridge/internal/lang"
	"github.com/xpanvictor/linguabridge/pkg/Logger"
	"github.com/xpanvictor/linguabridge/pkg/io/audiostore"
	"github.com/xpanvictor/linguabridge/pkg/io/stt"
)

// Dependencies carries everything the routes need.
type Dependencies struct {
	ChatService        *chat.Service
	Registry           *chat.Registry
	TranslationService *translation.Service
	AudioStore         *audiostore.Store
	Recognizer         *stt.Recognizer
	Logger             *Logger.Logger
	Configs            *config.Settings
}

func InitializeRoutes(r *gin.Engine, dep Dependencies) {
	r.GET("/", func(ctx *gin.Context) { ctx.JSON(200, gin.H{"message": "Server healthy"}) })
	r.GET("/health", func(ctx *gin.Context) { ctx.JSON(200, gin.H{"status": "ok"}) })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/")
	handlers.NewTranslateHandler(dep.TranslationService, dep.Logger).RegisterTranslateRoutes(api)
	handlers.NewChatHandler(dep.ChatService, dep.AudioStore, dep.Recognizer, dep.Logger).RegisterChatRoutes(api)

	gateway := ws.NewGateway(
		dep.Registry,
		dep.ChatService,
		dep.TranslationService,
		lang.Code(dep.Configs.Chat.DefaultTargetLang),
		dep.Configs.Chat.EmotionEnabled,
		dep.Logger,
	)
	r.GET("/ws/chat/:chatId", gateway.HandleChat)
}
