package server

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/mckayn10/ai-chat-app/pkg/agent"
	"github.com/mckayn10/ai-chat-app/pkg/auth"
	"github.com/mckayn10/ai-chat-app/pkg/contacts"
)

// Server hosts the HTTP and websocket surface around the engine.
type Server struct {
	app      *fiber.App
	agent    *agent.Agent
	sessions *agent.SessionRegistry
	auth     *auth.Service
	store    contacts.Store
	log      *slog.Logger
}

type Options struct {
	Agent    *agent.Agent
	Sessions *agent.SessionRegistry
	Auth     *auth.Service
	Store    contacts.Store
	Logger   *slog.Logger
}

func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Sessions == nil {
		opts.Sessions = agent.NewSessionRegistry()
	}
	s := &Server{
		agent:    opts.Agent,
		sessions: opts.Sessions,
		auth:     opts.Auth,
		store:    opts.Store,
		log:      opts.Logger,
	}
	app := fiber.New(fiber.Config{
		ErrorHandler: s.errorHandler,
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	usersGroup := api.Group("/users")
	usersGroup.Post("/register", s.handleRegister)
	usersGroup.Post("/login", s.handleLogin)
	usersGroup.Get("/me", AuthRequired(s.auth), s.handleMe)

	contactsGroup := api.Group("/contacts", AuthRequired(s.auth))
	contactsGroup.Get("/", s.handleListContacts)
	contactsGroup.Post("/", s.handleCreateContact)
	contactsGroup.Put("/:id", s.handleUpdateContact)
	contactsGroup.Delete("/:id", s.handleDeleteContact)

	api.Post("/chat", AuthRequired(s.auth), s.handleChat)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/chat", AuthRequired(s.auth), websocket.New(s.handleChatSocket))

	s.app = app
	return s
}

// Listen blocks serving the API until shut down.
func (s *Server) Listen(addr string) error {
	s.log.Info("server_listening", "addr", addr)
	return s.app.Listen(addr)
}

// Shutdown drains in-flight requests and stops listening.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App { return s.app }

func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	s.log.Error("request_failed", "path", c.Path(), "error", err)
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
