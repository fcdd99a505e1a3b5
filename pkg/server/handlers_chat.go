package server

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/mckayn10/ai-chat-app/pkg/redact"
	"github.com/mckayn10/ai-chat-app/pkg/users"
)

type chatRequest struct {
	Message string `json:"message"`
}

// handleChat runs one conversational command through the engine. The
// session registry keeps dialogue state across requests, so "create a
// contact" followed by a bare name works over plain HTTP.
func (s *Server) handleChat(c *fiber.Ctx) error {
	u := currentUser(c)
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if strings.TrimSpace(req.Message) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Message is required"})
	}
	sess := s.sessions.Get(u.ID)
	s.log.Info("chat_command", "user_id", u.ID, "session_id", sess.ID,
		"message", redact.Text(redact.Snip(req.Message, 120)))
	result := s.agent.ProcessCommand(c.Context(), sess, req.Message)
	return c.JSON(result)
}

// handleChatSocket serves the conversational loop over one websocket: each
// text message in is one command, each reply one ActionResult.
func (s *Server) handleChatSocket(conn *websocket.Conn) {
	u, _ := conn.Locals(localUser).(users.User)
	sess := s.sessions.Get(u.ID)
	defer conn.Close()
	for {
		mt, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if mt != websocket.TextMessage {
			continue
		}
		message := strings.TrimSpace(string(raw))
		if message == "" {
			continue
		}
		result := s.agent.ProcessCommand(context.Background(), sess, message)
		if err := conn.WriteJSON(result); err != nil {
			s.log.Warn("chat_socket_write_failed", "error", err, "user_id", u.ID)
			return
		}
	}
}
