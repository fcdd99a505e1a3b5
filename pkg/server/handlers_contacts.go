package server

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/mckayn10/ai-chat-app/pkg/contacts"
)

func (s *Server) handleListContacts(c *fiber.Ctx) error {
	u := currentUser(c)
	list, err := s.store.List(c.Context(), u.ID)
	if err != nil {
		s.log.Error("list_contacts_failed", "error", err, "user_id", u.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch contacts"})
	}
	return c.JSON(list)
}

func (s *Server) handleCreateContact(c *fiber.Ctx) error {
	u := currentUser(c)
	var in contacts.Input
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := contacts.ValidateInput(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	created, err := s.store.Create(c.Context(), u.ID, in)
	if err != nil {
		s.log.Error("create_contact_failed", "error", err, "user_id", u.ID)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to create contact"})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (s *Server) handleUpdateContact(c *fiber.Ctx) error {
	u := currentUser(c)
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid contact ID"})
	}
	var upd contacts.Updates
	if err := c.BodyParser(&upd); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	updated, err := s.store.Update(c.Context(), u.ID, id, upd)
	if err != nil {
		if errors.Is(err, contacts.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Contact not found"})
		}
		s.log.Error("update_contact_failed", "error", err, "user_id", u.ID)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to update contact"})
	}
	return c.JSON(updated)
}

func (s *Server) handleDeleteContact(c *fiber.Ctx) error {
	u := currentUser(c)
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid contact ID"})
	}
	if err := s.store.Delete(c.Context(), u.ID, id); err != nil {
		if errors.Is(err, contacts.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Contact not found"})
		}
		s.log.Error("delete_contact_failed", "error", err, "user_id", u.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete contact"})
	}
	return c.JSON(fiber.Map{"message": "Contact deleted successfully"})
}
