package server

import (
	"errors"

	"usernotes/internal/database/dto"
	"usernotes/internal/database/repositories"

	"github.com/gofiber/fiber/v2"
)

var deleted = dto.StatusResponse{Status: "deleted"}

func (s *FiberServer) RegisterFiberRoutes() {
	s.App.Get("/", s.docsRedirect)
	s.App.Get("/docs", s.docsHandler)
	s.App.Get("/openapi.json", s.openAPIHandler)
	s.App.Get("/health", s.healthHandler)

	users := s.App.Group("/users", s.session)
	users.Post("/", s.createUser)
	users.Get("/", s.searchUsers)
	users.Get("/:id", s.getUser)
	users.Put("/:id", s.updateUser)
	users.Delete("/:id", s.deleteUser)

	users.Get("/:id/notes", s.getNotes)
	users.Post("/:id/notes", s.createNote)
	users.Put("/:id/notes/:note_id", s.updateNote)
	users.Delete("/:id/notes/:note_id", s.deleteNote)
}

func (s *FiberServer) healthHandler(c *fiber.Ctx) error {
	health := s.db.Health()
	if health["status"] != "up" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(health)
	}
	return c.JSON(health)
}

func (s *FiberServer) createUser(c *fiber.Ctx) error {
	var body dto.UserRequest
	if err := parseBody(c, &body); err != nil {
		return err
	}
	in := body.Input()

	repo := s.userRepo(c)
	_, err := repo.GetByEmail(c.Context(), in.Email)
	if err == nil {
		return fiber.NewError(fiber.StatusBadRequest, "Duplicate user email")
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}

	user, err := repo.Create(c.Context(), in)
	if errors.Is(err, repositories.ErrDuplicateEmail) {
		return fiber.NewError(fiber.StatusBadRequest, "Duplicate user email")
	}
	if err != nil {
		return err
	}
	return c.JSON(user)
}

func (s *FiberServer) searchUsers(c *fiber.Ctx) error {
	substring := c.Query("search", c.Query("search_str"))
	users, err := s.searchRepo(c).SearchUsers(c.Context(), substring)
	if err != nil {
		return err
	}
	return c.JSON(users)
}

func (s *FiberServer) getUser(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "user_id")
	if err != nil {
		return err
	}
	user, err := s.userRepo(c).GetByID(c.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "user id not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(user)
}

func (s *FiberServer) updateUser(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "user_id")
	if err != nil {
		return err
	}
	var body dto.UserRequest
	if err := parseBody(c, &body); err != nil {
		return err
	}
	in := body.Input()

	user, err := s.userRepo(c).Update(c.Context(), id, in)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "user id not found")
	case errors.Is(err, repositories.ErrDuplicateEmail):
		return fiber.NewError(fiber.StatusBadRequest, "Duplicate user email")
	case err != nil:
		return err
	}
	return c.JSON(user)
}

func (s *FiberServer) deleteUser(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "user_id")
	if err != nil {
		return err
	}
	ok, err := s.userRepo(c).Delete(c.Context(), id)
	if err != nil {
		return err
	}
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "user id not found")
	}
	return c.JSON(deleted)
}

func (s *FiberServer) getNotes(c *fiber.Ctx) error {
	userID, err := pathID(c, "id", "user_id")
	if err != nil {
		return err
	}
	notes, err := s.noteRepo(c).GetAll(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(notes)
}

func (s *FiberServer) createNote(c *fiber.Ctx) error {
	userID, err := pathID(c, "id", "user_id")
	if err != nil {
		return err
	}
	var body dto.NoteRequest
	if err := parseBody(c, &body); err != nil {
		return err
	}
	in := body.Input()

	note, err := s.noteRepo(c).Create(c.Context(), userID, in)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "user id not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(note)
}

func (s *FiberServer) updateNote(c *fiber.Ctx) error {
	userID, err := pathID(c, "id", "user_id")
	if err != nil {
		return err
	}
	noteID, err := pathID(c, "note_id", "note_id")
	if err != nil {
		return err
	}
	var body dto.NoteRequest
	if err := parseBody(c, &body); err != nil {
		return err
	}
	in := body.Input()

	note, err := s.noteRepo(c).Update(c.Context(), userID, noteID, in)
	if errors.Is(err, repositories.ErrNotFound) || errors.Is(err, repositories.ErrMultipleRows) {
		return fiber.NewError(fiber.StatusNotFound, "user or note id not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(note)
}

func (s *FiberServer) deleteNote(c *fiber.Ctx) error {
	userID, err := pathID(c, "id", "user_id")
	if err != nil {
		return err
	}
	noteID, err := pathID(c, "note_id", "note_id")
	if err != nil {
		return err
	}

	ok, err := s.noteRepo(c).Delete(c.Context(), userID, noteID)
	if err != nil {
		return err
	}
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "note not found")
	}
	return c.JSON(deleted)
}
