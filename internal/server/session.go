package server

import (
	"database/sql"
	"fmt"
	"strconv"

	"usernotes/internal/database/dto"
	"usernotes/internal/database/repositories"

	"github.com/gofiber/fiber/v2"
)

const sessionKey = "db.session"

// session pins one pooled connection to the request and hands it back when
// the rest of the chain returns, whether it succeeded, failed or panicked.
func (s *FiberServer) session(c *fiber.Ctx) error {
	conn, err := s.db.DB().Conn(c.Context())
	if err != nil {
		return fmt.Errorf("error acquiring database session: %w", err)
	}
	defer conn.Close()

	c.Locals(sessionKey, conn)
	return c.Next()
}

func sessionConn(c *fiber.Ctx) *sql.Conn {
	return c.Locals(sessionKey).(*sql.Conn)
}

func (s *FiberServer) userRepo(c *fiber.Ctx) repositories.UserRepository {
	return repositories.NewUserRepository(sessionConn(c), s.db.Dialect())
}

func (s *FiberServer) searchRepo(c *fiber.Ctx) repositories.SearchRepository {
	return repositories.NewSearchRepository(sessionConn(c), s.db.Dialect())
}

func (s *FiberServer) noteRepo(c *fiber.Ctx) repositories.NoteRepository {
	return repositories.NewNoteRepository(sessionConn(c), s.db.Dialect())
}

func pathID(c *fiber.Ctx, param, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(param), 10, 64)
	if err != nil {
		return 0, invalidField("value is not a valid integer", "type_error.integer", "path", name)
	}
	return id, nil
}

// parseBody decodes the JSON body into dst and runs its validation rules.
func parseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return invalidField("invalid request body", "value_error.jsondecode", "body")
	}
	if fields := dto.Validate(dst); fields != nil {
		return &validationError{fields: fields}
	}
	return nil
}
