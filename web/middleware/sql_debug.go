package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Joshtri/SIMTernakAyam-API-sub000/database"
)

// SQLDebug annotates each response with the number of SQL statements the
// request executed, so slow endpoints show their query fan-out.
func SQLDebug() fiber.Handler {
	return func(c *fiber.Ctx) error {
		before := database.SQLLogger.Count()

		err := c.Next()

		executed := database.SQLLogger.Count() - before
		c.Set("X-SQL-Queries", strconv.Itoa(executed))
		c.Locals("SQLQueryCount", executed)
		return err
	}
}
