package handler

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"bizplan/internal/datasource"
	"bizplan/internal/kvstore"
	"bizplan/internal/model"
	"bizplan/internal/service"
)

// dataPayload is the uniform success envelope. Count is set on list
// responses only.
type dataPayload struct {
	Success bool   `json:"success"`
	Count   int    `json:"count,omitempty"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeData(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(dataPayload{Success: true, Data: data})
}

func writeList[T any](c *fiber.Ctx, items []T) error {
	return c.Status(fiber.StatusOK).JSON(dataPayload{Success: true, Count: len(items), Data: items})
}

// RegisterRoutes attaches the API routes to the provided Fiber app.
// Handlers stay thin: parse, delegate to the service, translate errors.
func RegisterRoutes(app *fiber.App, store kvstore.Store, tasks service.TaskService, resources service.ResourceService) {
	// Serve the OpenAPI spec and a Swagger UI shell pointing at it.
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	api := app.Group("/api")

	api.Get("/health", HealthCheck(store))

	api.Get("/tasks", ListTasks(tasks))
	api.Post("/tasks", CreateTask(tasks))
	api.Get("/tasks/:id", GetTask(tasks))
	api.Put("/tasks/:id", UpdateTask(tasks))
	api.Delete("/tasks/:id", DeleteTask(tasks))
	api.Patch("/tasks/:id/toggle", ToggleTask(tasks))

	api.Get("/resources", ListResources(resources))
	api.Post("/resources", CreateResource(resources))
	// Static segments must come before the :id routes.
	api.Get("/resources/search", SearchResourcesByTags(resources))
	api.Get("/resources/type/:type", ListResourcesByType(resources))
	api.Get("/resources/:id", GetResource(resources))
	api.Put("/resources/:id", UpdateResource(resources))
	api.Delete("/resources/:id", DeleteResource(resources))
}

// HealthCheck verifies the slot store is reachable with a short timeout.
func HealthCheck(store kvstore.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if _, _, err := store.Get(ctx, "bizplan_health"); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "storage unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// parseID validates the :id path parameter. A malformed id can never match a
// stored record, so it reports absence the same way a well-formed but unknown
// id would. That keeps the local and remote backends observably identical.
func parseID(c *fiber.Ctx, entity string) (string, error) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", writeServiceError(c, &datasource.NotFoundError{Entity: entity, ID: id})
	}
	return id, nil
}

// ListTasks returns all tasks, optionally filtered by ?completed=true|false.
func ListTasks(svc service.TaskService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var completed *bool
		if q := c.Query("completed"); q != "" {
			b, err := strconv.ParseBool(q)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "invalid completed filter")
			}
			completed = &b
		}

		tasks, err := svc.ListFiltered(c.UserContext(), completed)
		if err != nil {
			return writeServiceError(c, err)
		}
		return writeList(c, tasks)
	}
}

func CreateTask(svc service.TaskService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.CreateTaskInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "invalid task payload")
		}

		task, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return writeData(c, fiber.StatusCreated, task)
	}
}

func GetTask(svc service.TaskService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "task")
		if err != nil {
			return err
		}
		task, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return writeData(c, fiber.StatusOK, task)
	}
}

func UpdateTask(svc service.TaskService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "task")
		if err != nil {
			return err
		}
		var patch model.TaskPatch
		if err := c.BodyParser(&patch); err != nil {
			return writeError(c, fiber.StatusBadRequest, "invalid task payload")
		}

		task, err := svc.Update(c.UserContext(), id, patch)
		if err != nil {
			return writeServiceError(c, err)
		}
		return writeData(c, fiber.StatusOK, task)
	}
}

func DeleteTask(svc service.TaskService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "task")
		if err != nil {
			return err
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(dataPayload{Success: true, Message: "task deleted"})
	}
}

func ToggleTask(svc service.TaskService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "task")
		if err != nil {
			return err
		}
		task, err := svc.ToggleCompletion(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return writeData(c, fiber.StatusOK, task)
	}
}

func ListResources(svc service.ResourceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		resources, err := svc.List(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return writeList(c, resources)
	}
}

func CreateResource(svc service.ResourceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.CreateResourceInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "invalid resource payload")
		}

		res, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return writeData(c, fiber.StatusCreated, res)
	}
}

func GetResource(svc service.ResourceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "resource")
		if err != nil {
			return err
		}
		res, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return writeData(c, fiber.StatusOK, res)
	}
}

func UpdateResource(svc service.ResourceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "resource")
		if err != nil {
			return err
		}
		var patch model.ResourcePatch
		if err := c.BodyParser(&patch); err != nil {
			return writeError(c, fiber.StatusBadRequest, "invalid resource payload")
		}

		res, err := svc.Update(c.UserContext(), id, patch)
		if err != nil {
			return writeServiceError(c, err)
		}
		return writeData(c, fiber.StatusOK, res)
	}
}

func DeleteResource(svc service.ResourceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "resource")
		if err != nil {
			return err
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(dataPayload{Success: true, Message: "resource deleted"})
	}
}

// SearchResourcesByTags matches resources against ?tags=a,b (OR semantics).
func SearchResourcesByTags(svc service.ResourceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var tags []string
		if q := c.Query("tags"); q != "" {
			tags = strings.Split(q, ",")
		}
		resources, err := svc.FindByTags(c.UserContext(), tags)
		if err != nil {
			return writeServiceError(c, err)
		}
		return writeList(c, resources)
	}
}

func ListResourcesByType(svc service.ResourceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		t := model.ResourceType(c.Params("type"))
		switch t {
		case model.ResourceDocument, model.ResourceImage, model.ResourceOther:
		default:
			return writeError(c, fiber.StatusBadRequest, "invalid resource type")
		}

		resources, err := svc.FindByType(c.UserContext(), t)
		if err != nil {
			return writeServiceError(c, err)
		}
		return writeList(c, resources)
	}
}
