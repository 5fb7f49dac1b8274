package main

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/meikuraledutech/catbook"
)

// newApp wires the HTTP surface the viewer frontend talks to: diagram
// and prerequisite-graph catalog management plus composer sessions.
func newApp(store catbook.Store, sessions *sessionRegistry) *fiber.App {
	app := fiber.New()

	// ── Schema ────────────────────────────────────────────────────────
	app.Post("/schema", func(c fiber.Ctx) error {
		if err := store.CreateSchema(c.Context()); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"message": "schema created"})
	})

	app.Delete("/schema", func(c fiber.Ctx) error {
		if err := store.DropSchema(c.Context()); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"message": "schema dropped"})
	})

	// ── Diagrams (bulk) ───────────────────────────────────────────────
	app.Post("/diagrams", func(c fiber.Ctx) error {
		var d catbook.Diagram
		if err := c.Bind().JSON(&d); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}
		result, err := store.CreateDiagram(c.Context(), &d)
		if errors.Is(err, catbook.ErrUnknownObject) {
			return c.Status(422).JSON(fiber.Map{"error": err.Error()})
		}
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(201).JSON(result)
	})

	app.Get("/diagrams", func(c fiber.Ctx) error {
		infos, err := store.ListDiagrams(c.Context())
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(infos)
	})

	app.Get("/diagrams/:id", func(c fiber.Ctx) error {
		d, err := store.GetDiagram(c.Context(), c.Params("id"))
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		if d == nil {
			return c.Status(404).JSON(fiber.Map{"error": "diagram not found"})
		}
		return c.JSON(d)
	})

	app.Delete("/diagrams/:id", func(c fiber.Ctx) error {
		if err := store.DeleteDiagram(c.Context(), c.Params("id")); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.SendStatus(204)
	})

	// ── Objects ───────────────────────────────────────────────────────
	app.Post("/diagrams/:id/objects", func(c fiber.Ctx) error {
		var object catbook.Object
		if err := c.Bind().JSON(&object); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}
		id, err := store.AddObject(c.Context(), c.Params("id"), &object)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(201).JSON(fiber.Map{"id": id})
	})

	app.Get("/diagrams/:id/objects", func(c fiber.Ctx) error {
		objects, err := store.ListObjects(c.Context(), c.Params("id"))
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(objects)
	})

	app.Get("/diagrams/:id/objects/:objectId", func(c fiber.Ctx) error {
		o, err := store.GetObject(c.Context(), c.Params("id"), c.Params("objectId"))
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		if o == nil {
			return c.Status(404).JSON(fiber.Map{"error": "object not found"})
		}
		return c.JSON(o)
	})

	app.Put("/diagrams/:id/objects/:objectId", func(c fiber.Ctx) error {
		var object catbook.Object
		if err := c.Bind().JSON(&object); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}
		object.ID = c.Params("objectId")
		err := store.UpdateObject(c.Context(), c.Params("id"), &object)
		if errors.Is(err, catbook.ErrObjectNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "object not found"})
		}
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.SendStatus(204)
	})

	app.Delete("/diagrams/:id/objects/:objectId", func(c fiber.Ctx) error {
		if err := store.DeleteObject(c.Context(), c.Params("id"), c.Params("objectId")); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.SendStatus(204)
	})

	// ── Morphisms ─────────────────────────────────────────────────────
	app.Post("/diagrams/:id/morphisms", func(c fiber.Ctx) error {
		var morphism catbook.Morphism
		if err := c.Bind().JSON(&morphism); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}
		id, err := store.AddMorphism(c.Context(), c.Params("id"), &morphism)
		if errors.Is(err, catbook.ErrUnknownObject) {
			return c.Status(422).JSON(fiber.Map{"error": err.Error()})
		}
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(201).JSON(fiber.Map{"id": id})
	})

	app.Get("/diagrams/:id/morphisms", func(c fiber.Ctx) error {
		morphisms, err := store.ListMorphisms(c.Context(), c.Params("id"))
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(morphisms)
	})

	app.Get("/diagrams/:id/morphisms/:morphismId", func(c fiber.Ctx) error {
		m, err := store.GetMorphism(c.Context(), c.Params("id"), c.Params("morphismId"))
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		if m == nil {
			return c.Status(404).JSON(fiber.Map{"error": "morphism not found"})
		}
		return c.JSON(m)
	})

	app.Put("/diagrams/:id/morphisms/:morphismId", func(c fiber.Ctx) error {
		var morphism catbook.Morphism
		if err := c.Bind().JSON(&morphism); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}
		morphism.ID = c.Params("morphismId")
		err := store.UpdateMorphism(c.Context(), c.Params("id"), &morphism)
		if errors.Is(err, catbook.ErrMorphismNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "morphism not found"})
		}
		if errors.Is(err, catbook.ErrUnknownObject) {
			return c.Status(422).JSON(fiber.Map{"error": err.Error()})
		}
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.SendStatus(204)
	})

	app.Delete("/diagrams/:id/morphisms/:morphismId", func(c fiber.Ctx) error {
		if err := store.DeleteMorphism(c.Context(), c.Params("id"), c.Params("morphismId")); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.SendStatus(204)
	})

	// ── Prerequisite graphs ───────────────────────────────────────────
	app.Put("/chapters/:id/prereqs", func(c fiber.Ctx) error {
		var g catbook.PrereqGraph
		if err := c.Bind().JSON(&g); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}
		g.ChapterID = c.Params("id")
		err := store.SavePrereqGraph(c.Context(), &g)
		if errors.Is(err, catbook.ErrCycleDetected) {
			return c.Status(422).JSON(fiber.Map{"error": "prerequisite cycle detected"})
		}
		if errors.Is(err, catbook.ErrUnknownConcept) {
			return c.Status(422).JSON(fiber.Map{"error": err.Error()})
		}
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.SendStatus(204)
	})

	app.Get("/chapters/:id/prereqs", func(c fiber.Ctx) error {
		g, err := store.GetPrereqGraph(c.Context(), c.Params("id"))
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		if g == nil {
			return c.Status(404).JSON(fiber.Map{"error": "prereq graph not found"})
		}
		return c.JSON(g)
	})

	app.Delete("/chapters/:id/prereqs", func(c fiber.Ctx) error {
		if err := store.DeletePrereqGraph(c.Context(), c.Params("id")); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.SendStatus(204)
	})

	// ── Composer sessions ─────────────────────────────────────────────
	app.Post("/diagrams/:id/sessions", func(c fiber.Ctx) error {
		d, err := store.GetDiagram(c.Context(), c.Params("id"))
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		if d == nil {
			return c.Status(404).JSON(fiber.Map{"error": "diagram not found"})
		}
		id, state := sessions.create(d)
		return c.Status(201).JSON(fiber.Map{"session_id": id, "state": state})
	})

	app.Get("/sessions/:id", func(c fiber.Ctx) error {
		s, ok := sessions.get(c.Params("id"))
		if !ok {
			return c.Status(404).JSON(fiber.Map{"error": "session not found"})
		}
		return c.JSON(s.snapshot())
	})

	app.Post("/sessions/:id/select", func(c fiber.Ctx) error {
		var body struct {
			MorphismID string `json:"morphism_id"`
		}
		if err := c.Bind().JSON(&body); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}
		s, ok := sessions.get(c.Params("id"))
		if !ok {
			return c.Status(404).JSON(fiber.Map{"error": "session not found"})
		}
		state, err := s.selectMorphism(body.MorphismID)
		if errors.Is(err, catbook.ErrUnknownMorphism) {
			return c.Status(404).JSON(fiber.Map{"error": "morphism not found"})
		}
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		// A not-composable pair is ordinary state, not an HTTP error.
		return c.JSON(state)
	})

	app.Post("/sessions/:id/clear", func(c fiber.Ctx) error {
		s, ok := sessions.get(c.Params("id"))
		if !ok {
			return c.Status(404).JSON(fiber.Map{"error": "session not found"})
		}
		return c.JSON(s.clear())
	})

	app.Delete("/sessions/:id", func(c fiber.Ctx) error {
		sessions.remove(c.Params("id"))
		return c.SendStatus(204)
	})

	return app
}
