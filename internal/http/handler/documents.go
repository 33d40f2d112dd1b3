package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"docregistry/internal/model"
	"docregistry/internal/service"
)

// ListDocuments godoc
// @Summary      Search the document log
// @Description  Case-insensitive substring search over id, summary, origin, destination, docNumber, observations, type and dates. Results are sorted by registration date, newest first.
// @Tags         documents
// @Produce      json
// @Param        q       query  string  false  "search term"
// @Param        limit   query  int     false  "page size"  default(50)
// @Param        offset  query  int     false  "page offset"  default(0)
// @Success      200  {object}  service.DocumentListResult
// @Failure      400  {object}  errorPayload
// @Router       /documents [get]
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(service.DefaultLimit)))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.Search(c.UserContext(), c.Query("q"), limit, offset)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

// RegisterDocument godoc
// @Summary      Register a document
// @Description  Salida and Interno documents receive their docNumber from the registry. Entrada documents must carry the sender's docNumber.
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        document  body  model.Document  true  "document"
// @Success      201  {object}  registry.Registration
// @Failure      400  {object}  errorPayload
// @Failure      409  {object}  errorPayload
// @Failure      422  {object}  errorPayload
// @Router       /documents [post]
func RegisterDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var doc model.Document
		if err := c.BodyParser(&doc); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be a JSON document")
		}
		res, err := svc.Register(c.UserContext(), doc)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// GetDocument godoc
// @Summary  Get a document
// @Tags     documents
// @Produce  json
// @Param    id   path  string  true  "document id"
// @Success  200  {object}  model.Document
// @Failure  404  {object}  errorPayload
// @Router   /documents/{id} [get]
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(doc)
	}
}

// UpdateDocument godoc
// @Summary      Edit a document
// @Description  Only the fields present in the body change. The type and a system-assigned docNumber cannot change.
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        id     path  string               true  "document id"
// @Param        patch  body  model.DocumentPatch  true  "fields to change"
// @Success      200  {object}  registry.UpdateResult
// @Failure      400  {object}  errorPayload
// @Failure      404  {object}  errorPayload
// @Failure      409  {object}  errorPayload
// @Router       /documents/{id} [patch]
func UpdateDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var patch model.DocumentPatch
		if err := c.BodyParser(&patch); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be a JSON object")
		}
		res, err := svc.Update(c.UserContext(), c.Params("id"), patch)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

// DeleteDocument godoc
// @Summary  Delete a document
// @Tags     documents
// @Param    id   path  string  true  "document id"
// @Success  204
// @Failure  404  {object}  errorPayload
// @Router   /documents/{id} [delete]
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("id")); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// AttachmentLink godoc
// @Summary  Download link for a stored attachment
// @Tags     documents
// @Produce  json
// @Param    id     path  string  true  "document id"
// @Param    index  path  int     true  "attachment position"
// @Success  200  {object}  service.AttachmentLink
// @Failure  404  {object}  errorPayload
// @Failure  409  {object}  errorPayload
// @Failure  501  {object}  errorPayload
// @Router   /documents/{id}/attachments/{index}/link [get]
func AttachmentLink(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		index, err := c.ParamsInt("index")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_INDEX", "invalid attachment index")
		}
		link, err := svc.AttachmentLink(c.UserContext(), c.Params("id"), index)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(link)
	}
}

// NextNumber godoc
// @Summary      Preview the next reference number
// @Description  Returns the docNumber and id the next registration of the type would receive. Nothing is reserved.
// @Tags         numbering
// @Produce      json
// @Param        type  query  string  true  "Entrada, Salida or Interno"
// @Success      200  {object}  service.NumberPreview
// @Failure      400  {object}  errorPayload
// @Router       /numbers/next [get]
func NextNumber(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		t := model.DocumentType(c.Query("type"))
		if t == "" {
			return writeError(c, fiber.StatusBadRequest, "INVALID_TYPE", "type is required")
		}
		p, err := svc.PreviewNumber(c.UserContext(), t)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(p)
	}
}

// ListCatalogs godoc
// @Summary  Department and external entity catalogs
// @Tags     catalogs
// @Produce  json
// @Success  200  {object}  model.Catalogs
// @Router   /catalogs [get]
func ListCatalogs(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(svc.Catalogs(c.UserContext()))
	}
}
