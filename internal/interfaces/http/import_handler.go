package http

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/importer"
	"github.com/jhoicas/Ventas-api/internal/domain"
)

// ImportHandler maneja la importación de hojas de cálculo en dos fases:
// preview (análisis sin persistir) y commit (persistencia de lo confirmado).
type ImportHandler struct {
	uc *importer.ImportUseCase
}

// NewImportHandler construye el handler.
func NewImportHandler(uc *importer.ImportUseCase) *ImportHandler {
	return &ImportHandler{uc: uc}
}

// Template godoc
// @Summary      Descargar plantilla de importación
// @Description  Devuelve una plantilla XLSX con los encabezados esperados y una fila de ejemplo.
// @Tags         import
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        kind  query  string  false  "sales (default) | stock"
// @Success      200   {file}  file
// @Router       /api/import/template [get]
func (h *ImportHandler) Template(c *fiber.Ctx) error {
	name, data, err := h.uc.Template(c.Query("kind"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(data)
}

// Preview godoc
// @Summary      Analizar archivo de importación
// @Description  Sube un .xlsx o .csv y devuelve los registros detectados, duplicados y errores por fila. No persiste nada.
// @Tags         import
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file    true   "Archivo .xlsx o .csv"
// @Param        kind  formData  string  false  "sales (default) | stock"
// @Success      200   {object}  dto.ImportPreviewResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/import/preview [post]
func (h *ImportHandler) Preview(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "el campo file es requerido"})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo abrir el archivo"})
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer el archivo"})
	}

	out, err := h.uc.Preview(GetUserID(c), fileHeader.Filename, c.FormValue("kind"), data)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Commit godoc
// @Summary      Confirmar importación
// @Description  Persiste los registros marcados con should_keep y reconcilia el stock en el mismo lote.
// @Tags         import
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ImportCommitRequest  true  "Registros confirmados"
// @Success      200   {object}  dto.ImportCommitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/import/commit [post]
func (h *ImportHandler) Commit(c *fiber.Ctx) error {
	var in dto.ImportCommitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Commit(c.UserContext(), GetUserID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrReadOnly) {
			return c.Status(fiber.StatusLocked).JSON(dto.ErrorResponse{Code: "READ_ONLY", Message: "la aplicación está en modo solo lectura"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
