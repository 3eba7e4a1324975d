package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/export"
)

// ExportHandler maneja la descarga del paquete de exportación.
type ExportHandler struct {
	uc *export.ExportUseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *export.ExportUseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// Download godoc
// @Summary      Descargar exportación completa
// @Description  Devuelve un ZIP con los datos en CSV, JSON y XML, un resumen y el informe PDF.
// @Tags         export
// @Security     Bearer
// @Produce      application/zip
// @Success      200  {file}  file
// @Router       /api/export [get]
func (h *ExportHandler) Download(c *fiber.Ctx) error {
	name, data, err := h.uc.Export(GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/zip")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(data)
}
