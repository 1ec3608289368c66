package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/labinventaris/internal/application/dto"
	"github.com/jhoicas/labinventaris/internal/application/media"
)

// UploadHandler recibe imágenes de ítems, KTM/KTP y avatares.
type UploadHandler struct {
	uc *media.UploadUseCase
}

// NewUploadHandler construye el handler.
func NewUploadHandler(uc *media.UploadUseCase) *UploadHandler {
	return &UploadHandler{uc: uc}
}

// Upload godoc
// @Summary      Subir imagen
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        kind  query     string  true  "item | idcard | avatar"
// @Param        file  formData  file    true  "Imagen"
// @Success      201   {object}  dto.UploadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      415   {object}  dto.ErrorResponse
// @Router       /api/uploads [post]
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	kind, err := media.ParseKind(c.Query("kind"))
	if err != nil {
		return writeError(c, err)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "file es requerido"})
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, err)
	}
	defer f.Close()

	up, err := h.uc.Upload(c.UserContext(), kind, fh.Filename, fh.Header.Get(fiber.HeaderContentType), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.UploadResponse{URL: up.URL, Key: up.Key, Size: up.Size})
}
