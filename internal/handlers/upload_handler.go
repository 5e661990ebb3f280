package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mdbarber/booking-api/internal/httperr"
	"github.com/mdbarber/booking-api/internal/infra/imagestore"
)

const maxUploadBytes = 8 << 20 // 8 MiB

type UploadHandler struct {
	store imagestore.Store
}

func NewUploadHandler(store imagestore.Store) *UploadHandler {
	return &UploadHandler{store: store}
}

// Upload recibe la imagen de un servicio (campo multipart "file") y
// devuelve la URL pública ya normalizada a webp.
func (h *UploadHandler) Upload(c *gin.Context) {
	if h.store == nil {
		httperr.BadRequest(c, "uploads_disabled", "Carga de imágenes no habilitada.")
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Archivo obligatorio.")
		return
	}

	if header.Size > maxUploadBytes {
		httperr.BadRequest(c, "file_too_large", "El archivo supera el tamaño máximo.")
		return
	}

	f, err := header.Open()
	if err != nil {
		httperr.Internal(c, "upload_failed", "Error al leer el archivo.")
		return
	}
	defer f.Close()

	result, err := h.store.Upload(c.Request.Context(), f, header.Filename)
	if err != nil {
		httperr.Internal(c, "upload_failed", "Error al subir la imagen.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"url":       result.URL,
		"public_id": result.PublicID,
	})
}
