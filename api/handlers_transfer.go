package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"sharebox/config"
	"sharebox/store"
	"sharebox/utils"

	"github.com/gin-gonic/gin"
)

const maxImportBytes = 32 << 20 // Data URI images make exports large

// StatsHandler returns the catalog summary.
// @Summary      Catalog Statistics
// @Description  Totals over the whole catalog, ignoring filters: product and like counts, the most liked product, products per category and the number of products by the current user.
// @Tags         Catalog
// @Produce      json
// @Success      200  {object}  models.Stats
// @Router       /stats [get]
func StatsHandler(c *gin.Context, catalog *store.Store, cfg *config.Config) {
	c.JSON(http.StatusOK, catalog.Stats())
}

// ExportHandler downloads the catalog as a JSON document.
// @Summary      Export the Catalog
// @Description  Returns `{products, user, exportDate}` as an attachment named `beusharebox-export-YYYY-MM-DD.json`. The file can be imported again with `POST /import`.
// @Tags         Catalog
// @Produce      json
// @Success      200  {object}  models.ExportDocument
// @Router       /export [get]
func ExportHandler(c *gin.Context, catalog *store.Store, cfg *config.Config) {
	filename := store.ExportFilename(time.Now())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/json; charset=utf-8")
	c.Status(http.StatusOK)
	if err := catalog.Export(c.Writer); err != nil {
		// Headers are already sent; the client sees a truncated body.
		_ = c.Error(err)
	}
}

// ImportResponse reports how many products an import added.
type ImportResponse struct {
	Imported int `json:"imported"`
}

// ImportHandler merges an export document into the catalog.
// @Summary      Import a Catalog
// @Description  Accepts an export document either as the raw request body or as a multipart upload in the `file` field.
// @Description  Products whose ID already exists are skipped. Fields of an included `user` object replace the current ones.
// @Tags         Catalog
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Param        file  formData  file  false  "Export document (multipart upload)"
// @Success      200  {object}  ImportResponse
// @Failure      400  {object}  utils.APIError "The document is not JSON or has no products array."
// @Failure      500  {object}  utils.APIError "The upload could not be read."
// @Router       /import [post]
func ImportHandler(c *gin.Context, catalog *store.Store, cfg *config.Config) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportBytes)

	var source io.Reader = c.Request.Body
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		header, err := c.FormFile("file")
		if err != nil {
			utils.GinBadRequest(c, fmt.Sprintf("Missing 'file' upload: %v", err))
			return
		}
		file, err := header.Open()
		if err != nil {
			utils.GinInternalServerError(c, fmt.Sprintf("Failed to open upload: %v", err))
			return
		}
		defer file.Close()
		source = file
	}

	added, err := catalog.Import(source)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.Is(err, store.ErrMalformedImport):
			utils.GinBadRequest(c, err.Error())
		case errors.As(err, &tooLarge):
			utils.GinError(c, http.StatusRequestEntityTooLarge, "Import file is too large")
		default:
			utils.GinInternalServerError(c, err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, ImportResponse{Imported: added})
}
