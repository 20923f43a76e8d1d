package handlers

import (
	"net/http"

	"catering/models"
	"catering/services/catalog"
	"catering/services/pricing"
	"catering/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CatalogSourceHeader tells clients whether catalog data is live or fallback.
const CatalogSourceHeader = "X-Catalog-Source"

// CatalogHandler serves prices, allergens and quotes.
type CatalogHandler struct {
	CatalogSvc catalog.CatalogService
	Logger     *zap.Logger
}

func NewCatalogHandler(svc catalog.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{CatalogSvc: svc, Logger: logger}
}

// GetPricesHandler handles GET /prices.
func (h *CatalogHandler) GetPricesHandler(c *gin.Context) {
	prices, source, err := h.CatalogSvc.Prices(c.Request.Context())
	h.respond(c, "prices", prices, source, err)
}

// GetPricesByServiceHandler handles GET /prices/:serviceType.
func (h *CatalogHandler) GetPricesByServiceHandler(c *gin.Context) {
	prices, source, err := h.CatalogSvc.PricesByService(c.Request.Context(), c.Param("serviceType"))
	h.respond(c, "prices", prices, source, err)
}

// GetAllergensHandler handles GET /allergens.
func (h *CatalogHandler) GetAllergensHandler(c *gin.Context) {
	allergens, source, err := h.CatalogSvc.Allergens(c.Request.Context())
	h.respond(c, "allergens", allergens, source, err)
}

// GetAllergensByServiceHandler handles GET /allergens/:serviceType.
func (h *CatalogHandler) GetAllergensByServiceHandler(c *gin.Context) {
	allergens, source, err := h.CatalogSvc.AllergensByService(c.Request.Context(), c.Param("serviceType"))
	h.respond(c, "allergens", allergens, source, err)
}

// GetAllergenMatrixHandler handles GET /allergens/matrix.
func (h *CatalogHandler) GetAllergenMatrixHandler(c *gin.Context) {
	matrix, source, err := h.CatalogSvc.AllergenMatrix(c.Request.Context())
	h.respond(c, "allergen_matrix", matrix, source, err)
}

// CalculateQuoteHandler handles POST /quote.
func (h *CatalogHandler) CalculateQuoteHandler(c *gin.Context) {
	var req models.QuoteRequest
	if err := bindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	quote, err := pricing.CalculateQuote(req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

func (h *CatalogHandler) respond(c *gin.Context, key string, data any, source models.CatalogSource, err error) {
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if source == models.SourceFallback {
		h.Logger.Debug("serving fallback catalog", zap.String("path", c.Request.URL.Path))
	}
	c.Header(CatalogSourceHeader, string(source))
	c.JSON(http.StatusOK, gin.H{key: data})
}
