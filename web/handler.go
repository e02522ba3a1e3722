package web

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/namiksejdovic1-tech/price-master-bih/models"
	"github.com/namiksejdovic1-tech/price-master-bih/services"
	"github.com/namiksejdovic1-tech/price-master-bih/storage"
	"github.com/namiksejdovic1-tech/price-master-bih/utils"
)

// CompetitorScanner is the scan entry point the dashboard consumes.
// Implementations never return an error; every failure shows up as a
// fallback entry in the result.
type CompetitorScanner interface {
	Scan(ctx context.Context, req models.ScanRequest) models.ScanResult
}

// Handler holds dependencies for the dashboard API handlers.
type Handler struct {
	store     *storage.ProductStore
	scanner   CompetitorScanner
	exporter  *storage.CSVExporter
	snapshots *storage.SnapshotWriter // nil when the mirror is disabled
}

// NewHandler wires the dashboard handlers. snapshots may be nil.
func NewHandler(store *storage.ProductStore, scanner CompetitorScanner, exporter *storage.CSVExporter, snapshots *storage.SnapshotWriter) *Handler {
	return &Handler{
		store:     store,
		scanner:   scanner,
		exporter:  exporter,
		snapshots: snapshots,
	}
}

// HealthCheck reports service liveness.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "price-master-bih",
	})
}

// ListProducts returns all products with derived dashboard fields and
// the aggregate stats.
func (h *Handler) ListProducts(c *gin.Context) {
	products := h.store.List()
	c.JSON(http.StatusOK, gin.H{
		"products": services.BuildViews(products),
		"stats":    services.CalculateStats(products),
	})
}

type addProductRequest struct {
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price" binding:"required,gt=0"`
	Link  string  `json:"link"`
}

// AddProduct validates the input, scans competitors and persists the
// new product with its scan result.
func (h *Handler) AddProduct(c *gin.Context) {
	var req addProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "name must be non-empty and price positive"})
		return
	}

	competitors := h.scanner.Scan(c.Request.Context(), models.ScanRequest{
		ProductName:    req.Name,
		ReferencePrice: req.Price,
	})

	product, err := h.store.Add(models.Product{
		Name:        req.Name,
		MyPrice:     req.Price,
		Link:        req.Link,
		Competitors: competitors,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	h.mirrorScan(c.Request.Context(), product.ID, competitors)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"product": product,
		"stats":   services.CalculateStats(h.store.List()),
	})
}

// RefreshProduct re-scans one product and persists the fresh result.
func (h *Handler) RefreshProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid product id"})
		return
	}

	product, err := h.store.Get(id)
	if errors.Is(err, storage.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "product not found"})
		return
	}

	product.Competitors = h.scanner.Scan(c.Request.Context(), models.ScanRequest{
		ProductName:    product.Name,
		ReferencePrice: product.MyPrice,
	})

	if err := h.store.Update(product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	h.mirrorScan(c.Request.Context(), product.ID, product.Competitors)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"product": product,
		"stats":   services.CalculateStats(h.store.List()),
	})
}

// DeleteProduct removes one product.
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid product id"})
		return
	}

	if err := h.store.Delete(id); errors.Is(err, storage.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "product not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   services.CalculateStats(h.store.List()),
	})
}

// GetStats returns the aggregate win/opportunity counts.
func (h *Handler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, services.CalculateStats(h.store.List()))
}

// GetSuggestions returns a pricing recommendation per product.
func (h *Handler) GetSuggestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"suggestions": services.Suggest(h.store.List()),
	})
}

// ExportCSV streams the catalog with competitor prices as CSV.
func (h *Handler) ExportCSV(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="products.csv"`)
	if err := h.exporter.Export(c.Writer, h.store.List()); err != nil {
		utils.Error("CSV export failed: %v", err)
	}
}

// mirrorScan writes the scan to the optional Postgres snapshot mirror.
// Mirror failures are logged, never surfaced: the JSON store is the
// source of truth.
func (h *Handler) mirrorScan(ctx context.Context, productID int, result models.ScanResult) {
	if h.snapshots == nil {
		return
	}
	if err := h.snapshots.WriteScan(ctx, productID, result); err != nil {
		utils.Warn("Snapshot mirror write failed for product %d: %v", productID, err)
	}
}
