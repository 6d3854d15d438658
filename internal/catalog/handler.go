package catalog

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/broxB/AgroPlan-sub000/internal/models"
	"github.com/broxB/AgroPlan-sub000/internal/store"
	"github.com/broxB/AgroPlan-sub000/internal/validation"
)

// Handler adapts the catalog service to HTTP.
type Handler struct {
	service *Service
	log     *zap.Logger
}

// NewHandler returns a catalog handler.
func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// RegisterRoutes mounts the master-data endpoints on the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	parcels := rg.Group("/parcels")
	{
		parcels.GET("", h.ListParcels)
		parcels.POST("", h.CreateParcel)
		parcels.DELETE("/:id", h.DeleteParcel)
		parcels.GET("/:id/soil-samples", h.ListSoilSamples)
		parcels.POST("/:id/soil-samples", h.CreateSoilSample)
	}
	fields := rg.Group("/fields")
	{
		fields.GET("", h.ListFields)
		fields.POST("", h.CreateField)
		fields.PUT("/:id", h.UpdateField)
		fields.DELETE("/:id", h.DeleteField)
	}
	cultivations := rg.Group("/cultivations")
	{
		cultivations.POST("", h.CreateCultivation)
		cultivations.PUT("/:id", h.UpdateCultivation)
		cultivations.DELETE("/:id", h.DeleteCultivation)
	}
	crops := rg.Group("/crops")
	{
		crops.GET("", h.ListCrops)
		crops.POST("", h.CreateCrop)
		crops.PUT("/:id", h.UpdateCrop)
		crops.DELETE("/:id", h.DeleteCrop)
	}
	fertilizers := rg.Group("/fertilizers")
	{
		fertilizers.GET("", h.ListFertilizers)
		fertilizers.POST("", h.CreateFertilizer)
		fertilizers.PUT("/:id", h.UpdateFertilizer)
		fertilizers.DELETE("/:id", h.DeleteFertilizer)
	}
	modifiers := rg.Group("/modifiers")
	{
		modifiers.POST("", h.CreateModifier)
		modifiers.DELETE("/:id", h.DeleteModifier)
	}
}

// ListParcels returns the parcels of an operation.
func (h *Handler) ListParcels(c *gin.Context) {
	principalID, ok := principalID(c)
	if !ok {
		return
	}
	parcels, err := h.service.BaseFields(c.Request.Context(), principalID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, parcels)
}

// CreateParcel validates and persists a new parcel.
func (h *Handler) CreateParcel(c *gin.Context) {
	var bf models.BaseField
	if err := c.ShouldBindJSON(&bf); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	errs, err := h.service.CreateBaseField(c.Request.Context(), &bf)
	h.respondCreate(c, &bf, errs, err)
}

// DeleteParcel removes a parcel with its planning years.
func (h *Handler) DeleteParcel(c *gin.Context) {
	h.deleteByID(c, h.service.DeleteBaseField)
}

// ListSoilSamples returns the measurements of a parcel.
func (h *Handler) ListSoilSamples(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	samples, err := h.service.SoilSamples(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, samples)
}

// CreateSoilSample persists a new measurement for a parcel.
func (h *Handler) CreateSoilSample(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var sample models.SoilSample
	if err := c.ShouldBindJSON(&sample); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sample.BaseFieldID = id
	errs, err := h.service.CreateSoilSample(c.Request.Context(), &sample)
	h.respondCreate(c, &sample, errs, err)
}

// ListFields returns the planning years of one year.
func (h *Handler) ListFields(c *gin.Context) {
	principalID, ok := principalID(c)
	if !ok {
		return
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year is required"})
		return
	}
	fields, err := h.service.Fields(c.Request.Context(), principalID, year)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, fields)
}

// CreateField validates and persists a new planning year.
func (h *Handler) CreateField(c *gin.Context) {
	var f models.Field
	if err := c.ShouldBindJSON(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	errs, err := h.service.CreateField(c.Request.Context(), &f)
	h.respondCreate(c, &f, errs, err)
}

// UpdateField validates and persists changed field attributes.
func (h *Handler) UpdateField(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var f models.Field
	if err := c.ShouldBindJSON(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	f.ID = id
	errs, err := h.service.UpdateField(c.Request.Context(), &f)
	h.respondUpdate(c, &f, errs, err)
}

// DeleteField removes a planning year.
func (h *Handler) DeleteField(c *gin.Context) {
	h.deleteByID(c, h.service.DeleteField)
}

// CreateCultivation validates and persists a planted crop.
func (h *Handler) CreateCultivation(c *gin.Context) {
	principalID, ok := principalID(c)
	if !ok {
		return
	}
	var cv models.Cultivation
	if err := c.ShouldBindJSON(&cv); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	errs, err := h.service.CreateCultivation(c.Request.Context(), principalID, &cv)
	h.respondCreate(c, &cv, errs, err)
}

// UpdateCultivation validates and persists changed cultivation attributes.
func (h *Handler) UpdateCultivation(c *gin.Context) {
	principalID, ok := principalID(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var cv models.Cultivation
	if err := c.ShouldBindJSON(&cv); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cv.ID = id
	errs, err := h.service.UpdateCultivation(c.Request.Context(), principalID, &cv)
	h.respondUpdate(c, &cv, errs, err)
}

// DeleteCultivation removes a cultivation with its applications.
func (h *Handler) DeleteCultivation(c *gin.Context) {
	h.deleteByID(c, h.service.DeleteCultivation)
}

// ListCrops returns the crop descriptors, optionally narrowed by field_type.
func (h *Handler) ListCrops(c *gin.Context) {
	principalID, ok := principalID(c)
	if !ok {
		return
	}
	var fieldType *models.FieldType
	if ft := c.Query("field_type"); ft != "" {
		v := models.FieldType(ft)
		fieldType = &v
	}
	crops, err := h.service.Crops(c.Request.Context(), principalID, fieldType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, crops)
}

// CreateCrop validates and persists a crop descriptor.
func (h *Handler) CreateCrop(c *gin.Context) {
	var crop models.Crop
	if err := c.ShouldBindJSON(&crop); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	errs, err := h.service.CreateCrop(c.Request.Context(), &crop)
	h.respondCreate(c, &crop, errs, err)
}

// UpdateCrop validates and persists changed crop attributes.
func (h *Handler) UpdateCrop(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var crop models.Crop
	if err := c.ShouldBindJSON(&crop); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	crop.ID = id
	errs, err := h.service.UpdateCrop(c.Request.Context(), &crop)
	h.respondUpdate(c, &crop, errs, err)
}

// DeleteCrop removes a crop descriptor.
func (h *Handler) DeleteCrop(c *gin.Context) {
	h.deleteByID(c, h.service.DeleteCrop)
}

// ListFertilizers returns the usable fertilizers of one year.
func (h *Handler) ListFertilizers(c *gin.Context) {
	principalID, ok := principalID(c)
	if !ok {
		return
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year is required"})
		return
	}
	ferts, err := h.service.Fertilizers(c.Request.Context(), principalID, year)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ferts)
}

// CreateFertilizer persists a fertilizer descriptor.
func (h *Handler) CreateFertilizer(c *gin.Context) {
	var fert models.Fertilizer
	if err := c.ShouldBindJSON(&fert); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	errs, err := h.service.CreateFertilizer(c.Request.Context(), &fert)
	h.respondCreate(c, &fert, errs, err)
}

// UpdateFertilizer persists changed fertilizer attributes.
func (h *Handler) UpdateFertilizer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var fert models.Fertilizer
	if err := c.ShouldBindJSON(&fert); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	fert.ID = id
	if err := h.service.UpdateFertilizer(c.Request.Context(), &fert); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, fert)
}

// DeleteFertilizer removes a fertilizer descriptor.
func (h *Handler) DeleteFertilizer(c *gin.Context) {
	h.deleteByID(c, h.service.DeleteFertilizer)
}

// CreateModifier validates and persists a manual adjustment.
func (h *Handler) CreateModifier(c *gin.Context) {
	var m models.Modifier
	if err := c.ShouldBindJSON(&m); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	errs, err := h.service.CreateModifier(c.Request.Context(), &m)
	h.respondCreate(c, &m, errs, err)
}

// DeleteModifier removes an adjustment.
func (h *Handler) DeleteModifier(c *gin.Context) {
	h.deleteByID(c, h.service.DeleteModifier)
}

func (h *Handler) respondCreate(c *gin.Context, payload interface{}, errs validation.Errors, err error) {
	if err != nil {
		if isDuplicate(err) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.log.Error("catalog create failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}
	c.JSON(http.StatusCreated, payload)
}

func (h *Handler) respondUpdate(c *gin.Context, payload interface{}, errs validation.Errors, err error) {
	if err != nil {
		h.log.Error("catalog update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}
	c.JSON(http.StatusOK, payload)
}

func (h *Handler) deleteByID(c *gin.Context, del func(ctx context.Context, id uuid.UUID) error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := del(c.Request.Context(), id); err != nil {
		h.log.Error("catalog delete failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func isDuplicate(err error) bool {
	return errors.Is(err, store.ErrDuplicateParcel) ||
		errors.Is(err, store.ErrDuplicateField) ||
		errors.Is(err, store.ErrDuplicateCrop) ||
		errors.Is(err, store.ErrDuplicateFertilizer) ||
		errors.Is(err, store.ErrDuplicateCultivation)
}

func principalID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Query("principal_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "principal_id is required"})
		return uuid.Nil, false
	}
	return id, true
}
