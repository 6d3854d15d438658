package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/broxB/AgroPlan-sub000/internal/guidelines"
	"github.com/broxB/AgroPlan-sub000/internal/models"
	"github.com/broxB/AgroPlan-sub000/internal/store"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type fixture struct {
	router      *gin.Engine
	store       *store.Store
	principalID uuid.UUID
	parcelID    uuid.UUID
	fieldID     uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	db, err := store.Open("sqlite", ":memory:")
	require.NoError(t, err)
	s := store.New(db)
	require.NoError(t, s.AutoMigrate())

	principal := &models.Principal{Name: "Hof Brandt"}
	require.NoError(t, s.CreatePrincipal(ctx, principal))

	parcel := &models.BaseField{PrincipalID: principal.ID, Prefix: 1, Name: "Am Bach"}
	require.NoError(t, s.CreateBaseField(ctx, parcel))

	field := &models.Field{
		BaseFieldID: parcel.ID, Year: 2025, Area: dec("10"),
		FieldType: models.FieldTypeCropland,
	}
	require.NoError(t, s.CreateField(ctx, field))

	gin.SetMode(gin.TestMode)
	log := zaptest.NewLogger(t)
	router := gin.New()
	NewHandler(NewService(s, guidelines.New("../../guidelines"), log), log).
		RegisterRoutes(router.Group("/api/v1"))

	return &fixture{
		router:      router,
		store:       s,
		principalID: principal.ID,
		parcelID:    parcel.ID,
		fieldID:     field.ID,
	}
}

func (f *fixture) do(t *testing.T, method, url string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		blob, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(blob)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestCreateParcelRejectsDuplicateNumber(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/parcels", models.BaseField{
		PrincipalID: f.principalID, Prefix: 2, Suffix: 1, Name: "Hinterm Hof",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/v1/parcels", models.BaseField{
		PrincipalID: f.principalID, Prefix: 2, Suffix: 1, Name: "Doppelt",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateFieldValidatesArea(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/fields", models.Field{
		BaseFieldID: f.parcelID, Year: 2026, Area: dec("0"),
		FieldType: models.FieldTypeCropland,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "area")

	rec = f.do(t, http.MethodPost, "/api/v1/fields", models.Field{
		BaseFieldID: f.parcelID, Year: 2026, Area: dec("8.5"),
		FieldType: models.FieldTypeCropland,
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestSoilSampleRoundtrip(t *testing.T) {
	f := newFixture(t)

	url := "/api/v1/parcels/" + f.parcelID.String() + "/soil-samples"
	rec := f.do(t, http.MethodPost, url, models.SoilSample{
		Year: 2022, SoilType: models.SoilTypeSand, HumusType: models.HumusTypeLess4,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(t, http.MethodGet, url, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var samples []models.SoilSample
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &samples))
	require.Len(t, samples, 1)
	assert.Equal(t, 2022, samples[0].Year)
	assert.Equal(t, f.parcelID, samples[0].BaseFieldID)
}

func TestSoilSampleRejectsUnknownSoilType(t *testing.T) {
	f := newFixture(t)

	url := "/api/v1/parcels/" + f.parcelID.String() + "/soil-samples"
	rec := f.do(t, http.MethodPost, url, models.SoilSample{
		Year: 2022, SoilType: "gold", HumusType: models.HumusTypeLess4,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "soil_type")
}

func TestCropListFiltersByFieldType(t *testing.T) {
	f := newFixture(t)

	for _, c := range []models.Crop{
		{
			PrincipalID: f.principalID, Name: "Winterweizen",
			FieldType: models.FieldTypeCropland, CropClass: models.CropClassMainCrop,
			CropType: "grain",
		},
		{
			PrincipalID: f.principalID, Name: "Wiese",
			FieldType: models.FieldTypeGrassland, CropClass: models.CropClassMainCrop,
			CropType: "field_grass",
		},
	} {
		rec := f.do(t, http.MethodPost, "/api/v1/crops", c)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	url := fmt.Sprintf("/api/v1/crops?principal_id=%s&field_type=%s",
		f.principalID, models.FieldTypeGrassland)
	rec := f.do(t, http.MethodGet, url, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var crops []models.Crop
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &crops))
	require.Len(t, crops, 1)
	assert.Equal(t, "Wiese", crops[0].Name)
}

func TestCultivationRejectsForeignCrop(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	other := &models.Principal{Name: "Nachbar"}
	require.NoError(t, f.store.CreatePrincipal(ctx, other))
	crop := &models.Crop{
		PrincipalID: other.ID, Name: "Roggen",
		FieldType: models.FieldTypeCropland, CropClass: models.CropClassMainCrop,
		CropType: "grain",
	}
	require.NoError(t, f.store.CreateCrop(ctx, crop))

	url := fmt.Sprintf("/api/v1/cultivations?principal_id=%s", f.principalID)
	rec := f.do(t, http.MethodPost, url, models.Cultivation{
		FieldID: f.fieldID, CultivationType: models.CultivationMainCrop,
		CropID: crop.ID,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "crop_id")
}

func TestFertilizerListHonorsYear(t *testing.T) {
	f := newFixture(t)

	for _, fert := range []models.Fertilizer{
		{
			PrincipalID: f.principalID, Name: "Rindergülle", Year: 2024,
			FertClass: models.FertClassOrganic, FertType: models.FertTypeOrgSlurry,
			N: dec("2"),
		},
		{
			PrincipalID: f.principalID, Name: "KAS",
			FertClass: models.FertClassMineral, FertType: models.FertTypeN,
			N: dec("27"),
		},
	} {
		rec := f.do(t, http.MethodPost, "/api/v1/fertilizers", fert)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	url := fmt.Sprintf("/api/v1/fertilizers?principal_id=%s&year=2025", f.principalID)
	rec := f.do(t, http.MethodGet, url, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var ferts []models.Fertilizer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ferts))
	require.Len(t, ferts, 1)
	assert.Equal(t, "KAS", ferts[0].Name)
}

func TestModifierRejectsExcessiveAmount(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/modifiers", models.Modifier{
		FieldID: f.fieldID, Description: "Ausgleich", Modification: models.NutrientN,
		Amount: 1500,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "amount")

	rec = f.do(t, http.MethodPost, "/api/v1/modifiers", models.Modifier{
		FieldID: f.fieldID, Description: "Ausgleich", Modification: models.NutrientN,
		Amount: -40,
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestDeleteParcelCascades(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodDelete, "/api/v1/parcels/"+f.parcelID.String(), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	url := fmt.Sprintf("/api/v1/parcels?principal_id=%s", f.principalID)
	rec = f.do(t, http.MethodGet, url, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var parcels []models.BaseField
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parcels))
	assert.Empty(t, parcels)
}
