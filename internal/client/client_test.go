package client

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"nutriplan-api/internal/httpapi"
	"nutriplan-api/internal/models"
	"nutriplan-api/internal/nutrition"
)

func newServer(t *testing.T) *Client {
	t.Helper()
	ref, err := nutrition.DefaultReference()
	require.NoError(t, err)
	srv := httptest.NewServer(httpapi.NewRouter(
		httpapi.NewHandler(nutrition.NewCalculator(ref), zap.NewNop()),
		httpapi.Options{MaxBodyBytes: 1 << 20},
	))
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second)
}

func dietRequest() models.DietRequest {
	return models.DietRequest{
		Age:            models.Ptr(30),
		Sex:            models.Ptr("male"),
		Weight:         models.Ptr(70.0),
		Height:         models.Ptr(175.0),
		ActivityFactor: models.Ptr(1.2),
		StressFactor:   models.Ptr(1.0),
		CarbsPercent:   models.Ptr(50.0),
		ProteinPercent: models.Ptr(20.0),
		FatsPercent:    models.Ptr(30.0),
	}
}

func TestCalculateGeneral(t *testing.T) {
	c := newServer(t)

	res, err := c.CalculateGeneral(context.Background(), dietRequest())
	require.NoError(t, err)
	assert.Equal(t, 22.86, res.BMI)
	assert.Equal(t, 2042.43, res.TDEE)
	assert.Equal(t, 14, res.FoodExchanges[nutrition.FatGroup].Servings)
}

func TestCalculateDietitian(t *testing.T) {
	c := newServer(t)

	got, err := c.CalculateDietitian(context.Background(), dietRequest())
	require.NoError(t, err)
	want, err := c.CalculateGeneral(context.Background(), dietRequest())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCalculateNormalUser(t *testing.T) {
	c := newServer(t)

	res, err := c.CalculateNormalUser(context.Background(), models.DietRequest{
		Age: models.Ptr(30), Sex: models.Ptr("male"), Weight: models.Ptr(70.0), Height: models.Ptr(175.0),
	})
	require.NoError(t, err)
	assert.Equal(t, 2042.43, res.TotalCalories)
}

func TestCalculateRenal(t *testing.T) {
	c := newServer(t)
	d := dietRequest()

	res, err := c.CalculateRenal(context.Background(), models.RenalDietRequest{
		Age: d.Age, Sex: d.Sex, Weight: d.Weight, Height: d.Height,
		ActivityFactor: d.ActivityFactor, StressFactor: d.StressFactor,
		CarbsPercent: d.CarbsPercent, ProteinPercent: d.ProteinPercent, FatsPercent: d.FatsPercent,
		AllocationMode: models.Ptr("two_phase"),
	})
	require.NoError(t, err)
	assert.Equal(t, nutrition.ModeTwoPhase, res.AllocationMode)
	assert.LessOrEqual(t, res.ElectrolyteTotals.PotassiumMg, float64(nutrition.DefaultPotassiumLimit))
}

func TestValidationError(t *testing.T) {
	c := newServer(t)
	req := dietRequest()
	req.Weight = models.Ptr(-1.0)

	_, err := c.CalculateGeneral(context.Background(), req)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "validation failed", apiErr.Message)
	require.Len(t, apiErr.Errors, 1)
	assert.Equal(t, "weight", apiErr.Errors[0].Field)
	assert.Contains(t, apiErr.Error(), "weight")
}

func TestReference(t *testing.T) {
	c := newServer(t)

	tables, err := c.Reference(context.Background())
	require.NoError(t, err)
	assert.Len(t, tables.MealSlots, nutrition.MealSlotCount)
	assert.NotEmpty(t, tables.SampleMealPlan)
}

func TestExportGeneral(t *testing.T) {
	c := newServer(t)

	data, err := c.ExportGeneral(context.Background(), dietRequest())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), "Exchanges")
}

func TestExportRenal_ValidationError(t *testing.T) {
	c := newServer(t)

	_, err := c.ExportRenal(context.Background(), models.RenalDietRequest{})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.NotEmpty(t, apiErr.Errors)
}
