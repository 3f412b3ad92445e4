package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"nutriplan-api/internal/client"
	"nutriplan-api/internal/httpapi"
	"nutriplan-api/internal/nutrition"
)

func testClient(t *testing.T) *client.Client {
	t.Helper()
	ref, err := nutrition.DefaultReference()
	require.NoError(t, err)
	srv := httptest.NewServer(httpapi.NewRouter(httpapi.NewHandler(nutrition.NewCalculator(ref), zap.NewNop()), httpapi.Options{}))
	t.Cleanup(srv.Close)
	return client.New(srv.URL, 5*time.Second)
}

func writeProfile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestRun_Renal(t *testing.T) {
	path := writeProfile(t, `{"age": 30, "sex": "male", "weight": 70, "height": 175,
		"activity_factor": 1.2, "stress_factor": 1.0,
		"carbs_percent": 50, "protein_percent": 20, "fats_percent": 30}`)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), testClient(t), "renal", path, "", &out))

	var res nutrition.RenalResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	assert.Equal(t, 22.86, res.BMI)
	assert.Equal(t, 10, res.FoodExchanges["milk"].Servings)
}

func TestRun_NormalUserExport(t *testing.T) {
	path := writeProfile(t, `{"age": 12, "sex": "female", "weight": 40, "height": 150}`)
	dest := filepath.Join(t.TempDir(), "plan.xlsx")

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), testClient(t), "normal_user", path, dest, &out))

	info, err := os.Stat(dest)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
	assert.Zero(t, out.Len())
}

func TestRun_Errors(t *testing.T) {
	c := testClient(t)

	assert.ErrorContains(t, run(context.Background(), c, "keto", "-", "", &bytes.Buffer{}), "unknown kind")

	path := writeProfile(t, `{"age": 30}`)
	var apiErr *client.APIError
	assert.ErrorAs(t, run(context.Background(), c, "general", path, "", &bytes.Buffer{}), &apiErr)
}
