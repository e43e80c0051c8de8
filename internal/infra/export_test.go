package infra

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/DarkZone24/inventory-monitoring-system/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exportFixture() []model.Product {
	lab := &model.Category{ID: uuid.New(), Name: "Laboratory"}
	beaker := model.Product{ID: uuid.New(), Name: "Beaker 250ml", Category: lab}
	beaker.SetStock(4)
	ball := model.Product{ID: uuid.New(), Name: "Basketball"}
	ball.SetStock(25)
	return []model.Product{beaker, ball}
}

func TestWriteInventoryCSV(t *testing.T) {
	products := exportFixture()
	var buf bytes.Buffer
	require.NoError(t, WriteInventoryCSV(&buf, products))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"ID", "Product Name", "Category", "Stock", "Status"}, records[0])
	assert.Equal(t, []string{products[0].ID.String(), "Beaker 250ml", "Laboratory", "4", "Low Stock"}, records[1])
	assert.Equal(t, []string{products[1].ID.String(), "Basketball", "Uncategorized", "25", "Optimal"}, records[2])
}

func TestWriteInventoryPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteInventoryPDF(&buf, exportFixture(), time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}
