package pdfgen

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"report-service-go/internal/pkg/templates"
)

func TestFileName(t *testing.T) {
	at := time.Date(2024, time.March, 5, 23, 59, 0, 0, time.UTC)

	tests := []struct {
		name  string
		child string
		want  string
	}{
		{name: "space to underscore", child: "Ana María", want: "motricidad_Ana_María_2024-03-05.pdf"},
		{name: "repeated spaces collapse", child: "  Ana   María ", want: "motricidad_Ana_María_2024-03-05.pdf"},
		{name: "path separators", child: "Ana/María", want: "motricidad_Ana-María_2024-03-05.pdf"},
		{name: "empty name", child: "", want: "motricidad_sin_nombre_2024-03-05.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(templates.Motricidad, tt.child, at))
		})
	}
}

func TestSpanishDates(t *testing.T) {
	d := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "5 de marzo de 2024", LongDate(d))
	assert.Equal(t, "marzo de 2024", MonthYear(d))
	assert.Equal(t, "31 de diciembre de 1999", LongDate(time.Date(1999, time.December, 31, 0, 0, 0, 0, time.UTC)))
}

func TestSpanishDates_AllMonthsLowercase(t *testing.T) {
	months := []string{
		"enero", "febrero", "marzo", "abril", "mayo", "junio",
		"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
	}
	for i, want := range months {
		d := time.Date(2025, time.Month(i+1), 1, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, want+" de 2025", MonthYear(d))
		assert.Equal(t, "1 de "+want+" de 2025", LongDate(d))
	}
}

func TestCleanBody(t *testing.T) {
	assert.Equal(t, "uno\ndos\ntres", cleanBody("**uno**\r\ndos\rtres"))
}

func TestFitToBox(t *testing.T) {
	w, h := fitToBox(2, 60, 35)
	assert.InDelta(t, 60, w, 1e-9)
	assert.InDelta(t, 30, h, 1e-9)

	w, h = fitToBox(0.5, 60, 35)
	assert.InDelta(t, 17.5, w, 1e-9)
	assert.InDelta(t, 35, h, 1e-9)
}

func TestReportDataJSON(t *testing.T) {
	raw := `{
		"childName": "Ana",
		"reportType": "prediccion",
		"evaluationDate": "2024-03-05T10:00:00Z",
		"predictions": {"modelInfo": {"algorithm": "SVM", "confidence": 0.9}},
		"evaluations": [{"score": 10}]
	}`

	var data ReportData
	require.NoError(t, json.Unmarshal([]byte(raw), &data))
	assert.Equal(t, templates.Prediccion, data.ReportType)
	assert.Equal(t, "2024-03-05", data.EvaluationDate.Format("2006-01-02"))
	require.NotNil(t, data.Predictions)
	assert.Equal(t, "SVM", data.Predictions.ModelInfo.Algorithm)
	assert.InDelta(t, 0.9, *data.Predictions.ModelInfo.Confidence, 1e-9)
	assert.Len(t, data.Evaluations, 1)

	var short ReportData
	require.NoError(t, json.Unmarshal([]byte(`{"evaluationDate":"2024-03-05"}`), &short))
	assert.Equal(t, 5, short.EvaluationDate.Day())

	assert.Error(t, json.Unmarshal([]byte(`{"evaluationDate":"05/03/2024"}`), &short))
}

func TestChartScores(t *testing.T) {
	assert.Equal(t, illustrativeScores, ChartScores(nil))
	assert.Equal(t, illustrativeScores, ChartScores(&Predictions{}))

	own := []DimensionScore{{Name: "Lectura", Score: 70}}
	assert.Equal(t, own, ChartScores(&Predictions{DimensionScores: own}))
}
