package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-timetable-api/internal/models"
	appErrors "github.com/noah-isme/exam-timetable-api/pkg/errors"
)

type statisticsProviderMock struct {
	hit bool
	err error
}

func (m *statisticsProviderMock) Summary(ctx context.Context) (*models.Statistics, bool, error) {
	if m.err != nil {
		return nil, false, m.err
	}
	return &models.Statistics{TotalStudents: 43, TotalExams: 4, ConflictCount: 1}, m.hit, nil
}

func TestStatisticsSummaryReportsCacheHit(t *testing.T) {
	handler := &StatisticsHandler{service: &statisticsProviderMock{hit: true}}
	c, w := newJSONContext(http.MethodGet, "/statistics", nil)

	handler.Summary(c)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data models.Statistics      `json:"data"`
		Meta map[string]interface{} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 43, body.Data.TotalStudents)
	assert.Equal(t, true, body.Meta["cache_hit"])
}

func TestStatisticsSummaryError(t *testing.T) {
	handler := &StatisticsHandler{service: &statisticsProviderMock{err: appErrors.ErrInternal}}
	c, w := newJSONContext(http.MethodGet, "/statistics", nil)

	handler.Summary(c)

	require.Equal(t, http.StatusInternalServerError, w.Code)
}
