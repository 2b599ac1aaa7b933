package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-timetable-api/internal/dto"
	"github.com/noah-isme/exam-timetable-api/internal/models"
	appErrors "github.com/noah-isme/exam-timetable-api/pkg/errors"
)

type engineStub struct {
	generated dto.GenerateTimetableRequest
	queried   dto.ConflictQuery
	closed    bool
}

func (e *engineStub) Generate(ctx context.Context, req dto.GenerateTimetableRequest) (*dto.GenerateTimetableResponse, error) {
	e.generated = req
	if req.StartDate > req.EndDate {
		return nil, appErrors.Clone(appErrors.ErrValidation, "startDate must not be after endDate")
	}
	return &dto.GenerateTimetableResponse{Success: true, Message: "Generated 2 exams", GeneratedExams: 2, Conflicts: []models.Conflict{}}, nil
}

func (e *engineStub) Conflicts(ctx context.Context, query dto.ConflictQuery) ([]models.Conflict, error) {
	e.queried = query
	return []models.Conflict{{Type: models.ConflictStudent, StudentID: "s-1", Date: "2025-01-06", ExamCount: 2}}, nil
}

func run(t *testing.T, stub *engineStub, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(func(string) (engine, func() error, error) {
		return stub, func() error { stub.closed = true; return nil }, nil
	})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestGenerateCommand(t *testing.T) {
	stub := &engineStub{}
	out, err := run(t, stub, "generate", "--start", "2025-01-06", "--end", "2025-01-10", "--day-start", "08:00")
	require.NoError(t, err)

	assert.Equal(t, dto.GenerateTimetableRequest{StartDate: "2025-01-06", EndDate: "2025-01-10", ExamStartTime: "08:00"}, stub.generated)
	assert.True(t, stub.closed)

	var result dto.GenerateTimetableResponse
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 2, result.GeneratedExams)
}

func TestGenerateCommandRequiresRange(t *testing.T) {
	stub := &engineStub{}
	_, err := run(t, stub, "generate", "--start", "2025-01-06")
	require.Error(t, err)
	assert.False(t, stub.closed)
}

func TestGenerateCommandPropagatesEngineError(t *testing.T) {
	stub := &engineStub{}
	_, err := run(t, stub, "generate", "--start", "2025-01-10", "--end", "2025-01-06")
	require.Error(t, err)
	assert.True(t, stub.closed)
}

func TestConflictsCommand(t *testing.T) {
	stub := &engineStub{}
	out, err := run(t, stub, "conflicts", "--end", "2025-01-31")
	require.NoError(t, err)

	assert.Equal(t, dto.ConflictQuery{EndDate: "2025-01-31"}, stub.queried)
	var conflicts []models.Conflict
	require.NoError(t, json.Unmarshal([]byte(out), &conflicts))
	require.Len(t, conflicts, 1)
	assert.Equal(t, models.ConflictStudent, conflicts[0].Type)
}
