package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"resume-profile/internal/resumes"
)

const validResume = `{"header":{"name":"Ada","shortAbout":"","location":"","contacts":{"website":"","email":"","phone":"","twitter":"","linkedin":"","github":""},"skills":[]},"summary":"s","workExperience":[],"education":[{"school":"A","degree":"B","start":"2020","end":"2024"}]}`

type mockClient struct{ mock.Mock }

func (m *mockClient) ExtractResume(ctx context.Context, input ExtractInput) (json.RawMessage, error) {
	_, fix := FixJSONFromContext(ctx)
	args := m.Called(input.ResumeText, fix)
	raw, _ := args.Get(0).(string)
	return json.RawMessage(raw), args.Error(1)
}

func TestGenerateResumeObjectValid(t *testing.T) {
	client := &mockClient{}
	client.On("ExtractResume", "resume text", false).Return(validResume, nil).Once()

	data, err := NewResumeGenerator(client).GenerateResumeObject(context.Background(), "resume text")
	require.NoError(t, err)
	assert.Equal(t, "Ada", data.Header.Name)
	assert.Equal(t, []resumes.Education{{School: "A", Degree: "B", Start: "2020", End: "2024"}}, data.Education)
	client.AssertExpectations(t)
}

func TestGenerateResumeObjectRepairsSchemaViolationOnce(t *testing.T) {
	client := &mockClient{}
	client.On("ExtractResume", "resume text", false).Return(`{"summary":"missing keys"}`, nil).Once()
	client.On("ExtractResume", "resume text", true).Return(validResume, nil).Once()

	data, err := NewResumeGenerator(client).GenerateResumeObject(context.Background(), "resume text")
	require.NoError(t, err)
	assert.Equal(t, "s", data.Summary)
	client.AssertExpectations(t)
}

func TestGenerateResumeObjectFailsAfterRepair(t *testing.T) {
	client := &mockClient{}
	client.On("ExtractResume", "resume text", false).Return(`{}`, nil).Once()
	client.On("ExtractResume", "resume text", true).Return(`{}`, nil).Once()

	_, err := NewResumeGenerator(client).GenerateResumeObject(context.Background(), "resume text")
	require.ErrorIs(t, err, resumes.ErrInvalidResume)
	client.AssertNumberOfCalls(t, "ExtractResume", 2)
}

func TestGenerateResumeObjectPropagatesClientError(t *testing.T) {
	_, err := NewResumeGenerator(PlaceholderClient{}).GenerateResumeObject(context.Background(), "text")
	require.True(t, errors.Is(err, ErrNotImplemented))
}

func TestGenerateResumeObjectRejectsEmptyText(t *testing.T) {
	client := &mockClient{}
	_, err := NewResumeGenerator(client).GenerateResumeObject(context.Background(), "  ")
	require.Error(t, err)
	client.AssertNotCalled(t, "ExtractResume", mock.Anything, mock.Anything)
}

func TestPromptTemplateFallsBack(t *testing.T) {
	tmpl, ok := PromptTemplate("v9")
	assert.False(t, ok)
	assert.Contains(t, tmpl, "Prompt version: v1")
	assert.Contains(t, tmpl, "at most 15 distinct skills")
}
