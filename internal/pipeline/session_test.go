package pipeline_test

import (
	"context"
	"testing"

	"github.com/couchcryptid/flood-risk-dashboard/internal/domain"
	"github.com/couchcryptid/flood-risk-dashboard/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_StartsAwaitingUpload(t *testing.T) {
	var s pipeline.Session
	assert.Equal(t, pipeline.StateAwaitingUpload, s.State())
	assert.Nil(t, s.Result())
	assert.NoError(t, s.Err())
}

func TestSession_SuccessRenders(t *testing.T) {
	p, _ := newPipeline(nil, nil)
	var s pipeline.Session

	require.NoError(t, s.Submit(context.Background(), p, exampleUpload(t)))
	assert.Equal(t, pipeline.StateRendered, s.State())
	require.NotNil(t, s.Result())
	assert.Len(t, s.Result().Map.Markers, 2)
	assert.NoError(t, s.Err())
}

func TestSession_FailureStaysAwaiting(t *testing.T) {
	p, _ := newPipeline(nil, nil)
	var s pipeline.Session

	err := s.Submit(context.Background(), p, csvUpload("text", "only text"))
	require.Error(t, err)
	assert.Equal(t, pipeline.StateAwaitingUpload, s.State())
	assert.Nil(t, s.Result())

	var missing *domain.MissingColumnError
	require.ErrorAs(t, s.Err(), &missing)
	assert.Equal(t, []string{"latitude", "longitude"}, missing.Columns)
}

func TestSession_FailureKeepsEarlierResult(t *testing.T) {
	p, _ := newPipeline(nil, nil)
	var s pipeline.Session

	require.NoError(t, s.Submit(context.Background(), p, exampleUpload(t)))
	earlier := s.Result()

	require.Error(t, s.Submit(context.Background(), p, csvUpload("latitude,longitude", "37.5,127.0")))
	assert.Equal(t, pipeline.StateAwaitingUpload, s.State())
	assert.Same(t, earlier, s.Result())

	require.NoError(t, s.Submit(context.Background(), p, fixtureUpload(t)))
	assert.Equal(t, pipeline.StateRendered, s.State())
	assert.NotSame(t, earlier, s.Result())
	assert.NoError(t, s.Err())
}
