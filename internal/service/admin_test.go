package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bondspire/intake-api/internal/dto"
)

func TestAdminService_ListSubmissions(t *testing.T) {
	subs := &memorySubmissions{}
	svc := NewAdminService(subs, newMemorySubscriptions())

	rows, filter, err := svc.ListSubmissions(context.Background(), dto.SubmissionFilter{FormType: " Partnership ", Status: "NEW", Limit: 500, Offset: -3})
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
	assert.Equal(t, "partnership", filter.FormType)
	assert.Equal(t, "new", filter.Status)
	assert.Equal(t, dto.MaxPageLimit, filter.Limit)
	assert.Equal(t, 0, filter.Offset)
	assert.Equal(t, filter, subs.lastList)

	_, filter, err = svc.ListSubmissions(context.Background(), dto.SubmissionFilter{})
	require.NoError(t, err)
	assert.Equal(t, dto.DefaultPageLimit, filter.Limit)
}

func TestAdminService_ListSubmissionsRejectsFilters(t *testing.T) {
	svc := NewAdminService(&memorySubmissions{}, newMemorySubscriptions())

	_, _, err := svc.ListSubmissions(context.Background(), dto.SubmissionFilter{FormType: "sales"})
	assert.True(t, IsValidationError(err))

	_, _, err = svc.ListSubmissions(context.Background(), dto.SubmissionFilter{Status: "closed"})
	assert.True(t, IsValidationError(err))
}

func TestAdminService_ListSubmissionsStorageError(t *testing.T) {
	subs := &memorySubmissions{listErr: errors.New("boom")}
	svc := NewAdminService(subs, newMemorySubscriptions())

	_, _, err := svc.ListSubmissions(context.Background(), dto.SubmissionFilter{})
	require.Error(t, err)
	assert.False(t, IsValidationError(err))
	assert.ErrorIs(t, err, subs.listErr)
}

func TestAdminService_ListSubscriptions(t *testing.T) {
	news := newMemorySubscriptions()
	svc := NewAdminService(&memorySubmissions{}, news)

	rows, filter, err := svc.ListSubscriptions(context.Background(), dto.SubscriptionFilter{Status: "Active", InterestArea: "Education", Limit: 5, Offset: 10})
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Equal(t, "active", filter.Status)
	assert.Equal(t, "education", filter.InterestArea)
	assert.Equal(t, 5, news.lastList.Limit)
	assert.Equal(t, 10, news.lastList.Offset)

	_, _, err = svc.ListSubscriptions(context.Background(), dto.SubscriptionFilter{Status: "pending"})
	assert.True(t, IsValidationError(err))

	_, _, err = svc.ListSubscriptions(context.Background(), dto.SubscriptionFilter{InterestArea: "sports"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, MsgInvalidInterestArea, ve.Message)
}
