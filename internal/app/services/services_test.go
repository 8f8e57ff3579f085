package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/ilya-burinskiy/pixeltrack/internal/app/models"
)

type dispatcherMock struct{ mock.Mock }

func (m *dispatcherMock) Notify(
	ctx context.Context,
	record models.TrackingRecord,
	requesterIP string,
	observedAt time.Time) error {

	args := m.Called(ctx, record, requesterIP, observedAt)
	return args.Error(0)
}

type tokenDecoderMock struct{ mock.Mock }

func (m *tokenDecoderMock) Decode(token string) (models.TrackingRecord, error) {
	args := m.Called(token)
	return args.Get(0).(models.TrackingRecord), args.Error(1)
}

type tokenEncoderMock struct{ mock.Mock }

func (m *tokenEncoderMock) Encode(record models.TrackingRecord) (string, error) {
	args := m.Called(record)
	return args.String(0), args.Error(1)
}

type hitRecorderMock struct{ mock.Mock }

func (m *hitRecorderMock) Enqueue(hit models.Hit) {
	m.Called(hit)
}

type dumperMock struct{ mock.Mock }

func (m *dumperMock) Dump() error {
	args := m.Called()
	return args.Error(0)
}

var observedAt = time.Date(2024, time.January, 2, 3, 4, 5, 0, time.UTC)
