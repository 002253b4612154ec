package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/careerfair/jobfair-api/internal/domain"
)

type mockChannel struct {
	mock.Mock
}

func (m *mockChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	ret := m.Called(name, durable, autoDelete, exclusive, noWait, args)
	return amqp.Queue{Name: name}, ret.Error(0)
}

func (m *mockChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	ret := m.Called(ctx, exchange, key, mandatory, immediate, msg)
	return ret.Error(0)
}

func (m *mockChannel) Close() error {
	return m.Called().Error(0)
}

func TestAMQPPublisher_Publish(t *testing.T) {
	ch := new(mockChannel)
	ch.On("QueueDeclare", "booth.assignments", true, false, false, false, amqp.Table(nil)).Return(nil)

	var published amqp.Publishing
	ch.On("PublishWithContext", mock.Anything, "", "booth.assignments", false, false, mock.Anything).
		Run(func(args mock.Arguments) {
			published = args.Get(5).(amqp.Publishing)
		}).
		Return(nil)

	p, err := NewAMQPPublisher(ch, "booth.assignments")
	require.NoError(t, err)

	slotID := uint(4)
	event := domain.AssignmentEvent{
		Type:         domain.EventAssignmentCreated,
		AssignmentID: 1,
		JobSeekerID:  2,
		BoothID:      3,
		SlotID:       &slotID,
		Status:       domain.AssignmentAssigned,
		OccurredAt:   time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, p.Publish(context.Background(), event))

	assert.Equal(t, "application/json", published.ContentType)
	assert.Equal(t, amqp.Persistent, published.DeliveryMode)
	assert.Equal(t, "assignment.created", published.Type)

	var got domain.AssignmentEvent
	require.NoError(t, json.Unmarshal(published.Body, &got))
	assert.Equal(t, event, got)

	ch.AssertExpectations(t)
}

func TestAMQPPublisher_DeclareFails(t *testing.T) {
	ch := new(mockChannel)
	ch.On("QueueDeclare", "q", true, false, false, false, amqp.Table(nil)).Return(errors.New("channel closed"))

	_, err := NewAMQPPublisher(ch, "q")
	assert.ErrorContains(t, err, "channel closed")
}

func TestAMQPPublisher_PublishFails(t *testing.T) {
	ch := new(mockChannel)
	ch.On("QueueDeclare", "q", true, false, false, false, amqp.Table(nil)).Return(nil)
	ch.On("PublishWithContext", mock.Anything, "", "q", false, false, mock.Anything).Return(errors.New("blocked"))
	ch.On("Close").Return(nil)

	p, err := NewAMQPPublisher(ch, "q")
	require.NoError(t, err)

	err = p.Publish(context.Background(), domain.AssignmentEvent{Type: domain.EventAssignmentRemoved})
	assert.ErrorContains(t, err, "blocked")
	assert.NoError(t, p.Close())
}
