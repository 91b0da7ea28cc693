package main

import (
	"testing"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"domemily/internal/models"
)

func TestOpenDatabase(t *testing.T) {
	db, err := openDatabase("sqlite", "file:maintest?mode=memory&cache=shared")
	require.NoError(t, err)

	// The repositories depend on translated unique-violation errors.
	assert.True(t, db.Config.TranslateError)

	assert.NoError(t, db.AutoMigrate(&models.Product{}, &models.ContactMessage{}))
}

func TestOpenDatabaseDefaultsToSqlite(t *testing.T) {
	db, err := openDatabase("", "file:maintest2?mode=memory&cache=shared")
	require.NoError(t, err)
	assert.NotNil(t, db)
}

// MockCatalogConsumer stands in for the RabbitMQ client.
type MockCatalogConsumer struct {
	mock.Mock
}

func (m *MockCatalogConsumer) ConsumeCatalogEvents(messageHandler func(msg amqp.Delivery) error) error {
	args := m.Called(messageHandler)
	return args.Error(0)
}

func TestStartCatalogConsumer(t *testing.T) {
	consumer := new(MockCatalogConsumer)

	var handler func(msg amqp.Delivery) error
	consumer.On("ConsumeCatalogEvents", mock.Anything).
		Run(func(args mock.Arguments) {
			handler = args.Get(0).(func(msg amqp.Delivery) error)
		}).
		Return(nil).Once()

	require.NoError(t, startCatalogConsumer(consumer, zap.NewNop()))
	require.NotNil(t, handler)

	// The handler acks every delivery it can log.
	assert.NoError(t, handler(amqp.Delivery{
		DeliveryTag: 1,
		Body:        []byte(`{"event":"product.created","payload":{"slug":"red-gown"}}`),
	}))
	consumer.AssertExpectations(t)
}
