//go:build integration

package main_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	kafkamodule "github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/masud-rana44/the-wild-oasis/internal/application"
	"github.com/masud-rana44/the-wild-oasis/internal/events"
	"github.com/masud-rana44/the-wild-oasis/internal/repository"
)

const testPageSize = 10

// testInfra holds shared test infrastructure.
type testInfra struct {
	DB           *gorm.DB
	KafkaBrokers []string
	Cleanup      func()
}

// bookingStack holds the wired-up booking service components.
type bookingStack struct {
	Service         *application.BookingService
	BookingRepo     *repository.GormBookingRepository
	CleanupProducer func()
}

// setupContainers starts PostgreSQL and Kafka testcontainers and returns a connected GORM DB.
func setupContainers(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()

	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test_oasis",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: pgReq,
		Started:          true,
	})
	require.NoError(t, err, "failed to start PostgreSQL container")

	pgHost, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	pgPort, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=test password=test dbname=test_oasis sslmode=disable TimeZone=UTC", pgHost, pgPort.Port())

	// Poll until GORM can actually connect and ping. TranslateError is on,
	// matching the production connector, so the unique-index violation on
	// guests.email surfaces as gorm.ErrDuplicatedKey.
	var db *gorm.DB
	require.Eventually(t, func() bool {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			TranslateError: true,
			Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			return false
		}
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, 30*time.Second, 1*time.Second, "PostgreSQL not ready for connections")

	require.NoError(t, db.AutoMigrate(
		&repository.CabinModel{},
		&repository.GuestModel{},
		&repository.BookingModel{},
	))

	kafkaContainer, err := kafkamodule.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "failed to start Kafka container")

	kafkaBrokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err, "failed to get Kafka brokers")

	createTopics(t, kafkaBrokers, events.TopicBookingEvents)

	cleanup := func() {
		if err := kafkaContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Kafka container: %v", err)
		}
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	}

	return &testInfra{
		DB:           db,
		KafkaBrokers: kafkaBrokers,
		Cleanup:      cleanup,
	}
}

// setupBookingStack wires up the full booking service stack against real
// PostgreSQL and Kafka.
func setupBookingStack(t *testing.T, db *gorm.DB, brokers []string) *bookingStack {
	t.Helper()
	logger, _ := zap.NewDevelopment()

	bookingRepo := repository.NewGormBookingRepository(db, testPageSize, logger)
	cabinRepo := repository.NewGormCabinRepository(db, logger)
	guestRepo := repository.NewGormGuestRepository(db, logger)

	producer := events.NewProducer(brokers, logger)
	resolver := application.NewGuestResolver(guestRepo, logger)
	service := application.NewBookingService(bookingRepo, cabinRepo, resolver, producer, testPageSize, logger)

	return &bookingStack{
		Service:         service,
		BookingRepo:     bookingRepo,
		CleanupProducer: func() { _ = producer.Close() },
	}
}

// seedCabin inserts a cabin row directly.
func seedCabin(t *testing.T, db *gorm.DB, name string, capacity int, price, discount float64) uuid.UUID {
	t.Helper()
	model := repository.CabinModel{
		ID:           uuid.New(),
		Name:         name,
		MaxCapacity:  capacity,
		RegularPrice: price,
		Discount:     discount,
	}
	require.NoError(t, db.Create(&model).Error, "failed to seed cabin")
	return model.ID
}

// seedGuest inserts a guest row directly.
func seedGuest(t *testing.T, db *gorm.DB, fullName, email string) uuid.UUID {
	t.Helper()
	model := repository.GuestModel{
		ID:        uuid.New(),
		FullName:  fullName,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, db.Create(&model).Error, "failed to seed guest")
	return model.ID
}

// seedBookingRow inserts a booking row directly, bypassing the service.
func seedBookingRow(t *testing.T, db *gorm.DB, cabinID, guestID uuid.UUID, status string, createdAt, start, end time.Time, totalPrice float64) uuid.UUID {
	t.Helper()
	model := repository.BookingModel{
		ID:         uuid.New(),
		CreatedAt:  createdAt,
		StartDate:  start,
		EndDate:    end,
		NumNights:  int(end.Sub(start).Hours() / 24),
		NumGuests:  2,
		Status:     status,
		CabinPrice: totalPrice,
		TotalPrice: totalPrice,
		CabinID:    cabinID,
		GuestID:    guestID,
	}
	require.NoError(t, db.Create(&model).Error, "failed to seed booking")
	return model.ID
}

// consumeOneEvent reads from a Kafka topic until it finds an event of the expected type.
func consumeOneEvent(t *testing.T, brokers []string, topic, expectedType string, timeout time.Duration) events.Event {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	groupID := fmt.Sprintf("test-assert-%s", uuid.New().String()[:8])
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     brokers,
		GroupID:     groupID,
		Topic:       topic,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafkago.FirstOffset,
	})
	defer func() { _ = reader.Close() }()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				t.Fatalf("timed out waiting for event type %q on topic %q", expectedType, topic)
			}
			continue
		}
		var evt events.Event
		if err := json.Unmarshal(msg.Value, &evt); err != nil {
			continue
		}
		if evt.Type == expectedType {
			return evt
		}
	}
}

// createTopics pre-creates Kafka topics so producers don't fail with "Unknown Topic".
func createTopics(t *testing.T, brokers []string, topics ...string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", brokers[0])
	require.NoError(t, err, "failed to dial Kafka for topic creation")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "failed to get Kafka controller")

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, fmt.Sprintf("%d", controller.Port)))
	require.NoError(t, err, "failed to connect to Kafka controller")
	defer controllerConn.Close()

	topicConfigs := make([]kafkago.TopicConfig, len(topics))
	for i, topic := range topics {
		topicConfigs[i] = kafkago.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		}
	}
	err = controllerConn.CreateTopics(topicConfigs...)
	require.NoError(t, err, "failed to create Kafka topics")

	// Give Kafka a moment to propagate topic metadata.
	time.Sleep(1 * time.Second)
}
