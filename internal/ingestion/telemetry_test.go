package ingestion

import (
	"context"
	"testing"

	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/config"
	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/domain"
	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestParseTelemetry(t *testing.T) {
	t.Run("Full Reading", func(t *testing.T) {
		msg, err := ParseTelemetry("fleet/telemetry/EQX1001",
			[]byte(`{"equipment_id":"EQX1001","engine_hours_delta":1.5,"idle_hours_delta":0.5,"fuel":72,"timestamp":"2025-01-05T10:00:00Z"}`))
		require.NoError(t, err)
		assert.Equal(t, "EQX1001", msg.EquipmentID)
		assert.Equal(t, 1.5, msg.EngineHoursDelta)
		require.NotNil(t, msg.Fuel)
		assert.Equal(t, 72.0, *msg.Fuel)
	})

	t.Run("Equipment From Topic", func(t *testing.T) {
		msg, err := ParseTelemetry("fleet/telemetry/EQX1042", []byte(`{"engine_hours_delta":2}`))
		require.NoError(t, err)
		assert.Equal(t, "EQX1042", msg.EquipmentID)
	})

	tests := []struct {
		name    string
		topic   string
		payload string
		field   string
	}{
		{"Bad JSON", "fleet/telemetry/EQX1001", `{"engine`, "payload"},
		{"No Equipment", "fleet/telemetry/", `{"engine_hours_delta":1}`, "equipment_id"},
		{"Negative Hours", "fleet/telemetry/EQX1001", `{"engine_hours_delta":-1}`, "engine_hours_delta"},
		{"Idle Too Large", "fleet/telemetry/EQX1001", `{"idle_hours_delta":30}`, "idle_hours_delta"},
		{"Fuel Out Of Range", "fleet/telemetry/EQX1001", `{"fuel":140}`, "fuel"},
		{"Empty Reading", "fleet/telemetry/EQX1001", `{}`, "payload"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTelemetry(tt.topic, []byte(tt.payload))
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestProcessor_Process(t *testing.T) {
	ctx := context.Background()
	fuel := 61.0

	t.Run("Usage And Fuel", func(t *testing.T) {
		registry := new(mocks.MockRegistryService)
		registry.On("UpdateUsage", ctx, "EQX1001", 1.5, 0.5).Return(true, nil).Once()
		registry.On("UpdateFuel", ctx, "EQX1001", 61.0).Return(true, nil).Once()

		res, err := NewProcessor(registry).Process(ctx, &TelemetryMessage{EquipmentID: "EQX1001", EngineHoursDelta: 1.5, IdleHoursDelta: 0.5, Fuel: &fuel})
		require.NoError(t, err)
		assert.True(t, res.UsageApplied)
		assert.True(t, res.FuelApplied)
		registry.AssertExpectations(t)
	})

	t.Run("Fuel Only", func(t *testing.T) {
		registry := new(mocks.MockRegistryService)
		registry.On("UpdateFuel", ctx, "EQX1001", 61.0).Return(false, nil).Once()

		res, err := NewProcessor(registry).Process(ctx, &TelemetryMessage{EquipmentID: "EQX1001", Fuel: &fuel})
		require.NoError(t, err)
		assert.False(t, res.FuelApplied)
		registry.AssertNotCalled(t, "UpdateUsage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unknown Unit", func(t *testing.T) {
		registry := new(mocks.MockRegistryService)
		registry.On("UpdateUsage", ctx, "EQX9999", 1.0, 0.0).Return(false, domain.NewNotFoundError("equipment", "EQX9999")).Once()

		_, err := NewProcessor(registry).Process(ctx, &TelemetryMessage{EquipmentID: "EQX9999", EngineHoursDelta: 1})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

type fakeMessage struct {
	topic   string
	payload []byte
}

func (m fakeMessage) Duplicate() bool   { return false }
func (m fakeMessage) Qos() byte         { return 0 }
func (m fakeMessage) Retained() bool    { return false }
func (m fakeMessage) Topic() string     { return m.topic }
func (m fakeMessage) MessageID() uint16 { return 1 }
func (m fakeMessage) Payload() []byte   { return m.payload }
func (m fakeMessage) Ack()              {}

func TestSubscriber_OnMessage(t *testing.T) {
	cfg := config.MQTTConfig{Broker: "tcp://localhost:1883", ClientID: "test", TelemetryTopic: "fleet/telemetry/+"}

	t.Run("Valid Message Reaches Registry", func(t *testing.T) {
		registry := new(mocks.MockRegistryService)
		registry.On("UpdateUsage", mock.Anything, "EQX1001", 2.0, 0.0).Return(true, nil).Once()

		s, err := NewSubscriber(cfg, NewProcessor(registry))
		require.NoError(t, err)
		s.onMessage(nil, fakeMessage{topic: "fleet/telemetry/EQX1001", payload: []byte(`{"engine_hours_delta":2}`)})

		registry.AssertExpectations(t)
	})

	t.Run("Invalid Message Dropped", func(t *testing.T) {
		registry := new(mocks.MockRegistryService)

		s, err := NewSubscriber(cfg, NewProcessor(registry))
		require.NoError(t, err)
		s.onMessage(nil, fakeMessage{topic: "fleet/telemetry/EQX1001", payload: []byte(`not json`)})

		registry.AssertNotCalled(t, "UpdateUsage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Requires Broker", func(t *testing.T) {
		_, err := NewSubscriber(config.MQTTConfig{}, NewProcessor(new(mocks.MockRegistryService)))
		assert.Error(t, err)
	})
}
