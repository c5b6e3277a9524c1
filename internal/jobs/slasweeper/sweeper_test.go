package slasweeper_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"fixmycondo/config"
	"fixmycondo/infras/kafka"
	kafkaMocks "fixmycondo/infras/kafka/mocks"
	"fixmycondo/infras/metrics"
	"fixmycondo/infras/otel/mocks"
	"fixmycondo/internal/domains/complaint/lifecycle"
	complaintMocks "fixmycondo/internal/domains/complaint/mocks"
	"fixmycondo/internal/domains/complaint/model"
	"fixmycondo/internal/domains/complaint/model/dto"
	"fixmycondo/internal/domains/complaint/repository"
	"fixmycondo/internal/jobs/slasweeper"
	"fixmycondo/shared/constant"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	repo    *complaintMocks.MockComplaint
	kafka   *kafkaMocks.MockClient
	metrics *metrics.Metrics
	sweeper slasweeper.Sweeper
}

func newFixture(t *testing.T, kafkaEnabled bool) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.SLA.SweepBatchSize = 50
	cfg.Kafka.Enable = kafkaEnabled
	cfg.Kafka.Topics.Complaint = "complaint.events"

	f := &fixture{
		repo:    complaintMocks.NewMockComplaint(ctrl),
		kafka:   kafkaMocks.NewMockClient(ctrl),
		metrics: metrics.New(cfg),
	}
	f.sweeper = slasweeper.New(f.repo, f.kafka, f.metrics, cfg, mocks.NewOtel())

	return f
}

func overdue(id string, priority lifecycle.Priority, status lifecycle.Status) model.Complaint {
	return model.Complaint{
		ID:         id,
		BuildingID: "building-1",
		Record: lifecycle.Record{
			Status:       status,
			Priority:     priority,
			SLAHours:     4,
			SLAStartedAt: now.Add(-6 * time.Hour),
			SLADeadline:  now.Add(-2 * time.Hour),
		},
		Version: 3,
	}
}

func TestSweeper_Sweep(t *testing.T) {
	tests := []struct {
		name          string
		kafkaEnabled  bool
		candidates    []model.Complaint
		setupMocks    func(f *fixture)
		wantEscalated int
		wantBreaches  map[string]float64
	}{
		{
			name:         "marks the breach and publishes the event",
			kafkaEnabled: true,
			candidates:   []model.Complaint{overdue("complaint-1", lifecycle.PriorityCritical, lifecycle.StatusInProgress)},
			setupMocks: func(f *fixture) {
				f.repo.EXPECT().
					ApplyChange(gomock.Any(), "complaint-1", 3, gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, _ int, fields map[string]any, entries ...model.Update) error {
						assert.Equal(t, now, fields[model.FieldBreachNotifiedAt])
						assert.Equal(t, constant.RoleSystem, fields[constant.FieldModifiedBy])
						require.Len(t, entries, 1)
						assert.Nil(t, entries[0].Status)
						assert.Equal(t, constant.RoleSystem, entries[0].CreatedBy)

						return nil
					})
				f.kafka.EXPECT().
					SendMessages(gomock.Any(), "complaint.events", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
						require.Len(t, messages, 1)
						assert.Equal(t, "complaint-1", messages[0].Key)

						event, ok := messages[0].Value.(dto.ComplaintEvent)
						require.True(t, ok)
						assert.Equal(t, constant.EventComplaintSLABreached, event.Type)
						assert.Equal(t, lifecycle.PriorityCritical, event.Priority)

						return nil
					})
			},
			wantEscalated: 1,
			wantBreaches:  map[string]float64{"critical": 1},
		},
		{
			name:       "kafka disabled still escalates",
			candidates: []model.Complaint{overdue("complaint-1", lifecycle.PriorityLow, lifecycle.StatusSubmitted)},
			setupMocks: func(f *fixture) {
				f.repo.EXPECT().ApplyChange(gomock.Any(), "complaint-1", 3, gomock.Any(), gomock.Any()).Return(nil)
			},
			wantEscalated: 1,
			wantBreaches:  map[string]float64{"low": 1},
		},
		{
			name: "complaint changed concurrently is skipped",
			candidates: []model.Complaint{
				overdue("complaint-1", lifecycle.PriorityHigh, lifecycle.StatusInProgress),
				overdue("complaint-2", lifecycle.PriorityHigh, lifecycle.StatusAssigned),
			},
			setupMocks: func(f *fixture) {
				f.repo.EXPECT().ApplyChange(gomock.Any(), "complaint-1", 3, gomock.Any(), gomock.Any()).Return(repository.ErrVersionConflict)
				f.repo.EXPECT().ApplyChange(gomock.Any(), "complaint-2", 3, gomock.Any(), gomock.Any()).Return(nil)
			},
			wantEscalated: 1,
			wantBreaches:  map[string]float64{"high": 1},
		},
		{
			name:       "storage failure on one complaint does not stop the batch",
			candidates: []model.Complaint{overdue("complaint-1", lifecycle.PriorityMedium, lifecycle.StatusInProgress)},
			setupMocks: func(f *fixture) {
				f.repo.EXPECT().ApplyChange(gomock.Any(), "complaint-1", 3, gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantBreaches: map[string]float64{"medium": 0},
		},
		{
			name: "terminal or not yet due complaints are left alone",
			candidates: []model.Complaint{
				overdue("complaint-1", lifecycle.PriorityHigh, lifecycle.StatusCompleted),
				func() model.Complaint {
					c := overdue("complaint-2", lifecycle.PriorityHigh, lifecycle.StatusInProgress)
					c.SLADeadline = now

					return c
				}(),
			},
			setupMocks:   func(_ *fixture) {},
			wantBreaches: map[string]float64{"high": 0},
		},
		{
			name:         "publish failure does not undo the escalation",
			kafkaEnabled: true,
			candidates:   []model.Complaint{overdue("complaint-1", lifecycle.PriorityCritical, lifecycle.StatusReopened)},
			setupMocks: func(f *fixture) {
				f.repo.EXPECT().ApplyChange(gomock.Any(), "complaint-1", 3, gomock.Any(), gomock.Any()).Return(nil)
				f.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker down"))
			},
			wantEscalated: 1,
			wantBreaches:  map[string]float64{"critical": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.kafkaEnabled)

			f.repo.EXPECT().BreachCandidates(gomock.Any(), now, 50).Return(tt.candidates, nil)
			tt.setupMocks(f)

			escalated, err := f.sweeper.Sweep(context.Background(), now)
			require.NoError(t, err)
			assert.Equal(t, tt.wantEscalated, escalated)

			for priority, want := range tt.wantBreaches {
				assert.InDelta(t, want, testutil.ToFloat64(f.metrics.SLABreaches.WithLabelValues(priority)), 0)
			}
		})
	}
}

func TestSweeper_SweepCandidateQueryFails(t *testing.T) {
	f := newFixture(t, false)

	f.repo.EXPECT().BreachCandidates(gomock.Any(), now, 50).Return(nil, errors.New("database error"))

	escalated, err := f.sweeper.Sweep(context.Background(), now)
	require.Error(t, err)
	assert.Zero(t, escalated)
}

func TestSweeper_RunStopsWithContext(t *testing.T) {
	f := newFixture(t, false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})

	go func() {
		f.sweeper.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancellation")
	}
}
