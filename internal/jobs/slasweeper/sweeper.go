package slasweeper

import (
	"context"
	"errors"
	"fixmycondo/config"
	"fixmycondo/infras/kafka"
	"fixmycondo/infras/metrics"
	"fixmycondo/infras/otel"
	"fixmycondo/internal/domains/complaint/lifecycle"
	"fixmycondo/internal/domains/complaint/model"
	"fixmycondo/internal/domains/complaint/model/dto"
	"fixmycondo/internal/domains/complaint/repository"
	"fixmycondo/shared/constant"
	"fixmycondo/shared/timezone"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const breachMessage = "SLA deadline missed, complaint escalated to building management"

// Sweeper escalates complaints that missed their deadline. Each breach is escalated once.
type Sweeper interface {
	Run(ctx context.Context)
	Sweep(ctx context.Context, now time.Time) (int, error)
}

type sweeperImpl struct {
	repo    repository.Complaint
	kafka   kafka.Client
	metrics *metrics.Metrics
	cfg     *config.Config
	otel    otel.Otel
}

func New(repo repository.Complaint, kafka kafka.Client, metrics *metrics.Metrics, cfg *config.Config, otel otel.Otel) Sweeper {
	return &sweeperImpl{
		repo:    repo,
		kafka:   kafka,
		metrics: metrics,
		cfg:     cfg,
		otel:    otel,
	}
}

// Run sweeps on every tick until ctx is cancelled.
func (s *sweeperImpl) Run(ctx context.Context) {
	interval := time.Duration(s.cfg.SLA.SweepIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info().Dur("interval", interval).Msg("SLA sweeper started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("SLA sweeper stopped")

			return
		case <-ticker.C:
			escalated, err := s.Sweep(ctx, timezone.Now())
			if err != nil {
				log.Error().Err(err).Msg("failed to sweep SLA breaches")

				continue
			}

			if escalated > 0 {
				log.Info().Int("escalated", escalated).Msg("SLA breaches escalated")
			}
		}
	}
}

func (s *sweeperImpl) Sweep(ctx context.Context, now time.Time) (escalated int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelJobScopeName, constant.OtelJobScopeName+".SLASweep")
	defer scope.End()
	defer scope.TraceIfError(&err)

	candidates, err := s.repo.BreachCandidates(ctx, now, s.cfg.SLA.SweepBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("failed to load breach candidates")

		return 0, fmt.Errorf("failed to load breach candidates: %w", err)
	}

	for _, complaint := range candidates {
		if !lifecycle.IsBreached(complaint.Record, now) {
			continue
		}

		err := s.escalate(ctx, complaint, now)
		if errors.Is(err, repository.ErrVersionConflict) {
			log.Debug().Str("complaintID", complaint.ID).Msg("complaint changed during sweep, skipped")

			continue
		}

		if err != nil {
			log.Error().Err(err).Str("complaintID", complaint.ID).Msg("failed to escalate complaint")

			continue
		}

		escalated++
	}

	return escalated, nil
}

// escalate claims the breach through the versioned update so concurrent sweepers notify once.
func (s *sweeperImpl) escalate(ctx context.Context, complaint model.Complaint, now time.Time) error {
	fields := map[string]any{
		model.FieldBreachNotifiedAt: now,
		constant.FieldModifiedAt:    now,
		constant.FieldModifiedBy:    constant.RoleSystem,
	}

	entry := model.Update{
		ID:          uuid.NewString(),
		ComplaintID: complaint.ID,
		Message:     breachMessage,
		CreatedAt:   now,
		CreatedBy:   constant.RoleSystem,
	}

	if err := s.repo.ApplyChange(ctx, complaint.ID, complaint.Version, fields, entry); err != nil {
		return fmt.Errorf("failed to mark breach: %w", err)
	}

	s.metrics.SLABreaches.WithLabelValues(string(complaint.Priority)).Inc()

	if !s.cfg.Kafka.Enable {
		return nil
	}

	event := dto.ComplaintEvent{
		Type:        constant.EventComplaintSLABreached,
		ComplaintID: complaint.ID,
		BuildingID:  complaint.BuildingID,
		From:        complaint.Status,
		To:          complaint.Status,
		Priority:    complaint.Priority,
		AssignedTo:  complaint.AssignedTo,
		SLADeadline: complaint.SLADeadline,
		ActorID:     constant.RoleSystem,
		OccurredAt:  now,
	}

	err := s.kafka.SendMessages(ctx, s.cfg.Kafka.Topics.Complaint, kafka.Message{Key: complaint.ID, Value: event})
	if err != nil {
		log.Error().Err(err).Str("complaintID", complaint.ID).Msg("failed to publish breach event")
	}

	return nil
}
