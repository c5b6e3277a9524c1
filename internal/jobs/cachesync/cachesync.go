package cachesync

import (
	"context"
	"fixmycondo/config"
	"fixmycondo/infras/kafka"
	"fixmycondo/internal/domains/complaint/model/dto"
	complaintService "fixmycondo/internal/domains/complaint/service"
	"fixmycondo/shared/cache"
	"fixmycondo/shared/constant"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

const consumerGroup = "fixmycondo-cachesync"

// Syncer evicts API caches for complaints changed outside the API process, such as SLA escalations.
type Syncer interface {
	Run(ctx context.Context)
	Handle(ctx context.Context, msg kafkaGo.Message) error
}

type syncerImpl struct {
	kafka kafka.Client
	cache cache.RedisCache
	cfg   *config.Config
}

func New(kafka kafka.Client, cache cache.RedisCache, cfg *config.Config) Syncer {
	return &syncerImpl{
		kafka: kafka,
		cache: cache,
		cfg:   cfg,
	}
}

// Run consumes the complaint topic until ctx is cancelled. It returns at once when Kafka is disabled.
func (s *syncerImpl) Run(ctx context.Context) {
	if !s.cfg.Kafka.Enable {
		log.Info().Msg("Kafka disabled, cache sync not started")

		return
	}

	if err := s.kafka.Consume(ctx, consumerGroup, s.cfg.Kafka.Topics.Complaint, s.Handle); err != nil {
		log.Error().Err(err).Msg("cache sync consumer stopped")
	}
}

func (s *syncerImpl) Handle(ctx context.Context, msg kafkaGo.Message) error {
	event, err := kafka.Decode[dto.ComplaintEvent](msg)
	if err != nil {
		// a malformed event never becomes readable, so it is skipped
		log.Warn().Err(err).Int64("offset", msg.Offset).Msg("skipping undecodable complaint event")

		return nil
	}

	if event.Type != constant.EventComplaintSLABreached || event.ComplaintID == constant.Empty {
		return nil
	}

	complaintService.EvictCaches(ctx, s.cache, event.ComplaintID)

	log.Debug().Str("complaintID", event.ComplaintID).Msg("complaint caches evicted")

	return nil
}
