package kafka

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/larek/internal/ports"
	"github.com/Gunvolt24/larek/pkg/metrics"
)

var _ ports.MessageConsumer = (*Consumer)(nil)

// reader — то, что нужно консьюмеру от kafka.Reader (подменяется моками в тестах).
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Config() kafka.ReaderConfig
	Close() error
}

// messageSaver — обработчик снимка каталога (usecase.CatalogService).
type messageSaver interface {
	SaveFromMessage(ctx context.Context, raw []byte) error
}

// Consumer — читает снимки каталога и применяет их через messageSaver.
type Consumer struct {
	reader         reader
	service        messageSaver
	log            ports.Logger
	processTimeout time.Duration
	retryInitial   time.Duration
	retryMax       time.Duration

	mu         sync.Mutex
	jitterRand *rand.Rand
	closeOnce  sync.Once
}

// NewConsumer — консьюмер поверх kafka.Reader.
// Без GroupID каждый инстанс читает партицию сам и видит все снимки; коммитов нет.
// С GroupID оффсеты коммитятся вручную после обработки.
func NewConsumer(cfg *ConsumerConfig, service messageSaver, log ports.Logger) *Consumer {
	r := kafka.NewReader(cfg.ReaderConfig())
	if cfg.GroupID == "" {
		// у reader без группы StartOffset не используется
		if err := r.SetOffset(startOffset(cfg.StartOffset)); err != nil {
			log.Warnf(context.Background(), "set start offset failed: %v", err)
		}
	}
	return newConsumer(r, *cfg, service, log)
}

func newConsumer(r reader, cfg ConsumerConfig, service messageSaver, log ports.Logger) *Consumer {
	cfg = cfg.withDefaults()
	return &Consumer{
		reader:         r,
		service:        service,
		log:            log,
		processTimeout: cfg.ProcessTimeout,
		retryInitial:   cfg.RetryInitial,
		retryMax:       cfg.RetryMax,
		jitterRand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run — цикл чтения до отмены контекста.
// Временная ошибка повторяется на том же сообщении; следующее читается только
// после успеха или битого снимка (тогда же коммит в режиме группы).
func (c *Consumer) Run(ctx context.Context) error {
	rc := c.reader.Config()
	commits := rc.GroupID != ""
	c.log.Infof(ctx, "catalog consumer started topic=%s group_id=%q brokers=%v", rc.Topic, rc.GroupID, rc.Brokers)

	retry := c.retryInitial
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			wait := c.withJitterEqual(retry)
			c.log.Warnf(ctx, "fetch failed: %v (retry in %s)", err, wait)
			if !sleepCtx(ctx, wait) {
				return ctx.Err()
			}
			retry = c.nextBackoff(retry)
			continue
		}

		retry = c.retryInitial
		metrics.KafkaMessagesConsumed.WithLabelValues(rc.Topic).Inc()

		if !c.processWithRetry(ctx, rc.Topic, &msg) {
			return ctx.Err()
		}
		if commits {
			c.commitSafely(ctx, &msg)
		}
	}
}

// Close — закрывает reader один раз.
func (c *Consumer) Close() (err error) {
	c.closeOnce.Do(func() { err = c.reader.Close() })
	return err
}
