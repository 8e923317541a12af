package kafka

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/larek/internal/kafka/mocks"
	"github.com/Gunvolt24/larek/internal/usecase"
)

type nopLogger struct{}

func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

// runAsync запускает Consumer.Run в отдельном горутине и возвращает канал с ошибкой.
func runAsync(ctx context.Context, c *Consumer) <-chan error {
	errCh := make(chan error, 1)
	go func() { errCh <- c.Run(ctx) }()
	return errCh
}

func newTestConsumer(r reader, s messageSaver) *Consumer {
	c := newConsumer(r, ConsumerConfig{
		ProcessTimeout: 30 * time.Millisecond,
		RetryInitial:   5 * time.Millisecond,
		RetryMax:       10 * time.Millisecond,
	}, s, nopLogger{})
	c.jitterRand = rand.New(rand.NewSource(1))
	return c
}

// waitStopped — ждёт выхода Run после отмены контекста.
func waitStopped(t *testing.T, errCh <-chan error) {
	t.Helper()
	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("want context.Canceled, got %v", err)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timeout waiting for Run to stop")
	}
}

// blockUntilCancel — FetchMessage, который ждёт отмены контекста.
func blockUntilCancel(ctx context.Context) (kafka.Message, error) {
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

// Успешная обработка + коммит
func TestRun_OK_Commits(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	s := mocks.NewMockmessageSaver(ctrl)

	rc := kafka.ReaderConfig{Topic: "catalog", GroupID: "g1", Brokers: []string{"b:9092"}}
	r.EXPECT().Config().Return(rc).AnyTimes()
	// 1-й цикл: сообщение обрабатывается
	r.EXPECT().FetchMessage(gomock.Any()).
		Return(kafka.Message{Offset: 1, Value: []byte("ok")}, nil)
	s.EXPECT().SaveFromMessage(gomock.Any(), []byte("ok")).Return(nil)
	r.EXPECT().CommitMessages(gomock.Any(), gomock.Any()).Return(nil)
	// 2-й fetch блокируется до отмены контекста
	r.EXPECT().FetchMessage(gomock.Any()).
		DoAndReturn(blockUntilCancel)

	c := newTestConsumer(r, s)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := runAsync(ctx, c)

	time.Sleep(20 * time.Millisecond)
	cancel()

	waitStopped(t, errCh)
}

// Битый снимок каталога => тоже коммитим (чтобы не ретраить мусор)
func TestRun_InvalidCatalog_Commits(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	s := mocks.NewMockmessageSaver(ctrl)

	rc := kafka.ReaderConfig{Topic: "catalog", GroupID: "g1", Brokers: []string{"b:9092"}}
	r.EXPECT().Config().Return(rc).AnyTimes()

	// 1-й цикл: сервис вернул обёрнутый usecase.ErrInvalidCatalog, выполняем CommitMessages
	r.EXPECT().FetchMessage(gomock.Any()).
		Return(kafka.Message{Offset: 7, Value: []byte("bad")}, nil)
	s.EXPECT().SaveFromMessage(gomock.Any(), []byte("bad")).Return(fmt.Errorf("%w: unknown preview", usecase.ErrInvalidCatalog))
	r.EXPECT().CommitMessages(gomock.Any(), gomock.Any()).Return(nil)

	// 2-й fetch будет ждать отмены
	r.EXPECT().FetchMessage(gomock.Any()).
		DoAndReturn(blockUntilCancel)

	c := newTestConsumer(r, s)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := runAsync(ctx, c)

	time.Sleep(20 * time.Millisecond)
	cancel()

	waitStopped(t, errCh)
}

// Временная ошибка сервиса => то же сообщение обрабатывается повторно, без нового Fetch;
// коммит — только после успеха
func TestRun_TemporaryFailure_RetriesSameMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	s := mocks.NewMockmessageSaver(ctrl)

	rc := kafka.ReaderConfig{Topic: "catalog", GroupID: "g1", Brokers: []string{"b:9092"}}
	r.EXPECT().Config().Return(rc).AnyTimes()

	msg := kafka.Message{Offset: 2, Value: []byte("x")}
	gomock.InOrder(
		r.EXPECT().FetchMessage(gomock.Any()).Return(msg, nil),
		s.EXPECT().SaveFromMessage(gomock.Any(), []byte("x")).Return(errors.New("db down")),
		s.EXPECT().SaveFromMessage(gomock.Any(), []byte("x")).Return(errors.New("db down")),
		s.EXPECT().SaveFromMessage(gomock.Any(), []byte("x")).Return(nil),
		r.EXPECT().CommitMessages(gomock.Any(), msg).Return(nil),
		r.EXPECT().FetchMessage(gomock.Any()).DoAndReturn(blockUntilCancel),
	)

	c := newTestConsumer(r, s)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := runAsync(ctx, c)

	time.Sleep(80 * time.Millisecond)
	cancel()

	waitStopped(t, errCh)
}

// Отмена во время повторов => выход без коммита и без нового Fetch
func TestRun_TemporaryFailure_CancelStopsWithoutCommit(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	s := mocks.NewMockmessageSaver(ctrl)

	rc := kafka.ReaderConfig{Topic: "catalog", GroupID: "g1", Brokers: []string{"b:9092"}}
	r.EXPECT().Config().Return(rc).AnyTimes()

	r.EXPECT().FetchMessage(gomock.Any()).
		Return(kafka.Message{Offset: 5, Value: []byte("x")}, nil).Times(1)
	s.EXPECT().SaveFromMessage(gomock.Any(), []byte("x")).
		Return(errors.New("db down")).MinTimes(1)
	// CommitMessages не ожидается

	c := newTestConsumer(r, s)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := runAsync(ctx, c)

	time.Sleep(40 * time.Millisecond)
	cancel()

	waitStopped(t, errCh)
}

// Reader без группы (каждый инстанс читает все снимки) => коммитов нет
func TestRun_NoGroup_DoesNotCommit(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	s := mocks.NewMockmessageSaver(ctrl)

	rc := kafka.ReaderConfig{Topic: "catalog", Brokers: []string{"b:9092"}}
	r.EXPECT().Config().Return(rc).AnyTimes()

	gomock.InOrder(
		r.EXPECT().FetchMessage(gomock.Any()).Return(kafka.Message{Offset: 1, Value: []byte("ok")}, nil),
		s.EXPECT().SaveFromMessage(gomock.Any(), []byte("ok")).Return(nil),
		r.EXPECT().FetchMessage(gomock.Any()).Return(kafka.Message{Offset: 2, Value: []byte("bad")}, nil),
		s.EXPECT().SaveFromMessage(gomock.Any(), []byte("bad")).Return(fmt.Errorf("%w: broken", usecase.ErrInvalidCatalog)),
		r.EXPECT().FetchMessage(gomock.Any()).DoAndReturn(blockUntilCancel),
	)

	c := newTestConsumer(r, s)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := runAsync(ctx, c)

	time.Sleep(20 * time.Millisecond)
	cancel()

	waitStopped(t, errCh)
}

// Ошибки FetchMessage ретраятся; по отмене контекста — корректный выход
func TestRun_FetchError_RetryThenStopOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	s := mocks.NewMockmessageSaver(ctrl)

	rc := kafka.ReaderConfig{Topic: "catalog", GroupID: "g1", Brokers: []string{"b:9092"}}
	r.EXPECT().Config().Return(rc).AnyTimes()

	// Всегда возвращаем ошибку брокера; Consumer будет ждать по backoff и ретраить,
	// пока не отменится контекст
	r.EXPECT().FetchMessage(gomock.Any()).
		DoAndReturn(func(_ context.Context) (kafka.Message, error) {
			return kafka.Message{}, errors.New("broker error")
		}).AnyTimes()

	c := newTestConsumer(r, s)

	// Короткий таймаут, чтобы быстро выйти
	ctx, cancel := context.WithTimeout(context.Background(), 40*time.Millisecond)
	defer cancel()

	if err := c.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("want DeadlineExceeded, got %v", err)
	}
}

// CommitMessages вернул ошибку — получаем предупреждение; цикл живёт дальше
func TestRun_CommitWarnOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	s := mocks.NewMockmessageSaver(ctrl)

	rc := kafka.ReaderConfig{Topic: "catalog", GroupID: "g1", Brokers: []string{"b:9092"}}
	r.EXPECT().Config().Return(rc).AnyTimes()

	// 1-й цикл: сервис работает, но CommitMessages возвращает ошибку — не должен падать
	r.EXPECT().FetchMessage(gomock.Any()).
		Return(kafka.Message{Offset: 3, Value: []byte("ok")}, nil)
	s.EXPECT().SaveFromMessage(gomock.Any(), []byte("ok")).Return(nil)
	r.EXPECT().CommitMessages(gomock.Any(), gomock.Any()).
		Return(errors.New("temporary"))

	// 2-й fetch блокируется до отмены
	r.EXPECT().FetchMessage(gomock.Any()).
		DoAndReturn(blockUntilCancel)

	c := newTestConsumer(r, s)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := runAsync(ctx, c)

	time.Sleep(20 * time.Millisecond)
	cancel()

	waitStopped(t, errCh)
}

// 5) Проверка Close() прокидывает вызов в reader.Close()
func TestClose_DelegatesToReader(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	s := mocks.NewMockmessageSaver(ctrl)

	// Close должен быть вызван и вернуть nil
	r.EXPECT().Close().Return(nil)

	c := newTestConsumer(r, s)
	if err := c.Close(); err != nil {
		t.Fatalf("expected nil from Close, got %v", err)
	}
	// повторный Close не доходит до reader
	if err := c.Close(); err != nil {
		t.Fatalf("expected nil from second Close, got %v", err)
	}
}

func TestNextBackoff_CappedByRetryMax(t *testing.T) {
	c := newTestConsumer(nil, nil)

	got := []time.Duration{}
	d := c.retryInitial
	for i := 0; i < 4; i++ {
		d = c.nextBackoff(d)
		got = append(got, d)
	}
	want := []time.Duration{10 * time.Millisecond, 10 * time.Millisecond, 10 * time.Millisecond, 10 * time.Millisecond}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("step %d: want %s, got %s", i, want[i], got[i])
		}
	}
}

func TestWithJitterEqual_Bounds(t *testing.T) {
	c := newTestConsumer(nil, nil)

	if got := c.withJitterEqual(0); got != 0 {
		t.Fatalf("zero duration: want 0, got %s", got)
	}
	d := 100 * time.Millisecond
	for i := 0; i < 100; i++ {
		got := c.withJitterEqual(d)
		if got < d/2 || got > d {
			t.Fatalf("jitter out of range [%s, %s]: %s", d/2, d, got)
		}
	}
}

func TestConsumerConfig_Defaults(t *testing.T) {
	c := newConsumer(nil, ConsumerConfig{RetryInitial: time.Minute}, nil, nopLogger{})
	if c.processTimeout != 5*time.Second {
		t.Fatalf("processTimeout: want 5s, got %s", c.processTimeout)
	}
	// retryMax не меньше retryInitial
	if c.retryMax != time.Minute {
		t.Fatalf("retryMax: want 1m, got %s", c.retryMax)
	}
}
