// Package keyedqueue сериализует выполнение функций по ключу.
//
// Для каждого ключа поднимается одна горутина-обработчик, которая выполняет
// поставленные в очередь задачи строго по одной и в порядке поступления.
// Задачи с разными ключами выполняются параллельно.
package keyedqueue

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrClosed возвращается, если очередь закрыта до выполнения задачи
var ErrClosed = errors.New("keyedqueue: queue is closed")

// DefaultBufferSize размер буфера очереди одного ключа по умолчанию
const DefaultBufferSize = 64

type job struct {
	ctx  context.Context
	fn   func(ctx context.Context) error
	done chan error
}

type worker struct {
	jobs   chan job
	exited chan struct{}
}

// Queue очередь задач с единственным исполнителем на ключ
type Queue struct {
	mu         sync.Mutex
	workers    map[string]*worker
	bufferSize int
	quit       chan struct{}
	closeOnce  sync.Once
	wg         sync.WaitGroup
}

// New создает очередь; bufferSize <= 0 означает DefaultBufferSize
func New(bufferSize int) *Queue {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Queue{
		workers:    make(map[string]*worker),
		bufferSize: bufferSize,
		quit:       make(chan struct{}),
	}
}

// Do ставит fn в очередь ключа key и ждёт результата.
// Если ctx отменён до постановки в очередь, fn не выполняется.
// После постановки Do всегда дожидается фактического результата fn,
// чтобы вызывающий не получил ошибку для уже применённой операции.
func (q *Queue) Do(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	w, err := q.workerFor(key)
	if err != nil {
		return err
	}

	j := job{ctx: ctx, fn: fn, done: make(chan error, 1)}

	select {
	case w.jobs <- j:
	case <-ctx.Done():
		return ctx.Err()
	case <-q.quit:
		return ErrClosed
	}

	select {
	case err := <-j.done:
		return err
	case <-w.exited:
		// Обработчик мог успеть выполнить задачу перед остановкой
		select {
		case err := <-j.done:
			return err
		default:
			return ErrClosed
		}
	}
}

// Close останавливает обработчики; задачи, не начатые к этому моменту, получают ErrClosed
func (q *Queue) Close() {
	q.closeOnce.Do(func() {
		close(q.quit)
	})
	q.wg.Wait()
}

// Len возвращает количество активных обработчиков
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.workers)
}

func (q *Queue) workerFor(key string) (*worker, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	select {
	case <-q.quit:
		return nil, ErrClosed
	default:
	}

	if w, ok := q.workers[key]; ok {
		return w, nil
	}

	w := &worker{
		jobs:   make(chan job, q.bufferSize),
		exited: make(chan struct{}),
	}
	q.workers[key] = w

	q.wg.Add(1)
	go q.run(w)

	return w, nil
}

func (q *Queue) run(w *worker) {
	defer q.wg.Done()
	defer close(w.exited)

	for {
		select {
		case j := <-w.jobs:
			j.done <- execute(j)
		case <-q.quit:
			for {
				select {
				case j := <-w.jobs:
					j.done <- ErrClosed
				default:
					return
				}
			}
		}
	}
}

func execute(j job) (err error) {
	if err := j.ctx.Err(); err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("keyedqueue: job panicked: %v", r)
		}
	}()

	return j.fn(j.ctx)
}
