// Package workerpool ограничивает число одновременных блокирующих операций,
// прежде всего обращений к базе данных, чтобы они не занимали все
// обработчики HTTP-запросов. Размер пула задаётся конфигурацией.
package workerpool

import (
	"context"
	"fmt"

	"golang.org/x/sync/semaphore"
)

// Pool — ограниченный пул для выполнения блокирующих задач.
type Pool struct {
	sem *semaphore.Weighted
}

// New создаёт пул на size одновременных задач. Размер меньше единицы
// трактуется как один воркер.
func New(size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{sem: semaphore.NewWeighted(int64(size))}
}

// Do выполняет fn, заняв слот пула. Если свободного слота нет, ожидание
// прерывается отменой контекста.
func (p *Pool) Do(ctx context.Context, fn func() error) error {
	const op = "workerpool.Do"
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer p.sem.Release(1)
	return fn()
}
