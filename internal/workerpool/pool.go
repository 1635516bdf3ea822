// Package workerpool 固定數量的工作協程池，供批次模擬並行跑場。
package workerpool

import (
	"log/slog"
	"sync"
)

// Task 一件要執行的工作
type Task func()

// Pool 固定 worker 數的協程池。Shutdown 會等所有已提交的工作做完。
type Pool struct {
	taskQueue chan Task
	wg        sync.WaitGroup
	logger    *slog.Logger
}

// New 建立並啟動協程池
// workers: worker 數量
// queueSize: 任務隊列大小
func New(workers, queueSize int, logger *slog.Logger) *Pool {
	p := &Pool{
		taskQueue: make(chan Task, queueSize),
		logger:    logger,
	}

	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	p.logger.Info("Worker pool started",
		"workers", workers,
		"queue_size", queueSize)

	return p
}

// worker 工作協程
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for task := range p.taskQueue {
		// 執行任務，捕獲 panic
		func() {
			defer func() {
				if r := recover(); r != nil {
					p.logger.Error("Task panic recovered",
						"worker_id", id,
						"panic", r)
				}
			}()
			task()
		}()
	}
}

// Submit 提交任務，隊列滿時阻塞。Shutdown 之後不可再提交。
func (p *Pool) Submit(task Task) {
	p.taskQueue <- task
}

// Shutdown 關閉提交端並等待所有已提交的任務執行完畢
func (p *Pool) Shutdown() {
	close(p.taskQueue)
	p.wg.Wait()
	p.logger.Info("Worker pool shutdown completed")
}
