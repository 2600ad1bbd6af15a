package main

import "runtime"

// workerPool 채널 기반 세마포. 병렬 정렬이 동시에 띄우는 고루틴 수를 제한한다.
// 슬롯을 못 얻으면 호출자는 순차 처리로 물러난다.
type workerPool chan struct{}

// newWorkerPool size 가 0 이하면 CPU 코어 수를 쓴다.
func newWorkerPool(size int) workerPool {
	return make(workerPool, workerCount(size))
}

// workerCount 0 이하면 CPU 코어 수
func workerCount(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// tryAcquire 슬롯 획득 시도 (대기하지 않음)
func (p workerPool) tryAcquire() bool {
	select {
	case p <- struct{}{}:
		return true
	default:
		return false
	}
}

// release 획득한 슬롯 반환
func (p workerPool) release() { <-p }

// status 사용 중인 슬롯과 전체 용량 (디버깅용)
func (p workerPool) status() (used int, capacity int) {
	return len(p), cap(p)
}
