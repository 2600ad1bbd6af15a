// Package segsort 는 자연 런(natural run)을 감지해 즉석에서 병합하는
// 적응형 안정 병합 정렬(on-the-fly balanced segment merge sort)을 제공한다.
//
// 입력을 앞에서부터 한 번 훑으며 이미 정렬된 구간(런)을 찾고,
// 내림차순 런은 그 자리에서 뒤집어 오름차순으로 만든다.
// 찾은 런은 길이 균형을 유지하는 스택에 쌓이며, 스택 꼭대기의 런이
// 새 런보다 길지 않으면 두 런을 병합한다.
//
// 모든 병합은 보조 배열 없이 제자리에서 수행된다(symmetric merge:
// 하한 이진 탐색 + 삼중 뒤집기 회전). 따라서 추가 메모리는 런 스택과
// 병합 재귀 깊이뿐이다.
//
// 병합 규칙은 쉬는 상태의 스택이 위로 갈수록 짧아지게만 유지한다.
// 런 길이가 k, k-1, ..., 1 처럼 계속 줄어드는 입력에서는 마지막 접기 전까지
// 병합이 일어나지 않아 스택 깊이가 약 sqrt(2n) 까지 자란다. 일반적인 입력에서는
// O(log n) 이며, Stats.MaxStackDepth 로 확인할 수 있다.
//
//	data := []int{5, 3, 2, 4, 6, 8, 7, 19, 10, 12, 13, 14, 17, 18}
//	segsort.Sort(data)
//
// 정렬은 항상 안정적이다: 비교 결과가 같은 원소는 입력 순서를 유지한다.
package segsort
